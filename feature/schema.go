// Package feature 把目录记录转换为训练/推理共用的数值特征矩阵。
//
// 特征空间是目录的属性：数值列与类别域在目录加载时一次性枚举（Schema），
// 请求期间不再重算。推理矩阵按训练列集重建（Encode 的 reference 列），
// 子集里缺失的类别补零、多余的列静默丢弃，保证模型收到的矩阵形状恒定。
package feature

import (
	"fmt"

	"github.com/rushteam/mealkit/catalog"
	"github.com/rushteam/mealkit/core"
)

// Domain 是一个类别列的取值域。取值顺序为目录中的首次出现顺序；
// 第一个取值作为 one-hot 的基准类被丢弃（drop-first，避免共线）。
type Domain struct {
	Column string
	Values []string
}

// Schema 是固定的特征列集：数值列 + 过敏原标记列 + one-hot 列。
// Columns 的顺序在 Schema 构建后不再变化。
type Schema struct {
	Domains []Domain
	Columns []string

	specs map[string]colSpec
}

type colSpec struct {
	kind     colKind
	allergen string // kind == colFlag
	column   string // kind == colOneHot：类别列名
	value    string // kind == colOneHot：命中取值
}

type colKind int

const (
	colNumeric colKind = iota
	colFlag
	colOneHot
)

// BuildSchema 从目录记录枚举特征空间。
// 列顺序：数值列（catalog.NumericColumns 顺序）→ 过敏原标记列 → 各类别列的 one-hot 列。
func BuildSchema(foods []*core.Food) *Schema {
	s := &Schema{specs: make(map[string]colSpec)}

	for _, col := range catalog.NumericColumns {
		s.Columns = append(s.Columns, col)
		s.specs[col] = colSpec{kind: colNumeric}
	}
	for _, a := range core.Allergens {
		col := "contains_" + a
		s.Columns = append(s.Columns, col)
		s.specs[col] = colSpec{kind: colFlag, allergen: a}
	}

	for _, catCol := range catalog.CategoricalColumns {
		dom := Domain{Column: catCol}
		seen := make(map[string]bool)
		for _, f := range foods {
			v := categoricalValue(f, catCol)
			if !seen[v] {
				seen[v] = true
				dom.Values = append(dom.Values, v)
			}
		}
		s.Domains = append(s.Domains, dom)

		// drop-first：首个取值作为基准类不生成列
		for _, v := range dom.Values[min(1, len(dom.Values)):] {
			col := fmt.Sprintf("%s_%s", catCol, v)
			s.Columns = append(s.Columns, col)
			s.specs[col] = colSpec{kind: colOneHot, column: catCol, value: v}
		}
	}
	return s
}

// Encode 把候选记录编码为特征矩阵。
//
// reference 为 nil 时（训练）使用 Schema 自身的列集；非 nil 时（推理）
// 严格按 reference 的列与顺序重建：Schema 不认识的列填 0。
// 返回矩阵与实际使用的列集。
func (s *Schema) Encode(foods []*core.Food, reference []string) ([][]float64, []string) {
	cols := reference
	if cols == nil {
		cols = s.Columns
	}
	matrix := make([][]float64, len(foods))
	for i, f := range foods {
		row := make([]float64, len(cols))
		for j, col := range cols {
			row[j] = s.value(f, col)
		}
		matrix[i] = row
	}
	return matrix, cols
}

func (s *Schema) value(f *core.Food, col string) float64 {
	spec, ok := s.specs[col]
	if !ok {
		return 0
	}
	switch spec.kind {
	case colFlag:
		if f.ContainsAllergen(spec.allergen) {
			return 1
		}
		return 0
	case colOneHot:
		if categoricalValue(f, spec.column) == spec.value {
			return 1
		}
		return 0
	default:
		return numericValue(f, col)
	}
}

func categoricalValue(f *core.Food, col string) string {
	switch col {
	case "food_group":
		return f.Group
	case "food_type":
		return f.Type
	case "energy_category":
		return f.EnergyCategory
	default:
		return ""
	}
}

func numericValue(f *core.Food, col string) float64 {
	switch col {
	case "energy_kcal":
		return f.EnergyKcal
	case "carb_g":
		return f.CarbG
	case "protein_g":
		return f.ProteinG
	case "fat_g":
		return f.FatG
	case "freesugar_g":
		return f.FreeSugarG
	case "fibre_g":
		return f.FibreG
	case "cholesterol_mg":
		return f.CholesterolMg
	case "protein_calorie_ratio":
		return f.ProteinCalorieRatio
	case "nutrient_score":
		return f.NutrientScore
	case "health_score":
		return f.HealthScore
	case "diversity_score":
		return f.DiversityScore
	case "protein_g_normalized":
		return f.ProteinGNormalized
	case "fat_g_normalized":
		return f.FatGNormalized
	case "carb_g_normalized":
		return f.CarbGNormalized
	case "protein_kcal":
		return f.ProteinKcal
	case "fat_kcal":
		return f.FatKcal
	case "carb_kcal":
		return f.CarbKcal
	case "protein_pct":
		return f.ProteinPct
	case "fat_pct":
		return f.FatPct
	case "carb_pct":
		return f.CarbPct
	default:
		return 0
	}
}
