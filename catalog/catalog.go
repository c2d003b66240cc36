// Package catalog 加载预清洗后的食物目录。
//
// 目录是外部清洗管线的产物（列名修正、缺失值填充、过敏原标记、卡路里分解均已完成），
// 引擎只做读取与校验：必需列缺失立即报错，不做任何就地修复。
package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rushteam/mealkit/core"
	"github.com/rushteam/mealkit/pkg/conv"
)

// NumericColumns 是目录的数值特征列，顺序即特征矩阵的列顺序。
var NumericColumns = []string{
	"energy_kcal", "carb_g", "protein_g", "fat_g", "freesugar_g",
	"fibre_g", "cholesterol_mg", "protein_calorie_ratio",
	"nutrient_score", "health_score", "diversity_score",
	"protein_g_normalized", "fat_g_normalized", "carb_g_normalized",
	"protein_kcal", "fat_kcal", "carb_kcal",
	"protein_pct", "fat_pct", "carb_pct",
}

// CategoricalColumns 是 one-hot 编码的类别列。
var CategoricalColumns = []string{"food_group", "food_type", "energy_category"}

// 质量分缺失时的保守默认值（百分制）。
const defaultQualityScore = 50

// Catalog 是只读的食物目录：有序记录 + 名称索引。
type Catalog struct {
	Foods []*core.Food

	byName map[string]*core.Food
}

// Len 返回目录中的记录数。
func (c *Catalog) Len() int { return len(c.Foods) }

// ByName 按食物名查找记录（目录加载时的原始大小写）。
func (c *Catalog) ByName(name string) (*core.Food, bool) {
	f, ok := c.byName[name]
	return f, ok
}

// Items 把目录记录包装成 Pipeline 的 Item 列表，保持目录顺序。
// 历史排除等裁剪由 filter 包的节点完成。
func (c *Catalog) Items() []*core.Item {
	items := make([]*core.Item, 0, len(c.Foods))
	for _, f := range c.Foods {
		items = append(items, core.NewItem(f))
	}
	return items
}

// LoadFile 从 CSV 文件加载目录。
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load 从 CSV 流加载目录。
// 必需列缺失或目录为空时立即返回 INVALID_INPUT 错误。
func Load(r io.Reader) (*Catalog, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, core.NewDomainError(core.ModuleCatalog, core.ErrorCodeInvalidInput,
			fmt.Sprintf("catalog: read header: %v", err))
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	if err := checkColumns(col); err != nil {
		return nil, err
	}

	cat := &Catalog{byName: make(map[string]*core.Food)}
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, core.NewDomainError(core.ModuleCatalog, core.ErrorCodeInvalidInput,
				fmt.Sprintf("catalog: line %d: %v", line, err))
		}
		food := parseRow(rec, col)
		cat.Foods = append(cat.Foods, food)
		cat.byName[food.Name] = food
	}

	if len(cat.Foods) == 0 {
		return nil, core.NewDomainError(core.ModuleCatalog, core.ErrorCodeInvalidInput,
			"catalog: no rows")
	}
	return cat, nil
}

func checkColumns(col map[string]int) error {
	required := []string{"food_id", "food_name"}
	required = append(required, CategoricalColumns...)
	required = append(required, NumericColumns...)
	for _, a := range core.Allergens {
		required = append(required, "contains_"+a)
	}

	var missing []string
	for _, name := range required {
		if _, ok := col[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return core.NewDomainError(core.ModuleCatalog, core.ErrorCodeInvalidInput,
			fmt.Sprintf("catalog: missing required columns: %s", strings.Join(missing, ", ")))
	}
	return nil
}

func parseRow(rec []string, col map[string]int) *core.Food {
	cell := func(name string) string {
		i, ok := col[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return rec[i]
	}

	id, _ := strconv.ParseInt(strings.TrimSpace(cell("food_id")), 10, 64)
	food := &core.Food{
		ID:             id,
		Name:           strings.TrimSpace(cell("food_name")),
		Group:          strings.TrimSpace(cell("food_group")),
		Type:           strings.TrimSpace(cell("food_type")),
		EnergyCategory: strings.TrimSpace(cell("energy_category")),

		EnergyKcal:    conv.ParseFloat(cell("energy_kcal"), 0),
		CarbG:         conv.ParseFloat(cell("carb_g"), 0),
		ProteinG:      conv.ParseFloat(cell("protein_g"), 0),
		FatG:          conv.ParseFloat(cell("fat_g"), 0),
		FreeSugarG:    conv.ParseFloat(cell("freesugar_g"), 0),
		FibreG:        conv.ParseFloat(cell("fibre_g"), 0),
		CholesterolMg: conv.ParseFloat(cell("cholesterol_mg"), 0),

		ProteinCalorieRatio: conv.ParseFloat(cell("protein_calorie_ratio"), 0),
		NutrientScore:       conv.ParseFloat(cell("nutrient_score"), defaultQualityScore),
		HealthScore:         conv.ParseFloat(cell("health_score"), defaultQualityScore),
		DiversityScore:      conv.ParseFloat(cell("diversity_score"), 0),

		ProteinGNormalized: conv.ParseFloat(cell("protein_g_normalized"), 0),
		FatGNormalized:     conv.ParseFloat(cell("fat_g_normalized"), 0),
		CarbGNormalized:    conv.ParseFloat(cell("carb_g_normalized"), 0),
		ProteinKcal:        conv.ParseFloat(cell("protein_kcal"), 0),
		FatKcal:            conv.ParseFloat(cell("fat_kcal"), 0),
		CarbKcal:           conv.ParseFloat(cell("carb_kcal"), 0),
		ProteinPct:         conv.ParseFloat(cell("protein_pct"), 0),
		FatPct:             conv.ParseFloat(cell("fat_pct"), 0),
		CarbPct:            conv.ParseFloat(cell("carb_pct"), 0),

		Contains: make(map[string]bool, len(core.Allergens)),
	}
	for _, a := range core.Allergens {
		food.Contains[a] = conv.ParseBool(cell("contains_" + a))
	}
	return food
}
