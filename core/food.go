package core

import "strings"

// MealType 是一餐的槽位（早餐/午餐/加餐/晚餐）。
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealSnacks    MealType = "snacks"
	MealDinner    MealType = "dinner"
)

// MealTypes 是固定的四个槽位，顺序即输出顺序。
var MealTypes = []MealType{MealBreakfast, MealLunch, MealSnacks, MealDinner}

// Allergens 是目录中跟踪的过敏原，每个对应一个 contains_* 布尔列。
// 顺序即特征列顺序，不可变更。
var Allergens = []string{
	"milk", "egg", "peanut", "tree_nut", "soy",
	"wheat", "fish", "shellfish", "gluten", "sesame",
}

// Food 是目录中的一条食物记录：营养宏量、质量分、过敏原标记。
// 由外部清洗管线产出，引擎生命周期内只读，不可修改。
type Food struct {
	ID             int64
	Name           string // 去重与历史排除的主键
	Group          string // food_group: vegetarian / vegan / meat / poultry / fish / egg ...
	Type           string // food_type: breakfast / lunch / snacks / dinner
	EnergyCategory string

	EnergyKcal    float64
	ProteinG      float64
	CarbG         float64
	FatG          float64
	FreeSugarG    float64
	FibreG        float64
	CholesterolMg float64

	ProteinCalorieRatio float64
	NutrientScore       float64
	HealthScore         float64
	DiversityScore      float64

	ProteinGNormalized float64
	FatGNormalized     float64
	CarbGNormalized    float64
	ProteinKcal        float64
	FatKcal            float64
	CarbKcal           float64
	ProteinPct         float64
	FatPct             float64
	CarbPct            float64

	// Contains 按 Allergens 中的规范名记录过敏原标记。
	Contains map[string]bool
}

// ContainsAllergen 判断食物是否带有指定过敏原标记（按规范名）。
func (f *Food) ContainsAllergen(name string) bool {
	if f.Contains == nil {
		return false
	}
	return f.Contains[name]
}

// IsMealType 判断食物是否属于指定槽位（大小写不敏感）。
func (f *Food) IsMealType(mt MealType) bool {
	return strings.EqualFold(f.Type, string(mt))
}

// vegGroups / nonVegGroups 是素食/荤食分组的成员集合（小写）。
var (
	vegGroups    = map[string]bool{"vegetarian": true, "vegan": true}
	nonVegGroups = map[string]bool{"meat": true, "poultry": true, "fish": true, "egg": true}
)

// IsVegetarian 判断食物分组是否为素食兼容（vegetarian/vegan）。
func (f *Food) IsVegetarian() bool {
	return vegGroups[strings.ToLower(f.Group)]
}

// IsNonVegetarian 判断食物分组是否为荤食兼容（meat/poultry/fish/egg）。
func (f *Food) IsNonVegetarian() bool {
	return nonVegGroups[strings.ToLower(f.Group)]
}
