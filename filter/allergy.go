package filter

import (
	"context"
	"strings"

	"github.com/rushteam/mealkit/core"
)

// SugarRestriction 是不对应布尔标记列的伪过敏原：
// 改为限制游离糖不超过单餐等效能量的 10%。
const SugarRestriction = "sugar restrictions"

// allergenFlags 把画像里的过敏原名映射到目录的规范标记名（小写键）。
var allergenFlags = map[string]string{
	"milk":      "milk",
	"egg":       "egg",
	"peanut":    "peanut",
	"tree nut":  "tree_nut",
	"soy":       "soy",
	"wheat":     "wheat",
	"fish":      "fish",
	"shellfish": "shellfish",
	"gluten":    "gluten",
	"sesame":    "sesame",
}

// AllergenFlag 返回过敏原名对应的规范标记名。
// "Sugar restrictions" 等未映射的名字返回 false（由 SugarFilter 单独处理）。
func AllergenFlag(name string) (string, bool) {
	flag, ok := allergenFlags[strings.ToLower(strings.TrimSpace(name))]
	return flag, ok
}

// AllergyFilter 按画像过敏原剔除带对应标记的食物。
type AllergyFilter struct{}

func (f *AllergyFilter) Name() string {
	return "filter.allergy"
}

func (f *AllergyFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil || item.Food == nil {
		return true, nil
	}
	if rctx == nil || rctx.User == nil {
		return false, nil
	}
	for _, a := range rctx.User.Allergies {
		flag, ok := AllergenFlag(a)
		if !ok {
			continue
		}
		if item.Food.ContainsAllergen(flag) {
			return true, nil
		}
	}
	return false, nil
}

// SugarFilter 在画像包含 "Sugar restrictions" 时生效：
// 要求 freesugar_g <= 0.1 * energy_kcal / 4。
type SugarFilter struct{}

func (f *SugarFilter) Name() string {
	return "filter.sugar"
}

func (f *SugarFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil || item.Food == nil {
		return true, nil
	}
	if rctx == nil || rctx.User == nil || !rctx.User.HasAllergy(SugarRestriction) {
		return false, nil
	}
	return item.Food.FreeSugarG > 0.1*item.Food.EnergyKcal/4, nil
}
