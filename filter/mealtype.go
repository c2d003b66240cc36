package filter

import (
	"context"

	"github.com/rushteam/mealkit/core"
)

// MealTypeFilter 只保留属于当前槽位（rctx.MealType）的食物，大小写不敏感。
type MealTypeFilter struct{}

func (f *MealTypeFilter) Name() string {
	return "filter.meal_type"
}

func (f *MealTypeFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil || item.Food == nil {
		return true, nil
	}
	if rctx == nil || rctx.MealType == "" {
		return false, nil
	}
	return !item.Food.IsMealType(rctx.MealType), nil
}
