package filter

import (
	"context"

	"github.com/rushteam/mealkit/core"
)

// ExcludedFilter 是历史排除过滤器：剔除近期已推荐过的食物（按食物名）。
// Names 是引擎从历史记录推导出的工作排除集（可能已做保鲜截断）。
type ExcludedFilter struct {
	Names map[string]bool
}

// NewExcludedFilter 用排除集创建过滤器。
func NewExcludedFilter(names map[string]bool) *ExcludedFilter {
	return &ExcludedFilter{Names: names}
}

func (f *ExcludedFilter) Name() string {
	return "filter.excluded"
}

func (f *ExcludedFilter) ShouldFilter(
	_ context.Context,
	_ *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil || item.Food == nil {
		return true, nil
	}
	if len(f.Names) == 0 {
		return false, nil
	}
	return f.Names[item.Food.Name], nil
}
