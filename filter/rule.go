package filter

import (
	"context"

	"github.com/rushteam/mealkit/core"
	"github.com/rushteam/mealkit/pkg/dsl"
)

// RuleFilter 按配置下发的膳食规则（CEL 表达式）过滤候选。
// 所有规则必须同时满足食物才保留；规则求值出错时保留该食物（宽松失败）。
type RuleFilter struct {
	Rules []*dsl.Rule
}

// NewRuleFilter 编译表达式列表并创建过滤器；任一表达式非法即报错。
func NewRuleFilter(exprs []string) (*RuleFilter, error) {
	rules := make([]*dsl.Rule, 0, len(exprs))
	for _, expr := range exprs {
		if expr == "" {
			continue
		}
		r, err := dsl.Compile(expr)
		if err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	return &RuleFilter{Rules: rules}, nil
}

func (f *RuleFilter) Name() string {
	return "filter.rule"
}

func (f *RuleFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil || item.Food == nil {
		return true, nil
	}
	var profile *core.UserProfile
	if rctx != nil {
		profile = rctx.User
	}
	for _, r := range f.Rules {
		ok, err := r.Eval(item.Food, profile)
		if err != nil {
			continue
		}
		if !ok {
			return true, nil
		}
	}
	return false, nil
}
