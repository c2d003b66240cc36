// Package rerank 在排序结果上做最终修饰：荤素均衡选取。
package rerank

import (
	"context"

	"github.com/rushteam/mealkit/core"
	"github.com/rushteam/mealkit/pipeline"
	"github.com/rushteam/mealkit/pkg/utils"
)

// BalancedPickNode 从排序后的候选中选出一个槽位的最终短名单。
//
// 选取规则（输入必须已按预测分降序）：
//  1. 素食分组（vegetarian/vegan）与荤食分组（meat/poultry/fish/egg）各取最高分一项
//  2. 按食物名去重（同名只算一次）
//  3. 不足 Size 时从全量候选按分数回填（跳过已选名字）
//  4. 输出顺序：素食 → 荤食 → 回填
//
// 两个分组都无候选时退化为纯回填；候选耗尽时返回不足 Size 的结果（可能为空）。
type BalancedPickNode struct {
	// Size 短名单长度，<= 0 时取默认值 2。
	Size int
}

func (n *BalancedPickNode) Name() string {
	return "rerank.balanced_pick"
}

func (n *BalancedPickNode) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *BalancedPickNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	size := n.Size
	if size <= 0 {
		size = 2
	}
	if len(items) == 0 {
		return nil, nil
	}

	var topVeg, topNonVeg *core.Item
	for _, it := range items {
		if topVeg == nil && it.Food.IsVegetarian() {
			topVeg = it
		}
		if topNonVeg == nil && it.Food.IsNonVegetarian() {
			topNonVeg = it
		}
		if topVeg != nil && topNonVeg != nil {
			break
		}
	}

	picked := make([]*core.Item, 0, size)
	chosen := make(map[string]bool, size)
	take := func(it *core.Item, slot string) {
		if it == nil || chosen[it.Food.Name] {
			return
		}
		it.PutLabel("slot", utils.Label{Value: slot, Source: "rerank"})
		picked = append(picked, it)
		chosen[it.Food.Name] = true
	}

	take(topVeg, "veg")
	take(topNonVeg, "nonveg")

	// 回填：从全量排序候选补足短名单
	for _, it := range items {
		if len(picked) >= size {
			break
		}
		take(it, "backfill")
	}
	return picked, nil
}
