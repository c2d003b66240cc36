package core

import "github.com/rushteam/mealkit/pkg/utils"

// Item 是推荐链路中的统一承载结构：食物、特征、分数、标签。
// Target 是启发式拟合度（训练标签）；Score 是模型预测的拟合度，用于排序决策。
// Labels 用于解释与策略驱动。
type Item struct {
	Food     *Food
	Target   float64
	Score    float64
	Features map[string]float64
	Labels   map[string]utils.Label
}

func NewItem(food *Food) *Item {
	return &Item{
		Food:     food,
		Features: make(map[string]float64),
		Labels:   make(map[string]utils.Label),
	}
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (it *Item) PutLabel(key string, lbl utils.Label) {
	if it.Labels == nil {
		it.Labels = make(map[string]utils.Label)
	}
	if old, ok := it.Labels[key]; ok {
		it.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	it.Labels[key] = lbl
}
