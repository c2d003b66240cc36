package rank

import (
	"context"
	"sort"

	"github.com/rushteam/mealkit/core"
	"github.com/rushteam/mealkit/feature"
	"github.com/rushteam/mealkit/model"
	"github.com/rushteam/mealkit/pipeline"
	"github.com/rushteam/mealkit/pkg/utils"
)

// ModelNode 是模型排序 Node：用请求级回归器对候选打预测分并降序排序。
//
// 排序依据是模型预测（Item.Score），不是启发式标签（Item.Target）——
// 这一间接层是刻意设计：模型在整个可用候选集上学到的平滑面，
// 让结构相似的候选获得一致的名次，不可用标签直排短路替代。
//
// 特征按训练列集（Columns）重建并用训练期 Scaler 缩放，
// 保证推理矩阵与训练矩阵形状一致。
// 分数持平时保持目录顺序（稳定排序，无额外决胜规则）。
type ModelNode struct {
	Model   model.Regressor
	Schema  *feature.Schema
	Scaler  *feature.MinMaxScaler
	Columns []string
}

func (n *ModelNode) Name() string        { return "rank.model" }
func (n *ModelNode) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *ModelNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if n.Model == nil || len(items) == 0 {
		return items, nil
	}

	foods := make([]*core.Food, len(items))
	for i, it := range items {
		foods[i] = it.Food
	}
	matrix, _ := n.Schema.Encode(foods, n.Columns)
	if n.Scaler != nil {
		scaled, err := n.Scaler.Transform(matrix)
		if err != nil {
			return nil, err
		}
		matrix = scaled
	}

	for i, it := range items {
		it.Score = n.Model.PredictRow(matrix[i])
		it.PutLabel("rank_model", utils.Label{Value: n.Model.Name(), Source: "rank"})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Score > items[j].Score
	})
	return items, nil
}
