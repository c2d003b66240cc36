// Package mealkit 是一个四餐推荐引擎（Meal Recommender Kit）。
//
// 设计要点：
// - Pipeline-first: 每个餐位的选餐通过 Node 串联（Filter → Rank → ReRank）
// - 请求级模型: 每次请求在当前可用候选集上重新训练 GBDT，无跨请求状态
// - 历史轮换: 有界的推荐历史驱动排除过滤，保证近期不重复
// - Store 可插拔: memory / file / sqlite / redis 后端均可注入
package mealkit

import "github.com/rushteam/mealkit/pipeline"

// 轻量 facade：便于用户直接 import "mealkit" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindFilter = pipeline.KindFilter
	KindRank   = pipeline.KindRank
	KindReRank = pipeline.KindReRank
)
