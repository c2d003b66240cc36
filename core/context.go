package core

import "github.com/rushteam/mealkit/pkg/utils"

// RecommendContext 承载用户/槽位信息，贯穿整个 Pipeline 透传。
type RecommendContext struct {
	UserID string

	// User 是本次请求的用户画像（营养目标 + 过敏原）。
	User *UserProfile

	// MealType 是当前正在选的槽位；每个槽位独立跑一条 Pipeline。
	MealType MealType

	// Labels 是用户级标签，可驱动整个 Pipeline 行为。
	Labels map[string]utils.Label

	// Params 请求级上下文参数。
	Params map[string]any
}

// PutLabel 写入用户级 Label。
func (rctx *RecommendContext) PutLabel(key string, lbl utils.Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}

// GetLabel 获取用户级 Label。
func (rctx *RecommendContext) GetLabel(key string) (utils.Label, bool) {
	if rctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := rctx.Labels[key]
	return lbl, ok
}
