// Package profile 把外部请求解析为用户画像：数值目标 + 归一化过敏原。
// 也提供从原始身体属性推导营养目标的需求计算器（requirements.go）。
package profile

import (
	"encoding/json"
	"fmt"

	"github.com/rushteam/mealkit/core"
)

// 请求字段缺失时的默认值。
const (
	DefaultUserID   = "default_user"
	DefaultTDEE     = 2000
	DefaultProteinG = 50
	DefaultCarbG    = 250
	DefaultFatG     = 70
)

// Request 是外部 JSON 请求的原始形态。
// 数值字段用指针区分“缺失”（取默认值）与“显式为 0”（原样保留，
// 打分阶段会按行兜底）。Allergies 接受逗号分隔字符串或字符串数组。
type Request struct {
	UserID   string   `json:"user_id"`
	TDEE     *float64 `json:"TDEE"`
	ProteinG *float64 `json:"protein_g"`
	CarbG    *float64 `json:"carb_g"`
	FatG     *float64 `json:"fat_g"`
	Allergies any     `json:"allergies"`
}

// ParseRequest 解析请求字节流为不可变画像。
// JSON 非法时返回 INVALID_INPUT（致命，调用方输出错误响应）。
func ParseRequest(data []byte) (*core.UserProfile, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, core.NewDomainError(core.ModuleProfile, core.ErrorCodeInvalidInput,
			fmt.Sprintf("profile: parse request: %v", err))
	}
	return req.Profile(), nil
}

// Profile 把原始请求固化为画像（应用默认值与归一化）。
func (r *Request) Profile() *core.UserProfile {
	p := core.NewUserProfile(r.UserID)
	if p.UserID == "" {
		p.UserID = DefaultUserID
	}
	p.TDEE = orDefault(r.TDEE, DefaultTDEE)
	p.ProteinG = orDefault(r.ProteinG, DefaultProteinG)
	p.CarbG = orDefault(r.CarbG, DefaultCarbG)
	p.FatG = orDefault(r.FatG, DefaultFatG)
	p.Allergies = core.NormalizeAllergies(r.Allergies)
	return p
}

func orDefault(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}
