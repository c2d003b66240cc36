package core

import (
	"strings"

	"github.com/rushteam/mealkit/pkg/conv"
)

// UserProfile 是单次请求的用户画像：营养目标 + 过敏原约束。
// 构造后不可变，贯穿整个引擎调用链。
//
// 设计要点：
//  维度          作用
//  营养目标      拟合度打分（TDEE / 宏量）
//  过敏原        候选过滤（含 "sugar restrictions" 伪过敏原）
//  质量分默认值  缺失字段的保守兜底
type UserProfile struct {
	UserID string

	// 每日营养目标；单餐目标取四分之一，见 Target。
	TDEE     float64
	ProteinG float64
	CarbG    float64
	FatG     float64

	// Allergies 已归一化：去空、去重、规范化大小写。
	Allergies []string
}

func NewUserProfile(userID string) *UserProfile {
	return &UserProfile{
		UserID:    userID,
		Allergies: make([]string, 0),
	}
}

// FitnessTarget 是单餐期望的营养含量：每日目标的四分之一。
// 每次请求从 UserProfile 重新推导，不做持久化。
type FitnessTarget struct {
	EnergyKcal float64
	ProteinG   float64
	CarbG      float64
	FatG       float64
}

// Target 推导单餐拟合目标。
func (p *UserProfile) Target() FitnessTarget {
	return FitnessTarget{
		EnergyKcal: p.TDEE / 4,
		ProteinG:   p.ProteinG / 4,
		CarbG:      p.CarbG / 4,
		FatG:       p.FatG / 4,
	}
}

// HasAllergy 判断画像是否包含指定过敏原（大小写不敏感）。
func (p *UserProfile) HasAllergy(name string) bool {
	for _, a := range p.Allergies {
		if strings.EqualFold(a, name) {
			return true
		}
	}
	return false
}

// NormalizeAllergies 将任意形式的过敏原输入归一化为去重后的非空列表。
// 接受逗号分隔字符串或字符串序列；空白项与重复项（大小写不敏感）丢弃。
func NormalizeAllergies(raw any) []string {
	var parts []string
	switch v := raw.(type) {
	case nil:
		return []string{}
	case string:
		parts = strings.Split(v, ",")
	case []string:
		parts = v
	case []any:
		parts = conv.SliceAnyToString(v)
	default:
		return []string{}
	}

	seen := make(map[string]bool, len(parts))
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		key := strings.ToLower(p)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, p)
	}
	return out
}
