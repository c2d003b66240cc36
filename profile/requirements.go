package profile

import (
	"math"
	"strings"
)

// Requirements 是需求计算器的输出：能量与宏量目标。
// Extra 携带疾病相关的附加指标（sodium_mg / iron_mg / folate_mcg）。
type Requirements struct {
	BMR           float64 `json:"BMR"`
	TDEE          float64 `json:"TDEE"`
	EnergyKcal    float64 `json:"energy_kcal"`
	ProteinG      float64 `json:"protein_g"`
	CarbG         float64 `json:"carb_g"`
	FatG          float64 `json:"fat_g"`
	FiberG        float64 `json:"fiber_g"`
	FreeSugarG    float64 `json:"free_sugar_g"`
	CholesterolMg float64 `json:"cholesterol_mg"`

	Extra map[string]float64 `json:"extra,omitempty"`
}

// activityFactors 活动系数（未知取 sedentary）。
var activityFactors = map[string]float64{
	"sedentary":   1.2,
	"light":       1.375,
	"moderate":    1.55,
	"active":      1.725,
	"very active": 1.9,
}

// goalFactors 目标系数（未知取 maintain）。
var goalFactors = map[string]float64{
	"maintain":    1.0,
	"weight loss": 0.85,
	"weight gain": 1.15,
}

// CalculateRequirements 根据身体属性推导营养需求。
//
// 步骤：Mifflin-St Jeor 基础代谢 → 活动系数 → 目标系数 →
// 基础宏量拆分（蛋白 20% / 脂肪 30% / 碳水 50%）→ 疾病调整。
// 引擎只消费其中的宏量/能量子集作为画像输入。
func CalculateRequirements(age int, gender string, heightCm, weightKg float64,
	activityLevel, goalType, disease string) Requirements {

	var bmr float64
	if strings.EqualFold(gender, "male") {
		bmr = 10*weightKg + 6.25*heightCm - 5*float64(age) + 5
	} else {
		bmr = 10*weightKg + 6.25*heightCm - 5*float64(age) - 161
	}

	tdee := bmr * factorOr(activityFactors, activityLevel, 1.2)
	tdee *= factorOr(goalFactors, goalType, 1.0)

	proteinG := tdee * 0.20 / 4
	fatG := tdee * 0.30 / 9
	carbG := tdee * 0.50 / 4
	fiberG := 30.0
	freeSugarG := tdee * 0.10 / 4
	cholesterolMg := 300.0
	extra := map[string]float64{}

	switch strings.ToLower(strings.TrimSpace(disease)) {
	case "diabetes":
		carbG *= 0.85
		proteinG *= 1.1
		fiberG += 5
		freeSugarG *= 0.5
	case "hypertension":
		fatG *= 0.9
		cholesterolMg *= 0.8
	case "hyperlipidemia":
		fatG *= 0.8
		cholesterolMg *= 0.6
	case "pcos":
		proteinG *= 1.15
		carbG *= 0.85
		fiberG += 5
	case "thyroid disorders":
		proteinG *= 1.05
	case "obesity":
		tdee *= 0.9
		carbG *= 0.9
		fatG *= 0.9
	case "underweight":
		tdee *= 1.1
		proteinG *= 1.1
		fatG *= 1.1
	case "heart disease":
		fatG *= 0.75
		cholesterolMg *= 0.6
	case "kidney disease":
		proteinG *= 0.8
		extra["sodium_mg"] = 1500
	case "liver disease":
		proteinG *= 0.85
		fatG *= 0.85
	case "anemia":
		proteinG *= 1.1
		extra["iron_mg"] = 18
	case "gastrointestinal disorders":
		fiberG *= 0.75
		fatG *= 0.9
	case "pregnancy":
		tdee *= 1.2
		proteinG *= 1.2
		extra["iron_mg"] = 27
		extra["folate_mcg"] = 400
	case "celiac disease", "lactose intolerance", "other", "none", "":
		// 仅饮食限制或无调整
	}

	req := Requirements{
		BMR:           round2(bmr),
		TDEE:          round2(tdee),
		EnergyKcal:    round2(tdee),
		ProteinG:      round2(proteinG),
		CarbG:         round2(carbG),
		FatG:          round2(fatG),
		FiberG:        round2(fiberG),
		FreeSugarG:    round2(freeSugarG),
		CholesterolMg: round2(cholesterolMg),
	}
	if len(extra) > 0 {
		req.Extra = extra
	}
	return req
}

func factorOr(factors map[string]float64, key string, fallback float64) float64 {
	if f, ok := factors[strings.ToLower(strings.TrimSpace(key))]; ok {
		return f
	}
	return fallback
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
