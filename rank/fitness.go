// Package rank 负责候选打分：启发式拟合度（训练标签）与模型排序节点。
package rank

import (
	"fmt"
	"math"

	"github.com/rushteam/mealkit/core"
)

// 拟合度各分量权重，总和恒为 1.0。
const (
	WeightEnergy   = 0.3
	WeightProtein  = 0.2
	WeightCarb     = 0.2
	WeightFat      = 0.1
	WeightHealth   = 0.1
	WeightNutrient = 0.1
)

// FallbackFitness 是单行打分失败时的兜底分：该行保留、请求继续。
const FallbackFitness = 0.5

// Fitness 计算食物对单餐目标的启发式拟合度。
//
// 纯函数：相同输入逐位可复现。各宏量子分上界为 1、下界无界
// （偏离目标越远越负）；质量分按百分制归一。
// 目标分量为 0 属配置错误，返回 error 由调用方兜底。
func Fitness(food *core.Food, target core.FitnessTarget) (float64, error) {
	if target.EnergyKcal == 0 || target.ProteinG == 0 || target.CarbG == 0 || target.FatG == 0 {
		return 0, fmt.Errorf("fitness: zero target component for food %q", food.Name)
	}

	energyScore := 1 - math.Abs(food.EnergyKcal-target.EnergyKcal)/target.EnergyKcal
	proteinScore := 1 - math.Abs(food.ProteinG-target.ProteinG)/target.ProteinG
	carbScore := 1 - math.Abs(food.CarbG-target.CarbG)/target.CarbG
	fatScore := 1 - math.Abs(food.FatG-target.FatG)/target.FatG
	healthScore := food.HealthScore / 100
	nutrientScore := food.NutrientScore / 100

	fitness := WeightEnergy*energyScore + WeightProtein*proteinScore +
		WeightCarb*carbScore + WeightFat*fatScore +
		WeightHealth*healthScore + WeightNutrient*nutrientScore
	return fitness, nil
}

// LabelItems 为候选集生成启发式标签（Item.Target）。
// 单行失败写入兜底分并计数，不中断整批：返回失败行数供观测。
func LabelItems(items []*core.Item, target core.FitnessTarget) (failed int) {
	for _, it := range items {
		score, err := Fitness(it.Food, target)
		if err != nil {
			it.Target = FallbackFitness
			failed++
			continue
		}
		it.Target = score
	}
	return failed
}
