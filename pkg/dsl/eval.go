package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/mealkit/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvOnce sync.Once
	celEnvErr  error
)

// initCELEnv 初始化 CEL 环境，定义变量
func initCELEnv() (*cel.Env, error) {
	env, err := cel.NewEnv(
		cel.Variable("food", cel.DynType),
		cel.Variable("profile", cel.DynType),
	)
	return env, err
}

// getCELEnv 获取或创建 CEL 环境
func getCELEnv() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = initCELEnv()
	})
	return celEnv, celEnvErr
}

// Rule 是膳食规则的解释器，使用 CEL (Common Expression Language) 实现。
// 表达式在构造时编译并缓存，可以多次调用 Eval。
//
// 表达式对每个候选食物求值，返回 true 表示该食物满足规则（保留）。
//
// 表达式语法（CEL 标准语法）：
//   - 数值：food.cholesterol_mg <= 100.0 / food.freesugar_g < 10.0
//   - 类别：food.group == "vegetarian" / food.energy_category != "high"
//   - 逻辑：food.fat_g < 20.0 && food.fibre_g >= 3.0
//   - 画像：profile.tdee > 2500.0
type Rule struct {
	Expr string

	prg cel.Program
}

// Compile 编译一条膳食规则表达式。
func Compile(expr string) (*Rule, error) {
	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("cel env: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile error: %v", issues.Err())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %v", err)
	}
	return &Rule{Expr: expr, prg: prg}, nil
}

// Eval 对一个食物/画像求值，返回布尔结果。
func (r *Rule) Eval(food *core.Food, profile *core.UserProfile) (bool, error) {
	out, _, err := r.prg.Eval(buildInput(food, profile))
	if err != nil {
		return false, fmt.Errorf("eval error: %v", err)
	}
	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression must return boolean, got %T", out.Value())
	}
	return result, nil
}

// buildInput 构建 CEL 表达式的输入数据
func buildInput(f *core.Food, p *core.UserProfile) map[string]interface{} {
	contains := make(map[string]interface{}, len(f.Contains))
	for k, v := range f.Contains {
		contains[k] = v
	}

	food := map[string]interface{}{
		"id":              f.ID,
		"name":            f.Name,
		"group":           f.Group,
		"type":            f.Type,
		"energy_category": f.EnergyCategory,

		"energy_kcal":    f.EnergyKcal,
		"protein_g":      f.ProteinG,
		"carb_g":         f.CarbG,
		"fat_g":          f.FatG,
		"freesugar_g":    f.FreeSugarG,
		"fibre_g":        f.FibreG,
		"cholesterol_mg": f.CholesterolMg,

		"health_score":    f.HealthScore,
		"nutrient_score":  f.NutrientScore,
		"diversity_score": f.DiversityScore,

		"contains": contains,
	}

	profile := map[string]interface{}{}
	if p != nil {
		allergies := make([]interface{}, len(p.Allergies))
		for i, a := range p.Allergies {
			allergies[i] = a
		}
		profile = map[string]interface{}{
			"user_id":   p.UserID,
			"tdee":      p.TDEE,
			"protein_g": p.ProteinG,
			"carb_g":    p.CarbG,
			"fat_g":     p.FatG,
			"allergies": allergies,
		}
	}

	return map[string]interface{}{
		"food":    food,
		"profile": profile,
	}
}
