package filter

import (
	"context"
	"testing"

	"github.com/rushteam/mealkit/core"
)

func TestNewRuleFilter(t *testing.T) {
	if _, err := NewRuleFilter([]string{"food.fat_g < 20.0"}); err != nil {
		t.Fatalf("valid expression should compile: %v", err)
	}
	if _, err := NewRuleFilter([]string{"food.fat_g <"}); err == nil {
		t.Error("invalid expression should fail")
	}
	// 空表达式跳过
	f, err := NewRuleFilter([]string{"", "food.fat_g < 20.0"})
	if err != nil {
		t.Fatalf("NewRuleFilter() error = %v", err)
	}
	if len(f.Rules) != 1 {
		t.Errorf("blank expressions should be skipped, got %d rules", len(f.Rules))
	}
}

func TestRuleFilter_ShouldFilter(t *testing.T) {
	lowFat := core.NewItem(&core.Food{Name: "Salad", Group: "vegan", FatG: 5, FibreG: 4})
	highFat := core.NewItem(&core.Food{Name: "Fries", Group: "vegetarian", FatG: 25, FibreG: 2})

	tests := []struct {
		name  string
		exprs []string
		item  *core.Item
		want  bool
	}{
		{"passing rule keeps", []string{"food.fat_g < 20.0"}, lowFat, false},
		{"failing rule drops", []string{"food.fat_g < 20.0"}, highFat, true},
		{"all rules must hold", []string{"food.fat_g < 30.0", "food.fibre_g >= 3.0"}, highFat, true},
		{"categorical match", []string{`food.group == "vegan"`}, lowFat, false},
		{"no rules keeps all", nil, highFat, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewRuleFilter(tt.exprs)
			if err != nil {
				t.Fatalf("NewRuleFilter() error = %v", err)
			}
			user := core.NewUserProfile("u1")
			got, err := f.ShouldFilter(context.Background(), rctxWith(user, core.MealLunch), tt.item)
			if err != nil {
				t.Fatalf("ShouldFilter() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ShouldFilter() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRuleFilter_ProfileVariables(t *testing.T) {
	f, err := NewRuleFilter([]string{"profile.tdee > 2500.0 || food.energy_kcal < 300.0"})
	if err != nil {
		t.Fatalf("NewRuleFilter() error = %v", err)
	}
	heavy := core.NewItem(&core.Food{Name: "Biryani", EnergyKcal: 600})

	lowTDEE := core.NewUserProfile("u1")
	lowTDEE.TDEE = 2000
	if got, _ := f.ShouldFilter(context.Background(), rctxWith(lowTDEE, core.MealDinner), heavy); !got {
		t.Error("rule should drop heavy food for low-TDEE profile")
	}

	highTDEE := core.NewUserProfile("u2")
	highTDEE.TDEE = 3000
	if got, _ := f.ShouldFilter(context.Background(), rctxWith(highTDEE, core.MealDinner), heavy); got {
		t.Error("rule should keep heavy food for high-TDEE profile")
	}
}
