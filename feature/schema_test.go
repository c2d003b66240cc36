package feature

import (
	"testing"

	"github.com/rushteam/mealkit/catalog"
	"github.com/rushteam/mealkit/core"
)

func testFoods() []*core.Food {
	return []*core.Food{
		{
			Name: "A", Group: "vegetarian", Type: "breakfast", EnergyCategory: "low",
			EnergyKcal: 100, ProteinG: 10,
			Contains: map[string]bool{"milk": true},
		},
		{
			Name: "B", Group: "meat", Type: "lunch", EnergyCategory: "high",
			EnergyKcal: 300, ProteinG: 30,
		},
		{
			Name: "C", Group: "vegetarian", Type: "dinner", EnergyCategory: "low",
			EnergyKcal: 200, ProteinG: 20,
		},
	}
}

func TestBuildSchema_DropFirst(t *testing.T) {
	s := BuildSchema(testFoods())

	// 基准类（首次出现的取值）不产生 one-hot 列
	for _, col := range []string{"food_group_vegetarian", "food_type_breakfast", "energy_category_low"} {
		for _, c := range s.Columns {
			if c == col {
				t.Errorf("baseline one-hot column %s should be dropped", col)
			}
		}
	}
	// 非基准类产生列
	want := map[string]bool{
		"food_group_meat":      true,
		"food_type_lunch":      true,
		"food_type_dinner":     true,
		"energy_category_high": true,
	}
	for _, c := range s.Columns {
		delete(want, c)
	}
	if len(want) != 0 {
		t.Errorf("missing one-hot columns: %v", want)
	}

	// 列顺序：数值列在前，随后过敏原标记列
	for i, col := range catalog.NumericColumns {
		if s.Columns[i] != col {
			t.Fatalf("Columns[%d] = %s, want %s", i, s.Columns[i], col)
		}
	}
	if s.Columns[len(catalog.NumericColumns)] != "contains_milk" {
		t.Errorf("allergen columns should follow numeric columns")
	}
}

func TestSchema_Encode(t *testing.T) {
	foods := testFoods()
	s := BuildSchema(foods)

	X, cols := s.Encode(foods, nil)
	if len(X) != 3 {
		t.Fatalf("Encode rows = %d, want 3", len(X))
	}
	if len(cols) != len(s.Columns) {
		t.Fatalf("Encode cols = %d, want %d", len(cols), len(s.Columns))
	}

	at := func(row int, col string) float64 {
		for i, c := range cols {
			if c == col {
				return X[row][i]
			}
		}
		t.Fatalf("column %s not found", col)
		return 0
	}

	if at(0, "energy_kcal") != 100 || at(1, "energy_kcal") != 300 {
		t.Error("numeric columns mismatch")
	}
	if at(0, "contains_milk") != 1 || at(1, "contains_milk") != 0 {
		t.Error("allergen flag mismatch")
	}
	if at(1, "food_group_meat") != 1 || at(0, "food_group_meat") != 0 {
		t.Error("one-hot encoding mismatch")
	}
	// 基准类样本在所有该列的 one-hot 上为 0
	if at(0, "food_type_lunch") != 0 || at(0, "food_type_dinner") != 0 {
		t.Error("baseline sample should be all-zero across its one-hot columns")
	}
}

// 训练在全量目录上、推理在过滤后的子集上，矩阵必须按训练列集重建。
func TestSchema_Encode_ReferenceAlignment(t *testing.T) {
	foods := testFoods()
	s := BuildSchema(foods)
	_, trainCols := s.Encode(foods, nil)

	// 子集里 meat 组缺席，对应 one-hot 列仍然存在且为 0
	subset := []*core.Food{foods[0], foods[2]}
	X, cols := s.Encode(subset, trainCols)
	if len(cols) != len(trainCols) {
		t.Fatalf("subset cols = %d, want %d", len(cols), len(trainCols))
	}
	for i, c := range cols {
		if c != trainCols[i] {
			t.Fatalf("cols[%d] = %s, want %s", i, c, trainCols[i])
		}
	}
	for r := range X {
		if len(X[r]) != len(trainCols) {
			t.Fatalf("row %d width = %d, want %d", r, len(X[r]), len(trainCols))
		}
	}

	// 不认识的参考列补零
	X, _ = s.Encode(subset, []string{"energy_kcal", "no_such_column"})
	if X[0][1] != 0 {
		t.Errorf("unknown reference column should encode to 0, got %v", X[0][1])
	}
}
