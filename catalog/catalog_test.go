package catalog

import (
	"strings"
	"testing"

	"github.com/rushteam/mealkit/core"
)

// testHeader 是目录的完整表头（固定顺序）。
func testHeader() []string {
	header := []string{"food_id", "food_name", "food_group", "food_type", "energy_category"}
	header = append(header, NumericColumns...)
	for _, a := range core.Allergens {
		header = append(header, "contains_"+a)
	}
	return header
}

// testCSV 从稀疏的行描述生成一个完整目录 CSV，未给出的单元格为空。
func testCSV(rows []map[string]string) string {
	header := testHeader()
	var b strings.Builder
	b.WriteString(strings.Join(header, ","))
	b.WriteString("\n")
	for _, row := range rows {
		cells := make([]string, len(header))
		for i, col := range header {
			cells[i] = row[col]
		}
		b.WriteString(strings.Join(cells, ","))
		b.WriteString("\n")
	}
	return b.String()
}

func TestLoad(t *testing.T) {
	csv := testCSV([]map[string]string{
		{
			"food_id": "1", "food_name": "Oats Porridge", "food_group": "vegetarian",
			"food_type": "breakfast", "energy_category": "medium",
			"energy_kcal": "389", "protein_g": "16.9", "carb_g": "66.3", "fat_g": "6.9",
			"health_score": "82.5", "nutrient_score": "74",
			"contains_gluten": "true",
		},
		{
			"food_id": "2", "food_name": "Grilled Chicken", "food_group": "poultry",
			"food_type": "lunch", "energy_category": "high",
			"energy_kcal": "239", "protein_g": "27.3",
		},
	})

	cat, err := Load(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cat.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", cat.Len())
	}

	oats, ok := cat.ByName("Oats Porridge")
	if !ok {
		t.Fatal("ByName(Oats Porridge) not found")
	}
	if oats.ID != 1 || oats.Group != "vegetarian" || oats.Type != "breakfast" {
		t.Errorf("unexpected food: %+v", oats)
	}
	if oats.EnergyKcal != 389 || oats.ProteinG != 16.9 {
		t.Errorf("numeric parse: energy=%v protein=%v", oats.EnergyKcal, oats.ProteinG)
	}
	if oats.HealthScore != 82.5 || oats.NutrientScore != 74 {
		t.Errorf("score parse: health=%v nutrient=%v", oats.HealthScore, oats.NutrientScore)
	}
	if !oats.Contains["gluten"] || oats.Contains["milk"] {
		t.Errorf("allergen flags: %v", oats.Contains)
	}

	// 质量分缺失 → 保守默认 50，其余数值默认 0
	chicken, _ := cat.ByName("Grilled Chicken")
	if chicken.HealthScore != 50 || chicken.NutrientScore != 50 {
		t.Errorf("missing quality scores should default to 50, got health=%v nutrient=%v",
			chicken.HealthScore, chicken.NutrientScore)
	}
	if chicken.CarbG != 0 {
		t.Errorf("missing numeric should default to 0, got %v", chicken.CarbG)
	}
}

func TestLoad_MissingColumns(t *testing.T) {
	csv := "food_id,food_name,food_group\n1,Oats,vegetarian\n"
	_, err := Load(strings.NewReader(csv))
	if err == nil {
		t.Fatal("Load() with missing columns should fail")
	}
	if !core.IsInvalidInput(err) {
		t.Errorf("error should be INVALID_INPUT, got %v", err)
	}
	if !strings.Contains(err.Error(), "food_type") {
		t.Errorf("error should name missing columns, got %v", err)
	}
}

func TestLoad_Empty(t *testing.T) {
	csv := testCSV(nil)
	if _, err := Load(strings.NewReader(csv)); err == nil {
		t.Fatal("Load() with no rows should fail")
	}
}

func TestCatalog_Items(t *testing.T) {
	csv := testCSV([]map[string]string{
		{"food_id": "1", "food_name": "A", "food_group": "vegan", "food_type": "breakfast"},
		{"food_id": "2", "food_name": "B", "food_group": "meat", "food_type": "lunch"},
		{"food_id": "3", "food_name": "C", "food_group": "fish", "food_type": "dinner"},
	})
	cat, err := Load(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	items := cat.Items()
	if len(items) != 3 {
		t.Fatalf("Items() = %d items, want 3", len(items))
	}
	// 顺序与目录一致
	if items[0].Food.Name != "A" || items[2].Food.Name != "C" {
		t.Errorf("Items should preserve catalog order")
	}
}
