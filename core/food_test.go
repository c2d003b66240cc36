package core

import "testing"

func TestFood_IsMealType(t *testing.T) {
	tests := []struct {
		name     string
		foodType string
		mealType MealType
		want     bool
	}{
		{"exact match", "breakfast", MealBreakfast, true},
		{"case insensitive", "Breakfast", MealBreakfast, true},
		{"upper case", "DINNER", MealDinner, true},
		{"mismatch", "lunch", MealDinner, false},
		{"empty type", "", MealSnacks, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &Food{Type: tt.foodType}
			if got := f.IsMealType(tt.mealType); got != tt.want {
				t.Errorf("IsMealType(%q) = %v, want %v", tt.mealType, got, tt.want)
			}
		})
	}
}

func TestFood_VegetarianPartition(t *testing.T) {
	tests := []struct {
		group      string
		wantVeg    bool
		wantNonVeg bool
	}{
		{"vegetarian", true, false},
		{"Vegan", true, false},
		{"meat", false, true},
		{"Poultry", false, true},
		{"fish", false, true},
		{"egg", false, true},
		{"dairy", false, false},
		{"", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.group, func(t *testing.T) {
			f := &Food{Group: tt.group}
			if got := f.IsVegetarian(); got != tt.wantVeg {
				t.Errorf("IsVegetarian() = %v, want %v", got, tt.wantVeg)
			}
			if got := f.IsNonVegetarian(); got != tt.wantNonVeg {
				t.Errorf("IsNonVegetarian() = %v, want %v", got, tt.wantNonVeg)
			}
		})
	}
}

func TestFood_ContainsAllergen(t *testing.T) {
	f := &Food{Contains: map[string]bool{"milk": true, "peanut": false}}
	if !f.ContainsAllergen("milk") {
		t.Error("ContainsAllergen(milk) = false, want true")
	}
	if f.ContainsAllergen("peanut") {
		t.Error("ContainsAllergen(peanut) = true, want false")
	}
	if f.ContainsAllergen("soy") {
		t.Error("ContainsAllergen(soy) = true, want false")
	}

	var empty Food
	if empty.ContainsAllergen("milk") {
		t.Error("nil Contains map should report false")
	}
}
