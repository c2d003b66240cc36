package core

import (
	"reflect"
	"testing"
)

func TestUserProfile_Target(t *testing.T) {
	p := &UserProfile{TDEE: 2000, ProteinG: 50, CarbG: 250, FatG: 70}
	got := p.Target()
	want := FitnessTarget{EnergyKcal: 500, ProteinG: 12.5, CarbG: 62.5, FatG: 17.5}
	if got != want {
		t.Errorf("Target() = %+v, want %+v", got, want)
	}
}

func TestUserProfile_HasAllergy(t *testing.T) {
	p := &UserProfile{Allergies: []string{"Milk", "Sugar restrictions"}}
	tests := []struct {
		name string
		want bool
	}{
		{"milk", true},
		{"MILK", true},
		{"sugar restrictions", true},
		{"peanut", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := p.HasAllergy(tt.name); got != tt.want {
			t.Errorf("HasAllergy(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestNormalizeAllergies(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want []string
	}{
		{"nil", nil, []string{}},
		{"comma string", "Milk, Peanut,Soy", []string{"Milk", "Peanut", "Soy"}},
		{"string slice", []string{"Egg", "Fish"}, []string{"Egg", "Fish"}},
		{"any slice from json", []any{"Milk", "Egg"}, []string{"Milk", "Egg"}},
		{"dedup case insensitive", "Milk, milk, MILK", []string{"Milk"}},
		{"drop blanks", " , Milk, ,", []string{"Milk"}},
		{"empty string", "", []string{}},
		{"non-string elements skipped", []any{"Milk", 42, nil}, []string{"Milk"}},
		{"unexpected type", 123, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeAllergies(tt.raw)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NormalizeAllergies(%v) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}
