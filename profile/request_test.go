package profile

import (
	"reflect"
	"testing"

	"github.com/rushteam/mealkit/core"
)

func TestParseRequest(t *testing.T) {
	tests := []struct {
		name string
		json string
		want *core.UserProfile
	}{
		{
			name: "full request",
			json: `{"user_id":"u1","TDEE":2200,"protein_g":60,"carb_g":280,"fat_g":80,"allergies":"Milk, Peanut"}`,
			want: &core.UserProfile{
				UserID: "u1", TDEE: 2200, ProteinG: 60, CarbG: 280, FatG: 80,
				Allergies: []string{"Milk", "Peanut"},
			},
		},
		{
			name: "empty request gets defaults",
			json: `{}`,
			want: &core.UserProfile{
				UserID: DefaultUserID, TDEE: DefaultTDEE, ProteinG: DefaultProteinG,
				CarbG: DefaultCarbG, FatG: DefaultFatG,
				Allergies: []string{},
			},
		},
		{
			name: "explicit zero is preserved",
			json: `{"user_id":"u2","TDEE":0}`,
			want: &core.UserProfile{
				UserID: "u2", TDEE: 0, ProteinG: DefaultProteinG,
				CarbG: DefaultCarbG, FatG: DefaultFatG,
				Allergies: []string{},
			},
		},
		{
			name: "allergies as array",
			json: `{"allergies":["Egg","Fish"]}`,
			want: &core.UserProfile{
				UserID: DefaultUserID, TDEE: DefaultTDEE, ProteinG: DefaultProteinG,
				CarbG: DefaultCarbG, FatG: DefaultFatG,
				Allergies: []string{"Egg", "Fish"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRequest([]byte(tt.json))
			if err != nil {
				t.Fatalf("ParseRequest() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseRequest() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseRequest_InvalidJSON(t *testing.T) {
	_, err := ParseRequest([]byte(`{"user_id":`))
	if err == nil {
		t.Fatal("invalid JSON should fail")
	}
	if !core.IsInvalidInput(err) {
		t.Errorf("error should be INVALID_INPUT, got %v", err)
	}
}
