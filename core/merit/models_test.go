package merit

import (
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/meritum/core"
)

func testValues() Values {
	return Values{
		Levels: map[string]map[string]int{
			"level_001": {"Committee": 10, "Participant": 2},
			"level_002": {"Committee": 15, "Participant": 5},
		},
		Achievements: map[string]map[string]int{
			"Champion":   {"level_001": 20, "level_002": 30},
			"Runner-up":  {"level_001": 10, "level_002": 15},
			"Gold Medal": {"level_002": 25},
		},
	}
}

func TestCalculatePoints(t *testing.T) {
	tests := []struct {
		name    string
		role    string
		levelID string
		notes   string
		want    int
	}{
		{name: "Base points only", role: "Committee", levelID: "level_001", want: 10},
		{name: "Unknown role scores zero", role: "Mascot", levelID: "level_001", want: 0},
		{name: "Unknown level scores zero", role: "Committee", levelID: "level_999", want: 0},
		{name: "Achievement bonus added", role: "Participant", levelID: "level_002", notes: "Champion", want: 35},
		{name: "Achievement match is case-insensitive", role: "Participant", levelID: "level_002", notes: "CHAMPION of the finals", want: 35},
		{
			// both Champion and Runner-up appear; only the best bonus counts
			name: "Best single bonus wins", role: "Participant", levelID: "level_002",
			notes: "Champion, previously Runner-up", want: 35,
		},
		{name: "Bonus without base", role: "Mascot", levelID: "level_002", notes: "Gold Medal", want: 25},
		{name: "Achievement not configured for level", role: "Committee", levelID: "level_001", notes: "Gold Medal", want: 10},
		{name: "Empty notes skip bonus lookup", role: "Committee", levelID: "level_002", want: 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculatePoints(tt.role, tt.levelID, tt.notes, testValues()); got != tt.want {
				t.Errorf("CalculatePoints() = %d; want %d", got, tt.want)
			}
		})
	}
}

func TestNewMerit_Validate(t *testing.T) {
	validate := validator.New()
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	core.InitValidators(validate, translator)

	t.Run("Cleans and upper-cases matric", func(t *testing.T) {
		nm := NewMerit{EventID: 1, MatricNumber: "  s12345 ", Name: " Ahmad ", Role: "Committee"}
		if err := nm.Validate(validate); err != nil {
			t.Fatalf("Validate() error = %v", err)
		}
		if nm.MatricNumber != "S12345" {
			t.Errorf("MatricNumber = %q; want S12345", nm.MatricNumber)
		}
		if nm.Name != "Ahmad" {
			t.Errorf("Name = %q; want trimmed", nm.Name)
		}
	})

	t.Run("Rejects non-canonical matric", func(t *testing.T) {
		nm := NewMerit{EventID: 1, MatricNumber: "NOPE", Name: "Ahmad", Role: "Committee"}
		if err := nm.Validate(validate); err == nil {
			t.Error("Validate() = nil; want matric error")
		}
	})

	t.Run("Rejects unknown merit type", func(t *testing.T) {
		nm := NewMerit{EventID: 1, MatricNumber: "S12345", Name: "Ahmad", Role: "Committee", MeritType: "honorary"}
		if err := nm.Validate(validate); err == nil {
			t.Error("Validate() = nil; want oneof error")
		}
	})
}
