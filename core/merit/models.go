package merit

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/meritum/core"
)

// Merit types
const (
	TypeCommittee    = "committee"
	TypeNonCommittee = "nonCommittee"
	TypeCompetition  = "competition"
)

var (
	// errors
	ErrNotFound = errors.New("merit record not found")
)

type (
	// Merit is a point award granted to a student for a role played in an
	// event, keyed by (matric, event, merit ID).
	Merit struct {
		ID              string    `json:"id"`
		EventID         int       `json:"event_id"`
		MatricNumber    string    `json:"matricNumber"`
		Name            string    `json:"name"`
		Role            string    `json:"role"`
		MeritPoints     int       `json:"meritPoints"`
		AdditionalNotes string    `json:"additionalNotes"`
		LinkProof       string    `json:"linkProof"`
		MeritType       string    `json:"meritType"`
		EventLevel      string    `json:"eventLevel"` // level ID of the event at award time
		CreatedAt       time.Time `json:"created_at"` // UTC
		CreatedBy       string    `json:"created_by"`
	}

	// Values holds the configured point tables: base points per role per
	// level, and bonus points per achievement per level.
	Values struct {
		// Levels maps levelID -> role -> points.
		Levels map[string]map[string]int `json:"levels"`
		// Achievements maps achievement -> levelID -> bonus points. An award
		// earns the single best bonus whose achievement appears in its notes.
		Achievements map[string]map[string]int `json:"achievements"`
	}

	Repository interface {
		CreateMerit(ctx context.Context, m Merit) (Merit, error)
		QueryMeritsByMatric(ctx context.Context, matric string) ([]Merit, error)
		QueryMeritsByEvent(ctx context.Context, eventID int) ([]Merit, error)
		DeleteMeritByID(ctx context.Context, matric, id string) (Merit, error)

		GetValues(ctx context.Context) (Values, error)
		SetLevelValues(ctx context.Context, levelID string, roles map[string]int) error
	}
)

// NewMerit contains information needed to award a Merit. When MeritPoints is
// zero the points are computed from the configured Values.
type NewMerit struct {
	EventID         int    `json:"event_id" validate:"required"`
	MatricNumber    string `json:"matricNumber" validate:"required,matric"`
	Name            string `json:"name" validate:"required"`
	Role            string `json:"role" validate:"required"`
	MeritPoints     int    `json:"meritPoints" validate:"omitempty,min=0"`
	AdditionalNotes string `json:"additionalNotes"`
	LinkProof       string `json:"linkProof"`
	MeritType       string `json:"meritType" validate:"omitempty,oneof=committee nonCommittee competition"`
}

func (nm *NewMerit) Validate(validate *validator.Validate) error {
	nm.Name = core.CleanString(nm.Name)
	nm.MatricNumber = strings.ToUpper(core.CleanString(nm.MatricNumber))
	nm.Role = core.CleanString(nm.Role)
	return validate.Struct(nm)
}

// CalculatePoints computes an award's points: base points for the role at the
// event's level, plus the best matching achievement bonus found in the notes.
func CalculatePoints(role, levelID, notes string, v Values) int {
	var base int
	if roles, ok := v.Levels[levelID]; ok {
		base = roles[role]
	}

	var bonus int
	if notes != "" {
		lowNotes := strings.ToLower(notes)
		for achievement, perLevel := range v.Achievements {
			if strings.Contains(lowNotes, strings.ToLower(achievement)) {
				if pts := perLevel[levelID]; pts > bonus {
					bonus = pts
				}
			}
		}
	}
	return base + bonus
}
