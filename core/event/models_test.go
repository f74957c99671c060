package event

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/meritum/core"
)

// nameCheckStub only implements the uniqueness check used by Validate.
type nameCheckStub struct {
	ServiceInterface
	err error
}

func (s nameCheckStub) CheckNameUniqueness(ctx context.Context, name string, excluded ...Event) error {
	return s.err
}

func newTestValidate(t *testing.T) *validator.Validate {
	t.Helper()
	validate := validator.New()
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	core.InitValidators(validate, translator)
	return validate
}

func Test_validateDates(t *testing.T) {
	now := time.Now().UTC()
	tests := []struct {
		name    string
		date    time.Time
		endDate null.Time
		wantErr bool
	}{
		{name: "Today", date: now},
		{name: "Last year", date: now.AddDate(-1, 0, 0)},
		{name: "Next year", date: now.AddDate(1, 0, 0)},
		{name: "Two years back", date: now.AddDate(-2, 0, 0), wantErr: true},
		{name: "Two years out", date: now.AddDate(2, 0, 0), wantErr: true},
		{name: "End after start", date: now, endDate: null.TimeFrom(now.AddDate(0, 0, 2))},
		{name: "End equals start", date: now, endDate: null.TimeFrom(now)},
		{name: "End before start", date: now, endDate: null.TimeFrom(now.AddDate(0, 0, -1)), wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateDates(tt.date, tt.endDate)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateDates() error = %v; wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewEvent_Validate(t *testing.T) {
	validate := newTestValidate(t)
	now := time.Now().UTC()

	t.Run("Cleans fields", func(t *testing.T) {
		ne := NewEvent{Name: "  Tech Week ", LevelID: "level_001", Date: now, Location: " Main Hall ", OrganizerID: 1}
		if err := ne.Validate(context.Background(), validate, nameCheckStub{}); err != nil {
			t.Fatalf("Validate() error = %v", err)
		}
		if ne.Name != "Tech Week" || ne.Location != "Main Hall" {
			t.Errorf("fields not trimmed: %q, %q", ne.Name, ne.Location)
		}
	})

	t.Run("Duplicate name surfaces as field error", func(t *testing.T) {
		dup := core.NewValidationError(ErrNameExists, core.FieldError{Field: "name", Error: ErrNameExists.Error()})
		ne := NewEvent{Name: "Tech Week", LevelID: "level_001", Date: now, Location: "Hall", OrganizerID: 1}
		if err := ne.Validate(context.Background(), validate, nameCheckStub{err: dup}); err != dup {
			t.Errorf("Validate() error = %v; want the uniqueness error", err)
		}
	})

	t.Run("Unknown status rejected", func(t *testing.T) {
		ne := NewEvent{Name: "Tech Week", LevelID: "level_001", Date: now, Location: "Hall", OrganizerID: 1, Status: "archived"}
		if err := ne.Validate(context.Background(), validate, nameCheckStub{}); err == nil {
			t.Error("Validate() = nil; want oneof error")
		}
	})
}

func TestUpdateEvent_Validate(t *testing.T) {
	validate := newTestValidate(t)
	now := time.Now().UTC()
	orig := Event{
		ID: 1, Name: "Tech Week", LevelID: "level_001", Date: now,
		Location: "Main Hall", OrganizerID: 1, Status: StatusPublished,
	}

	t.Run("Empty fields fall back to original", func(t *testing.T) {
		ue := UpdateEvent{Status: StatusDraft}
		if err := ue.Validate(context.Background(), orig, validate, nameCheckStub{}); err != nil {
			t.Fatalf("Validate() error = %v", err)
		}
		if ue.Name != orig.Name || ue.LevelID != orig.LevelID || ue.Location != orig.Location {
			t.Errorf("fallbacks not applied: %+v", ue)
		}
		if !ue.Date.Equal(orig.Date) || ue.OrganizerID != orig.OrganizerID {
			t.Errorf("fallbacks not applied: %+v", ue)
		}
		if ue.Status != StatusDraft {
			t.Errorf("Status = %q; explicit value must win", ue.Status)
		}
	})

	t.Run("Date window still enforced", func(t *testing.T) {
		ue := UpdateEvent{Date: now.AddDate(3, 0, 0)}
		if err := ue.Validate(context.Background(), orig, validate, nameCheckStub{}); err == nil {
			t.Error("Validate() = nil; want date window error")
		}
	})
}
