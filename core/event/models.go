package event

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/meritum/core"
)

// Statuses
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

var (
	// errors
	ErrNotFound   = errors.New("event not found")
	ErrNameExists = errors.New("an event with this name already exists")
)

type (
	// Event is keyed by a numeric ID allocated off the "eventId" counter.
	// Child activities share the events table; they point at their parent via
	// ParentEventID and inherit its level, organizer and custom roles.
	Event struct {
		ID               int       `json:"id"`
		Name             string    `json:"name"`
		LevelID          string    `json:"level_id"`
		Level            string    `json:"level"` // display name, kept for backward compatibility
		Date             time.Time `json:"date"`
		EndDate          null.Time `json:"end_date,omitempty"`
		Location         string    `json:"location"`
		OrganizerID      int       `json:"organizer_id"`
		SubOrganizerID   string    `json:"sub_organizer_id,omitempty"`
		Description      string    `json:"description"`
		Status           string    `json:"status"`
		CustomRoles      []string  `json:"custom_roles"`
		IsSubActivity    bool      `json:"is_sub_activity"`
		ParentEventID    null.Int  `json:"parent_event_id,omitempty"`
		ActivityOrder    null.Int  `json:"activity_order,omitempty"`
		HasSubActivities bool      `json:"has_sub_activities"`
		CreatedAt        time.Time `json:"created_at"` // UTC
		CreatedBy        string    `json:"created_by"`
		UpdatedAt        time.Time `json:"updated_at"` // UTC
		UpdatedBy        string    `json:"updated_by"`
	}

	Repository interface {
		// CheckNameUniqueness does a case-insensitive match on Name.
		CheckNameUniqueness(ctx context.Context, name string, excluded ...Event) error
		CreateEvent(ctx context.Context, evt Event) (Event, error)
		QueryAllEvents(ctx context.Context) ([]Event, error)
		GetEventByID(ctx context.Context, id int) (Event, error)
		QueryChildActivities(ctx context.Context, parentID int) ([]Event, error)
		UpdateEvent(ctx context.Context, evt Event) (Event, error)
		SetHasSubActivities(ctx context.Context, id int, has bool) error
		DeleteEventByID(ctx context.Context, id int) error
	}
)

func (e Event) IsDraft() bool { return e.Status == StatusDraft }

// NewEvent contains information needed to create a new Event.
type NewEvent struct {
	Name           string    `json:"name" validate:"required"`
	LevelID        string    `json:"level_id" validate:"required"`
	Date           time.Time `json:"date" validate:"required"`
	EndDate        null.Time `json:"end_date"`
	Location       string    `json:"location" validate:"required"`
	OrganizerID    int       `json:"organizer_id" validate:"required"`
	SubOrganizerID string    `json:"sub_organizer_id"`
	Description    string    `json:"description"`
	Status         string    `json:"status" validate:"omitempty,oneof=draft published"`
	CustomRoles    []string  `json:"custom_roles"`
}

func (ne *NewEvent) Validate(ctx context.Context, validate *validator.Validate, svc ServiceInterface) error {
	ne.Name = core.CleanString(ne.Name)
	ne.Location = core.CleanString(ne.Location)
	ne.Description = core.CleanString(ne.Description)

	if err := validate.Struct(ne); err != nil {
		return err
	}
	if err := validateDates(ne.Date, ne.EndDate); err != nil {
		return err
	}
	return svc.CheckNameUniqueness(ctx, ne.Name)
}

// UpdateEvent defines what information may be provided to modify an existing
// Event. CreatedAt/CreatedBy are preserved.
type UpdateEvent struct {
	Name           string    `json:"name"`
	LevelID        string    `json:"level_id"`
	Date           time.Time `json:"date"`
	EndDate        null.Time `json:"end_date"`
	Location       string    `json:"location"`
	OrganizerID    int       `json:"organizer_id"`
	SubOrganizerID string    `json:"sub_organizer_id"`
	Description    string    `json:"description"`
	Status         string    `json:"status" validate:"omitempty,oneof=draft published"`
	CustomRoles    []string  `json:"custom_roles"`
}

func (ue *UpdateEvent) Validate(ctx context.Context, orig Event, validate *validator.Validate, svc ServiceInterface) error {
	if name := core.CleanString(ue.Name); name != "" {
		ue.Name = name
	} else {
		ue.Name = orig.Name
	}
	if ue.LevelID == "" {
		ue.LevelID = orig.LevelID
	}
	if ue.Date.IsZero() {
		ue.Date = orig.Date
	}
	if loc := core.CleanString(ue.Location); loc != "" {
		ue.Location = loc
	} else {
		ue.Location = orig.Location
	}
	if ue.OrganizerID == 0 {
		ue.OrganizerID = orig.OrganizerID
	}
	if ue.Status == "" {
		ue.Status = orig.Status
	}

	if err := validate.Struct(ue); err != nil {
		return err
	}
	if err := validateDates(ue.Date, ue.EndDate); err != nil {
		return err
	}
	return svc.CheckNameUniqueness(ctx, ue.Name, orig)
}

// NewChildActivity contains information needed to attach a child activity to
// a parent Event. Level, organizer and custom roles are inherited.
type NewChildActivity struct {
	Name          string    `json:"name" validate:"required"`
	Date          time.Time `json:"date" validate:"required"`
	Location      string    `json:"location"`
	Description   string    `json:"description"`
	Status        string    `json:"status" validate:"omitempty,oneof=draft published"`
	ActivityOrder null.Int  `json:"activity_order"`
}

func (nc *NewChildActivity) Validate(validate *validator.Validate) error {
	nc.Name = core.CleanString(nc.Name)
	nc.Location = core.CleanString(nc.Location)
	nc.Description = core.CleanString(nc.Description)
	return validate.Struct(nc)
}

// validateDates enforces the allowed event window: the start year must fall
// within last, current or next year, and EndDate cannot precede Date.
func validateDates(date time.Time, endDate null.Time) error {
	currentYear := time.Now().UTC().Year()
	if y := date.Year(); y < currentYear-1 || y > currentYear+1 {
		return core.NewValidationError(nil, core.FieldError{
			Field: "date",
			Error: "event date must be within last, current or next year",
		})
	}
	if endDate.Valid && endDate.Time.Before(date) {
		return core.NewValidationError(nil, core.FieldError{
			Field: "end_date",
			Error: "end date cannot be before start date",
		})
	}
	return nil
}
