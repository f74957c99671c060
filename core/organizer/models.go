package organizer

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/meritum/core"
)

// Statuses
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

var (
	// errors
	ErrNotFound    = errors.New("organizer not found")
	ErrSubNotFound = errors.New("sub-organizer not found")
	ErrNameExists  = errors.New("an organizer with this name already exists")
)

type (
	// Organizer is the body responsible for an event. IDs are allocated off
	// the "organizerId" counter, so they are numeric and strictly increasing.
	Organizer struct {
		ID        int       `json:"id"`
		NameEN    string    `json:"name_en"`
		NameBM    string    `json:"name_bm"`
		Status    string    `json:"status"`
		CreatedAt time.Time `json:"created_at"` // UTC
		CreatedBy string    `json:"created_by"`
		UpdatedAt time.Time `json:"updated_at"` // UTC
		UpdatedBy string    `json:"updated_by"`
	}

	// SubOrganizer nests under exactly one parent Organizer.
	SubOrganizer struct {
		ID          string    `json:"id"`
		OrganizerID int       `json:"organizer_id"`
		NameEN      string    `json:"name_en"`
		NameBM      string    `json:"name_bm"`
		CreatedAt   time.Time `json:"created_at"` // UTC
		CreatedBy   string    `json:"created_by"`
		UpdatedAt   time.Time `json:"updated_at"` // UTC
		UpdatedBy   string    `json:"updated_by"`
	}

	Repository interface {
		// CheckNameUniqueness does a case-insensitive match on NameEN.
		CheckNameUniqueness(ctx context.Context, nameEN string, excluded ...Organizer) error
		CreateOrganizer(ctx context.Context, org Organizer) (Organizer, error)
		QueryAllOrganizers(ctx context.Context) ([]Organizer, error)
		GetOrganizerByID(ctx context.Context, id int) (Organizer, error)
		UpdateOrganizer(ctx context.Context, org Organizer) (Organizer, error)
		DeleteOrganizerByID(ctx context.Context, id int) error

		CreateSubOrganizer(ctx context.Context, sub SubOrganizer) (SubOrganizer, error)
		QuerySubOrganizers(ctx context.Context, organizerID int) ([]SubOrganizer, error)
		GetSubOrganizerByID(ctx context.Context, organizerID int, id string) (SubOrganizer, error)
		UpdateSubOrganizer(ctx context.Context, sub SubOrganizer) (SubOrganizer, error)
		DeleteSubOrganizerByID(ctx context.Context, organizerID int, id string) error
	}
)

func (o Organizer) IsActive() bool { return o.Status == StatusActive }

// NewOrganizer contains information needed to create a new Organizer.
type NewOrganizer struct {
	NameEN string `json:"name_en" validate:"required"`
	NameBM string `json:"name_bm" validate:"required"`
	Status string `json:"status" validate:"omitempty,oneof=active inactive"`
}

func (no *NewOrganizer) Validate(ctx context.Context, validate *validator.Validate, svc ServiceInterface) error {
	no.NameEN = core.CleanString(no.NameEN)
	no.NameBM = core.CleanString(no.NameBM)

	if err := validate.Struct(no); err != nil {
		return err
	}
	return svc.CheckNameUniqueness(ctx, no.NameEN)
}

// UpdateOrganizer defines what information may be provided to modify an
// existing Organizer.
type UpdateOrganizer struct {
	NameEN string `json:"name_en"`
	NameBM string `json:"name_bm"`
	Status string `json:"status" validate:"omitempty,oneof=active inactive"`
}

func (uo *UpdateOrganizer) Validate(ctx context.Context, orig Organizer, validate *validator.Validate, svc ServiceInterface) error {
	if name := core.CleanString(uo.NameEN); name != "" {
		uo.NameEN = name
	} else {
		uo.NameEN = orig.NameEN
	}
	if name := core.CleanString(uo.NameBM); name != "" {
		uo.NameBM = name
	} else {
		uo.NameBM = orig.NameBM
	}
	if uo.Status == "" {
		uo.Status = orig.Status
	}

	if err := validate.Struct(uo); err != nil {
		return err
	}
	return svc.CheckNameUniqueness(ctx, uo.NameEN, orig)
}

// NewSubOrganizer contains information needed to attach a SubOrganizer.
type NewSubOrganizer struct {
	NameEN string `json:"name_en" validate:"required"`
	NameBM string `json:"name_bm" validate:"required"`
}

func (ns *NewSubOrganizer) Validate(validate *validator.Validate) error {
	ns.NameEN = core.CleanString(ns.NameEN)
	ns.NameBM = core.CleanString(ns.NameBM)
	return validate.Struct(ns)
}
