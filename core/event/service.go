package event

import (
	"context"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/meritum/core"
	"github.com/trezcool/meritum/core/counter"
	"github.com/trezcool/meritum/core/level"
)

type (
	ServiceInterface interface {
		CheckNameUniqueness(ctx context.Context, name string, excluded ...Event) error
		Create(ctx context.Context, ne NewEvent, actor string) (Event, error)
		QueryAll(ctx context.Context) ([]Event, error)
		GetByID(ctx context.Context, id int) (Event, error)
		Update(ctx context.Context, id int, ue UpdateEvent, actor string) (Event, error)
		Delete(ctx context.Context, id int) error

		AddChildActivity(ctx context.Context, parentID int, nc NewChildActivity, actor string) (Event, error)
		QueryChildActivities(ctx context.Context, parentID int) ([]Event, error)
	}

	Service struct {
		repo   Repository
		alloc  counter.Allocator
		levels *level.Service
	}
)

var _ ServiceInterface = (*Service)(nil)

func NewService(repo Repository, alloc counter.Allocator, levels *level.Service) *Service {
	return &Service{repo: repo, alloc: alloc, levels: levels}
}

func (svc *Service) CheckNameUniqueness(ctx context.Context, name string, excluded ...Event) error {
	if err := svc.repo.CheckNameUniqueness(ctx, name, excluded...); err != nil {
		if err == ErrNameExists {
			return core.NewValidationError(err, core.FieldError{Field: "name", Error: err.Error()})
		}
		return err
	}
	return nil
}

func (svc *Service) Create(ctx context.Context, ne NewEvent, actor string) (Event, error) {
	levelName, err := svc.levels.Name(ctx, ne.LevelID)
	if err != nil {
		return Event{}, err
	}
	id, err := svc.alloc.Next(ctx, counter.EventID)
	if err != nil {
		return Event{}, err
	}

	now := time.Now().UTC()
	status := ne.Status
	if status == "" {
		status = StatusPublished
	}
	evt := Event{
		ID:             id,
		Name:           ne.Name,
		LevelID:        ne.LevelID,
		Level:          levelName,
		Date:           ne.Date,
		EndDate:        ne.EndDate,
		Location:       ne.Location,
		OrganizerID:    ne.OrganizerID,
		SubOrganizerID: ne.SubOrganizerID,
		Description:    ne.Description,
		Status:         status,
		CustomRoles:    ne.CustomRoles,
		CreatedAt:      now,
		CreatedBy:      actor,
		UpdatedAt:      now,
		UpdatedBy:      actor,
	}
	return svc.repo.CreateEvent(ctx, evt)
}

func (svc *Service) QueryAll(ctx context.Context) ([]Event, error) {
	return svc.repo.QueryAllEvents(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id int) (Event, error) {
	return svc.repo.GetEventByID(ctx, id)
}

func (svc *Service) Update(ctx context.Context, id int, ue UpdateEvent, actor string) (Event, error) {
	levelName, err := svc.levels.Name(ctx, ue.LevelID)
	if err != nil {
		return Event{}, err
	}

	evt := Event{
		ID:             id,
		Name:           ue.Name,
		LevelID:        ue.LevelID,
		Level:          levelName,
		Date:           ue.Date,
		EndDate:        ue.EndDate,
		Location:       ue.Location,
		OrganizerID:    ue.OrganizerID,
		SubOrganizerID: ue.SubOrganizerID,
		Description:    ue.Description,
		Status:         ue.Status,
		CustomRoles:    ue.CustomRoles,
		UpdatedAt:      time.Now().UTC(),
		UpdatedBy:      actor,
	}
	return svc.repo.UpdateEvent(ctx, evt)
}

func (svc *Service) Delete(ctx context.Context, id int) error {
	return svc.repo.DeleteEventByID(ctx, id)
}

// AddChildActivity creates a nested activity under `parentID`. The child
// inherits the parent's level, organizer and custom roles; its location
// defaults to the parent's when omitted. The parent is flagged as having
// sub-activities.
func (svc *Service) AddChildActivity(ctx context.Context, parentID int, nc NewChildActivity, actor string) (Event, error) {
	parent, err := svc.repo.GetEventByID(ctx, parentID)
	if err != nil {
		return Event{}, err
	}

	id, err := svc.alloc.Next(ctx, counter.EventID)
	if err != nil {
		return Event{}, err
	}

	location := nc.Location
	if location == "" {
		location = parent.Location
	}
	status := nc.Status
	if status == "" {
		status = StatusPublished
	}

	now := time.Now().UTC()
	child := Event{
		ID:             id,
		Name:           nc.Name,
		LevelID:        parent.LevelID,
		Level:          parent.Level,
		Date:           nc.Date,
		Location:       location,
		OrganizerID:    parent.OrganizerID,
		SubOrganizerID: parent.SubOrganizerID,
		Description:    nc.Description,
		Status:         status,
		CustomRoles:    parent.CustomRoles,
		IsSubActivity:  true,
		ParentEventID:  null.IntFrom(parent.ID),
		ActivityOrder:  nc.ActivityOrder,
		CreatedAt:      now,
		CreatedBy:      actor,
		UpdatedAt:      now,
		UpdatedBy:      actor,
	}
	child, err = svc.repo.CreateEvent(ctx, child)
	if err != nil {
		return Event{}, err
	}

	if !parent.HasSubActivities {
		if err = svc.repo.SetHasSubActivities(ctx, parent.ID, true); err != nil {
			return Event{}, err
		}
	}
	return child, nil
}

func (svc *Service) QueryChildActivities(ctx context.Context, parentID int) ([]Event, error) {
	return svc.repo.QueryChildActivities(ctx, parentID)
}
