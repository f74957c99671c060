package organizer

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/trezcool/meritum/core"
	"github.com/trezcool/meritum/core/counter"
)

type (
	ServiceInterface interface {
		CheckNameUniqueness(ctx context.Context, nameEN string, excluded ...Organizer) error
		Create(ctx context.Context, no NewOrganizer, actor string) (Organizer, error)
		QueryAll(ctx context.Context) ([]Organizer, error)
		QueryActive(ctx context.Context) ([]Organizer, error)
		GetByID(ctx context.Context, id int) (Organizer, error)
		Update(ctx context.Context, id int, uo UpdateOrganizer, actor string) (Organizer, error)
		Delete(ctx context.Context, id int) error

		AddSub(ctx context.Context, organizerID int, ns NewSubOrganizer, actor string) (SubOrganizer, error)
		QuerySubs(ctx context.Context, organizerID int) ([]SubOrganizer, error)
		UpdateSub(ctx context.Context, organizerID int, id string, ns NewSubOrganizer, actor string) (SubOrganizer, error)
		DeleteSub(ctx context.Context, organizerID int, id string) error
	}

	Service struct {
		repo  Repository
		alloc counter.Allocator
	}
)

var _ ServiceInterface = (*Service)(nil)

func NewService(repo Repository, alloc counter.Allocator) *Service {
	return &Service{repo: repo, alloc: alloc}
}

func (svc *Service) CheckNameUniqueness(ctx context.Context, nameEN string, excluded ...Organizer) error {
	if err := svc.repo.CheckNameUniqueness(ctx, nameEN, excluded...); err != nil {
		if err == ErrNameExists {
			return core.NewValidationError(err, core.FieldError{Field: "name_en", Error: err.Error()})
		}
		return err
	}
	return nil
}

func (svc *Service) Create(ctx context.Context, no NewOrganizer, actor string) (Organizer, error) {
	id, err := svc.alloc.Next(ctx, counter.OrganizerID)
	if err != nil {
		return Organizer{}, err
	}

	now := time.Now().UTC()
	status := no.Status
	if status == "" {
		status = StatusActive
	}
	org := Organizer{
		ID:        id,
		NameEN:    no.NameEN,
		NameBM:    no.NameBM,
		Status:    status,
		CreatedAt: now,
		CreatedBy: actor,
		UpdatedAt: now,
		UpdatedBy: actor,
	}
	return svc.repo.CreateOrganizer(ctx, org)
}

func (svc *Service) QueryAll(ctx context.Context) ([]Organizer, error) {
	return svc.repo.QueryAllOrganizers(ctx)
}

func (svc *Service) QueryActive(ctx context.Context) ([]Organizer, error) {
	orgs, err := svc.repo.QueryAllOrganizers(ctx)
	if err != nil {
		return nil, err
	}
	active := make([]Organizer, 0, len(orgs))
	for _, org := range orgs {
		if org.IsActive() {
			active = append(active, org)
		}
	}
	return active, nil
}

func (svc *Service) GetByID(ctx context.Context, id int) (Organizer, error) {
	return svc.repo.GetOrganizerByID(ctx, id)
}

func (svc *Service) Update(ctx context.Context, id int, uo UpdateOrganizer, actor string) (Organizer, error) {
	org := Organizer{
		ID:        id,
		NameEN:    uo.NameEN,
		NameBM:    uo.NameBM,
		Status:    uo.Status,
		UpdatedAt: time.Now().UTC(),
		UpdatedBy: actor,
	}
	return svc.repo.UpdateOrganizer(ctx, org)
}

func (svc *Service) Delete(ctx context.Context, id int) error {
	return svc.repo.DeleteOrganizerByID(ctx, id)
}

func (svc *Service) AddSub(ctx context.Context, organizerID int, ns NewSubOrganizer, actor string) (SubOrganizer, error) {
	if _, err := svc.repo.GetOrganizerByID(ctx, organizerID); err != nil {
		return SubOrganizer{}, err
	}

	now := time.Now().UTC()
	sub := SubOrganizer{
		ID:          uuid.New().String(),
		OrganizerID: organizerID,
		NameEN:      ns.NameEN,
		NameBM:      ns.NameBM,
		CreatedAt:   now,
		CreatedBy:   actor,
		UpdatedAt:   now,
		UpdatedBy:   actor,
	}
	return svc.repo.CreateSubOrganizer(ctx, sub)
}

func (svc *Service) QuerySubs(ctx context.Context, organizerID int) ([]SubOrganizer, error) {
	return svc.repo.QuerySubOrganizers(ctx, organizerID)
}

func (svc *Service) UpdateSub(ctx context.Context, organizerID int, id string, ns NewSubOrganizer, actor string) (SubOrganizer, error) {
	sub, err := svc.repo.GetSubOrganizerByID(ctx, organizerID, id)
	if err != nil {
		return SubOrganizer{}, err
	}
	sub.NameEN = ns.NameEN
	sub.NameBM = ns.NameBM
	sub.UpdatedAt = time.Now().UTC()
	sub.UpdatedBy = actor
	return svc.repo.UpdateSubOrganizer(ctx, sub)
}

func (svc *Service) DeleteSub(ctx context.Context, organizerID int, id string) error {
	return svc.repo.DeleteSubOrganizerByID(ctx, organizerID, id)
}
