package dummydb

import (
	"context"
	"sort"
	"strings"

	"github.com/trezcool/meritum/core/organizer"
)

type organizerRepository struct {
	db *organizerTable
}

func NewOrganizerRepository(db *DB) organizer.Repository {
	return &organizerRepository{db: db.organizer}
}

func (repo *organizerRepository) CheckNameUniqueness(ctx context.Context, nameEN string, excluded ...organizer.Organizer) error {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, org := range repo.db.table {
		if strings.EqualFold(org.NameEN, nameEN) && !isExcluded(*org, excluded) {
			return organizer.ErrNameExists
		}
	}
	return nil
}

func (repo *organizerRepository) CreateOrganizer(ctx context.Context, org organizer.Organizer) (organizer.Organizer, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.table[org.ID] = &org
	return org, nil
}

func (repo *organizerRepository) QueryAllOrganizers(ctx context.Context) ([]organizer.Organizer, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	orgs := make([]organizer.Organizer, 0, len(repo.db.table))
	for _, org := range repo.db.table {
		orgs = append(orgs, *org)
	}
	sort.Slice(orgs, func(i, j int) bool { return orgs[i].NameEN < orgs[j].NameEN })
	return orgs, nil
}

func (repo *organizerRepository) GetOrganizerByID(ctx context.Context, id int) (organizer.Organizer, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if org, ok := repo.db.table[id]; ok {
		return *org, nil
	}
	return organizer.Organizer{}, organizer.ErrNotFound
}

func (repo *organizerRepository) UpdateOrganizer(ctx context.Context, org organizer.Organizer) (organizer.Organizer, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	orig, ok := repo.db.table[org.ID]
	if !ok {
		return organizer.Organizer{}, organizer.ErrNotFound
	}
	orig.NameEN = org.NameEN
	orig.NameBM = org.NameBM
	orig.Status = org.Status
	orig.UpdatedAt = org.UpdatedAt
	orig.UpdatedBy = org.UpdatedBy
	return *orig, nil
}

func (repo *organizerRepository) DeleteOrganizerByID(ctx context.Context, id int) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return organizer.ErrNotFound
	}
	delete(repo.db.table, id)
	delete(repo.db.subs, id)
	return nil
}

func (repo *organizerRepository) CreateSubOrganizer(ctx context.Context, sub organizer.SubOrganizer) (organizer.SubOrganizer, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	subs, ok := repo.db.subs[sub.OrganizerID]
	if !ok {
		subs = make(map[string]*organizer.SubOrganizer)
		repo.db.subs[sub.OrganizerID] = subs
	}
	subs[sub.ID] = &sub
	return sub, nil
}

func (repo *organizerRepository) QuerySubOrganizers(ctx context.Context, organizerID int) ([]organizer.SubOrganizer, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	subs := make([]organizer.SubOrganizer, 0, len(repo.db.subs[organizerID]))
	for _, sub := range repo.db.subs[organizerID] {
		subs = append(subs, *sub)
	}
	sort.Slice(subs, func(i, j int) bool { return subs[i].NameEN < subs[j].NameEN })
	return subs, nil
}

func (repo *organizerRepository) GetSubOrganizerByID(ctx context.Context, organizerID int, id string) (organizer.SubOrganizer, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if sub, ok := repo.db.subs[organizerID][id]; ok {
		return *sub, nil
	}
	return organizer.SubOrganizer{}, organizer.ErrSubNotFound
}

func (repo *organizerRepository) UpdateSubOrganizer(ctx context.Context, sub organizer.SubOrganizer) (organizer.SubOrganizer, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	orig, ok := repo.db.subs[sub.OrganizerID][sub.ID]
	if !ok {
		return organizer.SubOrganizer{}, organizer.ErrSubNotFound
	}
	orig.NameEN = sub.NameEN
	orig.NameBM = sub.NameBM
	orig.UpdatedAt = sub.UpdatedAt
	orig.UpdatedBy = sub.UpdatedBy
	return *orig, nil
}

func (repo *organizerRepository) DeleteSubOrganizerByID(ctx context.Context, organizerID int, id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.subs[organizerID][id]; !ok {
		return organizer.ErrSubNotFound
	}
	delete(repo.db.subs[organizerID], id)
	return nil
}

func isExcluded(org organizer.Organizer, excluded []organizer.Organizer) bool {
	for _, ex := range excluded {
		if ex.ID == org.ID {
			return true
		}
	}
	return false
}
