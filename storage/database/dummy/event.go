package dummydb

import (
	"context"
	"sort"
	"strings"

	"github.com/trezcool/meritum/core/event"
)

type eventRepository struct {
	db *eventTable
}

func NewEventRepository(db *DB) event.Repository {
	return &eventRepository{db: db.event}
}

func (repo *eventRepository) CheckNameUniqueness(ctx context.Context, name string, excluded ...event.Event) error {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, evt := range repo.db.table {
		if strings.EqualFold(evt.Name, name) && !isExcludedEvent(*evt, excluded) {
			return event.ErrNameExists
		}
	}
	return nil
}

func (repo *eventRepository) CreateEvent(ctx context.Context, evt event.Event) (event.Event, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.table[evt.ID] = &evt
	return evt, nil
}

func (repo *eventRepository) QueryAllEvents(ctx context.Context) ([]event.Event, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	events := make([]event.Event, 0, len(repo.db.table))
	for _, evt := range repo.db.table {
		events = append(events, *evt)
	}
	sort.Slice(events, func(i, j int) bool {
		if !events[i].Date.Equal(events[j].Date) {
			return events[i].Date.After(events[j].Date)
		}
		return events[i].ID < events[j].ID
	})
	return events, nil
}

func (repo *eventRepository) GetEventByID(ctx context.Context, id int) (event.Event, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if evt, ok := repo.db.table[id]; ok {
		return *evt, nil
	}
	return event.Event{}, event.ErrNotFound
}

func (repo *eventRepository) QueryChildActivities(ctx context.Context, parentID int) ([]event.Event, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	children := make([]event.Event, 0)
	for _, evt := range repo.db.table {
		if evt.IsSubActivity && evt.ParentEventID.Valid && evt.ParentEventID.Int == parentID {
			children = append(children, *evt)
		}
	}
	sort.Slice(children, func(i, j int) bool {
		if children[i].ActivityOrder.Valid && children[j].ActivityOrder.Valid {
			return children[i].ActivityOrder.Int < children[j].ActivityOrder.Int
		}
		return children[i].ID < children[j].ID
	})
	return children, nil
}

func (repo *eventRepository) UpdateEvent(ctx context.Context, evt event.Event) (event.Event, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	orig, ok := repo.db.table[evt.ID]
	if !ok {
		return event.Event{}, event.ErrNotFound
	}
	// only save set fields; creation audit and nesting flags are preserved
	orig.Name = evt.Name
	orig.LevelID = evt.LevelID
	orig.Level = evt.Level
	orig.Date = evt.Date
	orig.EndDate = evt.EndDate
	orig.Location = evt.Location
	orig.OrganizerID = evt.OrganizerID
	orig.SubOrganizerID = evt.SubOrganizerID
	orig.Description = evt.Description
	orig.Status = evt.Status
	if evt.CustomRoles != nil {
		orig.CustomRoles = evt.CustomRoles
	}
	orig.UpdatedAt = evt.UpdatedAt
	orig.UpdatedBy = evt.UpdatedBy
	return *orig, nil
}

func (repo *eventRepository) SetHasSubActivities(ctx context.Context, id int, has bool) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	evt, ok := repo.db.table[id]
	if !ok {
		return event.ErrNotFound
	}
	evt.HasSubActivities = has
	return nil
}

func (repo *eventRepository) DeleteEventByID(ctx context.Context, id int) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return event.ErrNotFound
	}
	delete(repo.db.table, id)
	return nil
}

func isExcludedEvent(evt event.Event, excluded []event.Event) bool {
	for _, ex := range excluded {
		if ex.ID == evt.ID {
			return true
		}
	}
	return false
}
