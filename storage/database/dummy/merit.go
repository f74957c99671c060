package dummydb

import (
	"context"

	"github.com/trezcool/meritum/core/merit"
)

type meritRepository struct {
	db *meritTable
}

func NewMeritRepository(db *DB) merit.Repository {
	return &meritRepository{db: db.merit}
}

func (repo *meritRepository) CreateMerit(ctx context.Context, m merit.Merit) (merit.Merit, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	merits, ok := repo.db.table[m.MatricNumber]
	if !ok {
		merits = make(map[string]*merit.Merit)
		repo.db.table[m.MatricNumber] = merits
	}
	merits[m.ID] = &m
	return m, nil
}

func (repo *meritRepository) QueryMeritsByMatric(ctx context.Context, matric string) ([]merit.Merit, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	merits := make([]merit.Merit, 0, len(repo.db.table[matric]))
	for _, m := range repo.db.table[matric] {
		merits = append(merits, *m)
	}
	return merits, nil
}

func (repo *meritRepository) QueryMeritsByEvent(ctx context.Context, eventID int) ([]merit.Merit, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	merits := make([]merit.Merit, 0)
	for _, byID := range repo.db.table {
		for _, m := range byID {
			if m.EventID == eventID {
				merits = append(merits, *m)
			}
		}
	}
	return merits, nil
}

func (repo *meritRepository) DeleteMeritByID(ctx context.Context, matric, id string) (merit.Merit, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	m, ok := repo.db.table[matric][id]
	if !ok {
		return merit.Merit{}, merit.ErrNotFound
	}
	delete(repo.db.table[matric], id)
	return *m, nil
}

func (repo *meritRepository) GetValues(ctx context.Context) (merit.Values, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	// deep copy; callers must not see live maps
	values := merit.Values{
		Levels:       make(map[string]map[string]int, len(repo.db.values.Levels)),
		Achievements: make(map[string]map[string]int, len(repo.db.values.Achievements)),
	}
	for lvl, roles := range repo.db.values.Levels {
		cp := make(map[string]int, len(roles))
		for role, pts := range roles {
			cp[role] = pts
		}
		values.Levels[lvl] = cp
	}
	for ach, perLevel := range repo.db.values.Achievements {
		cp := make(map[string]int, len(perLevel))
		for lvl, pts := range perLevel {
			cp[lvl] = pts
		}
		values.Achievements[ach] = cp
	}
	return values, nil
}

func (repo *meritRepository) SetLevelValues(ctx context.Context, levelID string, roles map[string]int) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	cp := make(map[string]int, len(roles))
	for role, pts := range roles {
		cp[role] = pts
	}
	repo.db.values.Levels[levelID] = cp
	return nil
}
