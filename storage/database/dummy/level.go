package dummydb

import (
	"context"
	"sort"

	"github.com/trezcool/meritum/core/level"
)

type levelRepository struct {
	db *levelTable
}

func NewLevelRepository(db *DB) level.Repository {
	return &levelRepository{db: db.level}
}

func (repo *levelRepository) QueryAllLevels(ctx context.Context) ([]level.Level, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	levels := make([]level.Level, 0, len(repo.db.table))
	for _, lvl := range repo.db.table {
		levels = append(levels, *lvl)
	}
	sort.Slice(levels, func(i, j int) bool { return levels[i].Order < levels[j].Order })
	return levels, nil
}

func (repo *levelRepository) GetLevelByID(ctx context.Context, id string) (level.Level, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if lvl, ok := repo.db.table[id]; ok {
		return *lvl, nil
	}
	return level.Level{}, level.ErrNotFound
}

func (repo *levelRepository) UpsertLevel(ctx context.Context, lvl level.Level) (level.Level, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.table[lvl.ID] = &lvl
	return lvl, nil
}

func (repo *levelRepository) DeleteLevelByID(ctx context.Context, id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return level.ErrNotFound
	}
	delete(repo.db.table, id)
	return nil
}
