package level

import (
	"context"
	"testing"
)

// countingRepo tracks how often the backing store is read.
type countingRepo struct {
	levels map[string]Level
	reads  int
}

func newCountingRepo(levels ...Level) *countingRepo {
	repo := &countingRepo{levels: make(map[string]Level, len(levels))}
	for _, lvl := range levels {
		repo.levels[lvl.ID] = lvl
	}
	return repo
}

func (r *countingRepo) QueryAllLevels(ctx context.Context) ([]Level, error) {
	r.reads++
	levels := make([]Level, 0, len(r.levels))
	for _, lvl := range r.levels {
		levels = append(levels, lvl)
	}
	return levels, nil
}

func (r *countingRepo) GetLevelByID(ctx context.Context, id string) (Level, error) {
	if lvl, ok := r.levels[id]; ok {
		return lvl, nil
	}
	return Level{}, ErrNotFound
}

func (r *countingRepo) UpsertLevel(ctx context.Context, lvl Level) (Level, error) {
	r.levels[lvl.ID] = lvl
	return lvl, nil
}

func (r *countingRepo) DeleteLevelByID(ctx context.Context, id string) error {
	if _, ok := r.levels[id]; !ok {
		return ErrNotFound
	}
	delete(r.levels, id)
	return nil
}

func TestService_cache(t *testing.T) {
	ctx := context.Background()
	repo := newCountingRepo(
		Level{ID: "level_001", Name: "University Level", Order: 1, IsActive: true},
		Level{ID: "level_002", Name: "National Level", Order: 2, IsActive: false},
	)
	svc := NewService(repo)

	// repeated reads hit the store once
	for i := 0; i < 3; i++ {
		if _, err := svc.QueryAll(ctx); err != nil {
			t.Fatalf("QueryAll() error = %v", err)
		}
	}
	if _, err := svc.GetByID(ctx, "level_001"); err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if repo.reads != 1 {
		t.Errorf("store reads = %d; want 1", repo.reads)
	}

	// writes drop the cache
	if _, err := svc.Upsert(ctx, Level{ID: "level_003", Name: "International Level", Order: 3, IsActive: true}); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if _, err := svc.GetByID(ctx, "level_003"); err != nil {
		t.Errorf("GetByID() after upsert error = %v", err)
	}
	if repo.reads != 2 {
		t.Errorf("store reads = %d; want reload after write", repo.reads)
	}
}

func TestService_QueryActive(t *testing.T) {
	ctx := context.Background()
	repo := newCountingRepo(
		Level{ID: "level_002", Name: "National Level", Order: 2, IsActive: true},
		Level{ID: "level_001", Name: "University Level", Order: 1, IsActive: true},
		Level{ID: "level_004", Name: "College Level", Order: 4, IsActive: false},
	)
	svc := NewService(repo)

	levels, err := svc.QueryActive(ctx)
	if err != nil {
		t.Fatalf("QueryActive() error = %v", err)
	}
	if len(levels) != 2 {
		t.Fatalf("len(levels) = %d; want inactive filtered", len(levels))
	}
	if levels[0].ID != "level_001" || levels[1].ID != "level_002" {
		t.Errorf("order = [%s, %s]; want display order", levels[0].ID, levels[1].ID)
	}
}

func TestService_Name(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newCountingRepo(Level{ID: "level_001", Name: "University Level", Order: 1, IsActive: true}))

	name, err := svc.Name(ctx, "level_001")
	if err != nil {
		t.Fatalf("Name() error = %v", err)
	}
	if name != "University Level" {
		t.Errorf("Name() = %q", name)
	}
	if _, err = svc.Name(ctx, "level_999"); err != ErrNotFound {
		t.Errorf("Name() error = %v; want ErrNotFound", err)
	}
}

func TestService_Seed(t *testing.T) {
	ctx := context.Background()
	repo := newCountingRepo()
	svc := NewService(repo)

	if err := svc.Seed(ctx); err != nil {
		t.Fatalf("Seed() error = %v", err)
	}
	if len(repo.levels) != len(DefaultLevels) {
		t.Fatalf("seeded %d levels; want %d", len(repo.levels), len(DefaultLevels))
	}

	// re-seeding keeps customized records
	custom := repo.levels["level_001"]
	custom.Name = "Campus Level"
	repo.levels["level_001"] = custom
	if err := svc.Seed(ctx); err != nil {
		t.Fatalf("Seed() error = %v", err)
	}
	if repo.levels["level_001"].Name != "Campus Level" {
		t.Errorf("Name = %q; existing levels must not be overwritten", repo.levels["level_001"].Name)
	}
}
