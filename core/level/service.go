package level

import (
	"context"
	"sort"
	"sync"
	"time"
)

const cacheTTL = 5 * time.Minute

// Service serves level metadata off a short-lived cache; level records change
// rarely but are read on nearly every page.
type Service struct {
	repo Repository

	mu       sync.RWMutex
	cache    map[string]Level
	cachedAt time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) load(ctx context.Context) (map[string]Level, error) {
	svc.mu.RLock()
	if svc.cache != nil && time.Since(svc.cachedAt) < cacheTTL {
		defer svc.mu.RUnlock()
		return svc.cache, nil
	}
	svc.mu.RUnlock()

	levels, err := svc.repo.QueryAllLevels(ctx)
	if err != nil {
		return nil, err
	}
	cache := make(map[string]Level, len(levels))
	for _, lvl := range levels {
		cache[lvl.ID] = lvl
	}

	svc.mu.Lock()
	svc.cache = cache
	svc.cachedAt = time.Now()
	svc.mu.Unlock()
	return cache, nil
}

// Invalidate drops the cache; called after writes.
func (svc *Service) Invalidate() {
	svc.mu.Lock()
	svc.cache = nil
	svc.mu.Unlock()
}

// QueryActive returns active levels in display order.
func (svc *Service) QueryActive(ctx context.Context) ([]Level, error) {
	cache, err := svc.load(ctx)
	if err != nil {
		return nil, err
	}
	levels := make([]Level, 0, len(cache))
	for _, lvl := range cache {
		if lvl.IsActive {
			levels = append(levels, lvl)
		}
	}
	sort.Slice(levels, func(i, j int) bool { return levels[i].Order < levels[j].Order })
	return levels, nil
}

func (svc *Service) QueryAll(ctx context.Context) ([]Level, error) {
	cache, err := svc.load(ctx)
	if err != nil {
		return nil, err
	}
	levels := make([]Level, 0, len(cache))
	for _, lvl := range cache {
		levels = append(levels, lvl)
	}
	sort.Slice(levels, func(i, j int) bool { return levels[i].Order < levels[j].Order })
	return levels, nil
}

func (svc *Service) GetByID(ctx context.Context, id string) (Level, error) {
	cache, err := svc.load(ctx)
	if err != nil {
		return Level{}, err
	}
	lvl, ok := cache[id]
	if !ok {
		return Level{}, ErrNotFound
	}
	return lvl, nil
}

// Name resolves a level ID to its display name.
func (svc *Service) Name(ctx context.Context, id string) (string, error) {
	lvl, err := svc.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return lvl.Name, nil
}

func (svc *Service) Upsert(ctx context.Context, lvl Level) (Level, error) {
	lvl, err := svc.repo.UpsertLevel(ctx, lvl)
	if err != nil {
		return Level{}, err
	}
	svc.Invalidate()
	return lvl, nil
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	if err := svc.repo.DeleteLevelByID(ctx, id); err != nil {
		return err
	}
	svc.Invalidate()
	return nil
}

// Seed installs DefaultLevels for levels that do not exist yet.
func (svc *Service) Seed(ctx context.Context) error {
	for _, lvl := range DefaultLevels {
		if _, err := svc.repo.GetLevelByID(ctx, lvl.ID); err == nil {
			continue
		}
		if _, err := svc.repo.UpsertLevel(ctx, lvl); err != nil {
			return err
		}
	}
	svc.Invalidate()
	return nil
}
