package level

import (
	"context"
	"errors"
)

var (
	// errors
	ErrNotFound = errors.New("level not found")
)

type (
	// Level is display metadata for an event level. IDs ("level_001", ...)
	// are the stable keys events and merit values point at; names are only
	// for presentation.
	Level struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		ShortName   string `json:"shortName"`
		Order       int    `json:"order"`
		Description string `json:"description"`
		IsActive    bool   `json:"isActive"`
		Color       string `json:"color"`
	}

	Repository interface {
		QueryAllLevels(ctx context.Context) ([]Level, error)
		GetLevelByID(ctx context.Context, id string) (Level, error)
		UpsertLevel(ctx context.Context, lvl Level) (Level, error)
		DeleteLevelByID(ctx context.Context, id string) error
	}
)

// DefaultLevels seeds a fresh installation.
var DefaultLevels = []Level{
	{
		ID:          "level_001",
		Name:        "University Level",
		ShortName:   "University",
		Order:       1,
		Description: "University-wide events and activities",
		IsActive:    true,
		Color:       "#1f2937",
	},
	{
		ID:          "level_002",
		Name:        "National Level",
		ShortName:   "National",
		Order:       2,
		Description: "National level competitions and events",
		IsActive:    true,
		Color:       "#dc2626",
	},
	{
		ID:          "level_003",
		Name:        "International Level",
		ShortName:   "International",
		Order:       3,
		Description: "International level competitions and events",
		IsActive:    true,
		Color:       "#2563eb",
	},
	{
		ID:          "level_004",
		Name:        "College Level",
		ShortName:   "College",
		Order:       4,
		Description: "College and faculty level activities",
		IsActive:    true,
		Color:       "#16a34a",
	},
}
