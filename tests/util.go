// Package testutil holds shared test fixtures and assertion helpers.
package testutil

import (
	"context"
	"encoding/json"
	"reflect"
	"testing"
	"time"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/stretchr/testify/assert"

	"github.com/trezcool/meritum/core/auth"
	"github.com/trezcool/meritum/core/event"
	"github.com/trezcool/meritum/core/level"
	"github.com/trezcool/meritum/core/organizer"
	"github.com/trezcool/meritum/core/student"
)

func CreateAdmin(t *testing.T, repo auth.AdminRepository, email string, active bool) auth.Admin {
	t.Helper()
	adm, err := repo.UpsertAdmin(ctxOf(t), auth.Admin{
		Key:       auth.SanitizeEmailKey(email),
		Email:     email,
		Active:    active,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("CreateAdmin(): %v", err)
	}
	return adm
}

func CreateStudent(t *testing.T, repo student.Repository, matric, name string, totalMerits int) student.Student {
	t.Helper()
	std, err := repo.CreateStudent(ctxOf(t), student.Student{
		MatricNumber: matric,
		Email:        matric + "@student.uni.edu.my",
		DisplayName:  name,
		Role:         auth.RoleStudent,
		TotalMerits:  totalMerits,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("CreateStudent(): %v", err)
	}
	return std
}

func CreateOrganizer(t *testing.T, repo organizer.Repository, id int, nameEN string) organizer.Organizer {
	t.Helper()
	now := time.Now().UTC()
	org, err := repo.CreateOrganizer(ctxOf(t), organizer.Organizer{
		ID:        id,
		NameEN:    nameEN,
		NameBM:    nameEN,
		Status:    organizer.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateOrganizer(): %v", err)
	}
	return org
}

func CreateEvent(t *testing.T, repo event.Repository, id int, name, levelID string, organizerID int) event.Event {
	t.Helper()
	now := time.Now().UTC()
	evt, err := repo.CreateEvent(ctxOf(t), event.Event{
		ID:          id,
		Name:        name,
		LevelID:     levelID,
		Date:        now,
		Location:    "Main Hall",
		OrganizerID: organizerID,
		Status:      event.StatusPublished,
		CustomRoles: []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		t.Fatalf("CreateEvent(): %v", err)
	}
	return evt
}

func SeedLevels(t *testing.T, repo level.Repository) {
	t.Helper()
	for _, lvl := range level.DefaultLevels {
		if _, err := repo.UpsertLevel(ctxOf(t), lvl); err != nil {
			t.Fatalf("SeedLevels(): %v", err)
		}
	}
}

// JSONEq compares two JSON payloads structurally. Lists are matched
// element-wise regardless of order; other mismatches fail the test with a
// unified diff of the pretty-printed forms.
func JSONEq(t *testing.T, got, want []byte) {
	t.Helper()
	var j1, j2 interface{}
	if err := json.Unmarshal(got, &j1); err != nil {
		t.Fatalf("JSONEq(): unmarshalling got: %v", err)
	}
	if err := json.Unmarshal(want, &j2); err != nil {
		t.Fatalf("JSONEq(): unmarshalling want: %v", err)
	}
	if reflect.DeepEqual(j1, j2) {
		return
	}
	if l1, ok := j1.([]interface{}); ok {
		if l2, ok := j2.([]interface{}); ok {
			assert.ElementsMatch(t, l1, l2)
			return
		}
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(prettyJSON(t, j1)),
		B:        difflib.SplitLines(prettyJSON(t, j2)),
		FromFile: "got",
		ToFile:   "want",
		Context:  2,
	})
	if err != nil {
		t.Fatalf("JSONEq(): diffing: %v", err)
	}
	t.Errorf("JSON mismatch:\n%s", diff)
}

func prettyJSON(t *testing.T, v interface{}) string {
	t.Helper()
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		t.Fatalf("prettyJSON(): %v", err)
	}
	return string(data)
}

func ctxOf(t *testing.T) context.Context {
	t.Helper()
	return context.Background()
}
