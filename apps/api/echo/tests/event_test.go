package tests

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/trezcool/meritum/core/event"
	testutil "github.com/trezcool/meritum/tests"
)

func Test_eventApi_crud(t *testing.T) {
	env := setup(t)
	admToken := adminToken(t)
	stdToken := studentToken(t, "S12345")
	testutil.SeedLevels(t, env.levelRepo)
	testutil.CreateOrganizer(t, env.orgRepo, 1, "Engineering Faculty")

	date := time.Now().UTC().Truncate(time.Second)

	// create
	body := marchallObj(t, event.NewEvent{
		Name:        "Tech Week",
		LevelID:     "level_001",
		Date:        date,
		Location:    "Main Hall",
		OrganizerID: 1,
		CustomRoles: []string{"Committee", "Participant"},
	})
	req, rec := newAuthRequest(http.MethodPost, "/v1/events", admToken, body)
	env.app.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create code = %v; body = %s", rec.Code, rec.Body.String())
	}
	var evt event.Event
	if err := json.Unmarshal(rec.Body.Bytes(), &evt); err != nil {
		t.Fatalf("unmarshalling event: %v", err)
	}
	if evt.ID != 1 {
		t.Errorf("ID = %d; want first counter value 1", evt.ID)
	}
	if evt.Level != "University Level" {
		t.Errorf("Level = %q; want resolved display name", evt.Level)
	}
	if evt.Status != event.StatusPublished {
		t.Errorf("Status = %q; want default published", evt.Status)
	}

	// a draft the student must not see
	draftBody := marchallObj(t, event.NewEvent{
		Name:        "Secret Planning",
		LevelID:     "level_001",
		Date:        date,
		Location:    "Back Office",
		OrganizerID: 1,
		Status:      event.StatusDraft,
	})
	req, rec = newAuthRequest(http.MethodPost, "/v1/events", admToken, draftBody)
	env.app.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create draft code = %v; body = %s", rec.Code, rec.Body.String())
	}
	var draft event.Event
	_ = json.Unmarshal(rec.Body.Bytes(), &draft)

	tests := []httpTest{
		{name: "Auth required", path: "/v1/events", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{name: "Students see published only", path: "/v1/events", token: stdToken, wantData: marchallList(t, evt)},
		{name: "Admins see drafts too", path: "/v1/events", token: admToken, wantData: marchallList(t, evt, draft)},
		{name: "Draft hidden from student", path: "/v1/events/2", token: stdToken, wantCode: http.StatusNotFound},
		{name: "Draft visible to admin", path: "/v1/events/2", token: admToken, wantData: marchallObj(t, draft)},
		{
			name: "Unknown level rejected", method: http.MethodPost, path: "/v1/events", token: admToken,
			body: marchallObj(t, event.NewEvent{
				Name: "No Level", LevelID: "level_999", Date: date, Location: "Hall", OrganizerID: 1,
			}),
			wantCode: http.StatusNotFound,
		},
		{
			name: "Date outside window rejected", method: http.MethodPost, path: "/v1/events", token: admToken,
			body: marchallObj(t, event.NewEvent{
				Name: "Too Far Out", LevelID: "level_001", Date: date.AddDate(3, 0, 0), Location: "Hall", OrganizerID: 1,
			}),
			wantCode: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env.run(t, tt)
		})
	}
}

func Test_eventApi_childActivities(t *testing.T) {
	env := setup(t)
	admToken := adminToken(t)
	testutil.SeedLevels(t, env.levelRepo)
	testutil.CreateOrganizer(t, env.orgRepo, 1, "Engineering Faculty")

	date := time.Now().UTC().Truncate(time.Second)
	body := marchallObj(t, event.NewEvent{
		Name:        "Tech Week",
		LevelID:     "level_002",
		Date:        date,
		Location:    "Main Hall",
		OrganizerID: 1,
		CustomRoles: []string{"Committee"},
	})
	req, rec := newAuthRequest(http.MethodPost, "/v1/events", admToken, body)
	env.app.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create code = %v; body = %s", rec.Code, rec.Body.String())
	}
	var parent event.Event
	_ = json.Unmarshal(rec.Body.Bytes(), &parent)

	childBody := marchallObj(t, event.NewChildActivity{Name: "Opening Ceremony", Date: date})
	req, rec = newAuthRequest(http.MethodPost, "/v1/events/1/activities", admToken, childBody)
	env.app.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create child code = %v; body = %s", rec.Code, rec.Body.String())
	}
	var child event.Event
	if err := json.Unmarshal(rec.Body.Bytes(), &child); err != nil {
		t.Fatalf("unmarshalling child: %v", err)
	}

	// inherited fields
	if child.LevelID != parent.LevelID || child.Level != parent.Level {
		t.Errorf("child level = (%q, %q); want parent's", child.LevelID, child.Level)
	}
	if child.OrganizerID != parent.OrganizerID {
		t.Errorf("child OrganizerID = %d; want parent's", child.OrganizerID)
	}
	if child.Location != parent.Location {
		t.Errorf("child Location = %q; want parent's when omitted", child.Location)
	}
	if !child.IsSubActivity || !child.ParentEventID.Valid || child.ParentEventID.Int != parent.ID {
		t.Errorf("child parent linkage broken: %+v", child)
	}

	// parent is flagged
	req, rec = newAuthRequest(http.MethodGet, "/v1/events/1", admToken)
	env.app.ServeHTTP(rec, req)
	var reloaded event.Event
	_ = json.Unmarshal(rec.Body.Bytes(), &reloaded)
	if !reloaded.HasSubActivities {
		t.Error("parent HasSubActivities = false; want true")
	}

	// child listing
	req, rec = newAuthRequest(http.MethodGet, "/v1/events/1/activities", admToken)
	env.app.ServeHTTP(rec, req)
	testutil.JSONEq(t, rec.Body.Bytes(), marchallList(t, child))
}
