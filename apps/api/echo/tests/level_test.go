package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	echoapi "github.com/trezcool/meritum/apps/api/echo"
	"github.com/trezcool/meritum/core/level"
	testutil "github.com/trezcool/meritum/tests"
)

func Test_levelApi(t *testing.T) {
	env := setup(t)
	admToken := adminToken(t)
	stdToken := studentToken(t, "S12345")
	testutil.SeedLevels(t, env.levelRepo)

	// retire college level
	college := level.DefaultLevels[3]
	college.IsActive = false
	body := marchallObj(t, echoapi.LevelRequest{
		Name:        college.Name,
		ShortName:   college.ShortName,
		Order:       college.Order,
		Description: college.Description,
		IsActive:    false,
		Color:       college.Color,
	})
	req, rec := newAuthRequest(http.MethodPut, "/v1/levels/"+college.ID, admToken, body)
	env.app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("upsert code = %v; body = %s", rec.Code, rec.Body.String())
	}

	active := []interface{}{level.DefaultLevels[0], level.DefaultLevels[1], level.DefaultLevels[2]}
	all := append(append([]interface{}{}, active...), college)

	tests := []httpTest{
		{name: "Auth required", path: "/v1/levels", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{name: "Active levels in order", path: "/v1/levels", token: stdToken, wantData: marchallList(t, active...)},
		{name: "All levels for admins", path: "/v1/levels?all=true", token: admToken, wantData: marchallList(t, all...)},
		{
			name: "All levels denied to students", path: "/v1/levels?all=true", token: stdToken,
			wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "permission denied"}),
		},
		{
			name: "Upsert requires admin", method: http.MethodPut, path: "/v1/levels/level_004", token: stdToken,
			body: body, wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "permission denied"}),
		},
		{
			name: "Name required", method: http.MethodPut, path: "/v1/levels/level_005", token: admToken,
			body: marchallObj(t, echoapi.LevelRequest{ShortName: "X"}), wantCode: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env.run(t, tt)
		})
	}

	// new level becomes visible right away; the cache is dropped on writes
	newBody := marchallObj(t, echoapi.LevelRequest{Name: "Faculty Level", ShortName: "Faculty", Order: 5, IsActive: true, Color: "#9333ea"})
	req, rec = newAuthRequest(http.MethodPut, "/v1/levels/level_005", admToken, newBody)
	env.app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("upsert code = %v; body = %s", rec.Code, rec.Body.String())
	}
	var created level.Level
	_ = json.Unmarshal(rec.Body.Bytes(), &created)
	if created.ID != "level_005" {
		t.Errorf("ID = %q; want path ID", created.ID)
	}

	req, rec = newAuthRequest(http.MethodGet, "/v1/levels", stdToken)
	env.app.ServeHTTP(rec, req)
	testutil.JSONEq(t, rec.Body.Bytes(), marchallList(t, append(append([]interface{}{}, active...), created)...))

	// delete
	req, rec = newAuthRequest(http.MethodDelete, "/v1/levels/level_005", admToken)
	env.app.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete code = %v", rec.Code)
	}
	req, rec = newAuthRequest(http.MethodDelete, "/v1/levels/level_005", admToken)
	env.app.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("repeat delete code = %v; want 404", rec.Code)
	}
}
