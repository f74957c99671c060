package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	. "github.com/trezcool/meritum/apps/api/echo"
	"github.com/trezcool/meritum/core"
	"github.com/trezcool/meritum/core/auth"
	"github.com/trezcool/meritum/core/counter"
	"github.com/trezcool/meritum/core/event"
	"github.com/trezcool/meritum/core/level"
	"github.com/trezcool/meritum/core/merit"
	"github.com/trezcool/meritum/core/organizer"
	"github.com/trezcool/meritum/core/student"
	emailsvc "github.com/trezcool/meritum/services/email"
	identitysvc "github.com/trezcool/meritum/services/identity"
	dummydb "github.com/trezcool/meritum/storage/database/dummy"
	testutil "github.com/trezcool/meritum/tests"
)

var errMissingToken = httpErr{Error: "missing or malformed jwt"}

type testEnv struct {
	app Server

	adminRepo   auth.AdminRepository
	studentRepo student.Repository
	orgRepo     organizer.Repository
	eventRepo   event.Repository
	meritRepo   merit.Repository
	levelRepo   level.Repository
	alloc       counter.Allocator
}

func setup(t *testing.T) *testEnv {
	t.Helper()

	conf := &core.Config{
		TestMode:  true,
		AppName:   "Meritum",
		SecretKey: "test-secret-key",
		Server: core.ServerConfig{
			JWTExpirationDelta:        time.Hour,
			JWTRefreshExpirationDelta: 4 * time.Hour,
		},
	}

	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("setup(): opening db: %v", err)
	}

	env := &testEnv{
		adminRepo:   dummydb.NewAdminRepository(db),
		studentRepo: dummydb.NewStudentRepository(db),
		orgRepo:     dummydb.NewOrganizerRepository(db),
		eventRepo:   dummydb.NewEventRepository(db),
		meritRepo:   dummydb.NewMeritRepository(db),
		levelRepo:   dummydb.NewLevelRepository(db),
		alloc:       dummydb.NewCounterAllocator(db),
	}

	validate := validator.New()
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	core.InitValidators(validate, translator)

	logger := nopLogger{}
	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	idp := identitysvc.NewConsoleProvider(nil)

	levelSvc := level.NewService(env.levelRepo)
	env.app = NewServer(ServerDeps{
		Conf:           conf,
		Logger:         logger,
		Validate:       validate,
		Translator:     translator,
		Resolver:       auth.NewResolver(env.adminRepo, env.studentRepo, idp, mailSvc, logger),
		OrganizerSvc:   organizer.NewService(env.orgRepo, env.alloc),
		EventSvc:       event.NewService(env.eventRepo, env.alloc, levelSvc),
		MeritSvc:       merit.NewService(env.meritRepo, env.eventRepo, env.studentRepo),
		StudentSvc:     student.NewService(env.studentRepo),
		LevelSvc:       levelSvc,
		DisableReqLogs: true,
	})
	return env
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
}

func (env *testEnv) run(t *testing.T, tt httpTest) {
	t.Helper()
	method := tt.method
	if method == "" {
		method = http.MethodGet
	}
	wantCode := tt.wantCode
	if wantCode == 0 {
		wantCode = http.StatusOK
	}

	req, rec := newAuthRequest(method, tt.path, tt.token, tt.body)
	env.app.ServeHTTP(rec, req)

	if rec.Code != wantCode {
		t.Errorf("failed! code = %v; wantCode %v; body = %s", rec.Code, wantCode, rec.Body.String())
	}
	if tt.wantData != nil {
		testutil.JSONEq(t, rec.Body.Bytes(), tt.wantData)
	}
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getToken(t *testing.T, sess auth.Session) string {
	t.Helper()
	token, err := GenerateToken(GetSessionClaims(sess))
	if err != nil {
		t.Fatalf("getToken(): %v", err)
	}
	return token
}

func adminToken(t *testing.T) string {
	return getToken(t, auth.Session{
		UID:         "admin-uid",
		Email:       "staff@uni.edu.my",
		DisplayName: "Staff",
		Role:        auth.RoleAdmin,
	})
}

func studentToken(t *testing.T, matric string) string {
	return getToken(t, auth.Session{
		UID:          "uid-" + matric,
		Email:        matric + "@student.uni.edu.my",
		DisplayName:  "Student " + matric,
		Role:         auth.RoleStudent,
		MatricNumber: matric,
	})
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj(): %v", err)
	}
	return data
}

func marchallList(t *testing.T, objs ...interface{}) []byte {
	t.Helper()
	if objs == nil {
		objs = []interface{}{}
	}
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marchallList(): %v", err)
	}
	return data
}
