package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/trezcool/meritum/core"
	"github.com/trezcool/meritum/core/auth"
	"github.com/trezcool/meritum/core/event"
	"github.com/trezcool/meritum/core/level"
	"github.com/trezcool/meritum/core/merit"
	"github.com/trezcool/meritum/core/organizer"
	"github.com/trezcool/meritum/core/student"
)

type (
	ServerDeps struct {
		Conf       *core.Config
		Logger     core.Logger
		Validate   *validator.Validate
		Translator ut.Translator

		Resolver     *auth.Resolver
		OrganizerSvc organizer.ServiceInterface
		EventSvc     event.ServiceInterface
		MeritSvc     *merit.Service
		StudentSvc   *student.Service
		LevelSvc     *level.Service

		DisableReqLogs bool
	}

	Server interface {
		http.Handler
		Start()
		Errors() <-chan error
		ShutdownSignal() <-chan os.Signal
		Shutdown(context.Context) error
		Close() error
	}

	server struct {
		deps     ServerDeps
		app      *echo.Echo
		errs     chan error
		shutdown chan os.Signal
	}
)

var _ Server = (*server)(nil)

func NewServer(deps ServerDeps) Server {
	s := &server{
		deps:     deps,
		app:      echo.New(),
		errs:     make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.deps.Conf
	initJWTAuth(conf)

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.deps.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.deps.Translator, s.signalShutdown)
	s.app.Debug = conf.Debug
	s.app.HideBanner = true

	s.app.GET("/", home)

	v1 := s.app.Group("/v1")
	jwt := middleware.JWTWithConfig(appJWTConfig)

	registerAuthAPI(v1, jwt, s.deps)
	registerOrganizerAPI(v1, jwt, s.deps)
	registerEventAPI(v1, jwt, s.deps)
	registerMeritAPI(v1, jwt, s.deps)
	registerStudentAPI(v1, jwt, s.deps)
	registerLevelAPI(v1, jwt, s.deps)
}

func (s *server) Start() {
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	if err := s.app.Start(s.deps.Conf.Server.Addr); err != nil && err != http.ErrServerClosed {
		s.errs <- err
	}
}

func (s *server) Errors() <-chan error            { return s.errs }
func (s *server) ShutdownSignal() <-chan os.Signal { return s.shutdown }

// signalShutdown is handed to the error handler so an integrity issue deep in
// a handler can bring the whole server down gracefully.
func (s *server) signalShutdown() {
	s.shutdown <- syscall.SIGTERM
}

func (s *server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) Close() error {
	return s.app.Close()
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to Meritum API!")
}
