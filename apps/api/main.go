package main

import (
	"context"
	"database/sql"
	"expvar"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	echoapi "github.com/trezcool/meritum/apps/api/echo"
	"github.com/trezcool/meritum/core"
	"github.com/trezcool/meritum/core/auth"
	"github.com/trezcool/meritum/core/event"
	"github.com/trezcool/meritum/core/level"
	"github.com/trezcool/meritum/core/merit"
	"github.com/trezcool/meritum/core/organizer"
	"github.com/trezcool/meritum/core/student"
	emailsvc "github.com/trezcool/meritum/services/email"
	identitysvc "github.com/trezcool/meritum/services/identity"
	logsvc "github.com/trezcool/meritum/services/logger"
	"github.com/trezcool/meritum/storage/database"
	sqlxrepos "github.com/trezcool/meritum/storage/database/sqlx"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	// set up loggers
	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	dbLogger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "DB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	dbLogger.Enable(!conf.Debug)

	// set up DB
	db, err := setUpDB(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	defer func() {
		if err = db.Close(); err != nil {
			dbLogger.Fatal("Failed to close", err)
		}
	}()
	sqlxDB := sqlxrepos.Wrap(db)

	// set up repositories
	adminRepo := sqlxrepos.NewAdminRepository(sqlxDB)
	studentRepo := sqlxrepos.NewStudentRepository(sqlxDB)
	organizerRepo := sqlxrepos.NewOrganizerRepository(sqlxDB)
	eventRepo := sqlxrepos.NewEventRepository(sqlxDB)
	meritRepo := sqlxrepos.NewMeritRepository(sqlxDB)
	levelRepo := sqlxrepos.NewLevelRepository(sqlxDB)
	alloc := sqlxrepos.NewCounterAllocator(sqlxDB)

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(logger, conf)
	}
	idp := identitysvc.NewConsoleProvider(logger)

	resolver := auth.NewResolver(adminRepo, studentRepo, idp, mailSvc, logger)
	levelSvc := level.NewService(levelRepo)
	organizerSvc := organizer.NewService(organizerRepo, alloc)
	eventSvc := event.NewService(eventRepo, alloc, levelSvc)
	meritSvc := merit.NewService(meritRepo, eventRepo, studentRepo)
	studentSvc := student.NewService(studentRepo)

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.

	// Expose important info under /debug/vars.
	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)

	go func() {
		if err = http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:         conf,
			Logger:       logger,
			Validate:     validate,
			Translator:   translator,
			Resolver:     resolver,
			OrganizerSvc: organizerSvc,
			EventSvc:     eventSvc,
			MeritSvc:     meritSvc,
			StudentSvc:   studentSvc,
			LevelSvc:     levelSvc,
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

func setUpDB(conf *core.Config) (*sql.DB, error) {
	if err := database.CreateIfNotExist(conf); err != nil {
		return nil, err
	}

	db, err := database.Open(conf)
	if err != nil {
		return nil, err
	}

	if err = database.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}
