package main

import (
	"log"
	"os"

	"github.com/trezcool/meritum/core"
	"github.com/trezcool/meritum/core/level"
	"github.com/trezcool/meritum/storage/database"
	sqlxrepos "github.com/trezcool/meritum/storage/database/sqlx"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()

	// set up DB
	db, err := database.Open(conf)
	errAndDie(err)
	defer db.Close()
	errAndDie(db.Ping())

	sqlxDB := sqlxrepos.Wrap(db)

	// start CLI
	cli := commandLine{
		db:        db,
		adminRepo: sqlxrepos.NewAdminRepository(sqlxDB),
		levelSvc:  level.NewService(sqlxrepos.NewLevelRepository(sqlxDB)),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
