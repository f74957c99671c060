package main

import (
	"context"

	"github.com/trezcool/meritum/storage/database"
)

var runMigrationFunc = database.RunMigration // mockable

func (cli *commandLine) migrate(args []string) error {
	arguments := make([]string, 0)
	if len(args) > 1 {
		arguments = append(arguments, args[1:]...)
	}
	return runMigrationFunc(cli.db, args[0], arguments...)
}

func (cli *commandLine) seedLevels() error {
	return cli.levelSvc.Seed(context.Background())
}
