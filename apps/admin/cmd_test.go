package main

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"testing"

	"github.com/trezcool/meritum/core/auth"
	"github.com/trezcool/meritum/core/level"
	dummydb "github.com/trezcool/meritum/storage/database/dummy"
)

var admRepo auth.AdminRepository

func setup(t *testing.T) *commandLine {
	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("setup(): opening db: %v", err)
	}
	admRepo = dummydb.NewAdminRepository(db)

	return &commandLine{
		adminRepo: admRepo,
		levelSvc:  level.NewService(dummydb.NewLevelRepository(db)),
	}
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
}

func Test_commandLine_migrate(t *testing.T) {
	cli := setup(t)

	runMigrationFunc = func(db *sql.DB, command string, args ...string) error {
		switch command {
		case "up", "up-by-one", "down", "fix", "redo", "reset", "status", "version": // pass
		case "up-to", "down-to":
			if len(args) == 0 {
				return fmt.Errorf("%s requires a VERSION argument", command)
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("version must be a number (got '%s')", args[0])
			}
		case "create":
			if len(args) == 0 {
				return fmt.Errorf("create requires a NAME argument")
			}
		default:
			return fmt.Errorf("%q: no such command", command)
		}
		return nil
	}

	tests := []cliTest{
		{name: "no subcommand", args: []string{"migrate"}, wantErr: errHelp},
		{name: "unknown subcommand", args: []string{"migrate", "lol"}, wantErrStr: "\"lol\": no such command"},
		{name: "up-to: no args", args: []string{"migrate", "up-to"}, wantErrStr: "up-to requires a VERSION argument"},
		{name: "up-to: non-int arg", args: []string{"migrate", "up-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "down-to: no args", args: []string{"migrate", "down-to"}, wantErrStr: "down-to requires a VERSION argument"},
		{name: "create: no args", args: []string{"migrate", "create"}, wantErrStr: "create requires a NAME argument"},
		{name: "up", args: []string{"migrate", "up"}},
		{name: "up-to", args: []string{"migrate", "up-to", "2"}},
		{name: "down", args: []string{"migrate", "down"}},
		{name: "down-to", args: []string{"migrate", "down-to", "1"}},
		{name: "status", args: []string{"migrate", "status"}},
		{name: "version", args: []string{"migrate", "version"}},
		{name: "create", args: []string{"migrate", "create", "merits", "sql"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != nil {
				if tt.wantErr != nil {
					if err != tt.wantErr {
						t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
					}
				} else if tt.wantErrStr != "" {
					if err.Error() != tt.wantErrStr {
						t.Errorf("cli.run() error.Error() = %s, wantErrStr %s", err.Error(), tt.wantErrStr)
					}
				} else {
					t.Errorf("cli.run() unexpected error = %v", err)
				}
			}
		})
	}
}

func Test_commandLine_addAdmin(t *testing.T) {
	cli := setup(t)

	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "no args", args: []string{"addadmin"}, wantErr: errHelp},
		{name: "invalid email", args: []string{"addadmin", "-email", "nope"}, wantErr: errInvalidEmail},
		{name: "grant", args: []string{"addadmin", "-email", "Staff@Uni.edu.my"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	adm, err := admRepo.GetAdminByKey(context.Background(), auth.SanitizeEmailKey("staff@uni.edu.my"))
	if err != nil {
		t.Fatalf("GetAdminByKey() failed, %v", err)
	}
	if adm.Email != "staff@uni.edu.my" {
		t.Errorf("Email = %q; want lower-cased", adm.Email)
	}
	if !adm.Active {
		t.Error("granted admin is not active")
	}

	// re-granting keeps the original creation date
	created := adm.CreatedAt
	if err = cli.run([]string{"admin", "addadmin", "-email", "staff@uni.edu.my"}); err != nil {
		t.Fatalf("cli.run() error = %v", err)
	}
	adm, _ = admRepo.GetAdminByKey(context.Background(), auth.SanitizeEmailKey("staff@uni.edu.my"))
	if !adm.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt = %v; want preserved %v", adm.CreatedAt, created)
	}
}

func Test_commandLine_removeAdmin(t *testing.T) {
	cli := setup(t)

	if err := cli.run([]string{"admin", "addadmin", "-email", "staff@uni.edu.my"}); err != nil {
		t.Fatalf("cli.run() error = %v", err)
	}

	tests := []cliTest{
		{name: "no args", args: []string{"removeadmin"}, wantErr: errHelp},
		{name: "unknown admin", args: []string{"removeadmin", "-email", "ghost@uni.edu.my"}, wantErr: auth.ErrAdminNotFound},
		{name: "revoke", args: []string{"removeadmin", "-email", "staff@uni.edu.my"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	if _, err := admRepo.GetAdminByKey(context.Background(), auth.SanitizeEmailKey("staff@uni.edu.my")); err != auth.ErrAdminNotFound {
		t.Errorf("GetAdminByKey() error = %v; want removed", err)
	}
}

func Test_commandLine_seedLevels(t *testing.T) {
	cli := setup(t)

	if err := cli.run([]string{"admin", "seedlevels"}); err != nil {
		t.Fatalf("cli.run() error = %v", err)
	}
	levels, err := cli.levelSvc.QueryAll(context.Background())
	if err != nil {
		t.Fatalf("QueryAll() error = %v", err)
	}
	if len(levels) != len(level.DefaultLevels) {
		t.Errorf("seeded %d levels; want %d", len(levels), len(level.DefaultLevels))
	}
}
