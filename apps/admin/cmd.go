package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"

	"github.com/trezcool/meritum/core/auth"
	"github.com/trezcool/meritum/core/level"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	db        *sql.DB
	adminRepo auth.AdminRepository
	levelSvc  *level.Service
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  addadmin -email EMAIL    - grant admin access to an email address")
	fmt.Println("  removeadmin -email EMAIL - revoke admin access")
	fmt.Println("  listadmins               - list admin records")
	fmt.Println("  seedlevels               - install the default event levels")
	fmt.Println("  migrate COMMAND [ARGS]   - run a database migration command (up, down, status, ...)")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addAdminCmd := flag.NewFlagSet("addadmin", flag.ExitOnError)
	addAdminEmail := addAdminCmd.String("email", "", "The admin's email address.")

	removeAdminCmd := flag.NewFlagSet("removeadmin", flag.ExitOnError)
	removeAdminEmail := removeAdminCmd.String("email", "", "The admin's email address.")

	switch args[1] {
	case "addadmin":
		if err := addAdminCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addAdminEmail == "" {
			addAdminCmd.Usage()
			return errHelp
		}
		return cli.addAdmin(*addAdminEmail)
	case "removeadmin":
		if err := removeAdminCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *removeAdminEmail == "" {
			removeAdminCmd.Usage()
			return errHelp
		}
		return cli.removeAdmin(*removeAdminEmail)
	case "listadmins":
		return cli.listAdmins()
	case "seedlevels":
		return cli.seedLevels()
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	default:
		cli.printUsage()
		return errHelp
	}
}
