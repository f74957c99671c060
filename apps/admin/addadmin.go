package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/trezcool/meritum/core"
	"github.com/trezcool/meritum/core/auth"
)

var errInvalidEmail = fmt.Errorf("invalid email address")

// addAdmin grants admin access; existing records are reactivated.
func (cli *commandLine) addAdmin(email string) error {
	ctx := context.Background()
	email = core.CleanString(email, true /* lower */)
	if !strings.Contains(email, "@") {
		return errInvalidEmail
	}

	adm := auth.Admin{
		Key:       auth.SanitizeEmailKey(email),
		Email:     email,
		Active:    true,
		CreatedAt: time.Now().UTC(),
	}
	if existing, err := cli.adminRepo.GetAdminByKey(ctx, adm.Key); err == nil {
		adm.CreatedAt = existing.CreatedAt
	}

	if _, err := cli.adminRepo.UpsertAdmin(ctx, adm); err != nil {
		return err
	}
	fmt.Printf("admin access granted to %s\n", email)
	return nil
}

func (cli *commandLine) removeAdmin(email string) error {
	email = core.CleanString(email, true /* lower */)
	if err := cli.adminRepo.DeleteAdminByKey(context.Background(), auth.SanitizeEmailKey(email)); err != nil {
		return err
	}
	fmt.Printf("admin access revoked for %s\n", email)
	return nil
}

func (cli *commandLine) listAdmins() error {
	admins, err := cli.adminRepo.QueryAllAdmins(context.Background())
	if err != nil {
		return err
	}
	for _, adm := range admins {
		status := "active"
		if !adm.Active {
			status = "inactive"
		}
		fmt.Printf("%s\t%s\t%s\n", adm.Email, status, adm.CreatedAt.Format("2006-01-02"))
	}
	return nil
}
