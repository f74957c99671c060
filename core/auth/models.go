package auth

import (
	"context"
	"errors"
	"time"
)

// Roles
const (
	RoleAdmin   = "admin"
	RoleStudent = "student"
)

var (
	// errors
	ErrPublicProvider   = errors.New("public email providers are not allowed; use an institutional account")
	ErrMatricExtraction = errors.New("could not extract a valid matric number from email")
	ErrAdminNotFound    = errors.New("admin not found")
)

type (
	// Identity is a verified identity as supplied by the external identity
	// provider; immutable per sign-in.
	Identity struct {
		UID         string `json:"uid" validate:"required"`
		Email       string `json:"email" validate:"required,email"`
		DisplayName string `json:"display_name"`
	}

	// Session is the resolved role + identity bundle established at login.
	Session struct {
		UID          string `json:"uid"`
		Email        string `json:"email"`
		DisplayName  string `json:"displayName"`
		Role         string `json:"role"`
		MatricNumber string `json:"matricNumber"`
	}

	// Admin is an administrator record, keyed by sanitized email.
	Admin struct {
		Key       string    `json:"key"` // SanitizeEmailKey(email)
		Email     string    `json:"email"`
		Active    bool      `json:"active"`
		CreatedAt time.Time `json:"created_at"` // UTC
	}

	AdminRepository interface {
		GetAdminByKey(ctx context.Context, key string) (Admin, error)
		QueryAllAdmins(ctx context.Context) ([]Admin, error)
		UpsertAdmin(ctx context.Context, adm Admin) (Admin, error)
		DeleteAdminByKey(ctx context.Context, key string) error
	}

	// IdentityProvider is the external sign-in collaborator. Rejected logins
	// are force-signed-out so no partially-classified session persists.
	IdentityProvider interface {
		SignOut(ctx context.Context, uid string) error
	}
)

func (s Session) IsAdmin() bool   { return s.Role == RoleAdmin }
func (s Session) IsStudent() bool { return s.Role == RoleStudent }
