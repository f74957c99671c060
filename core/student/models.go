package student

import (
	"context"
	"errors"
	"time"

	"github.com/volatiletech/null/v8"
)

var (
	// errors
	ErrNotFound = errors.New("student not found")
)

type (
	// Student is keyed by its canonical matric number so repeated logins
	// resolve to the same record. UID may change across sign-ins.
	Student struct {
		MatricNumber string    `json:"matricNumber"`
		UID          string    `json:"uid"`
		Email        string    `json:"email"`
		DisplayName  string    `json:"displayName"`
		Role         string    `json:"role"`
		TotalMerits  int       `json:"totalMerits"`
		CreatedAt    time.Time `json:"created_at"` // UTC
		LastLogin    null.Time `json:"last_login"` // UTC
	}

	Repository interface {
		CreateStudent(ctx context.Context, std Student) (Student, error)
		GetStudentByMatric(ctx context.Context, matric string) (Student, error)
		QueryAllStudents(ctx context.Context) ([]Student, error)
		// SetLastLogin updates LastLogin and UID on a revisit.
		SetLastLogin(ctx context.Context, matric, uid string, at time.Time) (Student, error)
		// AddMerits adjusts the running TotalMerits tally by delta.
		AddMerits(ctx context.Context, matric string, delta int) (Student, error)
	}
)
