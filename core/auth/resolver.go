package auth

import (
	"context"
	"fmt"
	"net/mail"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/meritum/core"
	"github.com/trezcool/meritum/core/student"
)

// Resolver converts a freshly authenticated Identity into a Session,
// enforcing institutional-account policy. The admin check always runs first
// and short-circuits every other rule.
type Resolver struct {
	admins   AdminRepository
	students student.Repository
	idp      IdentityProvider
	mailSvc  core.EmailService
	logger   core.Logger
}

func NewResolver(
	admins AdminRepository,
	students student.Repository,
	idp IdentityProvider,
	mailSvc core.EmailService,
	logger core.Logger,
) *Resolver {
	return &Resolver{
		admins:   admins,
		students: students,
		idp:      idp,
		mailSvc:  mailSvc,
		logger:   logger,
	}
}

// Resolve classifies `idt` and materializes a Session:
// 1. an active Admin keyed by the sanitized email wins outright;
// 2. public-provider emails are rejected and signed out;
// 3. otherwise a matric number is extracted from the email local-part and the
//    matching Student is updated (lastLogin, uid) or created.
func (r *Resolver) Resolve(ctx context.Context, idt Identity) (Session, error) {
	email := core.CleanString(idt.Email, true /* lower */)
	if email == "" {
		return Session{}, r.reject(ctx, idt, ErrMatricExtraction)
	}

	adm, err := r.admins.GetAdminByKey(ctx, SanitizeEmailKey(email))
	if err == nil && adm.Active {
		return Session{
			UID:          idt.UID,
			Email:        email,
			DisplayName:  r.displayName(idt, email),
			Role:         RoleAdmin,
			MatricNumber: "",
		}, nil
	}
	if err != nil && errors.Cause(err) != ErrAdminNotFound {
		return Session{}, errors.Wrap(err, "checking admin status")
	}

	if IsPublicProvider(email) {
		return Session{}, r.reject(ctx, idt, ErrPublicProvider)
	}

	matric := ExtractMatricToken(email)
	if matric == "" || !LooksLikeMatric(matric) {
		return Session{}, r.reject(ctx, idt, ErrMatricExtraction)
	}

	std, err := r.students.GetStudentByMatric(ctx, matric)
	switch errors.Cause(err) {
	case nil:
		// uid may change across sign-ins; keep the record current
		if std, err = r.students.SetLastLogin(ctx, matric, idt.UID, time.Now().UTC()); err != nil {
			return Session{}, errors.Wrap(err, "setting lastLogin")
		}
	case student.ErrNotFound:
		std, err = r.createStudent(ctx, idt, email, matric)
		if err != nil {
			return Session{}, errors.Wrap(err, "creating student")
		}
	default:
		return Session{}, errors.Wrap(err, "finding student by matric")
	}

	return Session{
		UID:          idt.UID,
		Email:        email,
		DisplayName:  std.DisplayName,
		Role:         RoleStudent,
		MatricNumber: std.MatricNumber,
	}, nil
}

func (r *Resolver) createStudent(ctx context.Context, idt Identity, email, matric string) (student.Student, error) {
	std := student.Student{
		MatricNumber: matric,
		UID:          idt.UID,
		Email:        email,
		DisplayName:  r.displayName(idt, email),
		Role:         RoleStudent,
		TotalMerits:  0,
		CreatedAt:    time.Now().UTC(),
	}
	std, err := r.students.CreateStudent(ctx, std)
	if err != nil {
		return student.Student{}, err
	}
	r.sendWelcomeEmail(std)
	return std, nil
}

func (r *Resolver) displayName(idt Identity, email string) string {
	if name := CleanDisplayName(idt.DisplayName); name != "" {
		return name
	}
	return EmailLocalPart(email)
}

// reject force-signs-out the identity at the provider before surfacing the
// error so no partially-classified session persists.
func (r *Resolver) reject(ctx context.Context, idt Identity, err error) error {
	if sErr := r.idp.SignOut(ctx, idt.UID); sErr != nil {
		r.logger.Error(fmt.Sprintf("signing out %s: %v", idt.UID, sErr), sErr)
	}
	return err
}

func (r *Resolver) sendWelcomeEmail(std student.Student) {
	if r.mailSvc == nil {
		return
	}
	r.mailSvc.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Name: std.DisplayName, Address: std.Email}},
		Subject: "Welcome to the merit portal",
		BodyStr: fmt.Sprintf(
			"Hi %s,\n\nYour student profile (%s) has been created. "+
				"You can now view your merit dashboard and rankings.\n",
			std.DisplayName, std.MatricNumber,
		),
	})
}
