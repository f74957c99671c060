package auth

import (
	"context"
	"testing"
	"time"

	"github.com/trezcool/meritum/core"
	"github.com/trezcool/meritum/core/student"
)

type fakeAdminRepo struct {
	admins map[string]Admin
}

func (f *fakeAdminRepo) GetAdminByKey(ctx context.Context, key string) (Admin, error) {
	if adm, ok := f.admins[key]; ok {
		return adm, nil
	}
	return Admin{}, ErrAdminNotFound
}

func (f *fakeAdminRepo) QueryAllAdmins(ctx context.Context) ([]Admin, error) {
	admins := make([]Admin, 0, len(f.admins))
	for _, adm := range f.admins {
		admins = append(admins, adm)
	}
	return admins, nil
}

func (f *fakeAdminRepo) UpsertAdmin(ctx context.Context, adm Admin) (Admin, error) {
	f.admins[adm.Key] = adm
	return adm, nil
}

func (f *fakeAdminRepo) DeleteAdminByKey(ctx context.Context, key string) error {
	delete(f.admins, key)
	return nil
}

type fakeStudentRepo struct {
	students map[string]student.Student
	created  []string
}

func (f *fakeStudentRepo) CreateStudent(ctx context.Context, std student.Student) (student.Student, error) {
	f.students[std.MatricNumber] = std
	f.created = append(f.created, std.MatricNumber)
	return std, nil
}

func (f *fakeStudentRepo) GetStudentByMatric(ctx context.Context, matric string) (student.Student, error) {
	if std, ok := f.students[matric]; ok {
		return std, nil
	}
	return student.Student{}, student.ErrNotFound
}

func (f *fakeStudentRepo) QueryAllStudents(ctx context.Context) ([]student.Student, error) {
	students := make([]student.Student, 0, len(f.students))
	for _, std := range f.students {
		students = append(students, std)
	}
	return students, nil
}

func (f *fakeStudentRepo) SetLastLogin(ctx context.Context, matric, uid string, at time.Time) (student.Student, error) {
	std, ok := f.students[matric]
	if !ok {
		return student.Student{}, student.ErrNotFound
	}
	std.UID = uid
	std.LastLogin.SetValid(at)
	f.students[matric] = std
	return std, nil
}

func (f *fakeStudentRepo) AddMerits(ctx context.Context, matric string, delta int) (student.Student, error) {
	std, ok := f.students[matric]
	if !ok {
		return student.Student{}, student.ErrNotFound
	}
	std.TotalMerits += delta
	f.students[matric] = std
	return std, nil
}

// fakeIDP records every forced sign-out.
type fakeIDP struct {
	signedOut []string
}

func (f *fakeIDP) SignOut(ctx context.Context, uid string) error {
	f.signedOut = append(f.signedOut, uid)
	return nil
}

type nopMail struct{}

func (nopMail) SendMessages(...*core.EmailMessage) {}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

func newTestResolver() (*Resolver, *fakeAdminRepo, *fakeStudentRepo, *fakeIDP) {
	admins := &fakeAdminRepo{admins: make(map[string]Admin)}
	students := &fakeStudentRepo{students: make(map[string]student.Student)}
	idp := &fakeIDP{}
	return NewResolver(admins, students, idp, nopMail{}, nopLogger{}), admins, students, idp
}

func TestResolver_adminPrecedence(t *testing.T) {
	r, admins, _, idp := newTestResolver()
	admins.admins[SanitizeEmailKey("boss@gmail.com")] = Admin{
		Key: SanitizeEmailKey("boss@gmail.com"), Email: "boss@gmail.com", Active: true,
	}

	// the admin check runs before the public-provider rule
	sess, err := r.Resolve(context.Background(), Identity{UID: "u1", Email: "Boss@Gmail.com", DisplayName: "The Boss"})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if !sess.IsAdmin() {
		t.Errorf("Role = %q; want admin", sess.Role)
	}
	if sess.Email != "boss@gmail.com" {
		t.Errorf("Email = %q; want lower-cased", sess.Email)
	}
	if sess.MatricNumber != "" {
		t.Errorf("MatricNumber = %q; want empty for admin", sess.MatricNumber)
	}
	if len(idp.signedOut) != 0 {
		t.Errorf("signedOut = %v; admins must not be signed out", idp.signedOut)
	}
}

func TestResolver_inactiveAdminFallsThrough(t *testing.T) {
	r, admins, _, idp := newTestResolver()
	admins.admins[SanitizeEmailKey("retired@uni.edu.my")] = Admin{
		Key: SanitizeEmailKey("retired@uni.edu.my"), Email: "retired@uni.edu.my", Active: false,
	}

	// "retired" is no matric, so the login is rejected and signed out
	_, err := r.Resolve(context.Background(), Identity{UID: "u2", Email: "retired@uni.edu.my"})
	if err != ErrMatricExtraction {
		t.Fatalf("Resolve() error = %v; want ErrMatricExtraction", err)
	}
	if len(idp.signedOut) != 1 || idp.signedOut[0] != "u2" {
		t.Errorf("signedOut = %v; want [u2]", idp.signedOut)
	}
}

func TestResolver_publicProviderRejected(t *testing.T) {
	r, _, _, idp := newTestResolver()

	_, err := r.Resolve(context.Background(), Identity{UID: "u3", Email: "somebody@gmail.com"})
	if err != ErrPublicProvider {
		t.Fatalf("Resolve() error = %v; want ErrPublicProvider", err)
	}
	if len(idp.signedOut) != 1 || idp.signedOut[0] != "u3" {
		t.Errorf("signedOut = %v; want [u3]", idp.signedOut)
	}
}

func TestResolver_firstLoginCreatesStudent(t *testing.T) {
	r, _, students, _ := newTestResolver()

	sess, err := r.Resolve(context.Background(), Identity{
		UID: "u4", Email: "S12345@Student.Uni.Edu.My", DisplayName: "ahmad bin ali / FKE",
	})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if sess.MatricNumber != "S12345" {
		t.Errorf("MatricNumber = %q; want S12345", sess.MatricNumber)
	}
	if sess.DisplayName != "Ahmad Bin Ali" {
		t.Errorf("DisplayName = %q; want cleaned name", sess.DisplayName)
	}
	if !sess.IsStudent() {
		t.Errorf("Role = %q; want student", sess.Role)
	}

	std := students.students["S12345"]
	if std.Email != "s12345@student.uni.edu.my" {
		t.Errorf("stored Email = %q; want lower-cased", std.Email)
	}
	if std.TotalMerits != 0 {
		t.Errorf("TotalMerits = %d; want 0 on creation", std.TotalMerits)
	}
}

func TestResolver_revisitUpdatesLastLogin(t *testing.T) {
	r, _, students, _ := newTestResolver()

	if _, err := r.Resolve(context.Background(), Identity{UID: "u5", Email: "s12345@student.uni.edu.my", DisplayName: "Ahmad"}); err != nil {
		t.Fatalf("first Resolve() error = %v", err)
	}
	if _, err := r.Resolve(context.Background(), Identity{UID: "u5-new", Email: "s12345@student.uni.edu.my", DisplayName: "Ahmad"}); err != nil {
		t.Fatalf("second Resolve() error = %v", err)
	}

	if got := len(students.created); got != 1 {
		t.Errorf("created %d students; want 1", got)
	}
	std := students.students["S12345"]
	if std.UID != "u5-new" {
		t.Errorf("UID = %q; want refreshed uid", std.UID)
	}
	if !std.LastLogin.Valid {
		t.Error("LastLogin not set on revisit")
	}
}

func TestResolver_unextractableMatric(t *testing.T) {
	r, _, students, idp := newTestResolver()

	_, err := r.Resolve(context.Background(), Identity{UID: "u6", Email: "john.doe+2024@inst.edu"})
	if err != ErrMatricExtraction {
		t.Fatalf("Resolve() error = %v; want ErrMatricExtraction", err)
	}
	if len(students.created) != 0 {
		t.Errorf("created = %v; want none", students.created)
	}
	if len(idp.signedOut) != 1 {
		t.Errorf("signedOut = %v; want one entry", idp.signedOut)
	}
}
