package student

import (
	"context"
	"testing"
	"time"
)

type fakeRepo struct {
	students map[string]Student
}

func (f *fakeRepo) CreateStudent(ctx context.Context, std Student) (Student, error) {
	f.students[std.MatricNumber] = std
	return std, nil
}

func (f *fakeRepo) GetStudentByMatric(ctx context.Context, matric string) (Student, error) {
	if std, ok := f.students[matric]; ok {
		return std, nil
	}
	return Student{}, ErrNotFound
}

func (f *fakeRepo) QueryAllStudents(ctx context.Context) ([]Student, error) {
	students := make([]Student, 0, len(f.students))
	for _, std := range f.students {
		students = append(students, std)
	}
	return students, nil
}

func (f *fakeRepo) SetLastLogin(ctx context.Context, matric, uid string, at time.Time) (Student, error) {
	std, ok := f.students[matric]
	if !ok {
		return Student{}, ErrNotFound
	}
	std.UID = uid
	std.LastLogin.SetValid(at)
	f.students[matric] = std
	return std, nil
}

func (f *fakeRepo) AddMerits(ctx context.Context, matric string, delta int) (Student, error) {
	std, ok := f.students[matric]
	if !ok {
		return Student{}, ErrNotFound
	}
	std.TotalMerits += delta
	f.students[matric] = std
	return std, nil
}

func newTestService() (*Service, *fakeRepo) {
	repo := &fakeRepo{students: map[string]Student{
		"S11111": {MatricNumber: "S11111", DisplayName: "Alice", TotalMerits: 30},
		"S22222": {MatricNumber: "S22222", DisplayName: "Bob", TotalMerits: 50},
		"S33333": {MatricNumber: "S33333", DisplayName: "Carol", TotalMerits: 30},
	}}
	return NewService(repo), repo
}

func TestService_Rankings(t *testing.T) {
	svc, _ := newTestService()

	ranks, err := svc.Rankings(context.Background())
	if err != nil {
		t.Fatalf("Rankings() error = %v", err)
	}
	if len(ranks) != 3 {
		t.Fatalf("len(ranks) = %d; want 3", len(ranks))
	}

	wantOrder := []string{"S22222", "S11111", "S33333"} // ties ordered by matric
	for i, matric := range wantOrder {
		if ranks[i].MatricNumber != matric {
			t.Errorf("ranks[%d] = %q; want %q", i, ranks[i].MatricNumber, matric)
		}
		if ranks[i].Position != i+1 {
			t.Errorf("ranks[%d].Position = %d; want %d", i, ranks[i].Position, i+1)
		}
		if ranks[i].OutOf != 3 {
			t.Errorf("ranks[%d].OutOf = %d; want 3", i, ranks[i].OutOf)
		}
	}
}

func TestService_RankOf(t *testing.T) {
	svc, _ := newTestService()

	rank, err := svc.RankOf(context.Background(), " s33333 ")
	if err != nil {
		t.Fatalf("RankOf() error = %v", err)
	}
	if rank.Position != 3 {
		t.Errorf("Position = %d; want 3", rank.Position)
	}

	if _, err = svc.RankOf(context.Background(), "S99999"); err != ErrNotFound {
		t.Errorf("RankOf() error = %v; want ErrNotFound", err)
	}
}

func TestService_GetByMatric(t *testing.T) {
	svc, _ := newTestService()

	std, err := svc.GetByMatric(context.Background(), " s11111 ")
	if err != nil {
		t.Fatalf("GetByMatric() error = %v", err)
	}
	if std.DisplayName != "Alice" {
		t.Errorf("DisplayName = %q; want Alice", std.DisplayName)
	}
}
