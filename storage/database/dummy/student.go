package dummydb

import (
	"context"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/meritum/core/student"
)

type studentRepository struct {
	db *studentTable
}

func NewStudentRepository(db *DB) student.Repository {
	return &studentRepository{db: db.student}
}

func (repo *studentRepository) CreateStudent(ctx context.Context, std student.Student) (student.Student, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.table[std.MatricNumber] = &std
	return std, nil
}

func (repo *studentRepository) GetStudentByMatric(ctx context.Context, matric string) (student.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if std, ok := repo.db.table[matric]; ok {
		return *std, nil
	}
	return student.Student{}, student.ErrNotFound
}

func (repo *studentRepository) QueryAllStudents(ctx context.Context) ([]student.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	students := make([]student.Student, 0, len(repo.db.table))
	for _, std := range repo.db.table {
		students = append(students, *std)
	}
	return students, nil
}

func (repo *studentRepository) SetLastLogin(ctx context.Context, matric, uid string, at time.Time) (student.Student, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	std, ok := repo.db.table[matric]
	if !ok {
		return student.Student{}, student.ErrNotFound
	}
	std.LastLogin = null.TimeFrom(at)
	std.UID = uid
	return *std, nil
}

func (repo *studentRepository) AddMerits(ctx context.Context, matric string, delta int) (student.Student, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	std, ok := repo.db.table[matric]
	if !ok {
		return student.Student{}, student.ErrNotFound
	}
	std.TotalMerits += delta
	return *std, nil
}
