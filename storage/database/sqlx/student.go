package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/meritum/core/student"
)

type studentRepository struct {
	db *sqlx.DB
}

func NewStudentRepository(db *sqlx.DB) student.Repository {
	return &studentRepository{db: db}
}

type studentRow struct {
	MatricNumber string    `db:"matric_number"`
	UID          string    `db:"uid"`
	Email        string    `db:"email"`
	DisplayName  string    `db:"display_name"`
	Role         string    `db:"role"`
	TotalMerits  int       `db:"total_merits"`
	CreatedAt    time.Time `db:"created_at"`
	LastLogin    null.Time `db:"last_login"`
}

func (r studentRow) toStudent() student.Student {
	return student.Student{
		MatricNumber: r.MatricNumber,
		UID:          r.UID,
		Email:        r.Email,
		DisplayName:  r.DisplayName,
		Role:         r.Role,
		TotalMerits:  r.TotalMerits,
		CreatedAt:    r.CreatedAt,
		LastLogin:    r.LastLogin,
	}
}

const studentColumns = `matric_number, uid, email, display_name, role, total_merits, created_at, last_login`

func (repo *studentRepository) CreateStudent(ctx context.Context, std student.Student) (student.Student, error) {
	const q = `
		INSERT INTO students (matric_number, uid, email, display_name, role, total_merits, created_at, last_login)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := repo.db.ExecContext(ctx, q,
		std.MatricNumber, std.UID, std.Email, std.DisplayName, std.Role, std.TotalMerits, std.CreatedAt, std.LastLogin)
	if err != nil {
		return student.Student{}, err
	}
	return std, nil
}

func (repo *studentRepository) GetStudentByMatric(ctx context.Context, matric string) (student.Student, error) {
	var row studentRow
	err := repo.db.GetContext(ctx, &row, `SELECT `+studentColumns+` FROM students WHERE matric_number = $1`, matric)
	if err == sql.ErrNoRows {
		return student.Student{}, student.ErrNotFound
	}
	if err != nil {
		return student.Student{}, err
	}
	return row.toStudent(), nil
}

func (repo *studentRepository) QueryAllStudents(ctx context.Context) ([]student.Student, error) {
	var rows []studentRow
	if err := repo.db.SelectContext(ctx, &rows, `SELECT `+studentColumns+` FROM students ORDER BY matric_number`); err != nil {
		return nil, err
	}
	students := make([]student.Student, 0, len(rows))
	for _, row := range rows {
		students = append(students, row.toStudent())
	}
	return students, nil
}

func (repo *studentRepository) SetLastLogin(ctx context.Context, matric, uid string, at time.Time) (student.Student, error) {
	const q = `
		UPDATE students SET last_login = $2, uid = $3 WHERE matric_number = $1
		RETURNING ` + studentColumns
	var row studentRow
	err := repo.db.GetContext(ctx, &row, q, matric, at, uid)
	if err == sql.ErrNoRows {
		return student.Student{}, student.ErrNotFound
	}
	if err != nil {
		return student.Student{}, err
	}
	return row.toStudent(), nil
}

func (repo *studentRepository) AddMerits(ctx context.Context, matric string, delta int) (student.Student, error) {
	const q = `
		UPDATE students SET total_merits = total_merits + $2 WHERE matric_number = $1
		RETURNING ` + studentColumns
	var row studentRow
	err := repo.db.GetContext(ctx, &row, q, matric, delta)
	if err == sql.ErrNoRows {
		return student.Student{}, student.ErrNotFound
	}
	if err != nil {
		return student.Student{}, err
	}
	return row.toStudent(), nil
}
