package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/trezcool/meritum/core/organizer"
)

type organizerRepository struct {
	db *sqlx.DB
}

func NewOrganizerRepository(db *sqlx.DB) organizer.Repository {
	return &organizerRepository{db: db}
}

const (
	organizerColumns = `id, name_en, name_bm, status, created_at, created_by, updated_at, updated_by`
	subColumns       = `id, organizer_id, name_en, name_bm, created_at, created_by, updated_at, updated_by`
)

type organizerRow struct {
	ID        int       `db:"id"`
	NameEN    string    `db:"name_en"`
	NameBM    string    `db:"name_bm"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
	CreatedBy string    `db:"created_by"`
	UpdatedAt time.Time `db:"updated_at"`
	UpdatedBy string    `db:"updated_by"`
}

func (r organizerRow) toOrganizer() organizer.Organizer {
	return organizer.Organizer{
		ID:        r.ID,
		NameEN:    r.NameEN,
		NameBM:    r.NameBM,
		Status:    r.Status,
		CreatedAt: r.CreatedAt,
		CreatedBy: r.CreatedBy,
		UpdatedAt: r.UpdatedAt,
		UpdatedBy: r.UpdatedBy,
	}
}

type subOrganizerRow struct {
	ID          string    `db:"id"`
	OrganizerID int       `db:"organizer_id"`
	NameEN      string    `db:"name_en"`
	NameBM      string    `db:"name_bm"`
	CreatedAt   time.Time `db:"created_at"`
	CreatedBy   string    `db:"created_by"`
	UpdatedAt   time.Time `db:"updated_at"`
	UpdatedBy   string    `db:"updated_by"`
}

func (r subOrganizerRow) toSubOrganizer() organizer.SubOrganizer {
	return organizer.SubOrganizer{
		ID:          r.ID,
		OrganizerID: r.OrganizerID,
		NameEN:      r.NameEN,
		NameBM:      r.NameBM,
		CreatedAt:   r.CreatedAt,
		CreatedBy:   r.CreatedBy,
		UpdatedAt:   r.UpdatedAt,
		UpdatedBy:   r.UpdatedBy,
	}
}

func (repo *organizerRepository) CheckNameUniqueness(ctx context.Context, nameEN string, excluded ...organizer.Organizer) error {
	q := `SELECT count(*) FROM organizers WHERE lower(name_en) = lower($1)`
	args := []interface{}{nameEN}
	if len(excluded) > 0 {
		q += ` AND id <> $2`
		args = append(args, excluded[0].ID)
	}
	var count int
	if err := repo.db.GetContext(ctx, &count, q, args...); err != nil {
		return err
	}
	if count > 0 {
		return organizer.ErrNameExists
	}
	return nil
}

func (repo *organizerRepository) CreateOrganizer(ctx context.Context, org organizer.Organizer) (organizer.Organizer, error) {
	const q = `
		INSERT INTO organizers (id, name_en, name_bm, status, created_at, created_by, updated_at, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := repo.db.ExecContext(ctx, q,
		org.ID, org.NameEN, org.NameBM, org.Status, org.CreatedAt, org.CreatedBy, org.UpdatedAt, org.UpdatedBy)
	if err != nil {
		if isUniqueViolation(err) {
			return organizer.Organizer{}, organizer.ErrNameExists
		}
		return organizer.Organizer{}, err
	}
	return org, nil
}

func (repo *organizerRepository) QueryAllOrganizers(ctx context.Context) ([]organizer.Organizer, error) {
	var rows []organizerRow
	if err := repo.db.SelectContext(ctx, &rows, `SELECT `+organizerColumns+` FROM organizers ORDER BY id`); err != nil {
		return nil, err
	}
	orgs := make([]organizer.Organizer, 0, len(rows))
	for _, row := range rows {
		orgs = append(orgs, row.toOrganizer())
	}
	return orgs, nil
}

func (repo *organizerRepository) GetOrganizerByID(ctx context.Context, id int) (organizer.Organizer, error) {
	var row organizerRow
	err := repo.db.GetContext(ctx, &row, `SELECT `+organizerColumns+` FROM organizers WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return organizer.Organizer{}, organizer.ErrNotFound
	}
	if err != nil {
		return organizer.Organizer{}, err
	}
	return row.toOrganizer(), nil
}

// UpdateOrganizer saves the editable fields and returns the stored row so
// creation audit fields survive partial updates.
func (repo *organizerRepository) UpdateOrganizer(ctx context.Context, org organizer.Organizer) (organizer.Organizer, error) {
	const q = `
		UPDATE organizers
		SET name_en = $2, name_bm = $3, status = $4, updated_at = $5, updated_by = $6
		WHERE id = $1
		RETURNING ` + organizerColumns
	var row organizerRow
	err := repo.db.GetContext(ctx, &row, q, org.ID, org.NameEN, org.NameBM, org.Status, org.UpdatedAt, org.UpdatedBy)
	if err == sql.ErrNoRows {
		return organizer.Organizer{}, organizer.ErrNotFound
	}
	if err != nil {
		if isUniqueViolation(err) {
			return organizer.Organizer{}, organizer.ErrNameExists
		}
		return organizer.Organizer{}, err
	}
	return row.toOrganizer(), nil
}

func (repo *organizerRepository) DeleteOrganizerByID(ctx context.Context, id int) error {
	return inTx(ctx, repo.db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM sub_organizers WHERE organizer_id = $1`, id); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM organizers WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return organizer.ErrNotFound
		}
		return nil
	})
}

func (repo *organizerRepository) CreateSubOrganizer(ctx context.Context, sub organizer.SubOrganizer) (organizer.SubOrganizer, error) {
	const q = `
		INSERT INTO sub_organizers (id, organizer_id, name_en, name_bm, created_at, created_by, updated_at, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := repo.db.ExecContext(ctx, q,
		sub.ID, sub.OrganizerID, sub.NameEN, sub.NameBM, sub.CreatedAt, sub.CreatedBy, sub.UpdatedAt, sub.UpdatedBy)
	if err != nil {
		return organizer.SubOrganizer{}, err
	}
	return sub, nil
}

func (repo *organizerRepository) QuerySubOrganizers(ctx context.Context, organizerID int) ([]organizer.SubOrganizer, error) {
	var rows []subOrganizerRow
	err := repo.db.SelectContext(ctx, &rows,
		`SELECT `+subColumns+` FROM sub_organizers WHERE organizer_id = $1 ORDER BY name_en`, organizerID)
	if err != nil {
		return nil, err
	}
	subs := make([]organizer.SubOrganizer, 0, len(rows))
	for _, row := range rows {
		subs = append(subs, row.toSubOrganizer())
	}
	return subs, nil
}

func (repo *organizerRepository) GetSubOrganizerByID(ctx context.Context, organizerID int, id string) (organizer.SubOrganizer, error) {
	var row subOrganizerRow
	err := repo.db.GetContext(ctx, &row,
		`SELECT `+subColumns+` FROM sub_organizers WHERE organizer_id = $1 AND id = $2`, organizerID, id)
	if err == sql.ErrNoRows {
		return organizer.SubOrganizer{}, organizer.ErrSubNotFound
	}
	if err != nil {
		return organizer.SubOrganizer{}, err
	}
	return row.toSubOrganizer(), nil
}

func (repo *organizerRepository) UpdateSubOrganizer(ctx context.Context, sub organizer.SubOrganizer) (organizer.SubOrganizer, error) {
	const q = `
		UPDATE sub_organizers
		SET name_en = $3, name_bm = $4, updated_at = $5, updated_by = $6
		WHERE organizer_id = $1 AND id = $2`
	res, err := repo.db.ExecContext(ctx, q, sub.OrganizerID, sub.ID, sub.NameEN, sub.NameBM, sub.UpdatedAt, sub.UpdatedBy)
	if err != nil {
		return organizer.SubOrganizer{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return organizer.SubOrganizer{}, organizer.ErrSubNotFound
	}
	return sub, nil
}

func (repo *organizerRepository) DeleteSubOrganizerByID(ctx context.Context, organizerID int, id string) error {
	res, err := repo.db.ExecContext(ctx,
		`DELETE FROM sub_organizers WHERE organizer_id = $1 AND id = $2`, organizerID, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return organizer.ErrSubNotFound
	}
	return nil
}
