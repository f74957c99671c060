package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/trezcool/meritum/core/auth"
)

type adminRepository struct {
	db *sqlx.DB
}

func NewAdminRepository(db *sqlx.DB) auth.AdminRepository {
	return &adminRepository{db: db}
}

type adminRow struct {
	Key       string    `db:"key"`
	Email     string    `db:"email"`
	Active    bool      `db:"active"`
	CreatedAt time.Time `db:"created_at"`
}

func (r adminRow) toAdmin() auth.Admin {
	return auth.Admin{Key: r.Key, Email: r.Email, Active: r.Active, CreatedAt: r.CreatedAt}
}

func (repo *adminRepository) GetAdminByKey(ctx context.Context, key string) (auth.Admin, error) {
	var row adminRow
	err := repo.db.GetContext(ctx, &row, `SELECT key, email, active, created_at FROM admins WHERE key = $1`, key)
	if err == sql.ErrNoRows {
		return auth.Admin{}, auth.ErrAdminNotFound
	}
	if err != nil {
		return auth.Admin{}, err
	}
	return row.toAdmin(), nil
}

func (repo *adminRepository) QueryAllAdmins(ctx context.Context) ([]auth.Admin, error) {
	var rows []adminRow
	if err := repo.db.SelectContext(ctx, &rows, `SELECT key, email, active, created_at FROM admins ORDER BY email`); err != nil {
		return nil, err
	}
	admins := make([]auth.Admin, 0, len(rows))
	for _, row := range rows {
		admins = append(admins, row.toAdmin())
	}
	return admins, nil
}

func (repo *adminRepository) UpsertAdmin(ctx context.Context, adm auth.Admin) (auth.Admin, error) {
	const q = `
		INSERT INTO admins (key, email, active, created_at) VALUES ($1, $2, $3, $4)
		ON CONFLICT (key) DO UPDATE SET email = $2, active = $3`
	if _, err := repo.db.ExecContext(ctx, q, adm.Key, adm.Email, adm.Active, adm.CreatedAt); err != nil {
		return auth.Admin{}, err
	}
	return adm, nil
}

func (repo *adminRepository) DeleteAdminByKey(ctx context.Context, key string) error {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM admins WHERE key = $1`, key)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return auth.ErrAdminNotFound
	}
	return nil
}
