package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/trezcool/meritum/core/level"
)

type levelRepository struct {
	db *sqlx.DB
}

func NewLevelRepository(db *sqlx.DB) level.Repository {
	return &levelRepository{db: db}
}

const levelColumns = `id, name, short_name, "order", description, is_active, color`

type levelRow struct {
	ID          string `db:"id"`
	Name        string `db:"name"`
	ShortName   string `db:"short_name"`
	Order       int    `db:"order"`
	Description string `db:"description"`
	IsActive    bool   `db:"is_active"`
	Color       string `db:"color"`
}

func (r levelRow) toLevel() level.Level {
	return level.Level{
		ID:          r.ID,
		Name:        r.Name,
		ShortName:   r.ShortName,
		Order:       r.Order,
		Description: r.Description,
		IsActive:    r.IsActive,
		Color:       r.Color,
	}
}

func (repo *levelRepository) QueryAllLevels(ctx context.Context) ([]level.Level, error) {
	var rows []levelRow
	if err := repo.db.SelectContext(ctx, &rows, `SELECT `+levelColumns+` FROM levels ORDER BY "order"`); err != nil {
		return nil, err
	}
	levels := make([]level.Level, 0, len(rows))
	for _, row := range rows {
		levels = append(levels, row.toLevel())
	}
	return levels, nil
}

func (repo *levelRepository) GetLevelByID(ctx context.Context, id string) (level.Level, error) {
	var row levelRow
	err := repo.db.GetContext(ctx, &row, `SELECT `+levelColumns+` FROM levels WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return level.Level{}, level.ErrNotFound
	}
	if err != nil {
		return level.Level{}, err
	}
	return row.toLevel(), nil
}

func (repo *levelRepository) UpsertLevel(ctx context.Context, lvl level.Level) (level.Level, error) {
	const q = `
		INSERT INTO levels (id, name, short_name, "order", description, is_active, color)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE
		SET name = $2, short_name = $3, "order" = $4, description = $5, is_active = $6, color = $7`
	_, err := repo.db.ExecContext(ctx, q,
		lvl.ID, lvl.Name, lvl.ShortName, lvl.Order, lvl.Description, lvl.IsActive, lvl.Color)
	if err != nil {
		return level.Level{}, err
	}
	return lvl, nil
}

func (repo *levelRepository) DeleteLevelByID(ctx context.Context, id string) error {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM levels WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return level.ErrNotFound
	}
	return nil
}
