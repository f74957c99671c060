package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/trezcool/meritum/core/merit"
)

type meritRepository struct {
	db *sqlx.DB
}

func NewMeritRepository(db *sqlx.DB) merit.Repository {
	return &meritRepository{db: db}
}

const meritColumns = `id, event_id, matric_number, name, role, merit_points, additional_notes, link_proof,
	merit_type, event_level, created_at, created_by`

type meritRow struct {
	ID              string    `db:"id"`
	EventID         int       `db:"event_id"`
	MatricNumber    string    `db:"matric_number"`
	Name            string    `db:"name"`
	Role            string    `db:"role"`
	MeritPoints     int       `db:"merit_points"`
	AdditionalNotes string    `db:"additional_notes"`
	LinkProof       string    `db:"link_proof"`
	MeritType       string    `db:"merit_type"`
	EventLevel      string    `db:"event_level"`
	CreatedAt       time.Time `db:"created_at"`
	CreatedBy       string    `db:"created_by"`
}

func (r meritRow) toMerit() merit.Merit {
	return merit.Merit{
		ID:              r.ID,
		EventID:         r.EventID,
		MatricNumber:    r.MatricNumber,
		Name:            r.Name,
		Role:            r.Role,
		MeritPoints:     r.MeritPoints,
		AdditionalNotes: r.AdditionalNotes,
		LinkProof:       r.LinkProof,
		MeritType:       r.MeritType,
		EventLevel:      r.EventLevel,
		CreatedAt:       r.CreatedAt,
		CreatedBy:       r.CreatedBy,
	}
}

func (repo *meritRepository) CreateMerit(ctx context.Context, m merit.Merit) (merit.Merit, error) {
	const q = `
		INSERT INTO merits (id, event_id, matric_number, name, role, merit_points, additional_notes, link_proof,
			merit_type, event_level, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := repo.db.ExecContext(ctx, q,
		m.ID, m.EventID, m.MatricNumber, m.Name, m.Role, m.MeritPoints, m.AdditionalNotes, m.LinkProof,
		m.MeritType, m.EventLevel, m.CreatedAt, m.CreatedBy)
	if err != nil {
		return merit.Merit{}, err
	}
	return m, nil
}

func (repo *meritRepository) QueryMeritsByMatric(ctx context.Context, matric string) ([]merit.Merit, error) {
	const q = `SELECT ` + meritColumns + ` FROM merits WHERE matric_number = $1 ORDER BY created_at DESC, id`
	var rows []meritRow
	if err := repo.db.SelectContext(ctx, &rows, q, matric); err != nil {
		return nil, err
	}
	merits := make([]merit.Merit, 0, len(rows))
	for _, row := range rows {
		merits = append(merits, row.toMerit())
	}
	return merits, nil
}

func (repo *meritRepository) QueryMeritsByEvent(ctx context.Context, eventID int) ([]merit.Merit, error) {
	const q = `SELECT ` + meritColumns + ` FROM merits WHERE event_id = $1 ORDER BY matric_number, id`
	var rows []meritRow
	if err := repo.db.SelectContext(ctx, &rows, q, eventID); err != nil {
		return nil, err
	}
	merits := make([]merit.Merit, 0, len(rows))
	for _, row := range rows {
		merits = append(merits, row.toMerit())
	}
	return merits, nil
}

func (repo *meritRepository) DeleteMeritByID(ctx context.Context, matric, id string) (merit.Merit, error) {
	const q = `DELETE FROM merits WHERE matric_number = $1 AND id = $2 RETURNING ` + meritColumns
	var row meritRow
	err := repo.db.GetContext(ctx, &row, q, matric, id)
	if err == sql.ErrNoRows {
		return merit.Merit{}, merit.ErrNotFound
	}
	if err != nil {
		return merit.Merit{}, err
	}
	return row.toMerit(), nil
}

type valueRow struct {
	LevelID     string `db:"level_id"`
	Achievement string `db:"achievement"`
	Role        string `db:"role"`
	Points      int    `db:"points"`
}

func (repo *meritRepository) GetValues(ctx context.Context) (merit.Values, error) {
	v := merit.Values{
		Levels:       make(map[string]map[string]int),
		Achievements: make(map[string]map[string]int),
	}

	var levelRows []valueRow
	if err := repo.db.SelectContext(ctx, &levelRows,
		`SELECT level_id, role, points FROM merit_level_values`); err != nil {
		return merit.Values{}, err
	}
	for _, row := range levelRows {
		roles, ok := v.Levels[row.LevelID]
		if !ok {
			roles = make(map[string]int)
			v.Levels[row.LevelID] = roles
		}
		roles[row.Role] = row.Points
	}

	var achRows []valueRow
	if err := repo.db.SelectContext(ctx, &achRows,
		`SELECT achievement, level_id, points FROM merit_achievement_values`); err != nil {
		return merit.Values{}, err
	}
	for _, row := range achRows {
		perLevel, ok := v.Achievements[row.Achievement]
		if !ok {
			perLevel = make(map[string]int)
			v.Achievements[row.Achievement] = perLevel
		}
		perLevel[row.LevelID] = row.Points
	}
	return v, nil
}

func (repo *meritRepository) SetLevelValues(ctx context.Context, levelID string, roles map[string]int) error {
	return inTx(ctx, repo.db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM merit_level_values WHERE level_id = $1`, levelID); err != nil {
			return err
		}
		const q = `INSERT INTO merit_level_values (level_id, role, points) VALUES ($1, $2, $3)`
		for role, points := range roles {
			if _, err := tx.ExecContext(ctx, q, levelID, role, points); err != nil {
				return err
			}
		}
		return nil
	})
}
