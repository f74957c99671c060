package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/meritum/core/event"
)

type eventRepository struct {
	db *sqlx.DB
}

func NewEventRepository(db *sqlx.DB) event.Repository {
	return &eventRepository{db: db}
}

const eventColumns = `id, name, level_id, level, date, end_date, location, organizer_id, sub_organizer_id,
	description, status, custom_roles, is_sub_activity, parent_event_id, activity_order, has_sub_activities,
	created_at, created_by, updated_at, updated_by`

type eventRow struct {
	ID               int            `db:"id"`
	Name             string         `db:"name"`
	LevelID          string         `db:"level_id"`
	Level            string         `db:"level"`
	Date             time.Time      `db:"date"`
	EndDate          null.Time      `db:"end_date"`
	Location         string         `db:"location"`
	OrganizerID      int            `db:"organizer_id"`
	SubOrganizerID   string         `db:"sub_organizer_id"`
	Description      string         `db:"description"`
	Status           string         `db:"status"`
	CustomRoles      pq.StringArray `db:"custom_roles"`
	IsSubActivity    bool           `db:"is_sub_activity"`
	ParentEventID    null.Int       `db:"parent_event_id"`
	ActivityOrder    null.Int       `db:"activity_order"`
	HasSubActivities bool           `db:"has_sub_activities"`
	CreatedAt        time.Time      `db:"created_at"`
	CreatedBy        string         `db:"created_by"`
	UpdatedAt        time.Time      `db:"updated_at"`
	UpdatedBy        string         `db:"updated_by"`
}

func (r eventRow) toEvent() event.Event {
	return event.Event{
		ID:               r.ID,
		Name:             r.Name,
		LevelID:          r.LevelID,
		Level:            r.Level,
		Date:             r.Date,
		EndDate:          r.EndDate,
		Location:         r.Location,
		OrganizerID:      r.OrganizerID,
		SubOrganizerID:   r.SubOrganizerID,
		Description:      r.Description,
		Status:           r.Status,
		CustomRoles:      []string(r.CustomRoles),
		IsSubActivity:    r.IsSubActivity,
		ParentEventID:    r.ParentEventID,
		ActivityOrder:    r.ActivityOrder,
		HasSubActivities: r.HasSubActivities,
		CreatedAt:        r.CreatedAt,
		CreatedBy:        r.CreatedBy,
		UpdatedAt:        r.UpdatedAt,
		UpdatedBy:        r.UpdatedBy,
	}
}

func (repo *eventRepository) CheckNameUniqueness(ctx context.Context, name string, excluded ...event.Event) error {
	q := `SELECT count(*) FROM events WHERE lower(name) = lower($1)`
	args := []interface{}{name}
	if len(excluded) > 0 {
		q += ` AND id <> $2`
		args = append(args, excluded[0].ID)
	}
	var count int
	if err := repo.db.GetContext(ctx, &count, q, args...); err != nil {
		return err
	}
	if count > 0 {
		return event.ErrNameExists
	}
	return nil
}

func (repo *eventRepository) CreateEvent(ctx context.Context, evt event.Event) (event.Event, error) {
	const q = `
		INSERT INTO events (id, name, level_id, level, date, end_date, location, organizer_id, sub_organizer_id,
			description, status, custom_roles, is_sub_activity, parent_event_id, activity_order, has_sub_activities,
			created_at, created_by, updated_at, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`
	_, err := repo.db.ExecContext(ctx, q,
		evt.ID, evt.Name, evt.LevelID, evt.Level, evt.Date, evt.EndDate, evt.Location, evt.OrganizerID,
		evt.SubOrganizerID, evt.Description, evt.Status, pq.StringArray(evt.CustomRoles), evt.IsSubActivity,
		evt.ParentEventID, evt.ActivityOrder, evt.HasSubActivities,
		evt.CreatedAt, evt.CreatedBy, evt.UpdatedAt, evt.UpdatedBy)
	if err != nil {
		if isUniqueViolation(err) {
			return event.Event{}, event.ErrNameExists
		}
		return event.Event{}, err
	}
	return evt, nil
}

func (repo *eventRepository) QueryAllEvents(ctx context.Context) ([]event.Event, error) {
	var rows []eventRow
	if err := repo.db.SelectContext(ctx, &rows, `SELECT `+eventColumns+` FROM events ORDER BY date DESC, id`); err != nil {
		return nil, err
	}
	events := make([]event.Event, 0, len(rows))
	for _, row := range rows {
		events = append(events, row.toEvent())
	}
	return events, nil
}

func (repo *eventRepository) GetEventByID(ctx context.Context, id int) (event.Event, error) {
	var row eventRow
	err := repo.db.GetContext(ctx, &row, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return event.Event{}, event.ErrNotFound
	}
	if err != nil {
		return event.Event{}, err
	}
	return row.toEvent(), nil
}

func (repo *eventRepository) QueryChildActivities(ctx context.Context, parentID int) ([]event.Event, error) {
	const q = `SELECT ` + eventColumns + ` FROM events WHERE parent_event_id = $1 ORDER BY activity_order NULLS LAST, id`
	var rows []eventRow
	if err := repo.db.SelectContext(ctx, &rows, q, parentID); err != nil {
		return nil, err
	}
	children := make([]event.Event, 0, len(rows))
	for _, row := range rows {
		children = append(children, row.toEvent())
	}
	return children, nil
}

// UpdateEvent saves the editable fields and returns the stored row; creation
// audit, nesting flags and the activity order are left untouched.
func (repo *eventRepository) UpdateEvent(ctx context.Context, evt event.Event) (event.Event, error) {
	const q = `
		UPDATE events
		SET name = $2, level_id = $3, level = $4, date = $5, end_date = $6, location = $7, organizer_id = $8,
			sub_organizer_id = $9, description = $10, status = $11, custom_roles = $12,
			updated_at = $13, updated_by = $14
		WHERE id = $1
		RETURNING ` + eventColumns
	var row eventRow
	err := repo.db.GetContext(ctx, &row, q,
		evt.ID, evt.Name, evt.LevelID, evt.Level, evt.Date, evt.EndDate, evt.Location, evt.OrganizerID,
		evt.SubOrganizerID, evt.Description, evt.Status, pq.StringArray(evt.CustomRoles),
		evt.UpdatedAt, evt.UpdatedBy)
	if err == sql.ErrNoRows {
		return event.Event{}, event.ErrNotFound
	}
	if err != nil {
		if isUniqueViolation(err) {
			return event.Event{}, event.ErrNameExists
		}
		return event.Event{}, err
	}
	return row.toEvent(), nil
}

func (repo *eventRepository) SetHasSubActivities(ctx context.Context, id int, has bool) error {
	res, err := repo.db.ExecContext(ctx, `UPDATE events SET has_sub_activities = $2 WHERE id = $1`, id, has)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return event.ErrNotFound
	}
	return nil
}

func (repo *eventRepository) DeleteEventByID(ctx context.Context, id int) error {
	return inTx(ctx, repo.db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM events WHERE parent_event_id = $1`, id); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return event.ErrNotFound
		}
		return nil
	})
}
