package merit

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/meritum/core/event"
	"github.com/trezcool/meritum/core/student"
)

type (
	Service struct {
		repo     Repository
		events   event.Repository
		students student.Repository
	}

	// Breakdown summarizes a student's merits for the dashboard.
	Breakdown struct {
		TotalPoints int            `json:"total_points"`
		EventCount  int            `json:"event_count"`
		ByLevel     map[string]int `json:"by_level"`
		ByRole      map[string]int `json:"by_role"`
		Recent      []Merit        `json:"recent"`
	}
)

func NewService(repo Repository, events event.Repository, students student.Repository) *Service {
	return &Service{repo: repo, events: events, students: students}
}

// Award grants a merit to a student. The student must already exist (records
// are created at first login or by bulk upload). The student's running total
// is kept in sync.
func (svc *Service) Award(ctx context.Context, nm NewMerit, actor string) (Merit, error) {
	evt, err := svc.events.GetEventByID(ctx, nm.EventID)
	if err != nil {
		return Merit{}, errors.Wrap(err, "finding event")
	}

	if _, err = svc.students.GetStudentByMatric(ctx, nm.MatricNumber); err != nil {
		return Merit{}, errors.Wrap(err, "finding student")
	}

	points := nm.MeritPoints
	if points == 0 {
		values, vErr := svc.repo.GetValues(ctx)
		if vErr != nil {
			return Merit{}, errors.Wrap(vErr, "loading merit values")
		}
		points = CalculatePoints(nm.Role, evt.LevelID, nm.AdditionalNotes, values)
	}

	m := Merit{
		ID:              uuid.New().String(),
		EventID:         evt.ID,
		MatricNumber:    nm.MatricNumber,
		Name:            nm.Name,
		Role:            nm.Role,
		MeritPoints:     points,
		AdditionalNotes: nm.AdditionalNotes,
		LinkProof:       nm.LinkProof,
		MeritType:       nm.MeritType,
		EventLevel:      evt.LevelID,
		CreatedAt:       time.Now().UTC(),
		CreatedBy:       actor,
	}
	m, err = svc.repo.CreateMerit(ctx, m)
	if err != nil {
		return Merit{}, err
	}

	if _, err = svc.students.AddMerits(ctx, m.MatricNumber, m.MeritPoints); err != nil {
		return Merit{}, errors.Wrap(err, "updating student total")
	}
	return m, nil
}

// Revoke removes a merit and rolls the student's total back.
func (svc *Service) Revoke(ctx context.Context, matric, id string) error {
	m, err := svc.repo.DeleteMeritByID(ctx, matric, id)
	if err != nil {
		return err
	}
	_, err = svc.students.AddMerits(ctx, m.MatricNumber, -m.MeritPoints)
	return errors.Wrap(err, "updating student total")
}

// QueryByStudent returns a student's merits, most recent first.
func (svc *Service) QueryByStudent(ctx context.Context, matric string) ([]Merit, error) {
	merits, err := svc.repo.QueryMeritsByMatric(ctx, matric)
	if err != nil {
		return nil, err
	}
	sort.Slice(merits, func(i, j int) bool { return merits[i].CreatedAt.After(merits[j].CreatedAt) })
	return merits, nil
}

func (svc *Service) QueryByEvent(ctx context.Context, eventID int) ([]Merit, error) {
	return svc.repo.QueryMeritsByEvent(ctx, eventID)
}

// BreakdownFor aggregates a student's merits for the dashboard.
func (svc *Service) BreakdownFor(ctx context.Context, matric string) (Breakdown, error) {
	merits, err := svc.QueryByStudent(ctx, matric)
	if err != nil {
		return Breakdown{}, err
	}

	bd := Breakdown{
		ByLevel: make(map[string]int),
		ByRole:  make(map[string]int),
		Recent:  merits,
	}
	events := make(map[int]struct{})
	for _, m := range merits {
		bd.TotalPoints += m.MeritPoints
		bd.ByLevel[m.EventLevel] += m.MeritPoints
		bd.ByRole[m.Role] += m.MeritPoints
		events[m.EventID] = struct{}{}
	}
	bd.EventCount = len(events)
	if len(bd.Recent) > 5 {
		bd.Recent = bd.Recent[:5]
	}
	return bd, nil
}

func (svc *Service) Values(ctx context.Context) (Values, error) {
	return svc.repo.GetValues(ctx)
}

func (svc *Service) SetLevelValues(ctx context.Context, levelID string, roles map[string]int) error {
	return svc.repo.SetLevelValues(ctx, levelID, roles)
}
