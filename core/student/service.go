package student

import (
	"context"
	"sort"
	"strings"
)

type (
	// Rank is a student's standing by total merit points.
	Rank struct {
		Position     int    `json:"position"`
		OutOf        int    `json:"out_of"`
		MatricNumber string `json:"matricNumber"`
		DisplayName  string `json:"displayName"`
		TotalMerits  int    `json:"totalMerits"`
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) GetByMatric(ctx context.Context, matric string) (Student, error) {
	return svc.repo.GetStudentByMatric(ctx, strings.ToUpper(strings.TrimSpace(matric)))
}

func (svc *Service) QueryAll(ctx context.Context) ([]Student, error) {
	return svc.repo.QueryAllStudents(ctx)
}

// Rankings returns all students ordered by TotalMerits descending.
// Ties share point totals but keep a stable matric ordering.
func (svc *Service) Rankings(ctx context.Context) ([]Rank, error) {
	students, err := svc.repo.QueryAllStudents(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(students, func(i, j int) bool {
		if students[i].TotalMerits != students[j].TotalMerits {
			return students[i].TotalMerits > students[j].TotalMerits
		}
		return students[i].MatricNumber < students[j].MatricNumber
	})

	ranks := make([]Rank, 0, len(students))
	for i, std := range students {
		ranks = append(ranks, Rank{
			Position:     i + 1,
			OutOf:        len(students),
			MatricNumber: std.MatricNumber,
			DisplayName:  std.DisplayName,
			TotalMerits:  std.TotalMerits,
		})
	}
	return ranks, nil
}

// RankOf finds a single student's standing.
func (svc *Service) RankOf(ctx context.Context, matric string) (Rank, error) {
	ranks, err := svc.Rankings(ctx)
	if err != nil {
		return Rank{}, err
	}
	matric = strings.ToUpper(strings.TrimSpace(matric))
	for _, r := range ranks {
		if r.MatricNumber == matric {
			return r, nil
		}
	}
	return Rank{}, ErrNotFound
}
