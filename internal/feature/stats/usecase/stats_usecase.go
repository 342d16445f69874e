// Package usecase assembles contractor statistics.
package usecase

import (
	"context"
	"fmt"
	"time"

	authentity "mealscan_backend/internal/feature/auth/domain/entity"
	"mealscan_backend/internal/feature/billing"
	recordentity "mealscan_backend/internal/feature/records/domain/entity"
)

// RecordLister lists the records a contractor logged, newest first.
type RecordLister interface {
	ListByContractor(ctx context.Context, contractorID uint) ([]recordentity.RecordView, error)
}

// UserCounter counts users per role.
type UserCounter interface {
	CountByRole(ctx context.Context) (map[authentity.Role]int64, error)
}

// Stats is the dashboard of one contractor plus the user population.
type Stats struct {
	billing.ContractorStats
	RoleCounts map[authentity.Role]int64
	TotalUsers int64
}

type statsUsecase struct {
	records RecordLister
	users   UserCounter
	now     func() time.Time
}

// NewStatsUsecase creates a statsUsecase. A nil now uses the UTC wall clock.
func NewStatsUsecase(records RecordLister, users UserCounter, now func() time.Time) *statsUsecase {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &statsUsecase{records: records, users: users, now: now}
}

// ContractorStats computes the statistics shown to contractorID.
func (u *statsUsecase) ContractorStats(ctx context.Context, contractorID uint) (*Stats, error) {
	counts, err := u.users.CountByRole(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	records, err := u.records.ListByContractor(ctx, contractorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	var total int64
	for _, n := range counts {
		total += n
	}
	students := int(counts[authentity.RoleStudent])
	return &Stats{
		ContractorStats: billing.ComputeContractorStats(records, students, u.now()),
		RoleCounts:      counts,
		TotalUsers:      total,
	}, nil
}
