// Package billing computes bills and contractor statistics from meal records.
// Every function here is a pure function of its arguments.
package billing

import (
	"time"

	"github.com/shopspring/decimal"

	"mealscan_backend/internal/feature/records/domain/entity"
	"mealscan_backend/internal/shared/money"
)

// RecentActivityLimit is the number of records shown in a contractor's recent activity.
const RecentActivityLimit = 5

// MonthlyTotal returns the exact sum of the record costs.
func MonthlyTotal(records []entity.RecordView) decimal.Decimal {
	costs := make([]decimal.Decimal, len(records))
	for i := range records {
		costs[i] = records[i].Cost
	}
	return money.Sum(costs...)
}

// ContractorStats summarizes the records a contractor logged.
type ContractorStats struct {
	TotalRecords    int
	TotalStudents   int
	TodayRecords    int
	MonthlyEarnings decimal.Decimal
	TotalEarnings   decimal.Decimal
	AvgMealCost     decimal.Decimal
	RecentActivity  []entity.RecordView
}

// ComputeContractorStats aggregates records as of now. records must be in listing
// order (newest first); the first RecentActivityLimit of them form the recent activity.
func ComputeContractorStats(records []entity.RecordView, studentCount int, now time.Time) ContractorStats {
	today := entity.Date(now)
	year, month, _ := today.Date()

	stats := ContractorStats{
		TotalRecords:    len(records),
		TotalStudents:   studentCount,
		MonthlyEarnings: decimal.Zero,
		TotalEarnings:   decimal.Zero,
		AvgMealCost:     decimal.Zero,
	}
	for _, r := range records {
		d := entity.Date(r.RecordDate)
		if d.Equal(today) {
			stats.TodayRecords++
		}
		if y, m, _ := d.Date(); y == year && m == month {
			stats.MonthlyEarnings = stats.MonthlyEarnings.Add(r.Cost)
		}
		stats.TotalEarnings = stats.TotalEarnings.Add(r.Cost)
	}
	if n := len(records); n > 0 {
		stats.AvgMealCost = stats.TotalEarnings.DivRound(decimal.NewFromInt(int64(n)), money.Scale)
	}

	recent := records
	if len(recent) > RecentActivityLimit {
		recent = recent[:RecentActivityLimit]
	}
	stats.RecentActivity = append([]entity.RecordView(nil), recent...)
	return stats
}
