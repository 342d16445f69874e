// Package dto defines the response body of the stats endpoint.
package dto

import (
	"encoding/json"

	authentity "mealscan_backend/internal/feature/auth/domain/entity"
	recordentity "mealscan_backend/internal/feature/records/domain/entity"
	"mealscan_backend/internal/feature/stats/usecase"
	"mealscan_backend/internal/shared/money"
)

// ActivityRes is one entry of the recent activity preview.
type ActivityRes struct {
	StudentName string      `json:"studentName"`
	MealType    string      `json:"mealType"`
	Cost        json.Number `json:"cost"`
	Date        string      `json:"date"`
}

// StatsRes is the contractor dashboard.
type StatsRes struct {
	TotalRecords    int           `json:"totalRecords"`
	TotalStudents   int           `json:"totalStudents"`
	TodayRecords    int           `json:"todayRecords"`
	MonthlyEarnings json.Number   `json:"monthlyEarnings"`
	TotalEarnings   json.Number   `json:"totalEarnings"`
	AvgMealCost     json.Number   `json:"avgMealCost"`
	RecentActivity  []ActivityRes `json:"recentActivity"`

	StudentCount           int64 `json:"studentCount"`
	MessContractorCount    int64 `json:"mess_contractorCount"`
	CanteenContractorCount int64 `json:"canteen_contractorCount"`
	TotalUsers             int64 `json:"totalUsers"`
}

// NewStatsRes converts computed stats for output.
func NewStatsRes(s *usecase.Stats) StatsRes {
	activity := make([]ActivityRes, 0, len(s.RecentActivity))
	for _, r := range s.RecentActivity {
		activity = append(activity, ActivityRes{
			StudentName: r.StudentName,
			MealType:    r.MealType,
			Cost:        money.JSON(r.Cost),
			Date:        r.RecordDate.Format(recordentity.DateLayout),
		})
	}
	return StatsRes{
		TotalRecords:           s.TotalRecords,
		TotalStudents:          s.TotalStudents,
		TodayRecords:           s.TodayRecords,
		MonthlyEarnings:        money.JSON(s.MonthlyEarnings),
		TotalEarnings:          money.JSON(s.TotalEarnings),
		AvgMealCost:            money.JSON(s.AvgMealCost),
		RecentActivity:         activity,
		StudentCount:           s.RoleCounts[authentity.RoleStudent],
		MessContractorCount:    s.RoleCounts[authentity.RoleMessContractor],
		CanteenContractorCount: s.RoleCounts[authentity.RoleCanteenContractor],
		TotalUsers:             s.TotalUsers,
	}
}
