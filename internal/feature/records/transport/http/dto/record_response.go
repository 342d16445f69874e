// Package dto defines the request and response bodies of the records endpoints.
package dto

import (
	"encoding/json"
	"time"

	"mealscan_backend/internal/feature/records/domain/entity"
	"mealscan_backend/internal/shared/money"
)

// RecordRes is a meal record as rendered to clients.
type RecordRes struct {
	ID             uint        `json:"id"`
	StudentID      uint        `json:"studentId"`
	ContractorID   uint        `json:"contractorId"`
	Type           string      `json:"type"`
	MealType       string      `json:"mealType"`
	Items          string      `json:"items"`
	Cost           json.Number `json:"cost"`
	RecordDate     string      `json:"recordDate"` // YYYY-MM-DD
	CreatedAt      time.Time   `json:"createdAt"`
	StudentName    string      `json:"studentName"`
	ContractorName string      `json:"contractorName"`
}

// NewRecordRes converts a record view for output.
func NewRecordRes(v *entity.RecordView) RecordRes {
	return RecordRes{
		ID:             v.ID,
		StudentID:      v.StudentID,
		ContractorID:   v.ContractorID,
		Type:           string(v.Type),
		MealType:       v.MealType,
		Items:          v.Items,
		Cost:           money.JSON(v.Cost),
		RecordDate:     v.RecordDate.Format(entity.DateLayout),
		CreatedAt:      v.CreatedAt,
		StudentName:    v.StudentName,
		ContractorName: v.ContractorName,
	}
}

// NewRecordResList converts views in order. It never returns nil, so an empty
// list renders as [] rather than null.
func NewRecordResList(views []entity.RecordView) []RecordRes {
	out := make([]RecordRes, 0, len(views))
	for i := range views {
		out = append(out, NewRecordRes(&views[i]))
	}
	return out
}
