// Package adapters provides repository implementations for meal records.
package adapters

import (
	"time"

	"github.com/shopspring/decimal"

	authentity "mealscan_backend/internal/feature/auth/domain/entity"
	"mealscan_backend/internal/feature/records/domain/entity"
)

// RecordModel is the GORM model for the records table.
// Both user references cascade on delete.
type RecordModel struct {
	ID           uint            `gorm:"primaryKey"`
	StudentID    uint            `gorm:"not null;index"`
	ContractorID uint            `gorm:"not null;index"`
	Type         string          `gorm:"size:20;not null"`
	MealType     string          `gorm:"size:50;not null"`
	Items        string          `gorm:"type:text;not null"`
	Cost         decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	RecordDate   time.Time       `gorm:"type:date;not null;index"`
	CreatedAt    time.Time

	Student    authentity.User `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
	Contractor authentity.User `gorm:"foreignKey:ContractorID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM.
func (RecordModel) TableName() string {
	return "records"
}

// RecordModelFromEntity converts a domain entity to a GORM model.
func RecordModelFromEntity(r *entity.Record) *RecordModel {
	return &RecordModel{
		ID:           r.ID,
		StudentID:    r.StudentID,
		ContractorID: r.ContractorID,
		Type:         string(r.Type),
		MealType:     r.MealType,
		Items:        r.Items,
		Cost:         r.Cost,
		RecordDate:   entity.Date(r.RecordDate),
		CreatedAt:    r.CreatedAt,
	}
}

// recordRow is one row of the records/users join.
type recordRow struct {
	ID             uint
	StudentID      uint
	ContractorID   uint
	Type           string
	MealType       string
	Items          string
	Cost           decimal.Decimal
	RecordDate     time.Time
	CreatedAt      time.Time
	StudentName    string
	ContractorName string
}

func (row *recordRow) toView() entity.RecordView {
	return entity.RecordView{
		Record: entity.Record{
			ID:           row.ID,
			StudentID:    row.StudentID,
			ContractorID: row.ContractorID,
			Type:         entity.RecordType(row.Type),
			MealType:     row.MealType,
			Items:        row.Items,
			Cost:         row.Cost,
			RecordDate:   entity.Date(row.RecordDate),
			CreatedAt:    row.CreatedAt,
		},
		StudentName:    row.StudentName,
		ContractorName: row.ContractorName,
	}
}
