package adapters

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"mealscan_backend/internal/feature/records/domain/entity"
	"mealscan_backend/internal/feature/records/usecase"
)

const viewColumns = "r.id, r.student_id, r.contractor_id, r.type, r.meal_type, r.items, r.cost, " +
	"r.record_date, r.created_at, s.name AS student_name, c.name AS contractor_name"

// recordGorm is the GORM implementation of usecase.RecordRepository.
type recordGorm struct {
	db *gorm.DB
}

// Compile-time check to ensure recordGorm implements RecordRepository.
var _ usecase.RecordRepository = (*recordGorm)(nil)

// NewRecordGorm creates a recordGorm bound to db.
func NewRecordGorm(db *gorm.DB) *recordGorm {
	return &recordGorm{db: db}
}

// views starts a query over records joined with the names of both users.
func (r *recordGorm) views(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("records AS r").
		Select(viewColumns).
		Joins("JOIN users s ON s.id = r.student_id").
		Joins("JOIN users c ON c.id = r.contractor_id")
}

func scanViews(q *gorm.DB) ([]entity.RecordView, error) {
	var rows []recordRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.RecordView, len(rows))
	for i := range rows {
		out[i] = rows[i].toView()
	}
	return out, nil
}

// Create inserts the record and returns it with the student and contractor names.
func (r *recordGorm) Create(ctx context.Context, rec *entity.Record) (*entity.RecordView, error) {
	model := RecordModelFromEntity(rec)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(model).Error; err != nil {
		return nil, err
	}
	rec.ID = model.ID
	rec.CreatedAt = model.CreatedAt
	return r.FindView(ctx, model.ID)
}

// FindView returns usecase.ErrRecordNotFound when id is unknown.
func (r *recordGorm) FindView(ctx context.Context, id uint) (*entity.RecordView, error) {
	views, err := scanViews(r.views(ctx).Where("r.id = ?", id).Limit(1))
	if err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, usecase.ErrRecordNotFound
	}
	return &views[0], nil
}

// ListByStudentAndType returns the student's records of one venue, newest first.
func (r *recordGorm) ListByStudentAndType(ctx context.Context, studentID uint, t entity.RecordType) ([]entity.RecordView, error) {
	return scanViews(r.views(ctx).
		Where("r.student_id = ? AND r.type = ?", studentID, string(t)).
		Order("r.record_date DESC, r.created_at DESC, r.id DESC"))
}

// ListByContractor returns the records a contractor logged, newest first.
func (r *recordGorm) ListByContractor(ctx context.Context, contractorID uint) ([]entity.RecordView, error) {
	return scanViews(r.views(ctx).
		Where("r.contractor_id = ?", contractorID).
		Order("r.record_date DESC, r.created_at DESC, r.id DESC"))
}

// ListForMonth returns the student's records of one venue in a calendar month, oldest first.
func (r *recordGorm) ListForMonth(ctx context.Context, studentID uint, t entity.RecordType, year int, month time.Month) ([]entity.RecordView, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	return scanViews(r.views(ctx).
		Where("r.student_id = ? AND r.type = ?", studentID, string(t)).
		Where("r.record_date >= ? AND r.record_date < ?", start, end).
		Order("r.record_date ASC, r.created_at ASC, r.id ASC"))
}

// Delete removes the record only when contractorID owns it. It reports whether a row was removed.
func (r *recordGorm) Delete(ctx context.Context, id, contractorID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND contractor_id = ?", id, contractorID).
		Delete(&RecordModel{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
