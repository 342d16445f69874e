package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	authentity "mealscan_backend/internal/feature/auth/domain/entity"
	authusecase "mealscan_backend/internal/feature/auth/usecase"
	"mealscan_backend/internal/feature/billing"
	"mealscan_backend/internal/feature/records/domain/entity"
)

// RecordRepository abstracts persistence of meal records.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type RecordRepository interface {
	// Create persists rec and returns it joined with the student and contractor names.
	Create(ctx context.Context, rec *entity.Record) (*entity.RecordView, error)

	// FindView returns ErrRecordNotFound when id is unknown.
	FindView(ctx context.Context, id uint) (*entity.RecordView, error)

	// ListByStudentAndType orders by record date, then creation time, both descending.
	ListByStudentAndType(ctx context.Context, studentID uint, t entity.RecordType) ([]entity.RecordView, error)

	// ListByContractor orders by record date, then creation time, both descending.
	ListByContractor(ctx context.Context, contractorID uint) ([]entity.RecordView, error)

	// ListForMonth orders by record date ascending.
	ListForMonth(ctx context.Context, studentID uint, t entity.RecordType, year int, month time.Month) ([]entity.RecordView, error)

	// Delete removes the record only if contractorID owns it and reports whether it did.
	Delete(ctx context.Context, id, contractorID uint) (bool, error)
}

// UserFinder looks up the student a record is uploaded for.
type UserFinder interface {
	FindByID(ctx context.Context, id uint) (*authentity.User, error)
}

// UploadInput carries the fields of a meal upload. Cost and RecordDate are already parsed.
type UploadInput struct {
	StudentID  uint
	MealType   string
	Items      string
	Cost       decimal.Decimal
	RecordDate string
}

// Bill is a student's itemized bill for one venue and month.
type Bill struct {
	Type    entity.RecordType
	Year    int
	Month   time.Month
	Records []entity.RecordView
	Total   decimal.Decimal
}

// recordUsecase implements meal record and bill operations.
type recordUsecase struct {
	records RecordRepository
	users   UserFinder
	now     func() time.Time
}

// NewRecordUsecase creates a recordUsecase.
func NewRecordUsecase(records RecordRepository, users UserFinder) *recordUsecase {
	return &recordUsecase{
		records: records,
		users:   users,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// List returns the records visible to the caller. Students must name a venue and
// see their own records of it; contractors see everything they logged.
func (u *recordUsecase) List(ctx context.Context, userID uint, role authentity.Role, rawType string) ([]entity.RecordView, error) {
	if role.IsContractor() {
		return u.records.ListByContractor(ctx, userID)
	}
	if strings.TrimSpace(rawType) == "" {
		return nil, ErrTypeRequired
	}
	t, ok := entity.ParseRecordType(rawType)
	if !ok {
		return nil, ErrInvalidType
	}
	return u.records.ListByStudentAndType(ctx, userID, t)
}

// Upload logs a meal served by the calling contractor. The venue is derived from the
// contractor's role.
func (u *recordUsecase) Upload(ctx context.Context, contractorID uint, role authentity.Role, in UploadInput) (*entity.RecordView, error) {
	t, ok := entity.RecordTypeForRole(role)
	if !ok {
		return nil, ErrNotContractor
	}

	mealType := strings.TrimSpace(in.MealType)
	items := strings.TrimSpace(in.Items)
	if in.StudentID == 0 || mealType == "" || items == "" || strings.TrimSpace(in.RecordDate) == "" {
		return nil, ErrMissingFields
	}
	if !in.Cost.IsPositive() {
		return nil, ErrInvalidCost
	}
	if !in.Cost.Equal(in.Cost.Truncate(2)) {
		return nil, ErrCostPrecision
	}
	date, err := time.Parse(entity.DateLayout, strings.TrimSpace(in.RecordDate))
	if err != nil {
		return nil, ErrInvalidDate
	}

	student, err := u.users.FindByID(ctx, in.StudentID)
	if err != nil {
		if errors.Is(err, authusecase.ErrUserNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to find student: %w", err)
	}
	if student.Role != authentity.RoleStudent {
		return nil, ErrStudentNotFound
	}

	rec := &entity.Record{
		StudentID:    in.StudentID,
		ContractorID: contractorID,
		Type:         t,
		MealType:     mealType,
		Items:        items,
		Cost:         in.Cost,
		RecordDate:   date,
		CreatedAt:    u.now(),
	}
	return u.records.Create(ctx, rec)
}

// Delete removes a record owned by the calling contractor. A record that is missing
// or owned by someone else yields ErrRecordNotFound and stays in storage.
func (u *recordUsecase) Delete(ctx context.Context, contractorID uint, role authentity.Role, id uint) error {
	if !role.IsContractor() {
		return ErrNotContractor
	}
	if id == 0 {
		return ErrInvalidRecordID
	}
	deleted, err := u.records.Delete(ctx, id, contractorID)
	if err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	if !deleted {
		return ErrRecordNotFound
	}
	return nil
}

// MonthlyBill returns the student's records for one venue and month with their exact total.
func (u *recordUsecase) MonthlyBill(ctx context.Context, studentID uint, rawType string, year, month int) (*Bill, error) {
	if strings.TrimSpace(rawType) == "" || year == 0 || month == 0 {
		return nil, ErrInvalidPeriod
	}
	t, ok := entity.ParseRecordType(rawType)
	if !ok {
		return nil, ErrInvalidType
	}
	if month < 1 || month > 12 {
		return nil, ErrInvalidMonth
	}

	records, err := u.records.ListForMonth(ctx, studentID, t, year, time.Month(month))
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	return &Bill{
		Type:    t,
		Year:    year,
		Month:   time.Month(month),
		Records: records,
		Total:   billing.MonthlyTotal(records),
	}, nil
}
