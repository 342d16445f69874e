package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authentity "mealscan_backend/internal/feature/auth/domain/entity"
	authusecase "mealscan_backend/internal/feature/auth/usecase"
	"mealscan_backend/internal/feature/records/domain/entity"
)

// mockRecordRepository is a function-field mock of RecordRepository.
type mockRecordRepository struct {
	CreateFunc               func(rec *entity.Record) (*entity.RecordView, error)
	FindViewFunc             func(id uint) (*entity.RecordView, error)
	ListByStudentAndTypeFunc func(studentID uint, t entity.RecordType) ([]entity.RecordView, error)
	ListByContractorFunc     func(contractorID uint) ([]entity.RecordView, error)
	ListForMonthFunc         func(studentID uint, t entity.RecordType, year int, month time.Month) ([]entity.RecordView, error)
	DeleteFunc               func(id, contractorID uint) (bool, error)
}

func (m *mockRecordRepository) Create(_ context.Context, rec *entity.Record) (*entity.RecordView, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(rec)
	}
	return &entity.RecordView{Record: *rec}, nil
}

func (m *mockRecordRepository) FindView(_ context.Context, id uint) (*entity.RecordView, error) {
	if m.FindViewFunc != nil {
		return m.FindViewFunc(id)
	}
	return nil, ErrRecordNotFound
}

func (m *mockRecordRepository) ListByStudentAndType(_ context.Context, studentID uint, t entity.RecordType) ([]entity.RecordView, error) {
	if m.ListByStudentAndTypeFunc != nil {
		return m.ListByStudentAndTypeFunc(studentID, t)
	}
	return nil, nil
}

func (m *mockRecordRepository) ListByContractor(_ context.Context, contractorID uint) ([]entity.RecordView, error) {
	if m.ListByContractorFunc != nil {
		return m.ListByContractorFunc(contractorID)
	}
	return nil, nil
}

func (m *mockRecordRepository) ListForMonth(_ context.Context, studentID uint, t entity.RecordType, year int, month time.Month) ([]entity.RecordView, error) {
	if m.ListForMonthFunc != nil {
		return m.ListForMonthFunc(studentID, t, year, month)
	}
	return nil, nil
}

func (m *mockRecordRepository) Delete(_ context.Context, id, contractorID uint) (bool, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(id, contractorID)
	}
	return false, nil
}

// mockUserFinder is a function-field mock of UserFinder.
type mockUserFinder struct {
	FindByIDFunc func(id uint) (*authentity.User, error)
}

func (m *mockUserFinder) FindByID(_ context.Context, id uint) (*authentity.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(id)
	}
	return &authentity.User{ID: id, Role: authentity.RoleStudent}, nil
}

func TestRecordUsecase_List(t *testing.T) {
	var gotStudent uint
	var gotType entity.RecordType
	var gotContractor uint
	repo := &mockRecordRepository{
		ListByStudentAndTypeFunc: func(studentID uint, rt entity.RecordType) ([]entity.RecordView, error) {
			gotStudent, gotType = studentID, rt
			return []entity.RecordView{{}}, nil
		},
		ListByContractorFunc: func(contractorID uint) ([]entity.RecordView, error) {
			gotContractor = contractorID
			return []entity.RecordView{{}, {}}, nil
		},
	}
	uc := NewRecordUsecase(repo, &mockUserFinder{})
	ctx := context.Background()

	got, err := uc.List(ctx, 3, authentity.RoleStudent, "canteen")
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, uint(3), gotStudent)
	assert.Equal(t, entity.RecordTypeCanteen, gotType)

	got, err = uc.List(ctx, 8, authentity.RoleMessContractor, "")
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, uint(8), gotContractor)

	_, err = uc.List(ctx, 3, authentity.RoleStudent, "")
	assert.ErrorIs(t, err, ErrTypeRequired)

	_, err = uc.List(ctx, 3, authentity.RoleStudent, "buffet")
	assert.ErrorIs(t, err, ErrInvalidType)
}

func TestRecordUsecase_Upload(t *testing.T) {
	valid := UploadInput{
		StudentID:  1,
		MealType:   "Lunch",
		Items:      "Rice, Dal",
		Cost:       decimal.RequireFromString("12.50"),
		RecordDate: "2024-03-01",
	}

	tests := []struct {
		name    string
		role    authentity.Role
		mutate  func(in *UploadInput)
		finder  func(id uint) (*authentity.User, error)
		wantErr error
		want    entity.RecordType
	}{
		{name: "mess contractor", role: authentity.RoleMessContractor, want: entity.RecordTypeMess},
		{name: "canteen contractor", role: authentity.RoleCanteenContractor, want: entity.RecordTypeCanteen},
		{name: "student forbidden", role: authentity.RoleStudent, wantErr: ErrNotContractor},
		{name: "missing student", role: authentity.RoleMessContractor, mutate: func(in *UploadInput) { in.StudentID = 0 }, wantErr: ErrMissingFields},
		{name: "blank meal type", role: authentity.RoleMessContractor, mutate: func(in *UploadInput) { in.MealType = " " }, wantErr: ErrMissingFields},
		{name: "blank items", role: authentity.RoleMessContractor, mutate: func(in *UploadInput) { in.Items = "" }, wantErr: ErrMissingFields},
		{name: "missing date", role: authentity.RoleMessContractor, mutate: func(in *UploadInput) { in.RecordDate = "" }, wantErr: ErrMissingFields},
		{name: "zero cost", role: authentity.RoleMessContractor, mutate: func(in *UploadInput) { in.Cost = decimal.Zero }, wantErr: ErrInvalidCost},
		{name: "negative cost", role: authentity.RoleMessContractor, mutate: func(in *UploadInput) { in.Cost = decimal.NewFromInt(-1) }, wantErr: ErrInvalidCost},
		{name: "sub-cent positive cost", role: authentity.RoleMessContractor, mutate: func(in *UploadInput) { in.Cost = decimal.RequireFromString("0.004") }, wantErr: ErrCostPrecision},
		{name: "three fraction digits", role: authentity.RoleMessContractor, mutate: func(in *UploadInput) { in.Cost = decimal.RequireFromString("12.505") }, wantErr: ErrCostPrecision},
		{name: "bad date", role: authentity.RoleMessContractor, mutate: func(in *UploadInput) { in.RecordDate = "01/03/2024" }, wantErr: ErrInvalidDate},
		{
			name: "unknown student", role: authentity.RoleMessContractor,
			finder:  func(uint) (*authentity.User, error) { return nil, authusecase.ErrUserNotFound },
			wantErr: ErrStudentNotFound,
		},
		{
			name: "target is a contractor", role: authentity.RoleMessContractor,
			finder: func(id uint) (*authentity.User, error) {
				return &authentity.User{ID: id, Role: authentity.RoleCanteenContractor}, nil
			},
			wantErr: ErrStudentNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			if tt.mutate != nil {
				tt.mutate(&in)
			}
			var created *entity.Record
			repo := &mockRecordRepository{
				CreateFunc: func(rec *entity.Record) (*entity.RecordView, error) {
					created = rec
					return &entity.RecordView{Record: *rec, StudentName: "John Doe"}, nil
				},
			}
			uc := NewRecordUsecase(repo, &mockUserFinder{FindByIDFunc: tt.finder})

			got, err := uc.Upload(context.Background(), 10, tt.role, in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, created)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, created.Type)
			assert.Equal(t, uint(10), created.ContractorID)
			assert.Equal(t, "12.50", created.Cost.StringFixed(2))
			assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), created.RecordDate)
			assert.Equal(t, "John Doe", got.StudentName)
		})
	}
}

func TestRecordUsecase_Delete(t *testing.T) {
	owned := map[uint]uint{5: 10}
	repo := &mockRecordRepository{
		DeleteFunc: func(id, contractorID uint) (bool, error) {
			if owner, ok := owned[id]; ok && owner == contractorID {
				delete(owned, id)
				return true, nil
			}
			return false, nil
		},
	}
	uc := NewRecordUsecase(repo, &mockUserFinder{})
	ctx := context.Background()

	assert.ErrorIs(t, uc.Delete(ctx, 11, authentity.RoleMessContractor, 5), ErrRecordNotFound)
	assert.Contains(t, owned, uint(5), "a non-owner must not remove the record")

	assert.ErrorIs(t, uc.Delete(ctx, 10, authentity.RoleStudent, 5), ErrNotContractor)
	assert.ErrorIs(t, uc.Delete(ctx, 10, authentity.RoleMessContractor, 0), ErrInvalidRecordID)

	require.NoError(t, uc.Delete(ctx, 10, authentity.RoleMessContractor, 5))
	assert.ErrorIs(t, uc.Delete(ctx, 10, authentity.RoleMessContractor, 5), ErrRecordNotFound)
}

func TestRecordUsecase_DeleteStorageError(t *testing.T) {
	dbErr := errors.New("disk full")
	repo := &mockRecordRepository{DeleteFunc: func(uint, uint) (bool, error) { return false, dbErr }}
	uc := NewRecordUsecase(repo, &mockUserFinder{})

	err := uc.Delete(context.Background(), 10, authentity.RoleMessContractor, 5)
	assert.ErrorIs(t, err, dbErr)
}

func TestRecordUsecase_MonthlyBill(t *testing.T) {
	march := func(day int, cost string) entity.RecordView {
		return entity.RecordView{Record: entity.Record{
			StudentID: 1, Type: entity.RecordTypeMess,
			Cost: decimal.RequireFromString(cost), RecordDate: time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC),
		}}
	}
	var gotYear int
	var gotMonth time.Month
	repo := &mockRecordRepository{
		ListForMonthFunc: func(studentID uint, rt entity.RecordType, year int, month time.Month) ([]entity.RecordView, error) {
			gotYear, gotMonth = year, month
			return []entity.RecordView{march(1, "12.50"), march(20, "7.25")}, nil
		},
	}
	uc := NewRecordUsecase(repo, &mockUserFinder{})
	ctx := context.Background()

	bill, err := uc.MonthlyBill(ctx, 1, "MESS", 2024, 3)
	require.NoError(t, err)
	assert.Equal(t, "19.75", bill.Total.StringFixed(2))
	assert.Equal(t, entity.RecordTypeMess, bill.Type)
	assert.Len(t, bill.Records, 2)
	assert.Equal(t, 2024, gotYear)
	assert.Equal(t, time.March, gotMonth)

	_, err = uc.MonthlyBill(ctx, 1, "", 2024, 3)
	assert.ErrorIs(t, err, ErrInvalidPeriod)
	_, err = uc.MonthlyBill(ctx, 1, "MESS", 0, 3)
	assert.ErrorIs(t, err, ErrInvalidPeriod)
	_, err = uc.MonthlyBill(ctx, 1, "MESS", 2024, 13)
	assert.ErrorIs(t, err, ErrInvalidMonth)
	_, err = uc.MonthlyBill(ctx, 1, "MESS", 2024, -1)
	assert.ErrorIs(t, err, ErrInvalidMonth)
	_, err = uc.MonthlyBill(ctx, 1, "SNACK", 2024, 3)
	assert.ErrorIs(t, err, ErrInvalidType)
}

func TestIsValidationError(t *testing.T) {
	t.Parallel()

	assert.True(t, IsValidationError(ErrInvalidCost))
	assert.True(t, IsValidationError(ErrCostPrecision))
	assert.True(t, IsValidationError(ErrInvalidMonth))
	assert.False(t, IsValidationError(ErrRecordNotFound))
	assert.False(t, IsValidationError(errors.New("other")))
}
