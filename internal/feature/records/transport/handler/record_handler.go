// Package handler provides the HTTP handlers of the records feature.
package handler

import (
	"context"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	authentity "mealscan_backend/internal/feature/auth/domain/entity"
	"mealscan_backend/internal/feature/records/domain/entity"
	"mealscan_backend/internal/feature/records/transport/http/dto"
	"mealscan_backend/internal/feature/records/usecase"
	"mealscan_backend/internal/platform/http/middleware"
	"mealscan_backend/internal/platform/http/response"
	"mealscan_backend/internal/shared/apperr"
	"mealscan_backend/internal/shared/money"
)

// RecordUsecase is the subset of the records usecase the handlers call.
type RecordUsecase interface {
	List(ctx context.Context, userID uint, role authentity.Role, rawType string) ([]entity.RecordView, error)
	Upload(ctx context.Context, contractorID uint, role authentity.Role, in usecase.UploadInput) (*entity.RecordView, error)
	Delete(ctx context.Context, contractorID uint, role authentity.Role, id uint) error
	MonthlyBill(ctx context.Context, studentID uint, rawType string, year, month int) (*usecase.Bill, error)
}

// RecordHandler serves meal records and bills.
type RecordHandler struct {
	uc  RecordUsecase
	log *zap.Logger
}

// NewRecordHandler creates a RecordHandler.
func NewRecordHandler(uc RecordUsecase, log *zap.Logger) *RecordHandler {
	return &RecordHandler{uc: uc, log: log}
}

// List handles GET /api/records. Students pass ?type=MESS|CANTEEN.
func (h *RecordHandler) List(c *gin.Context) {
	session, ok := middleware.CurrentSession(c)
	if !ok {
		response.Fail(c, apperr.Unauthorized("Unauthorized"))
		return
	}

	records, err := h.uc.List(c.Request.Context(), session.UserID, session.Role, c.Query("type"))
	if err != nil {
		response.Fail(c, toAppErr(err, "failed to fetch records"))
		return
	}
	response.OK(c, gin.H{"records": dto.NewRecordResList(records)})
}

// Upload handles POST /api/records/upload.
func (h *RecordHandler) Upload(c *gin.Context) {
	session, ok := middleware.CurrentSession(c)
	if !ok {
		response.Fail(c, apperr.Unauthorized("Unauthorized"))
		return
	}

	var req dto.UploadReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, apperr.Validation("invalid request body"))
		return
	}
	if len(req.Cost) == 0 {
		response.Fail(c, apperr.Validation(usecase.ErrMissingFields.Error()))
		return
	}
	cost, err := money.Parse(req.Cost)
	if err != nil {
		response.Fail(c, apperr.Validation(usecase.ErrInvalidCost.Error()))
		return
	}

	view, err := h.uc.Upload(c.Request.Context(), session.UserID, session.Role, usecase.UploadInput{
		StudentID:  req.StudentID,
		MealType:   req.MealType,
		Items:      req.Items,
		Cost:       cost,
		RecordDate: req.RecordDate,
	})
	if err != nil {
		response.Fail(c, toAppErr(err, "failed to upload record"))
		return
	}

	h.log.Info("record uploaded",
		zap.Uint("record_id", view.ID),
		zap.Uint("contractor_id", session.UserID),
		zap.Uint("student_id", view.StudentID),
		zap.String("cost", view.Cost.StringFixed(money.Scale)))
	response.Created(c, gin.H{"message": "Record uploaded successfully", "record": dto.NewRecordRes(view)})
}

// Delete handles DELETE /api/records/delete?id=N. Only the owning contractor may delete.
func (h *RecordHandler) Delete(c *gin.Context) {
	session, ok := middleware.CurrentSession(c)
	if !ok {
		response.Fail(c, apperr.Unauthorized("Unauthorized"))
		return
	}

	id, err := parseID(c.Query("id"))
	if err != nil {
		response.Fail(c, apperr.Validation(usecase.ErrInvalidRecordID.Error()))
		return
	}

	if err := h.uc.Delete(c.Request.Context(), session.UserID, session.Role, id); err != nil {
		response.Fail(c, toAppErr(err, "failed to delete record"))
		return
	}
	h.log.Info("record deleted", zap.Uint("record_id", id), zap.Uint("contractor_id", session.UserID))
	response.OK(c, gin.H{"message": "Record deleted successfully"})
}

// Bill handles GET /api/bills?type=&year=&month=.
func (h *RecordHandler) Bill(c *gin.Context) {
	session, ok := middleware.CurrentSession(c)
	if !ok {
		response.Fail(c, apperr.Unauthorized("Unauthorized"))
		return
	}

	yearStr, monthStr := c.Query("year"), c.Query("month")
	if yearStr == "" || monthStr == "" {
		response.Fail(c, apperr.Validation(usecase.ErrInvalidPeriod.Error()))
		return
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		response.Fail(c, apperr.Validation("year must be a number"))
		return
	}
	month, err := strconv.Atoi(monthStr)
	if err != nil {
		response.Fail(c, apperr.Validation("month must be a number"))
		return
	}

	bill, err := h.uc.MonthlyBill(c.Request.Context(), session.UserID, c.Query("type"), year, month)
	if err != nil {
		response.Fail(c, toAppErr(err, "failed to generate bill"))
		return
	}
	response.OK(c, gin.H{
		"records": dto.NewRecordResList(bill.Records),
		"total":   money.JSON(bill.Total),
		"month":   int(bill.Month),
		"year":    bill.Year,
		"type":    string(bill.Type),
	})
}

// parseID reads a positive numeric id.
func parseID(s string) (uint, error) {
	n, err := strconv.ParseUint(s, 10, 0)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, strconv.ErrRange
	}
	return uint(n), nil
}

func toAppErr(err error, op string) error {
	switch {
	case usecase.IsValidationError(err):
		return apperr.Validation(err.Error())
	case errors.Is(err, usecase.ErrRecordNotFound):
		return apperr.NotFound("Record not found or access denied")
	case errors.Is(err, usecase.ErrStudentNotFound):
		return apperr.NotFound("Student not found")
	case errors.Is(err, usecase.ErrNotContractor):
		return apperr.Forbidden("Only contractors can manage records")
	default:
		return apperr.Internal(op, err)
	}
}
