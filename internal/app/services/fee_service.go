package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ravi1475/school-erp-backend/internal/app/models"
	"github.com/ravi1475/school-erp-backend/internal/app/models/dto"
	"github.com/ravi1475/school-erp-backend/internal/pkg/logger"
)

// FeeStore is the persistence surface the fee service needs.
type FeeStore interface {
	CreateStructure(ctx context.Context, f *models.FeeStructure) error
	GetStructure(ctx context.Context, id int64) (*models.FeeStructure, error)
	GetStructureForClass(ctx context.Context, schoolID int64, className string) (*models.FeeStructure, error)
	ListStructures(ctx context.Context, schoolID int64) ([]*models.FeeStructure, error)
	UpdateStructure(ctx context.Context, id int64, fields map[string]interface{}) error
	DeleteStructure(ctx context.Context, id int64) error
	CreatePayment(ctx context.Context, p *models.FeePayment) error
	ListPayments(ctx context.Context, studentID int64) ([]*models.FeePayment, error)
	SumPayments(ctx context.Context, studentID int64) (float64, error)
}

// FeeService manages fee structures and payment collection.
type FeeService struct {
	store    FeeStore
	students StudentStore
}

// NewFeeService creates a new fee service
func NewFeeService(store FeeStore, students StudentStore) *FeeService {
	return &FeeService{store: store, students: students}
}

// CreateStructure creates the annual fee breakdown for one class.
func (s *FeeService) CreateStructure(ctx context.Context, req *dto.CreateFeeStructureRequest) (*models.FeeStructure, error) {
	structure := &models.FeeStructure{
		SchoolID:     req.SchoolID,
		ClassName:    models.NormalizeClass(req.ClassName),
		AdmissionFee: req.AdmissionFee,
		TuitionFee:   req.TuitionFee,
		TransportFee: req.TransportFee,
		LibraryFee:   req.LibraryFee,
		ExamFee:      req.ExamFee,
		MiscFee:      req.MiscFee,
	}

	if err := s.store.CreateStructure(ctx, structure); err != nil {
		return nil, err
	}

	logger.Info().Int64("schoolID", structure.SchoolID).Str("className", structure.ClassName).Msg("Fee structure created")
	return structure, nil
}

// GetStructure retrieves a fee structure by id.
func (s *FeeService) GetStructure(ctx context.Context, id int64) (*models.FeeStructure, error) {
	return s.store.GetStructure(ctx, id)
}

// ListStructures retrieves all fee structures for a school.
func (s *FeeService) ListStructures(ctx context.Context, schoolID int64) ([]*models.FeeStructure, error) {
	return s.store.ListStructures(ctx, schoolID)
}

// UpdateStructure replaces the fee heads of an existing structure.
func (s *FeeService) UpdateStructure(ctx context.Context, id int64, req *dto.UpdateFeeStructureRequest) (*models.FeeStructure, error) {
	fields := map[string]interface{}{
		"admission_fee": req.AdmissionFee,
		"tuition_fee":   req.TuitionFee,
		"transport_fee": req.TransportFee,
		"library_fee":   req.LibraryFee,
		"exam_fee":      req.ExamFee,
		"misc_fee":      req.MiscFee,
	}

	if err := s.store.UpdateStructure(ctx, id, fields); err != nil {
		return nil, err
	}
	return s.store.GetStructure(ctx, id)
}

// DeleteStructure removes a fee structure.
func (s *FeeService) DeleteStructure(ctx context.Context, id int64) error {
	return s.store.DeleteStructure(ctx, id)
}

// RecordPayment collects one payment against a student and returns the stored
// record with its generated receipt number.
func (s *FeeService) RecordPayment(ctx context.Context, studentID int64, req *dto.RecordPaymentRequest) (*models.FeePayment, error) {
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	payment := &models.FeePayment{
		StudentID:   student.ID,
		SchoolID:    student.SchoolID,
		ReceiptNo:   newReceiptNo(),
		Amount:      req.Amount,
		PaymentMode: models.PaymentMode(strings.ToUpper(req.PaymentMode)),
		Note:        req.Note,
		PaidAt:      time.Now(),
	}

	if err := s.store.CreatePayment(ctx, payment); err != nil {
		return nil, err
	}

	logger.Info().Int64("studentID", student.ID).Str("receiptNo", payment.ReceiptNo).Float64("amount", payment.Amount).Msg("Fee payment recorded")
	return payment, nil
}

// newReceiptNo derives a short human-quotable receipt number from a uuid.
func newReceiptNo() string {
	return "RCP-" + strings.ToUpper(uuid.New().String()[:8])
}

// ListPayments retrieves all payments collected from one student.
func (s *FeeService) ListPayments(ctx context.Context, studentID int64) ([]*models.FeePayment, error) {
	if _, err := s.students.GetByID(ctx, studentID); err != nil {
		return nil, err
	}
	return s.store.ListPayments(ctx, studentID)
}

// GetBalance computes the student's outstanding balance: the annual total of
// the fee structure for the student's class minus everything collected so far.
func (s *FeeService) GetBalance(ctx context.Context, studentID int64) (*dto.FeeBalanceResponse, error) {
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	structure, err := s.store.GetStructureForClass(ctx, student.SchoolID, student.ClassName)
	if err != nil {
		return nil, err
	}

	paid, err := s.store.SumPayments(ctx, studentID)
	if err != nil {
		return nil, err
	}

	total := structure.TotalAnnual()
	return &dto.FeeBalanceResponse{
		StudentID:   student.ID,
		ClassName:   student.ClassName,
		TotalAnnual: total,
		TotalPaid:   paid,
		Balance:     total - paid,
	}, nil
}
