package services

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ravi1475/school-erp-backend/internal/app/models"
	"github.com/ravi1475/school-erp-backend/internal/app/models/dto"
	"github.com/ravi1475/school-erp-backend/internal/pkg/apperrors"
)

type fakeFeeStore struct {
	structures map[string]*models.FeeStructure
	payments   []*models.FeePayment
	paid       float64
}

func (f *fakeFeeStore) CreateStructure(_ context.Context, s *models.FeeStructure) error {
	key := structureKey(s.SchoolID, s.ClassName)
	if _, ok := f.structures[key]; ok {
		return apperrors.ErrFeeStructureAlreadyExists
	}
	s.ID = int64(len(f.structures) + 1)
	f.structures[key] = s
	return nil
}

func (f *fakeFeeStore) GetStructure(_ context.Context, id int64) (*models.FeeStructure, error) {
	for _, s := range f.structures {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, apperrors.ErrFeeStructureNotFound
}

func (f *fakeFeeStore) GetStructureForClass(_ context.Context, schoolID int64, className string) (*models.FeeStructure, error) {
	s, ok := f.structures[structureKey(schoolID, className)]
	if !ok {
		return nil, apperrors.ErrFeeStructureNotFound
	}
	return s, nil
}

func (f *fakeFeeStore) ListStructures(_ context.Context, _ int64) ([]*models.FeeStructure, error) {
	return nil, nil
}

func (f *fakeFeeStore) UpdateStructure(_ context.Context, id int64, fields map[string]interface{}) error {
	s, err := f.GetStructure(context.Background(), id)
	if err != nil {
		return err
	}
	s.AdmissionFee = fields["admission_fee"].(float64)
	s.TuitionFee = fields["tuition_fee"].(float64)
	s.TransportFee = fields["transport_fee"].(float64)
	s.LibraryFee = fields["library_fee"].(float64)
	s.ExamFee = fields["exam_fee"].(float64)
	s.MiscFee = fields["misc_fee"].(float64)
	return nil
}

func (f *fakeFeeStore) DeleteStructure(_ context.Context, _ int64) error { return nil }

func (f *fakeFeeStore) CreatePayment(_ context.Context, p *models.FeePayment) error {
	p.ID = int64(len(f.payments) + 1)
	f.payments = append(f.payments, p)
	return nil
}

func (f *fakeFeeStore) ListPayments(_ context.Context, _ int64) ([]*models.FeePayment, error) {
	return f.payments, nil
}

func (f *fakeFeeStore) SumPayments(_ context.Context, _ int64) (float64, error) {
	return f.paid, nil
}

func structureKey(schoolID int64, className string) string {
	return fmt.Sprintf("%d/%s", schoolID, models.NormalizeClass(className))
}

func newTestFeeService(student *models.Student) (*FeeService, *fakeFeeStore) {
	students := &fakeStudentStore{existing: map[string]bool{}, created: student}
	store := &fakeFeeStore{structures: map[string]*models.FeeStructure{}}
	return NewFeeService(store, students), store
}

func TestCreateStructureNormalizesClass(t *testing.T) {
	svc, store := newTestFeeService(nil)

	s, err := svc.CreateStructure(context.Background(), &dto.CreateFeeStructureRequest{
		SchoolID:   1,
		ClassName:  "5",
		TuitionFee: 12000,
	})

	require.NoError(t, err)
	assert.Equal(t, "Class 5", s.ClassName)
	assert.Len(t, store.structures, 1)
}

func TestCreateStructureDuplicateClass(t *testing.T) {
	svc, _ := newTestFeeService(nil)

	_, err := svc.CreateStructure(context.Background(), &dto.CreateFeeStructureRequest{SchoolID: 1, ClassName: "Class 5"})
	require.NoError(t, err)

	_, err = svc.CreateStructure(context.Background(), &dto.CreateFeeStructureRequest{SchoolID: 1, ClassName: "5"})
	assert.ErrorIs(t, err, apperrors.ErrFeeStructureAlreadyExists, "normalized class collides with the existing structure")
}

func TestUpdateStructureReplacesAllHeads(t *testing.T) {
	svc, _ := newTestFeeService(nil)

	created, err := svc.CreateStructure(context.Background(), &dto.CreateFeeStructureRequest{
		SchoolID:     1,
		ClassName:    "Class 5",
		AdmissionFee: 500,
		TuitionFee:   12000,
		LibraryFee:   300,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateStructure(context.Background(), created.ID, &dto.UpdateFeeStructureRequest{
		TuitionFee: 15000,
	})

	require.NoError(t, err)
	assert.Equal(t, 15000.0, updated.TuitionFee)
	assert.Zero(t, updated.AdmissionFee, "omitted heads are reset, not preserved")
	assert.Zero(t, updated.LibraryFee)
}

func TestRecordPaymentGeneratesReceipt(t *testing.T) {
	svc, store := newTestFeeService(activeStudent())

	p, err := svc.RecordPayment(context.Background(), 42, &dto.RecordPaymentRequest{
		Amount:      5000,
		PaymentMode: "cash",
	})

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(p.ReceiptNo, "RCP-"), "receipt %q", p.ReceiptNo)
	assert.Len(t, p.ReceiptNo, len("RCP-")+8)
	assert.Equal(t, models.PaymentCash, p.PaymentMode)
	assert.Equal(t, int64(1), p.SchoolID)
	assert.False(t, p.PaidAt.IsZero())
	assert.Len(t, store.payments, 1)
}

func TestRecordPaymentUnknownStudent(t *testing.T) {
	svc, store := newTestFeeService(nil)

	_, err := svc.RecordPayment(context.Background(), 42, &dto.RecordPaymentRequest{Amount: 100, PaymentMode: "CASH"})

	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
	assert.Empty(t, store.payments)
}

func TestGetBalance(t *testing.T) {
	svc, store := newTestFeeService(activeStudent())
	store.paid = 7000

	_, err := svc.CreateStructure(context.Background(), &dto.CreateFeeStructureRequest{
		SchoolID:     1,
		ClassName:    "Class 5",
		AdmissionFee: 1000,
		TuitionFee:   12000,
		TransportFee: 2000,
	})
	require.NoError(t, err)

	balance, err := svc.GetBalance(context.Background(), 42)

	require.NoError(t, err)
	assert.Equal(t, int64(42), balance.StudentID)
	assert.Equal(t, "Class 5", balance.ClassName)
	assert.Equal(t, 15000.0, balance.TotalAnnual)
	assert.Equal(t, 7000.0, balance.TotalPaid)
	assert.Equal(t, 8000.0, balance.Balance)
}

func TestGetBalanceNoStructureForClass(t *testing.T) {
	svc, _ := newTestFeeService(activeStudent())

	_, err := svc.GetBalance(context.Background(), 42)

	assert.ErrorIs(t, err, apperrors.ErrFeeStructureNotFound)
}
