package services

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ravi1475/school-erp-backend/internal/app/models"
	"github.com/ravi1475/school-erp-backend/internal/app/models/dto"
	"github.com/ravi1475/school-erp-backend/internal/db"
	"github.com/ravi1475/school-erp-backend/internal/pkg/apperrors"
)

type fakeTxRunner struct{ calls int }

func (f *fakeTxRunner) WithTransaction(ctx context.Context, fn db.TransactionFn) error {
	f.calls++
	return fn(ctx, nil)
}

type fakeCertificateStore struct {
	existing map[int64]*models.TransferCertificate
	issued   int64
	created  *models.TransferCertificate
}

func (f *fakeCertificateStore) CreateTx(_ context.Context, _ pgx.Tx, tc *models.TransferCertificate) error {
	if _, ok := f.existing[tc.StudentID]; ok {
		return apperrors.ErrCertificateAlreadyIssued
	}
	tc.ID = 1
	f.created = tc
	return nil
}

func (f *fakeCertificateStore) GetByStudentID(_ context.Context, studentID int64) (*models.TransferCertificate, error) {
	tc, ok := f.existing[studentID]
	if !ok {
		return nil, apperrors.ErrCertificateNotFound
	}
	return tc, nil
}

func (f *fakeCertificateStore) List(_ context.Context, _ int64) ([]*models.TransferCertificate, error) {
	return nil, nil
}

func (f *fakeCertificateStore) CountForSchool(_ context.Context, _ pgx.Tx, _ int64) (int64, error) {
	return f.issued, nil
}

type fakeStatusStore struct {
	statuses map[int64]models.StudentStatus
}

func (f *fakeStatusStore) SetStatus(_ context.Context, _ pgx.Tx, id int64, status models.StudentStatus) error {
	f.statuses[id] = status
	return nil
}

func newTestCertificateService(student *models.Student) (*CertificateService, *fakeCertificateStore, *fakeStatusStore) {
	students := &fakeStudentStore{existing: map[string]bool{}}
	if student != nil {
		students.created = student
	}
	certs := &fakeCertificateStore{existing: map[int64]*models.TransferCertificate{}}
	statuses := &fakeStatusStore{statuses: map[int64]models.StudentStatus{}}
	return NewCertificateService(certs, students, statuses, &fakeTxRunner{}), certs, statuses
}

func activeStudent() *models.Student {
	return &models.Student{
		ID:        42,
		SchoolID:  1,
		ClassName: "Class 5",
		Status:    models.StudentActive,
	}
}

func TestIssueCertificateMarksStudentTransferred(t *testing.T) {
	svc, certs, statuses := newTestCertificateService(activeStudent())
	certs.issued = 11

	tc, err := svc.Issue(context.Background(), 42, &dto.IssueCertificateRequest{
		Reason:    "Family relocation",
		IssueDate: "2026-03-31",
		Conduct:   "Good",
	})

	require.NoError(t, err)
	assert.Equal(t, "TC/1/00012", tc.SerialNo, "serial continues the school's sequence")
	assert.Equal(t, "Class 5", tc.LastClass)
	assert.Equal(t, 2026, tc.IssueDate.Year())
	assert.Equal(t, models.StudentTransferred, statuses.statuses[42])
	require.NotNil(t, certs.created)
}

func TestIssueCertificateRejectsTransferredStudent(t *testing.T) {
	student := activeStudent()
	student.Status = models.StudentTransferred
	svc, certs, _ := newTestCertificateService(student)

	_, err := svc.Issue(context.Background(), 42, &dto.IssueCertificateRequest{Reason: "x"})

	assert.ErrorIs(t, err, apperrors.ErrStudentAlreadyTransferred)
	assert.Nil(t, certs.created)
}

func TestIssueCertificateUnknownStudent(t *testing.T) {
	svc, _, _ := newTestCertificateService(nil)

	_, err := svc.Issue(context.Background(), 42, &dto.IssueCertificateRequest{Reason: "x"})

	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestIssueCertificateBadIssueDate(t *testing.T) {
	svc, certs, _ := newTestCertificateService(activeStudent())

	_, err := svc.Issue(context.Background(), 42, &dto.IssueCertificateRequest{
		Reason:    "x",
		IssueDate: "someday",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidDate)
	assert.Contains(t, err.Error(), "issueDate")
	assert.Nil(t, certs.created)
}
