package services

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/ravi1475/school-erp-backend/internal/app/models"
	"github.com/ravi1475/school-erp-backend/internal/app/models/dto"
	"github.com/ravi1475/school-erp-backend/internal/db"
	"github.com/ravi1475/school-erp-backend/internal/pkg/apperrors"
	"github.com/ravi1475/school-erp-backend/internal/pkg/helpers"
	"github.com/ravi1475/school-erp-backend/internal/pkg/logger"
)

// TxRunner runs a function inside a database transaction.
type TxRunner interface {
	WithTransaction(ctx context.Context, fn db.TransactionFn) error
}

// CertificateStore is the persistence surface the certificate service needs.
type CertificateStore interface {
	CreateTx(ctx context.Context, tx pgx.Tx, tc *models.TransferCertificate) error
	GetByStudentID(ctx context.Context, studentID int64) (*models.TransferCertificate, error)
	List(ctx context.Context, schoolID int64) ([]*models.TransferCertificate, error)
	CountForSchool(ctx context.Context, tx pgx.Tx, schoolID int64) (int64, error)
}

// StudentStatusStore flips a student's enrollment status inside a transaction.
type StudentStatusStore interface {
	SetStatus(ctx context.Context, tx pgx.Tx, id int64, status models.StudentStatus) error
}

// CertificateService issues and serves transfer certificates.
type CertificateService struct {
	store    CertificateStore
	students StudentStore
	statuses StudentStatusStore
	tx       TxRunner
}

// NewCertificateService creates a new certificate service
func NewCertificateService(store CertificateStore, students StudentStore, statuses StudentStatusStore, tx TxRunner) *CertificateService {
	return &CertificateService{
		store:    store,
		students: students,
		statuses: statuses,
		tx:       tx,
	}
}

// Issue creates a transfer certificate and marks the student TRANSFERRED, both
// in one transaction. A student who already holds a certificate cannot be
// issued a second one.
func (s *CertificateService) Issue(ctx context.Context, studentID int64, req *dto.IssueCertificateRequest) (*models.TransferCertificate, error) {
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student.Status == models.StudentTransferred {
		return nil, apperrors.ErrStudentAlreadyTransferred
	}

	issueDate := time.Now()
	if req.IssueDate != "" {
		issueDate, err = helpers.ParseDate(req.IssueDate, "issueDate")
		if err != nil {
			return nil, apperrors.NewCustomError(apperrors.ErrInvalidDate, err.Error())
		}
	}

	tc := &models.TransferCertificate{
		StudentID: student.ID,
		SchoolID:  student.SchoolID,
		IssueDate: issueDate,
		Reason:    req.Reason,
		LastClass: student.ClassName,
		Conduct:   req.Conduct,
		Remarks:   req.Remarks,
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		issued, err := s.store.CountForSchool(ctx, tx, student.SchoolID)
		if err != nil {
			return err
		}
		tc.SerialNo = fmt.Sprintf("TC/%d/%05d", student.SchoolID, issued+1)

		if err := s.store.CreateTx(ctx, tx, tc); err != nil {
			return err
		}
		return s.statuses.SetStatus(ctx, tx, student.ID, models.StudentTransferred)
	})
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("studentID", student.ID).Str("serialNo", tc.SerialNo).Msg("Transfer certificate issued")
	return tc, nil
}

// GetForStudent retrieves the certificate issued to a student.
func (s *CertificateService) GetForStudent(ctx context.Context, studentID int64) (*models.TransferCertificate, error) {
	return s.store.GetByStudentID(ctx, studentID)
}

// List retrieves all certificates issued by a school.
func (s *CertificateService) List(ctx context.Context, schoolID int64) ([]*models.TransferCertificate, error) {
	return s.store.List(ctx, schoolID)
}
