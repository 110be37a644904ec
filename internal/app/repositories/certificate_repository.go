package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ravi1475/school-erp-backend/internal/app/models"
	"github.com/ravi1475/school-erp-backend/internal/db"
	"github.com/ravi1475/school-erp-backend/internal/pkg/apperrors"
	"github.com/ravi1475/school-erp-backend/internal/pkg/dberrors"
)

// CertificateRepository handles database operations for transfer certificates.
type CertificateRepository struct {
	db db.Querier
}

// NewCertificateRepository creates a new certificate repository
func NewCertificateRepository(pool db.Querier) *CertificateRepository {
	return &CertificateRepository{db: pool}
}

// CreateTx inserts a transfer certificate within an existing transaction.
// The unique constraint on student_id guarantees at most one certificate per
// student even under concurrent issue requests.
func (r *CertificateRepository) CreateTx(ctx context.Context, tx pgx.Tx, tc *models.TransferCertificate) error {
	query := `
		INSERT INTO transfer_certificates (
			student_id, school_id, serial_no, issue_date, reason,
			last_class, conduct, remarks
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`
	err := tx.QueryRow(ctx, query,
		tc.StudentID, tc.SchoolID, tc.SerialNo, tc.IssueDate, tc.Reason,
		tc.LastClass, tc.Conduct, tc.Remarks,
	).Scan(&tc.ID, &tc.CreatedAt)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "transfer_certificates_student_id_key") {
			return apperrors.ErrCertificateAlreadyIssued
		}
		return fmt.Errorf("error creating transfer certificate: %w", err)
	}
	return nil
}

// GetByStudentID retrieves the certificate issued to a student, if any.
func (r *CertificateRepository) GetByStudentID(ctx context.Context, studentID int64) (*models.TransferCertificate, error) {
	var tc models.TransferCertificate
	err := r.db.QueryRow(ctx, `
		SELECT id, student_id, school_id, serial_no, issue_date, reason,
		       last_class, conduct, remarks, created_at
		FROM transfer_certificates WHERE student_id = $1`, studentID).Scan(
		&tc.ID, &tc.StudentID, &tc.SchoolID, &tc.SerialNo, &tc.IssueDate, &tc.Reason,
		&tc.LastClass, &tc.Conduct, &tc.Remarks, &tc.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCertificateNotFound
		}
		return nil, fmt.Errorf("error retrieving transfer certificate: %w", err)
	}
	return &tc, nil
}

// List retrieves all certificates issued by a school, newest first.
func (r *CertificateRepository) List(ctx context.Context, schoolID int64) ([]*models.TransferCertificate, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, student_id, school_id, serial_no, issue_date, reason,
		       last_class, conduct, remarks, created_at
		FROM transfer_certificates WHERE school_id = $1 ORDER BY issue_date DESC, id DESC`, schoolID)
	if err != nil {
		return nil, fmt.Errorf("error listing transfer certificates: %w", err)
	}
	defer rows.Close()

	var certificates []*models.TransferCertificate
	for rows.Next() {
		var tc models.TransferCertificate
		if err := rows.Scan(&tc.ID, &tc.StudentID, &tc.SchoolID, &tc.SerialNo, &tc.IssueDate,
			&tc.Reason, &tc.LastClass, &tc.Conduct, &tc.Remarks, &tc.CreatedAt); err != nil {
			return nil, err
		}
		certificates = append(certificates, &tc)
	}
	return certificates, rows.Err()
}

// CountForSchool returns how many certificates the school has issued. Used to
// derive the next serial number.
func (r *CertificateRepository) CountForSchool(ctx context.Context, tx pgx.Tx, schoolID int64) (int64, error) {
	var count int64
	err := tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM transfer_certificates WHERE school_id = $1`, schoolID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting transfer certificates: %w", err)
	}
	return count, nil
}
