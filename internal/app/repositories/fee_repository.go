package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/ravi1475/school-erp-backend/internal/app/models"
	"github.com/ravi1475/school-erp-backend/internal/db"
	"github.com/ravi1475/school-erp-backend/internal/pkg/apperrors"
	"github.com/ravi1475/school-erp-backend/internal/pkg/dberrors"
)

// FeeRepository handles database operations for fee structures and payments.
type FeeRepository struct {
	db db.Querier
	sb squirrel.StatementBuilderType
}

// NewFeeRepository creates a new fee repository
func NewFeeRepository(pool db.Querier) *FeeRepository {
	return &FeeRepository{
		db: pool,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var feeStructureColumns = `id, school_id, class_name, admission_fee, tuition_fee,
	transport_fee, library_fee, exam_fee, misc_fee, created_at, updated_at`

func scanFeeStructure(row pgx.Row) (*models.FeeStructure, error) {
	var f models.FeeStructure
	err := row.Scan(
		&f.ID, &f.SchoolID, &f.ClassName, &f.AdmissionFee, &f.TuitionFee,
		&f.TransportFee, &f.LibraryFee, &f.ExamFee, &f.MiscFee, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// CreateStructure inserts a fee structure for one class of one school.
func (r *FeeRepository) CreateStructure(ctx context.Context, f *models.FeeStructure) error {
	query := `
		INSERT INTO fee_structures (
			school_id, class_name, admission_fee, tuition_fee, transport_fee,
			library_fee, exam_fee, misc_fee
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		f.SchoolID, f.ClassName, f.AdmissionFee, f.TuitionFee, f.TransportFee,
		f.LibraryFee, f.ExamFee, f.MiscFee,
	).Scan(&f.ID, &f.CreatedAt, &f.UpdatedAt)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "fee_structures_school_id_class_name_key") {
			return apperrors.ErrFeeStructureAlreadyExists
		}
		return fmt.Errorf("error creating fee structure: %w", err)
	}
	return nil
}

// GetStructure retrieves a fee structure by id.
func (r *FeeRepository) GetStructure(ctx context.Context, id int64) (*models.FeeStructure, error) {
	f, err := scanFeeStructure(r.db.QueryRow(ctx,
		`SELECT `+feeStructureColumns+` FROM fee_structures WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFeeStructureNotFound
		}
		return nil, fmt.Errorf("error retrieving fee structure: %w", err)
	}
	return f, nil
}

// GetStructureForClass retrieves the fee structure that applies to a class
// within a school. Class names are stored in canonical form, so the lookup is
// an exact match.
func (r *FeeRepository) GetStructureForClass(ctx context.Context, schoolID int64, className string) (*models.FeeStructure, error) {
	f, err := scanFeeStructure(r.db.QueryRow(ctx,
		`SELECT `+feeStructureColumns+` FROM fee_structures WHERE school_id = $1 AND class_name = $2`,
		schoolID, className))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFeeStructureNotFound
		}
		return nil, fmt.Errorf("error retrieving fee structure: %w", err)
	}
	return f, nil
}

// ListStructures retrieves all fee structures for a school.
func (r *FeeRepository) ListStructures(ctx context.Context, schoolID int64) ([]*models.FeeStructure, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+feeStructureColumns+` FROM fee_structures WHERE school_id = $1 ORDER BY class_name`,
		schoolID)
	if err != nil {
		return nil, fmt.Errorf("error listing fee structures: %w", err)
	}
	defer rows.Close()

	var structures []*models.FeeStructure
	for rows.Next() {
		f, err := scanFeeStructure(rows)
		if err != nil {
			return nil, err
		}
		structures = append(structures, f)
	}
	return structures, rows.Err()
}

// UpdateStructure applies non-nil fee heads to an existing structure.
func (r *FeeRepository) UpdateStructure(ctx context.Context, id int64, fields map[string]interface{}) error {
	fields["updated_at"] = time.Now()

	sql, args, err := r.sb.Update("fee_structures").SetMap(fields).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update fee structure query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating fee structure: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrFeeStructureNotFound
	}
	return nil
}

// DeleteStructure removes a fee structure.
func (r *FeeRepository) DeleteStructure(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM fee_structures WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting fee structure: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrFeeStructureNotFound
	}
	return nil
}

// CreatePayment records one collected payment.
func (r *FeeRepository) CreatePayment(ctx context.Context, p *models.FeePayment) error {
	query := `
		INSERT INTO fee_payments (student_id, school_id, receipt_no, amount, payment_mode, note, paid_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query,
		p.StudentID, p.SchoolID, p.ReceiptNo, p.Amount, p.PaymentMode, p.Note, p.PaidAt,
	).Scan(&p.ID)

	if err != nil {
		return fmt.Errorf("error recording fee payment: %w", err)
	}
	return nil
}

// ListPayments retrieves all payments for one student, newest first.
func (r *FeeRepository) ListPayments(ctx context.Context, studentID int64) ([]*models.FeePayment, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, student_id, school_id, receipt_no, amount, payment_mode, note, paid_at
		FROM fee_payments WHERE student_id = $1 ORDER BY paid_at DESC`, studentID)
	if err != nil {
		return nil, fmt.Errorf("error listing fee payments: %w", err)
	}
	defer rows.Close()

	var payments []*models.FeePayment
	for rows.Next() {
		var p models.FeePayment
		if err := rows.Scan(&p.ID, &p.StudentID, &p.SchoolID, &p.ReceiptNo,
			&p.Amount, &p.PaymentMode, &p.Note, &p.PaidAt); err != nil {
			return nil, err
		}
		payments = append(payments, &p)
	}
	return payments, rows.Err()
}

// SumPayments returns the total amount collected from one student.
func (r *FeeRepository) SumPayments(ctx context.Context, studentID int64) (float64, error) {
	var total float64
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM fee_payments WHERE student_id = $1`,
		studentID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("error summing fee payments: %w", err)
	}
	return total, nil
}
