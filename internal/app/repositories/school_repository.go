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

// SchoolRepository handles database operations for school tenants.
type SchoolRepository struct {
	db db.Querier
}

// NewSchoolRepository creates a new school repository
func NewSchoolRepository(pool db.Querier) *SchoolRepository {
	return &SchoolRepository{db: pool}
}

// Create inserts a new school.
func (r *SchoolRepository) Create(ctx context.Context, school *models.School) error {
	query := `
		INSERT INTO schools (name, code, address, city, state, phone, email)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query,
		school.Name, school.Code, school.Address, school.City,
		school.State, school.Phone, school.Email,
	).Scan(&school.ID)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "schools_code_key") {
			return apperrors.ErrSchoolAlreadyExists
		}
		return fmt.Errorf("error creating school: %w", err)
	}
	return nil
}

// GetByID retrieves a school by its id.
func (r *SchoolRepository) GetByID(ctx context.Context, id int64) (*models.School, error) {
	var s models.School
	err := r.db.QueryRow(ctx, `
		SELECT id, name, code, address, city, state, phone, email
		FROM schools WHERE id = $1`, id).Scan(
		&s.ID, &s.Name, &s.Code, &s.Address, &s.City, &s.State, &s.Phone, &s.Email,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSchoolNotFound
		}
		return nil, fmt.Errorf("error retrieving school: %w", err)
	}
	return &s, nil
}

// List retrieves all schools.
func (r *SchoolRepository) List(ctx context.Context) ([]*models.School, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, code, address, city, state, phone, email
		FROM schools ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("error listing schools: %w", err)
	}
	defer rows.Close()

	var schools []*models.School
	for rows.Next() {
		var s models.School
		if err := rows.Scan(&s.ID, &s.Name, &s.Code, &s.Address, &s.City, &s.State, &s.Phone, &s.Email); err != nil {
			return nil, err
		}
		schools = append(schools, &s)
	}
	return schools, rows.Err()
}

// Exists reports whether a school with the given id exists.
func (r *SchoolRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM schools WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking school existence: %w", err)
	}
	return exists, nil
}
