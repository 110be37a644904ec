package services

import (
	"context"

	"github.com/ravi1475/school-erp-backend/internal/app/models"
	"github.com/ravi1475/school-erp-backend/internal/app/models/dto"
)

// SchoolStore is the persistence surface the school service needs.
type SchoolStore interface {
	Create(ctx context.Context, school *models.School) error
	GetByID(ctx context.Context, id int64) (*models.School, error)
	List(ctx context.Context) ([]*models.School, error)
}

// SchoolService manages school tenants.
type SchoolService struct {
	store SchoolStore
}

// NewSchoolService creates a new school service
func NewSchoolService(store SchoolStore) *SchoolService {
	return &SchoolService{store: store}
}

// Create registers a new school.
func (s *SchoolService) Create(ctx context.Context, req *dto.CreateSchoolRequest) (*models.School, error) {
	school := &models.School{
		Name:    req.Name,
		Code:    req.Code,
		Address: req.Address,
		City:    req.City,
		State:   req.State,
		Phone:   req.Phone,
		Email:   req.Email,
	}
	if err := s.store.Create(ctx, school); err != nil {
		return nil, err
	}
	return school, nil
}

// Get retrieves one school.
func (s *SchoolService) Get(ctx context.Context, id int64) (*models.School, error) {
	return s.store.GetByID(ctx, id)
}

// List retrieves all schools.
func (s *SchoolService) List(ctx context.Context) ([]*models.School, error) {
	return s.store.List(ctx)
}
