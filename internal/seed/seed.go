package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ravi1475/school-erp-backend/internal/app/models"
	"github.com/ravi1475/school-erp-backend/internal/app/repositories"
	"github.com/ravi1475/school-erp-backend/internal/config"
	"github.com/ravi1475/school-erp-backend/internal/pkg/apperrors"
	"github.com/ravi1475/school-erp-backend/internal/pkg/auth"
	"github.com/ravi1475/school-erp-backend/internal/pkg/logger"
)

// CreateDefaultData ensures the default school tenant and an admin account
// exist, so admissions that omit schoolId have somewhere to land.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, cfg *config.Config) error {
	schoolRepo := repositories.NewSchoolRepository(dbPool)
	userRepo := repositories.NewUserRepository(dbPool)

	var finalErr error

	exists, err := schoolRepo.Exists(ctx, cfg.School.DefaultID)
	if err != nil {
		return err
	}
	if !exists {
		school := &models.School{
			Name: "Default School",
			Code: "DEFAULT",
		}
		if err := schoolRepo.Create(ctx, school); err != nil && !errors.Is(err, apperrors.ErrSchoolAlreadyExists) {
			logger.Error().Err(err).Msg("Error creating default school")
			finalErr = errors.Join(finalErr, err)
		} else {
			logger.Info().Int64("schoolID", school.ID).Msg("Default school created")
		}
	}

	adminEmail := "admin@school-erp.local"
	if _, err := userRepo.GetByEmail(ctx, adminEmail); errors.Is(err, apperrors.ErrUserNotFound) {
		hashed, hashErr := auth.HashPassword("admin123")
		if hashErr != nil {
			return hashErr
		}
		admin := &models.User{
			Email:    adminEmail,
			Password: hashed,
			FullName: "System Administrator",
			Role:     models.RoleAdmin,
			SchoolID: cfg.School.DefaultID,
			IsActive: true,
		}
		if err := userRepo.Create(ctx, admin); err != nil && !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			logger.Error().Err(err).Msg("Error creating default admin user")
			finalErr = errors.Join(finalErr, err)
		} else {
			logger.Info().Str("email", adminEmail).Msg("Default admin user created")
		}
	} else if err != nil {
		finalErr = errors.Join(finalErr, err)
	}

	return finalErr
}
