// Package services holds the business logic layer. Services depend on narrow
// store interfaces rather than concrete repositories so the logic can be
// exercised against fakes.
package services

import (
	"github.com/ravi1475/school-erp-backend/internal/app/repositories"
	"github.com/ravi1475/school-erp-backend/internal/config"
	"github.com/ravi1475/school-erp-backend/internal/db"
	"github.com/ravi1475/school-erp-backend/internal/pkg/auth"
	"github.com/ravi1475/school-erp-backend/internal/pkg/filestorage"
)

// Services bundles every service for dependency injection.
type Services struct {
	Students     *StudentService
	Fees         *FeeService
	Certificates *CertificateService
	Auth         *AuthService
	Schools      *SchoolService
}

// NewServices wires all services over the repositories and shared infrastructure.
func NewServices(repos *repositories.Repositories, database *db.PostgresDB, files filestorage.FileStorage, jwt *auth.JWTService, cfg *config.Config) *Services {
	return &Services{
		Students:     NewStudentService(repos.Students, files, cfg.School.DefaultID),
		Fees:         NewFeeService(repos.Fees, repos.Students),
		Certificates: NewCertificateService(repos.Certificates, repos.Students, repos.Students, database),
		Auth:         NewAuthService(repos.Users, jwt),
		Schools:      NewSchoolService(repos.Schools),
	}
}
