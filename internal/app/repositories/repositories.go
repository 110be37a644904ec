// Package repositories contains the data access layer. Each repository wraps
// a pgx connection pool and speaks raw SQL, using squirrel only where queries
// are built dynamically.
package repositories

import "github.com/ravi1475/school-erp-backend/internal/db"

// Repositories bundles every repository for dependency injection.
type Repositories struct {
	Students     *StudentRepository
	Schools      *SchoolRepository
	Users        *UserRepository
	Fees         *FeeRepository
	Certificates *CertificateRepository
}

// NewRepositories creates all repositories over one shared pool.
func NewRepositories(pool db.Querier) *Repositories {
	return &Repositories{
		Students:     NewStudentRepository(pool),
		Schools:      NewSchoolRepository(pool),
		Users:        NewUserRepository(pool),
		Fees:         NewFeeRepository(pool),
		Certificates: NewCertificateRepository(pool),
	}
}
