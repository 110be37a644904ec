package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ravi1475/school-erp-backend/internal/app/models"
	"github.com/ravi1475/school-erp-backend/internal/app/models/dto"
	"github.com/ravi1475/school-erp-backend/internal/pkg/apperrors"
	"github.com/ravi1475/school-erp-backend/internal/pkg/auth"
)

type fakeUserStore struct {
	users map[string]*models.User
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	u, ok := f.users[email]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserStore) Create(_ context.Context, _ *models.User) error { return nil }

func newTestAuthService(t *testing.T, users ...*models.User) *AuthService {
	t.Helper()
	store := &fakeUserStore{users: map[string]*models.User{}}
	for _, u := range users {
		store.users[u.Email] = u
	}
	jwtSvc := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "test",
	})
	return NewAuthService(store, jwtSvc)
}

func testUser(t *testing.T, password string) *models.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	return &models.User{
		ID:       3,
		Email:    "admin@school-erp.local",
		Password: hash,
		FullName: "Administrator",
		Role:     models.RoleAdmin,
		SchoolID: 1,
		IsActive: true,
	}
}

func TestLoginIssuesToken(t *testing.T) {
	user := testUser(t, "admin123")
	svc := newTestAuthService(t, user)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "admin@school-erp.local",
		Password: "admin123",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, int64(3), resp.UserID)
	assert.Equal(t, string(models.RoleAdmin), resp.Role)
	assert.Equal(t, int(time.Hour.Seconds()), resp.ExpiresIn)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newTestAuthService(t, testUser(t, "admin123"))

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "admin@school-erp.local",
		Password: "guess",
	})

	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginUnknownEmailSameError(t *testing.T) {
	svc := newTestAuthService(t)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@school-erp.local",
		Password: "guess",
	})

	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials,
		"unknown email is indistinguishable from a wrong password")
}

func TestLoginDisabledAccount(t *testing.T) {
	user := testUser(t, "admin123")
	user.IsActive = false
	svc := newTestAuthService(t, user)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "admin@school-erp.local",
		Password: "admin123",
	})

	assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
}
