package userService

import (
	"context"
	"ecommerce/apperror"
	"ecommerce/database"
	"ecommerce/middleware"
	"ecommerce/models"
	"ecommerce/testutil"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const secret = "test-secret"

func newService(t *testing.T) *Service {
	t.Helper()
	return NewService(database.NewTestDB(t), zap.NewNop(), bcrypt.MinCost, secret, time.Hour)
}

func register(t *testing.T, s *Service, email string, role models.Role) *models.User {
	t.Helper()
	user, err := s.Register(context.Background(), RegisterInput{
		Email:    email,
		Password: "password123",
		Name:     "Jane Doe",
		Role:     role,
	})
	require.NoError(t, err)
	return user
}

func TestRegister_HashesPassword(t *testing.T) {
	s := newService(t)

	user := register(t, s, "  Jane@Example.com ", models.RoleBuyer)

	assert.NotZero(t, user.ID)
	assert.Equal(t, "jane@example.com", user.Email)
	assert.Equal(t, models.RoleBuyer, user.Role)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "password123", user.HashedPassword)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte("password123")))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	s := newService(t)
	register(t, s, "jane@example.com", models.RoleSeller)

	_, err := s.Register(context.Background(), RegisterInput{
		Email: "JANE@example.com", Password: "password123", Name: "Other", Role: models.RoleBuyer,
	})

	assert.ErrorIs(t, err, apperror.ErrConflict)
}

func TestRegister_AdminRejected(t *testing.T) {
	s := newService(t)

	_, err := s.Register(context.Background(), RegisterInput{
		Email: "root@example.com", Password: "password123", Name: "Root", Role: models.RoleAdmin,
	})

	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestIssueToken(t *testing.T) {
	s := newService(t)
	user := register(t, s, "jane@example.com", models.RoleBuyer)

	token, err := s.IssueToken(context.Background(), "jane@example.com", "password123")

	require.NoError(t, err)
	assert.Equal(t, "bearer", token.TokenType)
	claims, err := middleware.ParseJWT(token.AccessToken, secret)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, models.RoleBuyer, claims.Role)
}

func TestAuthenticate_Failures(t *testing.T) {
	s := newService(t)
	register(t, s, "jane@example.com", models.RoleBuyer)
	inactive := register(t, s, "gone@example.com", models.RoleBuyer)
	testutil.Deactivate(t, s.db, inactive)

	tests := []struct {
		name, email, password string
	}{
		{"wrong password", "jane@example.com", "nope-nope"},
		{"unknown email", "nobody@example.com", "password123"},
		{"inactive user", "gone@example.com", "password123"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Authenticate(context.Background(), tt.email, tt.password)
			assert.ErrorIs(t, err, apperror.ErrUnauthorized)
		})
	}
}
