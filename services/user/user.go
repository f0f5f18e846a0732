package userService

import (
	"context"
	"ecommerce/apperror"
	"ecommerce/middleware"
	"ecommerce/models"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Role     models.Role
}

// Token is the bearer credential returned on login.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	saltRound int
	secret    string
	ttl       time.Duration
}

func NewService(db *gorm.DB, log *zap.Logger, saltRound int, secret string, ttl time.Duration) *Service {
	return &Service{
		db:        db,
		log:       log.Named("userService"),
		saltRound: saltRound,
		secret:    secret,
		ttl:       ttl,
	}
}

// Register creates a buyer or seller account. Admins are never self-registered.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	if input.Role != models.RoleBuyer && input.Role != models.RoleSeller {
		return nil, apperror.InvalidInput("role must be buyer or seller")
	}
	email := normalizeEmail(input.Email)
	db := s.db.WithContext(ctx)

	// Check if email already exists
	var existing int64
	if err := db.Model(&models.User{}).Where("email = ?", email).Count(&existing).Error; err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing > 0 {
		return nil, apperror.Conflict("Email is already registered")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.saltRound)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Email:          email,
		Name:           strings.TrimSpace(input.Name),
		HashedPassword: string(hashedPassword),
		Role:           input.Role,
		IsActive:       true,
	}
	if err := db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict("Email is already registered")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Info("User registered", zap.Uint("user_id", user.ID), zap.String("role", string(user.Role)))
	return &user, nil
}

// Authenticate returns the active user owning email if password matches.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Scopes(models.Active).
		Where("email = ?", normalizeEmail(email)).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Unauthorized("Incorrect email or password")
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return nil, apperror.Unauthorized("Incorrect email or password")
	}
	return &user, nil
}

// IssueToken authenticates the credentials and signs an access token for them.
func (s *Service) IssueToken(ctx context.Context, email, password string) (*Token, error) {
	user, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}

	accessToken, err := middleware.GenerateJWT(user, s.secret, s.ttl)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &Token{AccessToken: accessToken, TokenType: "bearer"}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
