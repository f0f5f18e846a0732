package middleware

import (
	"ecommerce/apperror"
	"ecommerce/models"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const currentUserKey = "currentUser"

// AuthGate resolves the caller from a bearer token and checks its role before any handler runs.
type AuthGate struct {
	db     *gorm.DB
	secret string
}

func NewAuthGate(db *gorm.DB, secret string) *AuthGate {
	return &AuthGate{db: db, secret: secret}
}

// Authorize is the (credential, required role) -> allow/deny decision.
func Authorize(user *models.User, required models.Role) error {
	if user == nil {
		return apperror.Unauthorized("Could not validate credentials")
	}
	if user.Role != required {
		return apperror.Forbidden(fmt.Sprintf("Only %ss can perform this action", required))
	}
	return nil
}

// Authenticate accepts any active user with a valid token.
func (g *AuthGate) Authenticate(c *fiber.Ctx) error {
	user, err := g.resolve(c)
	if err != nil {
		return err
	}
	c.Locals(currentUserKey, user)
	return c.Next()
}

// Require returns a middleware that only lets users holding role through.
func (g *AuthGate) Require(role models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := g.resolve(c)
		if err != nil {
			return err
		}
		if err := Authorize(user, role); err != nil {
			return err
		}
		c.Locals(currentUserKey, user)
		return c.Next()
	}
}

func (g *AuthGate) RequireBuyer() fiber.Handler  { return g.Require(models.RoleBuyer) }
func (g *AuthGate) RequireAdmin() fiber.Handler  { return g.Require(models.RoleAdmin) }
func (g *AuthGate) RequireSeller() fiber.Handler { return g.Require(models.RoleSeller) }

func (g *AuthGate) resolve(c *fiber.Ctx) (*models.User, error) {
	tokenString, ok := bearerToken(c)
	if !ok {
		return nil, apperror.Unauthorized("Missing or invalid Authorization header")
	}

	claims, err := ParseJWT(tokenString, g.secret)
	if err != nil {
		return nil, apperror.Unauthorized("Could not validate credentials")
	}

	var user models.User
	err = g.db.WithContext(c.UserContext()).Scopes(models.Active).First(&user, claims.UserID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Unauthorized("Could not validate credentials")
		}
		return nil, apperror.Internal(fmt.Errorf("load current user: %w", err))
	}
	return &user, nil
}

// CurrentUser returns the user stored by the gate, or nil on unauthenticated routes.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(currentUserKey).(*models.User)
	return user
}
