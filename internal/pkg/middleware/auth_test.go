package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/quidpay/quidpay/app/models"
	"github.com/quidpay/quidpay/internal/pkg/config"
	"github.com/quidpay/quidpay/internal/pkg/token"
	"github.com/quidpay/quidpay/internal/pkg/usercontext"
)

type stubUsers struct {
	users map[uint]*models.User
}

func (s *stubUsers) Create(user *models.User) error { return nil }

func (s *stubUsers) GetByID(id uint) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (s *stubUsers) GetByEmail(email string) (*models.User, error) {
	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUsers) Count() (int64, error) { return int64(len(s.users)), nil }

func newAuthTestApp(users *stubUsers, tokens *token.Manager) *fiber.App {
	app := fiber.New()
	app.Get("/me", RequireAuth(users, tokens), func(c *fiber.Ctx) error {
		return c.JSON(usercontext.GetUserContext(c))
	})
	return app
}

func TestRequireAuth_ValidToken(t *testing.T) {
	tokens := token.NewManager(config.AuthConfig{JWTSecret: "unit-test-secret", TokenTTL: time.Minute})
	users := &stubUsers{users: map[uint]*models.User{7: {ID: 7, Email: "alice@example.com"}}}
	app := newAuthTestApp(users, tokens)

	signed, err := tokens.Issue(7)
	assert.NoError(t, err)

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+signed)

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireAuth_Rejections(t *testing.T) {
	tokens := token.NewManager(config.AuthConfig{JWTSecret: "unit-test-secret", TokenTTL: time.Minute})
	users := &stubUsers{users: map[uint]*models.User{}}
	app := newAuthTestApp(users, tokens)

	// No header at all.
	resp, err := app.Test(httptest.NewRequest("GET", "/me", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// Garbage token.
	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer nope")
	resp, err = app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// Valid token for a user that no longer exists.
	signed, err := tokens.Issue(404)
	assert.NoError(t, err)
	req = httptest.NewRequest("GET", "/me", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+signed)
	resp, err = app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAuth_NoSecretFailsClosed(t *testing.T) {
	tokens := token.NewManager(config.AuthConfig{JWTSecret: "", TokenTTL: time.Minute})
	app := newAuthTestApp(&stubUsers{users: map[uint]*models.User{}}, tokens)

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer anything")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}
