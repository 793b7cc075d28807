package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/quidpay/quidpay/app/models"
	"github.com/quidpay/quidpay/internal/pkg/config"
	"github.com/quidpay/quidpay/internal/pkg/token"
)

type stubUserRepo struct {
	byEmail   map[string]*models.User
	nextID    uint
	createErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byEmail: make(map[string]*models.User)}
}

func (r *stubUserRepo) Create(user *models.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	if _, exists := r.byEmail[user.Email]; exists {
		return errors.New("Error 1062 (23000): Duplicate entry")
	}
	r.nextID++
	user.ID = r.nextID
	r.byEmail[user.Email] = user
	return nil
}

func (r *stubUserRepo) GetByID(id uint) (*models.User, error) {
	for _, user := range r.byEmail {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) GetByEmail(email string) (*models.User, error) {
	user, ok := r.byEmail[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (r *stubUserRepo) Count() (int64, error) { return int64(len(r.byEmail)), nil }

func newAuthTestApp(users *stubUserRepo) *fiber.App {
	tokens := token.NewManager(config.AuthConfig{JWTSecret: "unit-test-secret", TokenTTL: time.Minute})
	ctl := NewAuthController(users, tokens)

	app := fiber.New()
	app.Post("/register", ctl.HandleRegister)
	app.Post("/login", ctl.HandleLogin)
	return app
}

func postJSON(app *fiber.App, path, body string) (int, map[string]interface{}, error) {
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		return 0, nil, err
	}
	raw, _ := io.ReadAll(resp.Body)
	var out map[string]interface{}
	_ = json.Unmarshal(raw, &out)
	return resp.StatusCode, out, nil
}

func TestHandleRegister(t *testing.T) {
	app := newAuthTestApp(newStubUserRepo())

	status, out, err := postJSON(app, "/register", `{"email":"alice@example.com","password":"hunter22"}`)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, "alice@example.com", out["email"])
}

func TestHandleRegister_DuplicateEmail(t *testing.T) {
	app := newAuthTestApp(newStubUserRepo())

	status, _, err := postJSON(app, "/register", `{"email":"alice@example.com","password":"hunter22"}`)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, status)

	status, out, err := postJSON(app, "/register", `{"email":"alice@example.com","password":"other-pass"}`)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "email_taken", out["error"])
}

func TestHandleRegister_Invalid(t *testing.T) {
	app := newAuthTestApp(newStubUserRepo())

	status, _, err := postJSON(app, "/register", `{"email":"alice@example.com","password":"short"}`)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _, err = postJSON(app, "/register", `{"email":"not-an-email","password":"hunter22"}`)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestHandleLogin(t *testing.T) {
	users := newStubUserRepo()
	app := newAuthTestApp(users)

	status, _, err := postJSON(app, "/register", `{"email":"alice@example.com","password":"hunter22"}`)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, status)

	status, out, err := postJSON(app, "/login", `{"email":"alice@example.com","password":"hunter22"}`)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "bearer", out["token_type"])
	assert.NotEmpty(t, out["access_token"])
}

func TestHandleLogin_BadCredentials(t *testing.T) {
	users := newStubUserRepo()
	app := newAuthTestApp(users)

	_, _, err := postJSON(app, "/register", `{"email":"alice@example.com","password":"hunter22"}`)
	assert.NoError(t, err)

	// Unknown email and wrong password must be indistinguishable.
	status, out, err := postJSON(app, "/login", `{"email":"bob@example.com","password":"hunter22"}`)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, status)
	unknownEmailMsg := out["message"]

	status, out, err = postJSON(app, "/login", `{"email":"alice@example.com","password":"wrong"}`)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, unknownEmailMsg, out["message"])
}
