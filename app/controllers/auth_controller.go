package controllers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/quidpay/quidpay/app/models"
	"github.com/quidpay/quidpay/app/repository"
	"github.com/quidpay/quidpay/internal/pkg/token"
	"github.com/quidpay/quidpay/internal/pkg/usercontext"
)

// AuthController serves registration, login and the authenticated profile.
type AuthController struct {
	users  repository.UserRepository
	tokens *token.Manager
}

func NewAuthController(users repository.UserRepository, tokens *token.Manager) *AuthController {
	return &AuthController{users: users, tokens: tokens}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (ctl *AuthController) HandleRegister(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid request body"})
	}

	user, err := models.CreateUser(req.Email, req.Password)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": err.Error()})
	}

	if err := ctl.users.Create(user); err != nil {
		// The unique index on email is the only constraint this insert can
		// trip over with a validated user.
		log.Printf("user insert failed: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "email_taken", "message": "Email already registered"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": user.ID, "email": user.Email})
}

func (ctl *AuthController) HandleLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid request body"})
	}

	// notice: do not inform the caller whether the email or the password
	// was the wrong half
	user, err := ctl.users.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return unauthorizedLogin(c)
		}
		log.Printf("user lookup failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Login failed"})
	}

	if !user.CheckPassword(req.Password) {
		return unauthorizedLogin(c)
	}

	accessToken, err := ctl.tokens.Issue(user.ID)
	if err != nil {
		log.Printf("token issue failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Login failed"})
	}

	return c.JSON(fiber.Map{"access_token": accessToken, "token_type": "bearer"})
}

func (ctl *AuthController) HandleMe(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Login required"})
	}

	return c.JSON(fiber.Map{"id": userCtx.UserID, "email": userCtx.Email})
}

func unauthorizedLogin(c *fiber.Ctx) error {
	c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Incorrect email or password"})
}
