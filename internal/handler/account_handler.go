package handler

import (
	"errors"

	"go-retail-inventory/internal/service"

	"github.com/gofiber/fiber/v2"
)

// AccountHandler covers self-service account management: signup and the
// password reset flow.
type AccountHandler struct {
	authService service.AuthService
}

func NewAccountHandler(authService service.AuthService) *AccountHandler {
	return &AccountHandler{authService: authService}
}

type SignupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

// POST /api/accounts/signup
func (h *AccountHandler) Signup(c *fiber.Ctx) error {
	var req SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if req.Username == "" || req.Password == "" {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"errors":  fiber.Map{"detail": "Username and password are required"},
		})
	}

	if _, err := h.authService.Signup(req.Username, req.Password, req.Email); err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			return c.Status(400).JSON(fiber.Map{
				"success": false,
				"errors":  fiber.Map{"username": []string{"Username already exists."}},
			})
		}
		return renderError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"message": "Account created successfully",
	})
}

type PasswordResetRequest struct {
	Email string `json:"email"`
}

// PasswordReset always answers with the same generic success so callers
// cannot probe which emails have accounts.
// POST /api/accounts/password-reset
func (h *AccountHandler) PasswordReset(c *fiber.Ctx) error {
	var req PasswordResetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if req.Email == "" {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"errors":  fiber.Map{"email": []string{"This field is required."}},
		})
	}

	if err := h.authService.RequestPasswordReset(req.Email); err != nil {
		return renderError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Password reset email sent",
	})
}

type PasswordResetConfirmRequest struct {
	UID         string `json:"uid"`
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// POST /api/accounts/password-reset-confirm
func (h *AccountHandler) PasswordResetConfirm(c *fiber.Ctx) error {
	var req PasswordResetConfirmRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if req.UID == "" || req.Token == "" || req.NewPassword == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Missing required fields"})
	}

	if err := h.authService.ConfirmPasswordReset(req.UID, req.Token, req.NewPassword); err != nil {
		if errors.Is(err, service.ErrInvalidResetToken) {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid link or expired token"})
		}
		return renderError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Password has been reset successfully",
	})
}
