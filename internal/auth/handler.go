package auth

import (
	"errors"
	"log/slog"
	"strings"

	"truckfin-backend/internal/config"
	"truckfin-backend/internal/finance"
	"truckfin-backend/internal/models"
	"truckfin-backend/internal/state"
	"truckfin-backend/internal/store"
	"truckfin-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type RegisterRequest struct {
	Username string       `json:"username" validate:"required,min=3,max=50"`
	Password string       `json:"password" validate:"required,min=8,max=72"`
	Role     finance.Role `json:"role" validate:"omitempty,role"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func RegisterHandler(cfg *config.Config, svc *state.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RegisterRequest
		if err := validation.ParseBody(c, &body); err != nil {
			return err
		}
		body.Username = strings.TrimSpace(strings.ToLower(body.Username))

		hash, err := HashPassword(body.Password)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not hash password")
		}

		user, err := svc.Register(c.UserContext(), body.Username, hash, body.Role)
		if errors.Is(err, store.ErrUsernameTaken) {
			return fiber.NewError(fiber.StatusConflict, "Username already taken")
		}
		if err != nil {
			return err
		}

		token, err := GenerateToken(cfg.JWTSecret, cfg.JWTTTL, user)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create token")
		}

		slog.Info("user registered", "user_id", user.ID, "role", user.Role)
		return c.Status(fiber.StatusCreated).JSON(tokenResponse{Token: token, User: user})
	}
}

func LoginHandler(cfg *config.Config, st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := validation.ParseBody(c, &body); err != nil {
			return err
		}
		body.Username = strings.TrimSpace(strings.ToLower(body.Username))

		user, err := st.GetUserByUsername(c.UserContext(), body.Username)
		if errors.Is(err, store.ErrNotFound) {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid username or password")
		}
		if err != nil {
			return err
		}
		if !CheckPassword(user.PasswordHash, body.Password) {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid username or password")
		}

		token, err := GenerateToken(cfg.JWTSecret, cfg.JWTTTL, user)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create token")
		}

		return c.JSON(tokenResponse{Token: token, User: user})
	}
}
