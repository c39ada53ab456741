package auth

import (
	"fmt"
	"strconv"
	"strings"

	"truckfin-backend/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	CtxUserIDKey   = "user_id"
	CtxUsernameKey = "username"
)

func JWTMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Missing Authorization header")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return fiber.NewError(fiber.StatusUnauthorized, "Authorization header must be 'Bearer <token>'")
		}

		token, err := jwt.ParseWithClaims(parts[1], &JWTCustomClaims{}, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token")
		}

		claims, ok := token.Claims.(*JWTCustomClaims)
		if !ok || claims.UserID == 0 {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token claims")
		}

		c.Locals(CtxUserIDKey, claims.UserID)
		c.Locals(CtxUsernameKey, claims.Username)

		return c.Next()
	}
}

// UserID returns the authenticated user's id, or 0 outside JWTMiddleware.
func UserID(c *fiber.Ctx) uint {
	id, _ := c.Locals(CtxUserIDKey).(uint)
	return id
}

// RequireSelf rejects requests whose :param user id is not the caller's.
func RequireSelf(param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseUint(c.Params(param), 10, 64)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid user id")
		}
		if uint(id) != UserID(c) {
			return fiber.NewError(fiber.StatusForbidden, "You can only access your own data")
		}
		return c.Next()
	}
}

// CheckOwner rejects a body that names a user other than the caller. A nil
// id defaults to the caller.
func CheckOwner(c *fiber.Ctx, userID *uint) error {
	if userID != nil && *userID != UserID(c) {
		return fiber.NewError(fiber.StatusForbidden, "You can only change your own data")
	}
	return nil
}
