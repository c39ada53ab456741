package auth

import (
	"io"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"truckfin-backend/internal/config"
	"truckfin-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func testApp() *fiber.App {
	cfg := &config.Config{JWTSecret: testSecret, JWTTTL: time.Hour}
	app := fiber.New()
	api := app.Group("/api", JWTMiddleware(cfg))
	api.Get("/me", func(c *fiber.Ctx) error {
		return c.SendString(strconv.FormatUint(uint64(UserID(c)), 10))
	})
	api.Get("/users/:userId", RequireSelf("userId"), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func get(t *testing.T, app *fiber.App, path, token string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("correct horse")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !CheckPassword(hash, "correct horse") {
		t.Error("CheckPassword rejected the right password")
	}
	if CheckPassword(hash, "battery staple") {
		t.Error("CheckPassword accepted the wrong password")
	}
}

func TestJWTMiddleware(t *testing.T) {
	app := testApp()
	token, err := GenerateToken(testSecret, time.Hour, &models.User{ID: 7, Username: "rig"})
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if code, body := get(t, app, "/api/me", token); code != fiber.StatusOK || body != "7" {
		t.Errorf("valid token: %d %q", code, body)
	}
	if code, _ := get(t, app, "/api/me", ""); code != fiber.StatusUnauthorized {
		t.Errorf("missing token: %d, want 401", code)
	}
	if code, _ := get(t, app, "/api/me", "garbage"); code != fiber.StatusUnauthorized {
		t.Errorf("malformed token: %d, want 401", code)
	}

	other, err := GenerateToken("another-secret-that-is-long-enough!", time.Hour, &models.User{ID: 7})
	if err != nil {
		t.Fatal(err)
	}
	if code, _ := get(t, app, "/api/me", other); code != fiber.StatusUnauthorized {
		t.Errorf("foreign signature: %d, want 401", code)
	}

	expired, err := GenerateToken(testSecret, -time.Minute, &models.User{ID: 7})
	if err != nil {
		t.Fatal(err)
	}
	if code, _ := get(t, app, "/api/me", expired); code != fiber.StatusUnauthorized {
		t.Errorf("expired token: %d, want 401", code)
	}
}

func TestRequireSelf(t *testing.T) {
	app := testApp()
	token, err := GenerateToken(testSecret, time.Hour, &models.User{ID: 3})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		path string
		want int
	}{
		{"/api/users/3", fiber.StatusOK},
		{"/api/users/4", fiber.StatusForbidden},
		{"/api/users/abc", fiber.StatusBadRequest},
	}
	for _, tt := range tests {
		if code, _ := get(t, app, tt.path, token); code != tt.want {
			t.Errorf("GET %s = %d, want %d", tt.path, code, tt.want)
		}
	}
}
