package jwt

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newApp(secret, issuer string) *fiber.App {
	app := fiber.New()
	app.Get("/admin", NewAdminMiddleware(secret, issuer), func(c *fiber.Ctx) error {
		return c.SendString("hello " + c.Locals("subject").(string))
	})
	return app
}

func mint(t *testing.T, issuer string, isAdmin bool, ttl time.Duration) string {
	t.Helper()
	tok, err := NewGenerator(testSecret, issuer, ttl).Generate("ops", isAdmin)
	require.NoError(t, err)
	return tok
}

func TestAdminMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"valid admin token", "Bearer " + mint(t, "scout", true, time.Hour), 200},
		{"bare token accepted", mint(t, "scout", true, time.Hour), 200},
		{"missing header", "", 401},
		{"garbage token", "Bearer not.a.jwt", 401},
		{"expired token", "Bearer " + mint(t, "scout", true, -time.Minute), 401},
		{"wrong issuer", "Bearer " + mint(t, "someone-else", true, time.Hour), 401},
		{"non-admin token", "Bearer " + mint(t, "scout", false, time.Hour), 403},
	}

	app := newApp(testSecret, "scout")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/admin", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantStatus == 200 {
				body, _ := io.ReadAll(resp.Body)
				assert.Equal(t, "hello ops", string(body))
			}
		})
	}
}

func TestWrongSecretRejected(t *testing.T) {
	app := newApp("other-secret", "scout")
	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+mint(t, "scout", true, time.Hour))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}
