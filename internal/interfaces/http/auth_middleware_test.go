package http_test

import (
	"encoding/json"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/stockmaster/stockmaster-api/internal/interfaces/http"
	"github.com/stockmaster/stockmaster-api/pkg/jwt"
)

const testSecret = "secreto-de-pruebas"

// buildAuthApp arma una app mínima con una ruta protegida que devuelve los
// claims extraídos y dos rutas con restricción de rol.
func buildAuthApp() *fiber.App {
	app := fiber.New()

	protected := app.Group("/", apphttp.AuthMiddleware(testSecret))
	protected.Get("/perfil", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id": apphttp.GetUserID(c),
			"role":    apphttp.GetRole(c),
		})
	})
	protected.Get("/solo-admin", apphttp.RequireRole("admin"), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	protected.Get("/gestion", apphttp.RequireRole("admin", "manager"), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	token, err := jwt.Generate(testSecret, "user-1", role, "stockmaster-api", 60)
	require.NoError(t, err)
	return token
}

func doRequest(t *testing.T, app *fiber.App, path, authHeader string) *nethttp.Response {
	t.Helper()
	req := httptest.NewRequest(nethttp.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *nethttp.Response) map[string]string {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := make(map[string]string)
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

// ─────────────────────────────────────────────────────────────────────────────
// AuthMiddleware
// ─────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_SinTokenDevuelve401(t *testing.T) {
	app := buildAuthApp()

	resp := doRequest(t, app, "/perfil", "")
	assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_TOKEN", decodeBody(t, resp)["code"])
}

func TestAuthMiddleware_FormatoInvalidoDevuelve401(t *testing.T) {
	app := buildAuthApp()

	resp := doRequest(t, app, "/perfil", "Token abc123")
	assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", decodeBody(t, resp)["code"])
}

func TestAuthMiddleware_TokenBasuraDevuelve401(t *testing.T) {
	app := buildAuthApp()

	resp := doRequest(t, app, "/perfil", "Bearer no-es-un-jwt")
	assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_FirmaIncorrectaDevuelve401(t *testing.T) {
	app := buildAuthApp()

	token, err := jwt.Generate("otro-secreto", "user-1", "admin", "stockmaster-api", 60)
	require.NoError(t, err)

	resp := doRequest(t, app, "/perfil", "Bearer "+token)
	assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenExpiradoDevuelve401(t *testing.T) {
	app := buildAuthApp()

	token, err := jwt.Generate(testSecret, "user-1", "admin", "stockmaster-api", -5)
	require.NoError(t, err)

	resp := doRequest(t, app, "/perfil", "Bearer "+token)
	assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_ExtraeClaimsAlContexto(t *testing.T) {
	app := buildAuthApp()

	resp := doRequest(t, app, "/perfil", "Bearer "+tokenForRole(t, "operator"))
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "user-1", body["user_id"])
	assert.Equal(t, "operator", body["role"])
}

// ─────────────────────────────────────────────────────────────────────────────
// RequireRole
// ─────────────────────────────────────────────────────────────────────────────

func TestRequireRole_AdminAccedeRutaAdmin(t *testing.T) {
	app := buildAuthApp()

	resp := doRequest(t, app, "/solo-admin", "Bearer "+tokenForRole(t, "admin"))
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
}

func TestRequireRole_OperadorRechazadoEnRutaAdmin(t *testing.T) {
	app := buildAuthApp()

	resp := doRequest(t, app, "/solo-admin", "Bearer "+tokenForRole(t, "operator"))
	assert.Equal(t, nethttp.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", decodeBody(t, resp)["code"])
}

func TestRequireRole_ManagerAccedeRutaCompartida(t *testing.T) {
	app := buildAuthApp()

	resp := doRequest(t, app, "/gestion", "Bearer "+tokenForRole(t, "manager"))
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)

	resp = doRequest(t, app, "/gestion", "Bearer "+tokenForRole(t, "operator"))
	assert.Equal(t, nethttp.StatusForbidden, resp.StatusCode)
}
