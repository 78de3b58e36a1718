package http_test

import (
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/stockmaster/stockmaster-api/internal/interfaces/http"
)

// Las rutas protegidas responden 401 sin token; una ruta inexistente da 404.
// Distingue "registrada y custodiada" de "no registrada" sin montar la DB.
func TestRouter_RutasRegistradasYCustodiadas(t *testing.T) {
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{JWTSecret: testSecret})

	protegidas := []string{
		"/api/move-history",
		"/api/products/low-stock",
		"/api/operations",
		"/api/dashboard/kpis",
		"/api/warehouses",
	}
	for _, path := range protegidas {
		req := httptest.NewRequest(nethttp.MethodGet, path, nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode, "ruta %s debe existir y exigir token", path)
	}

	req := httptest.NewRequest(nethttp.MethodGet, "/api/no-existe", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, nethttp.StatusNotFound, resp.StatusCode)
}
