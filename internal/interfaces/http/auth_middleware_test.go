package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/clinica-vet-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/clinica-vet-api/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "clinica-vet-test"
)

// buildTestApp aplicación Fiber mínima: AuthMiddleware + RequireRole + handler que responde 200.
func buildTestApp(allowedRoles ...string) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret, testIssuer),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"ok": true, "role": apphttp.GetRole(c), "user_id": apphttp.GetUserID(c)})
		},
	)
	return app
}

func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, role, testIssuer, time.Hour)
	require.NoError(t, err)
	return "Bearer " + tok
}

func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestRequireRole_AdminAccede(t *testing.T) {
	resp := doRequest(t, buildTestApp(apphttp.RoleAdmin), tokenForRole(t, apphttp.RoleAdmin))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, apphttp.RoleAdmin, body["role"])
	assert.Equal(t, testUserID, body["user_id"])
}

func TestRequireRole_UnoDeVarios(t *testing.T) {
	app := buildTestApp(apphttp.RoleAdmin, apphttp.RoleVeterinarian)
	resp := doRequest(t, app, tokenForRole(t, apphttp.RoleVeterinarian))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRole_RecepcionBloqueada(t *testing.T) {
	resp := doRequest(t, buildTestApp(apphttp.RoleAdmin), tokenForRole(t, apphttp.RoleReception))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

func TestRequireRole_TokenSinRol(t *testing.T) {
	resp := doRequest(t, buildTestApp(apphttp.RoleAdmin), tokenForRole(t, ""))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_ROLE")
}

func TestAuthMiddleware_Rechazos(t *testing.T) {
	otherIssuer, err := pkgjwt.Generate(testJWTSecret, testUserID, apphttp.RoleAdmin, "otro", time.Hour)
	require.NoError(t, err)

	cases := map[string]string{
		"sin header":      "",
		"sin bearer":      "Token abc",
		"token vacío":     "Bearer  ",
		"token inválido":  "Bearer token.invalido.aqui",
		"emisor distinto": "Bearer " + otherIssuer,
	}
	app := buildTestApp(apphttp.RoleAdmin)
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			resp := doRequest(t, app, header)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}
