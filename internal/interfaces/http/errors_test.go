package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/ensamblados-api/internal/domain"
	"github.com/tu-usuario/ensamblados-api/pkg/logger"
)

// appThatFails monta una ruta que devuelve el error dado a través del mapeo
// de errores de los handlers.
func appThatFails(err error) *fiber.App {
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	app := fiber.New()
	app.Get("/fail", func(c *fiber.Ctx) error {
		return respondError(c, log, err)
	})
	return app
}

func statusAndBody(t *testing.T, app *fiber.App) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/fail", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestRespondError_MapeoBasico(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"entrada inválida", domain.ErrInvalidInput, http.StatusBadRequest, "VALIDATION"},
		{"sin materiales", domain.ErrSinMateriales, http.StatusBadRequest, "SIN_MATERIALES"},
		{"no encontrado", domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"duplicado", domain.ErrDuplicate, http.StatusConflict, "DUPLICATE"},
		{"stock insuficiente simple", domain.ErrInsufficientStock, http.StatusConflict, "INSUFFICIENT_STOCK"},
		{"no clasificado", errors.New("falla rara"), http.StatusInternalServerError, "INTERNAL"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := statusAndBody(t, appThatFails(tc.err))
			assert.Equal(t, tc.wantStatus, status)
			assert.Equal(t, tc.wantCode, body["code"])
		})
	}
}

func TestRespondError_FaltantesConDetalle(t *testing.T) {
	err := &domain.InsufficientStockError{Shortfalls: []domain.Shortfall{
		{ItemID: 1, SKU: "TORNILLO-M4", Name: "Tornillo M4", Required: decimal.NewFromInt(8), Available: decimal.NewFromInt(5)},
		{ItemID: 2, SKU: "TABLA-60", Name: "Tabla 60cm", Required: decimal.NewFromInt(4), Available: decimal.Zero},
	}}

	status, body := statusAndBody(t, appThatFails(err))
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", body["code"])

	components, ok := body["insufficientComponents"].([]any)
	require.True(t, ok, "la respuesta 409 debe traer la lista de faltantes")
	require.Len(t, components, 2, "deben venir TODOS los faltantes, no solo el primero")

	first, _ := components[0].(map[string]any)
	assert.Equal(t, "TORNILLO-M4", first["sku"])
}

func TestRespondError_TransicionInvalida(t *testing.T) {
	err := &domain.InvalidTransitionError{Current: "BACKLOG", Requested: "DONE"}

	status, body := statusAndBody(t, appThatFails(err))
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INVALID_TRANSITION", body["code"])
	assert.Contains(t, body["message"], "BACKLOG")
	assert.Contains(t, body["message"], "DONE")
}

func TestRespondError_InconsistenciaNoFiltraDetalle(t *testing.T) {
	err := &domain.InconsistentStockError{
		ItemID: 1, SiteID: 1,
		OnHand: decimal.NewFromInt(3), Reserved: decimal.NewFromInt(9), Op: "consume",
	}

	status, body := statusAndBody(t, appThatFails(err))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "INTERNAL", body["code"])
	assert.Equal(t, "error interno", body["message"],
		"un error de consistencia interna nunca expone cantidades al cliente")
}
