package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/distribuidora-api/internal/application/dto"
	"github.com/jhoicas/distribuidora-api/internal/domain"
)

// appForError monta una ruta que responde con el mapeo HTTP del error dado.
func appForError(err error) *fiber.App {
	app := fiber.New()
	app.Get("/sale-error", func(c *fiber.Ctx) error {
		return mapSaleError(c, err)
	})
	return app
}

func getSaleError(t *testing.T, err error) (*http.Response, dto.ErrorResponse) {
	t.Helper()
	app := appForError(err)
	resp, reqErr := app.Test(httptest.NewRequest(http.MethodGet, "/sale-error", nil), -1)
	require.NoError(t, reqErr)
	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	resp.Body.Close()
	return resp, body
}

// Stock insuficiente → 409 con nombre del producto, disponible y solicitado en
// el mensaje, sin necesidad de otra consulta.
func TestMapSaleError_StockInsuficiente_409(t *testing.T) {
	resp, body := getSaleError(t, &domain.InsufficientStockError{
		ProductName: "Feijão Preto",
		Available:   2,
		Requested:   5,
	})

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", body.Code)
	assert.Contains(t, body.Message, "Feijão Preto")
	assert.Contains(t, body.Message, "disponible 2")
	assert.Contains(t, body.Message, "solicitado 5")
}

// Producto inexistente → 404 con código propio (distinto de venta inexistente).
func TestMapSaleError_ProductoInexistente_404(t *testing.T) {
	resp, body := getSaleError(t, &domain.ProductNotFoundError{ProductID: "p-404"})

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "PRODUCT_NOT_FOUND", body.Code)
	assert.Contains(t, body.Message, "p-404")
}

func TestMapSaleError_VentaInexistente_404(t *testing.T) {
	resp, body := getSaleError(t, domain.ErrNotFound)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", body.Code)
}

func TestMapSaleError_EntradaInvalida_400(t *testing.T) {
	resp, body := getSaleError(t, domain.ErrInvalidInput)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", body.Code)
}

// Falla de almacenamiento (tras rollback) → 500.
func TestMapSaleError_FallaDeAlmacenamiento_500(t *testing.T) {
	resp, body := getSaleError(t, &domain.StorageError{
		Op:  "registrar venta",
		Err: errors.New("conexión perdida"),
	})

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "INTERNAL", body.Code)
}
