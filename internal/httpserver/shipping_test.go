package httpserver

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techzone-py/techzone/internal/shipping"
)

func TestShippingCalculate(t *testing.T) {
	env := newTestEnv(t)
	h := &ShippingHTTP{Rates: shipping.NewResolver()}

	rec, c := env.doJSON(http.MethodPost, "/shipping", map[string]any{
		"action":     "calculate",
		"city":       "Ciudad del Este",
		"department": "Alto Paraná",
		"weight":     3,
	})
	require.NoError(t, h.Calculate(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		ZoneID string           `json:"zoneId"`
		Rates  []shipping.Quote `json:"rates"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "alto-parana", resp.ZoneID)
	require.NotEmpty(t, resp.Rates)
	assert.Equal(t, int64(49000), resp.Rates[0].Cost)

	for i := 1; i < len(resp.Rates); i++ {
		assert.LessOrEqual(t, resp.Rates[i-1].Cost, resp.Rates[i].Cost)
	}
}

func TestShippingCalculateInvalidWeight(t *testing.T) {
	env := newTestEnv(t)
	h := &ShippingHTTP{Rates: shipping.NewResolver()}

	_, c := env.doJSON(http.MethodPost, "/shipping", map[string]any{
		"city":   "Asunción",
		"weight": 0,
	})
	err := h.Calculate(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestShippingCalculateUnknownAction(t *testing.T) {
	env := newTestEnv(t)
	h := &ShippingHTTP{Rates: shipping.NewResolver()}

	_, c := env.doJSON(http.MethodPost, "/shipping", map[string]any{
		"action": "estimate",
		"city":   "Asunción",
		"weight": 1,
	})
	err := h.Calculate(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestShippingCalculateUnknownDestinationFallsBack(t *testing.T) {
	env := newTestEnv(t)
	h := &ShippingHTTP{Rates: shipping.NewResolver()}

	rec, c := env.doJSON(http.MethodPost, "/shipping", map[string]any{
		"city":       "Pueblo Perdido",
		"department": "Desconocido",
		"weight":     1,
	})
	require.NoError(t, h.Calculate(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		ZoneID string `json:"zoneId"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, shipping.DefaultZoneID, resp.ZoneID)
}
