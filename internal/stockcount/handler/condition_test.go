package handler

import (
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mknoufi/stock-verify-backend/pkg/logger"
	"github.com/mknoufi/stock-verify-backend/pkg/testutil"
)

func newConditionRouter() http.Handler {
	h := NewConditionHandler(logger.New("handler-test", "test"))

	r := chi.NewRouter()
	r.Get("/api/v1/stockcount/conditions", h.Options)
	r.Get("/api/v1/stockcount/conditions/{condition}/quick-actions", h.QuickActions)
	return r
}

func TestConditionOptionsEndpoint(t *testing.T) {
	router := newConditionRouter()

	req := testutil.NewHTTPRequest(http.MethodGet, "/api/v1/stockcount/conditions", nil)
	rr := testutil.ExecuteRequest(router, req)

	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp struct {
		Success bool `json:"success"`
		Data    []struct {
			Value    string `json:"value"`
			Label    string `json:"label"`
			Icon     string `json:"icon"`
			Color    string `json:"color"`
			Discount int    `json:"discount"`
		} `json:"data"`
	}
	testutil.ParseJSONBody(t, rr, &resp)

	require.True(t, resp.Success)
	require.Len(t, resp.Data, 10)
	assert.Equal(t, "good", resp.Data[0].Value)
	assert.Equal(t, "Good Condition", resp.Data[0].Label)
}

func TestQuickActionsEndpoint(t *testing.T) {
	router := newConditionRouter()

	req := testutil.NewHTTPRequest(http.MethodGet, "/api/v1/stockcount/conditions/damaged/quick-actions", nil)
	rr := testutil.ExecuteRequest(router, req)

	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Condition    string   `json:"condition"`
			QuickActions []string `json:"quick_actions"`
		} `json:"data"`
	}
	testutil.ParseJSONBody(t, rr, &resp)

	require.True(t, resp.Success)
	assert.Equal(t, "damaged", resp.Data.Condition)
	assert.NotEmpty(t, resp.Data.QuickActions)
}

func TestQuickActionsUnknownCondition(t *testing.T) {
	router := newConditionRouter()

	req := testutil.NewHTTPRequest(http.MethodGet, "/api/v1/stockcount/conditions/vaporized/quick-actions", nil)
	rr := testutil.ExecuteRequest(router, req)

	testutil.AssertStatus(t, rr, http.StatusOK)
	testutil.AssertBodyContains(t, rr, `"quick_actions":[]`)
}
