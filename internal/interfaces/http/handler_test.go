package httpinterface_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/sparkle-network/sparkled/internal/core/application"
	"github.com/sparkle-network/sparkled/internal/infrastructure/storage/db/inmemory"
	httpinterface "github.com/sparkle-network/sparkled/internal/interfaces/http"
)

func TestTradeEndpoints(t *testing.T) {
	router := newTestRouter(t)

	trade := doRequest(t, router, http.MethodPost, "/v1/trade", gin.H{
		"assetId":    "a1",
		"sellerNode": "S",
		"priceUnits": 1000,
	}, http.StatusOK)
	require.Equal(t, "pending", trade["status"])
	tradeId := trade["id"].(string)

	trade = doRequest(
		t, router, http.MethodPost,
		fmt.Sprintf("/v1/trade/%s/seller-artifact", tradeId),
		gin.H{"artifact": "blob1"}, http.StatusOK,
	)
	require.Equal(t, "awaiting_buyer", trade["status"])

	trade = doRequest(
		t, router, http.MethodPost,
		fmt.Sprintf("/v1/trade/%s/buyer-participation", tradeId),
		gin.H{"lockHash": "hash1", "artifact": "blob2"}, http.StatusOK,
	)
	require.Equal(t, "ready_to_settle", trade["status"])

	trade = doRequest(
		t, router, http.MethodPost,
		fmt.Sprintf("/v1/trade/%s/settle", tradeId),
		gin.H{"settlementRef": "tx1", "preimage": "preimage1"}, http.StatusOK,
	)
	require.Equal(t, "completed", trade["status"])

	trade = doRequest(
		t, router, http.MethodGet, "/v1/trade/"+tradeId, nil, http.StatusOK,
	)
	require.Equal(t, "completed", trade["status"])
	require.Equal(t, "tx1", trade["settlementRef"])

	stats := doRequest(t, router, http.MethodGet, "/v1/stats", nil, http.StatusOK)
	require.EqualValues(t, 1, stats["total"])
	require.EqualValues(t, 1, stats["completed"])
	require.EqualValues(t, 0, stats["pending"])
}

func TestFailingTradeEndpoints(t *testing.T) {
	router := newTestRouter(t)

	t.Run("invalid_create", func(t *testing.T) {
		resp := doRequest(t, router, http.MethodPost, "/v1/trade", gin.H{
			"sellerNode": "S",
			"priceUnits": 1000,
		}, http.StatusBadRequest)
		require.Contains(t, resp["error"], "missing asset id")
	})

	t.Run("unknown_trade", func(t *testing.T) {
		doRequest(
			t, router, http.MethodGet, "/v1/trade/unknown", nil,
			http.StatusNotFound,
		)
	})

	t.Run("illegal_transition", func(t *testing.T) {
		trade := doRequest(t, router, http.MethodPost, "/v1/trade", gin.H{
			"assetId":    "a1",
			"sellerNode": "S",
			"priceUnits": 1000,
		}, http.StatusOK)

		resp := doRequest(
			t, router, http.MethodPost,
			fmt.Sprintf("/v1/trade/%s/settle", trade["id"]),
			gin.H{"settlementRef": "tx1", "preimage": "p1"},
			http.StatusConflict,
		)
		require.Equal(t, "trade is pending", resp["error"])
	})

	t.Run("bad_status_filter", func(t *testing.T) {
		doRequest(
			t, router, http.MethodGet, "/v1/trades?status=bogus", nil,
			http.StatusBadRequest,
		)
	})
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	resp := doRequest(t, router, http.MethodGet, "/v1/health", nil, http.StatusOK)
	require.Equal(t, "ok", resp["status"])
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	svc, err := application.NewService(inmemory.NewDbManager(), nil)
	require.NoError(t, err)
	return httpinterface.NewRouter(svc, 100)
}

func doRequest(
	t *testing.T, router *gin.Engine, method, path string, body gin.H,
	expectedCode int,
) map[string]interface{} {
	t.Helper()

	var reqBody *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(payload)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, expectedCode, rec.Code, rec.Body.String())

	resp := map[string]interface{}{}
	if len(rec.Body.Bytes()) > 0 && rec.Body.Bytes()[0] == '{' {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return resp
}
