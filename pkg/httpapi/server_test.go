package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dikshith-shetty/ome/pkg/engine"
	"github.com/dikshith-shetty/ome/pkg/oms"
	"github.com/dikshith-shetty/ome/pkg/oms/store"
	"github.com/dikshith-shetty/ome/pkg/orderbook"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	eng := engine.New(orderbook.NewManager(), &engine.Config{PoolSize: 2})
	t.Cleanup(eng.Stop)
	svc := oms.NewOrderService(store.NewInMemoryStore(), eng, nil)
	return NewServer(&Config{Addr: ":0", Assets: []string{"BTC", "TST"}}, svc)
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestCreateOrderAndLookup(t *testing.T) {
	srv := newTestServer(t)
	h := srv.Handler()

	rec := doJSON(t, h, http.MethodPost, "/orders",
		`{"asset":"BTC","price":43251.00,"amount":1.00,"direction":"SELL"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.EqualValues(t, 0, resp["id"])
	assert.Equal(t, "43251.00", resp["price"])
	assert.Equal(t, "1.00", resp["pendingAmount"])
	assert.Equal(t, "SELL", resp["direction"])
	assert.Empty(t, resp["trades"])

	rec = doJSON(t, h, http.MethodPost, "/orders",
		`{"asset":"BTC","price":43253.00,"amount":0.35,"direction":"BUY"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "0.00", resp["pendingAmount"])
	trades := resp["trades"].([]any)
	require.Len(t, trades, 1)
	trade := trades[0].(map[string]any)
	assert.EqualValues(t, 0, trade["orderId"])
	assert.Equal(t, "43251.00", trade["price"])
	assert.Equal(t, "0.35", trade["amount"])

	// the resting sell reflects the partial fill
	rec = doJSON(t, h, http.MethodGet, "/orders/0", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "0.65", resp["pendingAmount"])
	assert.Equal(t, "PARTIALLY_FILLED", resp["status"])
}

func TestCreateOrderValidation(t *testing.T) {
	srv := newTestServer(t)
	h := srv.Handler()

	cases := []struct {
		name  string
		body  string
		field string
	}{
		{"unknown asset", `{"asset":"DOGE","price":1.00,"amount":1.00,"direction":"BUY"}`, "asset"},
		{"missing asset", `{"price":1.00,"amount":1.00,"direction":"BUY"}`, "asset"},
		{"three decimals", `{"asset":"BTC","price":1.005,"amount":1.00,"direction":"BUY"}`, "price"},
		{"zero amount", `{"asset":"BTC","price":1.00,"amount":0,"direction":"BUY"}`, "amount"},
		{"negative amount", `{"asset":"BTC","price":1.00,"amount":-2.00,"direction":"BUY"}`, "amount"},
		{"bad direction", `{"asset":"BTC","price":1.00,"amount":1.00,"direction":"HOLD"}`, "direction"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec := doJSON(t, h, http.MethodPost, "/orders", c.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			var errs map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errs))
			assert.Contains(t, errs, c.field)
		})
	}
}

func TestCreateOrderMalformedBody(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv.Handler(), http.MethodPost, "/orders", `{"asset":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetOrderNotFound(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv.Handler(), http.MethodGet, "/orders/42", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, srv.Handler(), http.MethodGet, "/orders/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
