package http

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tablebite.com/app/internal/config"
	"tablebite.com/app/internal/i18n"
	"tablebite.com/app/internal/modules/storeapi"
	"tablebite.com/app/internal/modules/verify"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeUpstream is a minimal order API: one EUR store with an in-store table
// and an order placement endpoint.
func fakeUpstream(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/stores/s1", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":                    "s1",
			"currency":              "EUR",
			"supported_order_types": []string{"In-store", "Pickup"},
			"settings":              map[string]any{"pay_later": true},
			"services":              map[string]any{"pay_online": true},
			"tax_info":              map[string]any{"tax_rate": 0.10},
		})
	})
	mux.HandleFunc("/stores/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/stores/" {
			http.NotFound(w, r)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"stores": []map[string]any{{"id": "s1", "currency": "EUR"}},
		})
	})
	mux.HandleFunc("/tables/s1/code-7", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"table_number": "7",
			"status":       "Occupied",
			"order_id":     "o-77",
		})
	})
	mux.HandleFunc("/orders_new/s1/o-1", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"order_number": "77",
			"status":       "Completed",
		})
	})
	mux.HandleFunc("/orders_new/", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"order": map[string]any{"id": "o-1", "order_number": "41"},
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

type client struct {
	t       *testing.T
	router  http.Handler
	cookies []*http.Cookie
}

func newClient(t *testing.T) *client {
	upstream := fakeUpstream(t)
	cfg := config.Config{
		APIURL:       upstream.URL,
		CookieSecret: []byte("test-secret"),
		APITimeout:   5 * time.Second,
	}
	api := storeapi.New(cfg.APIURL, cfg.APITimeout, 0)
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	return &client{t: t, router: NewRouter(logger, cfg, api, verify.Disabled{})}
}

func (c *client) do(method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	c.t.Helper()
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(c.t, err)
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}

	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)

	// carry cookies forward like a browser
	res := http.Response{Header: w.Header()}
	for _, ck := range res.Cookies() {
		replaced := false
		for i, old := range c.cookies {
			if old.Name == ck.Name {
				c.cookies[i] = ck
				replaced = true
			}
		}
		if !replaced {
			c.cookies = append(c.cookies, ck)
		}
	}

	var payload map[string]any
	if w.Body.Len() > 0 {
		require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), &payload))
	}
	return w, payload
}

func storeState(t *testing.T, payload map[string]any) map[string]any {
	t.Helper()
	st, ok := payload["store"].(map[string]any)
	require.True(t, ok, "payload %v", payload)
	return st
}

func TestStorePageSelectsStoreAndShowsPopup(t *testing.T) {
	c := newClient(t)

	w, payload := c.do(http.MethodGet, "/api/stores/s1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, payload["show_order_type_popup"])

	sess, ok := payload["session"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "s1", sess["currentStore"])
	ss := sess["store"].(map[string]any)
	assert.Equal(t, "€", ss["currencySymbol"])
}

func TestStorePageURLParamsBindTableAndHidePopup(t *testing.T) {
	c := newClient(t)

	w, payload := c.do(http.MethodGet, "/api/stores/s1?order_type=In-store&table_code=code-7", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, payload["show_order_type_popup"])
	assert.NotContains(t, payload, "alert")

	sess := payload["session"].(map[string]any)
	ss := sess["store"].(map[string]any)
	assert.Equal(t, "In-store", ss["orderType"])
	assert.Equal(t, "7", ss["tableNumber"])
	// occupied pay-later table: the open order is adopted
	assert.Equal(t, "o-77", ss["orderId"])
	assert.Equal(t, "Pending", ss["orderStatus"])
}

func TestStorePageRejectedURLParamBecomesAlert(t *testing.T) {
	c := newClient(t)

	w, payload := c.do(http.MethodGet, "/api/stores/s1?order_type=Delivery", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, payload["alert"])
	assert.Equal(t, true, payload["show_order_type_popup"])
}

func TestCartLifecycleAcrossRequests(t *testing.T) {
	c := newClient(t)

	item := map[string]any{"id": "latte", "price": 4.50, "quantity": 2}
	w, payload := c.do(http.MethodPost, "/api/stores/s1/cart", item)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 2, storeState(t, payload)["totalItems"])

	// session survives via cookie
	w, payload = c.do(http.MethodGet, "/api/stores/s1/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 2, storeState(t, payload)["totalItems"])
	assert.InDelta(t, 9.0, storeState(t, payload)["subTotal"].(float64), 1e-9)

	update := map[string]any{"id": "latte", "price": 4.50, "new_quantity": 0}
	w, payload = c.do(http.MethodPatch, "/api/stores/s1/cart", update)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, storeState(t, payload)["totalItems"])
}

func TestPlaceOrderEndToEnd(t *testing.T) {
	c := newClient(t)

	_, _ = c.do(http.MethodPost, "/api/stores/s1/order-type", map[string]any{"order_type": "Pickup"})
	_, _ = c.do(http.MethodPost, "/api/stores/s1/cart", map[string]any{"id": "latte", "price": 4.50, "quantity": 2})

	w, payload := c.do(http.MethodPost, "/api/stores/s1/orders", map[string]any{"notes": "extra hot"})
	require.Equal(t, http.StatusCreated, w.Code)

	order := payload["order"].(map[string]any)
	assert.Equal(t, "o-1", order["id"])
	assert.NotEmpty(t, payload["message"])

	ss := storeState(t, payload)
	assert.EqualValues(t, 0, ss["totalItems"])
	assert.Equal(t, "Pending", ss["orderStatus"])
	assert.Equal(t, "41", ss["orderNumber"])
}

func TestOrderDeepLinkAdoptsTracking(t *testing.T) {
	c := newClient(t)

	// fresh session, order id arrives via the URL
	w, payload := c.do(http.MethodGet, "/api/stores/s1/orders/o-1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	ss := storeState(t, payload)
	assert.Equal(t, "o-1", ss["orderId"])
	assert.Equal(t, "77", ss["orderNumber"])
	assert.Equal(t, "Completed", ss["orderStatus"])

	// refetching the same order refreshes the tracked fields
	w, payload = c.do(http.MethodGet, "/api/stores/s1/orders/o-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Completed", storeState(t, payload)["orderStatus"])
}

func TestOrderDeepLinkLeavesOtherTrackingAlone(t *testing.T) {
	c := newClient(t)

	// the session already tracks its own order via an occupied table
	_, _ = c.do(http.MethodGet, "/api/stores/s1?order_type=In-store&table_code=code-7", nil)

	w, payload := c.do(http.MethodGet, "/api/stores/s1/orders/o-1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	ss := storeState(t, payload)
	assert.Equal(t, "o-77", ss["orderId"])
	assert.Equal(t, "Pending", ss["orderStatus"])
}

func TestPlaceOrderWithoutOrderTypeRejected(t *testing.T) {
	c := newClient(t)
	_, _ = c.do(http.MethodPost, "/api/stores/s1/cart", map[string]any{"id": "latte", "price": 4.50, "quantity": 1})

	w, payload := c.do(http.MethodPost, "/api/stores/s1/orders", map[string]any{})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotEmpty(t, payload["error"])
	assert.NotEmpty(t, payload["request_id"])
}

func TestErrorsTranslateToCookieLanguage(t *testing.T) {
	c := newClient(t)
	c.cookies = append(c.cookies, &http.Cookie{Name: i18n.CookieName, Value: "zh"})
	_, _ = c.do(http.MethodPost, "/api/stores/s1/cart", map[string]any{"id": "latte", "price": 4.50, "quantity": 1})

	w, payload := c.do(http.MethodPost, "/api/stores/s1/orders", map[string]any{})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, i18n.T("zh", "store.errorSelectOrderType"), payload["error"])
}

func TestHealthz(t *testing.T) {
	c := newClient(t)
	w, payload := c.do(http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", payload["status"])
}
