package verify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRecaptchaFor(t *testing.T, handler http.HandlerFunc) *Recaptcha {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewRecaptcha("secret", srv.URL)
}

func TestRecaptchaSuccess(t *testing.T) {
	r := newRecaptchaFor(t, func(w http.ResponseWriter, req *http.Request) {
		require.NoError(t, req.ParseForm())
		assert.Equal(t, "secret", req.Form.Get("secret"))
		assert.Equal(t, "tok", req.Form.Get("response"))
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "action": "place_order"})
	})

	assert.NoError(t, r.Verify(context.Background(), "tok", "place_order"))
}

func TestRecaptchaRejectsFailureAndActionMismatch(t *testing.T) {
	r := newRecaptchaFor(t, func(w http.ResponseWriter, req *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"success": false})
	})
	assert.ErrorIs(t, r.Verify(context.Background(), "tok", "place_order"), ErrRejected)

	r = newRecaptchaFor(t, func(w http.ResponseWriter, req *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "action": "other"})
	})
	assert.ErrorIs(t, r.Verify(context.Background(), "tok", "place_order"), ErrRejected)
}

func TestRecaptchaProviderDown(t *testing.T) {
	r := newRecaptchaFor(t, func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	assert.ErrorIs(t, r.Verify(context.Background(), "tok", ""), ErrUnavailable)
}

func TestDisabledAcceptsEverything(t *testing.T) {
	assert.NoError(t, Disabled{}.Verify(context.Background(), "", ""))
}
