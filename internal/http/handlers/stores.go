package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tablebite.com/app/internal/http/middleware"
	"tablebite.com/app/internal/http/sessioncookie"
	"tablebite.com/app/internal/i18n"
	"tablebite.com/app/internal/modules/ordertype"
	"tablebite.com/app/internal/modules/storeapi"
	"tablebite.com/app/internal/session"
	"tablebite.com/app/internal/shared/apperr"
)

// StoresHandler serves the store directory and the store page entry point
// (GET /api/stores, GET /api/stores/:id).
type StoresHandler struct {
	API      *storeapi.Client
	SC       *sessioncookie.Codec
	Resolver *ordertype.Resolver
}

func NewStoresHandler(api *storeapi.Client, sc *sessioncookie.Codec, r *ordertype.Resolver) *StoresHandler {
	return &StoresHandler{API: api, SC: sc, Resolver: r}
}

// List handles GET /api/stores.
func (h *StoresHandler) List(c *gin.Context) {
	stores, err := h.API.Stores(c.Request.Context())
	if err != nil {
		middleware.Fail(c, apperr.UnavailableErr("store.errorFetchingStore", err))
		return
	}
	respond(c, h.SC, http.StatusOK, gin.H{"stores": stores})
}

// Get handles GET /api/stores/:id. Opening a store selects it, derives its
// currency symbol, and optionally runs the order-type resolution flow from
// the order_type/table_code query parameters. A rejected query-parameter
// transition surfaces as an alert next to the store payload instead of
// failing the page load.
func (h *StoresHandler) Get(c *gin.Context) {
	id := c.Param("id")
	store, err := h.API.Store(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, storeapi.ErrNotFound) {
			middleware.Fail(c, apperr.NotFoundErr("store.errorFetchingStore"))
			return
		}
		middleware.Fail(c, apperr.UnavailableErr("store.errorFetchingStore", err))
		return
	}

	sess := middleware.GetSession(c)
	sess.SelectStore(id)
	sess.SetCurrencySymbol(id, store.Currency)

	payload := gin.H{
		"store":   store,
		"session": sessionView(sess, id),
	}

	target := session.OrderType(c.Query("order_type"))
	tableCode := c.Query("table_code")
	hasInStoreParams := target == session.OrderTypeInStore && tableCode != ""

	if target != "" && target.Valid() && target != session.OrderTypeNotSelected {
		if err := h.Resolver.Resolve(c.Request.Context(), sess, store, target, tableCode); err != nil {
			payload["alert"] = i18n.T(middleware.GetLang(c), apperr.PublicMessage(err))
		}
		payload["session"] = sessionView(sess, id)
	}

	// The initial selection popup shows only while nothing is selected and
	// the URL did not already carry an in-store binding.
	payload["show_order_type_popup"] = sess.Store(id).OrderType == session.OrderTypeNotSelected && !hasInStoreParams

	respond(c, h.SC, http.StatusOK, payload)
}
