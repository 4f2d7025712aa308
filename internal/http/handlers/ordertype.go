package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tablebite.com/app/internal/http/middleware"
	"tablebite.com/app/internal/http/sessioncookie"
	"tablebite.com/app/internal/http/validation"
	"tablebite.com/app/internal/modules/ordertype"
	"tablebite.com/app/internal/modules/storeapi"
	"tablebite.com/app/internal/session"
	"tablebite.com/app/internal/shared/apperr"
)

// OrderTypeHandler runs the fulfillment-mode selection flow
// (POST /api/stores/:id/order-type).
type OrderTypeHandler struct {
	API      *storeapi.Client
	SC       *sessioncookie.Codec
	Resolver *ordertype.Resolver
}

func NewOrderTypeHandler(api *storeapi.Client, sc *sessioncookie.Codec, r *ordertype.Resolver) *OrderTypeHandler {
	return &OrderTypeHandler{API: api, SC: sc, Resolver: r}
}

type orderTypeRequest struct {
	OrderType string `json:"order_type" binding:"required"`
	TableCode string `json:"table_code"`
}

// Set handles POST /api/stores/:id/order-type. In-store selection resolves
// the table code against the store's tables and may adopt an open pay-later
// order already sitting on that table.
func (h *OrderTypeHandler) Set(c *gin.Context) {
	storeID := c.Param("id")

	var req orderTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("store.errorSelectOrderType", validation.FromBindError(err, &req)))
		return
	}

	store, err := h.API.Store(c.Request.Context(), storeID)
	if err != nil {
		if errors.Is(err, storeapi.ErrNotFound) {
			middleware.Fail(c, apperr.NotFoundErr("store.errorFetchingStore"))
			return
		}
		middleware.Fail(c, apperr.UnavailableErr("store.errorFetchingStore", err))
		return
	}

	sess := middleware.GetSession(c)
	sess.SelectStore(storeID)
	sess.SetCurrencySymbol(storeID, store.Currency)

	target := session.OrderType(req.OrderType)
	if err := h.Resolver.Resolve(c.Request.Context(), sess, store, target, req.TableCode); err != nil {
		// A rejection leaves the resolver's part of the session untouched,
		// but the store selection above may already have dirtied it.
		if sess.Dirty() {
			_ = h.SC.Set(c, sess)
		}
		middleware.Fail(c, err)
		return
	}

	respond(c, h.SC, http.StatusOK, gin.H{"store": sess.Store(storeID)})
}
