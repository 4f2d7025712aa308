package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tablebite.com/app/internal/http/middleware"
	"tablebite.com/app/internal/http/sessioncookie"
	"tablebite.com/app/internal/http/validation"
	"tablebite.com/app/internal/i18n"
	"tablebite.com/app/internal/modules/checkout"
	"tablebite.com/app/internal/modules/storeapi"
	"tablebite.com/app/internal/shared/apperr"
)

// OrdersHandler covers order placement, active-order tracking and payment
// initiation under /api/stores/:id/orders.
type OrdersHandler struct {
	API      *storeapi.Client
	SC       *sessioncookie.Codec
	Checkout *checkout.Service
}

func NewOrdersHandler(api *storeapi.Client, sc *sessioncookie.Codec, co *checkout.Service) *OrdersHandler {
	return &OrdersHandler{API: api, SC: sc, Checkout: co}
}

func (h *OrdersHandler) store(c *gin.Context) (*storeapi.Store, bool) {
	store, err := h.API.Store(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, storeapi.ErrNotFound) {
			middleware.Fail(c, apperr.NotFoundErr("store.errorFetchingStore"))
		} else {
			middleware.Fail(c, apperr.UnavailableErr("store.errorFetchingStore", err))
		}
		return nil, false
	}
	return store, true
}

type placeOrderRequest struct {
	Notes          string `json:"notes"`
	RecaptchaToken string `json:"recaptcha_token"`
}

// Place handles POST /api/stores/:id/orders. On success the cart clears, the
// session starts tracking the new order, and the message tells the guest
// whether they pay now or at the counter.
func (h *OrdersHandler) Place(c *gin.Context) {
	var req placeOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("cart.orderFailed", validation.FromBindError(err, &req)))
		return
	}

	store, ok := h.store(c)
	if !ok {
		return
	}

	sess := middleware.GetSession(c)
	lang := middleware.GetLang(c)

	placed, err := h.Checkout.PlaceOrder(c.Request.Context(), checkout.PlaceOrderInput{
		SessionID: middleware.GetSessionID(c),
		Lang:      lang,
		Notes:     req.Notes,
		Token:     req.RecaptchaToken,
	}, sess, store)
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	msgKey := "cart.orderSuccessPayNow"
	if store.Settings.PayLater {
		msgKey = "cart.orderSuccessPayLater"
	}

	respond(c, h.SC, http.StatusCreated, gin.H{
		"order":   placed,
		"message": i18n.T(lang, msgKey),
		"store":   sess.Store(store.ID),
	})
}

// Get handles GET /api/stores/:id/orders/:orderID. A session not yet
// tracking an order adopts the fetched one (deep link); a session already
// tracking this order refreshes its number and status. Tracking of a
// different order is left alone.
func (h *OrdersHandler) Get(c *gin.Context) {
	storeID := c.Param("id")
	orderID := c.Param("orderID")

	order, err := h.API.Order(c.Request.Context(), storeID, orderID)
	if err != nil {
		if errors.Is(err, storeapi.ErrNotFound) {
			middleware.Fail(c, apperr.NotFoundErr("cart.orderFailed"))
		} else {
			middleware.Fail(c, apperr.UnavailableErr("cart.orderFailed", err))
		}
		return
	}

	sess := middleware.GetSession(c)
	ss := sess.Store(storeID)
	if ss.OrderID == nil || *ss.OrderID == orderID {
		id := orderID
		num := order.OrderNumber
		status := order.Status
		sess.SetOrderID(storeID, &id)
		sess.SetOrderNumber(storeID, &num)
		sess.SetOrderStatus(storeID, &status)
	}

	respond(c, h.SC, http.StatusOK, gin.H{
		"order": order,
		"store": sess.Store(storeID),
	})
}

type payRequest struct {
	Email          string  `json:"email"`
	Notes          string  `json:"notes"`
	Donation       float64 `json:"donation"`
	ReturnURL      string  `json:"return_url"`
	RecaptchaToken string  `json:"recaptcha_token"`
}

// Pay handles POST /api/stores/:id/orders/pay. The response carries the
// endpoint and hidden fields for the browser's redirect form; no money moves
// through this server. A surcharge covering the payment service fee is added
// client-side from the service_fee field.
func (h *OrdersHandler) Pay(c *gin.Context) {
	var req payRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("checkout.paymentUnavailable", validation.FromBindError(err, &req)))
		return
	}

	store, ok := h.store(c)
	if !ok {
		return
	}

	sess := middleware.GetSession(c)

	form, err := h.Checkout.PaymentForm(c.Request.Context(), checkout.PaymentInput{
		SessionID: middleware.GetSessionID(c),
		Lang:      middleware.GetLang(c),
		Notes:     req.Notes,
		Email:     req.Email,
		Token:     req.RecaptchaToken,
		Donation:  req.Donation,
		ReturnURL: req.ReturnURL,
	}, sess, store)
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	respond(c, h.SC, http.StatusOK, gin.H{
		"form":        form,
		"service_fee": checkout.ServiceFee(store.Currency),
	})
}
