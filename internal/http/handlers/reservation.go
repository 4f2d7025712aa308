package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tablebite.com/app/internal/http/middleware"
	"tablebite.com/app/internal/http/sessioncookie"
	"tablebite.com/app/internal/http/validation"
	"tablebite.com/app/internal/i18n"
	"tablebite.com/app/internal/modules/reservation"
	"tablebite.com/app/internal/modules/storeapi"
	"tablebite.com/app/internal/shared/apperr"
)

// ReservationHandler books table reservations and drives the verification
// code round trip (POST /api/stores/:id/reservations[/code]).
type ReservationHandler struct {
	API          *storeapi.Client
	SC           *sessioncookie.Codec
	Reservations *reservation.Service
}

func NewReservationHandler(api *storeapi.Client, sc *sessioncookie.Codec, rs *reservation.Service) *ReservationHandler {
	return &ReservationHandler{API: api, SC: sc, Reservations: rs}
}

type sendCodeRequest struct {
	Email          string `json:"email" binding:"required"`
	RecaptchaToken string `json:"recaptcha_token"`
}

// SendCode handles POST /api/stores/:id/reservations/code.
func (h *ReservationHandler) SendCode(c *gin.Context) {
	var req sendCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("checkout.emailRequired", validation.FromBindError(err, &req)))
		return
	}

	if err := h.Reservations.SendCode(c.Request.Context(), req.Email, req.RecaptchaToken); err != nil {
		middleware.Fail(c, err)
		return
	}
	respond(c, h.SC, http.StatusOK, gin.H{"sent": true})
}

type createReservationRequest struct {
	reservation.Request
	RecaptchaToken string `json:"recaptcha_token"`
}

// Create handles POST /api/stores/:id/reservations.
func (h *ReservationHandler) Create(c *gin.Context) {
	var req createReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("reservation.missingFields", validation.FromBindError(err, &req)))
		return
	}

	store, err := h.API.Store(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, storeapi.ErrNotFound) {
			middleware.Fail(c, apperr.NotFoundErr("store.errorFetchingStore"))
		} else {
			middleware.Fail(c, apperr.UnavailableErr("store.errorFetchingStore", err))
		}
		return
	}

	if err := h.Reservations.Create(c.Request.Context(), store, req.Request, req.RecaptchaToken); err != nil {
		middleware.Fail(c, err)
		return
	}

	respond(c, h.SC, http.StatusCreated, gin.H{
		"message": i18n.T(middleware.GetLang(c), "reservation.successMessage"),
	})
}
