// Package http wires the gin engine: middleware chain, API routes and the
// operational endpoints.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tablebite.com/app/internal/config"
	"tablebite.com/app/internal/http/handlers"
	"tablebite.com/app/internal/http/middleware"
	"tablebite.com/app/internal/http/sessioncookie"
	"tablebite.com/app/internal/modules/checkout"
	"tablebite.com/app/internal/modules/ordertype"
	"tablebite.com/app/internal/modules/reservation"
	"tablebite.com/app/internal/modules/storeapi"
	"tablebite.com/app/internal/modules/verify"
)

func NewRouter(logger *slog.Logger, cfg config.Config, api *storeapi.Client, verifier verify.Verifier) *gin.Engine {
	r := gin.New()

	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.Lang())

	codec := sessioncookie.New(cfg.CookieSecret, "tb_session", cfg.SecureCookies)
	ids := sessioncookie.NewID(cfg.CookieSecret, "tb_sid", cfg.SecureCookies)
	r.Use(middleware.Session(ids, codec))
	r.Use(middleware.ErrorHandler(logger))

	resolver := ordertype.NewResolver(api)
	checkoutSvc := checkout.NewService(api, verifier, cfg.APIURL)
	reservationSvc := reservation.NewService(api, verifier)

	storesH := handlers.NewStoresHandler(api, codec, resolver)
	cartH := handlers.NewCartHandler(codec)
	sessionH := handlers.NewSessionHandler(codec, cfg.SecureCookies)
	orderTypeH := handlers.NewOrderTypeHandler(api, codec, resolver)
	ordersH := handlers.NewOrdersHandler(api, codec, checkoutSvc)
	reservationH := handlers.NewReservationHandler(api, codec, reservationSvc)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/session", sessionH.Get)
		apiGroup.PUT("/session/search", sessionH.SetSearch)
		apiGroup.PUT("/session/lang", sessionH.SetLang)

		apiGroup.GET("/stores", storesH.List)
		apiGroup.GET("/stores/:id", storesH.Get)

		apiGroup.GET("/stores/:id/cart", cartH.Get)
		apiGroup.POST("/stores/:id/cart", cartH.Add)
		apiGroup.PATCH("/stores/:id/cart", cartH.Update)
		apiGroup.DELETE("/stores/:id/cart", cartH.Clear)

		apiGroup.POST("/stores/:id/order-type", orderTypeH.Set)

		apiGroup.POST("/stores/:id/orders", ordersH.Place)
		apiGroup.POST("/stores/:id/orders/pay", ordersH.Pay)
		apiGroup.GET("/stores/:id/orders/:orderID", ordersH.Get)

		apiGroup.POST("/stores/:id/reservations", reservationH.Create)
		apiGroup.POST("/stores/:id/reservations/code", reservationH.SendCode)
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}
