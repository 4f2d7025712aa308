package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tablebite.com/app/internal/http/middleware"
	"tablebite.com/app/internal/http/sessioncookie"
	"tablebite.com/app/internal/http/validation"
	"tablebite.com/app/internal/session"
	"tablebite.com/app/internal/shared/apperr"
)

// CartHandler mutates the per-store cart
// (GET/POST/PATCH/DELETE /api/stores/:id/cart).
type CartHandler struct {
	SC *sessioncookie.Codec
}

func NewCartHandler(sc *sessioncookie.Codec) *CartHandler {
	return &CartHandler{SC: sc}
}

type cartItemRequest struct {
	ID                     string                          `json:"id" binding:"required"`
	Name                   map[string]string               `json:"name"`
	Price                  float64                         `json:"price" binding:"min=0"`
	Quantity               int                             `json:"quantity"`
	SelectedCustomizations []session.SelectedCustomization `json:"selected_customizations"`
}

func (r cartItemRequest) line() session.CartLine {
	return session.CartLine{
		ID:                     r.ID,
		Name:                   r.Name,
		Price:                  r.Price,
		Quantity:               r.Quantity,
		SelectedCustomizations: r.SelectedCustomizations,
	}
}

// Get handles GET /api/stores/:id/cart.
func (h *CartHandler) Get(c *gin.Context) {
	storeID := c.Param("id")
	sess := middleware.GetSession(c)
	respond(c, h.SC, http.StatusOK, gin.H{"store": sess.Store(storeID)})
}

// Add handles POST /api/stores/:id/cart. Lines with the same item id and
// customization selection merge; everything else appends.
func (h *CartHandler) Add(c *gin.Context) {
	storeID := c.Param("id")

	var req cartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("cart.orderFailed", validation.FromBindError(err, &req)))
		return
	}

	sess := middleware.GetSession(c)
	sess.AddToCart(storeID, req.line())
	respond(c, h.SC, http.StatusOK, gin.H{"store": sess.Store(storeID)})
}

type cartQuantityRequest struct {
	cartItemRequest
	NewQuantity int `json:"new_quantity"`
}

// Update handles PATCH /api/stores/:id/cart. new_quantity is absolute; zero
// or less removes the line.
func (h *CartHandler) Update(c *gin.Context) {
	storeID := c.Param("id")

	var req cartQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("cart.orderFailed", validation.FromBindError(err, &req)))
		return
	}

	sess := middleware.GetSession(c)
	sess.UpdateQuantity(storeID, req.line(), req.NewQuantity)
	respond(c, h.SC, http.StatusOK, gin.H{"store": sess.Store(storeID)})
}

// Clear handles DELETE /api/stores/:id/cart. The order type and table
// binding survive; only the lines and totals reset.
func (h *CartHandler) Clear(c *gin.Context) {
	storeID := c.Param("id")
	sess := middleware.GetSession(c)
	sess.ClearCart(storeID)
	respond(c, h.SC, http.StatusOK, gin.H{"store": sess.Store(storeID)})
}
