package checkout

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"tablebite.com/app/internal/modules/storeapi"
	"tablebite.com/app/internal/modules/verify"
	"tablebite.com/app/internal/session"
	"tablebite.com/app/internal/shared/apperr"
)

// OrderAPI is the slice of the order API the checkout flow needs. Satisfied
// by *storeapi.Client.
type OrderAPI interface {
	PlaceOrder(ctx context.Context, req storeapi.PlaceOrderRequest) (*storeapi.PlacedOrder, error)
	Order(ctx context.Context, storeID, orderID string) (*storeapi.Order, error)
}

// Service runs order placement and payment initiation. One in-flight action
// per browser session: re-entrant triggers are rejected until the current
// flow reaches a terminal state, and the guard is released on every exit.
type Service struct {
	api      OrderAPI
	verifier verify.Verifier
	apiBase  string

	mu       sync.Mutex
	inflight map[string]*Flow
}

func NewService(api OrderAPI, verifier verify.Verifier, apiBase string) *Service {
	return &Service{
		api:      api,
		verifier: verifier,
		apiBase:  apiBase,
		inflight: map[string]*Flow{},
	}
}

// acquire registers a flow for the session, rejecting if one is in flight.
func (s *Service) acquire(sessionID string) (*Flow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inflight[sessionID]; busy {
		return nil, ErrInProgress
	}
	f := NewFlow()
	s.inflight[sessionID] = f
	return f, nil
}

// release drops the session's flow. Deferred on every path out of an action
// so a failure can never leave the guard stuck.
func (s *Service) release(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, sessionID)
}

// PlaceOrderInput carries the request-scoped pieces of an order placement.
type PlaceOrderInput struct {
	SessionID string
	Lang      string
	Notes     string
	Token     string
}

// PlaceOrder submits the session's cart for store as a new order. On success
// the cart clears and the session adopts the returned order id and number
// with status Pending. On any failure the session is untouched.
func (s *Service) PlaceOrder(ctx context.Context, in PlaceOrderInput, sess *session.Service, store *storeapi.Store) (*storeapi.PlacedOrder, error) {
	flow, err := s.acquire(in.SessionID)
	if err != nil {
		return nil, apperr.InvalidErr("cart.orderInProgress", nil)
	}
	defer s.release(in.SessionID)

	ss := sess.Store(store.ID)
	if ss.OrderType == session.OrderTypeNotSelected {
		flow.Finish(errors.New("order type not selected"))
		return nil, apperr.InvalidErr("store.errorSelectOrderType", nil)
	}
	if len(ss.CartItems) == 0 {
		flow.Finish(errors.New("empty cart"))
		return nil, apperr.InvalidErr("cart.orderFailed", nil)
	}

	if err := flow.Start(); err != nil {
		return nil, apperr.InvalidErr("cart.orderInProgress", nil)
	}

	if err := s.verifier.Verify(ctx, in.Token, "place_order"); err != nil {
		flow.Finish(err)
		if errors.Is(err, verify.ErrUnavailable) {
			return nil, apperr.UnavailableErr("cart.orderFailed", err)
		}
		return nil, apperr.InvalidErr("cart.orderFailed", nil)
	}

	totals := Compute(ss.SubTotal, store.TaxInfo)
	req := storeapi.PlaceOrderRequest{
		Lang:           in.Lang,
		StoreID:        store.ID,
		OrderType:      string(ss.OrderType),
		TableCode:      ss.TableCode,
		OrderItems:     orderItems(ss.CartItems),
		TotalAmount:    FormatAmount(totals.Total),
		TaxAmount:      FormatAmount(totals.Tax),
		Notes:          in.Notes,
		RecaptchaToken: in.Token,
		IdempotencyKey: uuid.NewString(),
	}

	placed, err := s.api.PlaceOrder(ctx, req)
	flow.Finish(err)
	if err != nil {
		if errors.Is(err, storeapi.ErrOrderRejected) {
			return nil, apperr.InvalidErr("cart.orderFailed", nil)
		}
		return nil, apperr.UnavailableErr("cart.orderFailed", err)
	}

	sess.ClearCart(store.ID)
	sess.SetOrderStatus(store.ID, strPtr("Pending"))
	sess.SetOrderID(store.ID, strPtr(placed.ID))
	sess.SetOrderNumber(store.ID, strPtr(placed.OrderNumber))
	return placed, nil
}

// orderItems flattens cart lines into the API's order-item shape; the line
// price is the unit price including customizations.
func orderItems(lines []session.CartLine) []storeapi.OrderItem {
	items := make([]storeapi.OrderItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, storeapi.OrderItem{
			ID:                     l.ID,
			Name:                   l.Name,
			Quantity:               l.Quantity,
			Price:                  session.LineTotal(l.Price, 1, l.SelectedCustomizations),
			SelectedCustomizations: l.SelectedCustomizations,
		})
	}
	return items
}

func strPtr(s string) *string { return &s }
