package checkout

import (
	"context"
	"encoding/json"
	"strings"

	"tablebite.com/app/internal/modules/storeapi"
	"tablebite.com/app/internal/session"
	"tablebite.com/app/internal/shared/apperr"
)

// Payment initiation is redirect-based: the browser posts a form straight to
// the order API. This service only assembles and validates the form payload;
// it never touches card data.

// PaymentInput carries the request-scoped pieces of a payment initiation.
type PaymentInput struct {
	SessionID string
	Lang      string
	Notes     string
	Email     string
	Token     string
	Donation  float64
	ReturnURL string
}

// PaymentForm is what the browser needs to submit: the API endpoint and the
// hidden form fields.
type PaymentForm struct {
	Action         string `json:"action"`
	OrderInfo      string `json:"order_info"`
	RecaptchaToken string `json:"recaptcha_token"`
}

// orderInfo is the JSON payload carried in the form's order_info field.
type orderInfo struct {
	Lang              string                          `json:"lang"`
	StoreID           string                          `json:"store_id"`
	OrderID           *string                         `json:"order_id"`
	OrderType         string                          `json:"order_type"`
	TableCode         *string                         `json:"table_code"`
	Email             string                          `json:"email,omitempty"`
	OrderItems        []storeapi.OrderItem            `json:"order_items"`
	TotalAmount       string                          `json:"total_amount"`
	TaxAmount         string                          `json:"tax_amount"`
	DonationSurcharge string                          `json:"donation_surcharge"`
	Notes             string                          `json:"notes"`
	ReturnURL         string                          `json:"return_url"`
}

// PaymentForm validates the checkout state and builds the redirect form for
// store. In-store sessions pay through /orders_new/pay and require the store
// to have online payments enabled; Pickup and Delivery pay through
// /orders_new/order-pay and require a contact email. When the session tracks
// a placed order, amounts come from the server-side order rather than the
// local cart.
func (s *Service) PaymentForm(ctx context.Context, in PaymentInput, sess *session.Service, store *storeapi.Store) (*PaymentForm, error) {
	flow, err := s.acquire(in.SessionID)
	if err != nil {
		return nil, apperr.InvalidErr("cart.orderInProgress", nil)
	}
	defer s.release(in.SessionID)

	ss := sess.Store(store.ID)
	inStore := ss.OrderType == session.OrderTypeInStore

	reject := func(cause error, ae *apperr.AppError) (*PaymentForm, error) {
		flow.Finish(cause)
		return nil, ae
	}

	if ss.OrderType == session.OrderTypeNotSelected {
		return reject(errNotSelected, apperr.InvalidErr("store.errorSelectOrderType", nil))
	}
	if inStore && !store.Services.PayOnlineEnabled() {
		return reject(errPayOnlineOff, apperr.InvalidErr("store.notAvailableNoOnlinePayments", nil))
	}
	if !inStore && !strings.Contains(in.Email, "@") {
		return reject(errBadEmail, apperr.InvalidErr("checkout.emailRequired", nil))
	}
	if in.Donation < 0 {
		return reject(errBadDonation, apperr.InvalidErr("checkout.invalidDonation", nil))
	}
	if in.Token == "" {
		return reject(errNoToken, apperr.UnavailableErr("checkout.paymentUnavailable", nil))
	}

	if err := flow.Start(); err != nil {
		return nil, apperr.InvalidErr("cart.orderInProgress", nil)
	}

	info := orderInfo{
		Lang:              in.Lang,
		StoreID:           store.ID,
		OrderID:           ss.OrderID,
		OrderType:         string(ss.OrderType),
		TableCode:         ss.TableCode,
		Notes:             in.Notes,
		DonationSurcharge: FormatAmount(in.Donation),
		ReturnURL:         in.ReturnURL,
	}
	if !inStore {
		info.Email = in.Email
	}

	if ss.OrderID != nil {
		// The order already lives on the server; pay against its amounts.
		order, err := s.api.Order(ctx, store.ID, *ss.OrderID)
		if err != nil {
			flow.Finish(err)
			return nil, apperr.UnavailableErr("checkout.paymentUnavailable", err)
		}
		info.OrderItems = order.OrderItems
		info.TotalAmount = FormatAmount(order.TotalAmount)
		info.TaxAmount = FormatAmount(order.TaxAmount)
	} else {
		totals := Compute(ss.SubTotal, store.TaxInfo)
		info.OrderItems = orderItems(ss.CartItems)
		info.TotalAmount = FormatAmount(totals.Total)
		info.TaxAmount = FormatAmount(totals.Tax)
	}

	raw, err := json.Marshal(info)
	if err != nil {
		flow.Finish(err)
		return nil, apperr.Wrap(err)
	}

	action := s.apiBase + "/orders_new/order-pay"
	if inStore {
		action = s.apiBase + "/orders_new/pay"
	}

	flow.Finish(nil)
	return &PaymentForm{
		Action:         action,
		OrderInfo:      string(raw),
		RecaptchaToken: in.Token,
	}, nil
}
