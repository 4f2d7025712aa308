// Package storeapi is the typed client for the remote order/store API. The
// API is a black-box collaborator; this package owns the call contracts,
// validates payloads at the boundary and caches store data for the life of
// the process (the analog of the browser's per-session cache).
package storeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

var (
	// ErrNotFound is returned when a store, table or order does not exist.
	ErrNotFound = errors.New("storeapi: not found")
	// ErrInvalidVerificationCode is returned by CreateReservation when the
	// email verification code is wrong or expired.
	ErrInvalidVerificationCode = errors.New("storeapi: invalid or expired verification code")
	// ErrOrderRejected is returned when order placement succeeds at the HTTP
	// level but the API reports a business error.
	ErrOrderRejected = errors.New("storeapi: order rejected")
)

// invalidCodeMessage is the exact error string the API uses for a bad
// reservation verification code.
const invalidCodeMessage = "Invalid or expired verification code"

type Client struct {
	baseURL string
	httpc   *http.Client
	cache   *storeCache
}

// New returns a Client for the API at baseURL. cacheTTL bounds how long
// store data is served from cache; zero disables caching.
func New(baseURL string, timeout, cacheTTL time.Duration) *Client {
	return &Client{
		baseURL: trimSlash(baseURL),
		httpc:   &http.Client{Timeout: timeout},
		cache:   newStoreCache(cacheTTL),
	}
}

func trimSlash(s string) string {
	for len(s) > 0 && s[len(s)-1] == '/' {
		s = s[:len(s)-1]
	}
	return s
}

// Stores fetches the full store list, served from cache when fresh.
func (c *Client) Stores(ctx context.Context) ([]Store, error) {
	if stores, ok := c.cache.list(); ok {
		return stores, nil
	}

	var payload struct {
		Stores []Store `json:"stores"`
	}
	if err := c.getJSON(ctx, "/stores/", &payload); err != nil {
		return nil, err
	}
	for i := range payload.Stores {
		payload.Stores[i].normalize()
	}
	c.cache.putList(payload.Stores)
	return payload.Stores, nil
}

// Store fetches one store with its menu, settings and services, served from
// cache when fresh. Unknown ids return ErrNotFound.
func (c *Client) Store(ctx context.Context, id string) (*Store, error) {
	if st, ok := c.cache.get(id); ok {
		return st, nil
	}

	var st Store
	if err := c.getJSON(ctx, "/stores/"+url.PathEscape(id), &st); err != nil {
		return nil, err
	}
	st.normalize()
	if st.ID == "" {
		st.ID = id
	}
	c.cache.put(&st)
	return &st, nil
}

// Table resolves a physical table code for a store. A 404 maps to
// ErrNotFound; any other failure is a transport error.
func (c *Client) Table(ctx context.Context, storeID, tableCode string) (*Table, error) {
	var t Table
	path := "/tables/" + url.PathEscape(storeID) + "/" + url.PathEscape(tableCode)
	if err := c.getJSON(ctx, path, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// Order fetches the current state of a placed order.
func (c *Client) Order(ctx context.Context, storeID, orderID string) (*Order, error) {
	var o Order
	path := "/orders_new/" + url.PathEscape(storeID) + "/" + url.PathEscape(orderID)
	if err := c.getJSON(ctx, path, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// PlaceOrderRequest is the body of POST /orders_new/. Amounts are sent as
// strings formatted to two decimals, as the API expects.
type PlaceOrderRequest struct {
	Lang              string      `json:"lang"`
	StoreID           string      `json:"store_id"`
	OrderType         string      `json:"order_type"`
	TableCode         *string     `json:"table_code"`
	OrderItems        []OrderItem `json:"order_items"`
	TotalAmount       string      `json:"total_amount"`
	TaxAmount         string      `json:"tax_amount"`
	Notes             string      `json:"notes"`
	RecaptchaToken    string      `json:"recaptcha_token"`
	IdempotencyKey    string      `json:"idempotency_key,omitempty"`
	DonationSurcharge string      `json:"donation_surcharge,omitempty"`
}

// PlacedOrder identifies a freshly created order.
type PlacedOrder struct {
	ID          string `json:"id"`
	OrderNumber string `json:"order_number"`
}

// PlaceOrder submits a new order. A response carrying an error field maps to
// ErrOrderRejected.
func (c *Client) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*PlacedOrder, error) {
	var payload struct {
		Error string      `json:"error"`
		Order PlacedOrder `json:"order"`
	}
	if err := c.postJSON(ctx, "/orders_new/", req, &payload); err != nil {
		return nil, err
	}
	if payload.Error != "" {
		return nil, fmt.Errorf("%w: %s", ErrOrderRejected, payload.Error)
	}
	return &payload.Order, nil
}

// SendVerificationCode asks the API to email a reservation verification code.
func (c *Client) SendVerificationCode(ctx context.Context, email, recaptchaToken string) error {
	body := map[string]string{"email": email, "recaptcha_token": recaptchaToken}
	return c.postJSON(ctx, "/email/send_verification_code", body, nil)
}

// ReservationRequest is the body of POST /reservation/.
type ReservationRequest struct {
	StoreID          string `json:"store_id"`
	GuestName        string `json:"guest_name"`
	Email            string `json:"email"`
	VerificationCode string `json:"verification_code"`
	Phone            string `json:"phone"`
	GuestCount       int    `json:"guest_count"`
	ReservationTime  string `json:"reservation_time"`
	Notes            string `json:"notes"`
	RecaptchaToken   string `json:"recaptcha_token"`
}

// CreateReservation books a table. A rejection for a bad verification code
// maps to ErrInvalidVerificationCode so callers can pick the right message.
func (c *Client) CreateReservation(ctx context.Context, req ReservationRequest) error {
	var payload struct {
		Error string `json:"error"`
	}
	err := c.postJSON(ctx, "/reservation/", req, &payload)
	if err != nil {
		var se *statusError
		if errors.As(err, &se) && se.apiError == invalidCodeMessage {
			return ErrInvalidVerificationCode
		}
		return err
	}
	if payload.Error == invalidCodeMessage {
		return ErrInvalidVerificationCode
	}
	if payload.Error != "" {
		return fmt.Errorf("storeapi: reservation rejected: %s", payload.Error)
	}
	return nil
}

// statusError is a non-2xx response, with the API's error field when the
// body carried one.
type statusError struct {
	status   int
	apiError string
}

func (e *statusError) Error() string {
	if e.apiError != "" {
		return fmt.Sprintf("storeapi: status %d: %s", e.status, e.apiError)
	}
	return fmt.Sprintf("storeapi: status %d", e.status)
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) postJSON(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	res, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if res.StatusCode >= 400 {
		se := &statusError{status: res.StatusCode}
		var payload struct {
			Error string `json:"error"`
		}
		if b, err := io.ReadAll(io.LimitReader(res.Body, 1<<16)); err == nil {
			if json.Unmarshal(b, &payload) == nil {
				se.apiError = payload.Error
			}
		}
		return se
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(res.Body).Decode(out)
}
