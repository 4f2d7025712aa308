package storeapi

import (
	"strings"

	"tablebite.com/app/internal/session"
)

// Store is the typed shape of a store record as served by the order API.
// Unknown or missing fields decode to defaults; nothing dynamic leaks past
// this boundary.
type Store struct {
	ID                  string              `json:"id"`
	Name                map[string]string   `json:"name"`
	Description         map[string]string   `json:"description"`
	Currency            string              `json:"currency"`
	ImageURL            string              `json:"image_url"`
	BannerURL           string              `json:"banner_url"`
	Items               []Item              `json:"items"`
	Tables              []StoreTable        `json:"tables"`
	Tags                map[string][]string `json:"tags"`
	SupportedOrderTypes []string            `json:"supported_order_types"`
	TaxInfo             TaxInfo             `json:"tax_info"`
	Settings            Settings            `json:"settings"`
	Services            Services            `json:"services"`
	StoreInfo           StoreInfo           `json:"store_info"`
}

// Supports reports whether the store declares the given fulfillment mode
// (wire values: "In-store", "Pickup", "Delivery").
func (s *Store) Supports(orderType string) bool {
	for _, t := range s.SupportedOrderTypes {
		if t == orderType {
			return true
		}
	}
	return false
}

// normalize fills defaults so callers never see nil maps or slices.
func (s *Store) normalize() {
	if s.Name == nil {
		s.Name = map[string]string{}
	}
	if s.Description == nil {
		s.Description = map[string]string{}
	}
	if s.Items == nil {
		s.Items = []Item{}
	}
	if s.SupportedOrderTypes == nil {
		s.SupportedOrderTypes = []string{}
	}
	s.Currency = strings.TrimSpace(s.Currency)
}

type StoreTable struct {
	Number int    `json:"number"`
	Code   string `json:"code"`
}

type TaxInfo struct {
	TaxRate     float64 `json:"tax_rate"`
	TaxIncluded bool    `json:"tax_included"`
}

type Settings struct {
	PayLater bool `json:"pay_later"`
}

// Services carries per-store feature switches. PayOnline is a pointer
// because the rejection message differs between "explicitly disabled" and
// "not declared".
type Services struct {
	PayOnline *bool `json:"pay_online"`
}

// PayOnlineDisabled reports whether online payments are explicitly off.
func (s Services) PayOnlineDisabled() bool {
	return s.PayOnline != nil && !*s.PayOnline
}

// PayOnlineEnabled reports whether online payments are explicitly on.
func (s Services) PayOnlineEnabled() bool {
	return s.PayOnline != nil && *s.PayOnline
}

type StoreInfo struct {
	Phone   string            `json:"phone"`
	Address map[string]string `json:"address"`
	// Hours maps short weekday names ("Mon".."Sun") to "HH:MM-HH:MM".
	Hours map[string]string `json:"hours"`
}

type Item struct {
	ID             string            `json:"id"`
	Name           map[string]string `json:"name"`
	Description    map[string]string `json:"description"`
	Category       map[string]string `json:"category"`
	Price          float64           `json:"price"`
	ImageURL       string            `json:"image_url"`
	SortOrder      int               `json:"sort_order"`
	Customizations []Customization   `json:"customizations,omitempty"`
}

type Customization struct {
	Name    map[string]string `json:"name"`
	Options []Option          `json:"options"`
}

type Option struct {
	Name  map[string]string `json:"name"`
	Price float64           `json:"price,omitempty"`
}

// Table is the result of resolving a physical table code.
type Table struct {
	TableNumber string `json:"table_number"`
	Status      string `json:"status"`
	OrderID     string `json:"order_id"`
}

// TableStatusOccupied marks a table with an in-progress tab order.
const TableStatusOccupied = "Occupied"

// Order is a server-side order's current state.
type Order struct {
	TotalAmount         float64     `json:"total_amount"`
	TaxAmount           float64     `json:"tax_amount"`
	OrderItems          []OrderItem `json:"order_items"`
	OrderNumber         string      `json:"order_number"`
	Status              string      `json:"status"`
	InvoiceURL          string      `json:"invoice_url"`
	ServiceFeeSurcharge float64     `json:"service_fee_surcharge,omitempty"`
	DonationSurcharge   float64     `json:"donation_surcharge,omitempty"`
}

type OrderItem struct {
	ID                     string                          `json:"id"`
	Name                   map[string]string               `json:"name"`
	Quantity               int                             `json:"quantity"`
	Price                  float64                         `json:"price"`
	SelectedCustomizations []session.SelectedCustomization `json:"selected_customizations,omitempty"`
}
