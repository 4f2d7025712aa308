package session

// OrderType is the fulfillment mode for a store session. The wire values
// match what the order API expects in order payloads.
type OrderType string

const (
	OrderTypeNotSelected OrderType = "Not Selected"
	OrderTypeInStore     OrderType = "In-store"
	OrderTypePickup      OrderType = "Pickup"
	OrderTypeDelivery    OrderType = "Delivery"
)

// Valid reports whether t is one of the known fulfillment modes.
func (t OrderType) Valid() bool {
	switch t {
	case OrderTypeNotSelected, OrderTypeInStore, OrderTypePickup, OrderTypeDelivery:
		return true
	}
	return false
}

// SelectedOption is one chosen option inside a customization category.
type SelectedOption struct {
	Index int               `json:"index"`
	Name  map[string]string `json:"name"`
	Price float64           `json:"price,omitempty"`
}

// SelectedCustomization is a customization category with its chosen options.
type SelectedCustomization struct {
	Index           int               `json:"index"`
	Name            map[string]string `json:"name"`
	SelectedOptions []SelectedOption  `json:"selected_options"`
}

// CartLine is one distinct (item, customization-set) entry in a cart.
// Item names are per-language maps keyed by language code.
type CartLine struct {
	ID                     string                  `json:"id"`
	Name                   map[string]string       `json:"name"`
	Price                  float64                 `json:"price"`
	Quantity               int                     `json:"quantity"`
	SelectedCustomizations []SelectedCustomization `json:"selected_customizations,omitempty"`
}

// StoreSession is the per-store slice of session state: cart, fulfillment
// mode, table binding and active order reference. TotalItems and SubTotal are
// derived from CartItems and are never mutated independently.
type StoreSession struct {
	CurrencySymbol string     `json:"currencySymbol"`
	CartItems      []CartLine `json:"cartItems"`
	TotalItems     int        `json:"totalItems"`
	SubTotal       float64    `json:"subTotal"`
	OrderType      OrderType  `json:"orderType"`
	TableNumber    *string    `json:"tableNumber"`
	TableCode      *string    `json:"tableCode"`
	OrderStatus    *string    `json:"orderStatus"`
	OrderID        *string    `json:"orderId"`
	OrderNumber    *string    `json:"orderNumber"`
}

func newStoreSession() *StoreSession {
	return &StoreSession{
		CurrencySymbol: "$",
		CartItems:      []CartLine{},
		OrderType:      OrderTypeNotSelected,
	}
}

// recompute re-derives TotalItems and SubTotal from CartItems. Every cart
// mutation must call it before returning.
func (ss *StoreSession) recompute() {
	total := 0
	sub := 0.0
	for _, line := range ss.CartItems {
		total += line.Quantity
		sub += LineTotal(line.Price, line.Quantity, line.SelectedCustomizations)
	}
	ss.TotalItems = total
	ss.SubTotal = sub
}

// State is the full session-wide snapshot: the active store, the recent-store
// list and one StoreSession per visited store. It is what gets serialized
// into the session cookie.
type State struct {
	CurrentStoreID string                   `json:"currentStore"`
	RecentStoreIDs []string                 `json:"recentStores"`
	Stores         map[string]*StoreSession `json:"stores"`
	SearchQuery    string                   `json:"searchQuery"`
}

func cloneOptions(opts []SelectedOption) []SelectedOption {
	if opts == nil {
		return nil
	}
	out := make([]SelectedOption, len(opts))
	copy(out, opts)
	return out
}

func cloneCustomizations(cs []SelectedCustomization) []SelectedCustomization {
	if cs == nil {
		return nil
	}
	out := make([]SelectedCustomization, len(cs))
	for i, c := range cs {
		c.SelectedOptions = cloneOptions(c.SelectedOptions)
		out[i] = c
	}
	return out
}

// cloneLine copies a caller-supplied line so later session mutations never
// alias caller memory.
func cloneLine(line CartLine) CartLine {
	line.SelectedCustomizations = cloneCustomizations(line.SelectedCustomizations)
	return line
}
