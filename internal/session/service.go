package session

import (
	"tablebite.com/app/internal/modules/currency"
)

const maxRecentStores = 10

// Service is the single source of truth for all per-store ordering state
// within one browser session. It is explicitly constructed and passed by
// reference; there is no package-level instance. Mutations take the target
// store id; the Current* wrappers default to the selected store. A Service
// is not safe for concurrent use: like the event loop it replaces, callers
// run mutations one at a time.
type Service struct {
	state State
	dirty bool
}

// New returns a Service with empty state.
func New() *Service {
	return &Service{state: State{
		RecentStoreIDs: []string{},
		Stores:         map[string]*StoreSession{},
	}}
}

// Restore rebuilds a Service from a persisted snapshot, filling defaults for
// anything the snapshot is missing.
func Restore(state State) *Service {
	if state.Stores == nil {
		state.Stores = map[string]*StoreSession{}
	}
	if state.RecentStoreIDs == nil {
		state.RecentStoreIDs = []string{}
	}
	for _, ss := range state.Stores {
		if ss.CartItems == nil {
			ss.CartItems = []CartLine{}
		}
		if ss.OrderType == "" {
			ss.OrderType = OrderTypeNotSelected
		}
		if ss.CurrencySymbol == "" {
			ss.CurrencySymbol = "$"
		}
		ss.recompute()
	}
	return &Service{state: state}
}

// Snapshot returns the current state for persistence.
func (s *Service) Snapshot() State { return s.state }

// Dirty reports whether any mutation ran since construction or ClearDirty.
func (s *Service) Dirty() bool { return s.dirty }

// ClearDirty marks the state as persisted.
func (s *Service) ClearDirty() { s.dirty = false }

func (s *Service) touch() { s.dirty = true }

// ensure returns the StoreSession for id, creating it with defaults first if
// needed.
func (s *Service) ensure(id string) *StoreSession {
	ss, ok := s.state.Stores[id]
	if !ok {
		ss = newStoreSession()
		s.state.Stores[id] = ss
	}
	return ss
}

// CurrentStoreID returns the active store id ("" before any selection).
func (s *Service) CurrentStoreID() string { return s.state.CurrentStoreID }

// RecentStoreIDs returns the recently visited store ids, most recent last.
func (s *Service) RecentStoreIDs() []string { return s.state.RecentStoreIDs }

// SearchQuery returns the session-wide search string.
func (s *Service) SearchQuery() string { return s.state.SearchQuery }

// Store returns the session for id, or a zero-value session if the store was
// never selected. The returned pointer is live state; callers must not hold
// it across mutations.
func (s *Service) Store(id string) *StoreSession {
	if ss, ok := s.state.Stores[id]; ok {
		return ss
	}
	return newStoreSession()
}

// Current returns the session for the active store.
func (s *Service) Current() *StoreSession { return s.Store(s.state.CurrentStoreID) }

// SelectStore makes id the active store, lazily creating its session and
// recording it in the recent list. Re-selecting an already-recent store does
// not reorder or duplicate the list; new entries append and the oldest drops
// once the list exceeds ten.
func (s *Service) SelectStore(id string) {
	s.ensure(id)
	s.state.CurrentStoreID = id

	for _, rid := range s.state.RecentStoreIDs {
		if rid == id {
			s.touch()
			return
		}
	}
	s.state.RecentStoreIDs = append(s.state.RecentStoreIDs, id)
	if n := len(s.state.RecentStoreIDs); n > maxRecentStores {
		s.state.RecentStoreIDs = s.state.RecentStoreIDs[n-maxRecentStores:]
	}
	s.touch()
}

// AddToCart merges item into the cart for storeID. A line with the same
// identity (id + customization selection) has its quantity incremented;
// otherwise the item is appended as a new line. A non-positive quantity on
// item counts as one. The caller's item is never mutated.
func (s *Service) AddToCart(storeID string, item CartLine) {
	ss := s.ensure(storeID)
	qty := item.Quantity
	if qty <= 0 {
		qty = 1
	}

	key := item.key()
	for i := range ss.CartItems {
		if ss.CartItems[i].key() == key {
			ss.CartItems[i].Quantity += qty
			ss.recompute()
			s.touch()
			return
		}
	}

	line := cloneLine(item)
	line.Quantity = qty
	ss.CartItems = append(ss.CartItems, line)
	ss.recompute()
	s.touch()
}

// UpdateQuantity sets the absolute quantity of the line matching item's
// identity. A quantity of zero or less removes the line. If no line matches
// and the quantity is positive the item is inserted as a new line; if no
// line matches and the quantity is non-positive nothing happens.
func (s *Service) UpdateQuantity(storeID string, item CartLine, quantity int) {
	ss := s.ensure(storeID)
	key := item.key()

	for i := range ss.CartItems {
		if ss.CartItems[i].key() != key {
			continue
		}
		if quantity <= 0 {
			ss.CartItems = append(ss.CartItems[:i], ss.CartItems[i+1:]...)
		} else {
			ss.CartItems[i].Quantity = quantity
		}
		ss.recompute()
		s.touch()
		return
	}

	if quantity <= 0 {
		return
	}
	line := cloneLine(item)
	line.Quantity = quantity
	ss.CartItems = append(ss.CartItems, line)
	ss.recompute()
	s.touch()
}

// ClearCart empties the cart for storeID and zeroes the derived totals.
// Order type, table binding and order tracking survive a clear.
func (s *Service) ClearCart(storeID string) {
	ss := s.ensure(storeID)
	ss.CartItems = []CartLine{}
	ss.recompute()
	s.touch()
}

// SetOrderType sets the fulfillment mode for storeID.
func (s *Service) SetOrderType(storeID string, t OrderType) {
	s.ensure(storeID).OrderType = t
	s.touch()
}

// SetTableNumber sets or clears the bound table number for storeID.
func (s *Service) SetTableNumber(storeID string, number *string) {
	s.ensure(storeID).TableNumber = number
	s.touch()
}

// SetTableCode sets or clears the bound table code for storeID.
func (s *Service) SetTableCode(storeID string, code *string) {
	s.ensure(storeID).TableCode = code
	s.touch()
}

// SetOrderStatus sets or clears the tracked server-side order status.
func (s *Service) SetOrderStatus(storeID string, status *string) {
	s.ensure(storeID).OrderStatus = status
	s.touch()
}

// SetOrderID sets or clears the tracked server-side order id.
func (s *Service) SetOrderID(storeID string, id *string) {
	s.ensure(storeID).OrderID = id
	s.touch()
}

// SetOrderNumber sets or clears the tracked server-side order number.
func (s *Service) SetOrderNumber(storeID string, number *string) {
	s.ensure(storeID).OrderNumber = number
	s.touch()
}

// SetCurrencySymbol derives and stores the display symbol for the store's
// currency code. Unknown codes fall back to "$".
func (s *Service) SetCurrencySymbol(storeID string, currencyCode string) {
	s.ensure(storeID).CurrencySymbol = currency.Symbol(currencyCode)
	s.touch()
}

// ResetTable clears the table binding for storeID; number and code always
// clear together.
func (s *Service) ResetTable(storeID string) {
	ss := s.ensure(storeID)
	ss.TableNumber = nil
	ss.TableCode = nil
	s.touch()
}

// ResetOrder clears all order tracking fields for storeID.
func (s *Service) ResetOrder(storeID string) {
	ss := s.ensure(storeID)
	ss.OrderStatus = nil
	ss.OrderID = nil
	ss.OrderNumber = nil
	s.touch()
}

// SetSearchQuery sets the session-wide (non-store-scoped) search string.
func (s *Service) SetSearchQuery(query string) {
	s.state.SearchQuery = query
	s.touch()
}

// Convenience wrappers targeting the currently selected store.

func (s *Service) AddToCurrentCart(item CartLine) {
	s.AddToCart(s.state.CurrentStoreID, item)
}

func (s *Service) UpdateCurrentQuantity(item CartLine, quantity int) {
	s.UpdateQuantity(s.state.CurrentStoreID, item, quantity)
}

func (s *Service) ClearCurrentCart() {
	s.ClearCart(s.state.CurrentStoreID)
}
