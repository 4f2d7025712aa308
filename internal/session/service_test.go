package session

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func latte(opts ...SelectedCustomization) CartLine {
	return CartLine{
		ID:                     "latte",
		Name:                   map[string]string{"en": "Latte"},
		Price:                  4.50,
		Quantity:               1,
		SelectedCustomizations: opts,
	}
}

func oatMilk() SelectedCustomization {
	return SelectedCustomization{
		Index: 0,
		Name:  map[string]string{"en": "Milk"},
		SelectedOptions: []SelectedOption{
			{Index: 2, Name: map[string]string{"en": "Oat"}, Price: 0.50},
		},
	}
}

func checkInvariants(t *testing.T, ss *StoreSession) {
	t.Helper()
	total := 0
	sub := 0.0
	for _, l := range ss.CartItems {
		require.Greater(t, l.Quantity, 0)
		total += l.Quantity
		sub += LineTotal(l.Price, l.Quantity, l.SelectedCustomizations)
	}
	assert.Equal(t, total, ss.TotalItems)
	assert.InDelta(t, sub, ss.SubTotal, 1e-9)
}

func TestAddToCartMergesSameIdentity(t *testing.T) {
	s := New()
	s.SelectStore("s1")

	item := latte(oatMilk())
	s.AddToCart("s1", item)
	item.Quantity = 2
	s.AddToCart("s1", item)

	ss := s.Store("s1")
	require.Len(t, ss.CartItems, 1)
	assert.Equal(t, 3, ss.CartItems[0].Quantity)
	assert.Equal(t, 3, ss.TotalItems)
	assert.InDelta(t, (4.50+0.50)*3, ss.SubTotal, 1e-9)
	checkInvariants(t, ss)
}

func TestAddToCartDifferentCustomizationsStaySeparate(t *testing.T) {
	s := New()
	s.SelectStore("s1")

	s.AddToCart("s1", latte())
	s.AddToCart("s1", latte(oatMilk()))

	ss := s.Store("s1")
	require.Len(t, ss.CartItems, 2)
	assert.Equal(t, 2, ss.TotalItems)
	checkInvariants(t, ss)
}

func TestAddToCartNonPositiveQuantityCountsAsOne(t *testing.T) {
	s := New()
	item := latte()
	item.Quantity = 0
	s.AddToCart("s1", item)

	ss := s.Store("s1")
	require.Len(t, ss.CartItems, 1)
	assert.Equal(t, 1, ss.CartItems[0].Quantity)
}

func TestAddToCartDoesNotAliasCallerMemory(t *testing.T) {
	s := New()
	item := latte(oatMilk())
	s.AddToCart("s1", item)

	item.SelectedCustomizations[0].SelectedOptions[0].Price = 99

	ss := s.Store("s1")
	assert.InDelta(t, 0.50, ss.CartItems[0].SelectedCustomizations[0].SelectedOptions[0].Price, 1e-9)
}

func TestUpdateQuantitySetsAbsoluteValue(t *testing.T) {
	s := New()
	s.AddToCart("s1", latte())
	s.AddToCart("s1", latte())

	s.UpdateQuantity("s1", latte(), 5)

	ss := s.Store("s1")
	require.Len(t, ss.CartItems, 1)
	assert.Equal(t, 5, ss.CartItems[0].Quantity)
	checkInvariants(t, ss)
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	s := New()
	s.AddToCart("s1", latte())
	s.AddToCart("s1", latte(oatMilk()))

	s.UpdateQuantity("s1", latte(), 0)

	ss := s.Store("s1")
	require.Len(t, ss.CartItems, 1)
	assert.NotEmpty(t, ss.CartItems[0].SelectedCustomizations)
	checkInvariants(t, ss)
}

func TestUpdateQuantityMissingLinePositiveInserts(t *testing.T) {
	s := New()
	s.UpdateQuantity("s1", latte(), 2)

	ss := s.Store("s1")
	require.Len(t, ss.CartItems, 1)
	assert.Equal(t, 2, ss.CartItems[0].Quantity)
}

func TestUpdateQuantityMissingLineNonPositiveIsNoop(t *testing.T) {
	s := New()
	s.UpdateQuantity("s1", latte(), 0)
	assert.Empty(t, s.Store("s1").CartItems)
}

func TestClearCartPreservesOrderContext(t *testing.T) {
	s := New()
	s.AddToCart("s1", latte())
	s.SetOrderType("s1", OrderTypeInStore)
	num := "7"
	s.SetTableNumber("s1", &num)

	s.ClearCart("s1")

	ss := s.Store("s1")
	assert.Empty(t, ss.CartItems)
	assert.Equal(t, 0, ss.TotalItems)
	assert.Zero(t, ss.SubTotal)
	assert.Equal(t, OrderTypeInStore, ss.OrderType)
	require.NotNil(t, ss.TableNumber)
	assert.Equal(t, "7", *ss.TableNumber)
}

func TestDerivedTotalsAcrossLines(t *testing.T) {
	s := New()
	s.AddToCart("s1", CartLine{ID: "a", Price: 5, Quantity: 2})
	s.AddToCart("s1", CartLine{ID: "b", Price: 3, Quantity: 1})

	ss := s.Store("s1")
	assert.Equal(t, 3, ss.TotalItems)
	assert.InDelta(t, 13.0, ss.SubTotal, 1e-9)
}

func TestCartsAreIsolatedPerStore(t *testing.T) {
	s := New()
	s.AddToCart("s1", latte())
	s.AddToCart("s2", latte())
	s.ClearCart("s1")

	assert.Empty(t, s.Store("s1").CartItems)
	assert.Len(t, s.Store("s2").CartItems, 1)
}

func TestSelectStoreRecentList(t *testing.T) {
	s := New()
	s.SelectStore("a")
	s.SelectStore("b")
	s.SelectStore("a") // revisit: no duplicate, no reorder

	assert.Equal(t, []string{"a", "b"}, s.RecentStoreIDs())
	assert.Equal(t, "a", s.CurrentStoreID())
}

func TestSelectStoreRecentListCapsAtTen(t *testing.T) {
	s := New()
	for i := 0; i < 12; i++ {
		s.SelectStore(fmt.Sprintf("s%d", i))
	}

	got := s.RecentStoreIDs()
	require.Len(t, got, 10)
	assert.Equal(t, "s2", got[0])
	assert.Equal(t, "s11", got[9])
}

func TestResetTableAndResetOrder(t *testing.T) {
	s := New()
	num, code, id := "3", "abc", "o-1"
	status := "Pending"
	s.SetTableNumber("s1", &num)
	s.SetTableCode("s1", &code)
	s.SetOrderID("s1", &id)
	s.SetOrderStatus("s1", &status)

	s.ResetTable("s1")
	ss := s.Store("s1")
	assert.Nil(t, ss.TableNumber)
	assert.Nil(t, ss.TableCode)
	assert.NotNil(t, ss.OrderID)

	s.ResetOrder("s1")
	ss = s.Store("s1")
	assert.Nil(t, ss.OrderID)
	assert.Nil(t, ss.OrderStatus)
	assert.Nil(t, ss.OrderNumber)
}

func TestSetCurrencySymbol(t *testing.T) {
	s := New()
	s.SetCurrencySymbol("s1", "eur")
	assert.Equal(t, "€", s.Store("s1").CurrencySymbol)

	s.SetCurrencySymbol("s1", "XYZ")
	assert.Equal(t, "$", s.Store("s1").CurrencySymbol)
}

func TestDirtyTracking(t *testing.T) {
	s := New()
	assert.False(t, s.Dirty())

	s.SetSearchQuery("pizza")
	assert.True(t, s.Dirty())

	s.ClearDirty()
	assert.False(t, s.Dirty())
}

func TestRestoreFillsDefaultsAndRecomputes(t *testing.T) {
	s := Restore(State{
		Stores: map[string]*StoreSession{
			"s1": {
				CartItems: []CartLine{{ID: "x", Price: 2, Quantity: 3}},
				// stale derived totals in the snapshot
				TotalItems: 99,
				SubTotal:   99,
			},
		},
	})

	ss := s.Store("s1")
	assert.Equal(t, 3, ss.TotalItems)
	assert.InDelta(t, 6.0, ss.SubTotal, 1e-9)
	assert.Equal(t, OrderTypeNotSelected, ss.OrderType)
	assert.Equal(t, "$", ss.CurrencySymbol)
	assert.NotNil(t, s.RecentStoreIDs())
}

func TestCurrentWrappers(t *testing.T) {
	s := New()
	s.SelectStore("s1")
	s.AddToCurrentCart(latte())
	s.UpdateCurrentQuantity(latte(), 4)

	assert.Equal(t, 4, s.Store("s1").TotalItems)

	s.ClearCurrentCart()
	assert.Empty(t, s.Store("s1").CartItems)
}
