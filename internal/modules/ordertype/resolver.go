// Package ordertype implements the fulfillment-mode transition shared by the
// initial selection popup, the always-visible switcher and the URL
// query-parameter path. All three run through Resolver.Resolve so the guards
// and outcomes cannot drift apart.
package ordertype

import (
	"context"
	"errors"

	"tablebite.com/app/internal/modules/storeapi"
	"tablebite.com/app/internal/session"
	"tablebite.com/app/internal/shared/apperr"
)

// TableLookup resolves a table code for a store. Satisfied by
// *storeapi.Client.
type TableLookup interface {
	Table(ctx context.Context, storeID, tableCode string) (*storeapi.Table, error)
}

type Resolver struct {
	tables TableLookup
}

func NewResolver(tables TableLookup) *Resolver {
	return &Resolver{tables: tables}
}

// Resolve transitions the session for store.ID to target. On any rejection
// the session is left untouched.
//
// Guards and outcomes:
//   - target must appear in the store's supported_order_types; a Pickup
//     rejection distinguishes stores that disabled online payments;
//   - In-store needs tableCode resolved through the lookup: found commits
//     the table binding, and an Occupied table in a pay_later store adopts
//     the running order (status Pending); otherwise order tracking clears;
//   - Pickup and Delivery clear the table binding and order tracking.
func (r *Resolver) Resolve(ctx context.Context, sess *session.Service, store *storeapi.Store, target session.OrderType, tableCode string) error {
	switch target {
	case session.OrderTypeInStore:
		return r.resolveInStore(ctx, sess, store, tableCode)
	case session.OrderTypePickup:
		if !store.Supports(string(session.OrderTypePickup)) {
			if store.Services.PayOnlineDisabled() {
				return apperr.InvalidErr("store.notAvailableNoOnlinePayments", nil)
			}
			return apperr.InvalidErr("store.notAvailable", nil)
		}
	case session.OrderTypeDelivery:
		if !store.Supports(string(session.OrderTypeDelivery)) {
			return apperr.InvalidErr("store.notAvailable", nil)
		}
	default:
		return apperr.InvalidErr("store.errorSelectOrderType", nil)
	}

	// Pickup/Delivery: switching fulfillment mode abandons any bound table
	// and any in-progress order reference.
	sess.SetOrderType(store.ID, target)
	sess.ResetTable(store.ID)
	sess.ResetOrder(store.ID)
	return nil
}

func (r *Resolver) resolveInStore(ctx context.Context, sess *session.Service, store *storeapi.Store, tableCode string) error {
	if !store.Supports(string(session.OrderTypeInStore)) {
		return apperr.InvalidErr("store.notAvailable", nil)
	}
	if tableCode == "" {
		return apperr.InvalidErr("store.tableNotFound", nil)
	}

	table, err := r.tables.Table(ctx, store.ID, tableCode)
	if err != nil {
		if errors.Is(err, storeapi.ErrNotFound) {
			return apperr.NotFoundErr("store.tableNotFound")
		}
		return apperr.UnavailableErr("store.errorFetchingTable", err)
	}

	sess.SetOrderType(store.ID, session.OrderTypeInStore)
	sess.SetTableNumber(store.ID, ptr(table.TableNumber))
	sess.SetTableCode(store.ID, ptr(tableCode))

	// An occupied table in a pay-later store means an open tab order: rejoin
	// it. Anything else starts clean.
	if table.Status == storeapi.TableStatusOccupied && store.Settings.PayLater {
		sess.SetOrderStatus(store.ID, ptr("Pending"))
		sess.SetOrderID(store.ID, ptr(table.OrderID))
	} else {
		sess.ResetOrder(store.ID)
	}
	return nil
}

func ptr(s string) *string { return &s }
