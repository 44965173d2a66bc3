// Package cart implements the order-in-progress: an ordered list of line
// items plus header selections, mutated through discrete user actions and
// assembled into a create payload on finalize.
package cart

import (
	"time"

	"orderdesk/internal/core/id"
	"orderdesk/internal/core/types"
	"orderdesk/internal/domain/catalog"

	"github.com/shopspring/decimal"
)

// Mode distinguishes sales carts from purchase carts.
// It drives price defaulting in the line editor and whether quantities
// are clamped against stock.
type Mode string

const (
	ModeSale     Mode = "sale"
	ModePurchase Mode = "purchase"
)

// CounterpartyKind maps the cart mode to the directory it needs.
func (m Mode) CounterpartyKind() catalog.CounterpartyKind {
	if m == ModePurchase {
		return catalog.KindSupplier
	}
	return catalog.KindCustomer
}

// Valid reports whether the mode is one of the known values.
func (m Mode) Valid() bool {
	return m == ModeSale || m == ModePurchase
}

// LineItem is one product line within the cart.
//
// Reference and Description are snapshotted from the catalog at add time
// and never re-synced; they are what prints on the eventual order record.
type LineItem struct {
	// TempID is a client-facing token, stable for the item's cart lifetime.
	TempID id.ID `json:"tempId"`

	// ProductID references the catalog; immutable once added.
	ProductID int64 `json:"productId"`

	Reference   string `json:"reference"`
	Description string `json:"description"`

	// UnitPrice is a whole-currency-unit decimal, mutable via the editor.
	UnitPrice types.Money `json:"unitPrice"`

	// Quantity is always >= 1.
	Quantity int `json:"quantity"`
}

// Subtotal returns UnitPrice * Quantity. Derived, never stored.
func (l LineItem) Subtotal() types.Money {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Header holds the cart-level selections required before submission.
type Header struct {
	// CounterpartyID selects the customer (sales) or supplier (purchases).
	CounterpartyID *int64 `json:"counterpartyId"`

	// BankID selects the payment account.
	BankID *int64 `json:"bankId"`

	// Status is the selected order status name.
	Status *string `json:"status"`

	// OccurredAt is the order's effective date.
	OccurredAt time.Time `json:"occurredAt"`
}
