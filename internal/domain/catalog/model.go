// Package catalog provides the read-only directory a cart session works
// against: products, counterparties, banks and order statuses. The directory
// is loaded fully at session open and never refreshed for the session's life.
package catalog

import (
	"strings"

	"orderdesk/internal/core/types"
)

// CounterpartyKind selects which counterparty directory a session needs.
type CounterpartyKind string

const (
	KindCustomer CounterpartyKind = "customer" // sales carts
	KindSupplier CounterpartyKind = "supplier" // purchase carts
)

// Product is one sellable/purchasable item in the directory.
type Product struct {
	ID          int64  `json:"id"`
	Reference   string `json:"reference"`
	Description string `json:"description"`

	// SalePrice is the default unit price for sales carts.
	SalePrice types.Money `json:"salePrice"`

	// PurchasePrice is the default unit price for purchase carts.
	PurchasePrice types.Money `json:"purchasePrice"`

	// StockQuantity is the available stock at load time.
	// Sales carts clamp line quantities against it.
	StockQuantity int `json:"stockQuantity"`
}

// Counterparty is a customer or supplier, depending on the directory kind.
type Counterparty struct {
	ID    int64  `json:"id"`
	Label string `json:"label"`
}

// Bank is a payment account.
type Bank struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Status is an order status as named by the external service.
type Status struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Directory is the full catalog snapshot for one cart session.
type Directory struct {
	Kind           CounterpartyKind
	Products       []Product
	Counterparties []Counterparty
	Banks          []Bank
	Statuses       []Status

	statusIDs map[string]int64
}

// NewDirectory builds a Directory and indexes the status name to ID map.
func NewDirectory(kind CounterpartyKind, products []Product, counterparties []Counterparty, banks []Bank, statuses []Status) *Directory {
	ids := make(map[string]int64, len(statuses))
	for _, st := range statuses {
		ids[st.Name] = st.ID
	}
	return &Directory{
		Kind:           kind,
		Products:       products,
		Counterparties: counterparties,
		Banks:          banks,
		Statuses:       statuses,
		statusIDs:      ids,
	}
}

// ProductByID returns a product by its identifier.
func (d *Directory) ProductByID(id int64) (Product, bool) {
	for _, p := range d.Products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// CounterpartyByID returns a counterparty by its identifier.
func (d *Directory) CounterpartyByID(id int64) (Counterparty, bool) {
	for _, cp := range d.Counterparties {
		if cp.ID == id {
			return cp, true
		}
	}
	return Counterparty{}, false
}

// BankByID returns a bank by its identifier.
func (d *Directory) BankByID(id int64) (Bank, bool) {
	for _, b := range d.Banks {
		if b.ID == id {
			return b, true
		}
	}
	return Bank{}, false
}

// HasStatus reports whether the directory carries the named status.
func (d *Directory) HasStatus(name string) bool {
	_, ok := d.statusIDs[name]
	return ok
}

// StatusID maps a status name to its external identifier.
func (d *Directory) StatusID(name string) (int64, bool) {
	id, ok := d.statusIDs[name]
	return id, ok
}

// DefaultBank returns the first bank whose name matches cash/efectivo,
// or nil when no bank qualifies.
func (d *Directory) DefaultBank() *Bank {
	for i := range d.Banks {
		name := strings.ToLower(d.Banks[i].Name)
		if strings.Contains(name, "efectivo") || strings.Contains(name, "cash") {
			return &d.Banks[i]
		}
	}
	return nil
}

// DefaultStatus returns the first status matching "contado" and not matching
// "cancelada", or nil when no status qualifies.
func (d *Directory) DefaultStatus() *Status {
	for i := range d.Statuses {
		name := strings.ToLower(d.Statuses[i].Name)
		if strings.Contains(name, "contado") && !strings.Contains(name, "cancelada") {
			return &d.Statuses[i]
		}
	}
	return nil
}
