package dto

import (
	"github.com/shopspring/decimal"

	"orderdesk/internal/domain/catalog"
)

// ProductResponse is one catalog product as served to the dashboard.
type ProductResponse struct {
	ID            int64           `json:"id"`
	Reference     string          `json:"reference"`
	Description   string          `json:"description"`
	SalePrice     decimal.Decimal `json:"salePrice"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	StockQuantity int             `json:"stockQuantity"`
}

// CounterpartyResponse is one customer or supplier entry.
type CounterpartyResponse struct {
	ID    int64  `json:"id"`
	Label string `json:"label"`
}

// BankResponse is one payment account entry.
type BankResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// StatusResponse is one order status entry.
type StatusResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CatalogResponse is the full directory snapshot for a session.
type CatalogResponse struct {
	Counterparty   string                 `json:"counterpartyKind"`
	Products       []ProductResponse      `json:"products"`
	Counterparties []CounterpartyResponse `json:"counterparties"`
	Banks          []BankResponse         `json:"banks"`
	Statuses       []StatusResponse       `json:"statuses"`
}

// FromDirectory maps a catalog directory to its response shape.
func FromDirectory(d *catalog.Directory) CatalogResponse {
	products := make([]ProductResponse, len(d.Products))
	for i, p := range d.Products {
		products[i] = ProductResponse{
			ID:            p.ID,
			Reference:     p.Reference,
			Description:   p.Description,
			SalePrice:     p.SalePrice,
			PurchasePrice: p.PurchasePrice,
			StockQuantity: p.StockQuantity,
		}
	}

	counterparties := make([]CounterpartyResponse, len(d.Counterparties))
	for i, cp := range d.Counterparties {
		counterparties[i] = CounterpartyResponse{ID: cp.ID, Label: cp.Label}
	}

	banks := make([]BankResponse, len(d.Banks))
	for i, b := range d.Banks {
		banks[i] = BankResponse{ID: b.ID, Name: b.Name}
	}

	statuses := make([]StatusResponse, len(d.Statuses))
	for i, st := range d.Statuses {
		statuses[i] = StatusResponse{ID: st.ID, Name: st.Name}
	}

	return CatalogResponse{
		Counterparty:   string(d.Kind),
		Products:       products,
		Counterparties: counterparties,
		Banks:          banks,
		Statuses:       statuses,
	}
}
