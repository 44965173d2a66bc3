package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"orderdesk/internal/domain/cart"
)

// --- Requests ---

// OpenSessionRequest starts a new cart session.
type OpenSessionRequest struct {
	Mode string `json:"mode" binding:"required,oneof=sale purchase"`
}

// AddLineRequest adds a product line through the editor's add flow.
// Quantity and unitPrice are optional; omitted values take the editor
// defaults (quantity 1, the mode's catalog price).
type AddLineRequest struct {
	ProductID int64            `json:"productId" binding:"required"`
	Quantity  *float64         `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unitPrice"`
}

// UpdateLineRequest replaces a line's quantity and price through the
// editor's edit flow. The price must be present.
type UpdateLineRequest struct {
	Quantity  float64          `json:"quantity" binding:"required"`
	UnitPrice *decimal.Decimal `json:"unitPrice" binding:"required"`
}

// SetQuantityRequest sets a line quantity from raw numeric input.
type SetQuantityRequest struct {
	Quantity float64 `json:"quantity"`
}

// SetHeaderRequest updates header selections; nil fields are left as-is.
type SetHeaderRequest struct {
	CounterpartyID *int64     `json:"counterpartyId"`
	BankID         *int64     `json:"bankId"`
	Status         *string    `json:"status"`
	OccurredAt     *time.Time `json:"occurredAt"`
}

// --- Responses ---

// LineItemResponse is one cart line with its derived subtotal.
type LineItemResponse struct {
	TempID      string          `json:"tempId"`
	ProductID   int64           `json:"productId"`
	Reference   string          `json:"reference"`
	Description string          `json:"description"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Quantity    int             `json:"quantity"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// HeaderResponse is the cart's header selections.
type HeaderResponse struct {
	CounterpartyID *int64    `json:"counterpartyId"`
	BankID         *int64    `json:"bankId"`
	Status         *string   `json:"status"`
	OccurredAt     time.Time `json:"occurredAt"`
}

// CartResponse is the paginated cart view.
type CartResponse struct {
	Mode        string             `json:"mode"`
	Items       []LineItemResponse `json:"items"`
	Page        int                `json:"page"`
	PageCount   int                `json:"pageCount"`
	StartIndex  int                `json:"startIndex"`
	EndIndex    int                `json:"endIndex"`
	TotalItems  int                `json:"totalItems"`
	Total       decimal.Decimal    `json:"total"`
	Header      HeaderResponse     `json:"header"`
	CanFinalize bool               `json:"canFinalize"`
}

// SessionResponse is returned when a session is opened: the session token,
// the empty cart and the full catalog snapshot the page works against.
type SessionResponse struct {
	SessionID string          `json:"sessionId"`
	Cart      CartResponse    `json:"cart"`
	Catalog   CatalogResponse `json:"catalog"`
}

// EditorResponse is the prefilled line editor form.
type EditorResponse struct {
	Editing   bool            `json:"editing"`
	TempID    string          `json:"tempId,omitempty"`
	Product   ProductResponse `json:"product"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Stock     int             `json:"stock"`

	// Blocked marks a sales-mode product whose stock is zero: quantity
	// entry is disabled and confirmation will be refused.
	Blocked bool `json:"blocked"`
}

// FromLineItem maps a cart line to its response shape.
func FromLineItem(l cart.LineItem) LineItemResponse {
	return LineItemResponse{
		TempID:      l.TempID.String(),
		ProductID:   l.ProductID,
		Reference:   l.Reference,
		Description: l.Description,
		UnitPrice:   l.UnitPrice,
		Quantity:    l.Quantity,
		Subtotal:    l.Subtotal(),
	}
}

// FromCart maps the cart's current page view to its response shape.
func FromCart(c *cart.Cart) CartResponse {
	page := c.Page()
	items := make([]LineItemResponse, len(page.Items))
	for i, item := range page.Items {
		items[i] = FromLineItem(item)
	}

	header := c.Header()
	return CartResponse{
		Mode:        string(c.Mode()),
		Items:       items,
		Page:        c.CurrentPage(),
		PageCount:   page.PageCount,
		StartIndex:  page.StartIndex,
		EndIndex:    page.EndIndex,
		TotalItems:  c.Len(),
		Total:       c.Total(),
		Header: HeaderResponse{
			CounterpartyID: header.CounterpartyID,
			BankID:         header.BankID,
			Status:         header.Status,
			OccurredAt:     header.OccurredAt,
		},
		CanFinalize: c.CanFinalize(),
	}
}

// FromEditor maps an open editor to its response shape.
func FromEditor(e *cart.Editor, mode cart.Mode) EditorResponse {
	p := e.Product()
	resp := EditorResponse{
		Editing:   e.Editing(),
		Quantity:  e.Quantity(),
		UnitPrice: e.UnitPrice(),
		Stock:     e.Stock(),
		Blocked:   mode == cart.ModeSale && e.Stock() <= 0,
		Product: ProductResponse{
			ID:            p.ID,
			Reference:     p.Reference,
			Description:   p.Description,
			SalePrice:     p.SalePrice,
			PurchasePrice: p.PurchasePrice,
			StockQuantity: p.StockQuantity,
		},
	}
	if e.Editing() {
		resp.TempID = e.TempID().String()
	}
	return resp
}
