package cart

import (
	"orderdesk/internal/core/apperror"
	"orderdesk/internal/core/id"
	"orderdesk/internal/core/types"
	"orderdesk/internal/domain/catalog"
)

// Editor is the line item editing flow: given a catalog product it collects
// a {unitPrice, quantity} pair and validates it before the pair enters the
// cart. Stock is read once at open time and not re-checked at confirm time.
//
// Cancelling is simply dropping the editor; it holds no cart state.
type Editor struct {
	mode    Mode
	product catalog.Product
	tempID  id.ID
	editing bool
	stock   int

	quantity  int
	unitPrice types.Money
	priceSet  bool
}

// Confirmation is the validated pair an editor hands back to the cart.
type Confirmation struct {
	Quantity  int
	UnitPrice types.Money
}

// OpenAdd opens the editor for a product not yet in the cart.
// Defaults: quantity 1 and the mode's catalog price (sale price for sales
// carts, purchase price for purchase carts).
func OpenAdd(mode Mode, p catalog.Product) *Editor {
	price := p.SalePrice
	if mode == ModePurchase {
		price = p.PurchasePrice
	}
	return &Editor{
		mode:      mode,
		product:   p,
		stock:     p.StockQuantity,
		quantity:  1,
		unitPrice: price,
		priceSet:  true,
	}
}

// OpenEdit opens the editor pre-filled with an existing line's values.
func OpenEdit(mode Mode, p catalog.Product, line LineItem) *Editor {
	return &Editor{
		mode:      mode,
		product:   p,
		tempID:    line.TempID,
		editing:   true,
		stock:     p.StockQuantity,
		quantity:  line.Quantity,
		unitPrice: line.UnitPrice,
		priceSet:  true,
	}
}

// Editing reports whether the editor targets an existing line.
func (e *Editor) Editing() bool { return e.editing }

// TempID returns the targeted line's tempID in edit mode.
func (e *Editor) TempID() id.ID { return e.tempID }

// Product returns the catalog product the editor was opened with.
func (e *Editor) Product() catalog.Product { return e.product }

// Quantity returns the in-progress quantity.
func (e *Editor) Quantity() int { return e.quantity }

// UnitPrice returns the in-progress unit price.
func (e *Editor) UnitPrice() types.Money { return e.unitPrice }

// Stock returns the stock read at open time.
func (e *Editor) Stock() int { return e.stock }

// SetQuantity accepts raw numeric input: truncated to an integer, clamped
// to at least 1, and in sales mode additionally clamped to the stock read
// at open time.
func (e *Editor) SetQuantity(raw float64) {
	q := normalizeQuantity(raw)
	if e.mode == ModeSale && e.stock > 0 && q > e.stock {
		q = e.stock
	}
	e.quantity = q
}

// SetUnitPrice parses the user's price input. Empty input clears the price;
// confirmation then fails until a value is supplied.
func (e *Editor) SetUnitPrice(input string) error {
	if input == "" {
		e.priceSet = false
		return nil
	}
	price, err := types.NewMoneyFromString(input)
	if err != nil {
		return apperror.NewValidation("unit price must be numeric").
			WithDetail("field", "unitPrice").
			WithDetail("value", input)
	}
	e.unitPrice = price
	e.priceSet = true
	return nil
}

// SetUnitPriceValue sets an already-parsed price.
func (e *Editor) SetUnitPriceValue(price types.Money) {
	e.unitPrice = price
	e.priceSet = true
}

// Confirm validates the in-progress pair and returns it for the cart to
// apply. A sales-mode product with zero stock blocks confirmation entirely.
func (e *Editor) Confirm() (Confirmation, error) {
	if e.mode == ModeSale && e.stock <= 0 {
		return Confirmation{}, apperror.NewInsufficientStock(e.product.ID, e.quantity, 0)
	}

	if !e.priceSet {
		return Confirmation{}, apperror.NewValidation("unit price is required").
			WithDetail("field", "unitPrice")
	}

	quantity := e.quantity
	if quantity < 1 {
		quantity = 1
	}
	if e.mode == ModeSale && quantity > e.stock {
		quantity = e.stock
	}

	return Confirmation{
		Quantity:  quantity,
		UnitPrice: e.unitPrice,
	}, nil
}
