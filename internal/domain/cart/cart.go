package cart

import (
	"math"
	"time"

	"orderdesk/internal/core/id"
	"orderdesk/internal/core/types"
	"orderdesk/internal/domain/catalog"
)

// PageSize is the fixed number of line items per cart page.
const PageSize = 5

// Cart owns the ordered line item list and header selections for one
// order-in-progress. It is not safe for concurrent use; the session layer
// serializes access.
type Cart struct {
	mode Mode

	items  []LineItem
	header Header
	page   int

	// defaults captured from the directory at construction,
	// re-applied by Reset.
	defaultBankID *int64
	defaultStatus *string
}

// New creates an empty cart with header defaults resolved from the
// directory: the cash/efectivo bank and the contado (non-cancelled) status,
// when present. OccurredAt starts at now, truncated to whole seconds.
func New(mode Mode, dir *catalog.Directory) *Cart {
	c := &Cart{
		mode:  mode,
		items: make([]LineItem, 0),
		page:  1,
	}
	if dir != nil {
		if b := dir.DefaultBank(); b != nil {
			bankID := b.ID
			c.defaultBankID = &bankID
		}
		if st := dir.DefaultStatus(); st != nil {
			name := st.Name
			c.defaultStatus = &name
		}
	}
	c.applyDefaults()
	return c
}

func (c *Cart) applyDefaults() {
	c.header = Header{
		OccurredAt: time.Now().Truncate(time.Second),
	}
	if c.defaultBankID != nil {
		bankID := *c.defaultBankID
		c.header.BankID = &bankID
	}
	if c.defaultStatus != nil {
		status := *c.defaultStatus
		c.header.Status = &status
	}
}

// Mode returns the cart mode.
func (c *Cart) Mode() Mode { return c.mode }

// Len returns the number of line items.
func (c *Cart) Len() int { return len(c.items) }

// Items returns a copy of the line item list in cart order.
func (c *Cart) Items() []LineItem {
	out := make([]LineItem, len(c.items))
	copy(out, c.items)
	return out
}

// Header returns the current header selections.
func (c *Cart) Header() Header { return c.header }

// Find returns the line item with the given tempID.
func (c *Cart) Find(tempID id.ID) (LineItem, bool) {
	if i := c.indexOf(tempID); i >= 0 {
		return c.items[i], true
	}
	return LineItem{}, false
}

func (c *Cart) indexOf(tempID id.ID) int {
	for i := range c.items {
		if c.items[i].TempID == tempID {
			return i
		}
	}
	return -1
}

func (c *Cart) indexOfProduct(productID int64) int {
	for i := range c.items {
		if c.items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// AddOrMerge adds a product line or merges it into an existing line for the
// same product. The merge sums quantities but overwrites the price with the
// incoming one. The current page moves to the page holding the affected item.
func (c *Cart) AddOrMerge(p catalog.Product, quantity int, unitPrice types.Money) LineItem {
	quantity = normalizeQuantity(float64(quantity))

	idx := c.indexOfProduct(p.ID)
	if idx >= 0 {
		c.items[idx].Quantity += quantity
		c.items[idx].UnitPrice = unitPrice
	} else {
		c.items = append(c.items, LineItem{
			TempID:      id.New(),
			ProductID:   p.ID,
			Reference:   p.Reference,
			Description: p.Description,
			UnitPrice:   unitPrice,
			Quantity:    quantity,
		})
		idx = len(c.items) - 1
	}

	c.page = pageFor(idx)
	return c.items[idx]
}

// EditExisting replaces quantity and price of an existing line in place.
// Identity (tempID, productID) is unchanged. Unknown tempID is a no-op.
func (c *Cart) EditExisting(tempID id.ID, quantity int, unitPrice types.Money) {
	idx := c.indexOf(tempID)
	if idx < 0 {
		return
	}
	c.items[idx].Quantity = normalizeQuantity(float64(quantity))
	c.items[idx].UnitPrice = unitPrice
}

// IncrementQuantity adds one to the line's quantity.
func (c *Cart) IncrementQuantity(tempID id.ID) {
	if idx := c.indexOf(tempID); idx >= 0 {
		c.items[idx].Quantity++
	}
}

// DecrementQuantity subtracts one from the line's quantity,
// stopping at the floor of 1.
func (c *Cart) DecrementQuantity(tempID id.ID) {
	if idx := c.indexOf(tempID); idx >= 0 && c.items[idx].Quantity > 1 {
		c.items[idx].Quantity--
	}
}

// SetQuantity accepts raw numeric input, truncates it to an integer and
// clamps to [1, +inf). Malformed (NaN/Inf) input is treated as 1.
func (c *Cart) SetQuantity(tempID id.ID, raw float64) {
	if idx := c.indexOf(tempID); idx >= 0 {
		c.items[idx].Quantity = normalizeQuantity(raw)
	}
}

// Remove deletes the line with the given tempID. When the removal empties
// the current page, the page steps back so it never points past the end.
func (c *Cart) Remove(tempID id.ID) {
	idx := c.indexOf(tempID)
	if idx < 0 {
		return
	}
	c.items = append(c.items[:idx], c.items[idx+1:]...)
	c.clampPage()
}

// Reset clears all items and header selections and reinitializes
// OccurredAt to a fresh now.
func (c *Cart) Reset() {
	c.items = c.items[:0]
	c.page = 1
	c.applyDefaults()
}

// Total returns the sum of subtotals over all lines. Recomputed on every
// call, never cached.
func (c *Cart) Total() types.Money {
	total := types.Zero()
	for _, item := range c.items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// SetCounterparty selects the counterparty.
func (c *Cart) SetCounterparty(counterpartyID int64) {
	c.header.CounterpartyID = &counterpartyID
}

// SetBank selects the payment account.
func (c *Cart) SetBank(bankID int64) {
	c.header.BankID = &bankID
}

// SetStatus selects the order status by name.
func (c *Cart) SetStatus(status string) {
	c.header.Status = &status
}

// SetOccurredAt sets the order's effective date, truncated to whole seconds.
func (c *Cart) SetOccurredAt(t time.Time) {
	c.header.OccurredAt = t.Truncate(time.Second)
}

// CanFinalize reports whether the cart is complete enough to submit:
// at least one line and counterparty, bank and status all selected.
func (c *Cart) CanFinalize() bool {
	return len(c.items) > 0 &&
		c.header.CounterpartyID != nil &&
		c.header.BankID != nil &&
		c.header.Status != nil
}

// MissingForFinalize names the pieces CanFinalize still lacks.
func (c *Cart) MissingForFinalize() []string {
	var missing []string
	if len(c.items) == 0 {
		missing = append(missing, "items")
	}
	if c.header.CounterpartyID == nil {
		missing = append(missing, "counterparty")
	}
	if c.header.BankID == nil {
		missing = append(missing, "bank")
	}
	if c.header.Status == nil {
		missing = append(missing, "status")
	}
	return missing
}

// CurrentPage returns the 1-based page the cart view is on.
func (c *Cart) CurrentPage() int { return c.page }

// SetPage moves the cart view, clamped to [1, pageCount].
func (c *Cart) SetPage(page int) {
	c.page = page
	c.clampPage()
	if c.page < 1 {
		c.page = 1
	}
}

// Page returns the windowed view of the current page.
func (c *Cart) Page() Page {
	return Paginate(c.items, c.page, PageSize)
}

func (c *Cart) clampPage() {
	if max := PageCount(len(c.items), PageSize); c.page > max {
		c.page = max
	}
	if c.page < 1 {
		c.page = 1
	}
}

// pageFor returns the 1-based page holding the item at index.
func pageFor(index int) int {
	return index/PageSize + 1
}

// normalizeQuantity truncates to an integer and clamps to the floor of 1.
func normalizeQuantity(raw float64) int {
	if math.IsNaN(raw) || math.IsInf(raw, 0) {
		return 1
	}
	q := int(math.Trunc(raw))
	if q < 1 {
		return 1
	}
	return q
}
