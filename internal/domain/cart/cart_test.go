package cart

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderdesk/internal/core/id"
	"orderdesk/internal/core/types"
	"orderdesk/internal/domain/catalog"
)

func testDirectory() *catalog.Directory {
	products := []catalog.Product{
		{ID: 1, Reference: "REF-001", Description: "Teclado", SalePrice: types.MustMoney("100"), PurchasePrice: types.MustMoney("60"), StockQuantity: 10},
		{ID: 2, Reference: "REF-002", Description: "Mouse", SalePrice: types.MustMoney("10"), PurchasePrice: types.MustMoney("6"), StockQuantity: 25},
		{ID: 3, Reference: "REF-003", Description: "Monitor", SalePrice: types.MustMoney("10"), PurchasePrice: types.MustMoney("7"), StockQuantity: 5},
		{ID: 4, Reference: "REF-004", Description: "Cable HDMI", SalePrice: types.MustMoney("10"), PurchasePrice: types.MustMoney("4"), StockQuantity: 40},
		{ID: 5, Reference: "REF-005", Description: "Webcam", SalePrice: types.MustMoney("10"), PurchasePrice: types.MustMoney("5"), StockQuantity: 12},
		{ID: 6, Reference: "REF-006", Description: "Parlantes", SalePrice: types.MustMoney("10"), PurchasePrice: types.MustMoney("8"), StockQuantity: 9},
		{ID: 7, Reference: "REF-007", Description: "Impresora", SalePrice: types.MustMoney("250"), PurchasePrice: types.MustMoney("180"), StockQuantity: 0},
	}
	counterparties := []catalog.Counterparty{
		{ID: 1, Label: "Cliente Uno"},
		{ID: 2, Label: "Cliente Dos"},
	}
	banks := []catalog.Bank{
		{ID: 1, Name: "Banco Norte"},
		{ID: 2, Name: "Efectivo"},
	}
	statuses := []catalog.Status{
		{ID: 1, Name: "Contado"},
		{ID: 2, Name: "Credito"},
		{ID: 3, Name: "Cancelada"},
	}
	return catalog.NewDirectory(catalog.KindCustomer, products, counterparties, banks, statuses)
}

func mustProduct(t *testing.T, dir *catalog.Directory, productID int64) catalog.Product {
	t.Helper()
	p, ok := dir.ProductByID(productID)
	require.True(t, ok, "product %d not in test directory", productID)
	return p
}

func TestNewAppliesHeaderDefaults(t *testing.T) {
	c := New(ModeSale, testDirectory())

	header := c.Header()
	require.NotNil(t, header.BankID)
	assert.Equal(t, int64(2), *header.BankID, "should default to the efectivo bank")
	require.NotNil(t, header.Status)
	assert.Equal(t, "Contado", *header.Status)
	assert.Nil(t, header.CounterpartyID)
	assert.False(t, header.OccurredAt.IsZero())
	assert.Zero(t, header.OccurredAt.Nanosecond(), "occurredAt truncated to whole seconds")
	assert.Equal(t, 1, c.CurrentPage())
}

func TestNewWithoutMatchingDefaults(t *testing.T) {
	dir := catalog.NewDirectory(catalog.KindCustomer, nil, nil,
		[]catalog.Bank{{ID: 1, Name: "Banco Norte"}},
		[]catalog.Status{{ID: 3, Name: "Cancelada"}},
	)
	c := New(ModeSale, dir)

	assert.Nil(t, c.Header().BankID)
	assert.Nil(t, c.Header().Status)
}

func TestAddOrMergeNewItem(t *testing.T) {
	dir := testDirectory()
	c := New(ModeSale, dir)

	line := c.AddOrMerge(mustProduct(t, dir, 1), 2, types.MustMoney("100"))

	assert.Equal(t, 1, c.Len())
	assert.Equal(t, int64(1), line.ProductID)
	assert.Equal(t, "REF-001", line.Reference)
	assert.Equal(t, "Teclado", line.Description)
	assert.Equal(t, 2, line.Quantity)
	assert.True(t, line.Subtotal().Equal(types.MustMoney("200")))
	assert.True(t, c.Total().Equal(types.MustMoney("200")))
	assert.False(t, id.IsNil(line.TempID))
}

func TestAddOrMergeSameProduct(t *testing.T) {
	dir := testDirectory()
	c := New(ModeSale, dir)

	first := c.AddOrMerge(mustProduct(t, dir, 1), 2, types.MustMoney("100"))
	merged := c.AddOrMerge(mustProduct(t, dir, 1), 3, types.MustMoney("120"))

	assert.Equal(t, 1, c.Len(), "re-adding a product must not create a second line")
	assert.Equal(t, first.TempID, merged.TempID, "identity survives the merge")
	assert.Equal(t, 5, merged.Quantity, "quantities sum")
	assert.True(t, merged.UnitPrice.Equal(types.MustMoney("120")), "the new price wins")
	assert.True(t, c.Total().Equal(types.MustMoney("600")))
}

func TestAddOrMergeSequenceKeepsSingleLine(t *testing.T) {
	dir := testDirectory()
	c := New(ModeSale, dir)
	p := mustProduct(t, dir, 2)

	quantities := []int{1, 4, 2, 3}
	wantSum := 0
	var lastPrice types.Money
	for i, q := range quantities {
		lastPrice = types.NewMoneyFromInt(int64(10 + i))
		c.AddOrMerge(p, q, lastPrice)
		wantSum += q
	}

	require.Equal(t, 1, c.Len())
	line := c.Items()[0]
	assert.Equal(t, wantSum, line.Quantity)
	assert.True(t, line.UnitPrice.Equal(lastPrice))
}

func TestDecrementStopsAtFloor(t *testing.T) {
	dir := testDirectory()
	c := New(ModeSale, dir)
	line := c.AddOrMerge(mustProduct(t, dir, 1), 1, types.MustMoney("100"))

	c.DecrementQuantity(line.TempID)

	got, ok := c.Find(line.TempID)
	require.True(t, ok)
	assert.Equal(t, 1, got.Quantity, "decrement at quantity 1 is a no-op")
}

func TestIncrementAndDecrement(t *testing.T) {
	dir := testDirectory()
	c := New(ModeSale, dir)
	line := c.AddOrMerge(mustProduct(t, dir, 1), 3, types.MustMoney("100"))

	c.IncrementQuantity(line.TempID)
	c.IncrementQuantity(line.TempID)
	c.DecrementQuantity(line.TempID)

	got, _ := c.Find(line.TempID)
	assert.Equal(t, 4, got.Quantity)
}

func TestSetQuantityNormalization(t *testing.T) {
	tests := []struct {
		name string
		raw  float64
		want int
	}{
		{"truncates fraction", 7.9, 7},
		{"zero clamps to one", 0, 1},
		{"negative clamps to one", -5, 1},
		{"NaN treated as one", math.NaN(), 1},
		{"positive infinity treated as one", math.Inf(1), 1},
		{"negative infinity treated as one", math.Inf(-1), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := testDirectory()
			c := New(ModeSale, dir)
			line := c.AddOrMerge(mustProduct(t, dir, 1), 2, types.MustMoney("100"))

			c.SetQuantity(line.TempID, tt.raw)

			got, _ := c.Find(line.TempID)
			assert.Equal(t, tt.want, got.Quantity)
			assert.GreaterOrEqual(t, got.Quantity, 1)
		})
	}
}

func TestEditExisting(t *testing.T) {
	dir := testDirectory()
	c := New(ModeSale, dir)
	line := c.AddOrMerge(mustProduct(t, dir, 1), 2, types.MustMoney("100"))

	c.EditExisting(line.TempID, 4, types.MustMoney("95.50"))

	got, ok := c.Find(line.TempID)
	require.True(t, ok)
	assert.Equal(t, 4, got.Quantity)
	assert.True(t, got.UnitPrice.Equal(types.MustMoney("95.50")))
	assert.Equal(t, line.TempID, got.TempID)
	assert.Equal(t, line.ProductID, got.ProductID)
}

func TestEditExistingUnknownTempIDIsNoop(t *testing.T) {
	dir := testDirectory()
	c := New(ModeSale, dir)
	c.AddOrMerge(mustProduct(t, dir, 1), 2, types.MustMoney("100"))

	c.EditExisting(id.New(), 99, types.MustMoney("1"))

	assert.Equal(t, 1, c.Len())
	assert.Equal(t, 2, c.Items()[0].Quantity)
}

func TestSnapshotNotResyncedWithCatalog(t *testing.T) {
	dir := testDirectory()
	c := New(ModeSale, dir)
	p := mustProduct(t, dir, 1)
	line := c.AddOrMerge(p, 1, p.SalePrice)

	// later catalog changes must not reach lines already in the cart
	dir.Products[0].Description = "Teclado mecanico"

	got, _ := c.Find(line.TempID)
	assert.Equal(t, "Teclado", got.Description)
}

func TestPaginationAcrossSixItems(t *testing.T) {
	dir := testDirectory()
	c := New(ModeSale, dir)

	for productID := int64(1); productID <= 6; productID++ {
		c.AddOrMerge(mustProduct(t, dir, productID), 1, types.MustMoney("10"))
	}

	assert.Equal(t, 2, c.Page().PageCount)
	assert.Equal(t, 2, c.CurrentPage(), "adding the sixth item lands the view on page 2")

	c.SetPage(1)
	page := c.Page()
	assert.Len(t, page.Items, 5)
	assert.Equal(t, 0, page.StartIndex)
	assert.Equal(t, 5, page.EndIndex)

	c.SetPage(2)
	page = c.Page()
	assert.Len(t, page.Items, 1)
	assert.Equal(t, int64(6), page.Items[0].ProductID)
}

func TestRemoveClampsCurrentPage(t *testing.T) {
	dir := testDirectory()
	c := New(ModeSale, dir)

	for productID := int64(1); productID <= 6; productID++ {
		c.AddOrMerge(mustProduct(t, dir, productID), 1, types.MustMoney("10"))
	}
	c.SetPage(2)
	sixth := c.Page().Items[0]

	c.Remove(sixth.TempID)

	assert.Equal(t, 5, c.Len())
	assert.Equal(t, 1, c.Page().PageCount)
	assert.Equal(t, 1, c.CurrentPage(), "page steps back when its last item is removed")
}

func TestRemoveUnknownTempIDIsNoop(t *testing.T) {
	dir := testDirectory()
	c := New(ModeSale, dir)
	c.AddOrMerge(mustProduct(t, dir, 1), 1, types.MustMoney("10"))

	c.Remove(id.New())

	assert.Equal(t, 1, c.Len())
}

func TestCurrentPageStaysInBounds(t *testing.T) {
	dir := testDirectory()
	c := New(ModeSale, dir)

	var tempIDs []id.ID
	for productID := int64(1); productID <= 6; productID++ {
		line := c.AddOrMerge(mustProduct(t, dir, productID), 1, types.MustMoney("10"))
		tempIDs = append(tempIDs, line.TempID)
		count := c.Page().PageCount
		assert.GreaterOrEqual(t, c.CurrentPage(), 1)
		assert.LessOrEqual(t, c.CurrentPage(), count)
	}

	for _, tempID := range tempIDs {
		c.Remove(tempID)
		count := c.Page().PageCount
		assert.GreaterOrEqual(t, c.CurrentPage(), 1)
		assert.LessOrEqual(t, c.CurrentPage(), count)
	}
}

func TestTotalRecomputed(t *testing.T) {
	dir := testDirectory()
	c := New(ModeSale, dir)

	a := c.AddOrMerge(mustProduct(t, dir, 1), 2, types.MustMoney("100.25"))
	b := c.AddOrMerge(mustProduct(t, dir, 2), 3, types.MustMoney("9.99"))
	assert.True(t, c.Total().Equal(types.MustMoney("230.47")))

	c.SetQuantity(a.TempID, 1)
	assert.True(t, c.Total().Equal(types.MustMoney("130.22")))

	c.Remove(b.TempID)
	assert.True(t, c.Total().Equal(types.MustMoney("100.25")))

	c.Reset()
	assert.True(t, c.Total().IsZero())
}

func TestCanFinalize(t *testing.T) {
	dir := testDirectory()
	c := New(ModeSale, dir)

	assert.False(t, c.CanFinalize(), "empty cart cannot finalize")

	c.AddOrMerge(mustProduct(t, dir, 1), 1, types.MustMoney("100"))
	assert.False(t, c.CanFinalize(), "counterparty still missing")
	assert.Contains(t, c.MissingForFinalize(), "counterparty")

	c.SetCounterparty(1)
	assert.True(t, c.CanFinalize(), "bank and status came from defaults")
	assert.Empty(t, c.MissingForFinalize())
}

func TestCanFinalizeWithoutBank(t *testing.T) {
	// directory without a cash bank leaves the bank unselected
	dir := catalog.NewDirectory(catalog.KindCustomer,
		[]catalog.Product{{ID: 1, Reference: "REF-001", Description: "Teclado", SalePrice: types.MustMoney("100"), PurchasePrice: types.MustMoney("60"), StockQuantity: 10}},
		[]catalog.Counterparty{{ID: 1, Label: "Cliente Uno"}},
		[]catalog.Bank{{ID: 1, Name: "Banco Norte"}},
		[]catalog.Status{{ID: 1, Name: "Contado"}},
	)
	c := New(ModeSale, dir)
	p, _ := dir.ProductByID(1)
	c.AddOrMerge(p, 1, types.MustMoney("100"))
	c.SetCounterparty(1)

	assert.False(t, c.CanFinalize())
	assert.Equal(t, []string{"bank"}, c.MissingForFinalize())
}

func TestResetClearsEverything(t *testing.T) {
	dir := testDirectory()
	c := New(ModeSale, dir)

	c.AddOrMerge(mustProduct(t, dir, 1), 2, types.MustMoney("100"))
	c.AddOrMerge(mustProduct(t, dir, 2), 1, types.MustMoney("10"))
	c.SetCounterparty(1)
	c.SetBank(1)
	c.SetStatus("Credito")
	stale := time.Date(2020, 3, 14, 15, 9, 26, 0, time.Local)
	c.SetOccurredAt(stale)

	c.Reset()

	assert.Zero(t, c.Len())
	assert.Equal(t, 1, c.CurrentPage())
	header := c.Header()
	assert.Nil(t, header.CounterpartyID)
	require.NotNil(t, header.BankID)
	assert.Equal(t, int64(2), *header.BankID, "bank back to the efectivo default")
	require.NotNil(t, header.Status)
	assert.Equal(t, "Contado", *header.Status, "status back to the contado default")
	assert.NotEqual(t, stale, header.OccurredAt, "occurredAt reinitialized to a fresh now")
	assert.True(t, c.Total().IsZero())
}

func TestSetOccurredAtTruncatesToSeconds(t *testing.T) {
	c := New(ModeSale, testDirectory())

	c.SetOccurredAt(time.Date(2026, 8, 30, 10, 11, 12, 987654321, time.UTC))

	assert.Equal(t, time.Date(2026, 8, 30, 10, 11, 12, 0, time.UTC), c.Header().OccurredAt)
}
