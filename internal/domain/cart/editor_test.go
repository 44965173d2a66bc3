package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderdesk/internal/core/apperror"
	"orderdesk/internal/core/types"
)

func TestOpenAddDefaultsSale(t *testing.T) {
	dir := testDirectory()
	e := OpenAdd(ModeSale, mustProduct(t, dir, 1))

	assert.False(t, e.Editing())
	assert.Equal(t, 1, e.Quantity())
	assert.True(t, e.UnitPrice().Equal(types.MustMoney("100")), "sales carts default to the sale price")
	assert.Equal(t, 10, e.Stock())
}

func TestOpenAddDefaultsPurchase(t *testing.T) {
	dir := testDirectory()
	e := OpenAdd(ModePurchase, mustProduct(t, dir, 1))

	assert.Equal(t, 1, e.Quantity())
	assert.True(t, e.UnitPrice().Equal(types.MustMoney("60")), "purchase carts default to the purchase price")
}

func TestOpenEditPrefills(t *testing.T) {
	dir := testDirectory()
	c := New(ModeSale, dir)
	line := c.AddOrMerge(mustProduct(t, dir, 1), 4, types.MustMoney("95"))

	e := OpenEdit(ModeSale, mustProduct(t, dir, 1), line)

	assert.True(t, e.Editing())
	assert.Equal(t, line.TempID, e.TempID())
	assert.Equal(t, 4, e.Quantity())
	assert.True(t, e.UnitPrice().Equal(types.MustMoney("95")))
}

func TestSaleQuantityClampedToStock(t *testing.T) {
	dir := testDirectory()
	e := OpenAdd(ModeSale, mustProduct(t, dir, 1)) // stock 10

	e.SetQuantity(15)
	assert.Equal(t, 10, e.Quantity())

	confirmed, err := e.Confirm()
	require.NoError(t, err)
	assert.Equal(t, 10, confirmed.Quantity, "confirmed quantity never exceeds stock at open time")
}

func TestPurchaseQuantityNotClamped(t *testing.T) {
	dir := testDirectory()
	e := OpenAdd(ModePurchase, mustProduct(t, dir, 1))

	e.SetQuantity(500)

	confirmed, err := e.Confirm()
	require.NoError(t, err)
	assert.Equal(t, 500, confirmed.Quantity)
}

func TestZeroStockBlocksSaleConfirm(t *testing.T) {
	dir := testDirectory()
	e := OpenAdd(ModeSale, mustProduct(t, dir, 7)) // stock 0

	_, err := e.Confirm()

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInsufficientStock, appErr.Code)
}

func TestZeroStockAllowedForPurchase(t *testing.T) {
	dir := testDirectory()
	e := OpenAdd(ModePurchase, mustProduct(t, dir, 7))

	confirmed, err := e.Confirm()

	require.NoError(t, err)
	assert.Equal(t, 1, confirmed.Quantity)
}

func TestSetUnitPrice(t *testing.T) {
	dir := testDirectory()
	e := OpenAdd(ModeSale, mustProduct(t, dir, 1))

	require.NoError(t, e.SetUnitPrice("12.50"))
	confirmed, err := e.Confirm()
	require.NoError(t, err)
	assert.True(t, confirmed.UnitPrice.Equal(types.MustMoney("12.50")))
}

func TestSetUnitPriceRejectsGarbage(t *testing.T) {
	dir := testDirectory()
	e := OpenAdd(ModeSale, mustProduct(t, dir, 1))

	err := e.SetUnitPrice("abc")

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestEmptyPriceBlocksConfirm(t *testing.T) {
	dir := testDirectory()
	e := OpenAdd(ModeSale, mustProduct(t, dir, 1))

	require.NoError(t, e.SetUnitPrice(""))
	_, err := e.Confirm()

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestEditorQuantityNormalization(t *testing.T) {
	dir := testDirectory()
	e := OpenAdd(ModeSale, mustProduct(t, dir, 1))

	e.SetQuantity(3.7)
	assert.Equal(t, 3, e.Quantity())

	e.SetQuantity(-2)
	assert.Equal(t, 1, e.Quantity())
}
