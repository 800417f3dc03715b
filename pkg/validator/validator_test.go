package validator

import (
	"testing"

	"go-store-console/internal/apperr"
	"go-store-console/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductInputRules(t *testing.T) {
	valid := model.ProductInput{Name: "Milk", Category: "Dairy", Price: 2.5, CostPrice: 1.9, StockQuantity: 12}
	assert.Empty(t, ValidateStruct(valid))

	blank := valid
	blank.Name = "   "
	errs := ValidateStruct(blank)
	require.Len(t, errs, 1)
	assert.Equal(t, "ProductInput.Name", errs[0].FailedField)
	assert.Equal(t, "notblank", errs[0].Tag)

	negative := valid
	negative.StockQuantity = -1
	errs = ValidateStruct(negative)
	require.Len(t, errs, 1)
	assert.Equal(t, "gte", errs[0].Tag)
	assert.Equal(t, "0", errs[0].Value)
}

func TestCheckReturnsValidationError(t *testing.T) {
	err := Check(model.CustomerInput{Name: "Ana", Email: "not-an-email"})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	assert.Contains(t, err.Error(), "CustomerInput.Email")

	assert.NoError(t, Check(model.CustomerInput{Name: "Ana"}))
}

func TestSaleRequestDivesIntoItems(t *testing.T) {
	req := model.SaleRequest{
		Items:         []model.CartItem{{ProductID: 1, Name: "Tea", Price: 3, Quantity: 0}},
		PaymentMethod: "Cash",
	}
	err := Check(req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Quantity")

	req.Items[0].Quantity = 2
	assert.NoError(t, Check(req))

	req.Items = nil
	assert.Error(t, Check(req))
}
