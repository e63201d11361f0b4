package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wholesale-api/internal/application/ports"
	"github.com/jhoicas/wholesale-api/internal/domain/entity"
)

func sampleInvoice() ports.InvoiceData {
	delivery := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	return ports.InvoiceData{
		Order: &entity.Order{
			ID:              "5f0c2a44-0c6e-4bb1-9a51-2f8a51f4a6a1",
			BranchID:        "b-1",
			TotalPrice:      decimal.RequireFromString("1029.00"),
			Status:          entity.OrderStatusPending,
			DeliveryAddress: "1 High St, York",
			PaymentMethod:   entity.PaymentMethodCard,
			CreatedAt:       time.Date(2025, 6, 28, 10, 0, 0, 0, time.UTC),
			Items: []entity.OrderItem{
				{SupplierID: "s-1", ProductName: "Milk 2L", SKU: "MLK2", Quantity: 10, UnitPrice: decimal.RequireFromString("1.50"), DeliveryDate: &delivery},
				{SupplierID: "s-2", ProductName: "Bloomer", Quantity: 3, UnitPrice: decimal.RequireFromString("2.00")},
				{SupplierID: "s-1", ProductName: "Cheddar", SKU: "CHD", Quantity: 200, UnitPrice: decimal.RequireFromString("5.04"), VAT: decimal.NewFromInt(20), DeliveryDate: &delivery},
			},
		},
		Branch: &entity.User{ID: "b-1", Firstname: "Corner Shop", Email: "corner@example.co.uk",
			Address: entity.Address{Street: "1 High St", City: "York", Postcode: "YO1 1AA"}},
		Suppliers: map[string]*entity.Supplier{"s-1": {ID: "s-1", Name: "Dairy Co"}},
	}
}

func TestRenderInvoice_ProducesPDF(t *testing.T) {
	g := NewInvoiceRenderer("Wholesale Ltd")

	for _, admin := range []bool{false, true} {
		data := sampleInvoice()
		data.AdminCopy = admin

		out, err := g.RenderInvoice(data)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "output must be a PDF document")
	}
}

func TestRenderInvoice_NilOrder(t *testing.T) {
	_, err := NewInvoiceRenderer("Wholesale Ltd").RenderInvoice(ports.InvoiceData{})
	assert.Error(t, err)
}

func TestFormatMoney(t *testing.T) {
	g := NewInvoiceRenderer("")
	assert.Equal(t, "£1,234.50", g.formatMoney(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "£0.00", g.formatMoney(decimal.Zero))
	assert.Equal(t, "£1.68", g.formatMoney(decimal.RequireFromString("1.675")))
}

func TestGroupBySupplier_KeepsFirstSeenOrder(t *testing.T) {
	groups := groupBySupplier(sampleInvoice().Order.Items)
	require.Len(t, groups, 2)
	assert.Equal(t, "s-1", groups[0].supplierID)
	assert.Len(t, groups[0].items, 2)
	assert.Equal(t, "s-2", groups[1].supplierID)
}
