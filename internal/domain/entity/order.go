package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order statuses.
const (
	OrderStatusPending = "Pending"
)

// PaymentMethodCard is the payment method that triggers a gateway charge.
const PaymentMethodCard = "Card Payment"

// Order a purchase placed by a branch. Items are embedded and loaded with the order.
type Order struct {
	ID                   string
	BranchID             string
	Items                []OrderItem
	TotalPrice           decimal.Decimal
	Status               string
	DeliveryAddress      string
	DeliveryInstructions string
	PaymentMethod        string
	CreatedAt            time.Time
}

// OrderItem one product line. Price, VAT and naming are a snapshot taken when the order was placed.
type OrderItem struct {
	ID           string
	OrderID      string
	ProductID    string // empty if the product was deleted afterwards
	SupplierID   string
	ProductName  string
	SKU          string
	Quantity     int
	UnitPrice    decimal.Decimal
	VAT          decimal.Decimal
	DeliveryDate *time.Time
}

// Gross price × quantity.
func (i OrderItem) Gross() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Tax the VAT portion: price × vat × quantity / 100.
func (i OrderItem) Tax() decimal.Decimal {
	return i.Gross().Mul(i.VAT).Div(decimal.NewFromInt(100))
}

// ItemsForSupplier returns the lines supplied by supplierID.
func (o *Order) ItemsForSupplier(supplierID string) []OrderItem {
	var out []OrderItem
	for _, it := range o.Items {
		if it.SupplierID == supplierID {
			out = append(out, it)
		}
	}
	return out
}
