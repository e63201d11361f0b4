package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product a catalog item sold by one supplier.
// Price is VAT inclusive; VAT is the flat percentage that applies to it (0 when exempt).
type Product struct {
	ID           string
	SupplierID   string
	SupplierName string // read side only
	CategoryID   string
	CategoryName string // read side only
	Image        string
	Name         string
	SKU          string
	Price        decimal.Decimal
	VAT          decimal.Decimal // percentage, e.g. 20
	Status       string
	Description  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
