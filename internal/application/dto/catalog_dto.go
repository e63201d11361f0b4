package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SupplierInput create/update input assembled from a multipart form.
// On update, empty fields keep the stored value.
type SupplierInput struct {
	ID            string
	Name          string
	Email         string
	Phone         string
	StreetAddress string
	City          string
	Postcode      string
	Status        string
	Holidays      []time.Time
	HolidaysSet   bool // true when the form carried a holidays field
	Icon          *FileUpload
}

// HolidayResponse holiday calendar.
type HolidayResponse struct {
	ID       string      `json:"id"`
	Holidays []time.Time `json:"holidays"`
}

// SupplierResponse supplier with its holiday calendar.
type SupplierResponse struct {
	ID        string           `json:"id"`
	Icon      string           `json:"icon"`
	Name      string           `json:"name"`
	Email     string           `json:"email"`
	Phone     string           `json:"phone"`
	Address   AddressDTO       `json:"address"`
	Holidays  *HolidayResponse `json:"holidays"`
	Status    string           `json:"status"`
	CreatedAt time.Time        `json:"createdAt"`
}

// SupplierSummary compact supplier reference.
type SupplierSummary struct {
	ID      string     `json:"id"`
	Name    string     `json:"name"`
	Email   string     `json:"email,omitempty"`
	Phone   string     `json:"phone,omitempty"`
	Address AddressDTO `json:"address"`
}

// SetHolidayRequest replaces a supplier's holiday calendar.
type SetHolidayRequest struct {
	SupplierID  string   `json:"supplierId" validate:"required"`
	NewHolidays []string `json:"newHolidays" validate:"required"`
}

// DeliveryRequest create/update input for a delivery schedule.
type DeliveryRequest struct {
	Branch   string   `json:"branch" validate:"required"`
	Supplier string   `json:"supplier" validate:"required"`
	Days     []string `json:"days" validate:"required,min=1"`
}

// DeliveryResponse delivery schedule with branch and supplier populated.
type DeliveryResponse struct {
	ID        string           `json:"id"`
	Branch    *UserSummary     `json:"branch"`
	Supplier  *SupplierSummary `json:"supplier"`
	Days      []string         `json:"days"`
	CreatedAt time.Time        `json:"createdAt"`
}

// CategoryInput create/update input assembled from a multipart form.
type CategoryInput struct {
	ID    string
	Name  string
	Image *FileUpload
}

// CategoryResponse category.
type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"createdAt"`
}

// ProductInput create/update input assembled from a multipart form.
// VAT is "true"/"false" or an explicit percentage.
type ProductInput struct {
	ID          string
	SupplierID  string
	CategoryID  string
	Name        string
	SKU         string
	Price       decimal.Decimal
	VAT         string
	Status      string
	Description string
	Image       *FileUpload
}

// RefDTO id + name reference.
type RefDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ProductResponse product with supplier and category names.
type ProductResponse struct {
	ID          string          `json:"id"`
	Supplier    RefDTO          `json:"supplier"`
	Category    RefDTO          `json:"category"`
	Image       string          `json:"image"`
	Name        string          `json:"name"`
	SKU         string          `json:"sku"`
	Price       decimal.Decimal `json:"price"`
	VAT         decimal.Decimal `json:"vat"`
	Status      string          `json:"status"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// CategorizedProducts products of one category.
type CategorizedProducts struct {
	CategoryResponse
	Products []ProductResponse `json:"products"`
}

// SupplierDetailsResponse supplier catalog as seen by a branch.
type SupplierDetailsResponse struct {
	SupplierResponse
	DeliveryDays        []string              `json:"deliveryDays"`
	CategorizedProducts []CategorizedProducts `json:"categorizedProducts"`
}
