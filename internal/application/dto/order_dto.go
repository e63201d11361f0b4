package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlaceOrderRequest a cart converted into an order.
type PlaceOrderRequest struct {
	DeliveryAddress      string                 `json:"deliveryAddress"`
	DeliveryInstructions string                 `json:"deliveryInstructions"`
	PaymentMethod        string                 `json:"paymentMethod" validate:"required"`
	PaymentDetails       PaymentDetails         `json:"paymentDetails"`
	Suppliers            []SupplierOrderRequest `json:"suppliers" validate:"required,min=1,dive"`
}

// PaymentDetails references the saved card to charge.
type PaymentDetails struct {
	CardID string `json:"cardId"`
}

// SupplierOrderRequest the part of the cart that one supplier delivers.
type SupplierOrderRequest struct {
	SupplierID   string                `json:"supplierId"`
	DeliveryDate string                `json:"deliveryDate"`
	Products     []OrderProductRequest `json:"products" validate:"required,min=1,dive"`
}

// OrderProductRequest one cart line.
type OrderProductRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

// OrderItemResponse an order line.
type OrderItemResponse struct {
	ProductID    string           `json:"productId"`
	Name         string           `json:"name"`
	SKU          string           `json:"sku"`
	Quantity     int              `json:"quantity"`
	UnitPrice    decimal.Decimal  `json:"price"`
	VAT          decimal.Decimal  `json:"vat"`
	DeliveryDate *time.Time       `json:"deliveryDate"`
	Supplier     *SupplierSummary `json:"supplier"`
}

// OrderResponse an order with branch and lines populated.
type OrderResponse struct {
	ID                   string              `json:"id"`
	Branch               *UserSummary        `json:"branch"`
	Products             []OrderItemResponse `json:"products"`
	TotalPrice           decimal.Decimal     `json:"totalPrice"`
	Status               string              `json:"status"`
	DeliveryAddress      string              `json:"deliveryAddress"`
	DeliveryInstructions string              `json:"deliveryInstructions"`
	PaymentMethod        string              `json:"paymentMethod"`
	CreatedAt            time.Time           `json:"createdAt"`
}

// AddressRequest a new delivery address.
type AddressRequest struct {
	AddressLine1 string `json:"addressLine1" validate:"required"`
	AddressLine2 string `json:"addressLine2"`
	County       string `json:"county"`
	Postcode     string `json:"postcode" validate:"required"`
	TownCity     string `json:"townCity" validate:"required"`
}

// AddressResponse saved delivery address.
type AddressResponse struct {
	ID           string    `json:"id"`
	AddressLine1 string    `json:"addressLine1"`
	AddressLine2 string    `json:"addressLine2"`
	County       string    `json:"county"`
	Postcode     string    `json:"postcode"`
	TownCity     string    `json:"townCity"`
	CreatedAt    time.Time `json:"createdAt"`
}

// CardRequest a new payment card.
type CardRequest struct {
	CardHolderName string `json:"cardHolderName" validate:"required"`
	CardNumber     string `json:"cardNumber" validate:"required,credit_card"`
	ExpiryDate     string `json:"expiryDate" validate:"required,len=5"`
	CVV            string `json:"cvv" validate:"required,numeric,min=3,max=4"`
}

// CardResponse saved card without the CVV and with a masked number.
type CardResponse struct {
	ID             string    `json:"id"`
	CardHolderName string    `json:"cardHolderName"`
	CardNumber     string    `json:"cardNumber"`
	ExpiryDate     string    `json:"expiryDate"`
	CreatedAt      time.Time `json:"createdAt"`
}
