package ports

import (
	"context"

	"github.com/shopspring/decimal"
)

// ChargeRequest a card charge. Amount is in major units (pounds); adapters convert as the gateway needs.
type ChargeRequest struct {
	Amount         decimal.Decimal
	Currency       string
	CardHolderName string
	CardNumber     string
	ExpiryDate     string
	CVV            string
	OrderReference string
}

// ChargeResult gateway answer.
type ChargeResult struct {
	Success       bool
	TransactionID string
	Status        string
	Message       string
}

// PaymentGateway charges payment cards.
// A declined charge is a result with Success=false, not an error; errors mean the gateway could not be reached.
type PaymentGateway interface {
	Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error)
}
