package ordering

import (
	"context"

	"github.com/jhoicas/wholesale-api/internal/domain/repository"
)

// TxRunner runs fn inside one database transaction with repositories bound to it.
// Returning an error from fn rolls back everything fn wrote.
type TxRunner interface {
	RunOrder(ctx context.Context, fn func(
		orders repository.OrderRepository,
		txs repository.TransactionRepository,
	) error) error
}
