package ports

import (
	"github.com/jhoicas/wholesale-api/internal/domain/entity"
)

// InvoiceData everything printed on an order invoice.
type InvoiceData struct {
	Order     *entity.Order
	Branch    *entity.User
	Suppliers map[string]*entity.Supplier // by ID
	// AdminCopy prints the internal header used on the copy sent to the admin mailbox.
	AdminCopy bool
}

// InvoiceRenderer renders an order invoice as PDF bytes.
type InvoiceRenderer interface {
	RenderInvoice(data InvoiceData) ([]byte, error)
}
