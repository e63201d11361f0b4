package ordering

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/wholesale-api/internal/application/dto"
	"github.com/jhoicas/wholesale-api/internal/application/ports"
	"github.com/jhoicas/wholesale-api/internal/domain"
	"github.com/jhoicas/wholesale-api/internal/domain/entity"
	"github.com/jhoicas/wholesale-api/internal/domain/repository"
	"github.com/jhoicas/wholesale-api/pkg/logger"
)

// Invoice attachment names.
const (
	BranchInvoiceFilename = "ShopOrder.pdf"
	AdminInvoiceFilename  = "AdminOrder.pdf"
)

// Config ordering settings.
type Config struct {
	Currency    string // ISO 4217 code sent to the gateway
	NotifyEmail string // admin mailbox copied on every order; empty disables the copy
}

// OrderUseCase places orders and serves order queries.
type OrderUseCase struct {
	txRunner  TxRunner
	orders    repository.OrderRepository
	products  repository.ProductRepository
	suppliers repository.SupplierRepository
	users     repository.UserRepository
	cards     repository.CardRepository
	payments  ports.PaymentGateway
	invoices  ports.InvoiceRenderer
	mailer    ports.Mailer
	cache     ports.StatsCache
	log       *logger.Logger
	cfg       Config
	now       func() time.Time
}

// NewOrderUseCase builds the use case.
func NewOrderUseCase(
	txRunner TxRunner,
	orders repository.OrderRepository,
	products repository.ProductRepository,
	suppliers repository.SupplierRepository,
	users repository.UserRepository,
	cards repository.CardRepository,
	payments ports.PaymentGateway,
	invoices ports.InvoiceRenderer,
	mailer ports.Mailer,
	cache ports.StatsCache,
	log *logger.Logger,
	cfg Config,
) *OrderUseCase {
	if cfg.Currency == "" {
		cfg.Currency = "GBP"
	}
	return &OrderUseCase{
		txRunner:  txRunner,
		orders:    orders,
		products:  products,
		suppliers: suppliers,
		users:     users,
		cards:     cards,
		payments:  payments,
		invoices:  invoices,
		mailer:    mailer,
		cache:     cache,
		log:       log,
		cfg:       cfg,
		now:       time.Now,
	}
}

// PlaceOrder converts the caller's cart into an order.
//
// Prices are read from the catalog, never from the request. For card payments the saved card
// is charged before anything is written; a declined or failed charge aborts the order with
// domain.ErrPaymentFailed. Invoice rendering and mail delivery happen after the commit and
// their failures are only logged.
func (uc *OrderUseCase) PlaceOrder(ctx context.Context, branchID string, in dto.PlaceOrderRequest) (*dto.OrderResponse, error) {
	branch, err := uc.users.GetByID(ctx, branchID)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, domain.ErrUserNotFound
	}
	if len(in.Suppliers) == 0 {
		return nil, fmt.Errorf("%w: the order has no products", domain.ErrInvalidInput)
	}

	items, total, err := uc.buildItems(ctx, in.Suppliers)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	order := &entity.Order{
		ID:                   uuid.New().String(),
		BranchID:             branch.ID,
		Items:                items,
		TotalPrice:           total,
		Status:               entity.OrderStatusPending,
		DeliveryAddress:      strings.TrimSpace(in.DeliveryAddress),
		DeliveryInstructions: strings.TrimSpace(in.DeliveryInstructions),
		PaymentMethod:        in.PaymentMethod,
		CreatedAt:            now,
	}

	var charge *ports.ChargeResult
	if in.PaymentMethod == entity.PaymentMethodCard {
		if charge, err = uc.charge(ctx, branch.ID, in.PaymentDetails.CardID, total, now); err != nil {
			return nil, err
		}
	}

	err = uc.txRunner.RunOrder(ctx, func(orders repository.OrderRepository, txs repository.TransactionRepository) error {
		if err := orders.Create(ctx, order); err != nil {
			return err
		}
		if charge == nil {
			return nil
		}
		return txs.Create(ctx, &entity.Transaction{
			ID:        uuid.New().String(),
			OrderID:   order.ID,
			BranchID:  branch.ID,
			TnxID:     charge.TransactionID,
			Amount:    total.StringFixed(2),
			Status:    charge.Status,
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("save order: %w", err)
	}

	if err := uc.cache.Delete(ctx, ports.DashboardStatsKey); err != nil {
		uc.log.Warn().Err(err).Msg("invalidate dashboard stats")
	}

	pop := NewPopulator(uc.users, uc.suppliers)
	uc.notify(ctx, order, branch, pop)

	return pop.Order(ctx, order, "")
}

// buildItems resolves every cart line against the catalog and returns the snapshot lines and the total.
func (uc *OrderUseCase) buildItems(ctx context.Context, groups []dto.SupplierOrderRequest) ([]entity.OrderItem, decimal.Decimal, error) {
	total := decimal.Zero
	var items []entity.OrderItem
	for _, g := range groups {
		deliveryDate, err := parseDeliveryDate(g.DeliveryDate)
		if err != nil {
			return nil, decimal.Zero, err
		}
		for _, line := range g.Products {
			if line.Quantity <= 0 {
				return nil, decimal.Zero, fmt.Errorf("%w: quantity must be positive", domain.ErrInvalidInput)
			}
			p, err := uc.products.GetByID(ctx, line.ProductID)
			if err != nil {
				return nil, decimal.Zero, err
			}
			if p == nil {
				return nil, decimal.Zero, fmt.Errorf("%w: product with ID %s not found", domain.ErrNotFound, line.ProductID)
			}
			if g.SupplierID != "" && g.SupplierID != p.SupplierID {
				return nil, decimal.Zero, fmt.Errorf("%w: product %s is not sold by supplier %s", domain.ErrInvalidInput, p.ID, g.SupplierID)
			}
			item := entity.OrderItem{
				ProductID:    p.ID,
				SupplierID:   p.SupplierID,
				ProductName:  p.Name,
				SKU:          p.SKU,
				Quantity:     line.Quantity,
				UnitPrice:    p.Price,
				VAT:          p.VAT,
				DeliveryDate: deliveryDate,
			}
			total = total.Add(item.Gross())
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return nil, decimal.Zero, fmt.Errorf("%w: the order has no products", domain.ErrInvalidInput)
	}
	return items, total, nil
}

func (uc *OrderUseCase) charge(ctx context.Context, branchID, cardID string, total decimal.Decimal, now time.Time) (*ports.ChargeResult, error) {
	if cardID == "" {
		return nil, fmt.Errorf("%w: a card is required for card payments", domain.ErrInvalidInput)
	}
	card, err := uc.cards.GetByID(ctx, cardID)
	if err != nil {
		return nil, err
	}
	if card == nil || card.BranchID != branchID {
		return nil, fmt.Errorf("%w: card not found", domain.ErrNotFound)
	}
	res, err := uc.payments.Charge(ctx, ports.ChargeRequest{
		Amount:         total,
		Currency:       uc.cfg.Currency,
		CardHolderName: card.CardHolderName,
		CardNumber:     card.CardNumber,
		ExpiryDate:     card.ExpiryDate,
		CVV:            card.CVV,
		OrderReference: fmt.Sprintf("ORDER-%d", now.UnixMilli()),
	})
	if err != nil {
		uc.log.Error().Err(err).Str("branch_id", branchID).Msg("payment gateway")
		return nil, domain.ErrPaymentFailed
	}
	if !res.Success {
		uc.log.Warn().Str("branch_id", branchID).Str("status", res.Status).Str("message", res.Message).Msg("payment declined")
		return nil, domain.ErrPaymentFailed
	}
	return res, nil
}

// notify renders the invoices and mails them to the branch and the admin mailbox.
func (uc *OrderUseCase) notify(ctx context.Context, order *entity.Order, branch *entity.User, pop *Populator) {
	suppliers := make(map[string]*entity.Supplier)
	for _, it := range order.Items {
		if _, ok := suppliers[it.SupplierID]; ok {
			continue
		}
		s, err := pop.supplier(ctx, it.SupplierID)
		if err != nil {
			uc.log.Warn().Err(err).Str("supplier_id", it.SupplierID).Msg("load supplier for invoice")
			continue
		}
		suppliers[it.SupplierID] = s
	}
	log := uc.log.With().Str("order_id", order.ID).Logger()

	data := ports.InvoiceData{Order: order, Branch: branch, Suppliers: suppliers}
	if pdf, err := uc.invoices.RenderInvoice(data); err != nil {
		log.Error().Err(err).Msg("render branch invoice")
	} else {
		err := uc.mailer.Send(ctx, ports.Mail{
			To:      []string{branch.Email},
			Subject: "Complete Order Details",
			HTMLBody: fmt.Sprintf("<p>Dear %s,</p><p>Please find the complete order details attached.</p>",
				html.EscapeString(branch.Firstname)),
			Attachments: []ports.Attachment{{Filename: BranchInvoiceFilename, ContentType: "application/pdf", Data: pdf}},
		})
		if err != nil {
			log.Warn().Err(err).Str("to", branch.Email).Msg("send order mail")
		}
	}

	if uc.cfg.NotifyEmail == "" {
		return
	}
	data.AdminCopy = true
	pdf, err := uc.invoices.RenderInvoice(data)
	if err != nil {
		log.Error().Err(err).Msg("render admin invoice")
		return
	}
	err = uc.mailer.Send(ctx, ports.Mail{
		To:          []string{uc.cfg.NotifyEmail},
		Subject:     "New Order Placed",
		HTMLBody:    "<p>A new order has been placed. Please find the complete details attached.</p>",
		Attachments: []ports.Attachment{{Filename: AdminInvoiceFilename, ContentType: "application/pdf", Data: pdf}},
	})
	if err != nil {
		log.Warn().Err(err).Str("to", uc.cfg.NotifyEmail).Msg("send order mail")
	}
}

var deliveryDateLayouts = []string{"2006-01-02", time.RFC3339, "02/01/2006"}

// parseDeliveryDate accepts an empty value (no date requested).
func parseDeliveryDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range deliveryDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			y, m, d := t.Date()
			day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
			return &day, nil
		}
	}
	return nil, fmt.Errorf("%w: invalid delivery date %q", domain.ErrInvalidInput, s)
}
