package ordering

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wholesale-api/internal/application/dto"
	"github.com/jhoicas/wholesale-api/internal/application/ports"
	"github.com/jhoicas/wholesale-api/internal/domain"
	"github.com/jhoicas/wholesale-api/internal/domain/entity"
	"github.com/jhoicas/wholesale-api/internal/infrastructure/memory"
	"github.com/jhoicas/wholesale-api/pkg/logger"
)

// ── fakes ────────────────────────────────────────────────────────────────────

type fakeGateway struct {
	result   *ports.ChargeResult
	err      error
	requests []ports.ChargeRequest
}

func (g *fakeGateway) Charge(_ context.Context, req ports.ChargeRequest) (*ports.ChargeResult, error) {
	g.requests = append(g.requests, req)
	return g.result, g.err
}

type fakeRenderer struct{ calls []ports.InvoiceData }

func (r *fakeRenderer) RenderInvoice(data ports.InvoiceData) ([]byte, error) {
	r.calls = append(r.calls, data)
	return []byte("%PDF-1.4 fake"), nil
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []ports.Mail
	err  error
}

func (m *fakeMailer) Send(_ context.Context, mail ports.Mail) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, mail)
	return m.err
}

type fakeCache struct{ deleted []string }

func (c *fakeCache) Get(context.Context, string) (*dto.DashboardStatsResponse, bool, error) {
	return nil, false, nil
}

func (c *fakeCache) Set(context.Context, string, *dto.DashboardStatsResponse, time.Duration) error {
	return nil
}

func (c *fakeCache) Delete(_ context.Context, key string) error {
	c.deleted = append(c.deleted, key)
	return nil
}

// ── fixture ──────────────────────────────────────────────────────────────────

type fixture struct {
	store    *memory.Store
	gateway  *fakeGateway
	renderer *fakeRenderer
	mailer   *fakeMailer
	cache    *fakeCache
	uc       *OrderUseCase

	branch, otherBranch, admin *entity.User
	dairy, bakery              *entity.Supplier
	milk, cheese, bread        *entity.Product
	card                       *entity.Card
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore()
	f := &fixture{
		store:    s,
		gateway:  &fakeGateway{result: &ports.ChargeResult{Success: true, TransactionID: "tx-1", Status: "success"}},
		renderer: &fakeRenderer{},
		mailer:   &fakeMailer{},
		cache:    &fakeCache{},
	}
	f.uc = NewOrderUseCase(s, s.Orders(), s.Products(), s.Suppliers(), s.Users(), s.Cards(),
		f.gateway, f.renderer, f.mailer, f.cache, logger.Nop(),
		Config{NotifyEmail: "orders@wholesale.example"})

	now := time.Now()
	f.branch = &entity.User{ID: "b-1", Firstname: "Corner Shop", Email: "corner@example.co.uk", Role: entity.RoleBranch, Status: "active", CreatedAt: now}
	f.otherBranch = &entity.User{ID: "b-2", Firstname: "High St", Email: "high@example.co.uk", Role: entity.RoleBranch, Status: "active", CreatedAt: now}
	f.admin = &entity.User{ID: "a-1", Firstname: "Admin", Email: "admin@example.co.uk", Role: entity.RoleAdmin, Status: "active", CreatedAt: now}
	for _, u := range []*entity.User{f.branch, f.otherBranch, f.admin} {
		require.NoError(t, s.Users().Create(ctx, u))
	}

	f.dairy = &entity.Supplier{ID: "s-1", Name: "Dairy Co", Email: "dairy@example.co.uk", CreatedAt: now}
	f.bakery = &entity.Supplier{ID: "s-2", Name: "Bakery Ltd", Email: "bakery@example.co.uk", CreatedAt: now}
	require.NoError(t, s.Suppliers().Create(ctx, f.dairy))
	require.NoError(t, s.Suppliers().Create(ctx, f.bakery))
	require.NoError(t, s.Categories().Create(ctx, &entity.Category{ID: "c-1", Name: "Chilled", CreatedAt: now}))

	f.milk = &entity.Product{ID: "p-1", SupplierID: "s-1", CategoryID: "c-1", Name: "Milk 2L", SKU: "MLK2",
		Price: decimal.RequireFromString("1.50"), VAT: decimal.Zero, CreatedAt: now}
	f.cheese = &entity.Product{ID: "p-2", SupplierID: "s-1", CategoryID: "c-1", Name: "Cheddar", SKU: "CHD",
		Price: decimal.RequireFromString("4.20"), VAT: decimal.NewFromInt(20), CreatedAt: now}
	f.bread = &entity.Product{ID: "p-3", SupplierID: "s-2", CategoryID: "c-1", Name: "Bloomer", SKU: "BLM",
		Price: decimal.RequireFromString("2.00"), VAT: decimal.Zero, CreatedAt: now}
	for _, p := range []*entity.Product{f.milk, f.cheese, f.bread} {
		require.NoError(t, s.Products().Create(ctx, p))
	}

	f.card = &entity.Card{ID: "card-1", BranchID: "b-1", CardHolderName: "A Shopkeeper",
		CardNumber: "4111111111111111", ExpiryDate: "12/30", CVV: "123", CreatedAt: now}
	require.NoError(t, s.Cards().Create(ctx, f.card))
	return f
}

func cart(paymentMethod, cardID string) dto.PlaceOrderRequest {
	return dto.PlaceOrderRequest{
		DeliveryAddress: "1 High St, York",
		PaymentMethod:   paymentMethod,
		PaymentDetails:  dto.PaymentDetails{CardID: cardID},
		Suppliers: []dto.SupplierOrderRequest{
			{SupplierID: "s-1", DeliveryDate: "2025-07-01", Products: []dto.OrderProductRequest{
				{ProductID: "p-1", Quantity: 10},
				{ProductID: "p-2", Quantity: 2},
			}},
			{SupplierID: "s-2", Products: []dto.OrderProductRequest{{ProductID: "p-3", Quantity: 3}}},
		},
	}
}

// ── PlaceOrder ───────────────────────────────────────────────────────────────

func TestPlaceOrder_CashOnDelivery(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.uc.PlaceOrder(ctx, "b-1", cart("Cash on Delivery", ""))
	require.NoError(t, err)

	// 10×1.50 + 2×4.20 + 3×2.00
	assert.True(t, decimal.RequireFromString("29.40").Equal(resp.TotalPrice), resp.TotalPrice.String())
	assert.Equal(t, entity.OrderStatusPending, resp.Status)
	require.Len(t, resp.Products, 3)
	assert.Equal(t, "Milk 2L", resp.Products[0].Name)
	assert.Equal(t, "Dairy Co", resp.Products[0].Supplier.Name)
	require.NotNil(t, resp.Products[0].DeliveryDate)
	assert.Nil(t, resp.Products[2].DeliveryDate)
	assert.Equal(t, "Corner Shop", resp.Branch.Firstname)

	assert.Empty(t, f.gateway.requests, "no charge for non-card payments")

	stored, err := f.store.Orders().GetByID(ctx, resp.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Len(t, stored.Items, 3)

	require.Len(t, f.mailer.sent, 2)
	assert.Equal(t, []string{"corner@example.co.uk"}, f.mailer.sent[0].To)
	assert.Equal(t, "Complete Order Details", f.mailer.sent[0].Subject)
	assert.Equal(t, BranchInvoiceFilename, f.mailer.sent[0].Attachments[0].Filename)
	assert.Equal(t, []string{"orders@wholesale.example"}, f.mailer.sent[1].To)
	assert.Equal(t, "New Order Placed", f.mailer.sent[1].Subject)
	assert.Equal(t, AdminInvoiceFilename, f.mailer.sent[1].Attachments[0].Filename)

	require.Len(t, f.renderer.calls, 2)
	assert.False(t, f.renderer.calls[0].AdminCopy)
	assert.True(t, f.renderer.calls[1].AdminCopy)
	assert.Len(t, f.renderer.calls[0].Suppliers, 2)

	assert.Equal(t, []string{ports.DashboardStatsKey}, f.cache.deleted)
}

func TestPlaceOrder_CardPaymentRecordsTransaction(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.PlaceOrder(context.Background(), "b-1", cart(entity.PaymentMethodCard, "card-1"))
	require.NoError(t, err)

	require.Len(t, f.gateway.requests, 1)
	req := f.gateway.requests[0]
	assert.True(t, decimal.RequireFromString("29.40").Equal(req.Amount))
	assert.Equal(t, "GBP", req.Currency)
	assert.Equal(t, "4111111111111111", req.CardNumber)
	assert.Regexp(t, `^ORDER-\d+$`, req.OrderReference)

	txs := f.store.Transactions().ListByOrder(resp.ID)
	require.Len(t, txs, 1)
	assert.Equal(t, "tx-1", txs[0].TnxID)
	assert.Equal(t, "29.40", txs[0].Amount)
}

func TestPlaceOrder_PaymentFailureAbortsOrder(t *testing.T) {
	cases := map[string]*fakeGateway{
		"declined":    {result: &ports.ChargeResult{Success: false, Status: "declined"}},
		"unreachable": {err: errors.New("dial tcp: connection refused")},
	}
	for name, gw := range cases {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			f.uc.payments = gw

			_, err := f.uc.PlaceOrder(context.Background(), "b-1", cart(entity.PaymentMethodCard, "card-1"))
			assert.ErrorIs(t, err, domain.ErrPaymentFailed)

			orders, err := f.store.Orders().List(context.Background())
			require.NoError(t, err)
			assert.Empty(t, orders)
			assert.Empty(t, f.mailer.sent)
		})
	}
}

func TestPlaceOrder_CardMustBelongToCaller(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.PlaceOrder(context.Background(), "b-2", cart(entity.PaymentMethodCard, "card-1"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, f.gateway.requests)

	_, err = f.uc.PlaceOrder(context.Background(), "b-1", cart(entity.PaymentMethodCard, ""))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPlaceOrder_InvalidCart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	in := cart("Cash on Delivery", "")
	in.Suppliers[1].Products[0].ProductID = "missing"
	_, err := f.uc.PlaceOrder(ctx, "b-1", in)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	in = cart("Cash on Delivery", "")
	in.Suppliers[0].Products[0].Quantity = 0
	_, err = f.uc.PlaceOrder(ctx, "b-1", in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = cart("Cash on Delivery", "")
	in.Suppliers[1].SupplierID = "s-1"
	_, err = f.uc.PlaceOrder(ctx, "b-1", in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "bread is not sold by the dairy")

	in = cart("Cash on Delivery", "")
	in.Suppliers[0].DeliveryDate = "next tuesday"
	_, err = f.uc.PlaceOrder(ctx, "b-1", in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.PlaceOrder(ctx, "b-1", dto.PlaceOrderRequest{PaymentMethod: "Cash on Delivery"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.PlaceOrder(ctx, "ghost", cart("Cash on Delivery", ""))
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestPlaceOrder_MailFailureDoesNotFailOrder(t *testing.T) {
	f := newFixture(t)
	f.mailer.err = errors.New("smtp: 421 service not available")

	resp, err := f.uc.PlaceOrder(context.Background(), "b-1", cart("Cash on Delivery", ""))
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Len(t, f.mailer.sent, 2)
}

func TestPlaceOrder_SnapshotSurvivesCatalogChanges(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.uc.PlaceOrder(ctx, "b-1", cart("Cash on Delivery", ""))
	require.NoError(t, err)

	f.milk.Price = decimal.NewFromInt(99)
	f.milk.Name = "Renamed"
	require.NoError(t, f.store.Products().Update(ctx, f.milk))

	got, err := f.uc.Get(ctx, "a-1", entity.RoleAdmin, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "Milk 2L", got.Products[0].Name)
	assert.True(t, decimal.RequireFromString("1.50").Equal(got.Products[0].UnitPrice))
}

// ── queries ──────────────────────────────────────────────────────────────────

func TestGet_Authorisation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	resp, err := f.uc.PlaceOrder(ctx, "b-1", cart("Cash on Delivery", ""))
	require.NoError(t, err)

	_, err = f.uc.Get(ctx, "b-1", entity.RoleBranch, resp.ID)
	assert.NoError(t, err, "owner")

	_, err = f.uc.Get(ctx, "a-1", entity.RoleAdmin, resp.ID)
	assert.NoError(t, err, "admin")

	_, err = f.uc.Get(ctx, "b-2", entity.RoleBranch, resp.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.uc.Get(ctx, "a-1", entity.RoleAdmin, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSupplierQueries_FilterLines(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	mixed, err := f.uc.PlaceOrder(ctx, "b-1", cart("Cash on Delivery", ""))
	require.NoError(t, err)
	dairyOnly, err := f.uc.PlaceOrder(ctx, "b-2", dto.PlaceOrderRequest{
		PaymentMethod: "Cash on Delivery",
		Suppliers: []dto.SupplierOrderRequest{{SupplierID: "s-1", Products: []dto.OrderProductRequest{{ProductID: "p-1", Quantity: 1}}}},
	})
	require.NoError(t, err)

	bakery, err := f.uc.ListForSupplier(ctx, "s-2")
	require.NoError(t, err)
	require.Len(t, bakery, 1)
	assert.Equal(t, mixed.ID, bakery[0].ID)
	require.Len(t, bakery[0].Products, 1)
	assert.Equal(t, "Bloomer", bakery[0].Products[0].Name)

	dairy, err := f.uc.ListForSupplier(ctx, "s-1")
	require.NoError(t, err)
	assert.Len(t, dairy, 2)

	_, err = f.uc.ListForSupplier(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	one, err := f.uc.GetSupplierOrder(ctx, "s-1", mixed.ID)
	require.NoError(t, err)
	assert.Len(t, one.Products, 2)

	_, err = f.uc.GetSupplierOrder(ctx, "s-2", dairyOnly.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	byBranch, err := f.uc.ListForBranch(ctx, "b-2")
	require.NoError(t, err)
	require.Len(t, byBranch, 1)
	assert.Equal(t, dairyOnly.ID, byBranch[0].ID)

	all, err := f.uc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
