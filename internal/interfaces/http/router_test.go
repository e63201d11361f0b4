package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"image/color"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"sync"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wholesale-api/internal/application/auth"
	"github.com/jhoicas/wholesale-api/internal/application/dto"
	"github.com/jhoicas/wholesale-api/internal/application/ordering"
	"github.com/jhoicas/wholesale-api/internal/application/ports"
	"github.com/jhoicas/wholesale-api/internal/application/reporting"
	"github.com/jhoicas/wholesale-api/internal/application/usecase"
	"github.com/jhoicas/wholesale-api/internal/infrastructure/cache"
	"github.com/jhoicas/wholesale-api/internal/infrastructure/excel"
	"github.com/jhoicas/wholesale-api/internal/infrastructure/memory"
	"github.com/jhoicas/wholesale-api/internal/infrastructure/storage"
	apphttp "github.com/jhoicas/wholesale-api/internal/interfaces/http"
	"github.com/jhoicas/wholesale-api/pkg/logger"
)

type stubGateway struct {
	mu       sync.Mutex
	declined bool
	charged  []ports.ChargeRequest
}

func (g *stubGateway) Charge(_ context.Context, req ports.ChargeRequest) (*ports.ChargeResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.charged = append(g.charged, req)
	if g.declined {
		return &ports.ChargeResult{Success: false, Status: "declined"}, nil
	}
	return &ports.ChargeResult{Success: true, TransactionID: "tx-42", Status: "success"}, nil
}

type stubRenderer struct{}

func (stubRenderer) RenderInvoice(ports.InvoiceData) ([]byte, error) {
	return []byte("%PDF-1.4 stub"), nil
}

type outbox struct {
	mu   sync.Mutex
	sent []ports.Mail
}

func (o *outbox) Send(_ context.Context, m ports.Mail) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.sent = append(o.sent, m)
	return nil
}

func (o *outbox) subjects() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]string, 0, len(o.sent))
	for _, m := range o.sent {
		out = append(out, m.Subject)
	}
	return out
}

type server struct {
	app     *fiber.App
	gateway *stubGateway
	mail    *outbox
}

func newServer(t *testing.T) *server {
	t.Helper()
	s := memory.NewStore()
	images, err := storage.NewLocalStore(t.TempDir(), "/uploads")
	require.NoError(t, err)

	gw := &stubGateway{}
	mail := &outbox{}
	log := logger.Nop()

	deps := apphttp.RouterDeps{
		AuthUC:     auth.NewAuthUseCase(s.Users(), mail, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 60, Issuer: "wholesale-api"}),
		ReportUC:   reporting.NewReportUseCase(s.Orders(), s.Users(), s.Suppliers(), s.Stats(), cache.NoopStatsCache{}, excel.NewReportExporter(), log),
		BranchUC:   usecase.NewBranchUseCase(s.Users()),
		SupplierUC: usecase.NewSupplierUseCase(s.Suppliers(), s.Holidays(), images, log),
		DeliveryUC: usecase.NewDeliveryUseCase(s.Deliveries(), s.Users(), s.Suppliers()),
		CategoryUC: usecase.NewCategoryUseCase(s.Categories(), images, log),
		ProductUC:  usecase.NewProductUseCase(s.Products(), s.Suppliers(), s.Categories(), s.Deliveries(), images, 20, log),
		OrderUC: ordering.NewOrderUseCase(s, s.Orders(), s.Products(), s.Suppliers(), s.Users(), s.Cards(),
			gw, stubRenderer{}, mail, cache.NoopStatsCache{}, log,
			ordering.Config{Currency: "GBP", NotifyEmail: "orders@wholesale.example"}),
		BookUC:    usecase.NewAddressBookUseCase(s.Addresses(), s.Cards()),
		JWTSecret: testJWTSecret,
		PublicURL: "http://localhost:3000",
	}
	app := apphttp.NewApp(apphttp.AppConfig{Name: "test", CORSOrigins: "*"}, log)
	apphttp.Router(app, deps)
	return &server{app: app, gateway: gw, mail: mail}
}

func (s *server) do(t *testing.T, req *http.Request, token string) *http.Response {
	t.Helper()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (s *server) json(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return s.do(t, req, token)
}

// form posts a multipart form; a non-nil image goes in the "image" field.
func (s *server) form(t *testing.T, path, token string, fields map[string]string, image []byte) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if image != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="image"; filename="pic.png"`)
		h.Set("Content-Type", "image/png")
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(image)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return s.do(t, req, token)
}

func decode(t *testing.T, resp *http.Response, dst any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	var e dto.ErrorResponse
	decode(t, resp, &e)
	return e.Code
}

func pngImage(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, imaging.New(64, 48, color.NRGBA{G: 180, A: 255}), imaging.PNG))
	return buf.Bytes()
}

func register(t *testing.T, s *server, email, role string) string {
	t.Helper()
	resp := s.json(t, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Firstname: "Test", Email: email, Password: "s3cret-pass", Role: role,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var out dto.AuthResponse
	decode(t, resp, &out)
	require.NotEmpty(t, out.Token)
	return out.Token
}

func login(t *testing.T, s *server, email, password string) string {
	t.Helper()
	resp := s.json(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: email, Password: password})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.AuthResponse
	decode(t, resp, &out)
	return out.Token
}

func createBranch(t *testing.T, s *server, adminToken, name, email string) string {
	t.Helper()
	resp := s.json(t, http.MethodPost, "/api/create-branch", adminToken, dto.CreateBranchRequest{
		Name: name, Email: email, Password: "branch-pass", City: "York",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var out struct {
		Status bool             `json:"status"`
		Branch dto.UserResponse `json:"branch"`
	}
	decode(t, resp, &out)
	require.True(t, out.Status)
	return out.Branch.ID
}

func TestAuthFlow(t *testing.T) {
	s := newServer(t)
	token := register(t, s, "Owner@Example.co.uk", "admin")

	resp := s.json(t, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Firstname: "Again", Email: "owner@example.co.uk", Password: "another-pass",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "EMAIL_EXISTS", errorCode(t, resp))

	resp = s.json(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "owner@example.co.uk", Password: "wrong-pass"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	assert.NotEmpty(t, login(t, s, "OWNER@example.co.uk", "s3cret-pass"))

	req := httptest.NewRequest(http.MethodGet, "/api/auth/verify", nil)
	resp = s.do(t, req, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	req = httptest.NewRequest(http.MethodGet, "/api/auth/verify", nil)
	resp = s.do(t, req, "garbage")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", errorCode(t, resp))
}

func TestValidationErrors(t *testing.T) {
	s := newServer(t)

	resp := s.json(t, http.MethodPost, "/api/auth/register", "", map[string]string{"email": "not-an-email"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var e dto.ErrorResponse
	decode(t, resp, &e)
	assert.Equal(t, "VALIDATION", e.Code)
	assert.Contains(t, e.Message, "firstname")
	assert.Contains(t, e.Message, "password")
}

func TestRoleGuards(t *testing.T) {
	s := newServer(t)
	adminToken := register(t, s, "admin@example.co.uk", "admin")
	createBranch(t, s, adminToken, "Corner Shop", "corner@example.co.uk")
	branchToken := login(t, s, "corner@example.co.uk", "branch-pass")

	resp := s.json(t, http.MethodGet, "/api/get-branches", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = s.json(t, http.MethodGet, "/api/get-branches", branchToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = s.json(t, http.MethodGet, "/api/cards", adminToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = s.json(t, http.MethodGet, "/api/get-suppliers", branchToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp = s.json(t, http.MethodGet, "/api/get-suppliers", adminToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMalformedIDIsNotFound(t *testing.T) {
	s := newServer(t)
	adminToken := register(t, s, "admin@example.co.uk", "admin")

	for _, path := range []string{"/api/get-branch/42", "/api/get-supplier/abc", "/api/get-product/x-1"} {
		resp := s.json(t, http.MethodGet, path, adminToken, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
	}

	resp := s.json(t, http.MethodGet, "/api/get-branch/6f1c54a8-9d2e-4b7f-8d55-0f7f0f3a2b11", adminToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", errorCode(t, resp))

	resp = s.json(t, http.MethodGet, "/api/reports/Fortnight", adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCatalogAndOrderFlow(t *testing.T) {
	s := newServer(t)
	adminToken := register(t, s, "admin@example.co.uk", "admin")
	branchID := createBranch(t, s, adminToken, "Corner Shop", "corner@example.co.uk")
	branchToken := login(t, s, "corner@example.co.uk", "branch-pass")
	img := pngImage(t)

	// supplier with an icon and a holiday calendar
	resp := s.form(t, "/api/create-supplier", adminToken, map[string]string{
		"name":     "Dairy Co",
		"email":    "dairy@example.co.uk",
		"phone":    "+44 20 7946 0958",
		"holidays": `["25/12/2025","2026-01-01"]`,
	}, img)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var sup struct {
		Supplier dto.SupplierResponse `json:"supplier"`
	}
	decode(t, resp, &sup)
	supplierID := sup.Supplier.ID
	assert.True(t, strings.HasPrefix(sup.Supplier.Icon, "/uploads/"), sup.Supplier.Icon)
	require.NotNil(t, sup.Supplier.Holidays)
	assert.Len(t, sup.Supplier.Holidays.Holidays, 2)

	resp = s.form(t, "/api/add-category", adminToken, map[string]string{"name": "Chilled"}, img)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var cat struct {
		Category dto.CategoryResponse `json:"category"`
	}
	decode(t, resp, &cat)

	resp = s.form(t, "/api/add-product", adminToken, map[string]string{
		"supplier": supplierID,
		"category": cat.Category.ID,
		"name":     "Milk 2L",
		"sku":      "MLK2",
		"price":    "2.50",
		"vat":      "false",
	}, img)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var prod struct {
		Product dto.ProductResponse `json:"product"`
	}
	decode(t, resp, &prod)
	assert.True(t, decimal.RequireFromString("2.50").Equal(prod.Product.Price))

	resp = s.form(t, "/api/add-product", adminToken, map[string]string{
		"supplier": supplierID, "category": cat.Category.ID, "name": "No picture", "price": "1",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = s.json(t, http.MethodPost, "/api/add-delivery-days", adminToken, dto.DeliveryRequest{
		Branch: branchID, Supplier: supplierID, Days: []string{"monday", "Friday"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = s.json(t, http.MethodGet, "/api/get-suppliers-with-details", branchToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var details []dto.SupplierDetailsResponse
	decode(t, resp, &details)
	require.Len(t, details, 1)
	assert.Equal(t, []string{"Monday", "Friday"}, details[0].DeliveryDays)
	require.Len(t, details[0].CategorizedProducts, 1)
	assert.Len(t, details[0].CategorizedProducts[0].Products, 1)

	// card and order
	resp = s.json(t, http.MethodPost, "/api/add-card", branchToken, dto.CardRequest{
		CardHolderName: "A Shopkeeper", CardNumber: "4111111111111111", ExpiryDate: "12/99", CVV: "123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var card struct {
		Card dto.CardResponse `json:"card"`
	}
	decode(t, resp, &card)
	assert.NotEqual(t, "4111111111111111", card.Card.CardNumber, "number is masked")

	order := dto.PlaceOrderRequest{
		DeliveryAddress: "1 High St, York",
		PaymentMethod:   "Card Payment",
		PaymentDetails:  dto.PaymentDetails{CardID: card.Card.ID},
		Suppliers: []dto.SupplierOrderRequest{{
			SupplierID:   supplierID,
			DeliveryDate: "2026-03-02",
			Products:     []dto.OrderProductRequest{{ProductID: prod.Product.ID, Quantity: 4}},
		}},
	}
	resp = s.json(t, http.MethodPost, "/api/place_order", branchToken, order)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderSetCookie), "cart=")
	var placed struct {
		Status  bool              `json:"status"`
		Message string            `json:"message"`
		Order   dto.OrderResponse `json:"order"`
	}
	decode(t, resp, &placed)
	assert.Equal(t, "Order placed successfully", placed.Message)
	assert.True(t, decimal.NewFromInt(10).Equal(placed.Order.TotalPrice), placed.Order.TotalPrice.String())

	require.Len(t, s.gateway.charged, 1)
	assert.True(t, decimal.NewFromInt(10).Equal(s.gateway.charged[0].Amount))
	assert.ElementsMatch(t, []string{"Complete Order Details", "New Order Placed"}, s.mail.subjects())

	// reads
	resp = s.json(t, http.MethodGet, "/api/get-order/"+placed.Order.ID, branchToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	createBranch(t, s, adminToken, "High St", "high@example.co.uk")
	otherToken := login(t, s, "high@example.co.uk", "branch-pass")
	resp = s.json(t, http.MethodGet, "/api/get-order/"+placed.Order.ID, otherToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = s.json(t, http.MethodGet, "/api/get-orders-for-supplier/"+supplierID, adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var bySupplier []dto.OrderResponse
	decode(t, resp, &bySupplier)
	assert.Len(t, bySupplier, 1)

	resp = s.json(t, http.MethodGet, "/api/dashboard-stats", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var stats dto.DashboardStatsResponse
	decode(t, resp, &stats)
	assert.Equal(t, 1, stats.Orders)
	assert.Equal(t, 2, stats.Branches)

	resp = s.json(t, http.MethodGet, "/api/reports/Today", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var rep dto.ReportResponse
	decode(t, resp, &rep)
	assert.Equal(t, 1, rep.Summary.TotalOrders)
	assert.Equal(t, "10.00", rep.Summary.GrossSales)

	resp = s.json(t, http.MethodGet, "/api/reports/today/export", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, excel.NewReportExporter().ContentType(), resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), ".xlsx")
	resp.Body.Close()

	// a supplier with orders cannot be removed
	resp = s.json(t, http.MethodDelete, "/api/delete-supplier/"+supplierID, adminToken, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestPlaceOrder_Declined(t *testing.T) {
	s := newServer(t)
	s.gateway.declined = true
	adminToken := register(t, s, "admin@example.co.uk", "admin")
	createBranch(t, s, adminToken, "Corner Shop", "corner@example.co.uk")
	branchToken := login(t, s, "corner@example.co.uk", "branch-pass")
	img := pngImage(t)

	resp := s.form(t, "/api/create-supplier", adminToken, map[string]string{"name": "Dairy Co", "email": "dairy@example.co.uk"}, img)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var sup struct {
		Supplier dto.SupplierResponse `json:"supplier"`
	}
	decode(t, resp, &sup)
	resp = s.form(t, "/api/add-category", adminToken, map[string]string{"name": "Chilled"}, img)
	var cat struct {
		Category dto.CategoryResponse `json:"category"`
	}
	decode(t, resp, &cat)
	resp = s.form(t, "/api/add-product", adminToken, map[string]string{
		"supplier": sup.Supplier.ID, "category": cat.Category.ID, "name": "Milk", "price": "1.00",
	}, img)
	var prod struct {
		Product dto.ProductResponse `json:"product"`
	}
	decode(t, resp, &prod)
	resp = s.json(t, http.MethodPost, "/api/add-card", branchToken, dto.CardRequest{
		CardHolderName: "A Shopkeeper", CardNumber: "4111111111111111", ExpiryDate: "12/99", CVV: "123",
	})
	var card struct {
		Card dto.CardResponse `json:"card"`
	}
	decode(t, resp, &card)

	resp = s.json(t, http.MethodPost, "/api/place_order", branchToken, dto.PlaceOrderRequest{
		PaymentMethod:  "Card Payment",
		PaymentDetails: dto.PaymentDetails{CardID: card.Card.ID},
		Suppliers: []dto.SupplierOrderRequest{{
			SupplierID: sup.Supplier.ID,
			Products:   []dto.OrderProductRequest{{ProductID: prod.Product.ID, Quantity: 1}},
		}},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "PAYMENT_FAILED", errorCode(t, resp))

	resp = s.json(t, http.MethodGet, "/api/get-all-orders", adminToken, nil)
	var orders []dto.OrderResponse
	decode(t, resp, &orders)
	assert.Empty(t, orders)
	assert.Empty(t, s.mail.subjects())
}
