package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wholesale-api/internal/application/dto"
	"github.com/jhoicas/wholesale-api/internal/domain"
	"github.com/jhoicas/wholesale-api/internal/domain/entity"
	"github.com/jhoicas/wholesale-api/internal/domain/repository"
	"github.com/jhoicas/wholesale-api/internal/infrastructure/memory"
	"github.com/jhoicas/wholesale-api/pkg/logger"
)

// fakeImages records saved and deleted images.
type fakeImages struct {
	mu         sync.Mutex
	saved      []string
	deleted    []string
	failDelete bool
}

func (f *fakeImages) Save(_ context.Context, folder string, file dto.FileUpload) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	url := "/uploads/" + folder + "/" + file.Filename
	f.saved = append(f.saved, url)
	return url, nil
}

func (f *fakeImages) Delete(_ context.Context, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failDelete {
		return errors.New("bucket unavailable")
	}
	f.deleted = append(f.deleted, url)
	return nil
}

// recordingHolidays remembers the ids of calendars created through it.
type recordingHolidays struct {
	repository.HolidayRepository
	created []string
}

func (r *recordingHolidays) Create(ctx context.Context, h *entity.Holiday) error {
	r.created = append(r.created, h.ID)
	return r.HolidayRepository.Create(ctx, h)
}

func png(name string) *dto.FileUpload {
	return &dto.FileUpload{Filename: name, ContentType: "image/png", Data: []byte("png")}
}

type fixture struct {
	store      *memory.Store
	images     *fakeImages
	branches   *BranchUseCase
	suppliers  *SupplierUseCase
	categories *CategoryUseCase
	products   *ProductUseCase
	deliveries *DeliveryUseCase
	book       *AddressBookUseCase
}

func newFixture() *fixture {
	s := memory.NewStore()
	img := &fakeImages{}
	return &fixture{
		store:      s,
		images:     img,
		branches:   NewBranchUseCase(s.Users()),
		suppliers:  NewSupplierUseCase(s.Suppliers(), s.Holidays(), img, logger.Nop()),
		categories: NewCategoryUseCase(s.Categories(), img, logger.Nop()),
		products:   NewProductUseCase(s.Products(), s.Suppliers(), s.Categories(), s.Deliveries(), img, 20, logger.Nop()),
		deliveries: NewDeliveryUseCase(s.Deliveries(), s.Users(), s.Suppliers()),
		book:       NewAddressBookUseCase(s.Addresses(), s.Cards()),
	}
}

func (f *fixture) branch(t *testing.T, email string) *dto.UserResponse {
	t.Helper()
	b, err := f.branches.Create(context.Background(), dto.CreateBranchRequest{
		Name: "Shop " + email, Email: email, Password: "password123", City: "Leeds",
	})
	require.NoError(t, err)
	return b
}

func (f *fixture) supplier(t *testing.T, email string) *dto.SupplierResponse {
	t.Helper()
	s, err := f.suppliers.Create(context.Background(), dto.SupplierInput{Name: "Supplier " + email, Email: email})
	require.NoError(t, err)
	return s
}

func (f *fixture) category(t *testing.T, name string) *dto.CategoryResponse {
	t.Helper()
	c, err := f.categories.Create(context.Background(), dto.CategoryInput{Name: name})
	require.NoError(t, err)
	return c
}

// ── Branches ─────────────────────────────────────────────────────────────────

func TestBranch_CRUDRoundTrip(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.branches.Create(ctx, dto.CreateBranchRequest{
		Name: "Corner Shop", Email: "Corner@Example.co.uk", Password: "password123",
		StreetAddress: "1 High St", City: "York", PostalCode: "YO1 1AA", PaymentMethod: "Card Payment",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleBranch, created.Role)
	assert.Equal(t, "active", created.Status)
	assert.Equal(t, "corner@example.co.uk", created.Email)

	got, err := f.branches.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "York", got.Address.City)

	updated, err := f.branches.Update(ctx, dto.UpdateBranchRequest{
		ID: created.ID, Name: "Corner Shop Ltd", Email: "corner@example.co.uk", City: "Leeds", Status: "inactive",
	})
	require.NoError(t, err)
	assert.Equal(t, "Corner Shop Ltd", updated.Firstname)
	assert.Equal(t, "inactive", updated.Status)

	list, err := f.branches.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, f.branches.Delete(ctx, created.ID))
	_, err = f.branches.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, f.branches.Delete(ctx, created.ID), domain.ErrNotFound)
}

func TestBranch_DuplicateEmail(t *testing.T) {
	f := newFixture()
	f.branch(t, "shop@example.co.uk")

	_, err := f.branches.Create(context.Background(), dto.CreateBranchRequest{
		Name: "Again", Email: "SHOP@example.co.uk", Password: "password123",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

// ── Suppliers ────────────────────────────────────────────────────────────────

func TestSupplier_CreateNormalisesPhoneAndHolidays(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	dates, err := ParseHolidayDates(SplitHolidayList("25/12/2025, 2025-12-26,25/12/2025"))
	require.NoError(t, err)

	s, err := f.suppliers.Create(ctx, dto.SupplierInput{
		Name: "Fresh Farms", Email: "sales@freshfarms.co.uk", Phone: "07700 900123",
		Holidays: dates, Icon: png("farm.png"),
	})
	require.NoError(t, err)

	assert.Equal(t, "+447700900123", s.Phone)
	assert.Equal(t, "/uploads/suppliers/farm.png", s.Icon)
	require.NotNil(t, s.Holidays)
	assert.Len(t, s.Holidays.Holidays, 2, "duplicates collapse")

	got, err := f.suppliers.GetByID(ctx, s.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Holidays)
	assert.Equal(t, time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC), got.Holidays.Holidays[0])
}

func TestSupplier_InvalidPhone(t *testing.T) {
	f := newFixture()
	_, err := f.suppliers.Create(context.Background(), dto.SupplierInput{Name: "X", Email: "x@example.co.uk", Phone: "12345"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSupplier_IconTooLarge(t *testing.T) {
	f := newFixture()
	big := &dto.FileUpload{Filename: "big.png", ContentType: "image/png", Data: make([]byte, MaxIconBytes+1)}

	_, err := f.suppliers.Create(context.Background(), dto.SupplierInput{Name: "X", Email: "x@example.co.uk", Icon: big})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSupplier_PartialUpdateKeepsFields(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	s, err := f.suppliers.Create(ctx, dto.SupplierInput{
		Name: "Fresh Farms", Email: "sales@freshfarms.co.uk", City: "Hull", Icon: png("old.png"),
	})
	require.NoError(t, err)

	dates, err := ParseHolidayDates([]string{"01/01/2026"})
	require.NoError(t, err)
	updated, err := f.suppliers.Update(ctx, dto.SupplierInput{
		ID: s.ID, Name: "Fresh Farms Ltd", Holidays: dates, HolidaysSet: true, Icon: png("new.png"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Fresh Farms Ltd", updated.Name)
	assert.Equal(t, "sales@freshfarms.co.uk", updated.Email)
	assert.Equal(t, "Hull", updated.Address.City)
	assert.Equal(t, "/uploads/suppliers/new.png", updated.Icon)
	require.NotNil(t, updated.Holidays)
	assert.Len(t, updated.Holidays.Holidays, 1)
	assert.Contains(t, f.images.deleted, "/uploads/suppliers/old.png")

	_, err = f.suppliers.Update(ctx, dto.SupplierInput{ID: "missing"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSupplier_SetHolidays(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	s := f.supplier(t, "a@example.co.uk")

	out, err := f.suppliers.SetHolidays(ctx, dto.SetHolidayRequest{SupplierID: s.ID, NewHolidays: []string{"24/12/2025", "31/12/2025"}})
	require.NoError(t, err)
	require.NotNil(t, out.Holidays)
	assert.Len(t, out.Holidays.Holidays, 2)

	out, err = f.suppliers.SetHolidays(ctx, dto.SetHolidayRequest{SupplierID: s.ID, NewHolidays: []string{"01/01/2026"}})
	require.NoError(t, err)
	assert.Len(t, out.Holidays.Holidays, 1, "calendar is replaced, not appended")

	_, err = f.suppliers.SetHolidays(ctx, dto.SetHolidayRequest{SupplierID: s.ID, NewHolidays: []string{"31/02/2025"}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.suppliers.SetHolidays(ctx, dto.SetHolidayRequest{SupplierID: "missing", NewHolidays: []string{"01/01/2026"}})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSupplier_DeleteRefusedWhenOrdered(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	b := f.branch(t, "shop@example.co.uk")
	s := f.supplier(t, "a@example.co.uk")

	require.NoError(t, f.store.Orders().Create(ctx, &entity.Order{
		ID: "00000000-0000-0000-0000-0000000000aa", BranchID: b.ID, CreatedAt: time.Now(),
		Items: []entity.OrderItem{{SupplierID: s.ID, ProductName: "Milk", Quantity: 1, UnitPrice: decimal.NewFromInt(1)}},
	}))

	assert.ErrorIs(t, f.suppliers.Delete(ctx, s.ID), domain.ErrConflict)

	other := f.supplier(t, "b@example.co.uk")
	require.NoError(t, f.suppliers.Delete(ctx, other.ID))
	_, err := f.suppliers.GetByID(ctx, other.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSupplier_FailedCreateLeavesNothingBehind(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	holidays := &recordingHolidays{HolidayRepository: f.store.Holidays()}
	uc := NewSupplierUseCase(f.store.Suppliers(), holidays, f.images, logger.Nop())

	f.supplier(t, "a@example.co.uk")
	dates, err := ParseHolidayDates([]string{"25/12/2025"})
	require.NoError(t, err)

	_, err = uc.Create(ctx, dto.SupplierInput{
		Name: "Copy", Email: "A@example.co.uk", Icon: png("b.png"), Holidays: dates,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	assert.Equal(t, []string{"/uploads/suppliers/b.png"}, f.images.saved)
	assert.ElementsMatch(t, f.images.saved, f.images.deleted)
	require.Len(t, holidays.created, 1)
	h, err := f.store.Holidays().GetByID(ctx, holidays.created[0])
	require.NoError(t, err)
	assert.Nil(t, h)
}

func TestSupplier_FailedUpdateRestoresCalendarAndIcon(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.supplier(t, "a@example.co.uk")

	christmas, err := ParseHolidayDates([]string{"25/12/2025"})
	require.NoError(t, err)
	b, err := f.suppliers.Create(ctx, dto.SupplierInput{
		Name: "B", Email: "b@example.co.uk", Icon: png("b.png"), Holidays: christmas,
	})
	require.NoError(t, err)

	newYear, err := ParseHolidayDates([]string{"01/01/2026", "02/01/2026"})
	require.NoError(t, err)
	_, err = f.suppliers.Update(ctx, dto.SupplierInput{
		ID: b.ID, Email: "a@example.co.uk", Icon: png("b2.png"), Holidays: newYear, HolidaysSet: true,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	got, err := f.suppliers.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "/uploads/suppliers/b.png", got.Icon)
	require.NotNil(t, got.Holidays)
	assert.Equal(t, christmas, got.Holidays.Holidays)
	assert.Equal(t, []string{"/uploads/suppliers/b2.png"}, f.images.deleted)

	// a supplier without a calendar gets none when the update fails
	c := f.supplier(t, "c@example.co.uk")
	_, err = f.suppliers.Update(ctx, dto.SupplierInput{ID: c.ID, Email: "a@example.co.uk", Holidays: newYear, HolidaysSet: true})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	got, err = f.suppliers.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Holidays)
}

func TestSupplier_DeleteRemovesCalendar(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	dates, err := ParseHolidayDates([]string{"25/12/2025"})
	require.NoError(t, err)
	s, err := f.suppliers.Create(ctx, dto.SupplierInput{Name: "A", Email: "a@example.co.uk", Holidays: dates})
	require.NoError(t, err)
	stored, err := f.store.Suppliers().GetByID(ctx, s.ID)
	require.NoError(t, err)
	require.NotEmpty(t, stored.HolidayID)

	require.NoError(t, f.suppliers.Delete(ctx, s.ID))

	h, err := f.store.Holidays().GetByID(ctx, stored.HolidayID)
	require.NoError(t, err)
	assert.Nil(t, h)
}

func TestSupplier_DeleteSucceedsWhenIconRemovalFails(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	s, err := f.suppliers.Create(ctx, dto.SupplierInput{Name: "A", Email: "a@example.co.uk", Icon: png("a.png")})
	require.NoError(t, err)

	f.images.failDelete = true
	require.NoError(t, f.suppliers.Delete(ctx, s.ID))
	_, err = f.suppliers.GetByID(ctx, s.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ── Categories ───────────────────────────────────────────────────────────────

func TestCategory_CRUDRoundTrip(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	c, err := f.categories.Create(ctx, dto.CategoryInput{Name: "Dairy", Image: png("dairy.png")})
	require.NoError(t, err)
	assert.Equal(t, "/uploads/categories/dairy.png", c.Image)

	_, err = f.categories.Create(ctx, dto.CategoryInput{Name: "Dairy"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	u, err := f.categories.Update(ctx, dto.CategoryInput{ID: c.ID, Name: "Dairy & Eggs"})
	require.NoError(t, err)
	assert.Equal(t, "Dairy & Eggs", u.Name)
	assert.Equal(t, c.Image, u.Image, "image kept when none uploaded")

	got, err := f.categories.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dairy & Eggs", got.Name)

	require.NoError(t, f.categories.Delete(ctx, c.ID))
	_, err = f.categories.GetByID(ctx, c.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCategory_FailedWritesDiscardNewImage(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.category(t, "Dairy")
	drinks, err := f.categories.Create(ctx, dto.CategoryInput{Name: "Drinks", Image: png("drinks.png")})
	require.NoError(t, err)

	_, err = f.categories.Create(ctx, dto.CategoryInput{Name: "Dairy", Image: png("dairy.png")})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = f.categories.Update(ctx, dto.CategoryInput{ID: drinks.ID, Name: "Dairy", Image: png("drinks2.png")})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	assert.ElementsMatch(t, []string{"/uploads/categories/dairy.png", "/uploads/categories/drinks2.png"}, f.images.deleted)
	got, err := f.categories.GetByID(ctx, drinks.ID)
	require.NoError(t, err)
	assert.Equal(t, "/uploads/categories/drinks.png", got.Image)
}

func TestCategory_DeleteInUse(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	s := f.supplier(t, "a@example.co.uk")
	c := f.category(t, "Bakery")

	_, err := f.products.Create(ctx, dto.ProductInput{
		SupplierID: s.ID, CategoryID: c.ID, Name: "Bread", Price: decimal.NewFromInt(2), Image: png("bread.png"),
	})
	require.NoError(t, err)

	assert.ErrorIs(t, f.categories.Delete(ctx, c.ID), domain.ErrConflict)
}

// ── Products ─────────────────────────────────────────────────────────────────

func TestParseVAT(t *testing.T) {
	standard := decimal.NewFromInt(20)
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"true", "20", false},
		{"TRUE", "20", false},
		{"false", "0", false},
		{"", "0", false},
		{"5", "5", false},
		{"12.5", "12.5", false},
		{"101", "", true},
		{"-1", "", true},
		{"maybe", "", true},
	}
	for _, tc := range cases {
		got, err := ParseVAT(tc.in, standard)
		if tc.wantErr {
			assert.ErrorIs(t, err, domain.ErrInvalidInput, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		assert.True(t, decimal.RequireFromString(tc.want).Equal(got), "%q -> %s", tc.in, got)
	}
}

func TestNormalizePrice(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"0", "0", false},
		{"12.99", "12.99", false},
		{"1.005", "1.01", false},
		{"2.004", "2", false},
		{"9999999999.99", "9999999999.99", false},
		{"9999999999.995", "", true},
		{"10000000000", "", true},
		{"-0.01", "", true},
	}
	for _, tc := range cases {
		got, err := NormalizePrice(decimal.RequireFromString(tc.in))
		if tc.wantErr {
			assert.ErrorIs(t, err, domain.ErrInvalidInput, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		assert.True(t, decimal.RequireFromString(tc.want).Equal(got), "%s -> %s", tc.in, got)
	}
}

func TestProduct_PriceStoredAtTwoDecimals(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	s := f.supplier(t, "a@example.co.uk")
	c := f.category(t, "Drinks")

	_, err := f.products.Create(ctx, dto.ProductInput{
		SupplierID: s.ID, CategoryID: c.ID, Name: "Cola", Price: decimal.RequireFromString("10000000000"), Image: png("cola.png"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, f.images.saved, "rejected before the upload")

	p, err := f.products.Create(ctx, dto.ProductInput{
		SupplierID: s.ID, CategoryID: c.ID, Name: "Cola", Price: decimal.RequireFromString("1.005"), Image: png("cola.png"),
	})
	require.NoError(t, err)
	assert.Equal(t, "1.01", p.Price.String())

	stored, err := f.products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "1.01", stored.Price.String())

	_, err = f.products.Update(ctx, dto.ProductInput{ID: p.ID, Price: decimal.RequireFromString("-3")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProduct_CRUDRoundTrip(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	s := f.supplier(t, "a@example.co.uk")
	c := f.category(t, "Drinks")

	_, err := f.products.Create(ctx, dto.ProductInput{SupplierID: s.ID, CategoryID: c.ID, Name: "Cola", Price: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "image is required")

	_, err = f.products.Create(ctx, dto.ProductInput{SupplierID: "missing", CategoryID: c.ID, Name: "Cola", Image: png("cola.png")})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	p, err := f.products.Create(ctx, dto.ProductInput{
		SupplierID: s.ID, CategoryID: c.ID, Name: "Cola", SKU: "COLA-24",
		Price: decimal.RequireFromString("12.99"), VAT: "true", Image: png("cola.png"),
	})
	require.NoError(t, err)
	assert.True(t, p.VAT.Equal(decimal.NewFromInt(20)))
	assert.Equal(t, s.Name, p.Supplier.Name)
	assert.Equal(t, "Drinks", p.Category.Name)

	u, err := f.products.Update(ctx, dto.ProductInput{ID: p.ID, Price: decimal.RequireFromString("13.49"), VAT: "false"})
	require.NoError(t, err)
	assert.Equal(t, "Cola", u.Name)
	assert.True(t, u.Price.Equal(decimal.RequireFromString("13.49")))
	assert.True(t, u.VAT.IsZero())

	bySupplier, err := f.products.ListBySupplier(ctx, s.ID)
	require.NoError(t, err)
	assert.Len(t, bySupplier, 1)

	require.NoError(t, f.products.Delete(ctx, p.ID))
	_, err = f.products.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, f.images.deleted, "/uploads/products/cola.png")
}

func TestProduct_SuppliersWithDetails(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	b := f.branch(t, "shop@example.co.uk")
	s := f.supplier(t, "a@example.co.uk")
	f.supplier(t, "b@example.co.uk")
	drinks := f.category(t, "Drinks")
	bakery := f.category(t, "Bakery")

	for _, in := range []dto.ProductInput{
		{SupplierID: s.ID, CategoryID: drinks.ID, Name: "Cola", Price: decimal.NewFromInt(1), Image: png("1.png")},
		{SupplierID: s.ID, CategoryID: bakery.ID, Name: "Bread", Price: decimal.NewFromInt(2), Image: png("2.png")},
		{SupplierID: s.ID, CategoryID: drinks.ID, Name: "Water", Price: decimal.NewFromInt(1), Image: png("3.png")},
	} {
		_, err := f.products.Create(ctx, in)
		require.NoError(t, err)
	}
	_, err := f.deliveries.Create(ctx, dto.DeliveryRequest{Branch: b.ID, Supplier: s.ID, Days: []string{"friday", "Monday"}})
	require.NoError(t, err)

	out, err := f.products.SuppliersWithDetails(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, out, 2)

	var withProducts dto.SupplierDetailsResponse
	for _, d := range out {
		if d.ID == s.ID {
			withProducts = d
		} else {
			assert.Empty(t, d.DeliveryDays)
			assert.Empty(t, d.CategorizedProducts)
		}
	}
	assert.Equal(t, []string{"Monday", "Friday"}, withProducts.DeliveryDays)
	require.Len(t, withProducts.CategorizedProducts, 2)
	assert.Equal(t, "Bakery", withProducts.CategorizedProducts[0].Name)
	assert.Len(t, withProducts.CategorizedProducts[1].Products, 2)
}

// ── Deliveries ───────────────────────────────────────────────────────────────

func TestDelivery_CRUDRoundTrip(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	b := f.branch(t, "shop@example.co.uk")
	s := f.supplier(t, "a@example.co.uk")

	d, err := f.deliveries.Create(ctx, dto.DeliveryRequest{Branch: b.ID, Supplier: s.ID, Days: []string{"Tuesday", "tuesday"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Tuesday"}, d.Days)
	assert.Equal(t, b.ID, d.Branch.ID)
	assert.Equal(t, s.ID, d.Supplier.ID)

	_, err = f.deliveries.Create(ctx, dto.DeliveryRequest{Branch: b.ID, Supplier: s.ID, Days: []string{"Monday"}})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = f.deliveries.Create(ctx, dto.DeliveryRequest{Branch: b.ID, Supplier: s.ID, Days: []string{"Funday"}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.deliveries.Create(ctx, dto.DeliveryRequest{Branch: "missing", Supplier: s.ID, Days: []string{"Monday"}})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	u, err := f.deliveries.Update(ctx, d.ID, dto.DeliveryRequest{Branch: b.ID, Supplier: s.ID, Days: []string{"Saturday", "Wednesday"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Wednesday", "Saturday"}, u.Days)

	mine, err := f.deliveries.GetForBranch(ctx, b.ID, s.ID)
	require.NoError(t, err)
	assert.Equal(t, d.ID, mine.ID)

	all, err := f.deliveries.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, f.deliveries.Delete(ctx, d.ID))
	_, err = f.deliveries.GetByID(ctx, d.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ── Address book ─────────────────────────────────────────────────────────────

func TestAddressBook_Addresses(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	b := f.branch(t, "shop@example.co.uk")

	a, err := f.book.AddAddress(ctx, b.ID, dto.AddressRequest{AddressLine1: "1 High St", Postcode: "yo1 1aa", TownCity: "York"})
	require.NoError(t, err)
	assert.Equal(t, "YO1 1AA", a.Postcode)

	list, err := f.book.ListAddresses(ctx, b.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	other, err := f.book.ListAddresses(ctx, "someone-else")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestAddressBook_CardsAreMasked(t *testing.T) {
	f := newFixture()
	f.book.now = func() time.Time { return time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC) }
	ctx := context.Background()

	c, err := f.book.AddCard(ctx, "branch-1", dto.CardRequest{
		CardHolderName: "A Shopkeeper", CardNumber: "4111 1111 1111 1111", ExpiryDate: "06/25", CVV: "123",
	})
	require.NoError(t, err)
	assert.Equal(t, "************1111", c.CardNumber)

	stored, err := f.store.Cards().GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "4111111111111111", stored.CardNumber)

	_, err = f.book.AddCard(ctx, "branch-1", dto.CardRequest{CardHolderName: "A", CardNumber: "4111111111111111", ExpiryDate: "05/25", CVV: "123"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "expired card")

	_, err = f.book.AddCard(ctx, "branch-1", dto.CardRequest{CardHolderName: "A", CardNumber: "4111111111111111", ExpiryDate: "13/25", CVV: "123"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	cards, err := f.book.ListCards(ctx, "branch-1")
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.False(t, strings.Contains(cards[0].CardNumber, "4111111111"))
}
