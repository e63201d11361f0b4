package usecase

import (
	"context"
	"fmt"
	"sort"
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

// MaxProductImageBytes upper bound for product images.
const MaxProductImageBytes = 5 << 20

// maxPrice exclusive upper bound of a price stored as NUMERIC(12,2).
var maxPrice = decimal.New(1, 10)

// ProductUseCase product catalog management and the supplier catalog shown to branches.
type ProductUseCase struct {
	products   repository.ProductRepository
	suppliers  repository.SupplierRepository
	categories repository.CategoryRepository
	deliveries repository.DeliveryRepository
	images     ports.ImageStore
	vatRate    decimal.Decimal
	log        *logger.Logger
}

// NewProductUseCase builds the use case. vatStandardRate is the percentage applied to products flagged as VAT-able.
func NewProductUseCase(
	products repository.ProductRepository,
	suppliers repository.SupplierRepository,
	categories repository.CategoryRepository,
	deliveries repository.DeliveryRepository,
	images ports.ImageStore,
	vatStandardRate int,
	log *logger.Logger,
) *ProductUseCase {
	return &ProductUseCase{
		products:   products,
		suppliers:  suppliers,
		categories: categories,
		deliveries: deliveries,
		images:     images,
		vatRate:    decimal.NewFromInt(int64(vatStandardRate)),
		log:        log,
	}
}

// Create stores a product. The image is mandatory.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.ProductInput) (*dto.ProductResponse, error) {
	if in.Image == nil {
		return nil, fmt.Errorf("%w: product image is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	price, err := NormalizePrice(in.Price)
	if err != nil {
		return nil, err
	}
	vat, err := ParseVAT(in.VAT, uc.vatRate)
	if err != nil {
		return nil, err
	}
	supplier, category, err := uc.refs(ctx, in.SupplierID, in.CategoryID)
	if err != nil {
		return nil, err
	}
	image, err := uc.saveImage(ctx, in.Image)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	p := &entity.Product{
		ID:           uuid.New().String(),
		SupplierID:   supplier.ID,
		SupplierName: supplier.Name,
		CategoryID:   category.ID,
		CategoryName: category.Name,
		Image:        image,
		Name:         strings.TrimSpace(in.Name),
		SKU:          strings.TrimSpace(in.SKU),
		Price:        price,
		VAT:          vat,
		Status:       defaultString(in.Status, "active"),
		Description:  in.Description,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.products.Create(ctx, p); err != nil {
		discardImage(ctx, uc.images, uc.log, image)
		return nil, err
	}
	return toProductResponse(p), nil
}

// Update overwrites the product; blank supplier, category, name and VAT keep their value.
func (uc *ProductUseCase) Update(ctx context.Context, in dto.ProductInput) (*dto.ProductResponse, error) {
	p, err := uc.get(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	supplier, category, err := uc.refs(ctx, defaultString(in.SupplierID, p.SupplierID), defaultString(in.CategoryID, p.CategoryID))
	if err != nil {
		return nil, err
	}
	p.SupplierID, p.SupplierName = supplier.ID, supplier.Name
	p.CategoryID, p.CategoryName = category.ID, category.Name
	p.Name = defaultString(in.Name, p.Name)
	p.SKU = defaultString(in.SKU, p.SKU)
	price, err := NormalizePrice(in.Price)
	if err != nil {
		return nil, err
	}
	if !price.IsZero() {
		p.Price = price
	}
	if strings.TrimSpace(in.VAT) != "" {
		if p.VAT, err = ParseVAT(in.VAT, uc.vatRate); err != nil {
			return nil, err
		}
	}
	p.Status = defaultString(in.Status, p.Status)
	if in.Description != "" {
		p.Description = in.Description
	}
	oldImage, newImage := "", ""
	if in.Image != nil {
		if newImage, err = uc.saveImage(ctx, in.Image); err != nil {
			return nil, err
		}
		oldImage, p.Image = p.Image, newImage
	}
	p.UpdatedAt = time.Now()
	if err := uc.products.Update(ctx, p); err != nil {
		discardImage(ctx, uc.images, uc.log, newImage)
		return nil, err
	}
	discardImage(ctx, uc.images, uc.log, oldImage)
	return toProductResponse(p), nil
}

// List returns every product.
func (uc *ProductUseCase) List(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.products.List(ctx)
	if err != nil {
		return nil, err
	}
	return toProductResponses(list), nil
}

// ListBySupplier returns the catalog of one supplier.
func (uc *ProductUseCase) ListBySupplier(ctx context.Context, supplierID string) ([]dto.ProductResponse, error) {
	list, err := uc.products.ListBySupplier(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	return toProductResponses(list), nil
}

// GetByID returns one product.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	p, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// Delete removes a product. Past orders keep their snapshot of it.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	p, err := uc.get(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.products.Delete(ctx, id); err != nil {
		return err
	}
	discardImage(ctx, uc.images, uc.log, p.Image)
	return nil
}

// SuppliersWithDetails returns every supplier with its holidays, the days it delivers to the
// branch and its products grouped by category.
func (uc *ProductUseCase) SuppliersWithDetails(ctx context.Context, branchID string) ([]dto.SupplierDetailsResponse, error) {
	suppliers, err := uc.suppliers.List(ctx)
	if err != nil {
		return nil, err
	}
	schedules, err := uc.deliveries.ListByBranch(ctx, branchID)
	if err != nil {
		return nil, err
	}
	days := make(map[string][]string, len(schedules))
	for _, d := range schedules {
		days[d.SupplierID] = d.Days
	}

	out := make([]dto.SupplierDetailsResponse, 0, len(suppliers))
	for _, s := range suppliers {
		products, err := uc.products.ListBySupplier(ctx, s.ID)
		if err != nil {
			return nil, err
		}
		det := dto.SupplierDetailsResponse{
			SupplierResponse:    *toSupplierResponse(s),
			DeliveryDays:        days[s.ID],
			CategorizedProducts: groupByCategory(products),
		}
		if det.DeliveryDays == nil {
			det.DeliveryDays = []string{}
		}
		out = append(out, det)
	}
	return out, nil
}

func groupByCategory(products []*entity.Product) []dto.CategorizedProducts {
	idx := map[string]int{}
	var groups []dto.CategorizedProducts
	for _, p := range products {
		i, ok := idx[p.CategoryID]
		if !ok {
			i = len(groups)
			idx[p.CategoryID] = i
			groups = append(groups, dto.CategorizedProducts{
				CategoryResponse: dto.CategoryResponse{ID: p.CategoryID, Name: p.CategoryName},
				Products:         []dto.ProductResponse{},
			})
		}
		groups[i].Products = append(groups[i].Products, *toProductResponse(p))
	}
	sort.SliceStable(groups, func(a, b int) bool { return groups[a].Name < groups[b].Name })
	if groups == nil {
		groups = []dto.CategorizedProducts{}
	}
	return groups
}

func (uc *ProductUseCase) get(ctx context.Context, id string) (*entity.Product, error) {
	p, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (uc *ProductUseCase) refs(ctx context.Context, supplierID, categoryID string) (*entity.Supplier, *entity.Category, error) {
	if supplierID == "" || categoryID == "" {
		return nil, nil, fmt.Errorf("%w: supplier and category are required", domain.ErrInvalidInput)
	}
	s, err := uc.suppliers.GetByID(ctx, supplierID)
	if err != nil {
		return nil, nil, err
	}
	if s == nil {
		return nil, nil, fmt.Errorf("%w: supplier", domain.ErrNotFound)
	}
	c, err := uc.categories.GetByID(ctx, categoryID)
	if err != nil {
		return nil, nil, err
	}
	if c == nil {
		return nil, nil, fmt.Errorf("%w: category", domain.ErrNotFound)
	}
	return s, c, nil
}

func (uc *ProductUseCase) saveImage(ctx context.Context, f *dto.FileUpload) (string, error) {
	if len(f.Data) > MaxProductImageBytes {
		return "", fmt.Errorf("%w: image must be at most 5MB", domain.ErrInvalidInput)
	}
	return uc.images.Save(ctx, "products", *f)
}

func toProductResponses(list []*entity.Product) []dto.ProductResponse {
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toProductResponse(p))
	}
	return out
}

// NormalizePrice rounds to pence and rejects prices outside [0, 10^10).
func NormalizePrice(p decimal.Decimal) (decimal.Decimal, error) {
	p = p.Round(2)
	if p.IsNegative() || p.GreaterThanOrEqual(maxPrice) {
		return decimal.Zero, fmt.Errorf("%w: price must be between 0 and 9999999999.99", domain.ErrInvalidInput)
	}
	return p, nil
}

// ParseVAT turns the form's VAT field into a percentage: "true" is the standard rate,
// "false" or blank is zero, a number between 0 and 100 is taken as is.
func ParseVAT(flag string, standard decimal.Decimal) (decimal.Decimal, error) {
	switch strings.ToLower(strings.TrimSpace(flag)) {
	case "true", "yes", "on":
		return standard, nil
	case "", "false", "no", "off":
		return decimal.Zero, nil
	}
	v, err := decimal.NewFromString(strings.TrimSpace(flag))
	if err != nil || v.IsNegative() || v.GreaterThan(decimal.NewFromInt(100)) {
		return decimal.Zero, fmt.Errorf("%w: vat must be true, false or a percentage", domain.ErrInvalidInput)
	}
	return v, nil
}
