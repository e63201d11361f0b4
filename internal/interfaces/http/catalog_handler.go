package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/wholesale-api/internal/application/dto"
	"github.com/jhoicas/wholesale-api/internal/application/usecase"
)

// CatalogHandler categories and products.
type CatalogHandler struct {
	categories *usecase.CategoryUseCase
	products   *usecase.ProductUseCase
}

// NewCatalogHandler builds the handler.
func NewCatalogHandler(categories *usecase.CategoryUseCase, products *usecase.ProductUseCase) *CatalogHandler {
	return &CatalogHandler{categories: categories, products: products}
}

// ── categories ───────────────────────────────────────────────────────────────

func categoryForm(c *fiber.Ctx) (dto.CategoryInput, error) {
	img, err := formFile(c, imageField)
	if err != nil {
		return dto.CategoryInput{}, err
	}
	return dto.CategoryInput{ID: formValue(c, "id"), Name: formValue(c, "name"), Image: img}, nil
}

// AddCategory godoc
// @Summary      Create a category
// @Tags         categories
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        name   formData  string  true   "name"
// @Param        image  formData  file    false  "image, at most 2MB"
// @Success      201  {object}  dto.CategoryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/add-category [post]
func (h *CatalogHandler) AddCategory(c *fiber.Ctx) error {
	in, err := categoryForm(c)
	if err != nil {
		return err
	}
	out, err := h.categories.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": true, "category": out})
}

// UpdateCategory godoc
// @Summary      Update a category
// @Tags         categories
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        id     formData  string  true   "category ID"
// @Param        name   formData  string  false  "name"
// @Param        image  formData  file    false  "image, at most 2MB"
// @Success      200  {object}  dto.CategoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/update-category [post]
func (h *CatalogHandler) UpdateCategory(c *fiber.Ctx) error {
	in, err := categoryForm(c)
	if err != nil {
		return err
	}
	if err := requireID(in.ID, "id"); err != nil {
		return err
	}
	out, err := h.categories.Update(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"status": true, "category": out})
}

// ListCategories godoc
// @Summary      List categories
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CategoryResponse
// @Router       /api/get-categories [get]
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	out, err := h.categories.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GetCategory godoc
// @Summary      Get a category
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "category ID"
// @Success      200  {object}  dto.CategoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/get-category/{id} [get]
func (h *CatalogHandler) GetCategory(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	out, err := h.categories.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// DeleteCategory godoc
// @Summary      Delete a category
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "category ID"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/delete-category/{id} [delete]
func (h *CatalogHandler) DeleteCategory(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.categories.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Status: true, Message: "Category deleted"})
}

// ── products ─────────────────────────────────────────────────────────────────

func productForm(c *fiber.Ctx) (dto.ProductInput, error) {
	in := dto.ProductInput{
		ID:          formValue(c, "id"),
		SupplierID:  formValue(c, "supplier"),
		CategoryID:  formValue(c, "category"),
		Name:        formValue(c, "name"),
		SKU:         formValue(c, "sku"),
		VAT:         formValue(c, "vat"),
		Status:      formValue(c, "status"),
		Description: c.FormValue("description"),
	}
	if err := optionalID(in.SupplierID, "supplier"); err != nil {
		return in, err
	}
	if err := optionalID(in.CategoryID, "category"); err != nil {
		return in, err
	}
	price, err := formDecimal(c, "price")
	if err != nil {
		return in, err
	}
	in.Price = price
	if in.Image, err = formFile(c, imageField); err != nil {
		return in, err
	}
	return in, nil
}

// AddProduct godoc
// @Summary      Create a product
// @Tags         products
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        supplier     formData  string  true   "supplier ID"
// @Param        category     formData  string  true   "category ID"
// @Param        name         formData  string  true   "name"
// @Param        sku          formData  string  false  "SKU"
// @Param        price        formData  string  true   "unit price"
// @Param        vat          formData  string  false  "true, false or a percentage"
// @Param        status       formData  string  false  "status"
// @Param        description  formData  string  false  "description"
// @Param        image        formData  file    true   "image, at most 5MB"
// @Success      201  {object}  dto.ProductResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/add-product [post]
func (h *CatalogHandler) AddProduct(c *fiber.Ctx) error {
	in, err := productForm(c)
	if err != nil {
		return err
	}
	out, err := h.products.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": true, "product": out})
}

// UpdateProduct godoc
// @Summary      Update a product
// @Tags         products
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        id     formData  string  true   "product ID"
// @Param        image  formData  file    false  "image, at most 5MB"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/update-product [post]
func (h *CatalogHandler) UpdateProduct(c *fiber.Ctx) error {
	in, err := productForm(c)
	if err != nil {
		return err
	}
	if err := requireID(in.ID, "id"); err != nil {
		return err
	}
	out, err := h.products.Update(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"status": true, "product": out})
}

// ListProducts godoc
// @Summary      List products
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ProductResponse
// @Router       /api/get-all-products [get]
func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	out, err := h.products.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GetProduct godoc
// @Summary      Get a product
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "product ID"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/get-product/{id} [get]
func (h *CatalogHandler) GetProduct(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	out, err := h.products.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// ProductsBySupplier godoc
// @Summary      Products of a supplier
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        supplierId  path  string  true  "supplier ID"
// @Success      200  {array}  dto.ProductResponse
// @Router       /api/get-products-by-suppliers/{supplierId} [get]
func (h *CatalogHandler) ProductsBySupplier(c *fiber.Ctx) error {
	supplierID, err := pathID(c, "supplierId")
	if err != nil {
		return err
	}
	out, err := h.products.ListBySupplier(c.UserContext(), supplierID)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// DeleteProduct godoc
// @Summary      Delete a product
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "product ID"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/delete-product/{id} [delete]
func (h *CatalogHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.products.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Status: true, Message: "Product deleted"})
}

// SuppliersWithDetails godoc
// @Summary      Supplier catalog for the calling branch
// @Description  Suppliers with holidays, the caller's delivery days and products grouped by category.
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SupplierDetailsResponse
// @Router       /api/get-suppliers-with-details [get]
func (h *CatalogHandler) SuppliersWithDetails(c *fiber.Ctx) error {
	out, err := h.products.SuppliersWithDetails(c.UserContext(), GetUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}
