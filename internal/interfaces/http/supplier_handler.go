package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/wholesale-api/internal/application/dto"
	"github.com/jhoicas/wholesale-api/internal/application/usecase"
)

// SupplierHandler suppliers, their holiday calendars and delivery schedules.
type SupplierHandler struct {
	suppliers  *usecase.SupplierUseCase
	deliveries *usecase.DeliveryUseCase
}

// NewSupplierHandler builds the handler.
func NewSupplierHandler(suppliers *usecase.SupplierUseCase, deliveries *usecase.DeliveryUseCase) *SupplierHandler {
	return &SupplierHandler{suppliers: suppliers, deliveries: deliveries}
}

// supplierForm reads the multipart supplier form. Holidays arrive comma separated on create
// and as a JSON array on update; holidayValues accepts both.
func supplierForm(c *fiber.Ctx) (dto.SupplierInput, error) {
	in := dto.SupplierInput{
		ID:            formValue(c, "id"),
		Name:          formValue(c, "name"),
		Email:         formValue(c, "email"),
		Phone:         formValue(c, "phone"),
		StreetAddress: formValue(c, "streetAddress"),
		City:          formValue(c, "city"),
		Postcode:      formValue(c, "postcode"),
		Status:        formValue(c, "status"),
	}
	if formHas(c, "holidays") {
		dates, err := usecase.ParseHolidayDates(holidayValues(c.FormValue("holidays")))
		if err != nil {
			return in, err
		}
		in.Holidays, in.HolidaysSet = dates, true
	}
	icon, err := formFile(c, imageField)
	if err != nil {
		return in, err
	}
	in.Icon = icon
	return in, nil
}

// Create godoc
// @Summary      Create a supplier
// @Tags         suppliers
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        name           formData  string  true   "name"
// @Param        email          formData  string  true   "email"
// @Param        phone          formData  string  false  "phone"
// @Param        streetAddress  formData  string  false  "street"
// @Param        city           formData  string  false  "city"
// @Param        postcode       formData  string  false  "postcode"
// @Param        holidays       formData  string  false  "comma separated dates"
// @Param        status         formData  string  false  "status"
// @Param        image          formData  file    false  "icon, at most 2MB"
// @Success      201  {object}  dto.SupplierResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/create-supplier [post]
func (h *SupplierHandler) Create(c *fiber.Ctx) error {
	in, err := supplierForm(c)
	if err != nil {
		return err
	}
	out, err := h.suppliers.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": true, "supplier": out})
}

// Update godoc
// @Summary      Update a supplier
// @Description  Partial update; blank fields keep their value. holidays is a JSON array of dd/mm/yyyy dates.
// @Tags         suppliers
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        id        formData  string  true   "supplier ID"
// @Param        holidays  formData  string  false  "JSON array of dates"
// @Param        image     formData  file    false  "icon, at most 2MB"
// @Success      200  {object}  dto.SupplierResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/update-supplier [post]
func (h *SupplierHandler) Update(c *fiber.Ctx) error {
	in, err := supplierForm(c)
	if err != nil {
		return err
	}
	if err := requireID(in.ID, "id"); err != nil {
		return err
	}
	out, err := h.suppliers.Update(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"status": true, "supplier": out})
}

// List godoc
// @Summary      List suppliers
// @Tags         suppliers
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SupplierResponse
// @Router       /api/get-suppliers [get]
func (h *SupplierHandler) List(c *fiber.Ctx) error {
	out, err := h.suppliers.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Get a supplier
// @Tags         suppliers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "supplier ID"
// @Success      200  {object}  dto.SupplierResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/get-supplier/{id} [get]
func (h *SupplierHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	out, err := h.suppliers.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// SetHolidays godoc
// @Summary      Replace a supplier's holidays
// @Tags         suppliers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SetHolidayRequest  true  "supplierId, newHolidays"
// @Success      200   {object}  dto.SupplierResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/set-holiday [post]
func (h *SupplierHandler) SetHolidays(c *fiber.Ctx) error {
	var in dto.SetHolidayRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	if err := requireID(in.SupplierID, "supplierId"); err != nil {
		return err
	}
	out, err := h.suppliers.SetHolidays(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"status": true, "supplier": out})
}

// Delete godoc
// @Summary      Delete a supplier
// @Tags         suppliers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "supplier ID"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/delete-supplier/{id} [delete]
func (h *SupplierHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.suppliers.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Status: true, Message: "Supplier deleted"})
}

// ListDeliveryDays godoc
// @Summary      List delivery schedules
// @Tags         delivery
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.DeliveryResponse
// @Router       /api/get-delivery-days [get]
func (h *SupplierHandler) ListDeliveryDays(c *fiber.Ctx) error {
	out, err := h.deliveries.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GetDeliveryDay godoc
// @Summary      Get a delivery schedule
// @Tags         delivery
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "schedule ID"
// @Success      200  {object}  dto.DeliveryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/get-delivery-day/{id} [get]
func (h *SupplierHandler) GetDeliveryDay(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	out, err := h.deliveries.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// DeliveryDaysForBranch godoc
// @Summary      The caller's delivery schedule with a supplier
// @Tags         delivery
// @Security     Bearer
// @Produce      json
// @Param        supplierId  path  string  true  "supplier ID"
// @Success      200  {object}  dto.DeliveryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/get-delivery-days-with-shop/{supplierId} [get]
func (h *SupplierHandler) DeliveryDaysForBranch(c *fiber.Ctx) error {
	supplierID, err := pathID(c, "supplierId")
	if err != nil {
		return err
	}
	out, err := h.deliveries.GetForBranch(c.UserContext(), GetUserID(c), supplierID)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// AddDeliveryDays godoc
// @Summary      Create a delivery schedule
// @Tags         delivery
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DeliveryRequest  true  "branch, supplier, days"
// @Success      201   {object}  dto.DeliveryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/add-delivery-days [post]
func (h *SupplierHandler) AddDeliveryDays(c *fiber.Ctx) error {
	in, err := deliveryBody(c)
	if err != nil {
		return err
	}
	out, err := h.deliveries.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": true, "delivery": out})
}

// EditDeliveryDays godoc
// @Summary      Update a delivery schedule
// @Tags         delivery
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "schedule ID"
// @Param        body  body  dto.DeliveryRequest  true  "branch, supplier, days"
// @Success      200   {object}  dto.DeliveryResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/edit-delivery-days/{id} [post]
func (h *SupplierHandler) EditDeliveryDays(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	in, err := deliveryBody(c)
	if err != nil {
		return err
	}
	out, err := h.deliveries.Update(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"status": true, "message": "Delivery days updated successfully", "delivery": out})
}

// DeleteDeliveryDays godoc
// @Summary      Delete a delivery schedule
// @Tags         delivery
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "schedule ID"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/delete-delivery-days/{id} [delete]
func (h *SupplierHandler) DeleteDeliveryDays(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.deliveries.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Status: true, Message: "Delivery days deleted"})
}

func deliveryBody(c *fiber.Ctx) (dto.DeliveryRequest, error) {
	var in dto.DeliveryRequest
	if err := bind(c, &in); err != nil {
		return in, err
	}
	if err := requireID(in.Branch, "branch"); err != nil {
		return in, err
	}
	return in, requireID(in.Supplier, "supplier")
}
