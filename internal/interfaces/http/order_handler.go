package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/wholesale-api/internal/application/dto"
	"github.com/jhoicas/wholesale-api/internal/application/ordering"
	"github.com/jhoicas/wholesale-api/internal/application/usecase"
)

// cartCookie holds the storefront cart; cleared once the order is placed.
const cartCookie = "cart"

// OrderHandler ordering plus the branch address book.
type OrderHandler struct {
	orders *ordering.OrderUseCase
	book   *usecase.AddressBookUseCase
}

// NewOrderHandler builds the handler.
func NewOrderHandler(orders *ordering.OrderUseCase, book *usecase.AddressBookUseCase) *OrderHandler {
	return &OrderHandler{orders: orders, book: book}
}

// PlaceOrder godoc
// @Summary      Place an order
// @Description  Prices come from the catalog. Card payments charge the saved card before the order is stored.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PlaceOrderRequest  true  "cart"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/place_order [post]
func (h *OrderHandler) PlaceOrder(c *fiber.Ctx) error {
	var in dto.PlaceOrderRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	if in.PaymentDetails.CardID != "" {
		if err := requireID(in.PaymentDetails.CardID, "cardId"); err != nil {
			return err
		}
	}
	for _, g := range in.Suppliers {
		if err := optionalID(g.SupplierID, "supplierId"); err != nil {
			return err
		}
		for _, p := range g.Products {
			if err := requireID(p.ProductID, "productId"); err != nil {
				return err
			}
		}
	}

	out, err := h.orders.PlaceOrder(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return err
	}
	c.ClearCookie(cartCookie)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":  true,
		"message": "Order placed successfully",
		"order":   out,
	})
}

// List godoc
// @Summary      List every order
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.OrderResponse
// @Router       /api/get-all-orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	out, err := h.orders.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Get an order
// @Description  Admins read any order; a branch only its own.
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "order ID"
// @Success      200  {object}  dto.OrderResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/get-order/{id} [get]
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	out, err := h.orders.Get(c.UserContext(), GetUserID(c), GetRole(c), id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// ListForSupplier godoc
// @Summary      Orders containing a supplier's products
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        supplierId  path  string  true  "supplier ID"
// @Success      200  {array}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/get-orders-for-supplier/{supplierId} [get]
func (h *OrderHandler) ListForSupplier(c *fiber.Ctx) error {
	supplierID, err := pathID(c, "supplierId")
	if err != nil {
		return err
	}
	out, err := h.orders.ListForSupplier(c.UserContext(), supplierID)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GetSupplierOrder godoc
// @Summary      One order reduced to a supplier's lines
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        supplierId  path  string  true  "supplier ID"
// @Param        orderId     path  string  true  "order ID"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/get-supplier-order/{supplierId}/{orderId} [get]
func (h *OrderHandler) GetSupplierOrder(c *fiber.Ctx) error {
	supplierID, err := pathID(c, "supplierId")
	if err != nil {
		return err
	}
	orderID, err := pathID(c, "orderId")
	if err != nil {
		return err
	}
	out, err := h.orders.GetSupplierOrder(c.UserContext(), supplierID, orderID)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// ListForBranch godoc
// @Summary      Orders of a branch
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        branchId  path  string  true  "branch ID"
// @Success      200  {array}  dto.OrderResponse
// @Router       /api/get-orders-for-branch/{branchId} [get]
func (h *OrderHandler) ListForBranch(c *fiber.Ctx) error {
	branchID, err := pathID(c, "branchId")
	if err != nil {
		return err
	}
	out, err := h.orders.ListForBranch(c.UserContext(), branchID)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// AddAddress godoc
// @Summary      Save a delivery address
// @Tags         address-book
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddressRequest  true  "address"
// @Success      201   {object}  dto.AddressResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/add-delivery-address [post]
func (h *OrderHandler) AddAddress(c *fiber.Ctx) error {
	var in dto.AddressRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	out, err := h.book.AddAddress(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": true, "address": out})
}

// ListAddresses godoc
// @Summary      The caller's delivery addresses
// @Tags         address-book
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.AddressResponse
// @Router       /api/delivery-addresses [get]
func (h *OrderHandler) ListAddresses(c *fiber.Ctx) error {
	out, err := h.book.ListAddresses(c.UserContext(), GetUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// AddCard godoc
// @Summary      Save a payment card
// @Tags         address-book
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CardRequest  true  "card"
// @Success      201   {object}  dto.CardResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/add-card [post]
func (h *OrderHandler) AddCard(c *fiber.Ctx) error {
	var in dto.CardRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	out, err := h.book.AddCard(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": true, "card": out})
}

// ListCards godoc
// @Summary      The caller's saved cards
// @Description  Numbers are masked and the CVV is never returned.
// @Tags         address-book
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CardResponse
// @Router       /api/cards [get]
func (h *OrderHandler) ListCards(c *fiber.Ctx) error {
	out, err := h.book.ListCards(c.UserContext(), GetUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}
