package order

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/mstanvir/garment-track-backend/internal/access"
	"github.com/mstanvir/garment-track-backend/internal/listing"
	"github.com/mstanvir/garment-track-backend/internal/product"
)

// MsgOnlyPendingCancellable is shown when a buyer tries to cancel an
// order that already moved past pending.
const MsgOnlyPendingCancellable = "Only pending orders can be cancelled"

type Handler struct {
	service  *Service
	products product.ServiceInterface
}

func NewHandler(service *Service, products product.ServiceInterface) *Handler {
	return &Handler{service: service, products: products}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/orders", h.createOrder)
	app.Get("/orders", h.getOrders)
	app.Get("/orders/:id", h.getOrder)
	app.Patch("/orders/:id/status", h.updateStatus)
}

type createOrderRequest struct {
	ProductID       int    `json:"productId"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Quantity        int    `json:"quantity"`
	ContactNumber   string `json:"contactNumber"`
	DeliveryAddress string `json:"deliveryAddress"`
	Notes           string `json:"notes"`
}

func (h *Handler) createOrder(c *fiber.Ctx) error {
	ident := access.IdentityFromCtx(c)
	if ident.Email == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	payload := new(createOrderRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	errs := map[string]string{}
	if payload.FirstName == "" {
		errs["firstName"] = "First name is required"
	}
	if payload.LastName == "" {
		errs["lastName"] = "Last name is required"
	}
	if payload.ContactNumber == "" {
		errs["contactNumber"] = "Contact number is required"
	}
	if payload.DeliveryAddress == "" {
		errs["deliveryAddress"] = "Delivery address is required"
	}
	if len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	p, err := h.products.GetByID(payload.ProductID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Product not found"})
	}

	// quantity bounds come from the product; nothing is sent on failure
	if msg := ValidateQuantity(payload.Quantity, p.MinimumOrderQuantity, p.AvailableQuantity); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": fiber.Map{"quantity": msg}})
	}

	paymentStatus := "COD"
	if p.PaymentOption == product.PaymentGateway {
		paymentStatus = "pending"
	}

	o := Order{
		TrackingID:      uuid.NewString(),
		UserEmail:       ident.Email,
		FirstName:       payload.FirstName,
		LastName:        payload.LastName,
		ProductID:       p.ID,
		ProductName:     p.Name,
		Price:           p.Price,
		Quantity:        payload.Quantity,
		OrderTotal:      Total(payload.Quantity, p.Price),
		ContactNumber:   payload.ContactNumber,
		DeliveryAddress: payload.DeliveryAddress,
		Notes:           payload.Notes,
		PaymentStatus:   paymentStatus,
		CreatedAt:       time.Now().UTC().Format(time.RFC3339),
	}

	created, err := h.service.Create(o)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"insertedId": created.ID, "order": created})
}

// getOrders lists orders. Buyers only ever see their own; admin and
// manager see everything unless they pass ?email= to scope down.
// Optional q (substring search), status and page narrow the result.
func (h *Handler) getOrders(c *fiber.Ctx) error {
	ident := access.IdentityFromCtx(c)
	if ident.Email == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	email := c.Query("email")
	if ident.Role != access.RoleAdmin && ident.Role != access.RoleManager {
		email = ident.Email
	}

	var orders []Order
	if email != "" {
		orders = h.service.ListByEmail(email)
	} else {
		orders = h.service.List()
	}

	query := c.Query("q")
	filtered := listing.Filter(orders, func(o Order) bool { return o.Matches(query) })
	if status := c.Query("status"); status != "" {
		filtered = listing.Filter(filtered, func(o Order) bool { return o.Status == Status(status) })
	}

	pageParam := c.Query("page")
	if pageParam == "" {
		return c.JSON(filtered)
	}
	page, err := strconv.Atoi(pageParam)
	if err != nil {
		page = 1
	}
	return c.JSON(fiber.Map{
		"orders":    listing.Page(filtered, page, listing.DefaultPageSize),
		"page":      page,
		"pageCount": listing.PageCount(len(filtered), listing.DefaultPageSize),
		"total":     len(filtered),
	})
}

func (h *Handler) getOrder(c *fiber.Ctx) error {
	ident := access.IdentityFromCtx(c)
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}

	o, err := h.service.GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Order not found"})
	}
	if ident.Role != access.RoleAdmin && ident.Role != access.RoleManager && o.UserEmail != ident.Email {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": access.MsgForbidden})
	}
	return c.JSON(o)
}

type statusUpdateRequest struct {
	Status Status `json:"status"`
}

func (h *Handler) updateStatus(c *fiber.Ctx) error {
	ident := access.IdentityFromCtx(c)
	if ident.Email == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}

	payload := new(statusUpdateRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	modified, err := h.service.Transition(id, payload.Status, ident.Role, ident.Email)
	if err != nil {
		switch err {
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Order not found"})
		case ErrUnknownStatus:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "unknown order status"})
		case ErrNotCancellable:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": MsgOnlyPendingCancellable})
		case ErrNotOwner:
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": access.MsgForbidden})
		case ErrIllegalTransition:
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "illegal status transition"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}

	return c.JSON(fiber.Map{"modifiedCount": modified})
}
