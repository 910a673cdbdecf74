package product

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/mstanvir/garment-track-backend/internal/access"
	"github.com/mstanvir/garment-track-backend/internal/listing"
)

type Handler struct {
	service ServiceInterface
}

func NewHandler(service ServiceInterface) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/products/home", h.getHomeProducts)
	app.Get("/products", h.getProducts)
	app.Get("/products/:id", h.getProduct)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	manager := access.Require(access.CapManager)
	managerOrAdmin := access.RequireAny(access.CapManager, access.CapAdmin)

	app.Post("/products", manager, h.createProduct)
	app.Patch("/products/:id", managerOrAdmin, h.updateProduct)
	app.Delete("/products/:id", managerOrAdmin, h.deleteProduct)
}

// getProducts lists the catalog. Optional query params: owner narrows
// to one manager's products, q is a case-insensitive substring search
// over name and category, page selects a fixed-size page of the
// filtered result.
func (h *Handler) getProducts(c *fiber.Ctx) error {
	products := h.service.List()

	if owner := c.Query("owner"); owner != "" {
		products = listing.Filter(products, func(p Product) bool { return p.CreatedBy == owner })
	}

	query := c.Query("q")
	filtered := listing.Filter(products, func(p Product) bool { return p.Matches(query) })

	pageParam := c.Query("page")
	if pageParam == "" {
		return c.JSON(filtered)
	}

	page, err := strconv.Atoi(pageParam)
	if err != nil {
		page = 1
	}
	return c.JSON(fiber.Map{
		"products":  listing.Page(filtered, page, listing.DefaultPageSize),
		"page":      page,
		"pageCount": listing.PageCount(len(filtered), listing.DefaultPageSize),
		"total":     len(filtered),
	})
}

func (h *Handler) getHomeProducts(c *fiber.Ctx) error {
	return c.JSON(h.service.ListHome())
}

func (h *Handler) getProduct(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}

	p, err := h.service.GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Product not found"})
	}
	return c.JSON(p)
}

func validateProductPayload(p *Product) map[string]string {
	errs := map[string]string{}
	if p.Name == "" {
		errs["name"] = "name is required"
	}
	if !ValidCategory(p.Category) {
		errs["category"] = "invalid category"
	}
	if p.Price <= 0 {
		errs["price"] = "price must be positive"
	}
	if p.AvailableQuantity < 0 {
		errs["availableQuantity"] = "availableQuantity must be >= 0"
	}
	if p.MinimumOrderQuantity < 1 {
		errs["minimumOrderQuantity"] = "minimumOrderQuantity must be >= 1"
	}
	if !ValidPaymentOption(p.PaymentOption) {
		errs["paymentOption"] = "invalid payment option"
	}
	if len(p.Images) == 0 {
		errs["images"] = "at least one image is required"
	}
	if p.Description == "" {
		errs["description"] = "description is required"
	}
	return errs
}

func (h *Handler) createProduct(c *fiber.Ctx) error {
	p := new(Product)
	if err := c.BodyParser(p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if ves := validateProductPayload(p); len(ves) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": ves})
	}

	now := time.Now().UTC().Format(time.RFC3339)
	p.CreatedAt = now
	p.UpdatedAt = now
	if ident := access.IdentityFromCtx(c); ident.Email != "" {
		p.CreatedBy = ident.Email
	}

	created, err := h.service.Create(*p)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"insertedId": created.ID, "product": created})
}

// productPatch carries the partially updatable fields; nil means leave
// untouched. The showOnHome toggle goes through here as well.
type productPatch struct {
	Name                 *string   `json:"name,omitempty"`
	Category             *string   `json:"category,omitempty"`
	Price                *float64  `json:"price,omitempty"`
	AvailableQuantity    *int      `json:"availableQuantity,omitempty"`
	MinimumOrderQuantity *int      `json:"minimumOrderQuantity,omitempty"`
	PaymentOption        *string   `json:"paymentOption,omitempty"`
	Images               *[]string `json:"images,omitempty"`
	DemoVideo            *string   `json:"demoVideo,omitempty"`
	Description          *string   `json:"description,omitempty"`
	ShowOnHome           *bool     `json:"showOnHome,omitempty"`
}

func (h *Handler) updateProduct(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}

	existing, err := h.service.GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Product not found"})
	}

	patch := new(productPatch)
	if err := c.BodyParser(patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if patch.Name != nil {
		existing.Name = *patch.Name
	}
	if patch.Category != nil {
		existing.Category = *patch.Category
	}
	if patch.Price != nil {
		existing.Price = *patch.Price
	}
	if patch.AvailableQuantity != nil {
		existing.AvailableQuantity = *patch.AvailableQuantity
	}
	if patch.MinimumOrderQuantity != nil {
		existing.MinimumOrderQuantity = *patch.MinimumOrderQuantity
	}
	if patch.PaymentOption != nil {
		existing.PaymentOption = *patch.PaymentOption
	}
	if patch.Images != nil {
		existing.Images = *patch.Images
	}
	if patch.DemoVideo != nil {
		existing.DemoVideo = *patch.DemoVideo
	}
	if patch.Description != nil {
		existing.Description = *patch.Description
	}
	if patch.ShowOnHome != nil {
		existing.ShowOnHome = *patch.ShowOnHome
	}

	if ves := validateProductPayload(&existing); len(ves) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": ves})
	}

	existing.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	updated, err := h.service.Update(id, existing)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Product not found"})
	}
	return c.JSON(fiber.Map{"modifiedCount": 1, "product": updated})
}

func (h *Handler) deleteProduct(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}
	if err := h.service.Delete(id); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Product not found"})
	}
	return c.JSON(fiber.Map{"deletedCount": 1})
}
