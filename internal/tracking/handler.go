package tracking

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/mstanvir/garment-track-backend/internal/access"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	managerOrAdmin := access.RequireAny(access.CapManager, access.CapAdmin)

	app.Post("/tracking/:trackingId", managerOrAdmin, h.appendLog)
	app.Get("/tracking/:orderId", h.getTimeline)
}

type appendLogRequest struct {
	Status   string `json:"status"`
	Location string `json:"location"`
	Note     string `json:"note"`
}

func (h *Handler) appendLog(c *fiber.Ctx) error {
	payload := new(appendLogRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": fiber.Map{"status": "status is required"}})
	}

	created, err := h.service.Append(TrackingLog{
		TrackingID: c.Params("trackingId"),
		Status:     payload.Status,
		Location:   payload.Location,
		Note:       payload.Note,
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"insertedId": created.ID, "log": created})
}

// getTimeline returns the milestone history for an order, oldest first.
// The path takes the numeric order id, not the tracking id, since that
// is what buyers have at hand.
func (h *Handler) getTimeline(c *fiber.Ctx) error {
	orderID, err := strconv.Atoi(c.Params("orderId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}

	logs, err := h.service.TimelineForOrder(orderID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Order not found"})
	}
	return c.JSON(logs)
}
