package handler

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jointoit/events-api/internal/middleware"
	"github.com/jointoit/events-api/internal/models"
	"github.com/jointoit/events-api/internal/service"
	"github.com/jointoit/events-api/pkg/apperror"
	"github.com/jointoit/events-api/pkg/qrcode"
	"github.com/jointoit/events-api/pkg/utils"
)

type EventHandler struct {
	eventService *service.EventService
	qrService    *qrcode.QRService
	validator    *utils.Validator
}

func NewEventHandler(eventService *service.EventService, qrService *qrcode.QRService, validator *utils.Validator) *EventHandler {
	return &EventHandler{
		eventService: eventService,
		qrService:    qrService,
		validator:    validator,
	}
}

func (h *EventHandler) ListEvents(c *fiber.Ctx) error {
	query, err := parseEventQuery(c)
	if err != nil {
		return err
	}

	events, err := h.eventService.ListEvents(c.UserContext(), middleware.CurrentUser(c), query)
	if err != nil {
		return err
	}
	return c.JSON(models.NewEventResponses(events))
}

func (h *EventHandler) CreateEvent(c *fiber.Ctx) error {
	var req models.EventRequest
	if err := bindAndValidate(c, h.validator, &req); err != nil {
		return err
	}

	event, err := h.eventService.CreateEvent(c.UserContext(), middleware.CurrentUser(c), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(models.NewEventResponse(event))
}

func (h *EventHandler) GetEvent(c *fiber.Ctx) error {
	eventID, err := parseID(c, "id", "Event")
	if err != nil {
		return err
	}

	event, err := h.eventService.GetEvent(c.UserContext(), eventID)
	if err != nil {
		return err
	}
	return c.JSON(models.NewEventResponse(event))
}

// UpdateEvent replaces every editable field. All fields are required.
func (h *EventHandler) UpdateEvent(c *fiber.Ctx) error {
	event, err := h.ownedEvent(c)
	if err != nil {
		return err
	}

	var req models.EventRequest
	if err := bindAndValidate(c, h.validator, &req); err != nil {
		return err
	}

	updated, err := h.eventService.UpdateEvent(c.UserContext(), event, req.Partial())
	if err != nil {
		return err
	}
	return c.JSON(models.NewEventResponse(updated))
}

// PartialUpdateEvent changes only the fields present in the body.
func (h *EventHandler) PartialUpdateEvent(c *fiber.Ctx) error {
	event, err := h.ownedEvent(c)
	if err != nil {
		return err
	}

	var req models.PartialEventRequest
	if err := bindAndValidate(c, h.validator, &req); err != nil {
		return err
	}

	updated, err := h.eventService.UpdateEvent(c.UserContext(), event, req)
	if err != nil {
		return err
	}
	return c.JSON(models.NewEventResponse(updated))
}

func (h *EventHandler) DeleteEvent(c *fiber.Ctx) error {
	event, err := h.ownedEvent(c)
	if err != nil {
		return err
	}

	if err := h.eventService.DeleteEvent(c.UserContext(), event); err != nil {
		return err
	}
	return c.Status(fiber.StatusNoContent).Send(nil)
}

func (h *EventHandler) RegisterForEvent(c *fiber.Ctx) error {
	eventID, err := parseID(c, "id", "Event")
	if err != nil {
		return err
	}

	if err := h.eventService.Register(c.UserContext(), middleware.CurrentUser(c), eventID); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(models.DetailResponse{Detail: "Registration successful."})
}

// GetEventQRCode renders a PNG share code for the event's public page.
func (h *EventHandler) GetEventQRCode(c *fiber.Ctx) error {
	eventID, err := parseID(c, "id", "Event")
	if err != nil {
		return err
	}

	event, err := h.eventService.GetEvent(c.UserContext(), eventID)
	if err != nil {
		return err
	}

	size := qrcode.DefaultSize
	if raw := c.Query("size"); raw != "" {
		size, err = strconv.Atoi(raw)
		if err != nil {
			return apperror.Validation(apperror.FieldErrors{"size": "A valid integer is required."})
		}
	}
	if size < qrcode.MinSize || size > qrcode.MaxSize {
		return apperror.Validation(apperror.FieldErrors{
			"size": fmt.Sprintf("Ensure this value is between %d and %d.", qrcode.MinSize, qrcode.MaxSize),
		})
	}

	png, err := h.qrService.GenerateEventQRCode(event.ID, size)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}

func (h *EventHandler) ownedEvent(c *fiber.Ctx) (*models.Event, error) {
	eventID, err := parseID(c, "id", "Event")
	if err != nil {
		return nil, err
	}
	return h.eventService.GetOwnedEvent(c.UserContext(), middleware.CurrentUser(c), eventID)
}
