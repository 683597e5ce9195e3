package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/memorabox/memorabox-backend/internal/models"
	"github.com/memorabox/memorabox-backend/internal/service"
	"github.com/memorabox/memorabox-backend/pkg/qrcode"
	"github.com/memorabox/memorabox-backend/pkg/utils"
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

func (h *EventHandler) CreateEvent(c *fiber.Ctx) error {
	var req models.EventRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}

	// Validate request
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
	}

	event, err := h.eventService.CreateEvent(userID, req)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}

	// Etkinlik oluşturuldu, paylaşım URL'i ile birlikte dön
	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(event, "Event created successfully"))
}

func (h *EventHandler) GetUserEvents(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
	}

	events, err := h.eventService.GetUserEvents(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(models.SuccessResponse(events, "Events retrieved successfully"))
}

func (h *EventHandler) GetEvent(c *fiber.Ctx) error {
	eventID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid event ID"))
	}

	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
	}

	event, err := h.eventService.GetEvent(uint(eventID), userID)
	if err != nil {
		return statusError(c, err)
	}

	return c.JSON(models.SuccessResponse(event, "Event retrieved successfully"))
}

func (h *EventHandler) UpdateEvent(c *fiber.Ctx) error {
	eventID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid event ID"))
	}

	var req models.UpdateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}

	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
	}

	event, err := h.eventService.UpdateEvent(uint(eventID), userID, req)
	if err != nil {
		return statusError(c, err)
	}

	return c.JSON(models.SuccessResponse(event, "Event updated successfully"))
}

// UpdateSettings toggle flag'lerini günceller; her flag bağımsızdır
func (h *EventHandler) UpdateSettings(c *fiber.Ctx) error {
	eventID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid event ID"))
	}

	var req models.UpdateEventSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}

	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
	}

	event, err := h.eventService.UpdateSettings(uint(eventID), userID, req)
	if err != nil {
		return statusError(c, err)
	}

	return c.JSON(models.SuccessResponse(event, "Event settings updated successfully"))
}

func (h *EventHandler) DeleteEvent(c *fiber.Ctx) error {
	eventID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid event ID"))
	}

	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
	}

	progress, err := h.eventService.DeleteEvent(uint(eventID), userID)
	if err != nil {
		// Dizinin nerede durduğunu hata cevabında da bildir
		status := fiber.StatusInternalServerError
		if errors.Is(err, service.ErrUnauthorized) {
			status = fiber.StatusForbidden
		} else if errors.Is(err, service.ErrEventNotFound) {
			status = fiber.StatusNotFound
		}
		return c.Status(status).JSON(models.Response{
			Success: false,
			Error:   err.Error(),
			Data:    fiber.Map{"progress": progress},
		})
	}

	return c.JSON(models.SuccessResponse(fiber.Map{"progress": progress}, "Event successfully deleted"))
}

// VerifyDeleted silme çağrısından bağımsız bir doğrulama adımıdır: satır
// gerçekten kaybolana kadar backoff ile yeniden okur
func (h *EventHandler) VerifyDeleted(c *fiber.Ctx) error {
	eventID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid event ID"))
	}

	if err := h.eventService.VerifyDeleted(c.Context(), uint(eventID)); err != nil {
		if errors.Is(err, service.ErrDeleteVerification) {
			return c.Status(fiber.StatusConflict).JSON(models.ErrorResponse("Event deleted but still present"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(models.SuccessResponse(fiber.Map{"deleted": true}, "Event deletion verified"))
}

// GetEventQR etkinliğin paylaşım linki için PNG QR kod döndürür
func (h *EventHandler) GetEventQR(c *fiber.Ctx) error {
	eventID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid event ID"))
	}

	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
	}

	event, err := h.eventService.GetEvent(uint(eventID), userID)
	if err != nil {
		return statusError(c, err)
	}

	size := c.QueryInt("size", 256)
	png, err := h.qrService.GenerateQRCode(event.URL, size)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}

	c.Set("Content-Type", "image/png")
	return c.Send(png)
}
