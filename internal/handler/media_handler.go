package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/memorabox/memorabox-backend/internal/models"
	"github.com/memorabox/memorabox-backend/internal/service"
)

type MediaHandler struct {
	uploadService *service.UploadService
}

func NewMediaHandler(uploadService *service.UploadService) *MediaHandler {
	return &MediaHandler{
		uploadService: uploadService,
	}
}

// GetEventMedia etkinliğin tüm medya satırlarını sahibi için getirir
func (h *MediaHandler) GetEventMedia(c *fiber.Ctx) error {
	eventID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid event ID"))
	}

	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
	}

	media, err := h.uploadService.GetEventMedia(uint(eventID), userID)
	if err != nil {
		return statusError(c, err)
	}

	responses := make([]models.MediaResponse, 0, len(media))
	for i := range media {
		responses = append(responses, models.NewMediaResponse(&media[i]))
	}

	return c.JSON(models.SuccessResponse(responses, "Media retrieved successfully"))
}

// GetEventMessages etkinliğin tüm mesajlarını sahibi için getirir
func (h *MediaHandler) GetEventMessages(c *fiber.Ctx) error {
	eventID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid event ID"))
	}

	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
	}

	messages, err := h.uploadService.GetEventMessages(uint(eventID), userID)
	if err != nil {
		return statusError(c, err)
	}

	return c.JSON(models.SuccessResponse(messages, "Messages retrieved successfully"))
}

func (h *MediaHandler) DeleteMedia(c *fiber.Ctx) error {
	mediaID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid media ID"))
	}

	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
	}

	if err := h.uploadService.DeleteMedia(uint(mediaID), userID); err != nil {
		return statusError(c, err)
	}

	return c.JSON(models.SuccessResponse(nil, "Media deleted successfully"))
}

func (h *MediaHandler) DeleteMessage(c *fiber.Ctx) error {
	messageID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid message ID"))
	}

	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
	}

	if err := h.uploadService.DeleteMessage(uint(messageID), userID); err != nil {
		return statusError(c, err)
	}

	return c.JSON(models.SuccessResponse(nil, "Message deleted successfully"))
}
