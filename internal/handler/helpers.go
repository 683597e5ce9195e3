package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/memorabox/memorabox-backend/internal/models"
	"github.com/memorabox/memorabox-backend/internal/service"
)

// currentUserID auth middleware'inin koyduğu userID'yi güvenli şekilde alır
func currentUserID(c *fiber.Ctx) (uint, bool) {
	userIDRaw := c.Locals("userID")
	if userIDRaw == nil {
		return 0, false
	}

	userID, ok := userIDRaw.(uint)
	return userID, ok
}

// statusError servis sentinel hatalarını HTTP durum kodlarına çevirir
func statusError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrEventNotFound):
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("Event not found"))
	case errors.Is(err, service.ErrUnauthorized):
		return c.Status(fiber.StatusForbidden).JSON(models.ErrorResponse("You don't have permission for this event"))
	case errors.Is(err, service.ErrEventNotStarted),
		errors.Is(err, service.ErrEventLocked),
		errors.Is(err, service.ErrUploadsDisabled),
		errors.Is(err, service.ErrMessagesDisabled),
		errors.Is(err, service.ErrLiveFeedDisabled):
		return c.Status(fiber.StatusForbidden).JSON(models.ErrorResponse(err.Error()))
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}
}
