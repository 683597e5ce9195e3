package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/memorabox/memorabox-backend/internal/models"
	"github.com/memorabox/memorabox-backend/internal/service"
	"github.com/memorabox/memorabox-backend/pkg/utils"
)

type GiftHandler struct {
	giftService *service.GiftService
	validator   *utils.Validator
}

func NewGiftHandler(giftService *service.GiftService, validator *utils.Validator) *GiftHandler {
	return &GiftHandler{
		giftService: giftService,
		validator:   validator,
	}
}

// CreateCheckout misafir hediye ödemesi için checkout session başlatır
func (h *GiftHandler) CreateCheckout(c *fiber.Ctx) error {
	url := c.Params("url")

	var req models.GiftCheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}

	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	// Giriş yapmış kullanıcı varsa sender olarak bağla, yoksa misafir
	var senderID *uint
	if userID, ok := currentUserID(c); ok {
		senderID = &userID
	}

	session, err := h.giftService.CreateCheckout(url, senderID, req)
	if err != nil {
		return statusError(c, err)
	}

	return c.JSON(models.SuccessResponse(fiber.Map{
		"session_id":   session.ID,
		"checkout_url": session.URL,
	}, "Checkout session created"))
}

// VerifyPayment ödeme sağlayıcısının callback yüzeyi. Başarıda 200 ve
// doğrulanan ödeme yükü, her türlü hatada 400 döner. "Doğrulandı ama
// kaydedilemedi" durumu mesajda açıkça işaretlenir; otomatik retry yoktur.
func (h *GiftHandler) VerifyPayment(c *fiber.Ctx) error {
	var req models.VerifyPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}

	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	verified, err := h.giftService.VerifyPayment(req)
	if err != nil {
		if errors.Is(err, service.ErrGiftNotRecorded) {
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Payment succeeded but gift was not recorded"))
		}
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(models.SuccessResponse(verified, "Payment verified"))
}

// GetEventGifts etkinliğin hediyelerini sahibi için listeler
func (h *GiftHandler) GetEventGifts(c *fiber.Ctx) error {
	eventID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid event ID"))
	}

	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
	}

	gifts, err := h.giftService.GetEventGifts(uint(eventID), userID)
	if err != nil {
		return statusError(c, err)
	}

	return c.JSON(models.SuccessResponse(gifts, "Gifts retrieved successfully"))
}
