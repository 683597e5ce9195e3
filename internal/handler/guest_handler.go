package handler

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/memorabox/memorabox-backend/internal/models"
	"github.com/memorabox/memorabox-backend/internal/service"
	"github.com/memorabox/memorabox-backend/pkg/utils"
)

type GuestHandler struct {
	uploadService *service.UploadService
	eventService  *service.EventService
	validator     *utils.Validator
}

func NewGuestHandler(uploadService *service.UploadService, eventService *service.EventService, validator *utils.Validator) *GuestHandler {
	return &GuestHandler{
		uploadService: uploadService,
		eventService:  eventService,
		validator:     validator,
	}
}

// GetEvent misafir sayfası için etkinliği paylaşım koduyla getirir
func (h *GuestHandler) GetEvent(c *fiber.Ctx) error {
	url := c.Params("url")

	event, err := h.eventService.GetEventByURL(url)
	if err != nil {
		return statusError(c, err)
	}

	return c.JSON(models.SuccessResponse(models.NewGuestEventResponse(event, time.Now()), "Event retrieved successfully"))
}

// UploadMedia misafir medya gönderimi. Dosyalar sırayla işlenir; kapı
// redlerinde taze flag görüntüsü cevaba eklenir ki client önbelleğini
// düzeltebilsin.
func (h *GuestHandler) UploadMedia(c *fiber.Ctx) error {
	url := c.Params("url")

	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid form data"))
	}

	// Misafir adı zorunlu, network işleminden önce kontrol edilir
	uploadedBy := strings.TrimSpace(c.FormValue("uploaded_by"))
	if uploadedBy == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Guest name is required"))
	}

	files := form.File["files"]
	if len(files) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("No files uploaded"))
	}

	uploaded, err := h.uploadService.SubmitMedia(url, uploadedBy, files)
	if err != nil {
		if isGateError(err) {
			return h.gateRejection(c, url, err)
		}
		if errors.Is(err, service.ErrEventNotFound) {
			return statusError(c, err)
		}

		// Kısmi başarı: ilk hatada durduk, önceki dosyalar kalıcı
		return c.Status(fiber.StatusInternalServerError).JSON(models.Response{
			Success: false,
			Error:   err.Error(),
			Data:    fiber.Map{"uploaded": uploaded},
		})
	}

	return c.JSON(models.SuccessResponse(uploaded, "Media uploaded successfully"))
}

// CreateMessage misafir mesajı gönderimi
func (h *GuestHandler) CreateMessage(c *fiber.Ctx) error {
	url := c.Params("url")

	var req models.GuestMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}

	req.Message = strings.TrimSpace(req.Message)
	req.GuestName = strings.TrimSpace(req.GuestName)
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	message, err := h.uploadService.SubmitMessage(url, req)
	if err != nil {
		if isGateError(err) {
			return h.gateRejection(c, url, err)
		}
		return statusError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(message, "Message submitted successfully"))
}

func isGateError(err error) bool {
	return errors.Is(err, service.ErrEventNotStarted) ||
		errors.Is(err, service.ErrEventLocked) ||
		errors.Is(err, service.ErrUploadsDisabled) ||
		errors.Is(err, service.ErrMessagesDisabled)
}

// gateRejection red sebebini ve etkinliğin güncel durumunu birlikte döndürür
func (h *GuestHandler) gateRejection(c *fiber.Ctx, url string, gateErr error) error {
	resp := models.Response{
		Success: false,
		Error:   gateErr.Error(),
	}

	// Taze durum görüntüsü client önbelleğinin düzeltilmesi için
	if event, err := h.eventService.GetEventByURL(url); err == nil {
		resp.Data = models.NewGuestEventResponse(event, time.Now())
	}

	return c.Status(fiber.StatusForbidden).JSON(resp)
}
