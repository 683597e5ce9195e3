package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/memorabox/memorabox-backend/internal/models"
	"github.com/memorabox/memorabox-backend/internal/realtime"
	"github.com/memorabox/memorabox-backend/internal/service"
	"go.uber.org/zap"
)

type FeedHandler struct {
	feedService *service.FeedService
	hub         *realtime.Hub
}

func NewFeedHandler(feedService *service.FeedService, hub *realtime.Hub) *FeedHandler {
	return &FeedHandler{
		feedService: feedService,
		hub:         hub,
	}
}

// GetSnapshot akışın açılış görüntüsünü döndürür: en yeni medya + mesajlar,
// zamana göre azalan, gösterim sınırına kırpılmış
func (h *FeedHandler) GetSnapshot(c *fiber.Ctx) error {
	url := c.Params("url")

	items, err := h.feedService.GetSnapshot(url)
	if err != nil {
		return statusError(c, err)
	}

	return c.JSON(models.SuccessResponse(items, "Feed retrieved successfully"))
}

// UpgradeRequired websocket olmayan istekleri canlı akış route'undan çevirir
func (h *FeedHandler) UpgradeRequired(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// LiveFeed canlı akış websocket bağlantısını yönetir. Her yeni medya/mesaj
// satırı FeedItem olarak gönderilir. Bağlantı koptuğunda client hub'dan
// çıkarılır; açık kanal sızıntısı olmaz.
func (h *FeedHandler) LiveFeed() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		defer conn.Close()

		url := conn.Params("url")

		event, err := h.feedService.CheckLiveFeedAccess(url)
		if err != nil {
			_ = conn.WriteJSON(models.ErrorResponse(err.Error()))
			return
		}

		client := h.hub.Register(event.ID)
		defer h.hub.Unregister(client)

		// Okuma pompası sadece bağlantı kopmasını yakalar, gelen mesajlar yok sayılır
		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case item, ok := <-client.Send:
				if !ok {
					// Hub client'ı düşürdü
					return
				}
				if err := conn.WriteJSON(item); err != nil {
					zap.L().Debug("live feed write failed",
						zap.Uint("event_id", event.ID),
						zap.Error(err),
					)
					return
				}
			case <-done:
				return
			}
		}
	})
}
