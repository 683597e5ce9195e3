package service

import (
	"context"
	"errors"
	"time"

	"github.com/memorabox/memorabox-backend/internal/models"
	"github.com/memorabox/memorabox-backend/internal/repository"
	"github.com/memorabox/memorabox-backend/pkg/storage"
	"github.com/memorabox/memorabox-backend/pkg/utils"
	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	// Slug çakışmasında kaç kez yeniden denenecek
	maxURLAttempts = 5

	// Silme doğrulaması için bekleme bütçesi
	verifyDeletedBaseDelay = 200 * time.Millisecond
	verifyDeletedMaxTries  = 5
)

type EventService struct {
	eventRepo *repository.EventRepository
	mediaRepo *repository.MediaRepository
	storage   storage.StorageService
}

func NewEventService(
	eventRepo *repository.EventRepository,
	mediaRepo *repository.MediaRepository,
	storage storage.StorageService,
) *EventService {
	return &EventService{
		eventRepo: eventRepo,
		mediaRepo: mediaRepo,
		storage:   storage,
	}
}

func (s *EventService) CreateEvent(userID uint, req models.EventRequest) (*models.Event, error) {
	// Benzersiz URL oluştur, çakışırsa yeni son ek ile tekrar dene
	var url string
	for attempt := 0; ; attempt++ {
		url = utils.GenerateEventURL(req.Title)

		exists, err := s.eventRepo.URLExists(url)
		if err != nil {
			return nil, err
		}
		if !exists {
			break
		}
		if attempt >= maxURLAttempts {
			return nil, errors.New("could not generate a unique event url")
		}
	}

	event := &models.Event{
		UserID:            userID,
		Title:             req.Title,
		EventType:         req.EventType,
		CustomType:        req.CustomType,
		CoverImage:        req.CoverImage,
		URL:               url,
		EventDate:         req.EventDate,
		IsLocked:          false,
		IsUploadsEnabled:  true,
		IsMessagesEnabled: true,
		IsLiveFeedEnabled: true,
	}

	createdEvent, err := s.eventRepo.Create(event)
	if err != nil {
		return nil, err
	}

	zap.L().Info("event created",
		zap.Uint("event_id", createdEvent.ID),
		zap.Uint("user_id", userID),
		zap.String("url", createdEvent.URL),
	)

	return createdEvent, nil
}

func (s *EventService) GetEvent(eventID uint, userID uint) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	if event.UserID != userID {
		return nil, ErrUnauthorized
	}

	return event, nil
}

func (s *EventService) GetUserEvents(userID uint) ([]models.Event, error) {
	return s.eventRepo.GetUserEvents(userID)
}

func (s *EventService) GetEventByURL(url string) (*models.Event, error) {
	event, err := s.eventRepo.GetByURL(url)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

func (s *EventService) UpdateEvent(eventID uint, userID uint, req models.UpdateEventRequest) (*models.Event, error) {
	event, err := s.GetEvent(eventID, userID)
	if err != nil {
		return nil, err
	}

	// Sadece gönderilen alanları güncelle
	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.EventType != nil {
		event.EventType = *req.EventType
	}
	if req.CustomType != nil {
		event.CustomType = *req.CustomType
	}
	if req.CoverImage != nil {
		event.CoverImage = *req.CoverImage
	}
	if req.EventDate != nil {
		event.EventDate = req.EventDate
	}

	if err := s.eventRepo.Update(event); err != nil {
		return nil, err
	}

	return event, nil
}

// UpdateSettings toggle flag'lerini günceller. Her flag bağımsızdır,
// istekte olmayan flag'lere dokunulmaz.
func (s *EventService) UpdateSettings(eventID uint, userID uint, req models.UpdateEventSettingsRequest) (*models.Event, error) {
	if _, err := s.GetEvent(eventID, userID); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.IsLocked != nil {
		fields["is_locked"] = *req.IsLocked
	}
	if req.IsUploadsEnabled != nil {
		fields["is_uploads_enabled"] = *req.IsUploadsEnabled
	}
	if req.IsMessagesEnabled != nil {
		fields["is_messages_enabled"] = *req.IsMessagesEnabled
	}
	if req.IsLiveFeedEnabled != nil {
		fields["is_live_feed_enabled"] = *req.IsLiveFeedEnabled
	}

	if len(fields) > 0 {
		if err := s.eventRepo.UpdateSettings(eventID, fields); err != nil {
			return nil, err
		}
	}

	return s.eventRepo.GetByID(eventID)
}

// DeleteEvent etkinliği bağımlı satırlarıyla birlikte siler. Sahiplik
// kontrolü herhangi bir silme round-trip'inden önce yapılır; son adım yine
// de event id + user id ile filtrelenir. Dönen progress hatada dizinin
// nerede durduğunu bildirir.
func (s *EventService) DeleteEvent(eventID uint, userID uint) (models.DeleteProgress, error) {
	event, err := s.eventRepo.GetByID(eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.DeleteNotStarted, ErrEventNotFound
		}
		return models.DeleteNotStarted, err
	}

	if event.UserID != userID {
		zap.L().Warn("delete attempt by non-owner",
			zap.Uint("event_id", eventID),
			zap.Uint("user_id", userID),
			zap.Uint("owner_id", event.UserID),
		)
		return models.DeleteNotStarted, ErrUnauthorized
	}

	// Transaction commit edildikten sonra R2 objelerini temizlemek için
	// anahtarları önceden topla
	media, err := s.mediaRepo.GetByEventID(eventID)
	if err != nil {
		return models.DeleteNotStarted, err
	}

	progress, err := s.eventRepo.DeleteWithUploads(eventID, userID)
	if err != nil {
		zap.L().Error("event delete failed",
			zap.Uint("event_id", eventID),
			zap.String("progress", string(progress)),
			zap.Error(err),
		)
		return progress, err
	}

	// Obje silme best-effort: satırlar gitti, artık erişilemezler
	for _, m := range media {
		if err := s.storage.Delete(m.R2Key); err != nil {
			zap.L().Warn("failed to delete media object",
				zap.String("r2_key", m.R2Key),
				zap.Error(err),
			)
		}
	}

	zap.L().Info("event deleted", zap.Uint("event_id", eventID), zap.Uint("user_id", userID))
	return progress, nil
}

// VerifyDeleted silme çağrısının başarısından bağımsız olarak satırın
// gerçekten kaybolduğunu doğrular. Replikasyon gecikmesine karşı sabit
// bekleme yerine backoff ile sınırlı sayıda yeniden okur.
func (s *EventService) VerifyDeleted(ctx context.Context, eventID uint) error {
	backoff := retry.WithMaxRetries(verifyDeletedMaxTries, retry.NewFibonacci(verifyDeletedBaseDelay))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		exists, err := s.eventRepo.Exists(eventID)
		if err != nil {
			return err
		}
		if exists {
			return retry.RetryableError(ErrDeleteVerification)
		}
		return nil
	})
}
