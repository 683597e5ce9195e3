package service

import (
	"errors"
	"sort"

	"github.com/memorabox/memorabox-backend/internal/models"
	"github.com/memorabox/memorabox-backend/internal/repository"
	"gorm.io/gorm"
)

const (
	// Tablo başına çekilecek en yeni satır sayısı
	feedFetchPerTable = 10
	// Birleştirilmiş akışın gösterim sınırı
	feedDisplayCap = 15
)

type FeedService struct {
	eventRepo   *repository.EventRepository
	mediaRepo   *repository.MediaRepository
	messageRepo *repository.MessageRepository
}

func NewFeedService(
	eventRepo *repository.EventRepository,
	mediaRepo *repository.MediaRepository,
	messageRepo *repository.MessageRepository,
) *FeedService {
	return &FeedService{
		eventRepo:   eventRepo,
		mediaRepo:   mediaRepo,
		messageRepo: messageRepo,
	}
}

// GetSnapshot akışın açılış görüntüsünü üretir: iki tablodan en yeni
// satırlar birleştirilir, oluşturma zamanına göre azalan sıralanır ve
// gösterim sınırına kırpılır. Bu tek seferlik bir sıralamadır; sonradan
// gelen canlı öğeler client tarafında başa eklenir, yeniden sıralanmaz.
func (s *FeedService) GetSnapshot(eventURL string) ([]models.FeedItem, error) {
	event, err := s.eventRepo.GetByURL(eventURL)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	media, err := s.mediaRepo.GetRecentByEventID(event.ID, feedFetchPerTable)
	if err != nil {
		return nil, err
	}

	messages, err := s.messageRepo.GetRecentByEventID(event.ID, feedFetchPerTable)
	if err != nil {
		return nil, err
	}

	items := make([]models.FeedItem, 0, len(media)+len(messages))
	for i := range media {
		items = append(items, models.NewMediaFeedItem(&media[i]))
	}
	for i := range messages {
		items = append(items, models.NewMessageFeedItem(&messages[i]))
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})

	if len(items) > feedDisplayCap {
		items = items[:feedDisplayCap]
	}

	return items, nil
}

// CheckLiveFeedAccess canlı akış bağlantısına izin verilip verilmediğini
// kontrol eder ve etkinliği döndürür
func (s *FeedService) CheckLiveFeedAccess(eventURL string) (*models.Event, error) {
	event, err := s.eventRepo.GetByURL(eventURL)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	if !event.IsLiveFeedEnabled {
		return nil, ErrLiveFeedDisabled
	}

	return event, nil
}
