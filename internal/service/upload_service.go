package service

import (
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/memorabox/memorabox-backend/internal/models"
	"github.com/memorabox/memorabox-backend/internal/repository"
	"github.com/memorabox/memorabox-backend/pkg/storage"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	maxPhotoSize = 10 * 1024 * 1024  // 10MB
	maxVideoSize = 100 * 1024 * 1024 // 100MB
)

// Misafir yazma türleri - kapı hangi flag'e bakacağını buradan bilir
type submissionKind int

const (
	submissionMedia submissionKind = iota
	submissionMessage
)

// FeedBroadcaster yeni satırları canlı akışa duyurur
type FeedBroadcaster interface {
	Broadcast(item models.FeedItem)
}

type UploadService struct {
	eventRepo   *repository.EventRepository
	mediaRepo   *repository.MediaRepository
	messageRepo *repository.MessageRepository
	storage     storage.StorageService
	broadcaster FeedBroadcaster
}

func NewUploadService(
	eventRepo *repository.EventRepository,
	mediaRepo *repository.MediaRepository,
	messageRepo *repository.MessageRepository,
	storage storage.StorageService,
	broadcaster FeedBroadcaster,
) *UploadService {
	return &UploadService{
		eventRepo:   eventRepo,
		mediaRepo:   mediaRepo,
		messageRepo: messageRepo,
		storage:     storage,
		broadcaster: broadcaster,
	}
}

// checkGate misafir yazma girişimini taze okunan etkinlik durumuna göre
// değerlendirir. Sayfa yüklenirken alınan duruma asla güvenilmez; flag'ler
// yükleme ile gönderim arasında değişmiş olabilir. Red sırası: önce
// başlangıç tarihi, sonra kilit, en son kapasite flag'i.
func checkGate(event *models.Event, kind submissionKind, now time.Time) error {
	if !event.HasStarted(now) {
		return ErrEventNotStarted
	}

	if event.IsLocked {
		return ErrEventLocked
	}

	switch kind {
	case submissionMedia:
		if !event.IsUploadsEnabled {
			return ErrUploadsDisabled
		}
	case submissionMessage:
		if !event.IsMessagesEnabled {
			return ErrMessagesDisabled
		}
	}

	return nil
}

// SubmitMedia misafir dosyalarını sırayla yükler: her dosya için önce R2'ye
// yaz, sonra satırı ekle. İlk hatada dizi durur; önceki dosyalar kalıcıdır,
// sonrakiler hiç denenmez. Başarıyla eklenen satırlar hata durumunda da
// döndürülür.
func (s *UploadService) SubmitMedia(eventURL string, uploadedBy string, files []*multipart.FileHeader) ([]models.MediaResponse, error) {
	// Kapı için etkinliği taze oku
	event, err := s.eventRepo.GetByURL(eventURL)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	if err := checkGate(event, submissionMedia, time.Now()); err != nil {
		return nil, err
	}

	var uploaded []models.MediaResponse
	for _, file := range files {
		media, err := s.uploadOne(event, uploadedBy, file)
		if err != nil {
			zap.L().Error("media upload failed",
				zap.Uint("event_id", event.ID),
				zap.String("file_name", file.Filename),
				zap.Int("uploaded_so_far", len(uploaded)),
				zap.Error(err),
			)
			return uploaded, err
		}
		uploaded = append(uploaded, models.NewMediaResponse(media))
	}

	return uploaded, nil
}

func (s *UploadService) uploadOne(event *models.Event, uploadedBy string, file *multipart.FileHeader) (*models.Media, error) {
	contentType := file.Header.Get("Content-Type")

	fileType, err := mediaTypeFor(contentType)
	if err != nil {
		return nil, err
	}

	// Boyut kontrolü dosya türüne göre
	maxSize := int64(maxPhotoSize)
	if fileType == models.MediaTypeVideo {
		maxSize = maxVideoSize
	}
	if file.Size > maxSize {
		return nil, fmt.Errorf("file %s is too large", file.Filename)
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	// R2'ye yükle, sonra public URL ile satırı ekle
	r2Key := fmt.Sprintf("events/%d/%s%s", event.ID, uuid.NewString(), filepath.Ext(file.Filename))
	if err := s.storage.Upload(r2Key, src, file.Size, contentType); err != nil {
		return nil, err
	}

	media := &models.Media{
		EventID:    event.ID,
		FileType:   fileType,
		FileURL:    s.storage.PublicURL(r2Key),
		FileName:   file.Filename,
		FileSize:   file.Size,
		MimeType:   contentType,
		R2Key:      r2Key,
		UploadedBy: uploadedBy,
	}

	if err := s.mediaRepo.Create(media); err != nil {
		// Satır eklenemedi, objeyi bırakma
		_ = s.storage.Delete(r2Key)
		return nil, err
	}

	if s.broadcaster != nil {
		s.broadcaster.Broadcast(models.NewMediaFeedItem(media))
	}

	return media, nil
}

// SubmitMessage misafir mesajını kapıdan geçirip kaydeder
func (s *UploadService) SubmitMessage(eventURL string, req models.GuestMessageRequest) (*models.GuestMessage, error) {
	event, err := s.eventRepo.GetByURL(eventURL)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	if err := checkGate(event, submissionMessage, time.Now()); err != nil {
		return nil, err
	}

	message := &models.GuestMessage{
		EventID:   event.ID,
		Message:   req.Message,
		GuestName: req.GuestName,
	}

	if err := s.messageRepo.Create(message); err != nil {
		return nil, err
	}

	if s.broadcaster != nil {
		s.broadcaster.Broadcast(models.NewMessageFeedItem(message))
	}

	return message, nil
}

// GetEventMedia etkinliğin tüm medya satırlarını sahibi için getirir
func (s *UploadService) GetEventMedia(eventID uint, userID uint) ([]models.Media, error) {
	if err := s.checkOwnership(eventID, userID); err != nil {
		return nil, err
	}
	return s.mediaRepo.GetByEventID(eventID)
}

// GetEventMessages etkinliğin tüm mesajlarını sahibi için getirir
func (s *UploadService) GetEventMessages(eventID uint, userID uint) ([]models.GuestMessage, error) {
	if err := s.checkOwnership(eventID, userID); err != nil {
		return nil, err
	}
	return s.messageRepo.GetByEventID(eventID)
}

// DeleteMedia medya satırını ve R2 objesini siler; sadece etkinlik sahibi
func (s *UploadService) DeleteMedia(mediaID uint, userID uint) error {
	media, err := s.mediaRepo.GetByID(mediaID)
	if err != nil {
		return fmt.Errorf("media not found: %w", err)
	}

	if err := s.checkOwnership(media.EventID, userID); err != nil {
		return err
	}

	// Önce storage'dan sil
	if err := s.storage.Delete(media.R2Key); err != nil {
		return fmt.Errorf("failed to delete from storage: %w", err)
	}

	return s.mediaRepo.Delete(mediaID)
}

// DeleteMessage mesaj satırını siler; sadece etkinlik sahibi
func (s *UploadService) DeleteMessage(messageID uint, userID uint) error {
	message, err := s.messageRepo.GetByID(messageID)
	if err != nil {
		return fmt.Errorf("message not found: %w", err)
	}

	if err := s.checkOwnership(message.EventID, userID); err != nil {
		return err
	}

	return s.messageRepo.Delete(messageID)
}

func (s *UploadService) checkOwnership(eventID uint, userID uint) error {
	event, err := s.eventRepo.GetByID(eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return err
	}
	if event.UserID != userID {
		return ErrUnauthorized
	}
	return nil
}

func mediaTypeFor(contentType string) (models.MediaType, error) {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		switch contentType {
		case "image/jpeg", "image/png", "image/gif", "image/webp":
			return models.MediaTypePhoto, nil
		}
	case strings.HasPrefix(contentType, "video/"):
		switch contentType {
		case "video/mp4", "video/quicktime", "video/webm":
			return models.MediaTypeVideo, nil
		}
	}
	return "", fmt.Errorf("unsupported file type: %s", contentType)
}
