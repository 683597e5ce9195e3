package repository

import (
	"errors"

	"github.com/memorabox/memorabox-backend/internal/models"
	"gorm.io/gorm"
)

var ErrEventRowNotDeleted = errors.New("event row was not deleted")

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(event *models.Event) (*models.Event, error) {
	result := r.db.Create(event)
	if result.Error != nil {
		return nil, result.Error
	}
	return event, nil
}

func (r *EventRepository) GetByID(id uint) (*models.Event, error) {
	var event models.Event
	err := r.db.First(&event, id).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *EventRepository) GetByURL(url string) (*models.Event, error) {
	var event models.Event
	err := r.db.Where("url = ?", url).First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *EventRepository) GetUserEvents(userID uint) ([]models.Event, error) {
	var events []models.Event
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&events).Error
	return events, err
}

func (r *EventRepository) Update(event *models.Event) error {
	return r.db.Save(event).Error
}

// UpdateSettings sadece verilen flag kolonlarını günceller, diğerlerine dokunmaz
func (r *EventRepository) UpdateSettings(eventID uint, fields map[string]interface{}) error {
	return r.db.Model(&models.Event{}).Where("id = ?", eventID).
		Updates(fields).Error
}

func (r *EventRepository) URLExists(url string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Event{}).Where("url = ?", url).Count(&count).Error
	return count > 0, err
}

func (r *EventRepository) Exists(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Event{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// DeleteWithUploads etkinliği bağımlı satırlarıyla birlikte tek transaction
// içinde siler: önce mesajlar, sonra medya satırları, en son etkinlik satırı.
// Son adım hem event id hem user id ile filtrelenir; satır etkilenmediyse
// transaction geri alınır. Dönen progress, hatada hangi adımda kalındığını
// gösterir.
func (r *EventRepository) DeleteWithUploads(eventID uint, userID uint) (models.DeleteProgress, error) {
	progress := models.DeleteNotStarted

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", eventID).Delete(&models.GuestMessage{}).Error; err != nil {
			return err
		}
		progress = models.DeleteMessagesDeleted

		if err := tx.Where("event_id = ?", eventID).Delete(&models.Media{}).Error; err != nil {
			return err
		}
		progress = models.DeleteMediaDeleted

		result := tx.Where("id = ? AND user_id = ?", eventID, userID).Delete(&models.Event{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrEventRowNotDeleted
		}
		progress = models.DeleteEventDeleted

		return nil
	})

	return progress, err
}
