package repository

import (
	"github.com/memorabox/memorabox-backend/internal/models"
	"gorm.io/gorm"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(message *models.GuestMessage) error {
	return r.db.Create(message).Error
}

func (r *MessageRepository) GetByID(id uint) (*models.GuestMessage, error) {
	var message models.GuestMessage
	err := r.db.First(&message, id).Error
	if err != nil {
		return nil, err
	}
	return &message, nil
}

func (r *MessageRepository) GetByEventID(eventID uint) ([]models.GuestMessage, error) {
	var messages []models.GuestMessage
	err := r.db.Where("event_id = ?", eventID).
		Order("created_at DESC").
		Find(&messages).Error
	return messages, err
}

// GetRecentByEventID akış için en yeni N mesajı getirir
func (r *MessageRepository) GetRecentByEventID(eventID uint, limit int) ([]models.GuestMessage, error) {
	var messages []models.GuestMessage
	err := r.db.Where("event_id = ?", eventID).
		Order("created_at DESC").
		Limit(limit).
		Find(&messages).Error
	return messages, err
}

func (r *MessageRepository) Delete(id uint) error {
	return r.db.Delete(&models.GuestMessage{}, id).Error
}
