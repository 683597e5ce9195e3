package repository

import (
	"github.com/memorabox/memorabox-backend/internal/models"
	"gorm.io/gorm"
)

type MediaRepository struct {
	db *gorm.DB
}

func NewMediaRepository(db *gorm.DB) *MediaRepository {
	return &MediaRepository{db: db}
}

func (r *MediaRepository) Create(media *models.Media) error {
	return r.db.Create(media).Error
}

func (r *MediaRepository) GetByID(id uint) (*models.Media, error) {
	var media models.Media
	err := r.db.First(&media, id).Error
	if err != nil {
		return nil, err
	}
	return &media, nil
}

func (r *MediaRepository) GetByEventID(eventID uint) ([]models.Media, error) {
	var media []models.Media
	err := r.db.Where("event_id = ?", eventID).
		Order("created_at DESC").
		Find(&media).Error
	return media, err
}

// GetRecentByEventID akış için en yeni N medya satırını getirir
func (r *MediaRepository) GetRecentByEventID(eventID uint, limit int) ([]models.Media, error) {
	var media []models.Media
	err := r.db.Where("event_id = ?", eventID).
		Order("created_at DESC").
		Limit(limit).
		Find(&media).Error
	return media, err
}

func (r *MediaRepository) Delete(id uint) error {
	return r.db.Delete(&models.Media{}, id).Error
}

func (r *MediaRepository) CountByEventID(eventID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Media{}).Where("event_id = ?", eventID).Count(&count).Error
	return count, err
}
