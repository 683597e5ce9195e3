package repository

import (
	"github.com/memorabox/memorabox-backend/internal/models"
	"gorm.io/gorm"
)

type GiftRepository struct {
	db *gorm.DB
}

func NewGiftRepository(db *gorm.DB) *GiftRepository {
	return &GiftRepository{db: db}
}

func (r *GiftRepository) Create(gift *models.Gift) error {
	return r.db.Create(gift).Error
}

func (r *GiftRepository) GetByPaymentRef(paymentRef string) (*models.Gift, error) {
	var gift models.Gift
	err := r.db.Where("payment_ref = ?", paymentRef).First(&gift).Error
	if err != nil {
		return nil, err
	}
	return &gift, nil
}

func (r *GiftRepository) GetByEventID(eventID uint) ([]models.Gift, error) {
	var gifts []models.Gift
	err := r.db.Where("event_id = ?", eventID).
		Order("created_at DESC").
		Find(&gifts).Error
	return gifts, err
}

func (r *GiftRepository) Update(gift *models.Gift) error {
	return r.db.Save(gift).Error
}
