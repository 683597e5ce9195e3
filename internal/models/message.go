package models

import (
	"time"
)

type GuestMessage struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	EventID   uint      `json:"event_id" gorm:"not null;index"`
	Message   string    `json:"message" gorm:"not null"`
	GuestName string    `json:"guest_name" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}

type GuestMessageRequest struct {
	Message   string `json:"message" validate:"required"`
	GuestName string `json:"guest_name" validate:"required"`
}
