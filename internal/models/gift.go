package models

import (
	"time"
)

const (
	GiftStatusPending   = "pending"
	GiftStatusCompleted = "completed"
	GiftStatusFailed    = "failed"
)

type Gift struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	EventID    uint      `json:"event_id" gorm:"not null;index"`
	SenderID   *uint     `json:"sender_id"` // Misafir gönderimlerinde boş
	GuestName  string    `json:"guest_name"`
	Amount     int64     `json:"amount" gorm:"not null"` // Minor unit (cent)
	Currency   string    `json:"currency" gorm:"not null"`
	Message    string    `json:"message"`
	PaymentRef string    `json:"payment_ref" gorm:"unique;not null"`
	Status     string    `json:"status" gorm:"not null;default:'pending'"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type GiftCheckoutRequest struct {
	Amount    int64  `json:"amount" validate:"required,gt=0"`
	Currency  string `json:"currency" validate:"required,len=3"`
	GuestName string `json:"guest_name" validate:"required"`
	Message   string `json:"message"`
}

// Ödeme sağlayıcısının callback'i için istek gövdesi
type VerifyPaymentRequest struct {
	TransactionID  string `json:"transaction_id" validate:"required"`
	ExpectedAmount int64  `json:"expected_amount" validate:"required,gt=0"`
}

type VerifiedPaymentResponse struct {
	TransactionID string `json:"transaction_id"`
	Amount        int64  `json:"amount"`
	Currency      string `json:"currency"`
	Status        string `json:"status"`
	EventID       uint   `json:"event_id"`
	GuestName     string `json:"guest_name,omitempty"`
}
