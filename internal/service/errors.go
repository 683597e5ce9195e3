package service

import "errors"

var (
	ErrUnauthorized  = errors.New("unauthorized")
	ErrEventNotFound = errors.New("event not found")

	// Misafir gönderim kapısı redleri
	ErrEventNotStarted  = errors.New("event has not started yet")
	ErrEventLocked      = errors.New("event is locked")
	ErrUploadsDisabled  = errors.New("uploads are disabled for this event")
	ErrMessagesDisabled = errors.New("messages are disabled for this event")
	ErrLiveFeedDisabled = errors.New("live feed is disabled for this event")

	// Silme doğrulaması: delete başarılı döndü ama satır hâlâ yerinde
	ErrDeleteVerification = errors.New("event deleted but still present")

	// Ödeme doğrulaması
	ErrPaymentNotVerified = errors.New("payment could not be verified")
	ErrAmountMismatch     = errors.New("paid amount is less than expected amount")
	ErrGiftNotRecorded    = errors.New("payment verified but gift could not be recorded")
)
