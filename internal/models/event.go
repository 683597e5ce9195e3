package models

import (
	"time"
)

// Etkinlik kategorileri için enum tanımı
type EventType string

const (
	EventTypeWedding    EventType = "wedding"
	EventTypeBirthday   EventType = "birthday"
	EventTypeGraduation EventType = "graduation"
	EventTypeBabyShower EventType = "babyshower"
	EventTypeCorporate  EventType = "corporate"
	EventTypeOther      EventType = "other"
)

type Event struct {
	ID                uint       `json:"id" gorm:"primaryKey"`
	UserID            uint       `json:"user_id" gorm:"not null"`
	Title             string     `json:"title" gorm:"not null"`
	EventType         EventType  `json:"event_type" gorm:"not null;default:'other'"`
	CustomType        string     `json:"custom_type"` // EventType "other" ise kullanılır
	CoverImage        string     `json:"cover_image"`
	URL               string     `json:"url" gorm:"unique;not null"`
	EventDate         *time.Time `json:"event_date"` // Opsiyonel, gelecekteyse misafir yazmaları kapalı
	IsLocked          bool       `json:"is_locked" gorm:"default:false"`
	IsUploadsEnabled  bool       `json:"is_uploads_enabled" gorm:"default:true"`
	IsMessagesEnabled bool       `json:"is_messages_enabled" gorm:"default:true"`
	IsLiveFeedEnabled bool       `json:"is_live_feed_enabled" gorm:"default:true"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// HasStarted etkinliğin başlayıp başlamadığını kontrol eder.
// EventDate boşsa etkinlik hemen başlamış sayılır.
func (e *Event) HasStarted(now time.Time) bool {
	if e.EventDate == nil {
		return true
	}
	return !now.Before(*e.EventDate)
}

type EventRequest struct {
	Title      string     `json:"title" validate:"required"`
	EventType  EventType  `json:"event_type" validate:"required,oneof=wedding birthday graduation babyshower corporate other"`
	CustomType string     `json:"custom_type"`
	CoverImage string     `json:"cover_image"`
	EventDate  *time.Time `json:"event_date"`
}

type UpdateEventRequest struct {
	Title      *string    `json:"title"`
	EventType  *EventType `json:"event_type"`
	CustomType *string    `json:"custom_type"`
	CoverImage *string    `json:"cover_image"`
	EventDate  *time.Time `json:"event_date"`
}

// Ayar toggle'ları için istek - her alan bağımsız güncellenir
type UpdateEventSettingsRequest struct {
	IsLocked          *bool `json:"is_locked"`
	IsUploadsEnabled  *bool `json:"is_uploads_enabled"`
	IsMessagesEnabled *bool `json:"is_messages_enabled"`
	IsLiveFeedEnabled *bool `json:"is_live_feed_enabled"`
}

// Misafir sayfası için response - sahiplik bilgisi içermez
type GuestEventResponse struct {
	Title             string     `json:"title"`
	EventType         EventType  `json:"event_type"`
	CustomType        string     `json:"custom_type,omitempty"`
	CoverImage        string     `json:"cover_image,omitempty"`
	URL               string     `json:"url"`
	EventDate         *time.Time `json:"event_date,omitempty"`
	HasStarted        bool       `json:"has_started"`
	IsLocked          bool       `json:"is_locked"`
	IsUploadsEnabled  bool       `json:"is_uploads_enabled"`
	IsMessagesEnabled bool       `json:"is_messages_enabled"`
	IsLiveFeedEnabled bool       `json:"is_live_feed_enabled"`
}

func NewGuestEventResponse(event *Event, now time.Time) GuestEventResponse {
	return GuestEventResponse{
		Title:             event.Title,
		EventType:         event.EventType,
		CustomType:        event.CustomType,
		CoverImage:        event.CoverImage,
		URL:               event.URL,
		EventDate:         event.EventDate,
		HasStarted:        event.HasStarted(now),
		IsLocked:          event.IsLocked,
		IsUploadsEnabled:  event.IsUploadsEnabled,
		IsMessagesEnabled: event.IsMessagesEnabled,
		IsLiveFeedEnabled: event.IsLiveFeedEnabled,
	}
}

// Silme dizisinin hangi adımda kaldığını gösterir
type DeleteProgress string

const (
	DeleteNotStarted      DeleteProgress = "not_started"
	DeleteMessagesDeleted DeleteProgress = "messages_deleted"
	DeleteMediaDeleted    DeleteProgress = "media_deleted"
	DeleteEventDeleted    DeleteProgress = "event_deleted"
)
