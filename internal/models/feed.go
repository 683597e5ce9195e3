package models

import (
	"time"
)

// Canlı akış öğe türleri - kapalı küme
type FeedItemType string

const (
	FeedItemPhoto   FeedItemType = "photo"
	FeedItemVideo   FeedItemType = "video"
	FeedItemMessage FeedItemType = "message"
)

// FeedItem medya ve mesaj satırlarını tek bir akışta birleştirir
type FeedItem struct {
	Type      FeedItemType `json:"type"`
	ID        uint         `json:"id"`
	EventID   uint         `json:"event_id"`
	FileURL   string       `json:"file_url,omitempty"`
	Message   string       `json:"message,omitempty"`
	GuestName string       `json:"guest_name"`
	CreatedAt time.Time    `json:"created_at"`
}

func NewMediaFeedItem(m *Media) FeedItem {
	itemType := FeedItemPhoto
	if m.FileType == MediaTypeVideo {
		itemType = FeedItemVideo
	}

	return FeedItem{
		Type:      itemType,
		ID:        m.ID,
		EventID:   m.EventID,
		FileURL:   m.FileURL,
		GuestName: m.UploadedBy,
		CreatedAt: m.CreatedAt,
	}
}

func NewMessageFeedItem(msg *GuestMessage) FeedItem {
	return FeedItem{
		Type:      FeedItemMessage,
		ID:        msg.ID,
		EventID:   msg.EventID,
		Message:   msg.Message,
		GuestName: msg.GuestName,
		CreatedAt: msg.CreatedAt,
	}
}
