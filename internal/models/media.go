package models

import (
	"time"
)

// Dosya türleri için kapalı enum - misafirler sadece fotoğraf ve video yükleyebilir
type MediaType string

const (
	MediaTypePhoto MediaType = "photo"
	MediaTypeVideo MediaType = "video"
)

type Media struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	EventID    uint      `json:"event_id" gorm:"not null;index"`
	FileType   MediaType `json:"file_type" gorm:"not null"`
	FileURL    string    `json:"file_url" gorm:"not null"`
	FileName   string    `json:"file_name" gorm:"not null"`
	FileSize   int64     `json:"file_size" gorm:"not null"`
	MimeType   string    `json:"mime_type" gorm:"not null"`
	R2Key      string    `json:"r2_key" gorm:"not null"`
	UploadedBy string    `json:"uploaded_by" gorm:"not null"` // Misafirin görünen adı
	CreatedAt  time.Time `json:"created_at"`
}

type MediaResponse struct {
	ID         uint      `json:"id"`
	EventID    uint      `json:"event_id"`
	FileType   MediaType `json:"file_type"`
	FileURL    string    `json:"file_url"`
	FileName   string    `json:"file_name"`
	FileSize   int64     `json:"file_size"`
	MimeType   string    `json:"mime_type"`
	UploadedBy string    `json:"uploaded_by"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewMediaResponse(m *Media) MediaResponse {
	return MediaResponse{
		ID:         m.ID,
		EventID:    m.EventID,
		FileType:   m.FileType,
		FileURL:    m.FileURL,
		FileName:   m.FileName,
		FileSize:   m.FileSize,
		MimeType:   m.MimeType,
		UploadedBy: m.UploadedBy,
		CreatedAt:  m.CreatedAt,
	}
}
