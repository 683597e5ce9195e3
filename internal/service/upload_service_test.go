package service

import (
	"errors"
	"testing"
	"time"

	"github.com/memorabox/memorabox-backend/internal/models"
	"github.com/memorabox/memorabox-backend/internal/repository"
	"gorm.io/gorm"
)

func newUploadFixture(t *testing.T) (*gorm.DB, *UploadService, *fakeStorage, *recordingBroadcaster) {
	t.Helper()

	db := newTestDB(t)
	st := &fakeStorage{}
	bc := &recordingBroadcaster{}

	svc := NewUploadService(
		repository.NewEventRepository(db),
		repository.NewMediaRepository(db),
		repository.NewMessageRepository(db),
		st,
		bc,
	)

	return db, svc, st, bc
}

func createTestEvent(t *testing.T, db *gorm.DB, mutate func(*models.Event)) *models.Event {
	t.Helper()

	event := &models.Event{
		UserID:            1,
		Title:             "Deniz & Can Wedding",
		EventType:         models.EventTypeWedding,
		URL:               "deniz-can-wedding-abc123",
		IsUploadsEnabled:  true,
		IsMessagesEnabled: true,
		IsLiveFeedEnabled: true,
	}
	if mutate != nil {
		mutate(event)
	}

	if err := db.Create(event).Error; err != nil {
		t.Fatalf("failed to create test event: %v", err)
	}
	return event
}

func TestCheckGate(t *testing.T) {
	now := time.Now()
	future := now.Add(time.Hour)
	past := now.Add(-time.Hour)

	tests := []struct {
		name    string
		event   models.Event
		kind    submissionKind
		wantErr error
	}{
		{
			name:    "open event accepts media",
			event:   models.Event{IsUploadsEnabled: true, IsMessagesEnabled: true},
			kind:    submissionMedia,
			wantErr: nil,
		},
		{
			name:    "future event date rejects even when unlocked and enabled",
			event:   models.Event{EventDate: &future, IsUploadsEnabled: true, IsMessagesEnabled: true},
			kind:    submissionMedia,
			wantErr: ErrEventNotStarted,
		},
		{
			name:    "past event date accepts",
			event:   models.Event{EventDate: &past, IsUploadsEnabled: true},
			kind:    submissionMedia,
			wantErr: nil,
		},
		{
			name:    "locked dominates enabled capability flags",
			event:   models.Event{IsLocked: true, IsUploadsEnabled: true, IsMessagesEnabled: true},
			kind:    submissionMedia,
			wantErr: ErrEventLocked,
		},
		{
			name:    "locked dominates for messages too",
			event:   models.Event{IsLocked: true, IsMessagesEnabled: true},
			kind:    submissionMessage,
			wantErr: ErrEventLocked,
		},
		{
			name:    "uploads disabled rejects media only",
			event:   models.Event{IsUploadsEnabled: false, IsMessagesEnabled: true},
			kind:    submissionMedia,
			wantErr: ErrUploadsDisabled,
		},
		{
			name:    "messages disabled rejects message only",
			event:   models.Event{IsUploadsEnabled: true, IsMessagesEnabled: false},
			kind:    submissionMessage,
			wantErr: ErrMessagesDisabled,
		},
		{
			name:    "uploads disabled does not block messages",
			event:   models.Event{IsUploadsEnabled: false, IsMessagesEnabled: true},
			kind:    submissionMessage,
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkGate(&tt.event, tt.kind, now)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("checkGate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSubmitMessage(t *testing.T) {
	db, svc, _, bc := newUploadFixture(t)
	event := createTestEvent(t, db, nil)

	msg, err := svc.SubmitMessage(event.URL, models.GuestMessageRequest{
		Message:   "Congratulations!",
		GuestName: "Ayşe",
	})
	if err != nil {
		t.Fatalf("SubmitMessage() error = %v", err)
	}
	if msg.ID == 0 {
		t.Error("expected message to be persisted with an ID")
	}
	if msg.EventID != event.ID {
		t.Errorf("message event ID = %d, want %d", msg.EventID, event.ID)
	}
	if bc.count() != 1 {
		t.Errorf("broadcast count = %d, want 1", bc.count())
	}
}

func TestSubmitMessageLockedEvent(t *testing.T) {
	db, svc, _, bc := newUploadFixture(t)
	event := createTestEvent(t, db, func(e *models.Event) {
		e.IsLocked = true
	})

	_, err := svc.SubmitMessage(event.URL, models.GuestMessageRequest{
		Message:   "Hello",
		GuestName: "Mehmet",
	})
	if !errors.Is(err, ErrEventLocked) {
		t.Fatalf("SubmitMessage() error = %v, want ErrEventLocked", err)
	}

	var count int64
	db.Model(&models.GuestMessage{}).Count(&count)
	if count != 0 {
		t.Errorf("message count = %d, want 0", count)
	}
	if bc.count() != 0 {
		t.Errorf("broadcast count = %d, want 0", bc.count())
	}
}

func TestSubmitMediaSequentialPartialFailure(t *testing.T) {
	db, svc, st, _ := newUploadFixture(t)
	event := createTestEvent(t, db, nil)

	// İkinci upload çağrısı başarısız olacak
	st.failAt = 2

	files := makeFileHeaders(t, []fakeFile{
		{name: "a.jpg", contentType: "image/jpeg", size: 100},
		{name: "b.jpg", contentType: "image/jpeg", size: 100},
		{name: "c.jpg", contentType: "image/jpeg", size: 100},
	})

	uploaded, err := svc.SubmitMedia(event.URL, "Zeynep", files)
	if err == nil {
		t.Fatal("SubmitMedia() expected error, got nil")
	}

	// Sadece ilk dosya kalıcı olmalı, üçüncü hiç denenmemeli
	if len(uploaded) != 1 {
		t.Errorf("uploaded responses = %d, want 1", len(uploaded))
	}

	var count int64
	db.Model(&models.Media{}).Where("event_id = ?", event.ID).Count(&count)
	if count != 1 {
		t.Errorf("persisted media rows = %d, want 1", count)
	}

	// Upload çağrıları: 1. başarılı, 2. başarısız; 3. dosya denenmedi
	if st.uploadCount() != 1 {
		t.Errorf("successful storage uploads = %d, want 1", st.uploadCount())
	}
}

func TestSubmitMediaRejectsAfterMidSessionToggle(t *testing.T) {
	db, svc, _, _ := newUploadFixture(t)
	event := createTestEvent(t, db, nil)

	files := makeFileHeaders(t, []fakeFile{
		{name: "a.jpg", contentType: "image/jpeg", size: 100},
	})

	// İlk gönderim açıkken başarılı
	if _, err := svc.SubmitMedia(event.URL, "Ali", files); err != nil {
		t.Fatalf("SubmitMedia() error = %v", err)
	}

	// Host yüklemeleri kapattı; misafir sayfası hâlâ açık
	if err := db.Model(&models.Event{}).Where("id = ?", event.ID).
		Update("is_uploads_enabled", false).Error; err != nil {
		t.Fatalf("failed to toggle uploads: %v", err)
	}

	// Sonraki gönderim taze okunan duruma göre reddedilmeli
	files = makeFileHeaders(t, []fakeFile{
		{name: "b.jpg", contentType: "image/jpeg", size: 100},
	})
	_, err := svc.SubmitMedia(event.URL, "Ali", files)
	if !errors.Is(err, ErrUploadsDisabled) {
		t.Fatalf("SubmitMedia() error = %v, want ErrUploadsDisabled", err)
	}
}

func TestSubmitMediaUnsupportedType(t *testing.T) {
	db, svc, _, _ := newUploadFixture(t)
	event := createTestEvent(t, db, nil)

	files := makeFileHeaders(t, []fakeFile{
		{name: "doc.pdf", contentType: "application/pdf", size: 100},
	})

	if _, err := svc.SubmitMedia(event.URL, "Ece", files); err == nil {
		t.Fatal("SubmitMedia() expected error for unsupported type")
	}

	var count int64
	db.Model(&models.Media{}).Count(&count)
	if count != 0 {
		t.Errorf("media rows = %d, want 0", count)
	}
}

func TestSubmitMediaEventNotFound(t *testing.T) {
	_, svc, _, _ := newUploadFixture(t)

	files := makeFileHeaders(t, []fakeFile{
		{name: "a.jpg", contentType: "image/jpeg", size: 100},
	})

	_, err := svc.SubmitMedia("missing-event", "Ali", files)
	if !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("SubmitMedia() error = %v, want ErrEventNotFound", err)
	}
}

func TestDeleteMediaOwnership(t *testing.T) {
	db, svc, st, _ := newUploadFixture(t)
	event := createTestEvent(t, db, nil)

	media := &models.Media{
		EventID:    event.ID,
		FileType:   models.MediaTypePhoto,
		FileURL:    "https://cdn.test/events/1/a.jpg",
		FileName:   "a.jpg",
		FileSize:   100,
		MimeType:   "image/jpeg",
		R2Key:      "events/1/a.jpg",
		UploadedBy: "Ayşe",
	}
	if err := db.Create(media).Error; err != nil {
		t.Fatalf("failed to create media: %v", err)
	}

	// Sahip olmayan kullanıcı silemez
	if err := svc.DeleteMedia(media.ID, 99); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("DeleteMedia() error = %v, want ErrUnauthorized", err)
	}

	// Sahip silebilir; önce storage sonra satır
	if err := svc.DeleteMedia(media.ID, event.UserID); err != nil {
		t.Fatalf("DeleteMedia() error = %v", err)
	}
	if len(st.deleted) != 1 || st.deleted[0] != media.R2Key {
		t.Errorf("storage deletes = %v, want [%s]", st.deleted, media.R2Key)
	}

	var count int64
	db.Model(&models.Media{}).Count(&count)
	if count != 0 {
		t.Errorf("media rows = %d, want 0", count)
	}
}
