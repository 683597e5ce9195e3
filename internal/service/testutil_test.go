package service

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"sync"
	"testing"

	"github.com/memorabox/memorabox-backend/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Event{},
		&models.Media{},
		&models.GuestMessage{},
		&models.Gift{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

var errFakeUpload = errors.New("storage upload failed")

// fakeStorage StorageService'i bellekte taklit eder. failAt > 0 ise o
// numaralı Upload çağrısı (1 tabanlı) hata döndürür.
type fakeStorage struct {
	mu      sync.Mutex
	uploads []string
	deleted []string
	failAt  int
}

func (f *fakeStorage) Upload(key string, src io.Reader, size int64, contentType string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failAt > 0 && len(f.uploads)+1 == f.failAt {
		return errFakeUpload
	}

	f.uploads = append(f.uploads, key)
	return nil
}

func (f *fakeStorage) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeStorage) PublicURL(key string) string {
	return "https://cdn.test/" + key
}

func (f *fakeStorage) uploadCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.uploads)
}

type fakeFile struct {
	name        string
	contentType string
	size        int
}

// makeFileHeaders gerçek bir multipart form üzerinden FileHeader üretir
func makeFileHeaders(t *testing.T, files []fakeFile) []*multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, f := range files {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="files"; filename="%s"`, f.name))
		header.Set("Content-Type", f.contentType)

		part, err := w.CreatePart(header)
		if err != nil {
			t.Fatalf("failed to create form part: %v", err)
		}
		if _, err := part.Write(bytes.Repeat([]byte("x"), f.size)); err != nil {
			t.Fatalf("failed to write form part: %v", err)
		}
	}

	if err := w.Close(); err != nil {
		t.Fatalf("failed to close form writer: %v", err)
	}

	reader := multipart.NewReader(&buf, w.Boundary())
	form, err := reader.ReadForm(32 << 20)
	if err != nil {
		t.Fatalf("failed to read form: %v", err)
	}
	t.Cleanup(func() { _ = form.RemoveAll() })

	return form.File["files"]
}

// recordingBroadcaster yayınlanan akış öğelerini toplar
type recordingBroadcaster struct {
	mu    sync.Mutex
	items []models.FeedItem
}

func (r *recordingBroadcaster) Broadcast(item models.FeedItem) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, item)
}

func (r *recordingBroadcaster) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}
