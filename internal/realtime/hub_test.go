package realtime

import (
	"testing"
	"time"

	"github.com/memorabox/memorabox-backend/internal/models"
)

func newRunningHub(t *testing.T) *Hub {
	t.Helper()

	hub := NewHub()
	go hub.Run()
	t.Cleanup(hub.Stop)
	return hub
}

func receiveItem(t *testing.T, c *Client) models.FeedItem {
	t.Helper()

	select {
	case item, ok := <-c.Send:
		if !ok {
			t.Fatal("send channel closed unexpectedly")
		}
		return item
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for feed item")
	}
	return models.FeedItem{}
}

func TestHubBroadcastDelivery(t *testing.T) {
	hub := newRunningHub(t)

	a := hub.Register(1)
	b := hub.Register(1)

	item := models.FeedItem{Type: models.FeedItemPhoto, ID: 7, EventID: 1, GuestName: "Ayşe"}
	hub.Broadcast(item)

	for _, c := range []*Client{a, b} {
		got := receiveItem(t, c)
		if got.ID != item.ID || got.Type != item.Type {
			t.Errorf("received %+v, want %+v", got, item)
		}
	}
}

func TestHubRoomIsolation(t *testing.T) {
	hub := newRunningHub(t)

	inRoom := hub.Register(1)
	otherRoom := hub.Register(2)

	hub.Broadcast(models.FeedItem{Type: models.FeedItemMessage, ID: 3, EventID: 1})

	receiveItem(t, inRoom)

	select {
	case item := <-otherRoom.Send:
		t.Errorf("client in other room received %+v", item)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubUnregisterClosesSend(t *testing.T) {
	hub := newRunningHub(t)

	c := hub.Register(1)
	hub.Unregister(c)

	select {
	case _, ok := <-c.Send:
		if ok {
			t.Error("expected closed channel, got item")
		}
	case <-time.After(time.Second):
		t.Fatal("send channel not closed after unregister")
	}

	// Kayıt silindikten sonra yayın bu client'a ulaşmamalı; hub paniklememelidir
	hub.Broadcast(models.FeedItem{Type: models.FeedItemPhoto, ID: 1, EventID: 1})
}

func TestHubDropsSlowClient(t *testing.T) {
	hub := newRunningHub(t)

	slow := hub.Register(1)

	// Buffer'ı doldur ve bir fazlasını gönder
	for i := 0; i < clientSendBuffer+1; i++ {
		hub.Broadcast(models.FeedItem{Type: models.FeedItemPhoto, ID: uint(i), EventID: 1})
	}

	// Düşürülen client'ın kanalı kapanır; buffer'daki öğelerden sonra ok=false görülmeli
	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-slow.Send:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("slow client was not dropped")
		}
	}
}

func TestHubStopClosesAllClients(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	a := hub.Register(1)
	b := hub.Register(2)

	hub.Stop()

	for _, c := range []*Client{a, b} {
		select {
		case _, ok := <-c.Send:
			if ok {
				t.Error("expected closed channel after stop")
			}
		case <-time.After(time.Second):
			t.Fatal("send channel not closed after stop")
		}
	}
}
