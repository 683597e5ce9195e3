package realtime

import (
	"github.com/memorabox/memorabox-backend/internal/models"
)

// Yavaş client'ların arkasında birikebilecek mesaj sayısı.
// Buffer dolarsa client düşürülür, akış "en güncel içerik" garantisi verir.
const clientSendBuffer = 16

// Client tek bir canlı akış bağlantısını temsil eder
type Client struct {
	EventID uint
	Send    chan models.FeedItem
}

type registration struct {
	client *Client
}

// Hub etkinlik bazlı canlı akış aboneliklerini yönetir. Tüm kayıt,
// kayıt silme ve yayın işlemleri tek goroutine üzerinde serileştirilir.
type Hub struct {
	rooms      map[uint]map[*Client]bool
	register   chan registration
	unregister chan registration
	broadcast  chan models.FeedItem
	done       chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[uint]map[*Client]bool),
		register:   make(chan registration),
		unregister: make(chan registration),
		broadcast:  make(chan models.FeedItem, 64),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case reg := <-h.register:
			room := h.rooms[reg.client.EventID]
			if room == nil {
				room = make(map[*Client]bool)
				h.rooms[reg.client.EventID] = room
			}
			room[reg.client] = true

		case reg := <-h.unregister:
			if room, ok := h.rooms[reg.client.EventID]; ok {
				if room[reg.client] {
					delete(room, reg.client)
					close(reg.client.Send)
				}
				if len(room) == 0 {
					delete(h.rooms, reg.client.EventID)
				}
			}

		case item := <-h.broadcast:
			for client := range h.rooms[item.EventID] {
				select {
				case client.Send <- item:
				default:
					// Client mesajları tüketemiyor, bağlantıyı bırak
					delete(h.rooms[item.EventID], client)
					close(client.Send)
				}
			}

		case <-h.done:
			for _, room := range h.rooms {
				for client := range room {
					close(client.Send)
				}
			}
			h.rooms = make(map[uint]map[*Client]bool)
			return
		}
	}
}

// Register etkinlik için yeni bir akış client'ı oluşturur
func (h *Hub) Register(eventID uint) *Client {
	client := &Client{
		EventID: eventID,
		Send:    make(chan models.FeedItem, clientSendBuffer),
	}
	h.register <- registration{client: client}
	return client
}

// Unregister client'ı odadan çıkarır ve Send kanalını kapatır
func (h *Hub) Unregister(client *Client) {
	h.unregister <- registration{client: client}
}

// Broadcast yeni bir akış öğesini ilgili etkinliğin tüm client'larına gönderir
func (h *Hub) Broadcast(item models.FeedItem) {
	h.broadcast <- item
}

// Stop hub'ı durdurur ve tüm bağlantıları kapatır
func (h *Hub) Stop() {
	close(h.done)
}
