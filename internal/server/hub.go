// internal/server/hub.go
package server

import "sync"

// Hub занимается только рассылкой кадров подписчикам. Подписчики —
// websocket-клиенты, каждому свой буферизованный канал: медленный клиент
// теряет кадры, но не тормозит симуляцию.
type Hub struct {
	mu      sync.RWMutex
	nextID  int
	clients map[int]chan Frame
}

func NewHub() *Hub {
	return &Hub{clients: make(map[int]chan Frame)}
}

// Register создаёт личный канал подписчика и возвращает его вместе с
// идентификатором для Unregister.
func (h *Hub) Register() (int, chan Frame) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	ch := make(chan Frame, 64)
	h.clients[h.nextID] = ch
	return h.nextID, ch
}

// Unregister снимает подписчика и закрывает его канал.
func (h *Hub) Unregister(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if ch, ok := h.clients[id]; ok {
		close(ch)
		delete(h.clients, id)
	}
}

// Broadcast рассылает кадр всем. Полный канал пропускается: снимки идут
// постоянно, пропуск ничего не ломает.
func (h *Hub) Broadcast(frame Frame) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, ch := range h.clients {
		select {
		case ch <- frame:
		default:
		}
	}
}

// SubscriberCount возвращает число активных подписчиков.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
