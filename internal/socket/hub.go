// server/internal/socket/hub.go
package socket

import (
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Hub quản lý tất cả các client WebSocket, key là userID hoặc ngoID.
// Donor dashboards và NGO dashboards nhận sự kiện donation qua đây thay cho
// cơ chế refresh thủ công của UI.
type Hub struct {
	clients map[string]*websocket.Conn
	// mu là một Mutex để đảm bảo an toàn khi truy cập map clients từ nhiều goroutine.
	mu sync.RWMutex
}

// NewHub tạo một Hub mới.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*websocket.Conn),
	}
}

// Register thêm một client mới vào Hub.
func (h *Hub) Register(accountID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[accountID] = conn
	log.Printf("WebSocket client registered: %s", accountID)
}

// Unregister xóa một client khỏi Hub.
func (h *Hub) Unregister(accountID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[accountID]; ok {
		delete(h.clients, accountID)
		log.Printf("WebSocket client unregistered: %s", accountID)
	}
}

// Send gửi một tin nhắn đến một client cụ thể.
func (h *Hub) Send(accountID string, message []byte) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	conn, ok := h.clients[accountID]
	if !ok {
		// Không tìm thấy client (có thể đã offline), không coi đây là lỗi nghiêm trọng.
		log.Printf("WebSocket client not found, could not send message: %s", accountID)
		return nil
	}

	return conn.WriteMessage(websocket.TextMessage, message)
}

// Broadcast gửi một tin nhắn đến tất cả client đang kết nối.
// Dùng để thông báo donation mới cho mọi NGO dashboard đang mở.
func (h *Hub) Broadcast(message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for accountID, conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
			log.Printf("Failed to broadcast to %s: %v", accountID, err)
		}
	}
}
