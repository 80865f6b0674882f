// server/internal/api/handlers/websocket_handler.go
package handlers

import (
	"log"
	"net/http"
	"time"

	"need-feeder-api-server/internal/auth"
	"need-feeder-api-server/internal/socket"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Thời gian chờ tối đa cho một tin nhắn từ client.
const pongWait = 30 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WebSocketHandler struct {
	Hub *socket.Hub
}

// ServeWs xử lý các yêu cầu kết nối WebSocket.
// Token được truyền qua query vì browser WebSocket API không set header được.
func (h *WebSocketHandler) ServeWs(c *gin.Context) {
	tokenString := c.Query("token")
	if tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token is required"})
		return
	}

	claims, err := auth.ParseToken(tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}
	accountID := claims.AccountID

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}

	h.Hub.Register(accountID, conn)

	defer func() {
		h.Hub.Unregister(accountID)
		conn.Close()
	}()

	// Heartbeat: reset deadline mỗi khi nhận PING từ client.
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPingHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	// Read loop giữ kết nối cho đến khi client đóng.
	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("Unexpected close error: %v", err)
			}
			break
		}
	}
}
