// internal/ws/handler.go
package ws

import (
	"net/http"

	"lingvo-service/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The Mini App runs inside Telegram's webview; origin checks happen at
	// the token layer, not here.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler upgrades an authenticated request to a payment-status stream.
// Runs behind the auth middleware, which accepts `?token=` for browsers.
func Handler(hub *Hub, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserID(c)
		if userID == 0 {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Warn("websocket upgrade failed", zap.Error(err))
			return
		}

		NewClient(hub, conn, userID, logger).Start()
	}
}
