package ws

import (
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// writeDeadline bounds how long a single subscriber write may block.
const writeDeadline = 5 * time.Second

// fiberConn adapts a fiber websocket connection to the hub's Conn interface.
// The mutex serializes writes: broadcasts and the welcome message can race.
type fiberConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *fiberConn) WriteMessage(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.conn.SetWriteDeadline(time.Now().Add(writeDeadline)); err != nil {
		return err
	}
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

func (c *fiberConn) Close() error {
	return c.conn.Close()
}

// UpgradeMiddleware rejects non-websocket requests on the ws route.
func UpgradeMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}
}

// Handler returns the websocket endpoint handler. Each connection is
// registered with the hub; the read loop only watches for close frames,
// inbound payloads are ignored.
func Handler(hub *Hub, logger *zap.Logger) fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		id := hub.Subscribe(&fiberConn{conn: conn})
		defer hub.Unsubscribe(id)

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					logger.Debug("websocket read error",
						zap.String("subscriber_id", id),
						zap.Error(err),
					)
				}
				return
			}
		}
	})
}
