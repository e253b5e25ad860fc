// internal/server/client.go
package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"glyph-defense/pkg/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client — посредник между websocket-соединением и раннером: читает
// команды в очередь симуляции, пишет кадры из хаба.
type Client struct {
	runner *Runner
	conn   *websocket.Conn
	send   chan Frame
	hubID  int
}

func NewClient(runner *Runner, conn *websocket.Conn) *Client {
	return &Client{
		runner: runner,
		conn:   conn,
		send:   make(chan Frame, 64),
	}
}

// readPump читает команды клиента до разрыва соединения.
func (c *Client) readPump() {
	defer func() {
		c.runner.Hub().Unregister(c.hubID)
		if err := c.conn.Close(); err != nil {
			logger.Log.WithError(err).Debug("websocket close failed")
		}
		logger.Log.Info("client disconnected")
	}()

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		logger.Log.WithError(err).Warn("failed to set read deadline")
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// Подписка и немедленный первый кадр, чтобы клиент не ждал рассылки.
	id, updates := c.runner.Hub().Register()
	c.hubID = id
	go func() {
		for frame := range updates {
			select {
			case c.send <- frame:
			default:
			}
		}
		close(c.send)
	}()
	snap := c.runner.LastSnapshot()
	c.send <- Frame{Type: "snapshot", Snapshot: &snap}

	for {
		var cmd Command
		if err := c.conn.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Log.WithError(err).Error("websocket read failed")
			}
			return
		}
		c.runner.Enqueue(cmd)
	}
}

// writePump отправляет кадры клиенту и пингует соединение.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		if err := c.conn.Close(); err != nil {
			logger.Log.WithError(err).Debug("websocket close failed in writePump")
		}
	}()

	for {
		select {
		case frame, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				if err := c.conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					logger.Log.WithError(err).Debug("write close failed")
				}
				return
			}
			if err := c.conn.WriteJSON(frame); err != nil {
				logger.Log.WithError(err).Debug("write frame failed")
				return
			}
		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set ping deadline")
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
