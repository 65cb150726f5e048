package ws

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Sesuaikan policy CORS jika diperlukan
		return true
	},
}

// ServeWS meng-upgrade request menjadi koneksi WebSocket yang menerima event
// invoice dan resep. Koneksi ditolak dengan 503 bila hub sudah berhenti.
func ServeWS(hub *Hub) echo.HandlerFunc {
	return func(c echo.Context) error {
		select {
		case <-hub.Done():
			return echo.NewHTTPError(http.StatusServiceUnavailable, "event hub stopped")
		default:
		}

		conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
		if err != nil {
			return err
		}
		client := &Client{Conn: conn, Send: make(chan []byte, 256)}
		if !hub.register(client) {
			conn.Close()
			return nil
		}

		go client.writePump(pingPeriod)
		go client.readPump(hub, pongWait)
		return nil
	}
}

// readPump hanya menjaga koneksi; pesan dari client diabaikan. Koneksi ditutup
// bila tidak ada pong dalam wait.
func (c *Client) readPump(hub *Hub, wait time.Duration) {
	defer func() {
		hub.unregister(c)
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(512)
	_ = c.Conn.SetReadDeadline(time.Now().Add(wait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(wait))
	})
	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug().Err(err).Msg("ws read failed")
			}
			return
		}
	}
}

// writePump mengirim event dari Send dan ping berkala. Send ditutup oleh hub.
func (c *Client) writePump(period time.Duration) {
	ticker := time.NewTicker(period)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.Send:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Debug().Err(err).Msg("ws write failed")
				return
			}
		case <-ticker.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Debug().Err(err).Msg("ws ping failed")
				return
			}
		}
	}
}
