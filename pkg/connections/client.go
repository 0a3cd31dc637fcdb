package connections

import (
	"log"
	"time"

	"github.com/gorilla/websocket"

	"classroom-ws-server/pkg/types"
)

// readLoop pumps inbound events from the socket into dispatch. It owns all
// reads on the connection; when it exits, the disconnect sweep runs.
func (h *Hub) readLoop(c *types.Client) {
	defer func() {
		h.handleDisconnect(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(h.cfg.MaxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(h.cfg.ReadTimeout))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(h.cfg.ReadTimeout))
		return nil
	})

	for {
		var ev types.InboundEvent
		if err := c.Conn.ReadJSON(&ev); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[ws] read error from %s: %v", c.ConnId, err)
			}
			return
		}
		h.dispatch(c, ev)
	}
}

// writePump owns all writes on the connection: queued events plus the
// keepalive pings.
func (h *Hub) writePump(c *types.Client) {
	ticker := time.NewTicker(h.cfg.PingInterval)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case ev, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(h.cfg.WriteTimeout))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteJSON(ev); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(h.cfg.WriteTimeout))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
