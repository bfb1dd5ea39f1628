package monitor

import (
	"time"

	"github.com/gorilla/websocket"
)

const writeWait = 5 * time.Second

// Client is a websocket connection subscribed to a Hub.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	Send chan []byte
	ID   uint8

	RemoteAddr string
}

// ReadPump discards everything the client sends, and unregisters the
// client once the connection is closed.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.unregisterClient(c)
		c.conn.Close()
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return // connection closed
		}
	}
}

// WritePump writes every frame queued on Send to the connection. It
// returns when the hub closes Send or a write fails.
func (c *Client) WritePump() {
	defer c.conn.Close()

	for message := range c.Send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.BinaryMessage, message); err != nil {
			c.hub.log.Debugf("client %d: write failed: %v", c.ID, err)
			return
		}
	}

	// hub closed the connection
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
