package websocket

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWS upgrades an authenticated request. The jwt middleware has
// already resolved the join token into a (table, seat) binding on the
// context.
func ServeWS(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		tableID := c.GetInt64("table_id")
		seat := c.GetInt("seat")

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}

		client := &Client{
			ID:      uuid.NewString(),
			TableID: tableID,
			Seat:    seat,
			Conn:    conn,
			Send:    make(chan OutgoingMessage, 32),
			Hub:     hub,
		}

		hub.register <- client

		go client.writePump()
		go client.readPump()
	}
}
