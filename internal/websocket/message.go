package websocket

import "encoding/json"

// OutgoingMessage is the wire envelope pushed to a connection.
type OutgoingMessage struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

// IncomingMessage is the wire envelope read from a connection. Data stays
// raw; the game layer decodes it per event.
type IncomingMessage struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// ClientMessage is an incoming message stamped with the connection's seat
// binding before it is handed to the game layer.
type ClientMessage struct {
	ConnID  string
	TableID int64
	Seat    int
	Event   string
	Data    json.RawMessage
}

// ErrorData is the payload of an "error" event.
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
