package websocket

import (
	"sync"
)

// HubInterface is what the game layer sees of the transport.
type HubInterface interface {
	SendToConn(connID string, msg OutgoingMessage)
	BroadcastToSeat(tableID int64, seat int, msg OutgoingMessage)
	Close()
}

// Hub owns every live connection. A seat may be held by any number of
// connections at once; seat-level broadcasts reach all of them.
type Hub struct {
	clients    map[string]*Client // conn id -> client
	register   chan *Client
	unregister chan *Client
	sendOne    chan sendReq
	seatCast   chan seatReq
	incoming   chan ClientMessage
	OnIncoming func(ClientMessage)
	quit       chan struct{}
	mu         sync.RWMutex
}

type sendReq struct {
	ConnID  string
	Message OutgoingMessage
}

type seatReq struct {
	TableID int64
	Seat    int
	Message OutgoingMessage
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		sendOne:    make(chan sendReq),
		seatCast:   make(chan seatReq),
		incoming:   make(chan ClientMessage),
		quit:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c.ID] = c
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c.ID]; ok {
				delete(h.clients, c.ID)
				close(c.Send)
			}
			h.mu.Unlock()

		case req := <-h.sendOne:
			if client, ok := h.clients[req.ConnID]; ok {
				select {
				case client.Send <- req.Message:
				default:
					// slow consumer, drop rather than stall the hub
				}
			}

		case req := <-h.seatCast:
			for _, client := range h.clients {
				if client.TableID != req.TableID || client.Seat != req.Seat {
					continue
				}
				select {
				case client.Send <- req.Message:
				default:
				}
			}

		case msg := <-h.incoming:
			if h.OnIncoming != nil {
				h.OnIncoming(msg)
			}

		case <-h.quit:
			for _, c := range h.clients {
				close(c.Send)
			}
			return
		}
	}
}

// SendToConn delivers a message to one connection.
func (h *Hub) SendToConn(connID string, msg OutgoingMessage) {
	h.sendOne <- sendReq{ConnID: connID, Message: msg}
}

// BroadcastToSeat delivers a message to every connection bound to a seat.
func (h *Hub) BroadcastToSeat(tableID int64, seat int, msg OutgoingMessage) {
	h.seatCast <- seatReq{TableID: tableID, Seat: seat, Message: msg}
}

func (h *Hub) Close() {
	close(h.quit)
}
