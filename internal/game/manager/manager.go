package manager

import (
	"encoding/json"
	"errors"
	"sync"

	"HeadsUpPoker/internal/game/hand"
	"HeadsUpPoker/internal/game/table"
	"HeadsUpPoker/internal/utils"
	"HeadsUpPoker/internal/websocket"
)

var (
	// ErrUnknownTable means no table exists with that id.
	ErrUnknownTable = errors.New("unknown table")
	// ErrTableExists rejects creating a duplicate table id.
	ErrTableExists = errors.New("table already exists")
)

// Manager is the registry of live tables and the bridge between the
// websocket hub and the table coordinators.
type Manager struct {
	mu     sync.RWMutex
	tables map[int64]*table.Table
	hub    websocket.HubInterface

	// Opts is applied to every created table; tests use it to pin the
	// dealer seed and evaluator.
	Opts table.Options
}

func New(hub websocket.HubInterface) *Manager {
	return &Manager{
		tables: make(map[int64]*table.Table),
		hub:    hub,
	}
}

// Create registers a new table and deals its first hand.
func (m *Manager) Create(id, smallBlind int64, stacks [2]int64) (*table.Table, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.tables[id]; ok {
		return nil, ErrTableExists
	}
	t, err := table.New(id, smallBlind, stacks, m.Opts)
	if err != nil {
		return nil, err
	}
	m.tables[id] = t
	utils.Log.Info("table created", "table", id, "sb", smallBlind, "stacks", stacks)
	return t, nil
}

func (m *Manager) Get(id int64) (*table.Table, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.tables[id]
	if !ok {
		return nil, ErrUnknownTable
	}
	return t, nil
}

// actionPayload is the wire form of a player action.
type actionPayload struct {
	Action string `json:"action"`
	Amount int64  `json:"amount"`
}

// HandleMessage is the hub's OnIncoming entry point. Every reply goes to
// the submitting connection; after a successful action both seats get a
// fresh snapshot. A missed push is recovered by asking for the snapshot
// again.
func (m *Manager) HandleMessage(msg websocket.ClientMessage) {
	t, err := m.Get(msg.TableID)
	if err != nil {
		m.sendError(msg.ConnID, err)
		return
	}

	switch msg.Event {
	case "action":
		var p actionPayload
		if err := json.Unmarshal(msg.Data, &p); err != nil {
			m.sendError(msg.ConnID, hand.ErrIllegalAction)
			return
		}
		act, err := parseAction(p)
		if err != nil {
			m.sendError(msg.ConnID, err)
			return
		}
		if err := t.SubmitAction(msg.Seat, act); err != nil {
			m.sendError(msg.ConnID, err)
			return
		}
		m.broadcastSnapshots(t)

	case "snapshot":
		snap, err := t.SnapshotFor(msg.Seat)
		if err != nil {
			m.sendError(msg.ConnID, err)
			return
		}
		m.hub.SendToConn(msg.ConnID, websocket.OutgoingMessage{Event: "snapshot", Data: snap})
	}
}

func parseAction(p actionPayload) (hand.Action, error) {
	switch p.Action {
	case "fold":
		return hand.Action{Type: hand.Fold}, nil
	case "check":
		return hand.Action{Type: hand.Check}, nil
	case "call":
		return hand.Action{Type: hand.Call}, nil
	case "raise":
		return hand.Action{Type: hand.Raise, Amount: p.Amount}, nil
	}
	return hand.Action{}, hand.ErrIllegalAction
}

func (m *Manager) broadcastSnapshots(t *table.Table) {
	for seat := 0; seat < 2; seat++ {
		snap, err := t.SnapshotFor(seat)
		if err != nil {
			continue
		}
		m.hub.BroadcastToSeat(t.ID(), seat, websocket.OutgoingMessage{Event: "snapshot", Data: snap})
	}
}

func (m *Manager) sendError(connID string, err error) {
	m.hub.SendToConn(connID, websocket.OutgoingMessage{
		Event: "error",
		Data:  websocket.ErrorData{Code: ErrorCode(err), Message: err.Error()},
	})
}

// ErrorCode maps engine errors onto stable wire codes.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, table.ErrInvalidConfig):
		return "invalid_config"
	case errors.Is(err, ErrUnknownTable):
		return "unknown_table"
	case errors.Is(err, table.ErrUnknownSeat):
		return "unknown_seat"
	case errors.Is(err, hand.ErrNotActivePlayer):
		return "not_active_player"
	case errors.Is(err, hand.ErrIllegalAction):
		return "illegal_action"
	case errors.Is(err, table.ErrTableFinished):
		return "table_finished"
	case errors.Is(err, ErrTableExists):
		return "table_exists"
	}
	return "internal"
}
