package connections

import (
	"classroom-ws-server/pkg/ai"
	"classroom-ws-server/pkg/config"
	"classroom-ws-server/pkg/db"
	"classroom-ws-server/pkg/room"
	"classroom-ws-server/pkg/types"
)

// Hub wires the event surface to the room registry, the AI backend and the
// persistence bridge. Every inbound event flows through dispatch; every
// outbound event flows through the send helpers below.
type Hub struct {
	cfg      *config.Config
	registry *room.Registry
	table    *Table
	ai       ai.Service
	store    *db.Db
}

func NewHub(cfg *config.Config, registry *room.Registry, aiSvc ai.Service, store *db.Db) *Hub {
	return &Hub{
		cfg:      cfg,
		registry: registry,
		table:    NewTable(),
		ai:       aiSvc,
		store:    store,
	}
}

// send queues an event for one client, dropping it when the client's
// buffer is full (a stalled socket must not stall the room).
func (h *Hub) send(c *types.Client, ev types.OutboundEvent) {
	if c == nil {
		return
	}
	select {
	case c.Send <- ev:
	default:
	}
}

// sendTo delivers to a conn id if it is still connected; otherwise the
// event is silently dropped.
func (h *Hub) sendTo(connId string, ev types.OutboundEvent) {
	h.send(h.table.Get(connId), ev)
}

func (h *Hub) sendError(c *types.Client, message string) {
	h.send(c, types.OutboundEvent{Event: "error", Payload: types.ErrorPayload{Message: message}})
}

// broadcastRoom fans an event out to every socket attached to the room.
func (h *Hub) broadcastRoom(code string, ev types.OutboundEvent) {
	for _, c := range h.table.InRoom(code) {
		h.send(c, ev)
	}
}

func (h *Hub) broadcastSnapshot(code string, snap room.Snapshot) {
	h.broadcastRoom(code, types.OutboundEvent{Event: "room-state", Payload: snap})
}
