package connections

import (
	"log"

	"classroom-ws-server/pkg/room"
	"classroom-ws-server/pkg/types"
)

// handleRequestToJoin implements the waiting room: with an admin present
// the request is queued and only the admin is notified; without one the
// requester is auto-approved (the instructor may simply not have arrived).
func (h *Hub) handleRequestToJoin(c *types.Client, p requestToJoinPayload) {
	rm := h.registry.Get(p.RoomId)
	if rm != nil {
		if adminId, ok := rm.AddPending(c.ConnId, p.DisplayName); ok {
			log.Printf("[meeting] %s requesting to join %s", p.DisplayName, p.RoomId)
			h.sendTo(adminId, types.OutboundEvent{
				Event: "participant-request",
				Payload: map[string]string{
					"socketId":    c.ConnId,
					"displayName": p.DisplayName,
				},
			})
			return
		}
	}
	h.send(c, types.OutboundEvent{Event: "participant-approved"})
}

// handleDecide delivers an admin's waiting-room decision to exactly the
// targeted connection.
func (h *Hub) handleDecide(c *types.Client, p decidePayload, approve bool) {
	if rm := h.registry.Get(p.RoomId); rm != nil {
		rm.ResolvePending(p.SocketId)
	}
	event := "participant-denied"
	if approve {
		event = "participant-approved"
	}
	log.Printf("[meeting] %s decision for %s in %s: %s", c.ConnId, p.SocketId, p.RoomId, event)
	h.sendTo(p.SocketId, types.OutboundEvent{Event: event})
}

func (h *Hub) handleJoinRoom(c *types.Client, p joinRoomPayload) {
	rm := h.registry.GetOrCreate(p.RoomId)
	snap := rm.Join(c.ConnId, p.DisplayName, p.IsAdmin)

	h.table.SetRoom(c.ConnId, p.RoomId)
	c.Name = p.DisplayName
	c.IsAdmin = rm.IsAdmin(c.ConnId)

	log.Printf("[meeting] %s joined %s as %s (admin: %v), %d participants",
		c.ConnId, p.RoomId, p.DisplayName, c.IsAdmin, len(snap.Participants))
	h.broadcastSnapshot(p.RoomId, snap)
}

func (h *Hub) handleUpdateName(c *types.Client, p updateNamePayload) {
	rm := h.registry.Get(p.RoomId)
	if rm == nil {
		return
	}
	snap, ok := rm.Rename(c.ConnId, p.NewName)
	if !ok {
		return
	}
	c.Name = p.NewName
	h.broadcastSnapshot(p.RoomId, snap)
}

func (h *Hub) handleSubmitSentiment(c *types.Client, p sentimentPayload) {
	rm := h.registry.Get(p.RoomId)
	if rm == nil {
		return
	}
	dist, snap, ok := rm.SubmitSentiment(c.ConnId, p.Sentiment)
	if !ok {
		return
	}

	h.broadcastRoom(p.RoomId, types.OutboundEvent{
		Event: "sentiment-updated",
		Payload: map[string]any{
			"participantId": c.ConnId,
			"sentiment":     p.Sentiment,
			"distribution":  dist,
		},
	})
	h.broadcastSnapshot(p.RoomId, snap)
}

func (h *Hub) handleRemoveUser(c *types.Client, p targetUserPayload) {
	rm := h.registry.Get(p.RoomId)
	if rm == nil {
		return
	}
	if !rm.IsAdmin(c.ConnId) {
		h.sendError(c, "Only instructors can remove users")
		return
	}

	removed, snap, ok := rm.Remove(p.ParticipantId)
	if !ok {
		return
	}
	log.Printf("[meeting] %s removed from %s by instructor", removed.DisplayName, p.RoomId)

	h.sendTo(p.ParticipantId, types.OutboundEvent{Event: "user-removed"})
	h.table.ClearRoom(p.ParticipantId)
	h.broadcastSnapshot(p.RoomId, snap)
}

func (h *Hub) handleMuteUser(c *types.Client, p targetUserPayload) {
	rm := h.registry.Get(p.RoomId)
	if rm == nil {
		return
	}
	if !rm.IsAdmin(c.ConnId) {
		h.sendError(c, "Only instructors can mute users")
		return
	}
	h.sendTo(p.ParticipantId, types.OutboundEvent{Event: "force-mute"})
}

// handleDisconnect is the only cleanup path for ungraceful exits. It sweeps
// every room; a conn id present nowhere is a silent no-op, so the sweep is
// idempotent.
func (h *Hub) handleDisconnect(c *types.Client) {
	h.table.Remove(c.ConnId)

	h.registry.Each(func(rm *room.Room) {
		if _, snap, ok := rm.Remove(c.ConnId); ok {
			h.broadcastSnapshot(rm.Code, snap)
		}
	})
}
