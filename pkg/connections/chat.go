package connections

import (
	"log"

	"classroom-ws-server/pkg/types"
)

func (h *Hub) handleSendMessage(c *types.Client, p sendMessagePayload) {
	rm := h.registry.Get(p.RoomId)
	if rm == nil {
		log.Printf("[chat] room %s not found", p.RoomId)
		return
	}

	msg := rm.AppendMessage(p.UserId, p.UserName, p.UserRole, p.Text)
	h.broadcastRoom(p.RoomId, types.OutboundEvent{Event: "receive-message", Payload: msg})
}

// handleReactToMessage broadcasts only the updated reaction map for the one
// message, never the whole log.
func (h *Hub) handleReactToMessage(c *types.Client, p reactPayload) {
	rm := h.registry.Get(p.RoomId)
	if rm == nil {
		return
	}

	reactions, ok := rm.ToggleReaction(p.MessageId, p.ReactionType, p.UserName)
	if !ok {
		return
	}
	h.broadcastRoom(p.RoomId, types.OutboundEvent{
		Event: "message-reaction-updated",
		Payload: map[string]any{
			"messageId": p.MessageId,
			"reactions": reactions,
		},
	})
}
