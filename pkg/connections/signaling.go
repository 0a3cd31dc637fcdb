package connections

import (
	"encoding/json"

	"classroom-ws-server/pkg/types"
)

// relayedSignal is what the addressed peer receives: the sender's id plus
// the untouched negotiation payload.
type relayedSignal struct {
	From      string          `json:"from"`
	Offer     json.RawMessage `json:"offer,omitempty"`
	Answer    json.RawMessage `json:"answer,omitempty"`
	Candidate json.RawMessage `json:"candidate,omitempty"`
}

// handleSignal relays offer/answer/ice-candidate verbatim to the peer named
// in `to`. No state is kept and the payload is never inspected or
// rewritten. A disconnected target means the message is dropped; the
// originating peer's own retry logic covers non-delivery.
func (h *Hub) handleSignal(event string, p signalPayload) {
	h.sendTo(p.To, types.OutboundEvent{
		Event: event,
		Payload: relayedSignal{
			From:      p.From,
			Offer:     p.Offer,
			Answer:    p.Answer,
			Candidate: p.Candidate,
		},
	})
}
