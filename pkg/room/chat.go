package room

import (
	"time"

	"github.com/google/uuid"
)

// AppendMessage stores a chat message with a server-assigned id and
// timestamp, and returns a copy for broadcasting.
func (r *Room) AppendMessage(userId, userName, userRole, text string) ChatMessage {
	r.mu.Lock()
	defer r.mu.Unlock()

	msg := &ChatMessage{
		Id:        uuid.NewString(),
		UserId:    userId,
		UserName:  userName,
		UserRole:  userRole,
		Text:      text,
		Timestamp: time.Now(),
		Reactions: make(map[string][]string),
	}
	r.messages = append(r.messages, msg)
	return *msg
}

// ToggleReaction flips reactorName's reaction of the given kind on the
// message: present removes it, absent adds it. A kind whose reactor list
// empties is deleted from the map. Applying the same toggle twice returns
// the message to its prior state. The returned map is a copy.
func (r *Room) ToggleReaction(messageId, kind, reactorName string) (map[string][]string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var msg *ChatMessage
	for _, m := range r.messages {
		if m.Id == messageId {
			msg = m
			break
		}
	}
	if msg == nil {
		return nil, false
	}

	reactors := msg.Reactions[kind]
	found := -1
	for i, name := range reactors {
		if name == reactorName {
			found = i
			break
		}
	}

	if found >= 0 {
		reactors = append(reactors[:found], reactors[found+1:]...)
		if len(reactors) == 0 {
			delete(msg.Reactions, kind)
		} else {
			msg.Reactions[kind] = reactors
		}
	} else {
		msg.Reactions[kind] = append(reactors, reactorName)
	}

	out := make(map[string][]string, len(msg.Reactions))
	for k, names := range msg.Reactions {
		out[k] = append([]string(nil), names...)
	}
	return out, true
}

func (r *Room) MessageCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.messages)
}
