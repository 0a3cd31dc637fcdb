package room

import (
	"reflect"
	"testing"
)

func TestReactionToggleIdempotent(t *testing.T) {
	r := newRoom("R1")
	msg := r.AppendMessage("u1", "Alice", "learner", "hello")

	first, ok := r.ToggleReaction(msg.Id, "👍", "Bob")
	if !ok {
		t.Fatal("toggle failed")
	}
	if !reflect.DeepEqual(first["👍"], []string{"Bob"}) {
		t.Errorf("after first toggle: %v", first)
	}

	second, _ := r.ToggleReaction(msg.Id, "👍", "Bob")
	if len(second) != 0 {
		t.Errorf("double toggle should restore pre-reaction state, got %v", second)
	}
}

func TestReactionKindRemovedWhenEmpty(t *testing.T) {
	r := newRoom("R1")
	msg := r.AppendMessage("u1", "Alice", "learner", "hello")

	r.ToggleReaction(msg.Id, "🎉", "Bob")
	r.ToggleReaction(msg.Id, "🎉", "Carol")
	r.ToggleReaction(msg.Id, "🎉", "Bob")

	reactions, _ := r.ToggleReaction(msg.Id, "🎉", "Carol")
	if _, present := reactions["🎉"]; present {
		t.Errorf("empty reaction kind should be removed, got %v", reactions)
	}
}

func TestToggleReactionUnknownMessage(t *testing.T) {
	r := newRoom("R1")
	if _, ok := r.ToggleReaction("missing", "👍", "Bob"); ok {
		t.Error("reacting to a missing message should report not found")
	}
}

func TestAppendMessageAssignsIdentity(t *testing.T) {
	r := newRoom("R1")
	a := r.AppendMessage("u1", "Alice", "instructor", "first")
	b := r.AppendMessage("u2", "Bob", "learner", "second")

	if a.Id == "" || b.Id == "" {
		t.Error("messages must get server-assigned ids")
	}
	if a.Id == b.Id {
		t.Error("message ids must be unique")
	}
	if a.Timestamp.IsZero() {
		t.Error("messages must get server-assigned timestamps")
	}
	if r.MessageCount() != 2 {
		t.Errorf("MessageCount = %d, want 2", r.MessageCount())
	}
}
