package room

import "testing"

func TestFirstAdminWins(t *testing.T) {
	r := newRoom("R1")
	r.Join("a", "Alice", true)
	snap := r.Join("b", "Bob", true)

	if !r.IsAdmin("a") {
		t.Error("first admin should keep the admin slot")
	}
	if r.IsAdmin("b") {
		t.Error("second admin join must not take the admin slot")
	}

	admins := 0
	for _, p := range snap.Participants {
		if p.IsAdmin {
			admins++
		}
	}
	if admins != 1 {
		t.Errorf("participant set has %d admins, want 1", admins)
	}
}

func TestJoinOrderPreserved(t *testing.T) {
	r := newRoom("R1")
	r.Join("a", "Alice", true)
	r.Join("b", "Bob", false)
	snap := r.Join("c", "Carol", false)

	want := []string{"a", "b", "c"}
	if len(snap.Participants) != len(want) {
		t.Fatalf("got %d participants, want %d", len(snap.Participants), len(want))
	}
	for i, id := range want {
		if snap.Participants[i].Id != id {
			t.Errorf("participants[%d].Id = %q, want %q", i, snap.Participants[i].Id, id)
		}
	}
}

func TestRenameUnknownParticipant(t *testing.T) {
	r := newRoom("R1")
	r.Join("a", "Alice", false)

	if _, ok := r.Rename("ghost", "Casper"); ok {
		t.Error("renaming an unknown participant should be a no-op")
	}
	snap, ok := r.Rename("a", "Alicia")
	if !ok {
		t.Fatal("rename of known participant failed")
	}
	if snap.Participants[0].DisplayName != "Alicia" {
		t.Errorf("DisplayName = %q, want Alicia", snap.Participants[0].DisplayName)
	}
}

func TestRemoveDecrementsSentiment(t *testing.T) {
	r := newRoom("R1")
	r.Join("a", "Alice", true)
	r.Join("b", "Bob", false)
	r.Join("c", "Carol", false)
	r.SubmitSentiment("b", SentimentGood)

	before := r.SentimentDistribution()
	if before.Good != 1 {
		t.Fatalf("before removal Good = %d, want 1", before.Good)
	}

	removed, snap, ok := r.Remove("b")
	if !ok {
		t.Fatal("remove failed")
	}
	if removed.DisplayName != "Bob" {
		t.Errorf("removed %q, want Bob", removed.DisplayName)
	}
	if got := len(snap.Participants); got != 2 {
		t.Errorf("got %d participants, want 2", got)
	}
	for _, p := range snap.Participants {
		if p.Id == "b" {
			t.Error("removed participant still present")
		}
	}
	if snap.Sentiment.Good != 0 {
		t.Errorf("Good = %d after removal, want 0", snap.Sentiment.Good)
	}
}

func TestRemoveUnknownIsNoOp(t *testing.T) {
	r := newRoom("R1")
	r.Join("a", "Alice", false)

	if _, _, ok := r.Remove("ghost"); ok {
		t.Error("removing an unknown conn id should report not found")
	}
	if r.ParticipantCount() != 1 {
		t.Errorf("participant count changed on no-op removal")
	}
}

func TestAdminSlotClearedOnRemoval(t *testing.T) {
	r := newRoom("R1")
	r.Join("a", "Alice", true)
	r.Remove("a")

	if r.IsAdmin("a") {
		t.Error("removed admin still holds the slot")
	}
	r.Join("b", "Bob", true)
	if !r.IsAdmin("b") {
		t.Error("a new admin join should claim the vacated slot")
	}
}

func TestPendingRequests(t *testing.T) {
	r := newRoom("R1")

	if _, ok := r.AddPending("x", "Xavier"); ok {
		t.Error("room without admin should auto-approve, not queue")
	}

	r.Join("a", "Alice", true)
	adminId, ok := r.AddPending("x", "Xavier")
	if !ok {
		t.Fatal("room with admin should queue the request")
	}
	if adminId != "a" {
		t.Errorf("adminId = %q, want a", adminId)
	}
	r.ResolvePending("x")
	r.ResolvePending("x") // resolving twice is harmless
}
