package room

import "time"

// AddPending records a waiting-room request and returns the conn id of the
// admin who must decide it. ok is false when the room has no admin, in
// which case the caller auto-approves.
func (r *Room) AddPending(connId, displayName string) (adminId string, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.admin == nil {
		return "", false
	}
	r.pending[connId] = displayName
	return r.admin.Id, true
}

// ResolvePending clears a waiting-room entry once the admin has decided.
func (r *Room) ResolvePending(connId string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.pending, connId)
}

// Join appends a new participant. First admin wins: when the room already
// has an admin, a later join with the admin flag set is demoted to a
// regular participant, keeping at most one admin for the room's lifetime.
func (r *Room) Join(connId, displayName string, isAdmin bool) Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	if isAdmin && r.admin != nil {
		isAdmin = false
	}

	p := &Participant{
		Id:          connId,
		DisplayName: displayName,
		IsAdmin:     isAdmin,
		JoinedAt:    time.Now(),
	}
	if isAdmin {
		r.admin = p
	}
	r.participants = append(r.participants, p)
	return r.snapshotLocked()
}

// Rename updates a participant's display name. Unknown conn ids are a
// silent no-op.
func (r *Room) Rename(connId, newName string) (Snapshot, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.participants {
		if p.Id == connId {
			p.DisplayName = newName
			return r.snapshotLocked(), true
		}
	}
	return Snapshot{}, false
}

// IsAdmin reports whether connId is the room's current admin.
func (r *Room) IsAdmin(connId string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.admin != nil && r.admin.Id == connId
}

// Remove deletes a participant and recomputes the sentiment distribution in
// the same critical section, so the distribution invariant holds across the
// removal. The admin slot is cleared when the admin leaves, letting a
// future admin join claim it.
func (r *Room) Remove(connId string) (Participant, Snapshot, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.participants {
		if p.Id != connId {
			continue
		}
		removed := *p
		r.participants = append(r.participants[:i], r.participants[i+1:]...)
		if r.admin != nil && r.admin.Id == connId {
			r.admin = nil
		}
		r.recomputeSentimentLocked()
		return removed, r.snapshotLocked(), true
	}
	return Participant{}, Snapshot{}, false
}

func (r *Room) ParticipantCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.participants)
}

func (r *Room) nonAdminCountLocked() int {
	n := 0
	for _, p := range r.participants {
		if !p.IsAdmin {
			n++
		}
	}
	return n
}
