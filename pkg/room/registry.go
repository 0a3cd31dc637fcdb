package room

import (
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Registry owns the table of active rooms. It is constructed in main and
// passed to every component; there is no package-global room state. The
// registry mutex guards only the map — each room carries its own lock, so
// a sweep over one room never blocks the others.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*Room
}

func NewRegistry() *Registry {
	return &Registry{rooms: make(map[string]*Room)}
}

// GetOrCreate returns the room for code, creating an empty one with safe
// defaults when it does not exist. It never fails.
func (reg *Registry) GetOrCreate(code string) *Room {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	if r, ok := reg.rooms[code]; ok {
		return r
	}
	r := newRoom(code)
	reg.rooms[code] = r
	return r
}

// Get returns the room for code, or nil when absent.
func (reg *Registry) Get(code string) *Room {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return reg.rooms[code]
}

// Remove evicts a room. Used by the close-on-end-meeting lifecycle.
func (reg *Registry) Remove(code string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	delete(reg.rooms, code)
}

// Each calls fn for every active room. The registry lock is released
// before fn runs so a slow room sweep cannot block room creation.
func (reg *Registry) Each(fn func(r *Room)) {
	reg.mu.RLock()
	rooms := make([]*Room, 0, len(reg.rooms))
	for _, r := range reg.rooms {
		rooms = append(rooms, r)
	}
	reg.mu.RUnlock()

	for _, r := range rooms {
		fn(r)
	}
}

func (reg *Registry) Len() int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return len(reg.rooms)
}

// NewCode generates a short opaque room code: the first 8 characters of a
// v4 UUID, uppercased.
func NewCode() string {
	return strings.ToUpper(uuid.NewString()[:8])
}
