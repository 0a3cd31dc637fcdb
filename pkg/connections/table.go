package connections

import (
	"sync"

	"classroom-ws-server/pkg/types"
)

// Table tracks every live connection by conn id, for point delivery to a
// single socket (waiting-room decisions, signaling relay, point errors).
// It also owns room membership: conn id -> room code lives here, under the
// table mutex, because broadcasts read it from every connection's goroutine
// while joins and removals write it.
type Table struct {
	mu      sync.RWMutex
	clients map[string]*types.Client
	rooms   map[string]string
}

func NewTable() *Table {
	return &Table{
		clients: make(map[string]*types.Client),
		rooms:   make(map[string]string),
	}
}

func (t *Table) Add(c *types.Client) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.clients[c.ConnId] = c
}

func (t *Table) Remove(connId string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.clients, connId)
	delete(t.rooms, connId)
}

func (t *Table) Get(connId string) *types.Client {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.clients[connId]
}

// SetRoom records which room a connection is attached to. Unknown conn ids
// are ignored so a stale membership entry can never outlive its connection.
func (t *Table) SetRoom(connId, code string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.clients[connId]; ok {
		t.rooms[connId] = code
	}
}

// ClearRoom detaches a connection from its room without dropping the
// connection itself (kicked users keep their socket).
func (t *Table) ClearRoom(connId string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.rooms, connId)
}

// InRoom returns the clients currently attached to the given room code.
func (t *Table) InRoom(code string) []*types.Client {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var out []*types.Client
	for connId, rc := range t.rooms {
		if rc != code {
			continue
		}
		if c := t.clients[connId]; c != nil {
			out = append(out, c)
		}
	}
	return out
}
