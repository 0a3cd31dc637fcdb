package connections

import (
	"log"
	"net/http"

	"github.com/google/uuid"

	"classroom-ws-server/pkg/misc"
	"classroom-ws-server/pkg/types"
)

// HandleInitConnection upgrades the request, registers the client and
// starts its pumps. The client learns its server-assigned conn id from the
// initial "connected" event.
func (h *Hub) HandleInitConnection(writer http.ResponseWriter, request *http.Request) {
	conn, err := misc.WsConnectionUpgrader.Upgrade(writer, request, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed: %v", err)
		return
	}

	client := &types.Client{
		ConnId: uuid.NewString(),
		Conn:   conn,
		Send:   make(chan types.OutboundEvent, h.cfg.ClientSendBuffer),
	}
	h.table.Add(client)

	go h.writePump(client)

	h.send(client, types.OutboundEvent{
		Event:   "connected",
		Payload: map[string]string{"socketId": client.ConnId},
	})

	h.readLoop(client)
}
