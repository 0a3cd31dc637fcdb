package misc

import (
	"github.com/gorilla/websocket"
	"net/http"
)

var WsConnectionUpgrader = websocket.Upgrader{
	ReadBufferSize:  64 * 1024,
	WriteBufferSize: 64 * 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}
