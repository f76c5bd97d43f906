package server

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/ayusman/gestr/internal/app"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Touch trackers connect from arbitrary local origins
	},
}

// IngestHandler receives touch messages over a WebSocket and feeds them to the app.
// Text messages carry JSON, binary messages carry CBOR with the same schema.
// Replies are encoded like the message that produced them.
type IngestHandler struct {
	app *app.App
}

// NewIngestHandler creates a new IngestHandler for the given app.
func NewIngestHandler(a *app.App) *IngestHandler {
	return &IngestHandler{app: a}
}

// ServeHTTP handles WebSocket upgrade requests and reads messages until the peer disconnects.
func (h *IngestHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	log.Printf("Touch source connected: %s", r.RemoteAddr)
	defer log.Printf("Touch source disconnected: %s", r.RemoteAddr)

	// Each connection assembles its own ticks
	session := h.app.NewSession()

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		msg, err := decodeMessage(msgType, data)
		if err != nil {
			log.Printf("ingest decode error: %v", err)
			continue
		}

		reply, err := session.Dispatch(msg)
		if err != nil {
			log.Printf("ingest: %v", err)
			continue
		}
		if reply == nil {
			continue
		}

		out, err := encodeReply(msgType, reply)
		if err != nil {
			log.Printf("ingest encode error: %v", err)
			continue
		}
		if err := conn.WriteMessage(msgType, out); err != nil {
			return
		}
	}
}
