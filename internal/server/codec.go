package server

import (
	"encoding/json"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/gorilla/websocket"

	"github.com/ayusman/gestr/internal/app"
)

// decodeMessage decodes a WebSocket payload: JSON for text frames, CBOR for binary frames.
func decodeMessage(msgType int, data []byte) (app.Message, error) {
	var msg app.Message
	switch msgType {
	case websocket.TextMessage:
		if err := json.Unmarshal(data, &msg); err != nil {
			return msg, fmt.Errorf("invalid JSON message: %w", err)
		}
	case websocket.BinaryMessage:
		if err := cbor.Unmarshal(data, &msg); err != nil {
			return msg, fmt.Errorf("invalid CBOR message: %w", err)
		}
	default:
		return msg, fmt.Errorf("unsupported websocket message type %d", msgType)
	}
	return msg, nil
}

// encodeReply encodes a reply in the same format as the message it answers.
func encodeReply(msgType int, reply *app.Reply) ([]byte, error) {
	if msgType == websocket.BinaryMessage {
		return cbor.Marshal(reply)
	}
	return json.Marshal(reply)
}
