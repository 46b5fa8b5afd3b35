package types

const (
	TypeWebsocketPing  = "ping"
	TypeWebsocketPong  = "pong"
	TypeWebsocketChat  = "chat"
	TypeWebsocketDelta = "delta"
	TypeWebsocketDone  = "done"
	TypeWebsocketError = "error"
)

type WebsocketRequest struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type WebSocketChatPayload struct {
	DocumentID string `json:"document_id"`
	Question   string `json:"question"`
}

type WebSocketResponse struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type WebSocketDeltaPayload struct {
	Delta string `json:"delta"`
}

type WebSocketDonePayload struct {
	Answer         string `json:"answer"`
	RelevantChunks []int  `json:"relevant_chunks"`
}
