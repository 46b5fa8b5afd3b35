package types

const (
	MESSAGE_ROLE_USER      = "user"
	MESSAGE_ROLE_ASSISTANT = "assistant"
)

// Message represents a single message in a document conversation.
// RelevantChunks is empty for user messages and holds the chunk
// indices that grounded the answer for assistant messages.
type Message struct {
	Role           string `json:"role" bson:"role"`
	Content        string `json:"content" bson:"content"`
	Timestamp      int64  `json:"timestamp" bson:"timestamp"`
	RelevantChunks []int  `json:"relevant_chunks" bson:"relevant_chunks"`
}

// ChatHistory is the append-only conversation log for one user on one
// document, created lazily on the first chat turn.
type ChatHistory struct {
	ID         string    `json:"id" bson:"_id,omitempty"`
	UserID     string    `json:"user_id" bson:"user_id"`
	DocumentID string    `json:"document_id" bson:"document_id"`
	Messages   []Message `json:"messages" bson:"messages"`
	CreatedAt  int64     `json:"created_at" bson:"created_at"`
	UpdatedAt  int64     `json:"updated_at" bson:"updated_at"`
}

// ChatTurn is the result of one successful chat exchange.
type ChatTurn struct {
	Question       string `json:"question"`
	Answer         string `json:"answer"`
	RelevantChunks []int  `json:"relevant_chunks"`
}

// Explanation is the result of an explain-concept request.
type Explanation struct {
	Concept        string `json:"concept"`
	Explanation    string `json:"explanation"`
	RelevantChunks []int  `json:"relevant_chunks"`
}

// StreamHandler handles partial responses from a streaming generation call.
type StreamHandler func(response string)
