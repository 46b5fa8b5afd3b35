package types

const (
	DOCUMENT_STATUS_PROCESSING = "processing"
	DOCUMENT_STATUS_READY      = "ready"
)

// Document is an uploaded study document after text extraction.
// Chunks are built exactly once when the extracted text becomes
// available; they are never mutated afterwards.
type Document struct {
	ID            string  `json:"id" bson:"_id"`
	Title         string  `json:"title" bson:"title"`
	Source        string  `json:"source" bson:"source"`
	ExtractedText string  `json:"extracted_text" bson:"extracted_text"`
	Status        string  `json:"status" bson:"status"`
	Chunks        []Chunk `json:"chunks" bson:"chunks"`
	CreatedAt     int64   `json:"created_at" bson:"created_at"`
	UpdatedAt     int64   `json:"updated_at" bson:"updated_at"`
}

// Chunk is a fixed-size, possibly overlapping segment of the extracted
// text. Index is the stable identity used for citation.
type Chunk struct {
	Index       int    `json:"index" bson:"index"`
	Content     string `json:"content" bson:"content"`
	StartOffset int    `json:"start_offset" bson:"start_offset"`
	EndOffset   int    `json:"end_offset" bson:"end_offset"`
}

// ChunkScore pairs a chunk index with its relevance score for a query.
type ChunkScore struct {
	ChunkIndex int
	Score      float64
}

// RetrievedChunk is the shape returned to retrieval callers.
type RetrievedChunk struct {
	ChunkIndex int    `json:"chunk_index"`
	Content    string `json:"content"`
}

// ChunkingConfig contains configuration options for document chunking
type ChunkingConfig struct {
	TargetSize int // Target size for text chunks in characters
	Overlap    int // Size of overlap between adjacent chunks
}
