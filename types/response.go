package types

type DataResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type UploadResponse struct {
	DocumentID string `json:"document_id"`
	Title      string `json:"title"`
	ChunkCount int    `json:"chunk_count"`
}

type RetrieveResponse struct {
	DocumentID string           `json:"document_id"`
	Chunks     []RetrievedChunk `json:"chunks"`
}

type ChatResponse struct {
	Question       string `json:"question"`
	Answer         string `json:"answer"`
	RelevantChunks []int  `json:"relevant_chunks"`
}

type SummarizeResponse struct {
	DocumentID string `json:"document_id"`
	Summary    string `json:"summary"`
}
