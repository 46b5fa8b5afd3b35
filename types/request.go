package types

type UploadRequest struct {
	Title  string `json:"title"`
	Source string `json:"source"`
}

type ChatRequest struct {
	DocumentID string `json:"document_id"`
	Question   string `json:"question"`
}

type ExplainRequest struct {
	DocumentID string `json:"document_id"`
	Concept    string `json:"concept"`
}

type RetrieveRequest struct {
	DocumentID string `json:"document_id"`
	Query      string `json:"query"`
	K          int    `json:"k,omitempty"`
}

type SummarizeRequest struct {
	DocumentID string `json:"document_id"`
}
