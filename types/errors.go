package types

import "errors"

var (
	// ErrInvalidInput marks caller mistakes: empty query, non-positive k,
	// missing ids. Reported immediately, never retried.
	ErrInvalidInput = errors.New("invalid input")

	// ErrChunksExist is returned when chunk building is attempted twice
	// for the same document.
	ErrChunksExist = errors.New("chunks already built for document")

	ErrDocumentNotFound = errors.New("document not found")

	// ErrDocumentNotReady is returned when retrieval is attempted before
	// chunking has completed.
	ErrDocumentNotReady = errors.New("document not ready")

	// ErrGenerationFailure wraps errors from the external generation
	// gateway. No chat history mutation happens when it occurs.
	ErrGenerationFailure = errors.New("generation failed")
)
