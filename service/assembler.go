package service

import (
	"strings"

	"github.com/tieubaoca/docstudy-be/types"
)

const (
	DefaultMaxContextChars = 6000
	DefaultHistoryTail     = 20 // messages, i.e. 10 chat turns
)

// ContextAssembler turns retrieved chunks, and for chat the prior
// conversation, into a bounded prompt payload for the generation
// gateway. It never mutates chat history; appending happens only after
// a successful generation.
type ContextAssembler struct {
	maxContextChars int // character budget for joined document context
	historyTail     int // most recent messages included in chat prompts
}

func NewContextAssembler(maxContextChars, historyTail int) *ContextAssembler {
	if maxContextChars <= 0 {
		maxContextChars = DefaultMaxContextChars
	}
	if historyTail <= 0 {
		historyTail = DefaultHistoryTail
	}
	return &ContextAssembler{
		maxContextChars: maxContextChars,
		historyTail:     historyTail,
	}
}

// JoinChunks concatenates chunk contents with blank-line separators in
// retriever order, truncated to the character budget. Order matters:
// the most relevant chunk sits closest to the top of the prompt.
func (a *ContextAssembler) JoinChunks(chunks []types.Chunk) string {
	var b strings.Builder
	for i, ch := range chunks {
		sep := ""
		if i > 0 {
			sep = "\n\n"
		}
		remaining := a.maxContextChars - b.Len() - len(sep)
		if remaining <= 0 {
			break
		}
		b.WriteString(sep)
		if len(ch.Content) > remaining {
			b.WriteString(ch.Content[:remaining])
			break
		}
		b.WriteString(ch.Content)
	}
	return b.String()
}

// BuildExplainPrompt assembles the prompt for an explain-concept request.
func (a *ContextAssembler) BuildExplainPrompt(concept string, chunks []types.Chunk) string {
	var b strings.Builder
	b.WriteString("You are a study assistant. Explain the concept below to a student, using only the document excerpts provided.\n\n")
	b.WriteString("Document excerpts:\n")
	b.WriteString(a.JoinChunks(chunks))
	b.WriteString("\n\nConcept: ")
	b.WriteString(concept)
	return b.String()
}

// BuildChatPrompt assembles the prompt for a chat turn: document context
// from the retrieved chunks plus a bounded tail of the conversation so
// far, followed by the new question.
func (a *ContextAssembler) BuildChatPrompt(question string, chunks []types.Chunk, history []types.Message) string {
	var b strings.Builder
	b.WriteString("You are a study assistant answering questions about a document. Answer using only the document context. If the answer is not in the document, say so.\n\n")
	b.WriteString("Document context:\n")
	b.WriteString(a.JoinChunks(chunks))

	tail := history
	if len(tail) > a.historyTail {
		tail = tail[len(tail)-a.historyTail:]
	}
	if len(tail) > 0 {
		b.WriteString("\n\nConversation so far:\n")
		for _, msg := range tail {
			b.WriteString(msg.Role)
			b.WriteString(": ")
			b.WriteString(msg.Content)
			b.WriteString("\n")
		}
	}

	b.WriteString("\nQuestion: ")
	b.WriteString(question)
	return b.String()
}

// BuildSummaryPrompt assembles the prompt for a whole-document summary.
// Summaries bypass retrieval and send the extracted text directly,
// bounded by the same character budget.
func (a *ContextAssembler) BuildSummaryPrompt(text string) string {
	if len(text) > a.maxContextChars {
		text = text[:a.maxContextChars]
	}
	var b strings.Builder
	b.WriteString("Summarize the following document for a student. Cover the main ideas in a few short paragraphs.\n\nDocument:\n")
	b.WriteString(text)
	return b.String()
}
