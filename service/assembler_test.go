package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tieubaoca/docstudy-be/types"
)

func TestJoinChunks_OrderAndSeparator(t *testing.T) {
	assembler := NewContextAssembler(0, 0)
	chunks := []types.Chunk{
		{Index: 3, Content: "most relevant"},
		{Index: 0, Content: "second"},
	}
	assert.Equal(t, "most relevant\n\nsecond", assembler.JoinChunks(chunks))
}

func TestJoinChunks_TruncatesToBudget(t *testing.T) {
	chunks := []types.Chunk{
		{Index: 0, Content: "abcde"},
		{Index: 1, Content: "fghij"},
	}

	assembler := NewContextAssembler(9, 0)
	assert.Equal(t, "abcde\n\nfg", assembler.JoinChunks(chunks))

	// No room left after the separator: the second chunk is dropped.
	assembler = NewContextAssembler(7, 0)
	assert.Equal(t, "abcde", assembler.JoinChunks(chunks))
}

func TestBuildChatPrompt_IncludesContextAndQuestion(t *testing.T) {
	assembler := NewContextAssembler(0, 0)
	chunks := []types.Chunk{{Index: 0, Content: "photosynthesis converts light"}}

	prompt := assembler.BuildChatPrompt("what is photosynthesis?", chunks, nil)
	assert.Contains(t, prompt, "photosynthesis converts light")
	assert.Contains(t, prompt, "Question: what is photosynthesis?")
	assert.NotContains(t, prompt, "Conversation so far")
	// Context precedes the question.
	assert.Less(t, strings.Index(prompt, "photosynthesis converts light"), strings.Index(prompt, "Question:"))
}

func TestBuildChatPrompt_BoundsHistoryTail(t *testing.T) {
	assembler := NewContextAssembler(0, 2)
	history := []types.Message{
		{Role: types.MESSAGE_ROLE_USER, Content: "first question"},
		{Role: types.MESSAGE_ROLE_ASSISTANT, Content: "first answer"},
		{Role: types.MESSAGE_ROLE_USER, Content: "second question"},
		{Role: types.MESSAGE_ROLE_ASSISTANT, Content: "second answer"},
	}

	prompt := assembler.BuildChatPrompt("third question", nil, history)
	assert.Contains(t, prompt, "user: second question")
	assert.Contains(t, prompt, "assistant: second answer")
	assert.NotContains(t, prompt, "first question")
	assert.NotContains(t, prompt, "first answer")
}

func TestBuildChatPrompt_DoesNotMutateHistory(t *testing.T) {
	assembler := NewContextAssembler(0, 1)
	history := []types.Message{
		{Role: types.MESSAGE_ROLE_USER, Content: "q"},
		{Role: types.MESSAGE_ROLE_ASSISTANT, Content: "a"},
	}

	assembler.BuildChatPrompt("next", nil, history)
	assert.Len(t, history, 2)
	assert.Equal(t, "q", history[0].Content)
}

func TestBuildExplainPrompt(t *testing.T) {
	assembler := NewContextAssembler(0, 0)
	chunks := []types.Chunk{{Index: 1, Content: "entropy measures disorder"}}

	prompt := assembler.BuildExplainPrompt("entropy", chunks)
	assert.Contains(t, prompt, "entropy measures disorder")
	assert.Contains(t, prompt, "Concept: entropy")
}

func TestBuildSummaryPrompt_TruncatesToBudget(t *testing.T) {
	assembler := NewContextAssembler(10, 0)

	prompt := assembler.BuildSummaryPrompt("aaaaabbbbbccccc")
	assert.Contains(t, prompt, "aaaaabbbbb")
	assert.NotContains(t, prompt, "ccccc")
}
