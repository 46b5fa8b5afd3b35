package service

import (
	"context"

	"github.com/tieubaoca/docstudy-be/types"
)

// AIService is the generation gateway: prompt in, text out. The
// retrieval core treats it as an opaque external collaborator, so tests
// run against a stub and the vendor can be swapped by configuration.
type AIService interface {
	Generate(ctx context.Context, prompt string) (string, error)
	GenerateStream(ctx context.Context, prompt string, handler types.StreamHandler) error
}
