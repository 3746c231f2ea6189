package ai

import (
	"context"
)

// Provider interface for different AI implementations
// All methods return the raw model text plus token usage - callers parse the text themselves
type Provider interface {
	ExtractHistory(ctx context.Context, chunkText string) (string, *TokenUsage, error)
	ExtractLocation(ctx context.Context, chunkText string) (string, *TokenUsage, error)
	GenerateKeywords(ctx context.Context, historySummary string, count int, focus string) (string, *TokenUsage, error)
	GetModelInfo(ctx context.Context) *ModelInfo
	Close() error
}
