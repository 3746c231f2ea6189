package ai

import (
	"context"
)

// OperationProviders routes each pipeline operation to the provider built
// from that operation's configuration, so location can run a smaller model
// than history extraction.
type OperationProviders struct {
	Extract  Provider
	Location Provider
	Keywords Provider
}

var _ Provider = OperationProviders{}

func (p OperationProviders) ExtractHistory(ctx context.Context, chunkText string) (string, *TokenUsage, error) {
	return p.Extract.ExtractHistory(ctx, chunkText)
}

func (p OperationProviders) ExtractLocation(ctx context.Context, chunkText string) (string, *TokenUsage, error) {
	return p.Location.ExtractLocation(ctx, chunkText)
}

func (p OperationProviders) GenerateKeywords(ctx context.Context, historySummary string, count int, focus string) (string, *TokenUsage, error) {
	return p.Keywords.GenerateKeywords(ctx, historySummary, count, focus)
}

// GetModelInfo reports on the extraction model, which carries the bulk of
// the pipeline's calls.
func (p OperationProviders) GetModelInfo(ctx context.Context) *ModelInfo {
	return p.Extract.GetModelInfo(ctx)
}

func (p OperationProviders) Close() error {
	var firstErr error
	for _, provider := range []Provider{p.Extract, p.Location, p.Keywords} {
		if provider == nil {
			continue
		}
		if err := provider.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
