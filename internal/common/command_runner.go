package common

import (
	"context"
	"fmt"
	"os"

	"jobscout/internal/ai"
	"jobscout/internal/errors"
)

// OperationFunc is a generic signature for any command operation that may
// report AI token usage. Operations that never touch a model return nil usage.
type OperationFunc[Output any] func(context.Context) (Output, *ai.TokenUsage, error)

// RunCommand encapsulates the common logic for CLI commands: run the
// operation, report token usage, and hand the result to the output pipeline.
func RunCommand[Output any](
	ctx context.Context,
	logger *errors.Logger,
	cmdConfig CommandConfig,
	operation OperationFunc[Output],
) error {
	outputHandler := NewOutputHandler(logger)

	result, tokenUsage, err := operation(ctx)
	if err != nil {
		return err
	}

	// Report token usage
	if tokenUsage != nil {
		if logger != nil {
			logger.Info("AI token usage", "input_tokens", tokenUsage.InputTokens, "output_tokens", tokenUsage.OutputTokens, "total_tokens", tokenUsage.TotalTokens)
		} else {
			fmt.Fprintf(os.Stderr, "AI token usage: input=%d, output=%d, total=%d\n", tokenUsage.InputTokens, tokenUsage.OutputTokens, tokenUsage.TotalTokens)
		}
	}

	return outputHandler.HandleOutput(result, cmdConfig)
}
