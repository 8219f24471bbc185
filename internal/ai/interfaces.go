package ai

import (
	"context"

	"resumelens/internal/types"
)

// AIProvider interface for different AI implementations
// All methods return token usage information - callers can ignore it if not needed
type AIProvider interface {
	AnalyzeResume(ctx context.Context, input types.AIAnalysisInput) (types.AIAnalysisOutput, *TokenUsage, error)
	MatchJob(ctx context.Context, input types.JobMatchInput) (types.JobMatchOutput, *TokenUsage, error)
	GetModelInfo(ctx context.Context) *ModelInfo
	Close() error
}
