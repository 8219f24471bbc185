package ai

import (
	"context"
	"fmt"

	"resumelens/internal/config"
	"resumelens/internal/errors"
	"resumelens/internal/types"
)

// Operation names one of the AI pipelines a Service can be built for.
// Each operation carries its own prompts, model settings, and circuit
// breaker, so a Service is bound to exactly one at construction.
type Operation string

const (
	OpAnalyze  Operation = "analyze"
	OpJobMatch Operation = "job_match"
)

// Service binds an AI provider to a single operation.
type Service struct {
	provider AIProvider
	op       Operation
	config   *config.OperationAIConfig
	logger   *errors.Logger
}

// NewService builds a Service for the given operation from its
// per-operation configuration.
func NewService(cfg *config.OperationAIConfig, op Operation, logger *errors.Logger) (*Service, error) {
	switch op {
	case OpAnalyze, OpJobMatch:
	default:
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
			fmt.Sprintf("Unknown AI operation: %s", op), nil)
	}

	var provider AIProvider
	var err error

	switch cfg.Provider {
	case "gemini":
		logger.Debug("Initializing AI service",
			"provider", cfg.Provider,
			"operation", op,
			"model", cfg.Model,
			"temperature", *cfg.Temperature,
			"timeout", *cfg.Timeout,
			"max_retries", *cfg.MaxRetries,
			"use_system_prompts", *cfg.UseSystemPrompts)
		provider, err = NewGeminiProvider(cfg, string(op), logger)
	default:
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
			fmt.Sprintf("Unsupported AI provider: %s", cfg.Provider), nil)
	}

	if err != nil {
		return nil, errors.NewAIError(errors.ErrCodeAIServiceFailed,
			"Failed to create AI provider", err)
	}

	return &Service{
		provider: provider,
		op:       op,
		config:   cfg,
		logger:   logger,
	}, nil
}

// Operation reports which pipeline this service was built for.
func (s *Service) Operation() Operation {
	return s.op
}

// AnalyzeResume runs the resume analysis pipeline. The service must
// have been built for OpAnalyze; prompts and limits differ per
// operation, so cross-operation calls are rejected rather than run
// with the wrong configuration.
func (s *Service) AnalyzeResume(ctx context.Context, input types.AIAnalysisInput) (types.AIAnalysisOutput, *TokenUsage, error) {
	if s.op != OpAnalyze {
		return types.AIAnalysisOutput{}, nil, errors.NewAIError(errors.ErrCodeAIServiceFailed,
			fmt.Sprintf("service built for %s cannot analyze resumes", s.op), nil)
	}
	return s.provider.AnalyzeResume(ctx, input)
}

// MatchJob runs the resume-to-job matching pipeline. The service must
// have been built for OpJobMatch.
func (s *Service) MatchJob(ctx context.Context, input types.JobMatchInput) (types.JobMatchOutput, *TokenUsage, error) {
	if s.op != OpJobMatch {
		return types.JobMatchOutput{}, nil, errors.NewAIError(errors.ErrCodeAIServiceFailed,
			fmt.Sprintf("service built for %s cannot match jobs", s.op), nil)
	}
	return s.provider.MatchJob(ctx, input)
}

// GetModelInfo reports provider model status for health checks.
func (s *Service) GetModelInfo(ctx context.Context) any {
	return s.provider.GetModelInfo(ctx)
}
