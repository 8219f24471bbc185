package cli

import (
	"context"
	"fmt"

	"resumelens/internal/ai"
	"resumelens/internal/common"
	"resumelens/internal/types"

	"github.com/spf13/cobra"
)

var aiAnalyzeCmd = &cobra.Command{
	Use:   "ai-analyze [resume-file] [job-description-file]",
	Short: "Analyze a resume with AI against a target role",
	Long: `Analyze a resume using the configured AI provider. The resume is
scored for overall quality and ATS compatibility, with a narrative
assessment of strengths and weaknesses.

The command takes the path to the resume file and optionally the path
to a job description file; when a job description is given the analysis
also includes a job match score. Use --role to name the role the resume
targets.`,
	Args: cobra.RangeArgs(1, 2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := getConfigFromContext(cmd.Context())
		if err != nil {
			return err
		}
		// Apply default format if not specified
		if aiAnalyzeConfig.OutputFormat == "" {
			aiAnalyzeConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return aiAnalyzeConfig.Validate(cfg.App.SupportedFormats)
	},
	RunE: runAIAnalyze,
}

var (
	aiAnalyzeConfig common.CommandConfig
	aiAnalyzeRole   string
)

func init() {
	aiAnalyzeCmd.Flags().StringVarP(&aiAnalyzeConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	aiAnalyzeCmd.Flags().StringVar(&aiAnalyzeConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	aiAnalyzeCmd.Flags().StringVar(&aiAnalyzeRole, "role", "", "Role the resume targets (e.g. 'Backend Engineer')")
	_ = aiAnalyzeCmd.MarkFlagRequired("role")

	// Add completion for format flag
	_ = aiAnalyzeCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg, err := getConfigFromContext(cmd.Context())
		if err != nil {
			return []string{}, cobra.ShellCompDirectiveError
		}
		return common.SupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runAIAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := getConfigFromContext(cmd.Context())
	if err != nil {
		return err
	}
	logger, err := getLoggerFromContext(cmd.Context())
	if err != nil {
		return err
	}

	// Create AI service for the analyze operation
	analyzeAIConfig := cfg.GetAnalyzeConfig()
	aiService, err := ai.NewService(&analyzeAIConfig, ai.OpAnalyze, logger)
	if err != nil {
		return fmt.Errorf("failed to create AI service: %w", err)
	}

	createInput := func(contents []string) (types.AIAnalysisInput, error) {
		input := types.AIAnalysisInput{
			ResumeText: contents[0],
			JobRole:    aiAnalyzeRole,
		}
		if len(contents) > 1 {
			input.JobDescription = contents[1]
		}
		return input, nil
	}

	logDetails := func(input types.AIAnalysisInput, cfg common.CommandConfig) {
		logger.Info("Starting AI resume analysis",
			"resume_chars", len(input.ResumeText),
			"job_role", input.JobRole,
			"has_job_description", input.JobDescription != "",
			"output_format", cfg.OutputFormat)
	}

	// Create a wrapper function that uses our specific AI service
	analyzeOperation := func(ctx context.Context, input types.AIAnalysisInput) (types.AIAnalysisOutput, *ai.TokenUsage, error) {
		return aiService.AnalyzeResume(ctx, input)
	}

	err = common.RunAICommand(
		cmd.Context(),
		logger,
		aiAnalyzeConfig,
		args,
		createInput,
		analyzeOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to analyze resume: %w", err)
	}
	logger.Info("AI resume analysis completed successfully")
	return nil
}
