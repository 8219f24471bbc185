package cli

import (
	"context"
	"fmt"

	"resumelens/internal/analyze"
	"resumelens/internal/common"
	"resumelens/internal/config"
	"resumelens/internal/extract"
	"resumelens/internal/roles"
	"resumelens/internal/types"

	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [resume-file]",
	Short: "Analyze a resume locally for ATS compatibility and role fit",
	Long: `Analyze a resume using the local heuristic pipeline. No AI provider
or network access is needed. Supported formats: PDF, DOCX, and plain text.

The analysis includes:
- Document classification (resume vs. cover letter, invoice, report)
- Section detection and coverage scoring
- Format and structure assessment
- Keyword matching against a role profile
- A composite ATS score with per-section suggestions

Target a role with --role (see 'resumelens roles' for the taxonomy) or
provide an explicit requirement list with --skills.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := getConfigFromContext(cmd.Context())
		if err != nil {
			return err
		}
		// Apply default format if not specified
		if analyzeConfig.OutputFormat == "" {
			analyzeConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return analyzeConfig.Validate(cfg.App.SupportedFormats)
	},
	RunE: runAnalyze,
}

var (
	analyzeConfig common.CommandConfig
	analyzeRole   string
	analyzeSkills []string
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	analyzeCmd.Flags().StringVar(&analyzeConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	analyzeCmd.Flags().StringVar(&analyzeRole, "role", "", "Target role from the taxonomy (e.g. 'Backend Engineer')")
	analyzeCmd.Flags().StringSliceVar(&analyzeSkills, "skills", nil, "Explicit required skills (overrides --role skills)")

	// Add completion for format flag
	_ = analyzeCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg, err := getConfigFromContext(cmd.Context())
		if err != nil {
			return []string{}, cobra.ShellCompDirectiveError
		}
		return common.SupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := getConfigFromContext(cmd.Context())
	if err != nil {
		return err
	}
	logger, err := getLoggerFromContext(cmd.Context())
	if err != nil {
		return err
	}

	role, err := resolveTargetRole(cfg, analyzeRole, analyzeSkills)
	if err != nil {
		return err
	}

	engine := analyze.NewEngine(logger)
	pipeline := func(ctx context.Context, data []byte, filename string) (*types.AnalysisResult, error) {
		format, err := extract.FormatFromFilename(filename)
		if err != nil {
			return nil, err
		}
		return engine.Document(ctx, data, format, role)
	}

	logger.Info("Starting resume analysis",
		"file", args[0],
		"role", analyzeRole,
		"output_format", analyzeConfig.OutputFormat)

	err = common.RunAnalysisCommand(
		cmd.Context(),
		logger,
		analyzeConfig,
		args[0],
		cfg.App.MaxFileSize,
		pipeline,
	)

	if err != nil {
		return fmt.Errorf("failed to analyze resume: %w", err)
	}
	logger.Info("Resume analysis completed successfully")
	return nil
}

// resolveTargetRole picks the profile to match against. Explicit skills
// win over a taxonomy lookup; neither means no keyword matching.
func resolveTargetRole(cfg *config.Config, roleName string, skills []string) (*types.RoleProfile, error) {
	if len(skills) > 0 {
		name := roleName
		if name == "" {
			name = "Custom"
		}
		return roles.Custom(name, skills)
	}
	if roleName != "" {
		store, err := buildRolesStore(cfg)
		if err != nil {
			return nil, err
		}
		return store.Find(roleName)
	}
	return nil, nil
}
