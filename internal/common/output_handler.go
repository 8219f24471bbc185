package common

import (
	"fmt"
	"slices"
	"strings"

	"resumelens/internal/errors"
	"resumelens/internal/formatters"
)

// CommandConfig holds the output flags shared by the CLI commands.
type CommandConfig struct {
	OutputFile   string
	OutputFormat string
}

// Validate normalizes the configured output format and checks it
// against the allowed set. Formats are matched case-insensitively;
// the normalized form is written back so later registry lookups see
// the canonical spelling.
func (c *CommandConfig) Validate(allowed []string) error {
	c.OutputFormat = strings.ToLower(strings.TrimSpace(c.OutputFormat))
	formats := SupportedFormats(allowed)
	if slices.Contains(formats, c.OutputFormat) {
		return nil
	}
	return errors.NewValidationError(errors.ErrCodeInvalidFormat,
		fmt.Sprintf("unsupported output format '%s'. Supported formats: %v",
			c.OutputFormat, formats), nil)
}

// SupportedFormats returns the configured format allowlist, falling
// back to everything the formatter registry can render when the
// configuration lists none.
func SupportedFormats(configured []string) []string {
	if len(configured) > 0 {
		return configured
	}
	return formatters.GlobalRegistry.GetSupportedFormats()
}

// OutputHandler renders results through the formatter registry and
// delivers them to a file or stdout.
type OutputHandler struct {
	files    *FileProcessor
	registry *formatters.FormatterRegistry
	logger   *errors.Logger
}

func NewOutputHandler(logger *errors.Logger) *OutputHandler {
	return &OutputHandler{
		files:    NewFileProcessor(logger),
		registry: formatters.GlobalRegistry,
		logger:   logger,
	}
}

// HandleOutput renders data in the configured format and writes it to
// the configured destination. Stdout is the default when no output
// file is set.
func (oh *OutputHandler) HandleOutput(data any, cfg CommandConfig) error {
	if err := oh.files.ValidateOutputFile(cfg.OutputFile); err != nil {
		return err
	}

	rendered, err := oh.registry.Format(data, cfg.OutputFormat)
	if err != nil {
		return errors.NewValidationError(errors.ErrCodeInvalidFormat,
			fmt.Sprintf("Failed to format output as %s", cfg.OutputFormat), err)
	}

	if cfg.OutputFile == "" {
		fmt.Print(rendered)
		return nil
	}

	if err := oh.files.WriteFile(cfg.OutputFile, rendered); err != nil {
		return err
	}
	oh.logger.Info("Output written",
		"file", cfg.OutputFile, "format", cfg.OutputFormat)
	return nil
}

// GetSupportedFormats reports every format the registry can render.
func (oh *OutputHandler) GetSupportedFormats() []string {
	return oh.registry.GetSupportedFormats()
}
