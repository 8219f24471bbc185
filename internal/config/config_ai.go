package config

// applyOperationDefaults applies global defaults to operation-specific configuration
func (c *Config) applyOperationDefaults(opCfg *OperationAIConfig) {
	if opCfg.Provider == "" {
		opCfg.Provider = c.AI.Provider
	}
	if opCfg.Model == "" {
		opCfg.Model = c.AI.Model
	}
	if opCfg.Timeout == nil {
		opCfg.Timeout = &c.AI.Timeout
	}
	if opCfg.APIKey == "" {
		opCfg.APIKey = c.AI.APIKey
	}
	if opCfg.MaxRetries == nil {
		opCfg.MaxRetries = &c.AI.MaxRetries
	}
	if opCfg.Temperature == nil {
		opCfg.Temperature = &c.AI.Temperature
	}
	if opCfg.UseSystemPrompts == nil {
		opCfg.UseSystemPrompts = &c.AI.UseSystemPrompts
	}
}

// GetAnalyzeConfig returns the AI configuration for resume analysis with
// fallback to the global config.
func (c *Config) GetAnalyzeConfig() OperationAIConfig {
	config := c.AI.Analyze
	c.applyOperationDefaults(&config)

	if config.CustomPrompts.SystemPrompts.AnalyzeResume == "" {
		config.CustomPrompts.SystemPrompts.AnalyzeResume = c.AI.CustomPrompts.SystemPrompts.AnalyzeResume
	}
	if config.CustomPrompts.UserPrompts.AnalyzeResume == "" {
		config.CustomPrompts.UserPrompts.AnalyzeResume = c.AI.CustomPrompts.UserPrompts.AnalyzeResume
	}
	if config.CustomPrompts.SystemPrompts.AnalyzeResumeFile == "" {
		config.CustomPrompts.SystemPrompts.AnalyzeResumeFile = c.AI.CustomPrompts.SystemPrompts.AnalyzeResumeFile
	}
	if config.CustomPrompts.UserPrompts.AnalyzeResumeFile == "" {
		config.CustomPrompts.UserPrompts.AnalyzeResumeFile = c.AI.CustomPrompts.UserPrompts.AnalyzeResumeFile
	}

	return config
}

// GetJobMatchConfig returns the AI configuration for job matching with
// fallback to the global config.
func (c *Config) GetJobMatchConfig() OperationAIConfig {
	config := c.AI.JobMatch
	c.applyOperationDefaults(&config)

	if config.CustomPrompts.SystemPrompts.MatchJob == "" {
		config.CustomPrompts.SystemPrompts.MatchJob = c.AI.CustomPrompts.SystemPrompts.MatchJob
	}
	if config.CustomPrompts.UserPrompts.MatchJob == "" {
		config.CustomPrompts.UserPrompts.MatchJob = c.AI.CustomPrompts.UserPrompts.MatchJob
	}
	if config.CustomPrompts.SystemPrompts.MatchJobFile == "" {
		config.CustomPrompts.SystemPrompts.MatchJobFile = c.AI.CustomPrompts.SystemPrompts.MatchJobFile
	}
	if config.CustomPrompts.UserPrompts.MatchJobFile == "" {
		config.CustomPrompts.UserPrompts.MatchJobFile = c.AI.CustomPrompts.UserPrompts.MatchJobFile
	}

	return config
}
