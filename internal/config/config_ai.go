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
	// UseSystemPrompts: apply global default only if not explicitly set
	if opCfg.UseSystemPrompts == nil {
		opCfg.UseSystemPrompts = &c.AI.UseSystemPrompts
	}
}

// GetExtractConfig returns the AI configuration for work history extraction with fallback to global config
func (c *Config) GetExtractConfig() OperationAIConfig {
	config := c.AI.Extract

	// Apply common defaults
	c.applyOperationDefaults(&config)

	// Apply extract-specific prompt fallbacks
	if config.CustomPrompts.SystemPrompts.ExtractHistory == "" {
		config.CustomPrompts.SystemPrompts.ExtractHistory = c.AI.CustomPrompts.SystemPrompts.ExtractHistory
	}
	if config.CustomPrompts.UserPrompts.ExtractHistory == "" {
		config.CustomPrompts.UserPrompts.ExtractHistory = c.AI.CustomPrompts.UserPrompts.ExtractHistory
	}
	// Also copy file paths for potential later loading
	if config.CustomPrompts.SystemPrompts.ExtractHistoryFile == "" {
		config.CustomPrompts.SystemPrompts.ExtractHistoryFile = c.AI.CustomPrompts.SystemPrompts.ExtractHistoryFile
	}
	if config.CustomPrompts.UserPrompts.ExtractHistoryFile == "" {
		config.CustomPrompts.UserPrompts.ExtractHistoryFile = c.AI.CustomPrompts.UserPrompts.ExtractHistoryFile
	}

	return config
}

// GetLocationConfig returns the AI configuration for location extraction with fallback to global config
func (c *Config) GetLocationConfig() OperationAIConfig {
	config := c.AI.Location

	// Apply common defaults
	c.applyOperationDefaults(&config)

	// Apply location-specific prompt fallbacks
	if config.CustomPrompts.SystemPrompts.ExtractLocation == "" {
		config.CustomPrompts.SystemPrompts.ExtractLocation = c.AI.CustomPrompts.SystemPrompts.ExtractLocation
	}
	if config.CustomPrompts.UserPrompts.ExtractLocation == "" {
		config.CustomPrompts.UserPrompts.ExtractLocation = c.AI.CustomPrompts.UserPrompts.ExtractLocation
	}
	// Also copy file paths for potential later loading
	if config.CustomPrompts.SystemPrompts.ExtractLocationFile == "" {
		config.CustomPrompts.SystemPrompts.ExtractLocationFile = c.AI.CustomPrompts.SystemPrompts.ExtractLocationFile
	}
	if config.CustomPrompts.UserPrompts.ExtractLocationFile == "" {
		config.CustomPrompts.UserPrompts.ExtractLocationFile = c.AI.CustomPrompts.UserPrompts.ExtractLocationFile
	}

	return config
}

// GetKeywordsConfig returns the AI configuration for keyword generation with fallback to global config
func (c *Config) GetKeywordsConfig() OperationAIConfig {
	config := c.AI.Keywords

	// Apply common defaults
	c.applyOperationDefaults(&config)

	// Apply keywords-specific prompt fallbacks
	if config.CustomPrompts.SystemPrompts.GenerateKeywords == "" {
		config.CustomPrompts.SystemPrompts.GenerateKeywords = c.AI.CustomPrompts.SystemPrompts.GenerateKeywords
	}
	if config.CustomPrompts.UserPrompts.GenerateKeywords == "" {
		config.CustomPrompts.UserPrompts.GenerateKeywords = c.AI.CustomPrompts.UserPrompts.GenerateKeywords
	}
	// Also copy file paths for potential later loading
	if config.CustomPrompts.SystemPrompts.GenerateKeywordsFile == "" {
		config.CustomPrompts.SystemPrompts.GenerateKeywordsFile = c.AI.CustomPrompts.SystemPrompts.GenerateKeywordsFile
	}
	if config.CustomPrompts.UserPrompts.GenerateKeywordsFile == "" {
		config.CustomPrompts.UserPrompts.GenerateKeywordsFile = c.AI.CustomPrompts.UserPrompts.GenerateKeywordsFile
	}

	return config
}

// GetLoadedExtractPrompts returns a copy of the loaded prompts for the extract operation
func (c *Config) GetLoadedExtractPrompts() OperationLoadedPrompts {
	return loadedPrompts.Extract
}

// GetLoadedLocationPrompts returns a copy of the loaded prompts for the location operation
func (c *Config) GetLoadedLocationPrompts() OperationLoadedPrompts {
	return loadedPrompts.Location
}

// GetLoadedKeywordsPrompts returns a copy of the loaded prompts for the keywords operation
func (c *Config) GetLoadedKeywordsPrompts() OperationLoadedPrompts {
	return loadedPrompts.Keywords
}

// GetLoadedGlobalPrompts returns a copy of the loaded global prompts
func (c *Config) GetLoadedGlobalPrompts() LoadedPrompts {
	return loadedPrompts.Global
}
