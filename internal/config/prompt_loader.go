package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// GetLoadedPrompts returns the loaded prompt content in a thread-safe way
func GetLoadedPrompts() *AllLoadedPrompts {
	return &loadedPrompts
}

// loadPromptsFromFiles loads custom prompts from external files if file paths are specified
func (c *Config) loadPromptsFromFiles() error {
	log.Println("[CONFIG] Starting custom prompt loading from files")

	// Initialize loaded prompts exactly once
	loadedPromptsOnce.Do(func() {
		loadedPrompts = AllLoadedPrompts{}
	})

	// Load global prompts
	if err := c.loadSystemPromptsFromFiles(&c.AI.CustomPrompts.SystemPrompts, &loadedPrompts.Global.SystemPrompts); err != nil {
		return fmt.Errorf("failed to load global system prompts: %w", err)
	}
	if err := c.loadUserPromptsFromFiles(&c.AI.CustomPrompts.UserPrompts, &loadedPrompts.Global.UserPrompts); err != nil {
		return fmt.Errorf("failed to load global user prompts: %w", err)
	}

	// Load operation-specific prompts
	if err := c.loadSystemPromptsFromFiles(&c.AI.Extract.CustomPrompts.SystemPrompts, &loadedPrompts.Extract.SystemPrompts); err != nil {
		return fmt.Errorf("failed to load extract system prompts: %w", err)
	}
	if err := c.loadUserPromptsFromFiles(&c.AI.Extract.CustomPrompts.UserPrompts, &loadedPrompts.Extract.UserPrompts); err != nil {
		return fmt.Errorf("failed to load extract user prompts: %w", err)
	}

	if err := c.loadSystemPromptsFromFiles(&c.AI.Location.CustomPrompts.SystemPrompts, &loadedPrompts.Location.SystemPrompts); err != nil {
		return fmt.Errorf("failed to load location system prompts: %w", err)
	}
	if err := c.loadUserPromptsFromFiles(&c.AI.Location.CustomPrompts.UserPrompts, &loadedPrompts.Location.UserPrompts); err != nil {
		return fmt.Errorf("failed to load location user prompts: %w", err)
	}

	if err := c.loadSystemPromptsFromFiles(&c.AI.Keywords.CustomPrompts.SystemPrompts, &loadedPrompts.Keywords.SystemPrompts); err != nil {
		return fmt.Errorf("failed to load keywords system prompts: %w", err)
	}
	if err := c.loadUserPromptsFromFiles(&c.AI.Keywords.CustomPrompts.UserPrompts, &loadedPrompts.Keywords.UserPrompts); err != nil {
		return fmt.Errorf("failed to load keywords user prompts: %w", err)
	}

	// Log summary of prompt sources after loading
	c.logPromptLoadingSummary()

	return nil
}

// loadSystemPromptsFromFiles loads system prompts from files if file paths are specified
func (c *Config) loadSystemPromptsFromFiles(prompts *SystemPrompts, target *LoadedSystemPrompts) error {
	if prompts.ExtractHistoryFile != "" {
		content, err := c.loadPromptFromFile(prompts.ExtractHistoryFile, "system", "extractHistory")
		if err != nil {
			return err
		}
		target.ExtractHistory = content
	}

	if prompts.ExtractLocationFile != "" {
		content, err := c.loadPromptFromFile(prompts.ExtractLocationFile, "system", "extractLocation")
		if err != nil {
			return err
		}
		target.ExtractLocation = content
	}

	if prompts.GenerateKeywordsFile != "" {
		content, err := c.loadPromptFromFile(prompts.GenerateKeywordsFile, "system", "generateKeywords")
		if err != nil {
			return err
		}
		target.GenerateKeywords = content
	}

	return nil
}

// loadUserPromptsFromFiles loads user prompts from files if file paths are specified
func (c *Config) loadUserPromptsFromFiles(prompts *UserPrompts, target *LoadedUserPrompts) error {
	if prompts.ExtractHistoryFile != "" {
		content, err := c.loadPromptFromFile(prompts.ExtractHistoryFile, "user", "extractHistory")
		if err != nil {
			return err
		}
		target.ExtractHistory = content
	}

	if prompts.ExtractLocationFile != "" {
		content, err := c.loadPromptFromFile(prompts.ExtractLocationFile, "user", "extractLocation")
		if err != nil {
			return err
		}
		target.ExtractLocation = content
	}

	if prompts.GenerateKeywordsFile != "" {
		content, err := c.loadPromptFromFile(prompts.GenerateKeywordsFile, "user", "generateKeywords")
		if err != nil {
			return err
		}
		target.GenerateKeywords = content
	}

	return nil
}

// loadPromptFromFile loads a prompt from a file with proper error handling and logging
func (c *Config) loadPromptFromFile(filePath, promptType, operation string) (string, error) {
	// Resolve relative paths
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path for %s %s prompt file '%s': %w", promptType, operation, filePath, err)
	}

	// Check if file exists
	if _, err := os.Stat(absPath); os.IsNotExist(err) {
		return "", fmt.Errorf("%s %s prompt file not found: %s", promptType, operation, absPath)
	}

	// Read file content
	content, err := os.ReadFile(absPath)
	if err != nil {
		return "", fmt.Errorf("failed to read %s %s prompt file '%s': %w", promptType, operation, absPath, err)
	}

	// Validate content is not empty
	trimmedContent := strings.TrimSpace(string(content))
	if trimmedContent == "" {
		return "", fmt.Errorf("%s %s prompt file '%s' is empty", promptType, operation, absPath)
	}

	// Log successful loading
	log.Printf("[CONFIG] Successfully loaded %s %s prompt from file: %s (%d characters)",
		promptType, operation, absPath, len(trimmedContent))

	return trimmedContent, nil
}

// validatePromptFiles validates that prompt files exist and are readable before loading
func (c *Config) validatePromptFiles() error {
	var validationErrors []string

	// Helper function to validate a file path
	validateFile := func(filePath, promptType, operation string) {
		if filePath == "" {
			return // No file specified, skip validation
		}

		absPath, err := filepath.Abs(filePath)
		if err != nil {
			validationErrors = append(validationErrors, fmt.Sprintf("invalid path for %s %s prompt: %s", promptType, operation, filePath))
			return
		}

		if _, err := os.Stat(absPath); os.IsNotExist(err) {
			validationErrors = append(validationErrors, fmt.Sprintf("%s %s prompt file not found: %s", promptType, operation, absPath))
		}
	}

	// Validate global prompt files
	validateFile(c.AI.CustomPrompts.SystemPrompts.ExtractHistoryFile, "system", "extractHistory")
	validateFile(c.AI.CustomPrompts.SystemPrompts.ExtractLocationFile, "system", "extractLocation")
	validateFile(c.AI.CustomPrompts.SystemPrompts.GenerateKeywordsFile, "system", "generateKeywords")
	validateFile(c.AI.CustomPrompts.UserPrompts.ExtractHistoryFile, "user", "extractHistory")
	validateFile(c.AI.CustomPrompts.UserPrompts.ExtractLocationFile, "user", "extractLocation")
	validateFile(c.AI.CustomPrompts.UserPrompts.GenerateKeywordsFile, "user", "generateKeywords")

	// Validate operation-specific prompt files
	validateFile(c.AI.Extract.CustomPrompts.SystemPrompts.ExtractHistoryFile, "extract system", "extractHistory")
	validateFile(c.AI.Extract.CustomPrompts.UserPrompts.ExtractHistoryFile, "extract user", "extractHistory")
	validateFile(c.AI.Location.CustomPrompts.SystemPrompts.ExtractLocationFile, "location system", "extractLocation")
	validateFile(c.AI.Location.CustomPrompts.UserPrompts.ExtractLocationFile, "location user", "extractLocation")
	validateFile(c.AI.Keywords.CustomPrompts.SystemPrompts.GenerateKeywordsFile, "keywords system", "generateKeywords")
	validateFile(c.AI.Keywords.CustomPrompts.UserPrompts.GenerateKeywordsFile, "keywords user", "generateKeywords")

	if len(validationErrors) > 0 {
		return fmt.Errorf("prompt file validation failed:\n%s", strings.Join(validationErrors, "\n"))
	}

	return nil
}

// logPromptLoadingSummary logs a summary of loaded prompts
func (c *Config) logPromptLoadingSummary() {
	log.Println("[CONFIG] === Custom Prompt Loading Summary ===")

	promptCount := 0

	promptChecks := []struct {
		content string
		message string
	}{
		{loadedPrompts.Global.SystemPrompts.ExtractHistory, "[CONFIG] Global system extract prompt: loaded from config/file"},
		{loadedPrompts.Global.SystemPrompts.ExtractLocation, "[CONFIG] Global system location prompt: loaded from config/file"},
		{loadedPrompts.Global.SystemPrompts.GenerateKeywords, "[CONFIG] Global system keywords prompt: loaded from config/file"},
		{loadedPrompts.Global.UserPrompts.ExtractHistory, "[CONFIG] Global user extract prompt: loaded from config/file"},
		{loadedPrompts.Global.UserPrompts.ExtractLocation, "[CONFIG] Global user location prompt: loaded from config/file"},
		{loadedPrompts.Global.UserPrompts.GenerateKeywords, "[CONFIG] Global user keywords prompt: loaded from config/file"},
		{loadedPrompts.Extract.SystemPrompts.ExtractHistory, "[CONFIG] Extract-specific system prompt: loaded from config/file"},
		{loadedPrompts.Extract.UserPrompts.ExtractHistory, "[CONFIG] Extract-specific user prompt: loaded from config/file"},
		{loadedPrompts.Location.SystemPrompts.ExtractLocation, "[CONFIG] Location-specific system prompt: loaded from config/file"},
		{loadedPrompts.Location.UserPrompts.ExtractLocation, "[CONFIG] Location-specific user prompt: loaded from config/file"},
		{loadedPrompts.Keywords.SystemPrompts.GenerateKeywords, "[CONFIG] Keywords-specific system prompt: loaded from config/file"},
		{loadedPrompts.Keywords.UserPrompts.GenerateKeywords, "[CONFIG] Keywords-specific user prompt: loaded from config/file"},
	}

	for _, check := range promptChecks {
		if check.content != "" {
			log.Println(check.message)
			promptCount++
		}
	}

	if promptCount == 0 {
		log.Println("[CONFIG] No custom prompts loaded - using built-in defaults")
	} else {
		log.Printf("[CONFIG] Total custom prompts loaded: %d", promptCount)
	}

	log.Println("[CONFIG] ==========================================")
}
