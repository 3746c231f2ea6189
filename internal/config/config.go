package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
// Value Precedence Order:
// 1. Config File values
// 2. Environment Variables (JOBSCOUT_AI_APIKEY, etc.)
// 3. Default values - Lowest priority
type Config struct {
	AI            AIConfig            `mapstructure:"ai"`
	Parse         ParseConfig         `mapstructure:"parse"`
	Search        SearchConfig        `mapstructure:"search"`
	Browser       BrowserConfig       `mapstructure:"browser"`
	Apply         ApplyConfig         `mapstructure:"apply"`
	App           AppConfig           `mapstructure:"app"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

// AIConfig holds AI service configuration
type AIConfig struct {
	// Global/fallback configuration
	Provider         string        `mapstructure:"provider"`
	Model            string        `mapstructure:"model"`
	Timeout          time.Duration `mapstructure:"timeout"`
	APIKey           string        `mapstructure:"apiKey"`
	MaxRetries       int           `mapstructure:"maxRetries"`
	Temperature      float32       `mapstructure:"temperature"`
	UseSystemPrompts bool          `mapstructure:"useSystemPrompts"`
	CustomPrompts    PromptConfig  `mapstructure:"customPrompts"`

	// Operation-specific configurations
	Extract  OperationAIConfig `mapstructure:"extract"`
	Location OperationAIConfig `mapstructure:"location"`
	Keywords OperationAIConfig `mapstructure:"keywords"`
}

// CircuitBreakerConfig represents circuit breaker configuration
type CircuitBreakerConfig struct {
	Enabled          bool          `mapstructure:"enabled"`          // Whether circuit breaker is enabled
	MaxRequests      uint32        `mapstructure:"maxRequests"`      // Max requests allowed when half-open
	Interval         time.Duration `mapstructure:"interval"`         // Interval to clear counts
	Timeout          time.Duration `mapstructure:"timeout"`          // Timeout for half-open to open
	MinRequests      uint32        `mapstructure:"minRequests"`      // Minimum requests before tripping
	FailureThreshold float64       `mapstructure:"failureThreshold"` // Failure ratio threshold (0.0-1.0)
}

// OperationAIConfig holds AI configuration for specific operations
type OperationAIConfig struct {
	Provider         string               `mapstructure:"provider"`
	Model            string               `mapstructure:"model"`
	Timeout          *time.Duration       `mapstructure:"timeout"`
	APIKey           string               `mapstructure:"apiKey"`
	MaxRetries       *int                 `mapstructure:"maxRetries"`
	Temperature      *float32             `mapstructure:"temperature"`
	UseSystemPrompts *bool                `mapstructure:"useSystemPrompts"`
	CustomPrompts    PromptConfig         `mapstructure:"customPrompts"`
	CircuitBreaker   CircuitBreakerConfig `mapstructure:"circuitBreaker"`
}

// PromptConfig holds configuration for customizable prompts
type PromptConfig struct {
	SystemPrompts SystemPrompts `mapstructure:"systemPrompts"`
	UserPrompts   UserPrompts   `mapstructure:"userPrompts"`
}

// SystemPrompts contains system-level instructions
type SystemPrompts struct {
	ExtractHistory       string `mapstructure:"extractHistory"`
	ExtractHistoryFile   string `mapstructure:"extractHistoryFile"`
	ExtractLocation      string `mapstructure:"extractLocation"`
	ExtractLocationFile  string `mapstructure:"extractLocationFile"`
	GenerateKeywords     string `mapstructure:"generateKeywords"`
	GenerateKeywordsFile string `mapstructure:"generateKeywordsFile"`
}

// UserPrompts contains user-level prompt templates
type UserPrompts struct {
	ExtractHistory       string `mapstructure:"extractHistory"`
	ExtractHistoryFile   string `mapstructure:"extractHistoryFile"`
	ExtractLocation      string `mapstructure:"extractLocation"`
	ExtractLocationFile  string `mapstructure:"extractLocationFile"`
	GenerateKeywords     string `mapstructure:"generateKeywords"`
	GenerateKeywordsFile string `mapstructure:"generateKeywordsFile"`
}

// ParseConfig holds resume parsing configuration
type ParseConfig struct {
	ChunkMaxWords int    `mapstructure:"chunkMaxWords"` // Words per chunk sent to the extraction model
	KeywordCount  int    `mapstructure:"keywordCount"`  // Keyword combinations requested from the model
	Focus         string `mapstructure:"focus"`         // Default search focus for keyword generation
}

// SearchConfig holds job search configuration
type SearchConfig struct {
	BaseURL        string `mapstructure:"baseUrl"`
	WindowDays     int    `mapstructure:"windowDays"`     // Posting recency window in days
	QuickApplyOnly bool   `mapstructure:"quickApplyOnly"` // Restrict results to quick-apply listings
	MaxURLs        int    `mapstructure:"maxUrls"`        // Stop after processing this many search URLs
}

// BrowserConfig holds browser session configuration
type BrowserConfig struct {
	CDPURL              string        `mapstructure:"cdpUrl"`              // WebSocket URL of an already-running browser
	NavigationTimeout   time.Duration `mapstructure:"navigationTimeout"`   // Timeout for page navigations
	ElementTimeout      time.Duration `mapstructure:"elementTimeout"`      // Bounded wait for element presence
	Scroll              ScrollConfig  `mapstructure:"scroll"`              // Result list scrolling behavior
	Pacing              PacingConfig  `mapstructure:"pacing"`              // Randomized delays between page loads
	SelectorsFile       string        `mapstructure:"selectorsFile"`       // Optional CSS selector overrides file
	AutoReloadSelectors bool          `mapstructure:"autoReloadSelectors"` // Watch the selectors file for changes
	ReloadDebounce      time.Duration `mapstructure:"reloadDebounce"`      // Debounce delay for selector file change events
}

// ScrollConfig holds result list scrolling configuration
type ScrollConfig struct {
	MaxAttempts int           `mapstructure:"maxAttempts"` // Scroll attempts before giving up on new content
	SettleDelay time.Duration `mapstructure:"settleDelay"` // Wait after each scroll for content to load
}

// PacingConfig holds request pacing configuration
type PacingConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	MinDelay time.Duration `mapstructure:"minDelay"`
	MaxDelay time.Duration `mapstructure:"maxDelay"`
}

// ApplyConfig holds application form automation configuration
type ApplyConfig struct {
	MaxSteps      int           `mapstructure:"maxSteps"`      // Step bound before a form is declared stuck
	EntryWait     time.Duration `mapstructure:"entryWait"`     // Bounded wait for the quick-apply control
	DefaultAnswer string        `mapstructure:"defaultAnswer"` // Fallback answer for free-text questions
	SkipLabels    []string      `mapstructure:"skipLabels"`    // Label substrings whose fields are never filled
	Limit         int           `mapstructure:"limit"`         // Max applications per run (0 = no limit)
}

// AppConfig holds general application configuration
type AppConfig struct {
	LogLevel         string   `mapstructure:"logLevel"`
	DefaultFormat    string   `mapstructure:"defaultFormat"`
	SupportedFormats []string `mapstructure:"supportedFormats"`
	DataDir          string   `mapstructure:"dataDir"` // Directory for profile and listing persistence
	MaxFileSize      int64    `mapstructure:"maxFileSize"`
}

// ObservabilityConfig holds observability configuration
type ObservabilityConfig struct {
	Enabled         bool                `mapstructure:"enabled"`
	ServiceName     string              `mapstructure:"serviceName"`
	ServiceVersion  string              `mapstructure:"serviceVersion"`
	ServiceInstance string              `mapstructure:"serviceInstance"`
	ConsoleOutput   bool                `mapstructure:"consoleOutput"`
	SampleRate      float64             `mapstructure:"sampleRate"`
	Tracing         TracingConfig       `mapstructure:"tracing"`
	Metrics         MetricsConfig       `mapstructure:"metrics"`
	CustomMetrics   CustomMetricsConfig `mapstructure:"customMetrics"`
	Console         ConsoleConfig       `mapstructure:"console"`
	Prometheus      PrometheusConfig    `mapstructure:"prometheus"`
	OTLP            OTLPConfig          `mapstructure:"otlp"`
}

// TracingConfig holds tracing configuration
type TracingConfig struct {
	Enabled    bool    `mapstructure:"enabled"`
	SampleRate float64 `mapstructure:"sampleRate"`
}

// MetricsConfig holds metrics configuration
type MetricsConfig struct {
	Enabled            bool          `mapstructure:"enabled"`
	CollectionInterval time.Duration `mapstructure:"collectionInterval"`
}

// ConsoleConfig holds console output configuration
type ConsoleConfig struct {
	Enabled     bool `mapstructure:"enabled"`
	PrettyPrint bool `mapstructure:"prettyPrint"`
}

// CustomMetricsConfig holds fine-grained custom metrics configuration
type CustomMetricsConfig struct {
	AIOperations    AIOperationsMetricsConfig   `mapstructure:"aiOperations"`
	BusinessMetrics BusinessMetricsConfig       `mapstructure:"businessMetrics"`
	Infrastructure  InfrastructureMetricsConfig `mapstructure:"infrastructure"`
}

// AIOperationsMetricsConfig holds AI operation metrics configuration
type AIOperationsMetricsConfig struct {
	Enabled         bool `mapstructure:"enabled"`
	TrackDuration   bool `mapstructure:"trackDuration"`
	TrackTokenUsage bool `mapstructure:"trackTokenUsage"`
	TrackModelInfo  bool `mapstructure:"trackModelInfo"`
}

// BusinessMetricsConfig holds business metrics configuration
type BusinessMetricsConfig struct {
	Enabled           bool `mapstructure:"enabled"`
	TrackSuccessRates bool `mapstructure:"trackSuccessRates"`
	TrackContentSizes bool `mapstructure:"trackContentSizes"`
}

// InfrastructureMetricsConfig holds infrastructure metrics configuration
type InfrastructureMetricsConfig struct {
	Enabled            bool `mapstructure:"enabled"`
	TrackPacingDelays  bool `mapstructure:"trackPacingDelays"`
	TrackSelectorLoads bool `mapstructure:"trackSelectorLoads"`
}

// PrometheusConfig holds Prometheus configuration
type PrometheusConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"`
	Port     string `mapstructure:"port"`
}

// OTLPConfig holds OTLP exporter configuration
type OTLPConfig struct {
	Enabled  bool              `mapstructure:"enabled"`
	Endpoint string            `mapstructure:"endpoint"`
	Insecure bool              `mapstructure:"insecure"`
	Headers  map[string]string `mapstructure:"headers"`
}

// LoadConfig loads configuration from environment variables and a config file
func LoadConfig() (*Config, error) {
	log.Println("[CONFIG] Starting configuration loading process")

	v := viper.New()

	// Set default values
	setDefaults(v)
	log.Println("[CONFIG] Applied default configuration values")

	// Set up environment variable handling
	v.SetEnvPrefix("JOBSCOUT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	log.Println("[CONFIG] Configured environment variable handling with prefix 'JOBSCOUT'")

	// Set up config file handling
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/jobscout/")
	v.AddConfigPath("$HOME/.jobscout")
	v.AddConfigPath(".")
	log.Println("[CONFIG] Configured config file search paths: /etc/jobscout/, $HOME/.jobscout, .")

	// Read the config file
	configFileUsed := ""
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		log.Println("[CONFIG] No config file found, using defaults and environment variables")
	} else {
		configFileUsed = v.ConfigFileUsed()
		log.Printf("[CONFIG] Successfully loaded config file: %s", configFileUsed)
	}

	// Unmarshal the configuration into the Config struct
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	log.Println("[CONFIG] Successfully unmarshaled configuration")

	// Apply fallback logic
	config.applyFallbacks()
	log.Println("[CONFIG] Applied configuration fallbacks and environment variable overrides")

	// Log configuration sources summary
	config.logConfigurationSources(configFileUsed)

	// Validate prompt files before attempting to load them
	if err := config.validatePromptFiles(); err != nil {
		return nil, fmt.Errorf("prompt file validation failed: %w", err)
	}

	// Load custom prompts from external files
	if err := config.loadPromptsFromFiles(); err != nil {
		return nil, fmt.Errorf("failed to load custom prompts from files: %w", err)
	}

	// Validate the configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	log.Println("[CONFIG] Configuration loading completed successfully")
	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.AI.Timeout <= 0 {
		return fmt.Errorf("AI timeout must be positive")
	}

	if c.Parse.ChunkMaxWords < 1 {
		return fmt.Errorf("parse chunkMaxWords must be at least 1")
	}

	if c.Parse.KeywordCount < 1 {
		return fmt.Errorf("parse keywordCount must be at least 1")
	}

	if c.Search.WindowDays < 1 {
		return fmt.Errorf("search windowDays must be at least 1")
	}

	if c.Apply.MaxSteps < 1 {
		return fmt.Errorf("apply maxSteps must be at least 1")
	}

	if c.Browser.CDPURL == "" {
		return fmt.Errorf("browser cdpUrl is required")
	}

	if c.Browser.Pacing.Enabled && c.Browser.Pacing.MaxDelay < c.Browser.Pacing.MinDelay {
		return fmt.Errorf("browser pacing maxDelay must not be less than minDelay")
	}

	validFormats := make(map[string]bool)
	for _, format := range c.App.SupportedFormats {
		validFormats[format] = true
	}
	if !validFormats[c.App.DefaultFormat] {
		return fmt.Errorf("invalid default format: %s", c.App.DefaultFormat)
	}

	return nil
}

// Global configuration instance
var GlobalConfig *Config

// InitConfig initializes the global configuration
func InitConfig() error {
	config, err := LoadConfig()
	if err != nil {
		return err
	}
	GlobalConfig = config
	return nil
}
