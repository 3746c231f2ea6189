package config

import (
	"time"

	"github.com/spf13/viper"
)

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	// AI Configuration - Global defaults
	v.SetDefault("ai.provider", "gemini")
	v.SetDefault("ai.model", "gemini-2.0-flash")
	v.SetDefault("ai.timeout", 60*time.Second)
	v.SetDefault("ai.apiKey", "")
	v.SetDefault("ai.maxRetries", 3)
	v.SetDefault("ai.temperature", 0.7)
	v.SetDefault("ai.useSystemPrompts", true)

	// AI Configuration - Extract operation defaults
	v.SetDefault("ai.extract.provider", "gemini")
	v.SetDefault("ai.extract.model", "")
	v.SetDefault("ai.extract.timeout", 90*time.Second) // Longer timeout for long chunks
	v.SetDefault("ai.extract.apiKey", "")
	v.SetDefault("ai.extract.maxRetries", 2)
	v.SetDefault("ai.extract.temperature", 0.1) // Very low temperature for faithful transcription
	v.SetDefault("ai.extract.useSystemPrompts", true)

	// AI Configuration - Location operation defaults
	v.SetDefault("ai.location.provider", "gemini")
	v.SetDefault("ai.location.model", "gemini-2.0-flash-lite") // Small model for a one-field read
	v.SetDefault("ai.location.timeout", 30*time.Second)
	v.SetDefault("ai.location.apiKey", "")
	v.SetDefault("ai.location.maxRetries", 2)
	v.SetDefault("ai.location.temperature", 0.1)
	v.SetDefault("ai.location.useSystemPrompts", true)

	// AI Configuration - Keywords operation defaults
	v.SetDefault("ai.keywords.provider", "gemini")
	v.SetDefault("ai.keywords.model", "")
	v.SetDefault("ai.keywords.timeout", 60*time.Second)
	v.SetDefault("ai.keywords.apiKey", "")
	v.SetDefault("ai.keywords.maxRetries", 3)
	v.SetDefault("ai.keywords.temperature", 0.7) // Higher temperature for varied combinations
	v.SetDefault("ai.keywords.useSystemPrompts", true)

	// Circuit Breaker Configuration defaults for all operations
	v.SetDefault("ai.extract.circuitBreaker.enabled", true)
	v.SetDefault("ai.extract.circuitBreaker.maxRequests", 3)
	v.SetDefault("ai.extract.circuitBreaker.interval", 60*time.Second)
	v.SetDefault("ai.extract.circuitBreaker.timeout", 60*time.Second)
	v.SetDefault("ai.extract.circuitBreaker.minRequests", 3)
	v.SetDefault("ai.extract.circuitBreaker.failureThreshold", 0.6)

	v.SetDefault("ai.location.circuitBreaker.enabled", true)
	v.SetDefault("ai.location.circuitBreaker.maxRequests", 3)
	v.SetDefault("ai.location.circuitBreaker.interval", 60*time.Second)
	v.SetDefault("ai.location.circuitBreaker.timeout", 60*time.Second)
	v.SetDefault("ai.location.circuitBreaker.minRequests", 3)
	v.SetDefault("ai.location.circuitBreaker.failureThreshold", 0.6)

	v.SetDefault("ai.keywords.circuitBreaker.enabled", true)
	v.SetDefault("ai.keywords.circuitBreaker.maxRequests", 3)
	v.SetDefault("ai.keywords.circuitBreaker.interval", 60*time.Second)
	v.SetDefault("ai.keywords.circuitBreaker.timeout", 60*time.Second)
	v.SetDefault("ai.keywords.circuitBreaker.minRequests", 3)
	v.SetDefault("ai.keywords.circuitBreaker.failureThreshold", 0.6)

	// Parse Configuration
	v.SetDefault("parse.chunkMaxWords", 300)
	v.SetDefault("parse.keywordCount", 20)
	v.SetDefault("parse.focus", "roles matching the candidate's most recent experience")

	// Search Configuration
	v.SetDefault("search.baseUrl", "https://www.linkedin.com/jobs/search/")
	v.SetDefault("search.windowDays", 7)
	v.SetDefault("search.quickApplyOnly", true)
	v.SetDefault("search.maxUrls", 15)

	// Browser Configuration
	v.SetDefault("browser.cdpUrl", "ws://localhost:9222")
	v.SetDefault("browser.navigationTimeout", 30*time.Second)
	v.SetDefault("browser.elementTimeout", 10*time.Second)
	v.SetDefault("browser.scroll.maxAttempts", 10)
	v.SetDefault("browser.scroll.settleDelay", 2*time.Second)
	v.SetDefault("browser.pacing.enabled", true)
	v.SetDefault("browser.pacing.minDelay", 2*time.Second)
	v.SetDefault("browser.pacing.maxDelay", 7*time.Second)
	v.SetDefault("browser.selectorsFile", "")
	v.SetDefault("browser.autoReloadSelectors", false)
	v.SetDefault("browser.reloadDebounce", time.Second)

	// Apply Configuration
	v.SetDefault("apply.maxSteps", 25)
	v.SetDefault("apply.entryWait", 10*time.Second)
	v.SetDefault("apply.defaultAnswer", "Yes")
	v.SetDefault("apply.skipLabels", []string{"email", "phone", "mobile", "resume"})
	v.SetDefault("apply.limit", 0)

	// App Configuration
	v.SetDefault("app.logLevel", "info")
	v.SetDefault("app.defaultFormat", "json")
	v.SetDefault("app.supportedFormats", []string{"json", "text", "markdown"})
	v.SetDefault("app.dataDir", "data")
	v.SetDefault("app.maxFileSize", 10*1024*1024) // 10MB, resumes are small but PDFs vary

	// Observability Configuration
	v.SetDefault("observability.enabled", true)
	v.SetDefault("observability.serviceName", "jobscout")
	v.SetDefault("observability.serviceVersion", "")  // Will use app version if empty
	v.SetDefault("observability.serviceInstance", "") // Will be auto-generated if empty
	v.SetDefault("observability.consoleOutput", false)
	v.SetDefault("observability.sampleRate", 1.0)

	// Tracing Configuration
	v.SetDefault("observability.tracing.enabled", true)
	v.SetDefault("observability.tracing.sampleRate", 1.0)

	// Metrics Configuration
	v.SetDefault("observability.metrics.enabled", true)
	v.SetDefault("observability.metrics.collectionInterval", 15*time.Second)

	// Custom Metrics Configuration
	v.SetDefault("observability.customMetrics.aiOperations.enabled", true)
	v.SetDefault("observability.customMetrics.aiOperations.trackDuration", true)
	v.SetDefault("observability.customMetrics.aiOperations.trackTokenUsage", true)
	v.SetDefault("observability.customMetrics.aiOperations.trackModelInfo", true)
	v.SetDefault("observability.customMetrics.businessMetrics.enabled", true)
	v.SetDefault("observability.customMetrics.businessMetrics.trackSuccessRates", true)
	v.SetDefault("observability.customMetrics.businessMetrics.trackContentSizes", true)
	v.SetDefault("observability.customMetrics.infrastructure.enabled", true)
	v.SetDefault("observability.customMetrics.infrastructure.trackPacingDelays", true)
	v.SetDefault("observability.customMetrics.infrastructure.trackSelectorLoads", true)

	// Console Configuration
	v.SetDefault("observability.console.enabled", false)
	v.SetDefault("observability.console.prettyPrint", true)

	// Prometheus Configuration
	v.SetDefault("observability.prometheus.enabled", true)
	v.SetDefault("observability.prometheus.endpoint", "/metrics")
	v.SetDefault("observability.prometheus.port", "9090")

	// OTLP Configuration
	v.SetDefault("observability.otlp.enabled", false)
	v.SetDefault("observability.otlp.endpoint", "http://localhost:4318")
	v.SetDefault("observability.otlp.insecure", true)
	v.SetDefault("observability.otlp.headers", map[string]string{})
}
