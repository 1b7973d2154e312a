package config

import "os"

// GeminiModels defines which Gemini models to use for different tasks
type GeminiModels struct {
	// Analysis is for per-answer analysis (needs to be fast)
	Analysis string `json:"analysis"`

	// Question is for adaptive question generation (needs to be fast)
	Question string `json:"question"`

	// Summary is for post-interview report summarization (quality over speed)
	Summary string `json:"summary"`
}

// AIConfig holds all AI-related configuration
type AIConfig struct {
	APIKey    string       `json:"-"` // Never serialize
	BaseURL   string       `json:"baseUrl"`
	Models    GeminiModels `json:"models"`
	TimeoutMS int          `json:"timeoutMs"`
}

// DefaultAIConfig returns the default AI configuration
func DefaultAIConfig() *AIConfig {
	return &AIConfig{
		APIKey:  os.Getenv("GEMINI_API_KEY"),
		BaseURL: "https://generativelanguage.googleapis.com/v1beta/models",
		Models: GeminiModels{
			// Fast models for in-interview turns
			Analysis: getEnvOrDefault("GEMINI_MODEL_ANALYSIS", "gemini-2.5-flash-preview-05-20"),
			Question: getEnvOrDefault("GEMINI_MODEL_QUESTION", "gemini-2.5-flash-preview-05-20"),

			// Quality model for the final report
			Summary: getEnvOrDefault("GEMINI_MODEL_SUMMARY", "gemini-2.0-flash"),
		},
		TimeoutMS: 10000, // 10 second default timeout
	}
}

// IsEnabled returns true if the AI API is configured
func (c *AIConfig) IsEnabled() bool {
	return c.APIKey != ""
}

// ModelEndpoint returns the full endpoint for a given model
func (c *AIConfig) ModelEndpoint(model string) string {
	return c.BaseURL + "/" + model + ":generateContent"
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
