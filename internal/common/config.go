package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	LLM     LLMConfig
	Content ContentConfig
	Extract ExtractConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	HTTPAddr   string
	UploadsDir string
}

// LLMConfig holds completion-service configuration. An empty APIKey selects
// the offline/demo mode: uploads always receive the built-in sample record.
type LLMConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	VisionModel string
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration
}

// ContentConfig holds document-to-content adapter configuration
type ContentConfig struct {
	Pdftoppm    string
	Pdftotext   string
	Tesseract   string
	DPI         int
	MaxImageDim int
	OCRImages   bool
}

// ExtractConfig holds fallback-ladder behavior flags
type ExtractConfig struct {
	// MockFallback keeps the upload pipeline non-blocking: extraction
	// failures degrade to the built-in sample record instead of an error.
	// Disable to surface ladder exhaustion to the caller.
	MockFallback bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPAddr:   getEnv("HTTP_ADDR", ":8000"),
			UploadsDir: getEnv("UPLOADS_DIR", "./uploads"),
		},
		LLM: LLMConfig{
			APIKey:      getEnv("OPENAI_API_KEY", ""),
			BaseURL:     getEnv("OPENAI_BASE_URL", ""),
			Model:       getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			VisionModel: getEnv("OPENAI_VISION_MODEL", "gpt-4o"),
			Temperature: getEnvAsFloat32("OPENAI_TEMPERATURE", 0.1),
			MaxTokens:   getEnvAsInt("OPENAI_MAX_TOKENS", 2000),
			Timeout:     getEnvAsDuration("OPENAI_TIMEOUT", 45*time.Second),
		},
		Content: ContentConfig{
			Pdftoppm:    getEnv("PDFTOPPM_BIN", ""),
			Pdftotext:   getEnv("PDFTOTEXT_BIN", ""),
			Tesseract:   getEnv("TESSERACT_BIN", ""),
			DPI:         getEnvAsInt("PDF_DPI", 200),
			MaxImageDim: getEnvAsInt("MAX_IMAGE_DIM", 2200),
			OCRImages:   getEnvAsBool("OCR_IMAGES", false),
		},
		Extract: ExtractConfig{
			MockFallback: getEnvAsBool("MOCK_FALLBACK", true),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// ValidateConfig validates the loaded configuration. A missing API key is not
// an error; it selects the offline mode.
func (c *Config) Validate() error {
	if c.Server.HTTPAddr == "" {
		return NewAppError("CONFIG_ERROR", "HTTP_ADDR is required", ErrInvalidInput)
	}
	if c.Server.UploadsDir == "" {
		return NewAppError("CONFIG_ERROR", "UPLOADS_DIR is required", ErrInvalidInput)
	}
	if c.LLM.MaxTokens <= 0 {
		return NewAppError("CONFIG_ERROR", "OPENAI_MAX_TOKENS must be positive", ErrInvalidInput)
	}
	return nil
}
