package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	LLM      LLMConfig
	Match    MatchConfig
	Storage  StorageConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// LLMConfig selects the provider used by each pipeline stage and carries the
// credentials of every provider.
type LLMConfig struct {
	ParserProvider string
	ScorerProvider string
	Timeout        time.Duration
	Gemini         GeminiConfig
	Mistral        MistralConfig
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type MistralConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type MatchConfig struct {
	Threshold int
}

type StorageConfig struct {
	MaxFileSize int64
}

type LogConfig struct {
	JSON  bool
	Debug bool
}

const (
	ProviderGemini  = "gemini"
	ProviderMistral = "mistral"
)

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8000"),
			Env:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "ai_recruiter"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		LLM: LLMConfig{
			ParserProvider: strings.ToLower(getEnv("PARSER_PROVIDER", ProviderGemini)),
			ScorerProvider: strings.ToLower(getEnv("SCORER_PROVIDER", ProviderMistral)),
			Timeout:        getEnvAsDuration("LLM_TIMEOUT", "30s"),
			Gemini: GeminiConfig{
				APIKey: getEnv("GEMINI_API_KEY", ""),
				Model:  getEnv("GEMINI_MODEL", "gemini-2.5-pro"),
			},
			Mistral: MistralConfig{
				APIKey:  getEnv("MISTRAL_API_KEY", ""),
				Model:   getEnv("MISTRAL_MODEL", "mistral-large-latest"),
				BaseURL: getEnv("MISTRAL_BASE_URL", "https://api.mistral.ai/v1"),
			},
		},
		Match: MatchConfig{
			Threshold: getEnvAsInt("MATCH_THRESHOLD", 60),
		},
		Storage: StorageConfig{
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
		Log: LogConfig{
			JSON:  getEnvAsBool("LOG_JSON", false),
			Debug: getEnvAsBool("LOG_DEBUG", false),
		},
	}
}

// Validate checks the settings that cannot be defaulted. Missing provider
// credentials are reported when the providers are built.
func (c *Config) Validate() error {
	for stage, provider := range map[string]string{
		"PARSER_PROVIDER": c.LLM.ParserProvider,
		"SCORER_PROVIDER": c.LLM.ScorerProvider,
	} {
		if provider != ProviderGemini && provider != ProviderMistral {
			return fmt.Errorf("%s: unknown provider %q", stage, provider)
		}
	}

	if c.Match.Threshold < 1 || c.Match.Threshold > 100 {
		return fmt.Errorf("MATCH_THRESHOLD must be between 1 and 100, got %d", c.Match.Threshold)
	}

	if c.LLM.Timeout <= 0 {
		return fmt.Errorf("LLM_TIMEOUT must be positive")
	}

	return nil
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
