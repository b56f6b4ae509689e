package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Storage backend selectors.
const (
	BackendFile  = "file"
	BackendMongo = "mongo"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	Storage   StorageConfig
	MongoDB   MongoDBConfig
	AI        AIConfig
	Sheets    SheetsConfig
	Scheduler SchedulerConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port     string
	LogLevel string
}

// StorageConfig selects and parameterizes the snapshot backend.
type StorageConfig struct {
	Backend string // "file" or "mongo"
	DataDir string // file backend only
}

// MongoDBConfig holds settings for the MongoDB snapshot backend.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// AIConfig holds settings for the generative API. An empty key disables the
// assistant features.
type AIConfig struct {
	APIKey    string
	BaseURL   string
	ChatModel string
	TTSModel  string
	Voice     string // default text-to-speech voice id
}

// SheetsConfig contains configuration for the optional Google Sheets report
// export. Both fields empty disables the exporter.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
}

// SchedulerConfig holds cron expressions for background jobs.
type SchedulerConfig struct {
	AutosaveCron string
	ExportCron   string // empty disables the scheduled report export
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Missing .env files are acceptable when configuration comes from the
		// environment directly.
		_ = godotenv.Load()
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:     getenvWithDefault("APP_PORT", "8080"),
			LogLevel: getenvWithDefault("LOG_LEVEL", "info"),
		},
		Storage: StorageConfig{
			Backend: getenvWithDefault("STORAGE_BACKEND", BackendFile),
			DataDir: getenvWithDefault("STORAGE_DATA_DIR", "./data"),
		},
		MongoDB: MongoDBConfig{
			URI:    os.Getenv("MONGODB_URI"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "duckfarm"),
		},
		AI: AIConfig{
			APIKey:    os.Getenv("GENAI_API_KEY"),
			BaseURL:   os.Getenv("GENAI_BASE_URL"),
			ChatModel: getenvWithDefault("GENAI_CHAT_MODEL", "gemini-2.0-flash"),
			TTSModel:  getenvWithDefault("GENAI_TTS_MODEL", "gemini-2.5-flash-preview-tts"),
			Voice:     getenvWithDefault("GENAI_TTS_VOICE", "Kore"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_DATABASE_ID"),
		},
		Scheduler: SchedulerConfig{
			AutosaveCron: getenvWithDefault("AUTOSAVE_CRON_SCHEDULE", "*/5 * * * *"),
			ExportCron:   os.Getenv("REPORT_CRON_SCHEDULE"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
// AI and Sheets settings are optional; the features they enable degrade to
// disabled when absent.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch c.Storage.Backend {
	case BackendFile:
		if c.Storage.DataDir == "" {
			return errors.New("STORAGE_DATA_DIR must be provided for the file backend")
		}
	case BackendMongo:
		if c.MongoDB.URI == "" {
			return errors.New("MONGODB_URI must be provided for the mongo backend")
		}
		if c.MongoDB.DBName == "" {
			return errors.New("MONGODB_DB_NAME must be provided for the mongo backend")
		}
	default:
		return fmt.Errorf("unsupported STORAGE_BACKEND %q", c.Storage.Backend)
	}

	if c.Sheets.CredentialsPath != "" && c.Sheets.SpreadsheetID == "" {
		return errors.New("GOOGLE_SHEET_DATABASE_ID must be provided when sheets credentials are set")
	}

	if c.Scheduler.AutosaveCron == "" {
		return errors.New("AUTOSAVE_CRON_SCHEDULE must be provided")
	}

	return nil
}

// SheetsEnabled reports whether the report exporter is configured.
func (c *Config) SheetsEnabled() bool {
	return c.Sheets.CredentialsPath != "" && c.Sheets.SpreadsheetID != ""
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
