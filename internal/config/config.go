package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	DB       DBConfig
	LLM      LLMConfig
	RAG      RAGConfig
	Analysis AnalysisConfig
	Ingest   IngestConfig
	S3       S3Config
	Email    EmailConfig
	CORS     CORSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// LLMConfig holds model provider settings for extraction and embeddings.
// An empty APIKey is valid: ingestion runs without it, analysis fails fast
// with a credential error.
type LLMConfig struct {
	APIKey          string `mapstructure:"api_key"`
	Model           string `mapstructure:"model"`
	EmbeddingModel  string `mapstructure:"embedding_model"`
	TimeoutSecs     int    `mapstructure:"timeout_secs"`
	MaxOutputTokens int    `mapstructure:"max_output_tokens"`
}

// RAGConfig holds chunking and retrieval settings.
type RAGConfig struct {
	ChunkWords   int `mapstructure:"chunk_words"`
	OverlapWords int `mapstructure:"overlap_words"`
	TopK         int `mapstructure:"top_k"`
}

// AnalysisConfig holds orchestrator settings. MaxConcurrentCalls bounds the
// call slots against the shared model provider.
type AnalysisConfig struct {
	MaxConcurrentCalls int `mapstructure:"max_concurrent_calls"`
}

// IngestConfig holds ingestion bounds.
type IngestConfig struct {
	MaxContentLength int   `mapstructure:"max_content_length"`
	MaxFileSizeMB    int64 `mapstructure:"max_file_size_mb"`
}

// S3Config holds AWS S3 settings for raw upload archival.
type S3Config struct {
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// EmailConfig holds risk alert delivery settings.
type EmailConfig struct {
	Provider    string   `mapstructure:"provider"`
	Region      string   `mapstructure:"region"`
	FromAddress string   `mapstructure:"from_address"`
	FromName    string   `mapstructure:"from_name"`
	AlertTo     []string `mapstructure:"alert_to"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from environment variables with the MCOPILOT_
// prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("MCOPILOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "mcopilot")
	v.SetDefault("db.password", "mcopilot_secret")
	v.SetDefault("db.name", "mcopilot_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// LLM defaults
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.model", "gpt-4o-mini")
	v.SetDefault("llm.embedding_model", "text-embedding-3-small")
	v.SetDefault("llm.timeout_secs", 60)
	v.SetDefault("llm.max_output_tokens", 1024)

	// RAG defaults
	v.SetDefault("rag.chunk_words", 200)
	v.SetDefault("rag.overlap_words", 40)
	v.SetDefault("rag.top_k", 3)

	// Analysis defaults
	v.SetDefault("analysis.max_concurrent_calls", 4)

	// Ingest defaults
	v.SetDefault("ingest.max_content_length", 100000)
	v.SetDefault("ingest.max_file_size_mb", 25)

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.endpoint", "")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "us-east-1")
	v.SetDefault("email.from_address", "alerts@missioncopilot.local")
	v.SetDefault("email.from_name", "Mission Copilot")
	v.SetDefault("email.alert_to", "")

	// CORS defaults (dashboard dev origin)
	v.SetDefault("cors.allowed_origins", "http://localhost:5173,http://127.0.0.1:5173")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                   "MCOPILOT_SERVER_PORT",
		"server.read_timeout":           "MCOPILOT_SERVER_READ_TIMEOUT",
		"server.write_timeout":          "MCOPILOT_SERVER_WRITE_TIMEOUT",
		"server.environment":            "MCOPILOT_SERVER_ENVIRONMENT",
		"db.host":                       "MCOPILOT_DB_HOST",
		"db.port":                       "MCOPILOT_DB_PORT",
		"db.user":                       "MCOPILOT_DB_USER",
		"db.password":                   "MCOPILOT_DB_PASSWORD",
		"db.name":                       "MCOPILOT_DB_NAME",
		"db.sslmode":                    "MCOPILOT_DB_SSLMODE",
		"db.max_open":                   "MCOPILOT_DB_MAX_OPEN",
		"db.max_idle":                   "MCOPILOT_DB_MAX_IDLE",
		"llm.api_key":                   "MCOPILOT_LLM_API_KEY",
		"llm.model":                     "MCOPILOT_LLM_MODEL",
		"llm.embedding_model":           "MCOPILOT_LLM_EMBEDDING_MODEL",
		"llm.timeout_secs":              "MCOPILOT_LLM_TIMEOUT_SECS",
		"llm.max_output_tokens":         "MCOPILOT_LLM_MAX_OUTPUT_TOKENS",
		"rag.chunk_words":               "MCOPILOT_RAG_CHUNK_WORDS",
		"rag.overlap_words":             "MCOPILOT_RAG_OVERLAP_WORDS",
		"rag.top_k":                     "MCOPILOT_RAG_TOP_K",
		"analysis.max_concurrent_calls": "MCOPILOT_ANALYSIS_MAX_CONCURRENT_CALLS",
		"ingest.max_content_length":     "MCOPILOT_INGEST_MAX_CONTENT_LENGTH",
		"ingest.max_file_size_mb":       "MCOPILOT_INGEST_MAX_FILE_SIZE_MB",
		"s3.region":                     "MCOPILOT_S3_REGION",
		"s3.bucket":                     "MCOPILOT_S3_BUCKET",
		"s3.endpoint":                   "MCOPILOT_S3_ENDPOINT",
		"s3.access_key":                 "MCOPILOT_S3_ACCESS_KEY",
		"s3.secret_key":                 "MCOPILOT_S3_SECRET_KEY",
		"email.provider":                "MCOPILOT_EMAIL_PROVIDER",
		"email.region":                  "MCOPILOT_EMAIL_REGION",
		"email.from_address":            "MCOPILOT_EMAIL_FROM_ADDRESS",
		"email.from_name":               "MCOPILOT_EMAIL_FROM_NAME",
		"email.alert_to":                "MCOPILOT_EMAIL_ALERT_TO",
		"cors.allowed_origins":          "MCOPILOT_CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding env %s: %w", env, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	// Comma-separated lists arrive as single strings from env vars.
	cfg.CORS.AllowedOrigins = splitList(cfg.CORS.AllowedOrigins)
	cfg.Email.AlertTo = splitList(cfg.Email.AlertTo)

	return &cfg, nil
}

func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
