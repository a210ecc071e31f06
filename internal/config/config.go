package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	APIAddr           string
	UploadDir         string
	DataOutRoot       string
	MaxUploadMB       int
	MatchLimit        int
	BatchWorkers      int
	LLMProviders      string
	LLMMaxTokens      int
	PostgresURL       string
	TemporalAddress   string
	TemporalTaskQueue string
	LogLevel          string
	LogPretty         bool
}

func Load() Config {
	return Config{
		APIAddr:           getenv("DOCQUERY_API_ADDR", ":8080"),
		UploadDir:         getenv("DOCQUERY_UPLOAD_DIR", "./uploads"),
		DataOutRoot:       getenv("DOCQUERY_DATA_OUT", "./data/out"),
		MaxUploadMB:       getenvInt("DOCQUERY_MAX_UPLOAD_MB", 100),
		MatchLimit:        getenvInt("DOCQUERY_MATCH_LIMIT", 3),
		BatchWorkers:      getenvInt("DOCQUERY_BATCH_WORKERS", 4),
		LLMProviders:      getenv("DOCQUERY_LLM_PROVIDERS", "mock"),
		LLMMaxTokens:      getenvInt("DOCQUERY_LLM_MAX_TOKENS", 1000),
		PostgresURL:       getenv("DOCQUERY_POSTGRES_URL", ""),
		TemporalAddress:   getenv("DOCQUERY_TEMPORAL_ADDRESS", "localhost:7233"),
		TemporalTaskQueue: getenv("DOCQUERY_TEMPORAL_TASK_QUEUE", "docquery"),
		LogLevel:          getenv("DOCQUERY_LOG_LEVEL", "info"),
		LogPretty:         getenvBool("DOCQUERY_LOG_PRETTY", false),
	}
}

// MaxUploadBytes is the upload limit in bytes.
func (c Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

func getenv(k, fallback string) string {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	return v
}

func getenvInt(k string, fallback int) int {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getenvBool(k string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
