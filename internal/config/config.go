package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Input/output files
	SirutaPath      string
	PriorExportPath string
	OutputPath      string
	OutputFormat    string
	SirutaDelimiter rune
	OutputDelimiter rune

	// Name normalization
	NormalizeNames bool // переписывать седиль в запятую снизу (ş→ș, ţ→ț)

	// Manticore
	ManticoreHost        string
	ManticorePort        int
	ManticoreConnTimeout time.Duration

	// Download
	SirutaBaseURL   string
	DataDir         string
	DownloadTimeout time.Duration
	MaxRetries      int

	// Indexing
	BatchSize int
}

func Load() (*Config, error) {
	// Подхватываем .env, если он есть; реальное окружение имеет приоритет
	_ = godotenv.Load()

	cfg := &Config{
		SirutaPath:      getEnv("SIRUTA_PATH", "seed/siruta-official.csv"),
		PriorExportPath: getEnv("PRIOR_EXPORT_PATH", "data/territories_export.csv"),
		OutputPath:      getEnv("OUTPUT_PATH", "seed/territories.csv"),
		OutputFormat:    getEnv("OUTPUT_FORMAT", "csv"),
		SirutaDelimiter: getEnvAsRune("SIRUTA_DELIMITER", ';'),
		OutputDelimiter: getEnvAsRune("OUTPUT_DELIMITER", ','),

		NormalizeNames: getEnvAsBool("NORMALIZE_NAMES", false),

		ManticoreHost:        getEnv("MANTICORE_HOST", "localhost"),
		ManticorePort:        getEnvAsInt("MANTICORE_PORT", 9308),
		ManticoreConnTimeout: getEnvAsDuration("MANTICORE_TIMEOUT", 30*time.Second),

		SirutaBaseURL:   getEnv("SIRUTA_BASE_URL", "https://data.gov.ro/dataset/siruta/"),
		DataDir:         getEnv("DATA_DIR", "./data"),
		DownloadTimeout: getEnvAsDuration("DOWNLOAD_TIMEOUT", 10*time.Minute),
		MaxRetries:      getEnvAsInt("MAX_RETRIES", 3),

		BatchSize: getEnvAsInt("BATCH_SIZE", 1000),
	}

	return cfg, nil
}

// Чтение переменных окружения с умолчаниями
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

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
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

func getEnvAsRune(key string, defaultValue rune) rune {
	if value := os.Getenv(key); value != "" {
		runes := []rune(value)
		if len(runes) == 1 {
			return runes[0]
		}
	}
	return defaultValue
}
