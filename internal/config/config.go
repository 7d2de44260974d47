package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Port string
	Env  string

	// Local snapshot database
	DBPath string

	// Quote providers
	FinnhubAPIKey       string
	FinnhubBaseURL      string
	CoinbaseBaseURL     string
	CoinbaseExchangeURL string

	// Per-request provider timeouts
	QuoteTimeout   time.Duration
	HistoryTimeout time.Duration
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		DBPath: getEnv("DB_PATH", "folio.db"),

		FinnhubAPIKey:       getEnv("FINNHUB_API_KEY", ""),
		FinnhubBaseURL:      getEnv("FINNHUB_BASE_URL", "https://finnhub.io/api/v1"),
		CoinbaseBaseURL:     getEnv("COINBASE_BASE_URL", "https://api.coinbase.com/v2"),
		CoinbaseExchangeURL: getEnv("COINBASE_EXCHANGE_URL", "https://api.exchange.coinbase.com"),
	}

	config.QuoteTimeout = getEnvDuration("QUOTE_TIMEOUT", 10*time.Second)
	config.HistoryTimeout = getEnvDuration("HISTORY_TIMEOUT", 10*time.Second)

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvDuration retrieves a duration environment variable or returns a default value
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		log.Printf("Warning: invalid %s value '%s', falling back to %v\n", key, value, defaultValue)
		return defaultValue
	}
	return d
}
