package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Notification backends.
const (
	NotifierLog   = "log"
	NotifierKafka = "kafka"
)

// Config carries the runtime settings for the transfer service.
type Config struct {
	HTTPAddr        string
	NotifierBackend string
	KafkaBrokers    []string
	KafkaTopic      string
}

// Load reads configuration from a .env file (if present) and the process
// environment. Missing values fall back to local-development defaults.
func Load() *Config {
	// A missing .env file is fine; the environment still applies.
	_ = godotenv.Load()

	cfg := &Config{
		HTTPAddr:        getEnv("HTTP_ADDR", ":8080"),
		NotifierBackend: getEnv("NOTIFIER_BACKEND", NotifierLog),
		KafkaTopic:      getEnv("KAFKA_TOPIC", "transfer_notifications"),
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
