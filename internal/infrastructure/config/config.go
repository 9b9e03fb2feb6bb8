package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
)

type DatabaseConfig struct {
	Host     string `validate:"required"`
	Port     int    `validate:"required,min=1,max=65535"`
	User     string `validate:"required"`
	Password string `validate:"required"`
	Name     string `validate:"required"`
	SSLMode  string `validate:"required"`
}

type KafkaConfig struct {
	Brokers []string `validate:"required,min=1,dive,required"`
	Topic   string   `validate:"required"`
}

type ScoringConfig struct {
	BaseURL        string `validate:"required,url"`
	TimeoutSeconds int    `validate:"min=1"`
	UseStub        bool
}

type LedgerConfig struct {
	Addr    string `validate:"required"`
	CAFile  string
	UseFake bool
}

type Config struct {
	HTTPPort    int `validate:"required,min=1,max=65535"`
	DB          DatabaseConfig
	Kafka       KafkaConfig
	Scoring     ScoringConfig
	Ledger      LedgerConfig
	ServiceName string `validate:"required"`
}

// Validate panics when the environment is unusable. DB_PASSWORD has no
// default, so a missing password is the most common trigger.
func (c Config) Validate() {
	if c.DB.Password == "" {
		panic("DB_PASSWORD environment variable is required")
	}
	if err := validator.New().Struct(c); err != nil {
		panic(fmt.Sprintf("invalid configuration: %v", err))
	}
}

func Load() Config {
	return Config{
		HTTPPort: getEnvInt("HTTP_PORT", 8080),
		DB: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "finisbank"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "finisbank"),
			SSLMode:  getEnv("DB_SSLMODE", "require"),
		},
		Kafka: KafkaConfig{
			Brokers: []string{getEnv("KAFKA_BROKERS", "localhost:9092")},
			Topic:   getEnv("KAFKA_TOPIC", "credit-events"),
		},
		Scoring: ScoringConfig{
			BaseURL:        getEnv("SCORING_BASE_URL", "http://localhost:8090"),
			TimeoutSeconds: getEnvInt("SCORING_TIMEOUT_SECONDS", 10),
			UseStub:        getEnvBool("SCORING_USE_STUB", false),
		},
		Ledger: LedgerConfig{
			Addr:    getEnv("LEDGER_ADDR", "localhost:9096"),
			CAFile:  getEnv("LEDGER_CA_FILE", ""),
			UseFake: getEnvBool("LEDGER_USE_FAKE", false),
		},
		ServiceName: "finis-bank",
	}
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
