package config

import (
	"encoding/json"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	SMTP      SMTPConfig
	Challenge ChallengeConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	ExportDir          string
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

// ChallengeConfig carries the evaluation-challenge knobs: run ageing
// thresholds, notification flags and the configured test periods.
type ChallengeConfig struct {
	CompetitionName        string
	DashboardRunsURL       string
	RunAgeThresholdDays    int
	ReactivationPeriodDays int
	SendEmailRunOutdated   bool
	SendEmailRunDeleted    bool
	QrelMode               string // "ctr" or "clicks"
	TestPeriods            []TestPeriod
	SweepIntervalHours     int
}

// TestPeriod is a named evaluation window [Start, End).
type TestPeriod struct {
	Name  string    `json:"name"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// ActivePeriod returns the test period containing now, or nil.
func (c ChallengeConfig) ActivePeriod(now time.Time) *TestPeriod {
	for i := range c.TestPeriods {
		p := &c.TestPeriods[i]
		if !now.Before(p.Start) && now.Before(p.End) {
			return p
		}
	}
	return nil
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			ExportDir:          getEnv("EXPORT_DIR", "exports"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "LiveLabs"),
		},
		Challenge: ChallengeConfig{
			CompetitionName:        getEnv("COMPETITION_NAME", "LiveLabs OpenSearch"),
			DashboardRunsURL:       getEnv("URL_REACTIVATION", "http://localhost:5173/user/runs"),
			RunAgeThresholdDays:    getEnvAsInt("RUN_AGE_THRESHOLD_DAYS", 30),
			ReactivationPeriodDays: getEnvAsInt("REACTIVATION_PERIOD_DAYS", 7),
			SendEmailRunOutdated:   getEnvAsBool("SEND_EMAIL_RUN_OUTDATED", true),
			SendEmailRunDeleted:    getEnvAsBool("SEND_EMAIL_RUN_DELETED", true),
			QrelMode:               getEnv("QREL_MODE", "ctr"),
			TestPeriods:            getEnvAsPeriods("TEST_PERIODS"),
			SweepIntervalHours:     getEnvAsInt("CLEANUP_INTERVAL_HOURS", 6),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

// getEnvAsPeriods parses a JSON array of {name, start, end} objects with
// RFC3339 timestamps. A missing or malformed value yields no periods.
func getEnvAsPeriods(key string) []TestPeriod {
	strValue := getEnv(key, "")
	if strValue == "" {
		return nil
	}
	var periods []TestPeriod
	if err := json.Unmarshal([]byte(strValue), &periods); err != nil {
		log.Printf("Warn: could not parse %s: %v", key, err)
		return nil
	}
	return periods
}
