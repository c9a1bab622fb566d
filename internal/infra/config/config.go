package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/specvital/reporter/pkg/report"
)

const (
	defaultQueueName       = "report_artifacts"
	defaultQueueWorkers    = 5
	defaultShutdownTimeout = 30 * time.Second
	defaultEnvFile         = ".env"
)

type Config struct {
	DatabaseURL     string
	RunID           report.UUID
	Queue           QueueConfig
	ShutdownTimeout time.Duration
	S3              S3Config
}

// QueueConfig sizes the River queue the ingester drains.
type QueueConfig struct {
	Name    string
	Workers int
}

// S3Config enables mirroring artifacts to a bucket when Bucket is set.
type S3Config struct {
	Bucket            string
	Prefix            string
	Region            string
	Endpoint          string
	PathStyle         bool
	RequestsPerSecond float64
}

func (c S3Config) Enabled() bool { return c.Bucket != "" }

// Load reads configuration from the environment. Variables in a .env file
// (or REPORT_ENV_FILE) are applied first without overriding real ones.
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, err
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}

	runID := report.NilUUID
	if raw := os.Getenv("REPORT_RUN_ID"); raw != "" {
		id, err := report.ParseUUID(raw)
		if err != nil {
			return nil, fmt.Errorf("REPORT_RUN_ID: %w", err)
		}
		runID = id
	}

	return &Config{
		DatabaseURL:     databaseURL,
		RunID:           runID,
		Queue:           loadQueueConfig(),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		S3:              loadS3Config(),
	}, nil
}

func loadEnvFile() error {
	path := os.Getenv("REPORT_ENV_FILE")
	explicit := path != ""
	if !explicit {
		path = defaultEnvFile
	}
	if _, err := os.Stat(path); err != nil {
		if explicit {
			return fmt.Errorf("env file %s: %w", path, err)
		}
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	slog.Debug("env file loaded", "path", path)
	return nil
}

func loadQueueConfig() QueueConfig {
	name := os.Getenv("REPORT_QUEUE_NAME")
	if name == "" {
		name = defaultQueueName
	}
	return QueueConfig{
		Name:    name,
		Workers: getEnvInt("REPORT_QUEUE_WORKERS", defaultQueueWorkers),
	}
}

func loadS3Config() S3Config {
	return S3Config{
		Bucket:            os.Getenv("REPORT_S3_BUCKET"),
		Prefix:            os.Getenv("REPORT_S3_PREFIX"),
		Region:            os.Getenv("REPORT_S3_REGION"),
		Endpoint:          os.Getenv("REPORT_S3_ENDPOINT"),
		PathStyle:         getEnvBool("REPORT_S3_PATH_STYLE", false),
		RequestsPerSecond: getEnvFloat("REPORT_S3_RPS", 0),
	}
}

// getEnvInt returns defaultValue unless key holds a positive integer.
func getEnvInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return defaultValue
	}
	return v
}

func getEnvFloat(key string, defaultValue float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil || v < 0 {
		return defaultValue
	}
	return v
}

func getEnvBool(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil || v <= 0 {
		return defaultValue
	}
	return v
}
