package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	PostgresAddress  string
	PostgresPort     string
	PostgresDB       string
	PostgresUsername string
	PostgresPassword string

	HTTPPort string
	LogLevel logrus.Level

	// CORSAllowedOrigins is a comma separated list; "*" allows any origin.
	CORSAllowedOrigins []string
	// MaxRequestsPerSecond is enforced per client IP.
	MaxRequestsPerSecond int

	// LedgerTimezone is the zone whose calendar days bound daily totals.
	LedgerTimezone *time.Location

	OperationTimeout     time.Duration
	RetryMaxAttempts     uint64
	RetryInitialInterval time.Duration
}

func ProcessEnvironmentVariables() (*Config, error) {
	// A missing .env is fine; real environment variables always win.
	_ = godotenv.Load()

	// In all cases the default behavior should be for the docker compose setup
	env := Config{
		PostgresAddress:      "localhost",
		PostgresPort:         "5433",
		PostgresDB:           "postgres",
		PostgresUsername:     "postgres",
		PostgresPassword:     "testpassword",
		HTTPPort:             "9446",
		LogLevel:             logrus.InfoLevel,
		CORSAllowedOrigins:   []string{"*"},
		MaxRequestsPerSecond: 50,
		LedgerTimezone:       time.UTC,
		OperationTimeout:     10 * time.Second,
		RetryMaxAttempts:     3,
		RetryInitialInterval: 50 * time.Millisecond,
	}

	envPostgresAddress := os.Getenv("POSTGRES_ADDRESS")
	envPostgresPort := os.Getenv("POSTGRES_PORT")
	envPostgresDB := os.Getenv("POSTGRES_DB")
	envPostgresUsername := os.Getenv("POSTGRES_USERNAME")
	envPostgresPassword := os.Getenv("POSTGRES_PASSWORD")
	envHTTPPort := os.Getenv("HTTP_PORT")

	if len(envPostgresAddress) != 0 {
		env.PostgresAddress = envPostgresAddress
	}

	if len(envPostgresPort) != 0 {
		env.PostgresPort = envPostgresPort
	}

	if len(envPostgresDB) != 0 {
		env.PostgresDB = envPostgresDB
	}

	if len(envPostgresUsername) != 0 {
		env.PostgresUsername = envPostgresUsername
	}

	if len(envPostgresPassword) != 0 {
		env.PostgresPassword = envPostgresPassword
	}

	if len(envHTTPPort) != 0 {
		env.HTTPPort = envHTTPPort
	}

	if v := os.Getenv("LOG_LEVEL"); len(v) != 0 {
		level, err := logrus.ParseLevel(v)
		if err != nil {
			return nil, fmt.Errorf("LOG_LEVEL: %w", err)
		}
		env.LogLevel = level
	}

	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); len(v) != 0 {
		var origins []string
		for _, origin := range strings.Split(v, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				origins = append(origins, origin)
			}
		}
		env.CORSAllowedOrigins = origins
	}

	if v := os.Getenv("MAX_REQUESTS_PER_SECOND"); len(v) != 0 {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("MAX_REQUESTS_PER_SECOND: must be a positive integer, got %q", v)
		}
		env.MaxRequestsPerSecond = n
	}

	if v := os.Getenv("LEDGER_TIMEZONE"); len(v) != 0 {
		loc, err := time.LoadLocation(v)
		if err != nil {
			return nil, fmt.Errorf("LEDGER_TIMEZONE: %w", err)
		}
		env.LedgerTimezone = loc
	}

	if v := os.Getenv("OPERATION_TIMEOUT"); len(v) != 0 {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("OPERATION_TIMEOUT: %w", err)
		}
		env.OperationTimeout = d
	}

	if v := os.Getenv("RETRY_MAX_ATTEMPTS"); len(v) != 0 {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil || n == 0 {
			return nil, fmt.Errorf("RETRY_MAX_ATTEMPTS: must be a positive integer, got %q", v)
		}
		env.RetryMaxAttempts = n
	}

	if v := os.Getenv("RETRY_INITIAL_INTERVAL"); len(v) != 0 {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("RETRY_INITIAL_INTERVAL: %w", err)
		}
		env.RetryInitialInterval = d
	}

	return &env, nil
}
