package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

type Config struct {
	AppEnv          string `validate:"required"`
	LogLevel        string `validate:"required"`
	MetricsAddr     string
	ProxyURL        string `validate:"omitempty,url"`
	Language        string `validate:"required,min=2"`
	OutputFormat    string `validate:"required,oneof=json csv parquet"`
	OutputPath      string
	WorkDir         string `validate:"required"`
	TargetReviews   int    `validate:"gte=0"`
	Retries         int    `validate:"gte=1"`
	RetryWait       time.Duration
	RequestInterval time.Duration
	RandomProfiles  bool
	Workers         int `validate:"gte=1"`
	MySQLDSN        string
}

func Load() (Config, error) {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:          env("APP_ENV", "prod"),
		LogLevel:        env("LOG_LEVEL", "info"),
		MetricsAddr:     env("METRICS_ADDR", ":9100"),
		ProxyURL:        env("PROXY_URL", ""),
		Language:        env("LANGUAGE", "en"),
		OutputFormat:    env("OUTPUT_FORMAT", "json"),
		OutputPath:      env("OUTPUT_PATH", ""),
		WorkDir:         env("WORK_DIR", "tmp"),
		TargetReviews:   atoi("TARGET_REVIEWS", 0),
		Retries:         atoi("RETRIES", 10),
		RetryWait:       time.Duration(atoi("RETRY_WAIT_SECONDS", 30)) * time.Second,
		RequestInterval: time.Duration(atoi("REQUEST_INTERVAL_MS", 400)) * time.Millisecond,
		RandomProfiles:  env("PROFILE_ROTATION", "random") == "random",
		Workers:         atoi("WORKERS", 4),
		MySQLDSN:        env("MYSQL_DSN", ""),
	}
	if err := validator.New().Struct(c); err != nil {
		return Config{}, err
	}
	return c, nil
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
