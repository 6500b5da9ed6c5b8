package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/erkineren/homework-monitor/internal/apperr"
	"github.com/erkineren/homework-monitor/internal/review"
)

const (
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

type Config struct {
	APIToken string
	BotToken string
	ChatID   int64

	APIEndpoint    string
	PollInterval   time.Duration
	RequestTimeout time.Duration
	StartFrom      int64
	ReportErrors   bool

	StoreDriver string
	StoreDSN    string

	LogLevel  string
	LogFormat string
}

// required maps a config key to the env names that may carry it, canonical
// name first.
var required = []struct {
	key  string
	envs []string
}{
	{"api_token", []string{"API_TOKEN", "PRACTICUM_TOKEN"}},
	{"bot_token", []string{"BOT_TOKEN", "TELEGRAM_TOKEN"}},
	{"chat_id", []string{"CHAT_ID", "TELEGRAM_CHAT_ID"}},
}

var optional = map[string]string{
	"api_endpoint":    "API_ENDPOINT",
	"poll_interval":   "POLL_INTERVAL",
	"request_timeout": "REQUEST_TIMEOUT",
	"start_from":      "START_FROM",
	"report_errors":   "REPORT_ERRORS",
	"store_driver":    "STORE_DRIVER",
	"store_dsn":       "STORE_DSN",
	"log_level":       "LOG_LEVEL",
	"log_format":      "LOG_FORMAT",
}

// Load reads configuration from the process environment, after loading
// envFiles (".env" when none are given). Missing env files are ignored.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, apperr.Wrap(apperr.ConfigMissing, "config", fmt.Errorf("error loading %s: %w", file, err))
		}
	}

	v := viper.New()
	v.SetDefault("api_endpoint", review.DefaultEndpoint)
	v.SetDefault("poll_interval", "10m")
	v.SetDefault("request_timeout", "30s")
	v.SetDefault("start_from", "0")
	v.SetDefault("report_errors", true)
	v.SetDefault("store_driver", StoreMemory)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")

	for _, r := range required {
		if err := v.BindEnv(append([]string{r.key}, r.envs...)...); err != nil {
			return nil, apperr.Wrap(apperr.ConfigMissing, "config", err)
		}
	}
	for key, env := range optional {
		if err := v.BindEnv(key, env); err != nil {
			return nil, apperr.Wrap(apperr.ConfigMissing, "config", err)
		}
	}

	var missing []string
	for _, r := range required {
		if strings.TrimSpace(v.GetString(r.key)) == "" {
			missing = append(missing, r.envs[0])
		}
	}
	if len(missing) > 0 {
		return nil, apperr.New(apperr.ConfigMissing, "config", "missing required environment variables: %s", strings.Join(missing, ", "))
	}

	chatID, err := strconv.ParseInt(strings.TrimSpace(v.GetString("chat_id")), 10, 64)
	if err != nil {
		return nil, apperr.New(apperr.ConfigMissing, "config", "invalid CHAT_ID: %v", err)
	}

	pollInterval, err := time.ParseDuration(v.GetString("poll_interval"))
	if err != nil || pollInterval <= 0 {
		return nil, apperr.New(apperr.ConfigMissing, "config", "invalid POLL_INTERVAL %q", v.GetString("poll_interval"))
	}

	requestTimeout, err := time.ParseDuration(v.GetString("request_timeout"))
	if err != nil || requestTimeout <= 0 {
		return nil, apperr.New(apperr.ConfigMissing, "config", "invalid REQUEST_TIMEOUT %q", v.GetString("request_timeout"))
	}

	startFrom, err := strconv.ParseInt(v.GetString("start_from"), 10, 64)
	if err != nil || startFrom < 0 {
		return nil, apperr.New(apperr.ConfigMissing, "config", "invalid START_FROM %q", v.GetString("start_from"))
	}

	cfg := &Config{
		APIToken:       strings.TrimSpace(v.GetString("api_token")),
		BotToken:       strings.TrimSpace(v.GetString("bot_token")),
		ChatID:         chatID,
		APIEndpoint:    v.GetString("api_endpoint"),
		PollInterval:   pollInterval,
		RequestTimeout: requestTimeout,
		StartFrom:      startFrom,
		ReportErrors:   v.GetBool("report_errors"),
		StoreDriver:    strings.ToLower(v.GetString("store_driver")),
		StoreDSN:       v.GetString("store_dsn"),
		LogLevel:       v.GetString("log_level"),
		LogFormat:      v.GetString("log_format"),
	}

	switch cfg.StoreDriver {
	case StoreMemory:
	case StoreSQLite, StorePostgres:
		if cfg.StoreDSN == "" {
			return nil, apperr.New(apperr.ConfigMissing, "config", "STORE_DSN is required for store driver %q", cfg.StoreDriver)
		}
	default:
		return nil, apperr.New(apperr.ConfigMissing, "config", "unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	return cfg, nil
}
