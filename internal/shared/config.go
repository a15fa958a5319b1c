package shared

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	LogLevel    string
	HTTPAddr    string
	HTTPTimeout time.Duration
	// WidgetOrigins are the host pages allowed to call the API from a browser.
	WidgetOrigins []string
	MetricsAddr   string
	MySQLDSN      string
	RedisAddr     string
	RedisDB       int
	RedisPass     string

	ContentBase string
	ContentKey  string
	ContentRPS  int
	SyncWorkers int

	CacheTTL   time.Duration
	SessionTTL time.Duration
	ReplyDelay time.Duration

	MessagingBaseURL string
	ContactPhone     string
	EngineStyle      string

	GeminiKey   string
	GeminiModel string
}

// Load reads an optional .env file and then the process environment.
// Variables already set in the environment win over the file.
func Load() Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn().Err(err).Msg("could not read .env")
	}
	return FromEnv()
}

func FromEnv() Config {
	c := Config{
		AppEnv:        env("APP_ENV", "prod"),
		LogLevel:      env("LOG_LEVEL", "info"),
		HTTPAddr:      env("HTTP_ADDR", ":8080"),
		HTTPTimeout:   time.Duration(atoi("HTTP_TIMEOUT_SECONDS", 15)) * time.Second,
		WidgetOrigins: list("WIDGET_ORIGINS"),
		MetricsAddr:   env("METRICS_ADDR", ":9100"),
		MySQLDSN:      env("MYSQL_DSN", "root:root@tcp(localhost:3306)/travel?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:     env("REDIS_ADDR", "localhost:6379"),
		RedisPass:     env("REDIS_PASSWORD", ""),
		RedisDB:       atoi("REDIS_DB", 0),

		ContentBase: env("CONTENT_BASE_URL", "http://localhost:8081/api"),
		ContentKey:  env("CONTENT_API_KEY", ""),
		ContentRPS:  atoi("CONTENT_RPS", 5),
		SyncWorkers: atoi("SYNC_WORKERS", 8),

		CacheTTL:   time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
		SessionTTL: time.Duration(atoi("SESSION_TTL_SECONDS", 1800)) * time.Second,
		ReplyDelay: time.Duration(atoi("REPLY_DELAY_MS", 600)) * time.Millisecond,

		MessagingBaseURL: env("MESSAGING_BASE_URL", "https://wa.me"),
		ContactPhone:     env("CONTACT_PHONE", ""),
		EngineStyle:      env("ENGINE_STYLE", "free_text"),

		GeminiKey:   env("GEMINI_API_KEY", ""),
		GeminiModel: env("GEMINI_MODEL", ""),
	}
	if c.ContactPhone == "" {
		log.Warn().Msg("CONTACT_PHONE is empty; handoff links rely on the synced contact row")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func atoi(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// list splits a comma-separated variable, dropping blanks.
func list(k string) []string {
	var out []string
	for _, v := range strings.Split(os.Getenv(k), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
