package config

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Auth modes
const (
	AuthModeMulti  = "multi"
	AuthModeSingle = "single"
)

const devJWTSecret = "fallback_dev_secret"

// Config holds everything the server reads from the environment
type Config struct {
	Port        string
	StoreURL    string
	AuditDBPath string
	AuthMode    string
	JWTSecret   string
	TokenTTL    time.Duration

	TrelloAPIKey  string
	TrelloToken   string
	TrelloBaseURL string

	AppURL   string
	UseHTTPS bool

	OIDCDomain       string
	OIDCClientID     string
	OIDCClientSecret string
	OIDCCallbackURL  string

	MaxUploadBytes  int64
	RequestTimeout  time.Duration
	CORSOrigins     []string
	ShutdownTimeout time.Duration
}

// MultiTenant reports whether every user gets an own event log
func (c Config) MultiTenant() bool {
	return c.AuthMode != AuthModeSingle
}

// OIDCEnabled reports whether single sign-on is configured
func (c Config) OIDCEnabled() bool {
	return c.OIDCDomain != "" && c.OIDCClientID != ""
}

// Load reads .env (when present) and then the environment
func Load() Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("Failed to load .env: %v", err)
	}
	return Parse()
}

// Parse builds the config from the current environment
func Parse() Config {
	cfg := Config{
		Port:        getString("PORT", "8080"),
		StoreURL:    getString("STORE_URL", ""),
		AuditDBPath: getString("AUDIT_DB_PATH", "boardhook.db"),
		AuthMode:    strings.ToLower(getString("AUTH_MODE", AuthModeMulti)),
		JWTSecret:   getString("JWT_SECRET", ""),
		TokenTTL:    time.Duration(getInt("TOKEN_TTL_HOURS", 7*24)) * time.Hour,

		TrelloAPIKey:  getString("TRELLO_API_KEY", ""),
		TrelloToken:   getString("TRELLO_TOKEN", ""),
		TrelloBaseURL: getString("TRELLO_BASE_URL", ""),

		AppURL:   getString("APP_URL", ""),
		UseHTTPS: getString("USE_HTTPS", "") == "true",

		OIDCDomain:       getString("OIDC_DOMAIN", ""),
		OIDCClientID:     getString("OIDC_CLIENT_ID", ""),
		OIDCClientSecret: getString("OIDC_CLIENT_SECRET", ""),
		OIDCCallbackURL:  getString("OIDC_CALLBACK_URL", ""),

		MaxUploadBytes:  int64(getInt("MAX_UPLOAD_BYTES", 10<<20)),
		RequestTimeout:  time.Duration(getInt("REQUEST_TIMEOUT_SECONDS", 60)) * time.Second,
		CORSOrigins:     parseList(getString("CORS_ORIGINS", "*")),
		ShutdownTimeout: time.Duration(getInt("SHUTDOWN_TIMEOUT_SECONDS", 10)) * time.Second,
	}

	if cfg.AuthMode != AuthModeSingle {
		cfg.AuthMode = AuthModeMulti
	}
	if cfg.JWTSecret == "" {
		log.Printf("⚠️  JWT_SECRET not set, using development secret")
		cfg.JWTSecret = devJWTSecret
	}
	return cfg
}

func parseList(csv string) []string {
	var out []string
	for _, item := range strings.Split(csv, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func getString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
