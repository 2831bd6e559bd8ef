package menuguide

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/pandamasta/menuguide/internal/envloader"
	"github.com/pandamasta/menuguide/localize"
)

// Config defines the global configuration of the menu guide web app.
type Config struct {
	Domain        string        `env:"APP_DOMAIN" envDefault:"localhost:9003"` // Root domain (e.g., "menuguide.kr")
	Debug         bool          `env:"MENUGUIDE_DEBUG" envDefault:"false"`
	DatabasePath  string        `env:"MENUGUIDE_DB" envDefault:"./menuguide.db"`
	TokenExpiry   time.Duration `env:"SESSION_TTL" envDefault:"24h"` // Admin session lifetime
	SessionCookie CookieConfig  `envPrefix:"SESSION_COOKIE_"`
	CSRF          CSRFConfig    `envPrefix:"CSRF_"`
	Server        ServerConfig
	Backend       BackendConfig `envPrefix:"BACKEND_"`
	I18n          I18nConfig
	Admin         AdminConfig     `envPrefix:"ADMIN_"`
	RateLimit     RateLimitConfig `envPrefix:"RATE_LIMIT_"`
	Upload        UploadConfig    `envPrefix:"UPLOAD_"`
}

// I18nConfig holds language preference and label catalog settings.
type I18nConfig struct {
	// DefaultLang is the label catalog fallback. The visitor preference
	// itself always defaults to English.
	DefaultLang string `env:"DEFAULT_LANG" envDefault:"en"`
	// NegotiateAcceptLanguage lets Accept-Language pick the language for
	// visitors that never chose one. Off by default: unset means English.
	NegotiateAcceptLanguage bool   `env:"NEGOTIATE_ACCEPT_LANGUAGE" envDefault:"false"`
	LocalesPath             string `env:"MENUGUIDE_LOCALES"` // optional override of the embedded catalogs
}

// CookieConfig holds session cookie settings.
type CookieConfig struct {
	Name     string `env:"NAME" envDefault:"menuguide_session"`
	Secure   bool   `env:"SECURE" envDefault:"false"`
	SameSite http.SameSite
	Domain   string `env:"DOMAIN"` // Empty for localhost
}

// CSRFConfig holds CSRF token configuration for cookie and headers.
type CSRFConfig struct {
	CookieName string `env:"COOKIE_NAME" envDefault:"csrf_token"`
	HeaderName string `env:"HEADER_NAME" envDefault:"X-CSRF-Token"`
	Secure     bool   `env:"COOKIE_SECURE" envDefault:"false"`
	SameSite   http.SameSite
	MaxAge     time.Duration `env:"MAX_AGE" envDefault:"2h"`
}

// ServerConfig holds the network address configuration.
type ServerConfig struct {
	Addr string `env:"SERVER_ADDR" envDefault:":9003"`
}

// BackendConfig points at the menu knowledge API.
type BackendConfig struct {
	BaseURL string        `env:"URL" envDefault:"http://localhost:8000"`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"15s"`
	// SearchConcurrency bounds parallel identify calls for one search or upload.
	SearchConcurrency int `env:"CONCURRENCY" envDefault:"4"`
	// MaxNames caps how many menu names one search may look up.
	MaxNames int `env:"MAX_NAMES" envDefault:"20"`
}

// AdminConfig bootstraps the first admin account on startup when both are set.
type AdminConfig struct {
	Email    string `env:"EMAIL"`
	Password string `env:"PASSWORD"`
}

// RateLimitConfig limits search and upload requests per client.
type RateLimitConfig struct {
	Limit  int           `env:"LIMIT" envDefault:"30"`
	Window time.Duration `env:"WINDOW" envDefault:"1m"`
}

// UploadConfig limits menu photo uploads.
type UploadConfig struct {
	MaxBytes int64 `env:"MAX_BYTES" envDefault:"10485760"` // 10MB
}

// LoadDefaultConfig reads .env, then the environment, into a Config.
func LoadDefaultConfig() (*Config, error) {
	envloader.LoadDotEnv(".env")
	return ParseConfig()
}

// ParseConfig builds a Config from the current environment only.
func ParseConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.SessionCookie.SameSite = http.SameSiteLaxMode
	cfg.CSRF.SameSite = http.SameSiteLaxMode

	if !isLocal(cfg.Domain) {
		cfg.SessionCookie.Secure = true
		cfg.CSRF.Secure = true
	}
	if _, err := localize.Parse(cfg.I18n.DefaultLang); err != nil {
		return nil, fmt.Errorf("DEFAULT_LANG %q: %w", cfg.I18n.DefaultLang, err)
	}
	if cfg.Backend.SearchConcurrency < 1 {
		cfg.Backend.SearchConcurrency = 1
	}
	if cfg.Backend.MaxNames < 1 {
		cfg.Backend.MaxNames = 1
	}
	cfg.Backend.BaseURL = strings.TrimRight(cfg.Backend.BaseURL, "/")
	return &cfg, nil
}

// DefaultLanguage returns the label catalog fallback as a Language.
func (c *Config) DefaultLanguage() localize.Language {
	l, err := localize.Parse(c.I18n.DefaultLang)
	if err != nil {
		return localize.Default
	}
	return l
}

// LogValue lists the settings worth seeing at startup, without secrets.
func (c *Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("domain", c.Domain),
		slog.Bool("debug", c.Debug),
		slog.String("db", c.DatabasePath),
		slog.String("addr", c.Server.Addr),
		slog.String("backend", c.Backend.BaseURL),
		slog.Duration("backend_timeout", c.Backend.Timeout),
		slog.Int("max_names", c.Backend.MaxNames),
		slog.String("default_lang", c.I18n.DefaultLang),
		slog.Bool("negotiate_lang", c.I18n.NegotiateAcceptLanguage),
		slog.Any("admin", c.Admin),
		slog.Int("rate_limit", c.RateLimit.Limit),
		slog.Duration("rate_window", c.RateLimit.Window),
		slog.Int64("upload_max_bytes", c.Upload.MaxBytes),
	)
}

func (a AdminConfig) LogValue() slog.Value {
	password := ""
	if a.Password != "" {
		password = "[redacted]"
	}
	return slog.GroupValue(slog.String("email", a.Email), slog.String("password", password))
}

func isLocal(domain string) bool {
	host := domain
	if i := strings.Index(host, ":"); i != -1 {
		host = host[:i]
	}
	return host == "localhost" || host == "127.0.0.1"
}
