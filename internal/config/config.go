package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string   `mapstructure:"PORT"`
	Env         string   `mapstructure:"ENV"`
	AuthMode    string   `mapstructure:"AUTH_MODE"`
	DatabaseURL string   `mapstructure:"DATABASE_URL"`
	DBMaxConns  int32    `mapstructure:"DB_MAX_CONNS"`
	DBMinConns  int32    `mapstructure:"DB_MIN_CONNS"`
	CORSOrigins []string `mapstructure:"CORS_ORIGINS"`

	AuthIssuer   string `mapstructure:"AUTH_ISSUER"`
	AuthJWKSURL  string `mapstructure:"AUTH_JWKS_URL"`
	AuthAudience string `mapstructure:"AUTH_AUDIENCE"`
	JWTSecret    string `mapstructure:"JWT_SECRET"`

	AnalysisURL     string        `mapstructure:"ANALYSIS_URL"`
	AnalysisToken   string        `mapstructure:"ANALYSIS_TOKEN"`
	AnalysisTimeout time.Duration `mapstructure:"ANALYSIS_TIMEOUT"`

	TranslateURL     string        `mapstructure:"TRANSLATE_URL"`
	TranslateTimeout time.Duration `mapstructure:"TRANSLATE_TIMEOUT"`
	SourceLanguage   string        `mapstructure:"SOURCE_LANGUAGE"`

	RateLimitRPS   float64 `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst int     `mapstructure:"RATE_LIMIT_BURST"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("AUTH_MODE", "") // auto-detect: "" -> inferred from ENV
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("ANALYSIS_TIMEOUT", "60s")
	v.SetDefault("TRANSLATE_TIMEOUT", "30s")
	v.SetDefault("SOURCE_LANGUAGE", "en")
	v.SetDefault("RATE_LIMIT_RPS", 100)
	v.SetDefault("RATE_LIMIT_BURST", 200)

	// Bind env vars explicitly so Unmarshal picks them up
	for _, key := range []string{
		"PORT", "ENV", "AUTH_MODE",
		"DATABASE_URL", "DB_MAX_CONNS", "DB_MIN_CONNS", "CORS_ORIGINS",
		"AUTH_ISSUER", "AUTH_JWKS_URL", "AUTH_AUDIENCE", "JWT_SECRET",
		"ANALYSIS_URL", "ANALYSIS_TOKEN", "ANALYSIS_TIMEOUT",
		"TRANSLATE_URL", "TRANSLATE_TIMEOUT", "SOURCE_LANGUAGE",
		"RATE_LIMIT_RPS", "RATE_LIMIT_BURST",
	} {
		v.BindEnv(key)
	}

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.IsDev() {
		log.Println("WARNING: ============================================================")
		log.Println("WARNING: Server is running in DEVELOPMENT mode (ENV=development).")
		log.Println("WARNING: development auth is active; identity comes from request headers.")
		log.Println("WARNING: Do NOT use this configuration in production.")
		log.Println("WARNING: Set ENV=production and configure AUTH_ISSUER or JWT_SECRET.")
		log.Println("WARNING: ============================================================")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProduction returns true when the server is configured for production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// ResolvedAuthMode returns the effective auth mode. If AUTH_MODE is explicitly
// set, it is returned. Otherwise, the mode is inferred:
//   - ENV=development → "development" (identity taken from request headers)
//   - AUTH_JWKS_URL set → "jwks" (external identity provider)
//   - Otherwise         → "hmac" (shared-secret JWT)
func (c *Config) ResolvedAuthMode() string {
	if c.AuthMode != "" {
		return c.AuthMode
	}
	if c.IsDev() {
		return "development"
	}
	if c.AuthJWKSURL != "" {
		return "jwks"
	}
	return "hmac"
}

// Validate checks that the configuration is safe to run. Outside development
// the server refuses to start without a real authentication setup, and the
// analysis service endpoint must be configured so report creation can work.
func (c *Config) Validate() error {
	mode := c.ResolvedAuthMode()
	switch mode {
	case "development":
	case "jwks":
		if c.AuthJWKSURL == "" {
			return fmt.Errorf("AUTH_JWKS_URL must be set when AUTH_MODE is \"jwks\" (current ENV=%q)", c.Env)
		}
	case "hmac":
		if c.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET must be set when AUTH_MODE is \"hmac\" (current ENV=%q). "+
				"Refusing to start without authentication configuration", c.Env)
		}
	default:
		return fmt.Errorf("AUTH_MODE must be \"development\", \"hmac\", or \"jwks\", got %q", mode)
	}

	if c.IsProduction() && c.AnalysisURL == "" {
		return fmt.Errorf("ANALYSIS_URL is required in production")
	}
	if c.AnalysisTimeout < 0 {
		return fmt.Errorf("ANALYSIS_TIMEOUT must not be negative")
	}
	if c.TranslateTimeout < 0 {
		return fmt.Errorf("TRANSLATE_TIMEOUT must not be negative")
	}

	return nil
}
