// Package config loads process configuration from the environment.
//
// Configuration is read once at startup into an immutable Config value
// that is passed by injection into the server, token service and CORS
// layer. Request-handling code never reads ambient environment state.
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// MinSecretLength is the recommended minimum JWT secret length.
// A shorter secret is accepted with a startup warning; an absent one is
// a fatal error.
const MinSecretLength = 32

// Config holds all process-wide configuration.
type Config struct {
	Env         string        // "local", "production", ...
	Port        int           // HTTP listen port
	DBPath      string        // SQLite database file (":memory:" in tests)
	JWTSecret   string        // HMAC signing secret, required
	JWTTTL      time.Duration // token lifetime, default 1h
	ImgBBKey    string        // blob-store public API key (photo upload)
	CORSOrigins []string      // allowed CORS origins
}

// Load reads configuration from environment variables.
//
// godotenv (called in main) may have populated the environment from a
// .env file first; viper then applies defaults and reads the final
// values. ErrMissingSecret is returned when JWT_SECRET is absent —
// starting without a signing secret would make every issued token
// forgeable by whoever guesses the empty default.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("ENV", "local")
	v.SetDefault("PORT", 8080)
	v.SetDefault("DB_PATH", "data/gerador.db")
	v.SetDefault("JWT_TTL", "1h")
	v.SetDefault("CORS_ORIGINS", "*")

	secret := v.GetString("JWT_SECRET")
	if secret == "" {
		return nil, ErrMissingSecret
	}

	ttl := v.GetDuration("JWT_TTL")
	if ttl <= 0 {
		ttl = time.Hour
	}

	return &Config{
		Env:         v.GetString("ENV"),
		Port:        v.GetInt("PORT"),
		DBPath:      v.GetString("DB_PATH"),
		JWTSecret:   secret,
		JWTTTL:      ttl,
		ImgBBKey:    v.GetString("IMGBB_API_KEY"),
		CORSOrigins: splitOrigins(v.GetString("CORS_ORIGINS")),
	}, nil
}

// ErrMissingSecret is returned by Load when JWT_SECRET is not set.
var ErrMissingSecret = errors.New("config: JWT_SECRET não definido")

// SecretTooShort reports whether the configured secret is below the
// recommended minimum. Non-fatal; main logs a warning.
func (c *Config) SecretTooShort() bool {
	return len(c.JWTSecret) < MinSecretLength
}

func splitOrigins(s string) []string {
	parts := strings.Split(s, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}
