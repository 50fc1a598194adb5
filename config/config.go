package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the runtime settings read from the environment
type Config struct {
	Env    string
	Port   string
	DBName string

	MongoURI string

	JWTSecret    string
	JWTExpiresIn time.Duration

	// Login lockout policy
	LoginMaxAttempts  int
	LoginLockDuration time.Duration

	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	PublicCacheTTL time.Duration

	CORSAllowedOrigins []string
	// TrustProxy reads client addresses from X-Forwarded-For set by a proxy on a private network
	TrustProxy bool
	// ImageDomains are extra hosts allowed as image sources in the CSP
	ImageDomains []string
}

// IsDevelopment reports whether the service runs with development defaults
func (c *Config) IsDevelopment() bool {
	return c.Env == "development" || c.Env == "dev"
}

// Load reads the configuration from environment variables.
// godotenv.Load should run before this so that a local .env file is honoured.
func Load() (*Config, error) {
	cfg := &Config{
		Env:                os.Getenv("ENV"),
		Port:               getEnv("PORT", "5000"),
		DBName:             getEnv("DB_NAME", "coffee-shop"),
		MongoURI:           mongoURI(),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		JWTExpiresIn:       getDuration("JWT_EXPIRES_IN", 24*time.Hour),
		LoginMaxAttempts:   getInt("LOGIN_MAX_ATTEMPTS", 5),
		LoginLockDuration:  getDuration("LOGIN_LOCK_DURATION", 2*time.Hour),
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		RedisPassword:      os.Getenv("REDIS_PASSWORD"),
		RedisDB:            getInt("REDIS_DB", 0),
		PublicCacheTTL:     getDuration("PUBLIC_CACHE_TTL", time.Minute),
		CORSAllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		TrustProxy:         getBool("TRUST_PROXY"),
		ImageDomains:       splitList(os.Getenv("IMAGE_DOMAINS")),
	}

	if cfg.JWTSecret == "" {
		if !cfg.IsDevelopment() {
			return nil, errors.New("JWT_SECRET environment variable is required")
		}
		cfg.JWTSecret = "development-secret"
	}

	if cfg.LoginMaxAttempts < 1 {
		return nil, errors.New("LOGIN_MAX_ATTEMPTS must be at least 1")
	}
	if cfg.JWTExpiresIn <= 0 {
		return nil, errors.New("JWT_EXPIRES_IN must be positive")
	}

	return cfg, nil
}

// LoadDatabase reads only what is needed to reach MongoDB. The admin CLI uses it
// so that it can run without the HTTP server's secrets.
func LoadDatabase() *Config {
	return &Config{
		Env:      os.Getenv("ENV"),
		DBName:   getEnv("DB_NAME", "coffee-shop"),
		MongoURI: mongoURI(),
	}
}

// mongoURI accepts both MONGODB_URI and MONGO_URI
func mongoURI() string {
	if v := os.Getenv("MONGODB_URI"); v != "" {
		return v
	}
	return getEnv("MONGO_URI", "mongodb://localhost:27017")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getBool(key string) bool {
	b, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && b
}

// getDuration accepts Go duration strings ("90m") or a plain number of seconds
func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
