package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port        string   `env:"PORT,         default=8080"`
	Env         string   `env:"ENV,          default=development"`
	LogLevel    string   `env:"LOG_LEVEL,    default=info"`
	CORSOrigins []string `env:"CORS_ORIGINS, default=http://localhost:5173"`

	Auth  AuthConfig
	Mongo MongoConfig
	Redis RedisConfig
	Audit AuditConfig
}

type AuthConfig struct {
	AccessSecret  string   `env:"ACCESS_TOKEN_SECRET,      required"`
	RefreshSecret string   `env:"REFRESH_TOKEN_SECRET,     required"`
	AccessTTL     Duration `env:"ACCESS_TOKEN_EXPIRATION,  default=15m"`
	RefreshTTL    Duration `env:"REFRESH_TOKEN_EXPIRATION, default=7d"`
	// Reserved for the refresh exchange flow; nothing consumes it yet.
	RefreshWindowMs int64  `env:"REFRESH_TOKEN_WINDOW_MS,  default=600000"`
	Issuer          string `env:"TOKEN_ISSUER"`
	BcryptCost      int    `env:"BCRYPT_COST,              default=10"`

	LoginMaxAttempts   int      `env:"LOGIN_MAX_ATTEMPTS,    default=5"`
	LoginLockout       Duration `env:"LOGIN_LOCKOUT,         default=15m"`
	RegisterRatePerMin int      `env:"REGISTER_RATE_PER_MIN, default=10"`
}

type MongoConfig struct {
	URI         string `env:"MONGO_URI,           default=mongodb://localhost:27017"`
	Database    string `env:"MONGO_DB,            default=manhwa_catalog"`
	MaxPoolSize uint64 `env:"MONGO_MAX_POOL_SIZE"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type AuditConfig struct {
	Workers int `env:"AUDIT_WORKERS, default=4"`
}

// RefreshWindow returns REFRESH_TOKEN_WINDOW_MS as a duration.
func (a AuthConfig) RefreshWindow() time.Duration {
	return time.Duration(a.RefreshWindowMs) * time.Millisecond
}

// IsDevelopment reports whether the service runs with developer defaults
// such as pretty logs.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

// Validate checks the invariants go-envconfig tags cannot express.
func (c *Config) Validate() error {
	var errs []error
	if c.Auth.AccessSecret == c.Auth.RefreshSecret {
		errs = append(errs, errors.New("ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET must differ"))
	}
	if c.Auth.AccessTTL.Duration() <= 0 {
		errs = append(errs, errors.New("ACCESS_TOKEN_EXPIRATION must be positive"))
	}
	if c.Auth.RefreshTTL.Duration() <= c.Auth.AccessTTL.Duration() {
		errs = append(errs, errors.New("REFRESH_TOKEN_EXPIRATION must exceed ACCESS_TOKEN_EXPIRATION"))
	}
	if c.Auth.LoginMaxAttempts <= 0 {
		errs = append(errs, errors.New("LOGIN_MAX_ATTEMPTS must be positive"))
	}
	return errors.Join(errs...)
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

// MustLoad is Load for main packages: it panics on error.
func MustLoad() *Config {
	cfg, err := Load(context.Background())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}
	return &cfg, nil
}
