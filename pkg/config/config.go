package config

import (
	"fmt"
	"net"
	"net/url"
	"time"
)

const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	DBTypeSQLite   = "sqlite"
	DBTypePostgres = "postgres"

	DefaultJWTSecret = "change_me"
)

type Config struct {
	AppEnv       string `yaml:"app_env" env:"APP_ENV"`
	Port         string `yaml:"port" env:"PORT"`
	MetricsPort  string `yaml:"metrics_port" env:"METRICS_PORT"`
	EnforceHTTPS bool   `yaml:"enforce_https" env:"ENFORCE_HTTPS"`

	Database   DatabaseConfig   `yaml:"database"`
	Auth       AuthConfig       `yaml:"auth"`
	Pagination PaginationConfig `yaml:"pagination"`
	Cache      CacheConfig      `yaml:"cache"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
}

type DatabaseConfig struct {
	Type           string `yaml:"type" env:"DB_TYPE"`
	SQLiteFilename string `yaml:"sqlite_filename" env:"SQLITE_FILENAME"`
	URL            string `yaml:"url" env:"DATABASE_URL"`
	Host           string `yaml:"host" env:"DB_HOST"`
	Port           int    `yaml:"port" env:"DB_PORT"`
	Username       string `yaml:"username" env:"DB_USERNAME"`
	Password       string `yaml:"password" env:"DB_PASSWORD"`
	Name           string `yaml:"name" env:"DB_DATABASE"`
	LogQueries     bool   `yaml:"log_queries" env:"DB_LOG_QUERIES"`
}

// PostgresDSN prefers DATABASE_URL and falls back to the discrete DB_* settings.
func (d DatabaseConfig) PostgresDSN() string {
	if d.URL != "" {
		return d.URL
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.Username, d.Password),
		Host:     net.JoinHostPort(d.Host, fmt.Sprint(d.Port)),
		Path:     "/" + d.Name,
		RawQuery: "sslmode=disable",
	}

	return u.String()
}

type AuthConfig struct {
	JWTSecret     string        `yaml:"jwt_secret" env:"JWT_SECRET"`
	JWTExpiration time.Duration `yaml:"jwt_expiration" env:"JWT_EXPIRATION"`
	BcryptCost    int           `yaml:"bcrypt_cost" env:"BCRYPT_COST"`
}

type PaginationConfig struct {
	DefaultLimit int `yaml:"default_limit" env:"PAGINATION_DEFAULT_LIMIT"`
	MaxLimit     int `yaml:"max_limit" env:"PAGINATION_MAX_LIMIT"`
}

type CacheConfig struct {
	IdentityTTL time.Duration `yaml:"identity_ttl" env:"IDENTITY_CACHE_TTL"`
	RedisURL    string        `yaml:"redis_url" env:"REDIS_URL"`
}

type TelemetryConfig struct {
	ServiceName  string `yaml:"service_name" env:"OTEL_SERVICE_NAME"`
	OTLPEndpoint string `yaml:"otlp_endpoint" env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	LokiURL      string `yaml:"loki_url" env:"LOKI_URL"`
	LogLevel     string `yaml:"log_level" env:"LOG_LEVEL"`
}

func Defaults() Config {
	return Config{
		AppEnv:      EnvDevelopment,
		Port:        "3000",
		MetricsPort: "9091",
		Database: DatabaseConfig{
			Type:           DBTypeSQLite,
			SQLiteFilename: "./data/dev.sqlite",
			Host:           "localhost",
			Port:           5432,
			Username:       "postgres",
			Name:           "taskmanager",
		},
		Auth: AuthConfig{
			JWTSecret:     DefaultJWTSecret,
			JWTExpiration: 24 * time.Hour,
			BcryptCost:    10,
		},
		Pagination: PaginationConfig{
			DefaultLimit: 10,
			MaxLimit:     100,
		},
		Cache: CacheConfig{
			IdentityTTL: 30 * time.Second,
		},
		Telemetry: TelemetryConfig{
			ServiceName: "taskmanager",
			LogLevel:    "info",
		},
	}
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == EnvProduction
}
