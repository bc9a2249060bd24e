package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, backend URL), secrets
// - default: Values common across all environments (timezone, timeout, booking policy)
// -----------------------------------------------------------------------------

type Config struct {
	Server  ServerConfig
	DB      DBConfig
	Redis   RedisConfig
	CORS    CORSConfig
	Log     LogConfig
	JWT     JWTConfig
	Backend BackendConfig
	Booking BookingConfig
	Public  PublicConfig
	Jobs    JobsConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`
}

type RedisConfig struct {
	// Empty address disables the backend lookup cache.
	Addr     string `envconfig:"REDIS_ADDR" default:""`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,Idempotency-Key,X-Site-Key"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,Content-Disposition"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Duration string `envconfig:"JWT_DURATION" default:"24h"`
}

type BackendConfig struct {
	BaseURL string        `envconfig:"BACKEND_BASE_URL" required:"true"`
	Timeout time.Duration `envconfig:"BACKEND_TIMEOUT" default:"10s"`
	// ServiceToken authenticates calls made on behalf of the public website.
	ServiceToken string        `envconfig:"BACKEND_SERVICE_TOKEN" required:"true"`
	CacheTTL     time.Duration `envconfig:"BACKEND_CACHE_TTL" default:"30s"`
}

type BookingConfig struct {
	TimeZone                 string        `envconfig:"BOOKING_TIMEZONE" default:"UTC"`
	LatenessThresholdMinutes int           `envconfig:"BOOKING_LATENESS_THRESHOLD_MINUTES" default:"60"`
	MinDurationMinutes       int           `envconfig:"BOOKING_MIN_DURATION_MINUTES" default:"15"`
	ConflictPolicy           string        `envconfig:"BOOKING_CONFLICT_POLICY" default:"warn"`
	IdempotencyTTL           time.Duration `envconfig:"BOOKING_IDEMPOTENCY_TTL" default:"24h"`
}

type PublicConfig struct {
	SiteKeyHash string  `envconfig:"PUBLIC_SITE_KEY_HASH" required:"true"`
	RatePerSec  float64 `envconfig:"PUBLIC_RATE_PER_SEC" default:"5"`
	Burst       int     `envconfig:"PUBLIC_RATE_BURST" default:"10"`
}

type JobsConfig struct {
	IdempotencyPurgeSpec string `envconfig:"JOBS_IDEMPOTENCY_PURGE_SPEC" default:"0 0 * * * *"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

// LoadConfig reads an optional .env file, then the process environment.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
		},
		Log: LogConfig{
			Level:      "error", // Error level only for tests
			TimeZone:   "UTC",
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		JWT: JWTConfig{
			Secret:   "test-secret",
			Duration: "1h",
		},
		Backend: BackendConfig{
			BaseURL:      "http://localhost:18080",
			Timeout:      2 * time.Second,
			ServiceToken: "test-service-token",
			CacheTTL:     30 * time.Second,
		},
		Booking: BookingConfig{
			TimeZone:                 "UTC",
			LatenessThresholdMinutes: 60,
			MinDurationMinutes:       15,
			ConflictPolicy:           "warn",
			IdempotencyTTL:           24 * time.Hour,
		},
		Public: PublicConfig{
			RatePerSec: 100,
			Burst:      100,
		},
		Jobs: JobsConfig{
			IdempotencyPurgeSpec: "0 0 * * * *",
		},
	}
}
