package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server    ServerConfig
	DB        DBConfig
	CORS      CORSConfig
	Log       LogConfig
	JWT       JWTConfig
	Engine    EngineConfig
	Trust     TrustConfig
	Sweep     SweepConfig
	Payment   PaymentConfig
	Tier      TierConfig
	Snowflake SnowflakeConfig
	Store     StoreConfig
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

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,X-Request-ID"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,X-Request-ID"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

// JWTConfig only validates bearer tokens issued elsewhere.
type JWTConfig struct {
	Secret string `envconfig:"JWT_SECRET" required:"true"`
	Issuer string `envconfig:"JWT_ISSUER" default:""`
}

type EngineConfig struct {
	ResponseWindow      time.Duration `envconfig:"RESPONSE_WINDOW" default:"48h"`
	DefaultMaxRevisions int           `envconfig:"DEFAULT_MAX_REVISIONS" default:"2"`
	MinBudgetMinor      int64         `envconfig:"MIN_BUDGET_MINOR" default:"1000"`
	DefaultCurrency     string        `envconfig:"DEFAULT_CURRENCY" default:"NGN"`
	CalendarTimeZone    string        `envconfig:"CALENDAR_TIMEZONE" default:"UTC"`
}

// TrustConfig feeds the decline policy. Durations escalate per repeat suspension.
type TrustConfig struct {
	Window              time.Duration   `envconfig:"TRUST_WINDOW" default:"720h"`
	WarningThreshold    int             `envconfig:"TRUST_WARNING_THRESHOLD" default:"3"`
	SuspensionThreshold int             `envconfig:"TRUST_SUSPENSION_THRESHOLD" default:"5"`
	SuspensionDurations []time.Duration `envconfig:"TRUST_SUSPENSION_DURATIONS" default:"168h,336h,720h"`
}

type SweepConfig struct {
	Enabled     bool          `envconfig:"SWEEP_ENABLED" default:"true"`
	Interval    time.Duration `envconfig:"SWEEP_INTERVAL" default:"1m"`
	BatchSize   int           `envconfig:"SWEEP_BATCH_SIZE" default:"100"`
	Concurrency int           `envconfig:"SWEEP_CONCURRENCY" default:"4"`
}

type PaymentConfig struct {
	WebhookSecret string `envconfig:"PAYMENT_WEBHOOK_SECRET" required:"true"`
	// SandboxMode: success, fail or manual (charges stay unresolved).
	SandboxMode string `envconfig:"PAYMENT_SANDBOX_MODE" default:"success"`
}

type TierConfig struct {
	Fees        map[string]int `envconfig:"TIER_FEES" default:"standard:1000,pro:800,elite:500"`
	DefaultTier string         `envconfig:"DEFAULT_TIER" default:"standard"`
}

type SnowflakeConfig struct {
	NodeID int64 `envconfig:"NODE_ID" default:"1"`
}

type StoreConfig struct {
	Driver string `envconfig:"STORE_DRIVER" default:"postgres"`
}

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

func (c EngineConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.CalendarTimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid CALENDAR_TIMEZONE %q: %w", c.CalendarTimeZone, err)
	}
	return loc, nil
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

// MigrationURL is the DSN handed to atlas, which rejects pgx-only parameters.
func (c *DBConfig) MigrationURL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

func LoadConfig() (Config, error) {
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
			Level:          "error", // Error level only for tests
			TimeZone:       "UTC",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 0,
		},
		JWT: JWTConfig{
			Secret: "test-secret",
		},
		Engine: EngineConfig{
			ResponseWindow:      48 * time.Hour,
			DefaultMaxRevisions: 2,
			MinBudgetMinor:      1000,
			DefaultCurrency:     "NGN",
			CalendarTimeZone:    "UTC",
		},
		Trust: TrustConfig{
			Window:              30 * 24 * time.Hour,
			WarningThreshold:    3,
			SuspensionThreshold: 5,
			SuspensionDurations: []time.Duration{7 * 24 * time.Hour, 14 * 24 * time.Hour, 30 * 24 * time.Hour},
		},
		Sweep: SweepConfig{
			Enabled:     false,
			Interval:    time.Minute,
			BatchSize:   100,
			Concurrency: 4,
		},
		Payment: PaymentConfig{
			WebhookSecret: "test-webhook-secret",
			SandboxMode:   "success",
		},
		Tier: TierConfig{
			Fees:        map[string]int{"standard": 1000, "pro": 800, "elite": 500},
			DefaultTier: "standard",
		},
		Snowflake: SnowflakeConfig{NodeID: 1},
		Store:     StoreConfig{Driver: StoreDriverMemory},
	}
}
