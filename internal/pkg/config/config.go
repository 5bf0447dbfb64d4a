package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (provider credentials,
//   webhook secret, DB connection, etc.)
// - default: Values common across all environments (timezone, limits, etc.)
// -----------------------------------------------------------------------------

type Config struct {
	Server   ServerConfig
	DB       DBConfig
	CORS     CORSConfig
	Log      LogConfig
	JWT      JWTConfig
	Webhook  WebhookConfig
	Provider ProviderConfig
	Agent    AgentConfig
	Booking  BookingConfig
}

type ServerConfig struct {
	Host string `envconfig:"WEBHOOK_HOST" default:"0.0.0.0"`
	Port string `envconfig:"WEBHOOK_PORT" default:"8000"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8000"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,X-Webhook-Signature"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"false"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"America/Mexico_City"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"-21600"` // -6*60*60
}

type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Duration string `envconfig:"JWT_DURATION" default:"24h"`
}

// WebhookConfig secures the inbound webhook endpoints.
type WebhookConfig struct {
	Secret         string        `envconfig:"WEBHOOK_SECRET" required:"true"`
	MaxPayloadSize int64         `envconfig:"WEBHOOK_MAX_PAYLOAD_SIZE" default:"1048576"` // 1MB
	RateLimit      int           `envconfig:"WEBHOOK_RATE_LIMIT" default:"50"`
	RateWindow     time.Duration `envconfig:"WEBHOOK_RATE_WINDOW" default:"60s"`
}

// ProviderConfig holds the Cal.com scheduling provider credentials.
type ProviderConfig struct {
	BaseURL     string        `envconfig:"CALCOM_BASE_URL" default:"https://api.cal.com/v1"`
	APIKey      string        `envconfig:"CALCOM_API_KEY" required:"true"`
	EventTypeID int           `envconfig:"CALCOM_EVENT_TYPE_ID" required:"true"`
	Username    string        `envconfig:"CALCOM_USERNAME" required:"true"`
	UserEmail   string        `envconfig:"CALCOM_USEREMAIL" required:"true"`
	Timeout     time.Duration `envconfig:"CALCOM_TIMEOUT" default:"10s"`
}

// AgentConfig configures the conversational concierge backend.
type AgentConfig struct {
	APIKey  string `envconfig:"OPENAI_API_KEY" required:"true"`
	BaseURL string `envconfig:"OPENAI_BASE_URL" default:""`
	Model   string `envconfig:"OPENAI_MODEL" default:"o3-mini"`
}

// BookingConfig holds booking policy knobs.
type BookingConfig struct {
	Zone     string        `envconfig:"BOOKING_TIMEZONE" default:"mexico"`
	Duration time.Duration `envconfig:"BOOKING_DURATION" default:"30m"`
	MaxDays  int           `envconfig:"BOOKING_MAX_DAYS" default:"3"`
	MaxSlots int           `envconfig:"BOOKING_MAX_SLOTS_PER_DAY" default:"3"`
}

func (c *DBConfig) BuildDSN() string {
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
			Host: "127.0.0.1",
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
		},
		CORS: CORSConfig{
			AllowOrigins:     []string{"http://localhost:3000"},
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Webhook-Signature"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		},
		JWT: JWTConfig{
			Secret:   "test_jwt_secret",
			Duration: "24h",
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "America/Mexico_City",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: -21600,
		},
		Webhook: WebhookConfig{
			Secret:         "test_webhook_secret",
			MaxPayloadSize: 1 << 20,
			RateLimit:      50,
			RateWindow:     time.Minute,
		},
		Provider: ProviderConfig{
			BaseURL:     "http://localhost:9999/v1",
			APIKey:      "test_api_key",
			EventTypeID: 1,
			Username:    "test",
			UserEmail:   "test@example.com",
			Timeout:     2 * time.Second,
		},
		Booking: BookingConfig{
			Zone:     "mexico",
			Duration: 30 * time.Minute,
			MaxDays:  3,
			MaxSlots: 3,
		},
	}
}
