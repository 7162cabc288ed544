package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

var (
	// ErrLoad возвращается, если файл конфигурации не удалось прочитать
	ErrLoad = errors.New("config: failed to load")

	// ErrInvalid возвращается, если конфигурация не прошла проверку
	ErrInvalid = errors.New("config: invalid configuration")
)

// Config конфигурация сервиса
type Config struct {
	Server       ServerConfig       `toml:"server"`
	Logs         LogsConfig         `toml:"logs"`
	Metrics      MetricsConfig      `toml:"metrics"`
	Database     DatabaseConfig     `toml:"database"`
	Redis        RedisConfig        `toml:"redis"`
	RemoteAPI    RemoteAPIConfig    `toml:"remote_api"`
	Auth         AuthConfig         `toml:"auth"`
	Sessions     SessionsConfig     `toml:"sessions"`
	Cancellation CancellationConfig `toml:"cancellation"`
	Payments     PaymentsConfig     `toml:"payments"`
	Gateway      GatewayConfig      `toml:"payment_gateway"`
	Stripe       StripeConfig       `toml:"stripe"`
	Events       EventsConfig       `toml:"events"`
	RateLimit    RateLimitConfig    `toml:"rate_limit"`
	CORS         CORSConfig         `toml:"cors"`
}

// ServerConfig HTTP сервер, таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// DatabaseConfig Postgres для журнала оплат
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// RemoteAPIConfig удаленный REST API автомобилей и бронирований
type RemoteAPIConfig struct {
	URL         string `toml:"url"`
	Timeout     int    `toml:"timeout"`
	RefreshPath string `toml:"refresh_path"`
}

type AuthConfig struct {
	JWTSecret          string `toml:"jwt_secret"`
	InsecureSkipVerify bool   `toml:"insecure_skip_verify"` // только для локальной разработки
	ServiceToken       string `toml:"service_token"`        // токен фоновых операций
}

type SessionsConfig struct {
	TTLMinutes int `toml:"ttl_minutes"`
}

type CancellationConfig struct {
	TokenTTLSeconds int `toml:"token_ttl_seconds"`
}

// PaymentsConfig оплаты и фоновая проверка заявок
type PaymentsConfig struct {
	Currency          string `toml:"currency"`
	VerifySchedule    string `toml:"verify_schedule"`
	VerifyMaxAgeHours int    `toml:"verify_max_age_hours"`
	VerifyBatchSize   uint64 `toml:"verify_batch_size"`
}

type GatewayConfig struct {
	URL     string `toml:"url"`
	APIKey  string `toml:"api_key"`
	Timeout int    `toml:"timeout"`
}

// StripeConfig пустой secret_key отключает оплату картой
type StripeConfig struct {
	SecretKey     string `toml:"secret_key"`
	WebhookSecret string `toml:"webhook_secret"`
	SuccessURL    string `toml:"success_url"`
	CancelURL     string `toml:"cancel_url"`
}

// Enabled true, если оплата через Stripe настроена
func (c StripeConfig) Enabled() bool {
	return c.SecretKey != ""
}

// EventsConfig пустой nsqd_address отключает публикацию
type EventsConfig struct {
	NSQDAddress string `toml:"nsqd_address"`
	Topic       string `toml:"topic"`
}

type RateLimitConfig struct {
	Enabled           bool    `toml:"enabled"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
}

type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins"`
}

// Load читает TOML-файл, затем .env и переменные окружения (секреты и адреса)
func Load(path string) (*Config, error) {
	// .env необязателен
	_ = godotenv.Load()

	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLoad, path, err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() {
	setString(&c.Database.Host, "DB_HOST")
	setInt(&c.Database.Port, "DB_PORT")
	setString(&c.Database.User, "DB_USER")
	setString(&c.Database.Password, "DB_PASSWORD")
	setString(&c.Database.DBName, "DB_NAME")
	setString(&c.Redis.Addr, "REDIS_ADDR")
	setString(&c.Redis.Password, "REDIS_PASSWORD")
	setString(&c.RemoteAPI.URL, "REMOTE_API_URL")
	setString(&c.Auth.JWTSecret, "JWT_SECRET")
	setString(&c.Auth.ServiceToken, "SERVICE_ACCESS_TOKEN")
	setString(&c.Gateway.URL, "PAYMENT_GATEWAY_URL")
	setString(&c.Gateway.APIKey, "PAYMENT_GATEWAY_API_KEY")
	setString(&c.Stripe.SecretKey, "STRIPE_SECRET_KEY")
	setString(&c.Stripe.WebhookSecret, "STRIPE_WEBHOOK_SECRET")
	setString(&c.Events.NSQDAddress, "NSQD_ADDRESS")
	setString(&c.Logs.Level, "LOG_LEVEL")
	setInt(&c.Server.HTTPPort, "HTTP_PORT")
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}
	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "rental-booking-service"
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.RemoteAPI.Timeout == 0 {
		c.RemoteAPI.Timeout = 10
	}
	if c.Sessions.TTLMinutes == 0 {
		c.Sessions.TTLMinutes = 24 * 60
	}
	if c.Cancellation.TokenTTLSeconds == 0 {
		c.Cancellation.TokenTTLSeconds = 300
	}
	if c.Payments.Currency == "" {
		c.Payments.Currency = "usd"
	}
	if c.Payments.VerifySchedule == "" {
		c.Payments.VerifySchedule = "@every 1m"
	}
	if c.Payments.VerifyMaxAgeHours == 0 {
		c.Payments.VerifyMaxAgeHours = 24
	}
	if c.Payments.VerifyBatchSize == 0 {
		c.Payments.VerifyBatchSize = 100
	}
	if c.Gateway.Timeout == 0 {
		c.Gateway.Timeout = 10
	}
	if c.Events.Topic == "" {
		c.Events.Topic = "rental.bookings"
	}
	if c.RateLimit.RequestsPerSecond == 0 {
		c.RateLimit.RequestsPerSecond = 10
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = 20
	}
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	var problems []string

	if c.RemoteAPI.URL == "" {
		problems = append(problems, "remote_api.url is required")
	}
	if c.Redis.Addr == "" {
		problems = append(problems, "redis.addr is required")
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		problems = append(problems, "database.host and database.dbname are required")
	}
	if c.Gateway.URL == "" {
		problems = append(problems, "payment_gateway.url is required")
	}
	if c.Auth.JWTSecret == "" && !c.Auth.InsecureSkipVerify {
		problems = append(problems, "auth.jwt_secret is required unless auth.insecure_skip_verify is set")
	}
	if c.Stripe.Enabled() && (c.Stripe.WebhookSecret == "" || c.Stripe.SuccessURL == "" || c.Stripe.CancelURL == "") {
		problems = append(problems, "stripe.webhook_secret, success_url and cancel_url are required when stripe is enabled")
	}
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		problems = append(problems, "server.http_port is out of range")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}

// SessionTTL время жизни сессии выбора поездки
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.Sessions.TTLMinutes) * time.Minute
}

// CancellationTTL время жизни токена подтверждения отмены
func (c *Config) CancellationTTL() time.Duration {
	return time.Duration(c.Cancellation.TokenTTLSeconds) * time.Second
}

// VerifyMaxAge срок, после которого заявка на оплату истекает
func (c *Config) VerifyMaxAge() time.Duration {
	return time.Duration(c.Payments.VerifyMaxAgeHours) * time.Hour
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return
	}
	if n, err := strconv.Atoi(v); err == nil {
		*dst = n
	}
}
