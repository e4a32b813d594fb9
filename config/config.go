package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store backends
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Event publishers
const (
	PublisherLog   = "log"
	PublisherKafka = "kafka"
	PublisherSNS   = "sns"
)

type Config struct {
	Env  string
	Port string

	StoreBackend string
	RedisURL     string
	CartTTL      time.Duration

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	EventPublisher   string
	KafkaBrokers     []string
	KafkaTopic       string
	OrderSNSTopicARN string

	FreeShippingThreshold int64
	ShippingFee           int64
	PromoCode             string
	PromoPercent          int64

	CloudWatchEnabled   bool
	CloudWatchNamespace string

	NewsletterDelay    time.Duration
	RequestTimeout     time.Duration
	AllowedOrigins     string
	RateLimitPerMinute int64
	RateLimitBurst     int64
}

// Load reads configuration from the environment, picking up a .env file when present.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Env:  getEnv("APP_ENV", "development"),
		Port: getEnv("PORT", "8080"),

		StoreBackend: strings.ToLower(getEnv("STORE_BACKEND", BackendMemory)),
		RedisURL:     getEnv("REDIS_URL", "redis://redis:6379"),
		CartTTL:      getDuration("CART_TTL", time.Hour*24*7), // default 7 days

		PostgresHost:     os.Getenv("POSTGRES_HOST"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     os.Getenv("POSTGRES_USER"),
		PostgresPassword: os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:       os.Getenv("POSTGRES_DB"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		EventPublisher:   strings.ToLower(getEnv("EVENT_PUBLISHER", PublisherLog)),
		KafkaBrokers:     splitList(getEnv("KAFKA_BROKERS", "localhost:9092")),
		KafkaTopic:       getEnv("KAFKA_TOPIC", "order.placed"),
		OrderSNSTopicARN: os.Getenv("ORDER_SNS_TOPIC_ARN"),

		FreeShippingThreshold: getInt("FREE_SHIPPING_THRESHOLD", 5000),
		ShippingFee:           getInt("SHIPPING_FEE", 499),
		PromoCode:             getEnv("PROMO_CODE", "SALE20"),
		PromoPercent:          getInt("PROMO_PERCENT", 20),

		CloudWatchEnabled:   os.Getenv("CLOUDWATCH_ENABLED") == "true",
		CloudWatchNamespace: getEnv("CLOUDWATCH_NAMESPACE", "Storefront"),

		NewsletterDelay:    getDuration("NEWSLETTER_DELAY", time.Second),
		RequestTimeout:     getDuration("REQUEST_TIMEOUT", 30*time.Second),
		AllowedOrigins:     os.Getenv("ALLOWED_ORIGINS"),
		RateLimitPerMinute: getInt("RATE_LIMIT_PER_MINUTE", 100),
		RateLimitBurst:     getInt("RATE_LIMIT_BURST", 50),
	}
}

// PostgresDSN builds the gorm DSN for the Postgres store backend.
func (c Config) PostgresDSN() string {
	return "host=" + c.PostgresHost +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" port=" + c.PostgresPort +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getInt(key string, defaultVal int64) int64 {
	if v, err := strconv.ParseInt(os.Getenv(key), 10, 64); err == nil {
		return v
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return defaultVal
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
