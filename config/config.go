package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server   ServerConfig
	Logger   LoggerConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Elastic  ElasticsearchConfig
	StoreAPI StoreAPIConfig
	Shop     ShopConfig
	Cart     CartConfig
	Session  SessionConfig
	Cache    CacheConfig
}

type ServerConfig struct {
	AppEnv   string
	HTTPPort string
	GRPCPort string
}

type LoggerConfig struct {
	Level             string
	Encoding          string
	DisableCaller     bool
	DisableStacktrace bool
}

type PostgresConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int
	ConnMaxIdleTime int
}

type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
}

type KafkaConfig struct {
	Enabled      bool
	Brokers      []string
	CatalogTopic string
	GroupID      string
	OrderTopic   string
}

type ElasticsearchConfig struct {
	Enabled   bool
	Addresses []string
	Username  string
	Password  string
}

type StoreAPIConfig struct {
	BaseURL string
	Timeout time.Duration
}

type ShopConfig struct {
	Name    string
	Address string
	// WhatsAppPhone overrides the phone stored in the site config.
	WhatsAppPhone string
	Locale        string
	TimeZone      string
	Title         string
	ReminderTitle string
}

type CartConfig struct {
	// StorageDriver is memory, redis or postgres.
	StorageDriver    string
	SlotPrefix       string
	SlotTTL          time.Duration
	ReminderInterval time.Duration
}

// UsesPostgres reports whether carts are kept in Postgres, the only
// consumer of the database connection.
func (c CartConfig) UsesPostgres() bool {
	return c.StorageDriver == "postgres"
}

type SessionConfig struct {
	TTL           time.Duration
	SweepInterval time.Duration
	CookieName    string
}

type CacheConfig struct {
	ProductTTL    time.Duration
	SiteConfigTTL time.Duration
}

func LoadEnv() *Config {
	return &Config{
		Server: ServerConfig{
			AppEnv:   getEnv("APP_ENV", "dev"),
			HTTPPort: getEnv("HTTP_PORT", ":8080"),
			GRPCPort: getEnv("GRPC_PORT", ":8082"),
		},
		Logger: LoggerConfig{
			Level:             getEnv("LOGGER_LEVEL", "debug"),
			Encoding:          getEnv("LOGGER_ENCODING", "console"),
			DisableCaller:     getEnvBool("LOGGER_DISABLE_CALLER", false),
			DisableStacktrace: getEnvBool("LOGGER_DISABLE_STACKTRACE", true),
		},
		Postgres: PostgresConfig{
			Host:            getEnv("POSTGRES_HOST", "localhost"),
			Port:            getEnv("POSTGRES_PORT", "5433"),
			User:            getEnv("POSTGRES_USER", "storefront"),
			Password:        getEnv("POSTGRES_PASSWORD", "storefront"),
			DBName:          getEnv("POSTGRES_DB", "storefront"),
			SSLMode:         getEnv("POSTGRES_SSLMODE", "disable"),
			MaxOpenConns:    getEnvInt("POSTGRES_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvInt("POSTGRES_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvInt("POSTGRES_CONN_MAX_LIFETIME", 300),
			ConnMaxIdleTime: getEnvInt("POSTGRES_CONN_MAX_IDLE_TIME", 60),
		},
		Redis: RedisConfig{
			Enabled:  getEnvBool("REDIS_ENABLED", true),
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Kafka: KafkaConfig{
			Enabled:      getEnvBool("KAFKA_ENABLED", false),
			Brokers:      getEnvSlice("KAFKA_BROKERS", []string{"localhost:9092"}),
			CatalogTopic: getEnv("KAFKA_TOPIC_CATALOG", "catalog.events"),
			GroupID:      getEnv("KAFKA_GROUP_STOREFRONT", "storefront"),
			OrderTopic:   getEnv("KAFKA_TOPIC_ORDERS", "orders.events"),
		},
		Elastic: ElasticsearchConfig{
			Enabled:   getEnvBool("ELASTICSEARCH_ENABLED", false),
			Addresses: getEnvSlice("ELASTICSEARCH_ADDRESSES", []string{"http://localhost:9200"}),
			Username:  getEnv("ELASTICSEARCH_USERNAME", ""),
			Password:  getEnv("ELASTICSEARCH_PASSWORD", ""),
		},
		StoreAPI: StoreAPIConfig{
			BaseURL: getEnv("API_URL", "http://localhost:8000/api"),
			Timeout: getEnvDuration("API_TIMEOUT", 10*time.Second),
		},
		Shop: ShopConfig{
			Name:          getEnv("SHOP_NAME", "Naranja autoservicio"),
			Address:       getEnv("SHOP_ADDRESS", "Ordoñez 69, La Carlota, Córdoba"),
			WhatsAppPhone: getEnv("WHATSAPP_PHONE", ""),
			Locale:        getEnv("SHOP_LOCALE", "es"),
			TimeZone:      getEnv("SHOP_TIMEZONE", "America/Argentina/Cordoba"),
			Title:         getEnv("SHOP_TITLE", "Naranja autoservicio"),
			ReminderTitle: getEnv("SHOP_REMINDER_TITLE", ""),
		},
		Cart: CartConfig{
			StorageDriver:    getEnv("CART_STORAGE", "redis"),
			SlotPrefix:       getEnv("CART_SLOT_PREFIX", "cart:"),
			SlotTTL:          getEnvDuration("CART_SLOT_TTL", 30*24*time.Hour),
			ReminderInterval: getEnvDuration("CART_REMINDER_INTERVAL", 5*time.Second),
		},
		Session: SessionConfig{
			TTL:           getEnvDuration("SESSION_TTL", 24*time.Hour),
			SweepInterval: getEnvDuration("SESSION_SWEEP_INTERVAL", time.Minute),
			CookieName:    getEnv("SESSION_COOKIE", "storefront_session"),
		},
		Cache: CacheConfig{
			ProductTTL:    getEnvDuration("CACHE_PRODUCT_TTL", 5*time.Minute),
			SiteConfigTTL: getEnvDuration("CACHE_SITE_CONFIG_TTL", 5*time.Minute),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	if value, ok := os.LookupEnv(key); ok {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return fallback
}

// getEnvDuration accepts Go durations ("90s") or plain seconds.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if s, err := strconv.Atoi(value); err == nil {
		return time.Duration(s) * time.Second
	}
	return fallback
}
