package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type QuoteServiceConfig struct {
	Port        string
	LogDir      string
	PostgresCfg PostgresConfig
	RedisCfg    RedisConfig
	RabbitMQCfg RabbitMQConfig
	ZepCfg      ZepConfig
	PricingCfg  PricingConfig
	SiteCfg     SiteConfig
}

type PostgresConfig struct {
	DBname        string
	Username      string
	Password      string
	Host          string
	Port          string
	SSLMode       string
	RunMigrations bool
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	CacheTTL time.Duration
}

type RabbitMQConfig struct {
	Host     string
	Username string
	Password string
	Port     string
	Vhost    string
	Enabled  bool
}

type ZepConfig struct {
	APIKey        string
	BaseURL       string
	UserPrefix    string
	GroupID       string
	SearchQuery   string
	SearchLimit   int
	Timeout       time.Duration
	RatePerSecond float64
	Burst         int
}

type PricingConfig struct {
	// Path to a YAML pricing file. Empty means built-in defaults.
	FilePath string
	Watch    bool
}

type SiteConfig struct {
	BaseURL     string
	StaticPages []string
}

func New() *QuoteServiceConfig {
	return &QuoteServiceConfig{
		Port:   getEnvOrDefault("QUOTE_SERVICE_PORT", "8090"),
		LogDir: getEnvOrDefault("LOG_DIR", "/tractorinsurance/log/quote_service"),
		PostgresCfg: PostgresConfig{
			DBname:        getEnvOrDefault("POSTGRES_DB", "quote_service"),
			Username:      getEnvOrDefault("POSTGRES_USER", "postgres"),
			Password:      getEnvOrDefault("POSTGRES_PASSWORD", "postgres"),
			Host:          getEnvOrDefault("POSTGRES_HOST", "localhost"),
			Port:          getEnvOrDefault("POSTGRES_PORT", "5432"),
			SSLMode:       getEnvOrDefault("POSTGRES_SSLMODE", "disable"),
			RunMigrations: getEnvBool("POSTGRES_RUN_MIGRATIONS", true),
		},
		RedisCfg: RedisConfig{
			Host:     getEnvOrDefault("REDIS_HOST", ""),
			Port:     getEnvOrDefault("REDIS_PORT", "6379"),
			Password: getEnvOrDefault("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			CacheTTL: getEnvDuration("CATALOG_CACHE_TTL", 10*time.Minute),
		},
		RabbitMQCfg: RabbitMQConfig{
			Host:     getEnvOrDefault("RABBITMQ_HOST", "rabbitmq"),
			Username: getEnvOrDefault("RABBITMQ_USER", "admin"),
			Password: getEnvOrDefault("RABBITMQ_PWD", "admin"),
			Port:     getEnvOrDefault("RABBITMQ_PORT", "5672"),
			Vhost:    getEnvOrDefault("RABBITMQ_VHOST", "/"),
			Enabled:  getEnvBool("RABBITMQ_ENABLED", false),
		},
		ZepCfg: ZepConfig{
			APIKey:        getEnvOrDefault("ZEP_API_KEY", ""),
			BaseURL:       getEnvOrDefault("ZEP_BASE_URL", "https://api.getzep.com"),
			UserPrefix:    getEnvOrDefault("ZEP_USER_PREFIX", "tractorinsurance"),
			GroupID:       getEnvOrDefault("ZEP_GROUP_ID", ""),
			SearchQuery:   getEnvOrDefault("ZEP_SEARCH_QUERY", "tractor type name age condition insurance plan coverage preferences"),
			SearchLimit:   getEnvInt("ZEP_SEARCH_LIMIT", 15),
			Timeout:       getEnvDuration("ZEP_TIMEOUT", 5*time.Second),
			RatePerSecond: getEnvFloat("ZEP_RATE_PER_SECOND", 10),
			Burst:         getEnvInt("ZEP_BURST", 20),
		},
		PricingCfg: PricingConfig{
			FilePath: getEnvOrDefault("PRICING_CONFIG_PATH", ""),
			Watch:    getEnvBool("PRICING_CONFIG_WATCH", true),
		},
		SiteCfg: SiteConfig{
			BaseURL:     getEnvOrDefault("SITE_BASE_URL", "https://tractorinsurance.quest"),
			StaticPages: getEnvList("SITE_STATIC_PAGES", defaultStaticPages),
		},
	}
}

var defaultStaticPages = []string{
	"",
	"/tractor-insurance",
	"/best-tractor-insurance",
	"/cheap-tractor-insurance",
	"/tractor-insurance-cost",
	"/compare-tractor-insurance",
	"/vintage-tractor-insurance",
	"/compact-tractor-insurance",
	"/utility-tractor-insurance",
	"/farm-tractor-insurance",
	"/mini-tractor-insurance",
	"/garden-tractor-insurance",
	"/ride-on-mower-insurance",
	"/dashboard",
	"/terms-of-service",
	"/privacy-policy",
	"/cookie-policy",
	"/site-map",
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

// getEnvList splits a comma separated value; "" entries are kept so the home page can be listed.
func getEnvList(key string, defaultValue []string) []string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
