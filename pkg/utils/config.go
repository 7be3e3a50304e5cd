package utils

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Upload   UploadConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Report   ReportConfig
}

type AppConfig struct {
	Name           string
	Port           string
	Debug          bool
	LogPath        string
	HostURL        string
	RequestTimeout time.Duration
	CORSOrigins    []string
	// AdminEmails are promoted to admin at startup so the first admin can exist.
	AdminEmails    []string
}

type DatabaseConfig struct {
	Host         string
	Port         string
	Name         string
	User         string
	Password     string
	MaxConns     int32
	QueryTimeout time.Duration
	// MemoryFallback keeps the server up on an in-process store when Postgres is unreachable.
	MemoryFallback bool
}

type JWTConfig struct {
	Secret      string
	ExpiryHours int
}

type UploadConfig struct {
	Dir        string
	MaxMB      int64
	MaxFiles   int
	Timeout    time.Duration
	PublicPath string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	RoleTTL  time.Duration
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
	Buffer  int
}

type ReportConfig struct {
	RecentLimit int
	CacheTTL    time.Duration
}

// LoadConfig reads .env (when present) then the process environment.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	// Set defaults
	v.SetDefault("APP_NAME", "storefront-api")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("HOST_URL", "http://localhost:8080")
	v.SetDefault("REQUEST_TIMEOUT_SECONDS", 30)
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "sapopsa")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_QUERY_TIMEOUT_SECONDS", 5)
	v.SetDefault("DB_MEMORY_FALLBACK", false)
	v.SetDefault("JWT_EXPIRY_HOURS", 24)
	v.SetDefault("UPLOAD_DIR", "uploads")
	v.SetDefault("MAX_UPLOAD_MB", 10)
	v.SetDefault("MAX_UPLOAD_FILES", 10)
	v.SetDefault("UPLOAD_TIMEOUT_SECONDS", 20)
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("ROLE_CACHE_TTL_SECONDS", 60)
	v.SetDefault("KAFKA_TOPIC", "storefront.orders")
	v.SetDefault("KAFKA_BUFFER", 256)
	v.SetDefault("REPORT_RECENT_LIMIT", 5)
	v.SetDefault("REPORT_CACHE_TTL_SECONDS", 30)

	config := &Config{
		App: AppConfig{
			Name:           v.GetString("APP_NAME"),
			Port:           v.GetString("PORT"),
			Debug:          v.GetBool("DEBUG"),
			LogPath:        v.GetString("LOG_PATH"),
			HostURL:        strings.TrimRight(v.GetString("HOST_URL"), "/"),
			RequestTimeout: seconds(v.GetInt("REQUEST_TIMEOUT_SECONDS")),
			CORSOrigins:    splitList(v.GetString("CORS_ORIGINS")),
			AdminEmails:    splitList(v.GetString("ADMIN_EMAILS")),
		},
		Database: DatabaseConfig{
			Host:           v.GetString("DB_HOST"),
			Port:           v.GetString("DB_PORT"),
			Name:           v.GetString("DB_NAME"),
			User:           v.GetString("DB_USER"),
			Password:       v.GetString("DB_PASS"),
			MaxConns:       v.GetInt32("DB_MAX_CONNS"),
			QueryTimeout:   seconds(v.GetInt("DB_QUERY_TIMEOUT_SECONDS")),
			MemoryFallback: v.GetBool("DB_MEMORY_FALLBACK"),
		},
		JWT: JWTConfig{
			Secret:      v.GetString("JWT_SECRET"),
			ExpiryHours: v.GetInt("JWT_EXPIRY_HOURS"),
		},
		Upload: UploadConfig{
			Dir:        v.GetString("UPLOAD_DIR"),
			MaxMB:      v.GetInt64("MAX_UPLOAD_MB"),
			MaxFiles:   v.GetInt("MAX_UPLOAD_FILES"),
			Timeout:    seconds(v.GetInt("UPLOAD_TIMEOUT_SECONDS")),
			PublicPath: "/images",
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
			RoleTTL:  seconds(v.GetInt("ROLE_CACHE_TTL_SECONDS")),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(v.GetString("KAFKA_BROKERS")),
			Topic:   v.GetString("KAFKA_TOPIC"),
			Buffer:  v.GetInt("KAFKA_BUFFER"),
		},
		Report: ReportConfig{
			RecentLimit: v.GetInt("REPORT_RECENT_LIMIT"),
			CacheTTL:    seconds(v.GetInt("REPORT_CACHE_TTL_SECONDS")),
		},
	}

	if config.JWT.Secret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	return config, nil
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
