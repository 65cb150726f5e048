package config

import (
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv     string
	Port       string
	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string
	JWTSecret  string
	LogLevel   string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Lama sesi view (lab order / resep) disimpan sebelum kedaluwarsa.
	SessionTTL time.Duration
	// Nol berarti katalog tes tidak di-cache.
	CatalogCacheTTL time.Duration

	// Branding awal jika tabel Global_Settings masih kosong.
	DefaultLabName string
	DefaultLabLogo string
}

var (
	cfg  *Config
	once sync.Once
)

// LoadConfig membaca .env (jika ada) satu kali dan mengembalikan konfigurasi global.
func LoadConfig() *Config {
	once.Do(func() {
		if err := godotenv.Load(); err != nil {
			log.Warn().Msg(".env file not found, relying on environment variables")
		}
		cfg = FromEnv()
	})
	return cfg
}

// FromEnv builds a Config from the current process environment.
func FromEnv() *Config {
	return &Config{
		AppEnv:          getEnv("APP_ENV", "development"),
		Port:            getEnv("PORT", "8080"),
		DBUser:          os.Getenv("DB_USER"),
		DBPassword:      os.Getenv("DB_PASSWORD"),
		DBHost:          getEnv("DB_HOST", "127.0.0.1"),
		DBPort:          getEnv("DB_PORT", "3306"),
		DBName:          os.Getenv("DB_NAME"),
		JWTSecret:       os.Getenv("JWT_SECRET_KEY"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		RedisDB:         getEnvInt("REDIS_DB", 0),
		SessionTTL:      time.Duration(getEnvInt("SESSION_TTL_MINUTES", 120)) * time.Minute,
		CatalogCacheTTL: time.Duration(getEnvInt("CATALOG_CACHE_SECONDS", 300)) * time.Second,
		DefaultLabName:  os.Getenv("DEFAULT_LAB_NAME"),
		DefaultLabLogo:  os.Getenv("DEFAULT_LAB_LOGO"),
	}
}

func (c *Config) IsDev() bool {
	return c.AppEnv == "development"
}

// RedisEnabled reports whether sessions and the catalog cache should use Redis.
func (c *Config) RedisEnabled() bool {
	return c.RedisAddr != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Warn().Str("key", key).Str("value", v).Msg("invalid integer in environment, using default")
		return fallback
	}
	return n
}
