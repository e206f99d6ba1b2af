package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv   string
	LogLevel string

	HTTPPort  int
	RedisAddr string
	MySQLDSN  string

	// ServiceFee is the flat per-order fee added to every total.
	ServiceFee int64
}

func Load() Config {
	// Optional; env vars win over .env values.
	_ = godotenv.Load()

	return Config{
		AppEnv:     getEnv("APP_ENV", "dev"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		HTTPPort:   getEnvInt("HTTP_PORT", 8080),
		RedisAddr:  getEnv("REDIS_ADDR", "localhost:6379"),
		MySQLDSN:   getEnv("MYSQL_DSN", "root:root@tcp(localhost:3306)/storefront?parseTime=true"),
		ServiceFee: getEnvInt64("SERVICE_FEE", 20),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getEnvInt64(key string, def int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return def
	}
	return n
}
