package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	DBHost string
	DBPort string
	DBName string
	DBUser string
	DBPass string

	// DBMaxOpenConns is the maximum number of open connections to the database (default 25).
	DBMaxOpenConns int
	// DBMaxIdleConns is the maximum number of idle connections (default 5).
	DBMaxIdleConns int

	// SessionSecret signs the session cookie. When Env is "prod" it must be
	// set and not the default.
	SessionSecret string

	// SessionTTLHours is the server-side session lifetime in hours (default 72).
	SessionTTLHours int

	// SessionPurgeSpec is the cron spec for purging expired sessions (default every 15 minutes).
	SessionPurgeSpec string

	// BcryptCost is the bcrypt cost factor for password hashing (default 10).
	BcryptCost int

	// Env is "dev" (default) or "prod".
	Env string

	// TLSCertFile and TLSKeyFile enable HTTPS when both are set.
	// When empty, the server listens with plain HTTP.
	TLSCertFile string
	TLSKeyFile  string

	// LogFormat is "text" (default) or "json" for structured logging.
	LogFormat string
}

func Load() Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	return Config{
		Port: getEnv("PORT", "8080"),

		DBHost: getEnv("DB_HOST", "localhost"),
		DBPort: getEnv("DB_PORT", "5432"),
		DBName: getEnv("DB_NAME", "notewall"),
		DBUser: getEnv("DB_USER", "notewall"),
		DBPass: getEnv("DB_PASS", "notewall"),

		DBMaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),

		SessionSecret:    getEnv("SESSION_SECRET", "dev-secret"),
		SessionTTLHours:  getEnvInt("SESSION_TTL_HOURS", 72),
		SessionPurgeSpec: getEnv("SESSION_PURGE_SPEC", "@every 15m"),

		BcryptCost: getEnvInt("BCRYPT_COST", 10),

		Env: getEnv("ENV", "dev"),

		TLSCertFile: getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:  getEnv("TLS_KEY_FILE", ""),

		LogFormat: getEnv("LOG_FORMAT", "text"),
	}
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
