package config

import (
	"log"
	"net"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	DBDriver     string
	DBHost       string
	DBPort       string
	DBUser       string
	DBPassword   string
	DBName       string
	DBSSLMode    string
	SQLitePath   string
	ServerPort   string
	JWTSecret    string
	SessionTTL   time.Duration
	RedisAddr    string
	RedisPass    string
	MediaRoot    string
	NATSURL      string
	MediaBucket  string
	MaxUploadMB  int64
	GinMode      string
	LogLevel     string
	CookieSecure bool
}

func Load() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("⚠️  No .env file found, using system environment variables")
	}

	return &Config{
		DBDriver:     getEnv("DB_DRIVER", DriverPostgres),
		DBHost:       getEnv("DB_HOST", "localhost"),
		DBPort:       getEnv("DB_PORT", "5432"),
		DBUser:       getEnv("DB_USER", "todo_user"),
		DBPassword:   getEnv("DB_PASSWORD", "todo_pass"),
		DBName:       getEnv("DB_NAME", "todo_db"),
		DBSSLMode:    getEnv("DB_SSLMODE", "disable"),
		SQLitePath:   getEnv("SQLITE_PATH", "todo.db"),
		ServerPort:   getEnv("SERVER_PORT", "8080"),
		JWTSecret:    getEnv("JWT_SECRET", "supersecretkey"),
		SessionTTL:   getDuration("SESSION_TTL", 14*24*time.Hour),
		RedisAddr:    getEnv("REDIS_ADDR", ""),
		RedisPass:    getEnv("REDIS_PASSWORD", ""),
		MediaRoot:    getEnv("MEDIA_ROOT", "./media"),
		NATSURL:      getEnv("NATS_URL", ""),
		MediaBucket:  getEnv("MEDIA_BUCKET", "profile-pictures"),
		MaxUploadMB:  int64(getInt("MAX_UPLOAD_MB", 5)),
		GinMode:      getEnv("GIN_MODE", "release"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		CookieSecure: getBool("COOKIE_SECURE", false),
	}
}

// DSN is the connection string handed to the GORM dialector.
func (c *Config) DSN() string {
	if c.DBDriver == DriverSQLite {
		return c.SQLitePath + "?_foreign_keys=on"
	}
	return c.postgresURL("postgres").String()
}

// MigrateURL is the golang-migrate database URL for the configured driver.
func (c *Config) MigrateURL() string {
	if c.DBDriver == DriverSQLite {
		return "sqlite3://" + c.SQLitePath + "?_foreign_keys=on"
	}
	return c.postgresURL("pgx5").String()
}

// postgresURL escapes the credentials and database name, so passwords may
// hold any character.
func (c *Config) postgresURL(scheme string) *url.URL {
	return &url.URL{
		Scheme:   scheme,
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     net.JoinHostPort(c.DBHost, c.DBPort),
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": {c.DBSSLMode}}.Encode(),
	}
}

func (c *Config) MaxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getInt(key string, defaultVal int) int {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return defaultVal
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("⚠️  %s=%q is not an integer, using %d", key, raw, defaultVal)
		return defaultVal
	}
	return v
}

func getBool(key string, defaultVal bool) bool {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return defaultVal
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		log.Printf("⚠️  %s=%q is not a boolean, using %t", key, raw, defaultVal)
		return defaultVal
	}
	return v
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return defaultVal
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("⚠️  %s=%q is not a duration, using %s", key, raw, defaultVal)
		return defaultVal
	}
	return v
}
