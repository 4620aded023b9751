// Package config provides application configuration management following SOLID principles.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config defines the application configuration interface.
// Following Interface Segregation Principle.
type Config interface {
	GetServerPort() string
	GetEnvironment() string
	GetLogLevel() string
	IsProduction() bool
}

// ServerConfig interface for server-specific configuration.
type ServerConfig interface {
	GetServerPort() string
	GetReadTimeout() time.Duration
	GetWriteTimeout() time.Duration
	GetIdleTimeout() time.Duration
}

// SecurityConfig interface for security-related configuration.
type SecurityConfig interface {
	GetJWTSecret() string
	GetSessionExpiration() time.Duration
}

// CacheConfig interface for cache-related configuration.
type CacheConfig interface {
	GetRedisAddr() string
	GetRedisPassword() string
	GetRedisDB() int
	CacheEnabled() bool
}

// AppConfig implements all configuration interfaces.
type AppConfig struct {
	serverPort        string
	environment       string
	logLevel          string
	jwtSecret         string
	redisAddr         string
	redisPassword     string
	redisDB           int
	readTimeout       time.Duration
	writeTimeout      time.Duration
	idleTimeout       time.Duration
	sessionExpiration time.Duration
}

// NewConfig creates a new configuration instance with default values
// and overrides from environment variables.
func NewConfig() *AppConfig {
	return &AppConfig{
		serverPort:        getEnvString("SERVER_PORT", "8080"),
		environment:       getEnvString("ENVIRONMENT", "development"),
		logLevel:          getEnvString("LOG_LEVEL", "info"),
		jwtSecret:         getEnvString("JWT_SECRET", generateDefaultJWTSecret()),
		redisAddr:         getEnvString("REDIS_ADDR", ""),
		redisPassword:     getEnvString("REDIS_PASSWORD", ""),
		redisDB:           getEnvInt("REDIS_DB", 0),
		readTimeout:       getEnvDuration("READ_TIMEOUT", "15s"),
		writeTimeout:      getEnvDuration("WRITE_TIMEOUT", "15s"),
		idleTimeout:       getEnvDuration("IDLE_TIMEOUT", "60s"),
		sessionExpiration: getEnvDuration("SESSION_EXPIRATION", "30m"),
	}
}

// GetServerPort returns the server port configuration.
func (c *AppConfig) GetServerPort() string {
	return c.serverPort
}

// GetEnvironment returns the application environment configuration.
func (c *AppConfig) GetEnvironment() string {
	return c.environment
}

// GetLogLevel returns the log level configuration.
func (c *AppConfig) GetLogLevel() string {
	return c.logLevel
}

// IsProduction returns true if the application is running in production.
func (c *AppConfig) IsProduction() bool {
	return c.environment == "production"
}

// GetReadTimeout returns the HTTP read timeout.
func (c *AppConfig) GetReadTimeout() time.Duration {
	return c.readTimeout
}

// GetWriteTimeout returns the HTTP write timeout.
func (c *AppConfig) GetWriteTimeout() time.Duration {
	return c.writeTimeout
}

// GetIdleTimeout returns the HTTP idle timeout.
func (c *AppConfig) GetIdleTimeout() time.Duration {
	return c.idleTimeout
}

// GetJWTSecret returns the JWT secret configuration.
func (c *AppConfig) GetJWTSecret() string {
	return c.jwtSecret
}

// GetSessionExpiration returns how long a caregiver session stays valid.
func (c *AppConfig) GetSessionExpiration() time.Duration {
	return c.sessionExpiration
}

// GetRedisAddr returns the Redis address; empty means the in-memory cache.
func (c *AppConfig) GetRedisAddr() string {
	return c.redisAddr
}

// GetRedisPassword returns the Redis password.
func (c *AppConfig) GetRedisPassword() string {
	return c.redisPassword
}

// GetRedisDB returns the Redis database index.
func (c *AppConfig) GetRedisDB() int {
	return c.redisDB
}

// CacheEnabled reports whether a Redis cache is configured.
func (c *AppConfig) CacheEnabled() bool {
	return c.redisAddr != ""
}

// Validate checks that the configuration is usable.
func (c *AppConfig) Validate() error {
	if c.serverPort == "" {
		return fmt.Errorf("server port is required")
	}
	if _, err := strconv.Atoi(c.serverPort); err != nil {
		return fmt.Errorf("server port must be numeric: %w", err)
	}
	if c.jwtSecret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if c.IsProduction() && len(c.jwtSecret) < 32 {
		return fmt.Errorf("JWT secret must be at least 32 characters in production")
	}
	if c.sessionExpiration <= 0 {
		return fmt.Errorf("session expiration must be positive")
	}
	return nil
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key, defaultValue string) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		parsed, _ = time.ParseDuration(defaultValue)
	}
	return parsed
}

// generateDefaultJWTSecret produces a random development-only secret so a
// missing JWT_SECRET never silently means a guessable one.
func generateDefaultJWTSecret() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		// rand.Read on supported platforms does not fail; keep a marker value
		// so Validate still catches the production case.
		return "development-only-secret"
	}
	return hex.EncodeToString(buf)
}
