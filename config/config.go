// Package config provides configuration management for the product catalog
// application. All values come from environment variables, with hardcoded
// local-development defaults. Parsing errors are collected and reported
// together so a misconfigured deployment fails with a single, complete
// message.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// MongoConfig holds document-store connection settings.
type MongoConfig struct {
	URI      string // connection URI, e.g. mongodb://localhost:27017
	Database string // database name
}

// RedisConfig holds key-value cache store connection settings.
// URL takes precedence over Host/Port when set.
type RedisConfig struct {
	URL  string
	Host string
	Port string
}

// Addr returns the host:port address for the Redis client.
func (c *RedisConfig) Addr() string {
	return c.Host + ":" + c.Port
}

// AuthConfig holds authentication-related configuration.
type AuthConfig struct {
	JWTSecret     string        // secret key for signing JWTs
	TokenDuration time.Duration // validity window of issued tokens
}

// CacheConfig holds response-cache settings.
type CacheConfig struct {
	ProductTTL time.Duration // TTL for product listing/search responses
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port string
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string
	Pretty bool
}

// AppConfig is the top-level configuration structure for the application.
type AppConfig struct {
	Mongo  *MongoConfig
	Redis  *RedisConfig
	Auth   *AuthConfig
	Cache  *CacheConfig
	Server *ServerConfig
	Log    *LogConfig
}

// getOptionalEnv returns the value of key, or defaultValue when unset.
func getOptionalEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getOptionalEnvBool parses key as a boolean, defaulting when unset and
// collecting an error on bad input.
func getOptionalEnvBool(key string, defaultValue bool, errs *[]string) bool {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	switch strings.ToLower(valueStr) {
	case "1", "t", "true", "yes":
		return true
	case "0", "f", "false", "no":
		return false
	default:
		*errs = append(*errs, fmt.Sprintf("invalid value for %s: expected boolean, got '%s'", key, valueStr))
		return defaultValue
	}
}

// getOptionalEnvDuration parses key as a time.Duration ("30m", "1h"),
// defaulting when unset and collecting an error on bad input.
func getOptionalEnvDuration(key string, defaultValue time.Duration, errs *[]string) time.Duration {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueDuration, err := time.ParseDuration(valueStr)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("invalid value for %s: expected duration string, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return valueDuration
}

// LoadConfig creates an AppConfig from environment variables.
//
// Every setting has a local-development default, including the JWT secret.
// The default secret is insecure and must be overridden in any real
// deployment; it is kept so a bare `go run .` against local Mongo and Redis
// works out of the box.
func LoadConfig() (*AppConfig, error) {
	var errs []string

	mongo := &MongoConfig{
		URI:      getOptionalEnv("MONGODB_URI", "mongodb://localhost:27017"),
		Database: getOptionalEnv("MONGODB_DB", "product-catalog"),
	}

	redis := &RedisConfig{
		URL:  getOptionalEnv("REDIS_URL", ""),
		Host: getOptionalEnv("REDIS_HOST", "localhost"),
		Port: getOptionalEnv("REDIS_PORT", "6379"),
	}

	auth := &AuthConfig{
		JWTSecret:     getOptionalEnv("JWT_SECRET", "your_jwt_secret"),
		TokenDuration: getOptionalEnvDuration("JWT_TOKEN_DURATION", time.Hour, &errs),
	}

	cache := &CacheConfig{
		ProductTTL: getOptionalEnvDuration("CACHE_PRODUCT_TTL", 30*time.Minute, &errs),
	}

	server := &ServerConfig{
		Port: getOptionalEnv("PORT", "3000"),
	}

	logCfg := &LogConfig{
		Level:  getOptionalEnv("LOG_LEVEL", "info"),
		Pretty: getOptionalEnvBool("LOG_PRETTY", false, &errs),
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration errors:\n- %s", strings.Join(errs, "\n- "))
	}

	return &AppConfig{
		Mongo:  mongo,
		Redis:  redis,
		Auth:   auth,
		Cache:  cache,
		Server: server,
		Log:    logCfg,
	}, nil
}
