package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Cache    CacheConfig    `mapstructure:"cache"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port            int           `mapstructure:"port"             validate:"required,gt=0,lt=65536"`
	LogLevel        string        `mapstructure:"log_level"        validate:"required,oneof=debug info warn error"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"     validate:"gt=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"    validate:"gt=0"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"     validate:"gt=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
	// RateLimitRPS caps accepted requests per second across the process; 0 disables the limiter.
	RateLimitRPS   float64 `mapstructure:"rate_limit_rps"   validate:"gte=0"`
	RateLimitBurst int     `mapstructure:"rate_limit_burst" validate:"gte=1"`
}

// DatabaseConfig selects and configures the cake store backend.
type DatabaseConfig struct {
	// Driver is one of memory, postgres or sqlite.
	Driver string `mapstructure:"driver" validate:"required,oneof=memory postgres sqlite"`
	// URL is a PostgreSQL connection string or an SQLite DSN. Unused for memory.
	URL          string `mapstructure:"url"            validate:"required_unless=Driver memory"`
	MaxOpenConns int    `mapstructure:"max_open_conns" validate:"gte=1"`
	// AutoMigrate applies pending migrations when the server starts.
	AutoMigrate bool `mapstructure:"auto_migrate"`
}

// CacheConfig configures the optional Redis read-through cache.
type CacheConfig struct {
	// RedisAddr is host:port of the Redis server; empty disables caching.
	RedisAddr     string        `mapstructure:"redis_addr"     validate:"omitempty,hostname_port"`
	RedisPassword string        `mapstructure:"redis_password"`
	RedisDB       int           `mapstructure:"redis_db"       validate:"gte=0"`
	TTL           time.Duration `mapstructure:"ttl"            validate:"gt=0"`
}

// Enabled reports whether a Redis address has been configured.
func (c CacheConfig) Enabled() bool {
	return c.RedisAddr != ""
}
