package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	User     UserConfig     `mapstructure:"user" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// Storage drivers supported by DatabaseConfig.Driver.
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	Driver string `mapstructure:"driver" validate:"required,oneof=postgres memory"`
	// URL is required when Driver is postgres.
	URL string `mapstructure:"url" validate:"omitempty,url"`
}

// UserConfig contains the business rules applied to user profiles.
type UserConfig struct {
	// MinAge is the minimum age, in whole years, required to create a user.
	MinAge int `mapstructure:"min_age" validate:"gte=0,lte=150"`
}
