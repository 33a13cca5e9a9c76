package config

import (
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	MongoDB  MongoDBConfig
	Admin    AdminConfig
	Sheet    SheetConfig
	Passes   PassConfig
	WhatsApp WhatsAppConfig
	Raffle   RaffleConfig
	LogLevel string
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port         string
	AllowedHosts []string
}

// MongoDBConfig holds MongoDB-specific configuration
type MongoDBConfig struct {
	URI      string
	Database string
}

// AdminConfig holds the static bearer token guarding the admin surface.
// An empty token leaves the admin routes open (local single-device use).
type AdminConfig struct {
	Token string
}

// SheetConfig holds the published-CSV roster export configuration
type SheetConfig struct {
	CSVURL string
}

// PassConfig holds digital-pass configuration. TTLHours is the shared
// expiration window stamped on every transfer or full reset.
type PassConfig struct {
	BaseURL  string
	TTLHours int
}

// WhatsAppConfig holds deep-link configuration
type WhatsAppConfig struct {
	CountryCode string
}

// RaffleConfig holds raffle-specific configuration
type RaffleConfig struct {
	Season string
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	// Set defaults
	setDefaults()

	// Read configuration
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if config file is not found, we'll use environment variables
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	// Unmarshal configuration
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults sets default values for configuration
func setDefaults() {
	viper.SetDefault("Server.Port", "4000")
	viper.SetDefault("Server.AllowedHosts", []string{"localhost:3000"})
	viper.SetDefault("MongoDB.URI", "mongodb://localhost:27017")
	viper.SetDefault("MongoDB.Database", "abonos-riazor")
	viper.SetDefault("Admin.Token", "")
	viper.SetDefault("Sheet.CSVURL", "")
	viper.SetDefault("Passes.BaseURL", "http://localhost:3000")
	viper.SetDefault("Passes.TTLHours", 96)
	viper.SetDefault("WhatsApp.CountryCode", "34")
	viper.SetDefault("Raffle.Season", "2024-25")
	viper.SetDefault("LogLevel", "info")
}
