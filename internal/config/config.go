package config

import (
	"errors"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	MongoDB  MongoDBConfig
	JWT      JWTConfig
	Parser   ParserConfig
	Admin    AdminConfig
	LogLevel string
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port           string
	AllowedOrigins []string
	// MaxUploadBytes caps the size of an uploaded bulletin text file.
	MaxUploadBytes int64
}

// MongoDBConfig holds MongoDB-specific configuration
type MongoDBConfig struct {
	URI      string
	Database string
}

// JWTConfig holds JWT-specific configuration
type JWTConfig struct {
	Secret    string
	ExpiresIn int
}

// ParserConfig holds result parser configuration
type ParserConfig struct {
	// PatternsFile is an optional YAML tier catalog replacing the built-in one.
	PatternsFile string
}

// AdminConfig is the administrator account seeded at startup.
type AdminConfig struct {
	Email    string
	Password string
	Name     string
}

// Load loads configuration from an optional .env file, config files and
// environment variables. Nested keys map to env vars with "_", e.g.
// MONGODB_URI or JWT_SECRET.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// It's okay if config file is not found, we'll use environment variables
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate reports settings the server cannot start without.
func (c *Config) Validate() error {
	errs := []error{c.ValidateStorage()}
	if c.JWT.Secret == "" {
		errs = append(errs, errors.New("JWT.Secret is required"))
	}
	if c.JWT.ExpiresIn <= 0 {
		errs = append(errs, errors.New("JWT.ExpiresIn must be positive"))
	}
	if (c.Admin.Email == "") != (c.Admin.Password == "") {
		errs = append(errs, errors.New("Admin.Email and Admin.Password must be set together"))
	}
	return errors.Join(errs...)
}

// ValidateStorage reports missing database settings. Tools that only read
// and write results need nothing else.
func (c *Config) ValidateStorage() error {
	var errs []error
	if c.MongoDB.URI == "" {
		errs = append(errs, errors.New("MongoDB.URI is required"))
	}
	if c.MongoDB.Database == "" {
		errs = append(errs, errors.New("MongoDB.Database is required"))
	}
	return errors.Join(errs...)
}

// setDefaults sets default values for configuration
func setDefaults(v *viper.Viper) {
	v.SetDefault("Server.Port", "4000")
	v.SetDefault("Server.AllowedOrigins", []string{"http://localhost:3000"})
	v.SetDefault("Server.MaxUploadBytes", 5<<20)
	v.SetDefault("MongoDB.URI", "mongodb://localhost:27017")
	v.SetDefault("MongoDB.Database", "lottery-results")
	v.SetDefault("JWT.Secret", "")
	v.SetDefault("JWT.ExpiresIn", 24*60*60) // 24 hours
	v.SetDefault("Parser.PatternsFile", "")
	v.SetDefault("Admin.Email", "")
	v.SetDefault("Admin.Password", "")
	v.SetDefault("Admin.Name", "Administrator")
	v.SetDefault("LogLevel", "info")
}
