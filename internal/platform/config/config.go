package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the respuestas service.
// Values come from configs/config.defaults.yaml, overridable per key via
// APP_-prefixed environment variables (e.g. APP_SERVER_PORT).
type Config struct {
	ServerPort int    `mapstructure:"SERVER_PORT"`
	LogLevel   string `mapstructure:"LOG_LEVEL"`

	// Firestore credential material. Either point at a service-account
	// credentials file, or supply the three inline fields. With neither,
	// Application Default Credentials are used.
	FirestoreProjectID       string `mapstructure:"FIRESTORE_PROJECT_ID"`
	FirestoreClientEmail     string `mapstructure:"FIRESTORE_CLIENT_EMAIL"`
	FirestorePrivateKey      string `mapstructure:"FIRESTORE_PRIVATE_KEY"`
	FirestoreCredentialsFile string `mapstructure:"FIRESTORE_CREDENTIALS_FILE"`

	// NATSURL is optional; empty disables event publishing.
	NATSURL string `mapstructure:"NATS_URL"`
}

// Load reads configuration for the named service. A missing defaults file is
// not an error; environment variables and baked-in defaults still apply.
func Load(serviceName string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config.defaults")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.SetEnvPrefix("APP")

	v.SetDefault("SERVER_PORT", 3000)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("FIRESTORE_PROJECT_ID", "")
	v.SetDefault("FIRESTORE_CLIENT_EMAIL", "")
	v.SetDefault("FIRESTORE_PRIVATE_KEY", "")
	v.SetDefault("FIRESTORE_CREDENTIALS_FILE", "")
	v.SetDefault("NATS_URL", "")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Printf("Configuration file ('config.defaults.yaml') not found for %s; using defaults and environment variables.", serviceName)
		} else {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
