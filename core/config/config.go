package config

import (
	"path/filepath"
	"reflect"
	"strings"

	"data-extractor/core/database"
	"data-extractor/core/logger"
	"data-extractor/core/server"
	"data-extractor/core/storage"
	"data-extractor/feature/sinks/truetabs"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// Each section is owned by the package that consumes it.
type Config struct {
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Database holds relational pool settings.
	Database database.Config `mapstructure:"database"`
	// Storage holds configuration for object storage (CSV inputs, workbook uploads).
	Storage storage.Config `mapstructure:"storage"`
	// TrueTabs holds the remote datasheet API settings.
	TrueTabs truetabs.Config `mapstructure:"truetabs"`
}

// LoadConfig loads configuration from environment variables and an optional
// .env file in path. Environment keys map to nested keys with underscores
// (SERVER_PORT -> server.port, TRUETABS_API_TOKEN -> truetabs.api_token).
func LoadConfig(path string) (*Config, error) {
	// Missing .env is normal in production.
	_ = godotenv.Overload(filepath.Join(path, ".env"))

	v := viper.New()
	bindValues(v, reflect.TypeOf(Config{}), "")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues registers every leaf key with its `default` tag so that
// AutomaticEnv can resolve it during Unmarshal.
func bindValues(v *viper.Viper, t reflect.Type, prefix string) {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, field.Type, key)
			continue
		}

		v.SetDefault(key, field.Tag.Get("default"))
	}
}
