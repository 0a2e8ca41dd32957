// Package config loads application settings with Viper.
//
// Sources, lowest precedence first: `default` struct tags, a .env file in
// the given directory (loaded with godotenv), then process environment.
// Keys are nested by section and addressed in the environment with
// underscores, e.g. DATABASE_TIMEOUT_SECONDS.
//
// # Sections
//
//   - Log: level and format
//   - Server: HTTP port, API key, request deadline
//   - Database: relational pool sizes and connect timeout
//   - Storage: S3/MinIO credentials and upload bucket
//   - TrueTabs: datasheet API base URL, token, field key
//
// Connection strings for sources are not configuration; they arrive with
// each extraction request.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
