// Package config provides configuration management for the pokemon service.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file (loaded with godotenv).
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: bind host, HTTP port and whether cleaning runs on start
//   - Database: driver (sqlite, mysql), SQLite path or MySQL connection details
//   - Log: logging level and format
//   - Lookup: PokeAPI base URL and request timeout
//   - Storage: S3/MinIO credentials and bucket for cleaning reports
//
// Defaults come from the `default` struct tags of each subsection. Environment
// variables map onto nested keys, e.g. DATABASE_PATH -> database.path.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
