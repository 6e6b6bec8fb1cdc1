// Package config loads the faber service configuration.
//
// It uses Viper to read a YAML, JSON or TOML file and godotenv to read a
// .env file, then overlays environment variables on the result.
//
// # Usage
//
//	var cfg config.Config
//	err := config.LoadConfig("faber", &cfg, config.WithConfigFile("config.yml"))
//	cfg.ApplyDefaults()
//	err = cfg.Validate()
//
// Environment variables map onto nested keys by their underscore-separated
// parts (e.g., SERVER_PORT sets server.port).
package config
