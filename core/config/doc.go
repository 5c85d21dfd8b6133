// Package config provides configuration management for the festival sync
// service.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file, with defaults declared as struct tags on each
// section's Config type.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings,
// divided into subsections:
//   - Server: HTTP read API settings (port, API key)
//   - Database: relational store connection details
//   - Storage: snapshot object storage credentials and bucket
//   - Log: logging level and format
//   - Events: events API endpoint, paging, delay and region settings
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
