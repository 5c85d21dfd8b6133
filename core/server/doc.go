// Package server holds the HTTP read API configuration.
//
// The serve command handles the actual server startup; this package only
// defines the configuration structure (port and optional API key) embedded
// by core/config.
package server
