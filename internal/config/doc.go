// Package config defines the application configuration structure and the
// loading logic that populates it from environment variables, an optional
// .env file, and an optional YAML config file.
package config
