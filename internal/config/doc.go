// Package config handles loading and validating application configuration
// from environment variables and optional config files, using viper for
// layered sources and go-playground/validator for struct-tag validation.
package config
