// Package config defines the application configuration structure and
// loading logic based on viper.
package config
