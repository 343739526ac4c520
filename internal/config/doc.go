// Package config loads commitguard settings from a YAML file, the
// environment and an optional .env file.
package config
