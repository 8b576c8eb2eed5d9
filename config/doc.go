// Package config loads client configuration from a YAML file, a .env file
// and the environment.
//
// Environment variables override file values. A key's variable is its path
// upper-cased with dots replaced by underscores, so console.base_url is read
// from CONSOLE_BASE_URL.
//
//	var cfg config.ClientConfig
//	if err := config.LoadConfig("consolectl", &cfg); err != nil {
//		return err
//	}
//	cfg.ApplyDefaults()
package config
