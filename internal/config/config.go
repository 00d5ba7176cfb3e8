// internal/config/config.go
package config

import "github.com/piclens/piclens/internal/scanner"

type Config struct {
	// Scanning
	MaxDepth int `yaml:"max_depth"`

	// Chooser
	StartDir string `yaml:"start_dir"`

	// Dev HTTP shim
	ServeAddr string `yaml:"serve_addr"`
}

func NewConfig() *Config {
	return &Config{
		MaxDepth:  scanner.DefaultMaxDepth,
		ServeAddr: "127.0.0.1:8787",
	}
}
