package server

import (
	"github.com/joeshaw/envdecode"
)

// Config holds the server's environment configuration
type Config struct {
	Addr        string `env:"ADDR,default=:8000"`
	FrontendURL string `env:"FRONTEND_URL,default=http://localhost:3000"`
	TableSize   int    `env:"TABLE_SIZE,default=4"`
}

// NewConfig reads the configuration from the environment
func NewConfig() (Config, error) {
	var cfg Config
	err := envdecode.Decode(&cfg)
	return cfg, err
}
