package config

import (
	"os"
	"time"
)

type Config struct {
	ServerURL      string
	DatabasePath   string
	RequestTimeout time.Duration
	KeyFile        string
}

func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.DatabasePath = "lifelog.db"
	c.RequestTimeout = 10 * time.Second
	c.KeyFile = "lifelog.key"
}

// LoadConfig applies defaults, the JSON file and then flags taken from
// os.Args. Malformed input panics.
func LoadConfig() *Config {
	return loadFrom(os.Args[1:])
}

func loadFrom(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	parseFlags(cfg, args)
	return cfg
}
