package config

import (
	"time"

	"github.com/dmitrijs2005/gatekeeper/internal/flagx"
)

// Config holds runtime settings for gatectl.
type Config struct {
	ServerEndpointAddr string
	RequestTimeout     time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.RequestTimeout = 5 * time.Second
}

// LoadConfig builds a Config from defaults, then the JSON file named by
// -c/-config, then flags. It returns the arguments left after the flags,
// which form the command to run.
func LoadConfig(args []string) (*Config, []string, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, flagx.ConfigFile(args)); err != nil {
		return nil, nil, err
	}
	rest, err := parseFlags(cfg, args)
	if err != nil {
		return nil, nil, err
	}
	return cfg, rest, nil
}
