package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/gatekeeper/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk shape of the configuration. Durations use
// timex.Duration, so files may give "15m" or integer nanoseconds. Absent keys
// keep their current values.
type FileConfig struct {
	EndpointAddrGRPC      *string         `json:"endpoint_addr_grpc" yaml:"endpoint_addr_grpc"`
	EndpointAddrHTTP      *string         `json:"endpoint_addr_http" yaml:"endpoint_addr_http"`
	MetricsAddr           *string         `json:"metrics_addr" yaml:"metrics_addr"`
	DatabaseDSN           *string         `json:"database_dsn" yaml:"database_dsn"`
	TokenTTL              *timex.Duration `json:"token_ttl" yaml:"token_ttl"`
	PasswordHashAlgorithm *string         `json:"password_hash_algorithm" yaml:"password_hash_algorithm"`
	PasswordPepper        *string         `json:"password_pepper" yaml:"password_pepper"`
	SeedDemoUsers         *bool           `json:"seed_demo_users" yaml:"seed_demo_users"`
	StoreConnectTimeout   *timex.Duration `json:"store_connect_timeout" yaml:"store_connect_timeout"`
	LogLevel              *string         `json:"log_level" yaml:"log_level"`
}

// parseFile overlays cfg with the file at path. The format follows the
// extension: .yaml and .yml are YAML, anything else is JSON. An empty path
// is a no-op.
func parseFile(cfg *Config, path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	fc.apply(cfg)
	return nil
}

func (fc *FileConfig) apply(cfg *Config) {
	setString(&cfg.EndpointAddrGRPC, fc.EndpointAddrGRPC)
	setString(&cfg.EndpointAddrHTTP, fc.EndpointAddrHTTP)
	setString(&cfg.MetricsAddr, fc.MetricsAddr)
	setString(&cfg.DatabaseDSN, fc.DatabaseDSN)
	setString(&cfg.PasswordHashAlgorithm, fc.PasswordHashAlgorithm)
	setString(&cfg.PasswordPepper, fc.PasswordPepper)
	setString(&cfg.LogLevel, fc.LogLevel)
	if fc.TokenTTL != nil {
		cfg.TokenTTL = fc.TokenTTL.Duration
	}
	if fc.StoreConnectTimeout != nil {
		cfg.StoreConnectTimeout = fc.StoreConnectTimeout.Duration
	}
	if fc.SeedDemoUsers != nil {
		cfg.SeedDemoUsers = *fc.SeedDemoUsers
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
