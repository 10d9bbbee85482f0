package configloader

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ServerConfig holds the HTTP front-end's listen address and timeouts.
type ServerConfig struct {
	Address       string        `yaml:"address"`
	ReadTimeout   time.Duration `yaml:"readTimeout"`
	RequestBudget time.Duration `yaml:"requestBudget"`
}

// LoggingConfig holds logging-specific configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// IndexerConfig holds the Balancy-style indexer client's configuration.
type IndexerConfig struct {
	BaseURL        string        `yaml:"baseUrl"`
	RequestTimeout time.Duration `yaml:"requestTimeout"`
}

// PerformanceConfig holds concurrency and rate-limiting knobs for the
// provider layer.
type PerformanceConfig struct {
	RPCCallsPerSecond   int           `yaml:"rpcCallsPerSecond"`
	ExternalCallTimeout time.Duration `yaml:"externalCallTimeout"`
}

// Config is the top-level configuration structure.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Logging     LoggingConfig     `yaml:"logging"`
	Indexer     IndexerConfig     `yaml:"indexer"`
	Performance PerformanceConfig `yaml:"performance"`
	// Chains lists the comma-separated chain tags this process registers
	// a provider for at start-up (e.g. "ETHEREUM,POLYGON,BSC"). Every
	// listed chain must have a <CHAIN>_RPC environment variable set.
	Chains string `yaml:"chains"`
}

// Load reads the YAML configuration file from the given path and
// unmarshals it, backfilling defaults for anything left unset.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config data from %s: %w", path, err)
	}

	if cfg.Server.Address == "" {
		cfg.Server.Address = ":8080"
	}
	if cfg.Server.RequestBudget <= 0 {
		cfg.Server.RequestBudget = 30 * time.Second
	}
	if cfg.Performance.ExternalCallTimeout <= 0 {
		cfg.Performance.ExternalCallTimeout = 10 * time.Second
	}
	if cfg.Performance.RPCCallsPerSecond <= 0 {
		cfg.Performance.RPCCallsPerSecond = 20
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "INFO"
	}

	return &cfg, nil
}

// ChainTags parses Chains into its individual, whitespace-trimmed tags.
func ChainTags(cfg *Config) []string {
	if cfg == nil || cfg.Chains == "" {
		return []string{}
	}
	return strings.Split(strings.ReplaceAll(cfg.Chains, " ", ""), ",")
}
