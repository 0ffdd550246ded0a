package server

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Listen    string `yaml:"listen"`
	Store     string `yaml:"store,omitempty"`    // "bolt" (default) or "memory"
	DBPath    string `yaml:"dbpath,omitempty"`   // bolt file
	Resolver  string `yaml:"resolver,omitempty"` // "doh" (default), "plain" or "null"
	DNSServer string `yaml:"dnsserver,omitempty"`
	Secret    string `yaml:"secret,omitempty"`   // key for config replacement
	ConfigID  string `yaml:"configid,omitempty"` // which stored document the feed serves
}

func DefaultConfig() *Config {
	return &Config{
		Listen:   "0.0.0.0:15329",
		Store:    "bolt",
		DBPath:   "addrfeed.db",
		Resolver: "doh",
		ConfigID: "default",
	}
}

// LoadConfig reads a yaml config over the defaults. A missing file just means
// defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
