package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// config is the YAML configuration of the inspector. Every field may be
// overridden with the corresponding command line flag.
type config struct {
	RPCEndpoint      string `yaml:"rpc_endpoint"`
	RegistryContract string `yaml:"registry_contract"`
	RosterContract   string `yaml:"roster_contract"`
}

func loadConfig(path string) (*config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}

	var cfg config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config unmarshal: %w", err)
	}

	return &cfg, nil
}
