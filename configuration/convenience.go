package configuration

import (
	"fmt"

	"github.com/willibrandon/tap"
)

// CreateTapperFromFile creates a Tapper from a JSON or YAML configuration file.
func CreateTapperFromFile(filename string) (*tap.Tapper, error) {
	config, err := LoadFromFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return NewBuilder().Build(config)
}

// CreateTapperFromJSON creates a Tapper from JSON configuration data.
func CreateTapperFromJSON(data []byte) (*tap.Tapper, error) {
	config, err := LoadFromJSON(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	return NewBuilder().Build(config)
}

// CreateTapperFromYAML creates a Tapper from YAML configuration data.
func CreateTapperFromYAML(data []byte) (*tap.Tapper, error) {
	config, err := LoadFromYAML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	return NewBuilder().Build(config)
}
