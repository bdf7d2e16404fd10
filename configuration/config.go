package configuration

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/willibrandon/tap"
	"github.com/willibrandon/tap/core"
)

// TapConfiguration is the declarative form of a tap.Tapper.
type TapConfiguration struct {
	Log        *bool                  `json:"Log,omitempty" yaml:"Log,omitempty"`
	Level      string                 `json:"Level,omitempty" yaml:"Level,omitempty"`
	Label      string                 `json:"Label,omitempty" yaml:"Label,omitempty"`
	Properties map[string]any         `json:"Properties,omitempty" yaml:"Properties,omitempty"`
	TypeNames  *TypeNameConfiguration `json:"TypeNames,omitempty" yaml:"TypeNames,omitempty"`
	WriteTo    []SinkConfiguration    `json:"WriteTo,omitempty" yaml:"WriteTo,omitempty"`
}

// TypeNameConfiguration mirrors tap.TypeNameOptions.
type TypeNameConfiguration struct {
	IncludePackage    bool   `json:"IncludePackage,omitempty" yaml:"IncludePackage,omitempty"`
	PackageDepth      int    `json:"PackageDepth,omitempty" yaml:"PackageDepth,omitempty"`
	Prefix            string `json:"Prefix,omitempty" yaml:"Prefix,omitempty"`
	Suffix            string `json:"Suffix,omitempty" yaml:"Suffix,omitempty"`
	SimplifyAnonymous bool   `json:"SimplifyAnonymous,omitempty" yaml:"SimplifyAnonymous,omitempty"`
}

// SinkConfiguration represents a sink configuration.
type SinkConfiguration struct {
	Name string         `json:"Name" yaml:"Name"`
	Args map[string]any `json:"Args,omitempty" yaml:"Args,omitempty"`
}

// Configuration is the root configuration object.
type Configuration struct {
	Tap TapConfiguration `json:"Tap" yaml:"Tap"`
}

// LogEnabled reports the effective Log setting, true when unset.
func (c *Configuration) LogEnabled() bool {
	return c.Tap.Log == nil || *c.Tap.Log
}

// LoadFromFile loads configuration from a file. Files ending in .yaml or
// .yml are parsed as YAML, everything else as JSON.
func LoadFromFile(filename string) (*Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return LoadFromYAML(data)
	default:
		return LoadFromJSON(data)
	}
}

// LoadFromJSON loads configuration from JSON data.
func LoadFromJSON(data []byte) (*Configuration, error) {
	var config Configuration
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return finish(&config), nil
}

// LoadFromYAML loads configuration from YAML data.
func LoadFromYAML(data []byte) (*Configuration, error) {
	var config Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return finish(&config), nil
}

func finish(config *Configuration) *Configuration {
	if config.Tap.Level == "" {
		config.Tap.Level = "Debug"
	}
	applyEnvironment(config, os.LookupEnv)
	return config
}

// applyEnvironment lets TAP_LOG override the configured Log setting.
func applyEnvironment(config *Configuration, lookup func(string) (string, bool)) {
	v, ok := lookup("TAP_LOG")
	if !ok {
		return
	}
	enabled := tap.ParseLogSetting(v)
	config.Tap.Log = &enabled
}

// ParseLevel parses a level string.
func ParseLevel(levelStr string) (core.Level, error) {
	switch strings.ToLower(levelStr) {
	case "verbose", "vrb":
		return core.VerboseLevel, nil
	case "debug", "dbg":
		return core.DebugLevel, nil
	case "information", "info", "inf":
		return core.InformationLevel, nil
	case "warning", "warn", "wrn":
		return core.WarningLevel, nil
	case "error", "err":
		return core.ErrorLevel, nil
	default:
		return core.DebugLevel, fmt.Errorf("unknown level: %s", levelStr)
	}
}

// GetString gets a string value from configuration args.
func GetString(args map[string]any, key string, defaultValue string) string {
	if v, ok := args[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return defaultValue
}

// GetBool gets a bool value from configuration args.
func GetBool(args map[string]any, key string, defaultValue bool) bool {
	if v, ok := args[key]; ok {
		switch val := v.(type) {
		case bool:
			return val
		case string:
			return strings.ToLower(val) == "true"
		}
	}
	return defaultValue
}
