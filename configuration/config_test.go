package configuration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/willibrandon/tap"
	"github.com/willibrandon/tap/core"
	"github.com/willibrandon/tap/sinks"
)

const jsonConfig = `{
	"Tap": {
		"Log": true,
		"Level": "Information",
		"Label": "value",
		"Properties": {"service": "demo"},
		"TypeNames": {"IncludePackage": true, "PackageDepth": 1},
		"WriteTo": [{"Name": "Memory"}]
	}
}`

const yamlConfig = `
Tap:
  Level: warn
  Label: seen
  Properties:
    service: demo
  WriteTo:
    - Name: Memory
    - Name: Console
      Args:
        output: stderr
        showProperties: true
`

func TestLoadFromJSON(t *testing.T) {
	config, err := LoadFromJSON([]byte(jsonConfig))
	if err != nil {
		t.Fatalf("LoadFromJSON() error = %v", err)
	}

	if !config.LogEnabled() {
		t.Error("expected Log enabled")
	}
	if config.Tap.Level != "Information" {
		t.Errorf("expected Information level, got %q", config.Tap.Level)
	}
	want := []SinkConfiguration{{Name: "Memory"}}
	if diff := cmp.Diff(want, config.Tap.WriteTo); diff != "" {
		t.Errorf("WriteTo mismatch (-want +got):\n%s", diff)
	}
	if config.Tap.TypeNames == nil || !config.Tap.TypeNames.IncludePackage {
		t.Errorf("expected type name options, got %+v", config.Tap.TypeNames)
	}
}

func TestLoadFromYAML(t *testing.T) {
	config, err := LoadFromYAML([]byte(yamlConfig))
	if err != nil {
		t.Fatalf("LoadFromYAML() error = %v", err)
	}

	if !config.LogEnabled() {
		t.Error("expected Log to default to enabled")
	}
	if len(config.Tap.WriteTo) != 2 {
		t.Fatalf("expected 2 sinks, got %d", len(config.Tap.WriteTo))
	}
	console := config.Tap.WriteTo[1]
	if console.Name != "Console" || GetString(console.Args, "output", "") != "stderr" {
		t.Errorf("unexpected console sink %+v", console)
	}
	if !GetBool(console.Args, "showProperties", false) {
		t.Error("expected showProperties true")
	}
}

func TestLoadDefaults(t *testing.T) {
	config, err := LoadFromJSON([]byte(`{}`))
	if err != nil {
		t.Fatalf("LoadFromJSON() error = %v", err)
	}
	if config.Tap.Level != "Debug" {
		t.Errorf("expected default level Debug, got %q", config.Tap.Level)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := LoadFromJSON([]byte(`{"Tap":`)); err == nil || !strings.Contains(err.Error(), "failed to parse JSON") {
		t.Errorf("expected JSON parse error, got %v", err)
	}
	if _, err := LoadFromYAML([]byte("Tap: [unclosed")); err == nil || !strings.Contains(err.Error(), "failed to parse YAML") {
		t.Errorf("expected YAML parse error, got %v", err)
	}
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected missing file error")
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "tap.yaml")
	if err := os.WriteFile(yamlPath, []byte(yamlConfig), 0o644); err != nil {
		t.Fatal(err)
	}
	config, err := LoadFromFile(yamlPath)
	if err != nil {
		t.Fatalf("LoadFromFile(yaml) error = %v", err)
	}
	if config.Tap.Label != "seen" {
		t.Errorf("expected label seen, got %q", config.Tap.Label)
	}

	jsonPath := filepath.Join(dir, "tap.json")
	if err := os.WriteFile(jsonPath, []byte(jsonConfig), 0o644); err != nil {
		t.Fatal(err)
	}
	config, err = LoadFromFile(jsonPath)
	if err != nil {
		t.Fatalf("LoadFromFile(json) error = %v", err)
	}
	if config.Tap.Label != "value" {
		t.Errorf("expected label value, got %q", config.Tap.Label)
	}
}

func TestApplyEnvironment(t *testing.T) {
	tests := []struct {
		name  string
		value string
		set   bool
		want  bool
	}{
		{"unset keeps config", "", false, true},
		{"false disables", "false", true, false},
		{"off disables", "OFF", true, false},
		{"padded no disables", " no ", true, false},
		{"true enables", "true", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &Configuration{}
			applyEnvironment(config, func(string) (string, bool) { return tt.value, tt.set })
			if got := config.LogEnabled(); got != tt.want {
				t.Errorf("LogEnabled() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]core.Level{
		"verbose":     core.VerboseLevel,
		"Debug":       core.DebugLevel,
		"information": core.InformationLevel,
		"info":        core.InformationLevel,
		"WARN":        core.WarningLevel,
		"error":       core.ErrorLevel,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		if err != nil {
			t.Errorf("ParseLevel(%q) error = %v", in, err)
		}
		if got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestBuild(t *testing.T) {
	memory := sinks.NewMemorySink()
	b := NewBuilder()
	b.RegisterSink("Memory", func(map[string]any) (core.Sink, error) { return memory, nil })

	config, err := LoadFromJSON([]byte(jsonConfig))
	if err != nil {
		t.Fatal(err)
	}
	tp, err := b.Build(config)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if got := tap.Pass(tp, 7); got != 7 {
		t.Errorf("Pass(7) = %d", got)
	}

	event := memory.LastEvent()
	if event == nil {
		t.Fatal("expected an event")
	}
	if event.Level != core.InformationLevel {
		t.Errorf("expected Information, got %v", event.Level)
	}
	if event.Label != "value" {
		t.Errorf("expected label value, got %q", event.Label)
	}
	if event.Properties["service"] != "demo" {
		t.Errorf("expected service property, got %v", event.Properties)
	}
}

func TestBuildDisabled(t *testing.T) {
	memory := sinks.NewMemorySink()
	b := NewBuilder()
	b.RegisterSink("Memory", func(map[string]any) (core.Sink, error) { return memory, nil })

	disabled := false
	config := &Configuration{Tap: TapConfiguration{
		Log:     &disabled,
		WriteTo: []SinkConfiguration{{Name: "Memory"}},
	}}
	tp, err := b.Build(config)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if tp.Enabled() {
		t.Error("expected disabled tapper")
	}
	tap.Pass(tp, "x")
	if memory.Count() != 0 {
		t.Errorf("expected no events, got %d", memory.Count())
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name   string
		config Configuration
		want   string
	}{
		{
			name:   "unknown sink",
			config: Configuration{Tap: TapConfiguration{WriteTo: []SinkConfiguration{{Name: "Kafka"}}}},
			want:   "unknown sink: Kafka",
		},
		{
			name:   "bad level",
			config: Configuration{Tap: TapConfiguration{Level: "loud"}},
			want:   "invalid level",
		},
		{
			name: "bad console output",
			config: Configuration{Tap: TapConfiguration{WriteTo: []SinkConfiguration{
				{Name: "Console", Args: map[string]any{"output": "printer"}},
			}}},
			want: "unknown output: printer",
		},
		{
			name: "bad zap preset",
			config: Configuration{Tap: TapConfiguration{WriteTo: []SinkConfiguration{
				{Name: "Zap", Args: map[string]any{"preset": "chatty"}},
			}}},
			want: "unknown zap preset",
		},
		{
			name: "bad zap level",
			config: Configuration{Tap: TapConfiguration{WriteTo: []SinkConfiguration{
				{Name: "Zap", Args: map[string]any{"level": "loud"}},
			}}},
			want: "invalid zap level",
		},
		{
			name: "bad slog format",
			config: Configuration{Tap: TapConfiguration{WriteTo: []SinkConfiguration{
				{Name: "Slog", Args: map[string]any{"format": "xml"}},
			}}},
			want: "unknown slog format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBuilder().Build(&tt.config)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestDefaultSinkFactories(t *testing.T) {
	config := &Configuration{Tap: TapConfiguration{WriteTo: []SinkConfiguration{
		{Name: "Console", Args: map[string]any{"output": "stderr"}},
		{Name: "Zap", Args: map[string]any{"preset": "nop"}},
		{Name: "Slog", Args: map[string]any{"format": "json", "output": "stderr"}},
		{Name: "Memory"},
	}}}

	options, err := NewBuilder().Options(config)
	if err != nil {
		t.Fatalf("Options() error = %v", err)
	}
	// WithLog plus one WithSink per sink.
	if len(options) != 5 {
		t.Errorf("expected 5 options, got %d", len(options))
	}
}

func TestCreateTapperFromYAML(t *testing.T) {
	tp, err := CreateTapperFromYAML([]byte("Tap:\n  Log: false\n"))
	if err != nil {
		t.Fatalf("CreateTapperFromYAML() error = %v", err)
	}
	if tp.Enabled() {
		t.Error("expected disabled tapper")
	}

	if _, err := CreateTapperFromJSON([]byte(`{"Tap":{"Level":"loud"}}`)); err == nil {
		t.Error("expected error for bad level")
	}
}

func TestBuildNilConfiguration(t *testing.T) {
	if _, err := NewBuilder().Build(nil); err == nil {
		t.Error("expected error for nil configuration")
	}
	if _, err := NewBuilder().Options(nil); err == nil {
		t.Error("expected error for nil configuration")
	}
}

func TestBuildClosesSinksOnError(t *testing.T) {
	memory := sinks.NewMemorySink()
	builder := NewBuilder()
	builder.RegisterSink("Tracked", func(map[string]any) (core.Sink, error) {
		return memory, nil
	})

	config := &Configuration{Tap: TapConfiguration{WriteTo: []SinkConfiguration{
		{Name: "Tracked"},
		{Name: "Kafka"},
	}}}

	_, err := builder.Build(config)
	if err == nil {
		t.Fatal("expected error for unknown sink")
	}
	if !strings.Contains(err.Error(), "unknown sink: Kafka") {
		t.Errorf("unexpected error: %v", err)
	}
	if !memory.Closed() {
		t.Error("expected sink built before the failure to be closed")
	}
}

func TestZapSinkCloseFromYAML(t *testing.T) {
	// Zap defaults to stderr, whose Sync fails on terminals and pipes.
	tp, err := CreateTapperFromYAML([]byte("Tap:\n  WriteTo:\n    - Name: Zap\n"))
	if err != nil {
		t.Fatalf("CreateTapperFromYAML() error = %v", err)
	}
	tap.Pass(tp, 10)
	if err := tp.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
