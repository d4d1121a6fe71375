package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zoobzio/transcode"
)

// DefaultPath is the config file read when --config is not given.
const DefaultPath = "transcode.yml"

// Config represents the top-level transcode.yml configuration
type Config struct {
	Version  string          `yaml:"version"`
	Prime    *PrimeConfig    `yaml:"prime,omitempty"`
	MIDI     *MIDIConfig     `yaml:"midi,omitempty"`
	QR       *QRConfig       `yaml:"qr,omitempty"`
	Digest   string          `yaml:"digest,omitempty"` // sha256 (default), blake2b, sha3
	Pipeline *PipelineConfig `yaml:"pipeline,omitempty"`
	Report   *ReportConfig   `yaml:"report,omitempty"`
	Log      *LogConfig      `yaml:"log,omitempty"`
}

// PrimeConfig specifies prime codec limits
type PrimeConfig struct {
	MaxPayload uint64 `yaml:"max_payload,omitempty"` // largest payload_len decode accepts, bytes
}

// MIDIConfig specifies MIDI codec output
type MIDIConfig struct {
	Mode         string `yaml:"mode,omitempty"`           // raw or musical
	TicksPerNote uint32 `yaml:"ticks_per_note,omitempty"` // spacing of data notes
	Velocity     uint8  `yaml:"velocity,omitempty"`       // 1-127
}

// QRConfig specifies QR image rendering
type QRConfig struct {
	ModuleScale int `yaml:"module_scale,omitempty"` // pixels per module
}

// PipelineConfig specifies pipeline defaults
type PipelineConfig struct {
	Steps       string `yaml:"steps,omitempty"`       // e.g. "prime,midi"
	Concurrency int    `yaml:"concurrency,omitempty"` // batch runs in flight, 0 = unbounded
}

// ReportConfig specifies how run reports are written
type ReportConfig struct {
	Format string `yaml:"format,omitempty"` // json, yaml, msgpack, bson, xml
}

// LogConfig specifies logging
type LogConfig struct {
	Level  string `yaml:"level,omitempty"`  // debug, info, warn, error
	Format string `yaml:"format,omitempty"` // text or json
}

var reportFormats = map[string]bool{
	"json":    true,
	"yaml":    true,
	"msgpack": true,
	"bson":    true,
	"xml":     true,
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	c := &Config{Version: "1.0"}
	c.applyDefaults()
	return c
}

// applyDefaults fills every unset section.
func (c *Config) applyDefaults() {
	if c.Prime == nil {
		c.Prime = &PrimeConfig{}
	}
	if c.Prime.MaxPayload == 0 {
		c.Prime.MaxPayload = transcode.DefaultMaxPrimePayload
	}

	if c.MIDI == nil {
		c.MIDI = &MIDIConfig{}
	}
	if c.MIDI.Mode == "" {
		c.MIDI.Mode = string(transcode.MIDIRaw)
	}
	if c.MIDI.TicksPerNote == 0 {
		c.MIDI.TicksPerNote = 120
	}
	if c.MIDI.Velocity == 0 {
		c.MIDI.Velocity = 100
	}

	if c.QR == nil {
		c.QR = &QRConfig{}
	}
	if c.QR.ModuleScale == 0 {
		c.QR.ModuleScale = 8
	}

	if c.Digest == "" {
		c.Digest = string(transcode.DigestSHA256)
	}

	if c.Pipeline == nil {
		c.Pipeline = &PipelineConfig{}
	}
	if c.Pipeline.Steps == "" {
		c.Pipeline.Steps = "prime,midi"
	}

	if c.Report == nil {
		c.Report = &ReportConfig{}
	}
	if c.Report.Format == "" {
		c.Report.Format = "json"
	}

	if c.Log == nil {
		c.Log = &LogConfig{}
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate applies defaults, then performs strict validation
func (c *Config) Validate() error {
	if c.Version != "1.0" {
		return fmt.Errorf("unsupported version: %s (expected: 1.0)", c.Version)
	}

	c.applyDefaults()

	if !transcode.IsValidMIDIMode(transcode.MIDIMode(c.MIDI.Mode)) {
		return fmt.Errorf("midi.mode must be 'raw' or 'musical', got '%s'", c.MIDI.Mode)
	}
	if c.MIDI.Velocity > 127 {
		return fmt.Errorf("midi.velocity must be 1-127, got %d", c.MIDI.Velocity)
	}
	if c.QR.ModuleScale < 1 {
		return fmt.Errorf("qr.module_scale must be >= 1, got %d", c.QR.ModuleScale)
	}
	if !transcode.IsValidDigestAlgo(transcode.DigestAlgo(c.Digest)) {
		return fmt.Errorf("digest must be sha256, blake2b, or sha3, got '%s'", c.Digest)
	}
	if _, err := transcode.ParseSpec(c.Pipeline.Steps); err != nil {
		return fmt.Errorf("pipeline.steps: %w", err)
	}
	if c.Pipeline.Concurrency < 0 {
		return fmt.Errorf("pipeline.concurrency must be >= 0, got %d", c.Pipeline.Concurrency)
	}
	if !reportFormats[c.Report.Format] {
		return fmt.Errorf("report.format must be json, yaml, msgpack, bson, or xml, got '%s'", c.Report.Format)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("log.format must be 'text' or 'json', got '%s'", c.Log.Format)
	}

	return nil
}

// Load reads and validates a config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// LoadOrDefault loads path, falling back to Default when path is the
// implicit DefaultPath and the file does not exist.
func LoadOrDefault(path string, explicit bool) (*Config, error) {
	cfg, err := Load(path)
	if err != nil && !explicit && errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// ParseLevel converts a level name into a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown level '%s'", s)
	}
}

// MIDIOptions translates the midi section into codec options.
func (c *Config) MIDIOptions() []transcode.MIDIOption {
	return []transcode.MIDIOption{
		transcode.WithMode(transcode.MIDIMode(c.MIDI.Mode)),
		transcode.WithTicksPerNote(c.MIDI.TicksPerNote),
		transcode.WithVelocity(c.MIDI.Velocity),
	}
}

// Registry builds a codec registry from the config.
func (c *Config) Registry() (*transcode.Registry, error) {
	return transcode.NewRegistry(
		transcode.NewPrimeCodec(transcode.WithMaxPayload(c.Prime.MaxPayload)),
		transcode.NewMIDICodec(c.MIDIOptions()...),
		transcode.NewQRCodec(transcode.WithModuleScale(c.QR.ModuleScale)),
	)
}

// Hasher returns the configured digest hasher.
func (c *Config) Hasher() (transcode.Hasher, error) {
	return transcode.NewHasher(transcode.DigestAlgo(c.Digest))
}

// Service builds a transcode service from the config.
func (c *Config) Service() (*transcode.Service, error) {
	registry, err := c.Registry()
	if err != nil {
		return nil, err
	}
	hasher, err := c.Hasher()
	if err != nil {
		return nil, err
	}
	return transcode.NewService(transcode.WithRegistry(registry), transcode.WithHasher(hasher)), nil
}
