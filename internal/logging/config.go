package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/regenrek/itmux/internal/runenv"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

type Sink string

const (
	SinkStderr Sink = "stderr"
	SinkFile   Sink = "file"
	SinkNone   Sink = "none"
)

const (
	EnvLogLevel           = "ITMUX_LOG_LEVEL"
	EnvLogFormat          = "ITMUX_LOG_FORMAT"
	EnvLogSink            = "ITMUX_LOG_SINK"
	EnvLogFile            = "ITMUX_LOG_FILE"
	EnvLogAddSource       = "ITMUX_LOG_ADD_SOURCE"
	EnvLogIncludePayloads = "ITMUX_LOG_INCLUDE_PAYLOADS"
	EnvLogMaxSizeMB       = "ITMUX_LOG_MAX_SIZE_MB"
	EnvLogMaxBackups      = "ITMUX_LOG_MAX_BACKUPS"
	EnvLogMaxAgeDays      = "ITMUX_LOG_MAX_AGE_DAYS"
	EnvLogCompress        = "ITMUX_LOG_COMPRESS"
)

type Config struct {
	Level           *string `yaml:"level,omitempty"`
	Format          *string `yaml:"format,omitempty"`
	Sink            *string `yaml:"sink,omitempty"`
	File            *string `yaml:"file,omitempty"`
	AddSource       *bool   `yaml:"add_source,omitempty"`
	IncludePayloads *bool   `yaml:"include_payloads,omitempty"`

	MaxSizeMB  *int  `yaml:"max_size_mb,omitempty"`
	MaxBackups *int  `yaml:"max_backups,omitempty"`
	MaxAgeDays *int  `yaml:"max_age_days,omitempty"`
	Compress   *bool `yaml:"compress,omitempty"`
}

func DefaultConfig(mode Mode) Config {
	// Defaults are selected to be quiet on CLI and informative for the daemon.
	level := "error"
	sink := string(SinkStderr)
	format := string(FormatText)
	addSource := false

	if mode == ModeDaemon {
		level = "info"
		sink = string(SinkFile)
		format = string(FormatJSON)
	}

	maxSizeMB := 20
	maxBackups := 5
	maxAgeDays := 7
	compress := true
	includePayloads := false

	return Config{
		Level:           &level,
		Format:          &format,
		Sink:            &sink,
		AddSource:       &addSource,
		IncludePayloads: &includePayloads,
		MaxSizeMB:       &maxSizeMB,
		MaxBackups:      &maxBackups,
		MaxAgeDays:      &maxAgeDays,
		Compress:        &compress,
	}
}

func (c Config) WithEnv() Config {
	applyString := func(dst **string, env string) {
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			*dst = &v
		}
	}
	applyBool := func(dst **bool, env string) {
		raw := strings.TrimSpace(os.Getenv(env))
		if raw == "" {
			return
		}
		v := !isDisabledString(raw)
		*dst = &v
	}
	applyInt := func(dst **int, env string) {
		raw := strings.TrimSpace(os.Getenv(env))
		if raw == "" {
			return
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return
		}
		*dst = &n
	}

	applyString(&c.Level, EnvLogLevel)
	applyString(&c.Format, EnvLogFormat)
	applyString(&c.Sink, EnvLogSink)
	applyString(&c.File, EnvLogFile)
	applyBool(&c.AddSource, EnvLogAddSource)
	applyBool(&c.IncludePayloads, EnvLogIncludePayloads)
	applyInt(&c.MaxSizeMB, EnvLogMaxSizeMB)
	applyInt(&c.MaxBackups, EnvLogMaxBackups)
	applyInt(&c.MaxAgeDays, EnvLogMaxAgeDays)
	applyBool(&c.Compress, EnvLogCompress)
	return c
}

func (c Config) Normalize() (Config, error) {
	normalizeString := func(s *string) *string {
		if s == nil {
			return nil
		}
		v := strings.ToLower(strings.TrimSpace(*s))
		if v == "" {
			return nil
		}
		return &v
	}
	c.Level = normalizeString(c.Level)
	c.Format = normalizeString(c.Format)
	c.Sink = normalizeString(c.Sink)
	if c.File != nil {
		v := strings.TrimSpace(*c.File)
		if v == "" {
			c.File = nil
		} else {
			c.File = &v
		}
	}
	if c.MaxSizeMB != nil && *c.MaxSizeMB < 0 {
		zero := 0
		c.MaxSizeMB = &zero
	}
	if c.MaxBackups != nil && *c.MaxBackups < 0 {
		zero := 0
		c.MaxBackups = &zero
	}
	if c.MaxAgeDays != nil && *c.MaxAgeDays < 0 {
		zero := 0
		c.MaxAgeDays = &zero
	}
	return c, c.Validate()
}

func (c Config) Validate() error {
	if c.Level != nil {
		switch *c.Level {
		case "debug", "info", "warn", "warning", "error":
		default:
			return fmt.Errorf("logging.level: invalid %q", *c.Level)
		}
	}
	if c.Format != nil {
		switch Format(*c.Format) {
		case FormatText, FormatJSON:
		default:
			return fmt.Errorf("logging.format: invalid %q", *c.Format)
		}
	}
	if c.Sink != nil {
		switch Sink(*c.Sink) {
		case SinkStderr, SinkFile, SinkNone:
		default:
			return fmt.Errorf("logging.sink: invalid %q", *c.Sink)
		}
	}
	return nil
}

// LoadFile reads a YAML logging config from path, overlaying its fields
// onto c. Fields absent from the file are left untouched.
func (c Config) LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("read logging config %q: %w", path, err)
	}
	var fromFile Config
	if err := yaml.Unmarshal(data, &fromFile); err != nil {
		return c, fmt.Errorf("parse logging config %q: %w", path, err)
	}
	return c.overlay(fromFile), nil
}

func (c Config) overlay(with Config) Config {
	if with.Level != nil {
		c.Level = with.Level
	}
	if with.Format != nil {
		c.Format = with.Format
	}
	if with.Sink != nil {
		c.Sink = with.Sink
	}
	if with.File != nil {
		c.File = with.File
	}
	if with.AddSource != nil {
		c.AddSource = with.AddSource
	}
	if with.IncludePayloads != nil {
		c.IncludePayloads = with.IncludePayloads
	}
	if with.MaxSizeMB != nil {
		c.MaxSizeMB = with.MaxSizeMB
	}
	if with.MaxBackups != nil {
		c.MaxBackups = with.MaxBackups
	}
	if with.MaxAgeDays != nil {
		c.MaxAgeDays = with.MaxAgeDays
	}
	if with.Compress != nil {
		c.Compress = with.Compress
	}
	return c
}

// DefaultConfigPath returns where a logging.yml override lives, honoring
// ITMUX_CONFIG_DIR and ITMUX_FRESH_CONFIG the same way runenv's other
// consumers do: ITMUX_CONFIG_DIR wins when set; otherwise fresh-config mode
// returns "" (no error), disabling file loading.
func DefaultConfigPath() (string, error) {
	if dir := runenv.ConfigDir(); dir != "" {
		return filepath.Join(dir, "logging.yml"), nil
	}
	if runenv.FreshConfigEnabled() {
		return "", nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "itmux", "logging.yml"), nil
}

func isDisabledString(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "0", "false", "no", "off":
		return true
	default:
		return false
	}
}
