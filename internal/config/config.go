package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/forgesync/internal/logging"
	"github.com/danmuck/forgesync/internal/protocol"
	"github.com/danmuck/forgesync/internal/protocol/frame"
)

// SyncConfig selects how sync messages are encoded and bounded.
type SyncConfig struct {
	Backend         protocol.Backend
	Compression     bool
	Checksum        bool
	MaxPayloadBytes uint64
	MaxDecodedBytes uint64
	LogLevel        string
}

type fileConfig struct {
	Backend         string `toml:"backend"`
	Compression     bool   `toml:"compression"`
	Checksum        bool   `toml:"checksum"`
	MaxPayloadBytes int64  `toml:"max_payload_bytes"`
	MaxDecodedBytes int64  `toml:"max_decoded_bytes"`
	LogLevel        string `toml:"log_level"`
}

func DefaultConfig() SyncConfig {
	limits := frame.DefaultLimits()
	return SyncConfig{
		Backend:         protocol.BackendTLV,
		Checksum:        true,
		MaxPayloadBytes: limits.MaxPayloadBytes,
		MaxDecodedBytes: limits.MaxDecodedBytes,
		LogLevel:        "info",
	}
}

// Load applies the keys defined in path on top of DefaultConfig.
func Load(path string) (SyncConfig, error) {
	cfg := DefaultConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return SyncConfig{}, fmt.Errorf("load sync config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return SyncConfig{}, fmt.Errorf("sync config %s: unknown key %q", path, undecoded[0].String())
	}

	if meta.IsDefined("backend") {
		b, err := protocol.ParseBackend(raw.Backend)
		if err != nil {
			return SyncConfig{}, fmt.Errorf("parse backend: %w", err)
		}
		cfg.Backend = b
	}

	if meta.IsDefined("compression") {
		cfg.Compression = raw.Compression
	}

	if meta.IsDefined("checksum") {
		cfg.Checksum = raw.Checksum
	}

	if meta.IsDefined("max_payload_bytes") {
		if raw.MaxPayloadBytes <= 0 {
			return SyncConfig{}, fmt.Errorf("max_payload_bytes must be positive")
		}
		cfg.MaxPayloadBytes = uint64(raw.MaxPayloadBytes)
	}

	if meta.IsDefined("max_decoded_bytes") {
		if raw.MaxDecodedBytes <= 0 {
			return SyncConfig{}, fmt.Errorf("max_decoded_bytes must be positive")
		}
		cfg.MaxDecodedBytes = uint64(raw.MaxDecodedBytes)
	}

	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}

	if err := Validate(cfg); err != nil {
		return SyncConfig{}, err
	}
	return cfg, nil
}

func Validate(cfg SyncConfig) error {
	if _, err := protocol.ParseBackend(string(cfg.Backend)); err != nil {
		return fmt.Errorf("sync config: %w", err)
	}
	if cfg.MaxPayloadBytes == 0 || cfg.MaxDecodedBytes == 0 {
		return fmt.Errorf("sync config: limits must be positive")
	}
	if cfg.MaxDecodedBytes < cfg.MaxPayloadBytes && !cfg.Compression {
		return fmt.Errorf("sync config: max_decoded_bytes below max_payload_bytes without compression")
	}
	if _, ok := logging.ParseLevel(cfg.LogLevel); !ok {
		return fmt.Errorf("sync config: unknown log_level %q", cfg.LogLevel)
	}
	return nil
}
