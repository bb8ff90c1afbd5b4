package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/danmuck/forgesync/internal/protocol"
	"github.com/danmuck/forgesync/internal/protocol/frame"
)

func TestLoadDefaultsAndOverrides(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "sync.toml"))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Backend != protocol.BackendCBOR {
		t.Fatalf("unexpected backend: %q", cfg.Backend)
	}
	if !cfg.Compression {
		t.Fatalf("expected compression enabled")
	}
	if !cfg.Checksum {
		t.Fatalf("expected default checksum to survive")
	}
	if cfg.MaxPayloadBytes != 1<<20 {
		t.Fatalf("unexpected max payload: %d", cfg.MaxPayloadBytes)
	}
	if cfg.MaxDecodedBytes != frame.DefaultLimits().MaxDecodedBytes {
		t.Fatalf("unexpected max decoded: %d", cfg.MaxDecodedBytes)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("unexpected log level: %q", cfg.LogLevel)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"unknown key":   "backend = \"tlv\"\nbogus = 1\n",
		"bad backend":   "backend = \"json\"\n",
		"zero limit":    "max_payload_bytes = 0\n",
		"bad log level": "log_level = \"loud\"\n",
		"limits order":  "max_payload_bytes = 100\nmax_decoded_bytes = 10\n",
		"syntax":        "backend = \n",
	}
	dir := t.TempDir()
	for name, body := range cases {
		path := filepath.Join(dir, "sync.toml")
		if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
		if _, err := Load(path); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestConfigTemplateMatchesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sync.toml")
	if err := WriteTemplate(path, "config", false); err != nil {
		t.Fatalf("write template: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load template: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Fatalf("template drifted from defaults: %+v", cfg)
	}
	if err := WriteTemplate(path, "config", false); err == nil {
		t.Fatalf("expected refusal to overwrite")
	}
	if err := WriteTemplate(path, "config", true); err != nil {
		t.Fatalf("overwrite template: %v", err)
	}
	if _, err := Template("ghost"); err == nil {
		t.Fatalf("expected unknown template kind error")
	}
}

func TestProtocolOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Backend = protocol.BackendCBOR
	cfg.Compression = true
	opts := cfg.ProtocolOptions()
	if opts.Backend != protocol.BackendCBOR || !opts.Frame.Compress || !opts.Frame.Checksum {
		t.Fatalf("unexpected options: %+v", opts)
	}
	if opts.Frame.Limits != frame.DefaultLimits() {
		t.Fatalf("unexpected limits: %+v", opts.Frame.Limits)
	}
}
