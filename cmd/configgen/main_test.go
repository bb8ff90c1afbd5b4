package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteThenValidateTemplates(t *testing.T) {
	dir := t.TempDir()
	for _, kind := range []string{"config", "fixture"} {
		path := filepath.Join(dir, kind+".toml")
		var stdout, stderr bytes.Buffer
		if code := run([]string{"--kind", kind, "-o", path}, &stdout, &stderr); code != 0 {
			t.Fatalf("write %s exit=%d stderr=%s", kind, code, stderr.String())
		}
		if code := run([]string{"--kind", kind, "--validate", "-i", path}, &stdout, &stderr); code != 0 {
			t.Fatalf("validate %s exit=%d stderr=%s", kind, code, stderr.String())
		}
		if !strings.Contains(stdout.String(), "validated "+kind) {
			t.Fatalf("unexpected output: %s", stdout.String())
		}
		if code := run([]string{"--kind", kind, "-o", path}, &stdout, &stderr); code != 1 {
			t.Fatalf("expected refusal to overwrite %s, exit=%d", kind, code)
		}
	}
}

func TestValidateRejectsBrokenFixture(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixture.toml")
	body := "[[players]]\nid = 1\nname = \"Alice\"\n\n[[cards]]\nid = 1\nname = \"Island\"\nzone = \"Hand\"\nowner = 7\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	var stdout, stderr bytes.Buffer
	if code := run([]string{"--kind", "fixture", "--validate", "-i", path}, &stdout, &stderr); code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(stderr.String(), "unknown owner 7") {
		t.Fatalf("unexpected stderr: %s", stderr.String())
	}
}

func TestUnknownKind(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"--kind", "ghost", "--validate"}, &stdout, &stderr); code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
}
