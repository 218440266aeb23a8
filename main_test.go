package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"rhs/config"
	"rhs/console"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rhs.toml")
	if err := os.WriteFile(path, []byte("directory = \"/srv/www\"\nport = 8080\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig("rhs", path, nil, console.Discard)
	if err != nil || cfg != (config.Config{Directory: "/srv/www", Port: 8080}) {
		t.Fatalf("file only got=%+v err=%v", cfg, err)
	}

	cfg, err = loadConfig("rhs", path, []string{"public", "9000"}, console.Discard)
	if err != nil || cfg != (config.Config{Directory: "public", Port: 9000}) {
		t.Fatalf("args override got=%+v err=%v", cfg, err)
	}

	if _, err := loadConfig("rhs", "", nil, console.Discard); !errors.Is(err, config.ErrUsage) {
		t.Fatalf("no args err=%v want ErrUsage", err)
	}
	if _, err := loadConfig("rhs", filepath.Join(t.TempDir(), "missing.toml"), nil, console.Discard); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}

func TestLoadStatus(t *testing.T) {
	_, usage := loadConfig("rhs", "", nil, console.Discard)
	_, badPort := loadConfig("rhs", "", []string{"public", "http"}, console.Discard)
	_, missing := loadConfig("rhs", filepath.Join(t.TempDir(), "missing.toml"), nil, console.Discard)

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "usage", err: usage, want: 0},
		{name: "invalid port", err: badPort, want: 0},
		{name: "config file", err: missing, want: 1},
	}
	for _, tt := range tests {
		if got := loadStatus(tt.err); got != tt.want {
			t.Fatalf("%s: loadStatus(%v) got=%d want=%d", tt.name, tt.err, got, tt.want)
		}
	}
}
