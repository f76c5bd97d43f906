package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ayusman/gestr/internal/gesture"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should be valid: %v", err)
	}
	if cfg.StaticWindow != 10 {
		t.Errorf("StaticWindow = %d, want 10", cfg.StaticWindow)
	}
	if cfg.Recognizer != gesture.RecognizerNone {
		t.Errorf("Recognizer = %q, want none", cfg.Recognizer)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gestr.json")
	raw := `{
		"addr": "127.0.0.1:4000",
		"tolerance": 0.02,
		"trim_static": true,
		"recognizer": "param",
		"parameters": [
			{"name": "x0", "spec": "fing_x 0"},
			{"name": "spread", "spec": "fing_dist 0 1"}
		]
	}`
	if err := os.WriteFile(path, []byte(raw), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Addr != "127.0.0.1:4000" || cfg.Tolerance != 0.02 || !cfg.TrimStatic {
		t.Errorf("unexpected config %+v", cfg)
	}
	// Unset fields keep their defaults
	if cfg.StaticWindow != 10 {
		t.Errorf("StaticWindow = %d, want default 10", cfg.StaticWindow)
	}
	if len(cfg.Parameters) != 2 || cfg.Parameters[1].Spec != "fing_dist 0 1" {
		t.Errorf("Parameters = %+v", cfg.Parameters)
	}
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}
	if cfg.Addr != Defaults().Addr {
		t.Errorf("Addr = %q, want default", cfg.Addr)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestParse_UnknownField(t *testing.T) {
	if _, err := Parse([]byte(`{"adr": ":1"}`)); err == nil {
		t.Error("expected error for unknown field")
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"zero tolerance", `{"tolerance": 0}`},
		{"small window", `{"static_window": 1}`},
		{"unknown recognizer", `{"recognizer": "hmm"}`},
		{"empty addr", `{"addr": ""}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.raw)); err == nil {
				t.Errorf("Parse(%s) should fail", tt.raw)
			}
		})
	}
}

func TestParse_BadParameter(t *testing.T) {
	_, err := Parse([]byte(`{"parameters": [{"name": "x", "spec": "fing_q 0"}]}`))
	if !errors.Is(err, gesture.ErrUnknownParameter) {
		t.Errorf("error = %v, want ErrUnknownParameter", err)
	}
}
