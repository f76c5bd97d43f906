// Package config loads the gestr configuration file.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ayusman/gestr/internal/gesture"
	"github.com/ayusman/gestr/internal/touch"
)

// Config holds every setting of the gestr process.
type Config struct {
	// Addr is the HTTP listen address serving the API and the ingest socket.
	Addr string `json:"addr"`
	// DBPath is the SQLite file receiving finalized samples. Empty disables persistence.
	DBPath string `json:"db_path"`
	// Tolerance is the positional tolerance for static detection.
	Tolerance float64 `json:"tolerance"`
	// StaticWindow is the number of trailing frames checked for a settled tail.
	StaticWindow int `json:"static_window"`
	// TrimStatic compacts held poses while recording.
	TrimStatic bool `json:"trim_static"`
	// Recognizer selects the recognizer: "none" or "param".
	Recognizer string `json:"recognizer"`
	// Parameters lists the named feature extractors, in order.
	Parameters []gesture.NamedSpec `json:"parameters"`
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Addr:         ":3333",
		DBPath:       defaultDBPath(),
		Tolerance:    gesture.DefaultTolerance,
		StaticWindow: touch.DefaultStaticWindow,
		Recognizer:   gesture.RecognizerNone,
	}
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".gestr", "gestr.db")
}

// Load reads the JSON file at path over the defaults. Unknown fields are rejected.
// An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()

	if err := decode(f, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Parse decodes raw JSON over the defaults.
func Parse(raw []byte) (Config, error) {
	cfg := Defaults()
	if err := decode(bytes.NewReader(raw), &cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func decode(r io.Reader, cfg *Config) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	return dec.Decode(cfg)
}

// Validate reports every invalid setting.
func (c Config) Validate() error {
	var errs []error
	if c.Addr == "" {
		errs = append(errs, errors.New("addr must not be empty"))
	}
	if c.Tolerance <= 0 {
		errs = append(errs, fmt.Errorf("tolerance must be positive, got %g", c.Tolerance))
	}
	if c.StaticWindow < 2 {
		errs = append(errs, fmt.Errorf("static_window must be at least 2, got %d", c.StaticWindow))
	}
	switch c.Recognizer {
	case "", gesture.RecognizerNone, gesture.RecognizerParam:
	default:
		errs = append(errs, fmt.Errorf("unknown recognizer %q", c.Recognizer))
	}
	if _, err := gesture.NewRegistry(c.Parameters); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
