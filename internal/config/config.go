/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package config loads the user configuration of the gradient designer.
//
// Settings live in a YAML file in the per-user config directory. Environment
// variables are read-only overrides applied on top at runtime; the telemetry
// token is kept in the OS keychain and never written to the file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"gradientdesigner/internal/domain"
)

// config_version: bump when the structure changes in a backward-incompatible way.
const currentVersion = 1

type GeneralConfig struct {
	TelemetryOptIn bool   `yaml:"telemetry_opt_in"`
	Theme          string `yaml:"theme"` // "system" | "light" | "dark"
}

// DesignerConfig sizes the marker track and picks the gradient shown on start.
type DesignerConfig struct {
	MarkerWidth     float32 `yaml:"marker_width"`
	MarkerHeight    float32 `yaml:"marker_height"`
	DeleteThreshold float32 `yaml:"delete_threshold"`
	CheckerSize     int     `yaml:"checker_size"`
	RadialPreview   bool    `yaml:"radial_preview"`
	// DefaultStops are "position:#rrggbb[aa]" pairs, e.g. "0:#0000ff".
	DefaultStops []string `yaml:"default_stops"`
}

type TelemetryConfig struct {
	EventsURL string `yaml:"events_url"`
	CrashURL  string `yaml:"crash_url"`
	TimeoutMs int    `yaml:"timeout_ms"`
	// Token is not stored on disk; it lives in the OS keychain.
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

type AppConfig struct {
	ConfigVersion int             `yaml:"config_version"`
	General       GeneralConfig   `yaml:"general"`
	Designer      DesignerConfig  `yaml:"designer"`
	Telemetry     TelemetryConfig `yaml:"telemetry"`
	Logging       LoggingConfig   `yaml:"logging"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: currentVersion,
		General:       GeneralConfig{TelemetryOptIn: false, Theme: "system"},
		Designer: DesignerConfig{
			MarkerWidth:     12,
			MarkerHeight:    18,
			DeleteThreshold: 50,
			CheckerSize:     10,
			RadialPreview:   true,
			DefaultStops:    []string{"0:#0000ff", "1:#ff0000"},
		},
		Telemetry: TelemetryConfig{TimeoutMs: 1500},
		Logging:   LoggingConfig{Level: "info", Format: "console"},
	}
}

// Env var names used as overrides.
const (
	EnvTelemetryOptIn   = "GD_TELEMETRY_OPT_IN"
	EnvTelemetryURL     = "GD_TELEMETRY_URL"
	EnvCrashURL         = "GD_CRASH_UPLOAD_URL"
	EnvTelemetryTimeout = "GD_TELEMETRY_TIMEOUT_MS"
	EnvTheme            = "GD_THEME"
	EnvDeleteThreshold  = "GD_DELETE_THRESHOLD"
	EnvRadialPreview    = "GD_RADIAL_PREVIEW"
	// EnvLogLevel Logging envs
	EnvLogLevel  = "GD_LOG_LEVEL"
	EnvLogFormat = "GD_LOG_FORMAT"
	EnvLogSource = "GD_LOG_SOURCE"
	EnvLogFile   = "GD_LOG_FILE"
	// EnvConfigDir relocates the config directory, mainly for tests and portable installs.
	EnvConfigDir = "GD_CONFIG_DIR"
)

// ConfigPath returns the per-user config file path.
func ConfigPath() (string, error) {
	var base string
	switch {
	case strings.TrimSpace(os.Getenv(EnvConfigDir)) != "":
		base = strings.TrimSpace(os.Getenv(EnvConfigDir))
	case runtime.GOOS == "windows":
		base = os.Getenv("AppData")
		if base == "" { // fallback
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "GradientDesigner")
	case runtime.GOOS == "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "GradientDesigner")
	default: // linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			base = filepath.Join(xdg, "gradientdesigner")
		} else if home := os.Getenv("HOME"); home != "" {
			base = filepath.Join(home, ".config", "gradientdesigner")
		}
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the user config file (if present), applies defaults and merges
// environment overrides. The telemetry token comes from the keychain and is
// returned separately. A malformed file is reported but the defaults are
// still returned.
func Load() (AppConfig, string, error) {
	cfg := Defaults()
	path, err := ConfigPath()
	if err != nil {
		return cfg, "", err
	}
	var fileErr error
	if data, err := os.ReadFile(path); err == nil {
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			fileErr = fmt.Errorf("parse %s: %w", path, err)
		} else {
			mergeInto(&cfg, &fileCfg)
		}
	}
	applyEnvOverrides(&cfg)
	tok, _ := tokenStore.Get(keyringService, keyringToken)
	return cfg, tok, fileErr
}

// Save writes the user config YAML and persists the token into the keychain (if non-empty).
func Save(cfg AppConfig, token string) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return err
	}
	if token != "" {
		if err := tokenStore.Set(keyringService, keyringToken, token); err != nil {
			return fmt.Errorf("store telemetry token: %w", err)
		}
	}
	return nil
}

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if src.General.Theme != "" {
		dst.General.Theme = src.General.Theme
	}
	// booleans: copy directly from src (file) so user preferences persist
	dst.General.TelemetryOptIn = src.General.TelemetryOptIn

	d, s := &dst.Designer, &src.Designer
	if s.MarkerWidth > 0 {
		d.MarkerWidth = s.MarkerWidth
	}
	if s.MarkerHeight > 0 {
		d.MarkerHeight = s.MarkerHeight
	}
	if s.DeleteThreshold > 0 {
		d.DeleteThreshold = s.DeleteThreshold
	}
	if s.CheckerSize > 0 {
		d.CheckerSize = s.CheckerSize
	}
	d.RadialPreview = s.RadialPreview
	if len(s.DefaultStops) > 0 {
		d.DefaultStops = append([]string(nil), s.DefaultStops...)
	}

	if src.Telemetry.EventsURL != "" {
		dst.Telemetry.EventsURL = src.Telemetry.EventsURL
	}
	if src.Telemetry.CrashURL != "" {
		dst.Telemetry.CrashURL = src.Telemetry.CrashURL
	}
	if src.Telemetry.TimeoutMs != 0 {
		dst.Telemetry.TimeoutMs = src.Telemetry.TimeoutMs
	}

	if strings.TrimSpace(src.Logging.Level) != "" {
		dst.Logging.Level = strings.ToLower(strings.TrimSpace(src.Logging.Level))
	}
	if strings.TrimSpace(src.Logging.Format) != "" {
		dst.Logging.Format = strings.ToLower(strings.TrimSpace(src.Logging.Format))
	}
	dst.Logging.Source = src.Logging.Source
	if strings.TrimSpace(src.Logging.File) != "" {
		dst.Logging.File = strings.TrimSpace(src.Logging.File)
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	if v, ok := lookup(EnvTelemetryOptIn); ok {
		cfg.General.TelemetryOptIn = parseBool(v)
	}
	if v, ok := lookup(EnvTelemetryURL); ok {
		cfg.Telemetry.EventsURL = v
	}
	if v, ok := lookup(EnvCrashURL); ok {
		cfg.Telemetry.CrashURL = v
	}
	if v, ok := lookup(EnvTelemetryTimeout); ok {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Telemetry.TimeoutMs = n
		}
	}
	if v, ok := lookup(EnvTheme); ok {
		cfg.General.Theme = strings.ToLower(v)
	}
	if v, ok := lookup(EnvDeleteThreshold); ok {
		if f, err := strconv.ParseFloat(v, 32); err == nil && f > 0 {
			cfg.Designer.DeleteThreshold = float32(f)
		}
	}
	if v, ok := lookup(EnvRadialPreview); ok {
		cfg.Designer.RadialPreview = parseBool(v)
	}
	// logging overrides
	if v, ok := lookup(EnvLogLevel); ok {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v, ok := lookup(EnvLogFormat); ok {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v, ok := lookup(EnvLogSource); ok {
		cfg.Logging.Source = parseBool(v)
	}
	if v, ok := lookup(EnvLogFile); ok {
		cfg.Logging.File = v
	}
}

var overrideKeys = map[string]string{
	"general.telemetry_opt_in":  EnvTelemetryOptIn,
	"general.theme":             EnvTheme,
	"designer.delete_threshold": EnvDeleteThreshold,
	"designer.radial_preview":   EnvRadialPreview,
	"telemetry.events_url":      EnvTelemetryURL,
	"telemetry.crash_url":       EnvCrashURL,
	"telemetry.timeout_ms":      EnvTelemetryTimeout,
	"logging.level":             EnvLogLevel,
	"logging.format":            EnvLogFormat,
	"logging.source":            EnvLogSource,
	"logging.file":              EnvLogFile,
}

// EnvOverrideFor returns the env var name if the field is overridden by environment variables.
func EnvOverrideFor(key string) (string, bool) {
	env, ok := overrideKeys[key]
	if !ok {
		return "", false
	}
	if _, set := lookup(env); !set {
		return "", false
	}
	return env, true
}

// Timeout returns the telemetry request timeout, falling back to the default.
func (t TelemetryConfig) Timeout() time.Duration {
	if t.TimeoutMs <= 0 {
		return time.Duration(Defaults().Telemetry.TimeoutMs) * time.Millisecond
	}
	return time.Duration(t.TimeoutMs) * time.Millisecond
}

// DefaultGradient parses DefaultStops. Entries that do not parse are skipped;
// when fewer than two remain the built-in blue to red gradient is returned.
func (d DesignerConfig) DefaultGradient() domain.Gradient {
	g := domain.Gradient{Name: "default", Radial: d.RadialPreview}
	for _, s := range d.DefaultStops {
		stop, err := ParseStop(s)
		if err != nil {
			continue
		}
		g.Stops = append(g.Stops, stop)
	}
	if len(g.Stops) < 2 {
		g.Stops = []domain.Stop{{Position: 0, Colour: domain.Blue}, {Position: 1, Colour: domain.Red}}
	}
	return g
}

// ParseStop parses "position:#colour", e.g. "0.5:#ffffff".
func ParseStop(s string) (domain.Stop, error) {
	pos, col, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return domain.Stop{}, fmt.Errorf("stop %q: want position:#colour", s)
	}
	p, err := strconv.ParseFloat(strings.TrimSpace(pos), 64)
	if err != nil {
		return domain.Stop{}, fmt.Errorf("stop %q: %w", s, err)
	}
	c, err := domain.ParseHex(strings.TrimSpace(col))
	if err != nil {
		return domain.Stop{}, fmt.Errorf("stop %q: %w", s, err)
	}
	return domain.Stop{Position: p, Colour: c}, nil
}

func lookup(env string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(env))
	return v, v != ""
}

func parseBool(v string) bool {
	lv := strings.ToLower(strings.TrimSpace(v))
	return lv == "1" || lv == "true" || lv == "on" || lv == "yes"
}
