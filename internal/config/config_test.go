/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zalando/go-keyring"

	"gradientdesigner/internal/domain"
)

type memStore map[string]string

func (m memStore) Get(service, key string) (string, error) {
	v, ok := m[service+"/"+key]
	if !ok {
		return "", ErrNoToken
	}
	return v, nil
}
func (m memStore) Set(service, key, value string) error { m[service+"/"+key] = value; return nil }
func (m memStore) Delete(service, key string) error {
	if _, ok := m[service+"/"+key]; !ok {
		return ErrNoToken
	}
	delete(m, service+"/"+key)
	return nil
}

// isolate points the config dir at a temp dir and stubs the keychain.
func isolate(t *testing.T) memStore {
	t.Helper()
	t.Setenv(EnvConfigDir, t.TempDir())
	store := memStore{}
	t.Cleanup(SetTokenStore(store))
	return store
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	isolate(t)
	cfg, tok, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if tok != "" {
		t.Fatalf("expected no token, got %q", tok)
	}
	if cfg.Designer.DeleteThreshold != 50 || cfg.Designer.MarkerWidth != 12 || cfg.Designer.MarkerHeight != 18 {
		t.Fatalf("designer defaults wrong: %+v", cfg.Designer)
	}
	g := cfg.Designer.DefaultGradient()
	if len(g.Stops) != 2 || g.Stops[0].Colour != domain.Blue || g.Stops[1].Colour != domain.Red {
		t.Fatalf("default gradient should be blue to red: %+v", g.Stops)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := isolate(t)
	cfg := Defaults()
	cfg.General.Theme = "dark"
	cfg.Designer.DeleteThreshold = 80
	cfg.Designer.RadialPreview = false
	cfg.Designer.DefaultStops = []string{"0:#000000", "0.5:#ff000080", "1:#ffffff"}
	if err := Save(cfg, "s3cret"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if store[keyringService+"/"+keyringToken] != "s3cret" {
		t.Fatalf("token not stored in keychain")
	}
	path, _ := ConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	if strings.Contains(string(data), "s3cret") {
		t.Fatalf("token leaked into config file")
	}

	got, tok, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tok != "s3cret" || got.General.Theme != "dark" || got.Designer.DeleteThreshold != 80 || got.Designer.RadialPreview {
		t.Fatalf("round trip mismatch: %+v tok=%q", got, tok)
	}
	g := got.Designer.DefaultGradient()
	if len(g.Stops) != 3 || g.Stops[1].Colour != (domain.Colour{R: 255, A: 128}) {
		t.Fatalf("default stops not loaded: %+v", g.Stops)
	}
}

func TestLoadReportsMalformedFile(t *testing.T) {
	isolate(t)
	path, _ := ConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("designer: [not, a, map"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, _, err := Load()
	if err == nil {
		t.Fatalf("expected parse error")
	}
	if cfg.Designer.DeleteThreshold != 50 {
		t.Fatalf("defaults should survive a bad file")
	}
}

func TestEnvOverridesTelemetry(t *testing.T) {
	isolate(t)
	t.Setenv(EnvTelemetryOptIn, "true")
	t.Setenv(EnvTelemetryURL, "https://example.test/events")
	t.Setenv(EnvTelemetryTimeout, "250")
	cfg, _, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !cfg.General.TelemetryOptIn || cfg.Telemetry.EventsURL != "https://example.test/events" {
		t.Fatalf("telemetry env overrides not applied: %+v", cfg)
	}
	if cfg.Telemetry.Timeout().Milliseconds() != 250 {
		t.Fatalf("timeout = %v", cfg.Telemetry.Timeout())
	}
	if env, ok := EnvOverrideFor("telemetry.events_url"); !ok || env != EnvTelemetryURL {
		t.Fatalf("EnvOverrideFor did not report override")
	}
	if _, ok := EnvOverrideFor("telemetry.crash_url"); ok {
		t.Fatalf("crash_url is not overridden")
	}
	if _, ok := EnvOverrideFor("no.such.key"); ok {
		t.Fatalf("unknown key reported as overridden")
	}
}

func TestEnvOverridesDesigner(t *testing.T) {
	isolate(t)
	t.Setenv(EnvDeleteThreshold, "75.5")
	t.Setenv(EnvRadialPreview, "off")
	cfg, _, _ := Load()
	if cfg.Designer.DeleteThreshold != 75.5 || cfg.Designer.RadialPreview {
		t.Fatalf("designer env overrides not applied: %+v", cfg.Designer)
	}
	t.Setenv(EnvDeleteThreshold, "-3")
	cfg, _, _ = Load()
	if cfg.Designer.DeleteThreshold != 50 {
		t.Fatalf("non-positive threshold must be ignored")
	}
}

func TestMergeIncludesLogging(t *testing.T) {
	dst := Defaults()
	src := Defaults()
	src.Logging.Level = " DEBUG "
	src.Logging.Format = "json"
	src.Logging.Source = true
	src.Logging.File = "/tmp/gd.log"
	mergeInto(&dst, &src)
	if dst.Logging.Level != "debug" || dst.Logging.Format != "json" || !dst.Logging.Source || dst.Logging.File != "/tmp/gd.log" {
		t.Fatalf("logging fields not merged correctly: %#v", dst.Logging)
	}
}

func TestEnvOverridesLogging(t *testing.T) {
	isolate(t)
	t.Setenv(EnvLogLevel, "error")
	t.Setenv(EnvLogFormat, "json")
	t.Setenv(EnvLogSource, "1")
	t.Setenv(EnvLogFile, "/var/tmp/gd.log")
	cfg, _, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Logging.Level != "error" || cfg.Logging.Format != "json" || !cfg.Logging.Source || cfg.Logging.File != "/var/tmp/gd.log" {
		t.Fatalf("env overrides not applied to logging: %#v", cfg.Logging)
	}
}

func TestDefaultGradientSkipsBadStops(t *testing.T) {
	d := DesignerConfig{DefaultStops: []string{"0:#000", "nonsense", "x:#fff", "1:#ffffff"}}
	g := d.DefaultGradient()
	if len(g.Stops) != 2 || g.Stops[0].Colour != domain.Black || g.Stops[1].Colour != domain.White {
		t.Fatalf("unexpected stops: %+v", g.Stops)
	}
	d.DefaultStops = []string{"0.5:#fff"}
	if g := d.DefaultGradient(); g.Stops[0].Colour != domain.Blue {
		t.Fatalf("too few stops should fall back to blue/red")
	}
}

func TestParseStopErrors(t *testing.T) {
	for _, in := range []string{"", "0.5", "a:#fff", "0.5:#ggg"} {
		if _, err := ParseStop(in); err == nil {
			t.Errorf("ParseStop(%q) expected error", in)
		}
	}
}

func TestOSKeyringWithMockProvider(t *testing.T) {
	keyring.MockInit()
	var k osKeyring
	if _, err := k.Get(keyringService, keyringToken); !errors.Is(err, ErrNoToken) {
		t.Fatalf("expected ErrNoToken, got %v", err)
	}
	if err := k.Set(keyringService, keyringToken, "abc"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if v, err := k.Get(keyringService, keyringToken); err != nil || v != "abc" {
		t.Fatalf("Get = %q, %v", v, err)
	}
	t.Cleanup(SetTokenStore(k))
	if err := DeleteToken(); err != nil {
		t.Fatalf("DeleteToken: %v", err)
	}
	if err := DeleteToken(); err != nil {
		t.Fatalf("second DeleteToken should be a no-op: %v", err)
	}
}
