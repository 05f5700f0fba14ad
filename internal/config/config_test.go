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
	"os"
	"path/filepath"
	"testing"
)

func setenv(t *testing.T, key, val string) {
	t.Helper()
	old, had := os.LookupEnv(key)
	_ = os.Setenv(key, val)
	t.Cleanup(func() {
		if had {
			_ = os.Setenv(key, old)
		} else {
			_ = os.Unsetenv(key)
		}
	})
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	want := Defaults()
	if cfg.Journal != want.Journal || cfg.Render != want.Render {
		t.Fatalf("defaults not applied: %#v", cfg)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "journal:\n  root_folder: /vault\n  start_of_next_day: 0\nrender:\n  show_media_grid: false\n  workers: 3\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Journal.RootFolder != "/vault" || cfg.Journal.StartOfNextDay != 0 {
		t.Fatalf("journal section not merged: %#v", cfg.Journal)
	}
	if cfg.Journal.DateFormat != Defaults().Journal.DateFormat {
		t.Fatalf("unset date format lost its default: %q", cfg.Journal.DateFormat)
	}
	if cfg.Render.ShowMediaGrid || cfg.Render.Workers != 3 {
		t.Fatalf("render section not merged: %#v", cfg.Render)
	}
}

func TestLoadKeepsMediaGridWhenUnset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("logging:\n  level: DEBUG\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !cfg.Render.ShowMediaGrid || cfg.Journal.StartOfNextDay != 5 {
		t.Fatalf("defaults overwritten by absent keys: %#v", cfg)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("journal: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Defaults()
	cfg.Journal.CustomRootFolder = "Journal"
	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("config mode = %v, want 0600", perm)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got.Journal.CustomRootFolder != "Journal" {
		t.Fatalf("CustomRootFolder = %q", got.Journal.CustomRootFolder)
	}
}

func TestMergeIncludesLogging(t *testing.T) {
	dst := Defaults()
	src := Defaults()
	src.Logging.Level = "debug"
	src.Logging.Format = "json"
	src.Logging.Source = true
	src.Logging.File = "/tmp/yst.log"
	mergeInto(&dst, &src)
	if dst.Logging.Level != "debug" || dst.Logging.Format != "json" || !dst.Logging.Source || dst.Logging.File != "/tmp/yst.log" {
		t.Fatalf("logging fields not merged correctly: %#v", dst.Logging)
	}
}

func TestEnvOverrides(t *testing.T) {
	setenv(t, EnvVault, "/env/vault")
	setenv(t, EnvStartOfNextDay, "3")
	setenv(t, EnvDateFormat, "YYYY")
	setenv(t, EnvLogLevel, "error")
	setenv(t, EnvLogSource, "1")
	cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Journal.RootFolder != "/env/vault" || cfg.Journal.StartOfNextDay != 3 || cfg.Journal.DateFormat != "YYYY" {
		t.Fatalf("journal env overrides not applied: %#v", cfg.Journal)
	}
	if cfg.Logging.Level != "error" || !cfg.Logging.Source {
		t.Fatalf("logging env overrides not applied: %#v", cfg.Logging)
	}
}

func TestEnvStartOfNextDayOutOfRange(t *testing.T) {
	setenv(t, EnvStartOfNextDay, "30")
	cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Journal.StartOfNextDay != 5 {
		t.Fatalf("StartOfNextDay = %d, want default 5", cfg.Journal.StartOfNextDay)
	}
}

func TestEnvOverrideFor(t *testing.T) {
	setenv(t, EnvVault, "/env/vault")
	if env, ok := EnvOverrideFor("journal.root_folder"); !ok || env != EnvVault {
		t.Fatalf("EnvOverrideFor(journal.root_folder) = %q, %v", env, ok)
	}
	setenv(t, EnvLogFile, "")
	if _, ok := EnvOverrideFor("logging.file"); ok {
		t.Fatalf("empty env var must not count as override")
	}
	if _, ok := EnvOverrideFor("render.workers"); ok {
		t.Fatalf("unknown key reported as overridden")
	}
}
