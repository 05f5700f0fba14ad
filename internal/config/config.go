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
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// AppConfig is the user-editable configuration persisted to a YAML file in the user scope.
// Environment variables are treated as read-only overrides at runtime.
//
// config_version: bump when the structure changes in a backward-incompatible way.

type JournalConfig struct {
	// RootFolder is the vault directory.
	RootFolder string `yaml:"root_folder"`
	// CustomRootFolder is a vault-relative folder that holds the day folders.
	CustomRootFolder string `yaml:"custom_root_folder"`
	StartOfNextDay   int    `yaml:"start_of_next_day"`
	DateFormat       string `yaml:"date_prop_format"`
}

type RenderConfig struct {
	ShowMediaGrid bool `yaml:"show_media_grid"`
	Workers       int  `yaml:"workers"` // 0 means GOMAXPROCS
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

type AppConfig struct {
	ConfigVersion int           `yaml:"config_version"`
	Journal       JournalConfig `yaml:"journal"`
	Render        RenderConfig  `yaml:"render"`
	Logging       LoggingConfig `yaml:"logging"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		Journal:       JournalConfig{RootFolder: ".", StartOfNextDay: 5, DateFormat: "YYYY-MM-DD HH:mm:ss Z"},
		Render:        RenderConfig{ShowMediaGrid: true},
		Logging:       LoggingConfig{Level: "info", Format: "console"},
	}
}

// Env var names used as overrides.
const (
	EnvVault          = "YST_VAULT"
	EnvStartOfNextDay = "YST_START_OF_NEXT_DAY"
	EnvDateFormat     = "YST_DATE_FORMAT"
	// EnvLogLevel Logging envs
	EnvLogLevel  = "YST_LOG_LEVEL"
	EnvLogFormat = "YST_LOG_FORMAT"
	EnvLogSource = "YST_LOG_SOURCE"
	EnvLogFile   = "YST_LOG_FILE"
)

// ConfigPath returns the per-user config file path.
func ConfigPath() (string, error) {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" { // fallback
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "Yesterday")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "Yesterday")
	default: // linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			base = filepath.Join(xdg, "yesterday")
		} else {
			base = filepath.Join(os.Getenv("HOME"), ".config", "yesterday")
		}
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the config file at path (the per-user file when path is empty),
// applies defaults and merges environment overrides. A missing file is not an error.
func Load(path string) (AppConfig, error) {
	cfg := Defaults()
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return cfg, err
		}
		path = p
	}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("read config: %w", err)
	default:
		// unset keys keep their defaults
		fileCfg := AppConfig{
			Journal: JournalConfig{StartOfNextDay: -1},
			Render:  RenderConfig{ShowMediaGrid: cfg.Render.ShowMediaGrid},
		}
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
		mergeInto(&cfg, &fileCfg)
	}
	applyEnvOverrides(&cfg)
	return cfg, nil
}

// Save writes the config YAML to path (the per-user file when path is empty).
func Save(cfg AppConfig, path string) error {
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if v := strings.TrimSpace(src.Journal.RootFolder); v != "" {
		dst.Journal.RootFolder = v
	}
	if v := strings.TrimSpace(src.Journal.CustomRootFolder); v != "" {
		dst.Journal.CustomRootFolder = v
	}
	if src.Journal.StartOfNextDay >= 0 && src.Journal.StartOfNextDay < 24 {
		dst.Journal.StartOfNextDay = src.Journal.StartOfNextDay
	}
	if strings.TrimSpace(src.Journal.DateFormat) != "" {
		dst.Journal.DateFormat = src.Journal.DateFormat
	}
	// booleans: copy directly from src (file) so user preferences persist
	dst.Render.ShowMediaGrid = src.Render.ShowMediaGrid
	if src.Render.Workers > 0 {
		dst.Render.Workers = src.Render.Workers
	}
	// logging
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

func truthy(v string) bool {
	lv := strings.ToLower(v)
	return lv == "1" || lv == "true" || lv == "on" || lv == "yes"
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvVault)); v != "" {
		cfg.Journal.RootFolder = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvStartOfNextDay)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 && n < 24 {
			cfg.Journal.StartOfNextDay = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvDateFormat)); v != "" {
		cfg.Journal.DateFormat = v
	}
	// logging overrides
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		cfg.Logging.Source = truthy(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

var envKeys = map[string]string{
	"journal.root_folder":       EnvVault,
	"journal.start_of_next_day": EnvStartOfNextDay,
	"journal.date_prop_format":  EnvDateFormat,
	"logging.level":             EnvLogLevel,
	"logging.format":            EnvLogFormat,
	"logging.source":            EnvLogSource,
	"logging.file":              EnvLogFile,
}

// EnvOverrideFor returns the env var name if the field is overridden by environment variables.
func EnvOverrideFor(key string) (string, bool) {
	env, ok := envKeys[key]
	if !ok || os.Getenv(env) == "" {
		return "", false
	}
	return env, true
}
