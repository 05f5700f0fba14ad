/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package journal manages entry files in a vault: where a new entry goes, its
// frontmatter, the open/resolved to-do state encoded in the file name, and
// listing entries for the index.
package journal

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	applog "yesterday/internal/log"
)

var (
	ErrEntryExists = errors.New("entry already exists")
	ErrNotEntry    = errors.New("not an entry")
)

const (
	todoSuffix    = " - todo"
	entryExt      = ".md"
	entryNameTime = "2006-01-02 - 15-04-05"
)

// Vault describes where entries live and how new ones are created.
type Vault struct {
	Root             string
	CustomRootFolder string
	// StartOfNextDay is the hour before which an entry still belongs to the previous day.
	StartOfNextDay int
	DateFormat     string
	Now            func() time.Time
}

// Entry is a markdown file in the vault.
type Entry struct {
	// Path is slash-separated and relative to the vault root.
	Path     string
	Open     bool
	Modified time.Time
}

func (v *Vault) now() time.Time {
	if v.Now != nil {
		return v.Now()
	}
	return time.Now()
}

func (v *Vault) base() string {
	if c := strings.Trim(strings.TrimSpace(v.CustomRootFolder), "/"); c != "" {
		return filepath.Join(v.Root, filepath.FromSlash(c))
	}
	return v.Root
}

// DayFolder returns <base>/<decade>s/YYYY/YYYY-MM/YYYY-MM-DD for t, shifted to
// the previous day before StartOfNextDay.
func (v *Vault) DayFolder(t time.Time) string {
	if t.Hour() < v.StartOfNextDay {
		t = t.AddDate(0, 0, -1)
	}
	year := fmt.Sprintf("%04d", t.Year())
	return filepath.Join(v.base(),
		year[:3]+"0s",
		year,
		t.Format("2006-01"),
		t.Format("2006-01-02"),
	)
}

// CreateEntry writes a new entry stamped with the current time and returns its path.
func (v *Vault) CreateEntry() (string, error) {
	l := applog.WithOperation(applog.WithComponent("journal"), "create")
	now := v.now()
	dir := v.DayFolder(now)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create day folder: %w", err)
	}
	path := filepath.Join(dir, now.Format(entryNameTime)+entryExt)

	header, err := Frontmatter{Date: FormatDate(now, v.DateFormat)}.Marshal()
	if err != nil {
		return "", err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return "", fmt.Errorf("%s: %w", path, ErrEntryExists)
	}
	if err != nil {
		return "", fmt.Errorf("create entry: %w", err)
	}
	if _, err := f.Write(header); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("write entry: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close entry: %w", err)
	}
	l.Info("entry created", slog.String("path", path))
	return path, nil
}

// IsOpen reports whether a file name marks an open (to-do) entry.
func IsOpen(name string) bool {
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	return strings.Contains(strings.ToLower(base), "todo")
}

// ToggleTodo adds or removes the " - todo" suffix of an entry's file name and
// returns the new path.
func ToggleTodo(path string) (string, error) {
	if !strings.EqualFold(filepath.Ext(path), entryExt) {
		return "", fmt.Errorf("%s: %w", path, ErrNotEntry)
	}
	dir := filepath.Dir(path)
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(filepath.Base(path), ext)
	if strings.HasSuffix(base, todoSuffix) {
		base = strings.TrimSuffix(base, todoSuffix)
	} else {
		base += todoSuffix
	}
	next := filepath.Join(dir, base+ext)
	if _, err := os.Stat(next); err == nil {
		return "", fmt.Errorf("%s: %w", next, ErrEntryExists)
	}
	if err := os.Rename(path, next); err != nil {
		return "", fmt.Errorf("rename entry: %w", err)
	}
	applog.WithOperation(applog.WithComponent("journal"), "toggle").Info("entry toggled",
		slog.String("from", path), slog.String("to", next))
	return next, nil
}

// Scan lists every markdown file below the vault root. Hidden directories are skipped.
func (v *Vault) Scan() ([]Entry, error) {
	var out []Entry
	err := filepath.WalkDir(v.Root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != v.Root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(p), entryExt) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(v.Root, p)
		if err != nil {
			return err
		}
		out = append(out, Entry{Path: filepath.ToSlash(rel), Open: IsOpen(p), Modified: info.ModTime()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan vault: %w", err)
	}
	return out, nil
}
