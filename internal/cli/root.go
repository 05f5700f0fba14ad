/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package cli wires the journal, note, dialog, storage and export packages
// into the yesterday command line.
package cli

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"yesterday/internal/config"
	"yesterday/internal/crash"
	"yesterday/internal/journal"
	applog "yesterday/internal/log"
	"yesterday/internal/note"
	"yesterday/internal/storage"
)

// app carries what the subcommands share once flags and config are resolved.
type app struct {
	cfgPath string
	vault   string
	cfg     config.AppConfig
	log     *slog.Logger
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	cmd, _ := newRoot()
	return cmd
}

func newRoot() (*cobra.Command, *app) {
	a := &app{log: applog.WithComponent("cli")}
	root := &cobra.Command{
		Use:   "yesterday",
		Short: "Render and manage a daily journal vault",
		Long: `yesterday renders journal notes written in the Yesterday format:
dialog blocks, media grids, dream callouts, comments and to-do paragraphs.

Examples:
  yesterday new
  yesterday dialog --json < chat.txt
  yesterday render -o ./html "2020s/2024/2024-03/2024-03-09/2024-03-09 - 21-10-00.md"
  yesterday search "harbour OR sailing"
  yesterday export note.md note.pdf`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}
	root.PersistentFlags().StringVar(&a.cfgPath, "config", "", "config file (default is the per-user config.yaml)")
	root.PersistentFlags().StringVar(&a.vault, "vault", "", "vault root folder, overrides journal.root_folder")

	root.AddCommand(
		a.renderCmd(),
		a.dialogCmd(),
		a.newCmd(),
		a.toggleCmd(),
		a.countCmd(),
		a.searchCmd(),
		a.exportCmd(),
		versionCmd(),
	)
	return root, a
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	cmd, a := newRoot()
	defer crash.Guard(func() string { return a.cfg.Journal.RootFolder })
	if err := cmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return err
	}
	if v := strings.TrimSpace(a.vault); v != "" {
		cfg.Journal.RootFolder = v
	}
	if abs, err := filepath.Abs(cfg.Journal.RootFolder); err == nil {
		cfg.Journal.RootFolder = abs
	}
	a.cfg = cfg
	applog.Init(applog.Options{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: cfg.Logging.Source,
		File:      cfg.Logging.File,
		Console:   cmd.ErrOrStderr(),
	})
	a.log = applog.WithOperation(applog.WithComponent("cli"), cmd.Name())
	a.log.Debug("config resolved", slog.String("vault", cfg.Journal.RootFolder))
	return nil
}

func (a *app) journal() *journal.Vault {
	return &journal.Vault{
		Root:             a.cfg.Journal.RootFolder,
		CustomRootFolder: a.cfg.Journal.CustomRootFolder,
		StartOfNextDay:   a.cfg.Journal.StartOfNextDay,
		DateFormat:       a.cfg.Journal.DateFormat,
	}
}

func (a *app) processor() *note.Processor {
	return note.New(note.Options{
		ShowMediaGrid: a.cfg.Render.ShowMediaGrid,
		VaultRoot:     a.cfg.Journal.RootFolder,
	})
}

// syncedIndex opens the vault index and brings it up to date with the files.
func (a *app) syncedIndex(ctx context.Context) (*sql.DB, error) {
	root := a.cfg.Journal.RootFolder
	if rebuilt, err := storage.DetectAndRebuildIndex(ctx, root); err != nil {
		return nil, err
	} else if rebuilt {
		a.log.Warn("index rebuilt")
	}
	db, err := storage.InitOrOpenIndex(root)
	if err != nil {
		return nil, err
	}
	entries, err := a.journal().Scan()
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	load := func(rel string) (string, string, error) {
		src, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
		if err != nil {
			return "", "", err
		}
		fm, body, err := journal.SplitFrontmatter(src)
		if err != nil {
			// an unreadable header still leaves the text searchable
			return "", string(src), nil
		}
		return fm.Date, string(body), nil
	}
	if _, err := storage.SyncEntries(ctx, db, entries, load); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	b, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return b, nil
}
