/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"yesterday/internal/journal"
	applog "yesterday/internal/log"
)

// EntryText loads the searchable text and the frontmatter date of an entry
// given its vault-relative path.
type EntryText func(rel string) (date, text string, err error)

// SyncStats summarises one SyncEntries run.
type SyncStats struct {
	Added     int
	Updated   int
	Removed   int
	Unchanged int
}

// SyncEntries brings the index in line with a vault scan. Entries whose
// modification time and open state are unchanged are not re-read.
func SyncEntries(ctx context.Context, db *sql.DB, entries []journal.Entry, load EntryText) (SyncStats, error) {
	var st SyncStats
	known := map[string]string{}
	rows, err := db.QueryContext(ctx, `SELECT path, updated_at || ':' || open FROM entries`)
	if err != nil {
		return st, fmt.Errorf("list entries: %w", err)
	}
	for rows.Next() {
		var path, stamp string
		if err := rows.Scan(&path, &stamp); err != nil {
			_ = rows.Close()
			return st, fmt.Errorf("scan entry: %w", err)
		}
		known[path] = stamp
	}
	if err := rows.Close(); err != nil {
		return st, err
	}
	if err := rows.Err(); err != nil {
		return st, err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return st, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		seen[e.Path] = true
		updated := e.Modified.UTC().Format(time.RFC3339Nano)
		stamp, ok := known[e.Path]
		if ok && stamp == updated+":"+boolInt(e.Open) {
			st.Unchanged++
			continue
		}
		date, text, err := load(e.Path)
		if err != nil {
			return st, fmt.Errorf("load %s: %w", e.Path, err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO entries(path, open, updated_at, date) VALUES(?,?,?,?)
			ON CONFLICT(path) DO UPDATE SET open=excluded.open, updated_at=excluded.updated_at, date=excluded.date`,
			e.Path, e.Open, updated, date); err != nil {
			return st, fmt.Errorf("upsert entry: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM fts_entries WHERE path=?`, e.Path); err != nil {
			return st, fmt.Errorf("clear entry text: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO fts_entries(path, text) VALUES(?,?)`, e.Path, text); err != nil {
			return st, fmt.Errorf("index entry text: %w", err)
		}
		if ok {
			st.Updated++
		} else {
			st.Added++
		}
	}
	for path := range known {
		if seen[path] {
			continue
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM entries WHERE path=?`, path); err != nil {
			return st, fmt.Errorf("remove entry: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM fts_entries WHERE path=?`, path); err != nil {
			return st, fmt.Errorf("remove entry text: %w", err)
		}
		st.Removed++
	}
	if err := tx.Commit(); err != nil {
		return st, fmt.Errorf("commit: %w", err)
	}
	applog.WithOperation(applog.WithComponent("storage"), "sync").Info("index synced",
		slog.Int("added", st.Added), slog.Int("updated", st.Updated),
		slog.Int("removed", st.Removed), slog.Int("unchanged", st.Unchanged))
	return st, nil
}

// CountOpen returns the number of indexed entries still marked as to-do.
func CountOpen(ctx context.Context, db *sql.DB) (int, error) {
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM entries WHERE open=1`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count open entries: %w", err)
	}
	return n, nil
}

func boolInt(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
