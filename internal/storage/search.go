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
	"strings"
)

// SearchQuery describes a search request.
// Text uses SQLite FTS5 syntax (simple terms, phrases in quotes, AND/OR/NOT).
// With empty Text the matching entries are listed newest first.
type SearchQuery struct {
	Text     string
	OpenOnly bool
	Limit    int
	Offset   int
}

// SearchResult represents a single match row.
// Snippet is a highlighted excerpt using [ ] markers when Text is set.
type SearchResult struct {
	Path    string
	Open    bool
	Date    string
	Snippet string
}

// Search performs full-text search over the indexed entries.
func Search(ctx context.Context, db *sql.DB, q SearchQuery) ([]SearchResult, error) {
	var args []any
	var sb strings.Builder
	if strings.TrimSpace(q.Text) != "" {
		sb.WriteString("SELECT e.path, e.open, COALESCE(e.date,''), snippet(fts_entries, 1, '[', ']', '…', 10)\n")
		sb.WriteString("FROM fts_entries JOIN entries e ON fts_entries.path = e.path\n")
		sb.WriteString("WHERE fts_entries MATCH ?\n")
		args = append(args, q.Text)
	} else {
		sb.WriteString("SELECT e.path, e.open, COALESCE(e.date,''), ''\n")
		sb.WriteString("FROM entries e\nWHERE 1=1\n")
	}
	if q.OpenOnly {
		sb.WriteString(" AND e.open = 1\n")
	}
	limit := q.Limit
	if limit <= 0 {
		limit = 100
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	if strings.TrimSpace(q.Text) != "" {
		sb.WriteString("ORDER BY rank, e.path DESC\n")
	} else {
		sb.WriteString("ORDER BY e.path DESC\n")
	}
	sb.WriteString("LIMIT ? OFFSET ?")
	args = append(args, limit, q.Offset)

	rows, err := db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("search query: %w", err)
	}
	defer rows.Close()
	var out []SearchResult
	for rows.Next() {
		var r SearchResult
		if err := rows.Scan(&r.Path, &r.Open, &r.Date, &r.Snippet); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
