/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"yesterday/internal/storage"
)

func (a *app) searchCmd() *cobra.Command {
	var q storage.SearchQuery
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Full-text search over the vault",
		Long: `Search entries with SQLite FTS5 syntax: terms, "phrases", AND/OR/NOT.

Without a query the newest entries are listed.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.syncedIndex(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()
			q.Text = strings.Join(args, " ")
			res, err := storage.Search(cmd.Context(), db, q)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, r := range res {
				mark := " "
				if r.Open {
					mark = "*"
				}
				if r.Snippet != "" {
					fmt.Fprintf(w, "%s %s\n    %s\n", mark, r.Path, strings.ReplaceAll(r.Snippet, "\n", " "))
				} else {
					fmt.Fprintf(w, "%s %s\n", mark, r.Path)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&q.OpenOnly, "open", false, "only entries marked as to-do")
	cmd.Flags().IntVarP(&q.Limit, "limit", "n", 20, "maximum number of results")
	return cmd
}
