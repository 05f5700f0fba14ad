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
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"yesterday/internal/markup"
)

func (a *app) renderCmd() *cobra.Command {
	var outDir string
	cmd := &cobra.Command{
		Use:   "render <note.md>...",
		Short: "Render notes to HTML",
		Long: `Render one or more notes to HTML fragments.

Without --out the fragments are written to stdout in argument order.
With --out each note is written to <dir>/<name>.html.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			docs, err := a.processor().ProcessFiles(cmd.Context(), args, a.cfg.Render.Workers)
			if err != nil {
				return err
			}
			if outDir == "" {
				for _, d := range docs {
					if err := markup.Render(cmd.OutOrStdout(), d.Nodes...); err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout())
				}
				return nil
			}
			targets := make(map[string]string, len(docs))
			for _, d := range docs {
				name := strings.TrimSuffix(filepath.Base(d.Path), filepath.Ext(d.Path)) + ".html"
				if prev, ok := targets[name]; ok {
					return fmt.Errorf("%s and %s would both be written to %s", prev, d.Path, name)
				}
				targets[name] = d.Path
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}
			for _, d := range docs {
				name := strings.TrimSuffix(filepath.Base(d.Path), filepath.Ext(d.Path)) + ".html"
				html, err := markup.RenderString(d.Nodes...)
				if err != nil {
					return err
				}
				out := filepath.Join(outDir, name)
				if err := os.WriteFile(out, []byte(html), 0o644); err != nil {
					return fmt.Errorf("write %s: %w", out, err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory")
	return cmd
}
