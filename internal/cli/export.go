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
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"yesterday/internal/export"
	"yesterday/internal/version"
)

func (a *app) exportCmd() *cobra.Command {
	var opt export.PDFOptions
	cmd := &cobra.Command{
		Use:   "export <note.md> <out.pdf>",
		Short: "Export a rendered note as PDF",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.processor().ProcessFile(args[0])
			if err != nil {
				return err
			}
			title := doc.Frontmatter.Date
			if title == "" {
				title = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			}
			if opt.Author == "" {
				opt.Author = "yesterday " + version.Version
			}
			return export.NotePDF(doc.Nodes, title, args[1], opt)
		},
	}
	cmd.Flags().StringVar(&opt.PageSize, "page-size", "A4", "page size (A4, A5, Letter, ...)")
	cmd.Flags().Float64Var(&opt.FontSize, "font-size", 11, "body font size in points")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version.String())
			return err
		},
	}
}
