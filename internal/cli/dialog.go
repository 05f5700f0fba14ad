/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"yesterday/internal/dialog"
	"yesterday/internal/markup"
)

func (a *app) dialogCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "dialog [file|-]",
		Short: "Render a dialog block",
		Long: `Render a dialog block read from a file or stdin.

Each turn starts with ".Speaker:" or ".Speaker (comment):" at the start of a line.

Example:
  printf '.Ben: Hi\n.Me: Hello' | yesterday dialog --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			list := (&dialog.Renderer{Logger: a.log}).Render(string(src))
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(list)
			}
			html, err := markup.RenderString(list)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), html)
			return err
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the node tree as JSON")
	return cmd
}
