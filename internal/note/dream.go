/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package note

import (
	"strings"

	"yesterday/internal/markup"
)

// dream collects the paragraphs between a start and an end marker.
type dream struct {
	lines []string
	paras []*markup.Node
}

func (d *dream) add(text string) {
	text = strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(text, dreamMarker), dreamMarker))
	d.lines = append(d.lines, text)
}

// callout renders the collected text as a titled callout block.
func (d *dream) callout() *markup.Node {
	box := markup.El("div", ClassCallout)
	box.SetAttr("data-callout", DreamCallout)
	title := markup.El("div", "callout-title").Append(
		markup.El("div", "callout-title-inner").Append(markup.Text(dreamCalloutTl)),
	)
	content := markup.El("div", "callout-content")
	for _, text := range d.lines {
		if text == "" {
			continue
		}
		p := markup.El("p")
		for i, line := range strings.Split(text, "\n") {
			if i > 0 {
				p.Append(markup.El("br"))
			}
			p.Append(markup.Text(line))
		}
		content.Append(p)
	}
	return box.Append(title, content)
}
