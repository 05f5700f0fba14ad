/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package dialog

import (
	"log/slog"
	"strings"

	applog "yesterday/internal/log"
	"yesterday/internal/markup"
)

// Classes the host styles dialog output with.
const (
	ClassList      = "yesterday-dialog"
	ClassSelf      = "my-dialog"
	ClassOther     = "their-dialog"
	ClassEndOfTurn = "end-speech"
	ClassEmojiOnly = "emoji-only"
	ClassMeta      = "dialog-meta"
	ClassSpeaker   = "dialog-speaker"
	ClassComment   = "dialog-comment"
	ClassStatement = "dialog-statement"
)

// Renderer turns dialog blocks into list nodes. The zero value is ready to use;
// it keeps no state between calls and may be shared across goroutines.
type Renderer struct {
	Logger *slog.Logger
}

// Render renders block with a default Renderer.
func Render(block string) *markup.Node {
	return (&Renderer{}).Render(block)
}

// renderState lives for exactly one Render call.
type renderState struct {
	lastByRole  map[Role]string
	lastSpeaker string
	lastItem    *markup.Node
}

// Render builds a ul with one li per valid turn. Roles are classified from all
// speakers of the block before the first item is built.
func (r *Renderer) Render(block string) *markup.Node {
	l := r.Logger
	if l == nil {
		l = applog.WithComponent("dialog")
	}
	list := markup.El("ul", ClassList)

	raw := SplitTurns(block)
	turns := make([]Turn, 0, len(raw))
	var speakers []string
	seen := map[string]bool{}
	for _, s := range raw {
		t, ok := Dissect(s)
		if !ok {
			continue
		}
		turns = append(turns, t)
		if k := Key(t.Speaker); !seen[k] {
			seen[k] = true
			speakers = append(speakers, k)
		}
	}
	roles := Classify(speakers)

	st := &renderState{lastByRole: map[Role]string{}}
	for _, t := range turns {
		list.Append(st.item(t, roles))
	}

	l.Debug("dialog rendered",
		slog.Int("turns", len(turns)),
		slog.Int("dropped", len(raw)-len(turns)),
		slog.Int("speakers", len(speakers)),
	)
	return list
}

func (st *renderState) item(t Turn, roles Roles) *markup.Node {
	key := Key(t.Speaker)
	role := roles.Of(t.Speaker)

	li := markup.El("li")
	if st.lastByRole[role] != key || t.Comment != "" {
		meta := markup.El("p", ClassMeta)
		meta.Append(markup.El("span", ClassSpeaker).Append(markup.Text(t.Speaker)))
		if t.Comment != "" {
			meta.Append(markup.El("span", ClassComment).Append(markup.Text(t.Comment)))
		}
		li.Append(meta)
	}
	li.Append(statement(t.Statement))

	if IsOnlyEmoji(t.Statement) {
		li.AddClass(ClassEmojiOnly)
	}
	li.AddClass(role.Class())
	st.lastByRole[role] = key

	if st.lastItem != nil && st.lastSpeaker != t.Speaker {
		st.lastItem.AddClass(ClassEndOfTurn)
	}
	st.lastSpeaker = t.Speaker
	st.lastItem = li
	return li
}

// statement keeps embedded newlines as br elements.
func statement(text string) *markup.Node {
	p := markup.El("p", ClassStatement)
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			p.Append(markup.El("br"))
		}
		if line != "" {
			p.Append(markup.Text(line))
		}
	}
	return p
}
