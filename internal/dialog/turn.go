/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package dialog parses dialog blocks written as ".Speaker (comment): statement"
// turns and renders them as a list of role-tagged turn nodes.
package dialog

import (
	"regexp"
	"strings"
)

// Turn is one parsed utterance. A Turn with an empty Speaker is invalid.
type Turn struct {
	Speaker   string
	Comment   string
	Statement string
}

// Valid reports whether the turn carries a speaker.
func (t Turn) Valid() bool { return t.Speaker != "" }

// turnDelim separates turns; a statement may span lines that do not start with ".".
const turnDelim = "\n."

// SplitTurns segments a dialog block into turn strings. Every segment after the
// first regains the leading "." consumed by the delimiter.
func SplitTurns(block string) []string {
	block = strings.TrimSpace(strings.ReplaceAll(block, "\r\n", "\n"))
	parts := strings.Split(block, turnDelim)
	for i := 1; i < len(parts); i++ {
		parts[i] = "." + parts[i]
	}
	return parts
}

// reTurn: leading ".", speaker up to "(" or ":", optional "(comment)", ":" and
// the rest of the string including newlines.
var reTurn = regexp.MustCompile(`^\.([^:(]+)(?:\s?\((.*?)\))?:\s?((?s:.*))`)

// Dissect parses one turn string. ok is false, and the zero Turn returned, when
// the string does not have the ".speaker: statement" shape.
func Dissect(line string) (Turn, bool) {
	m := reTurn.FindStringSubmatch(line)
	if m == nil {
		return Turn{}, false
	}
	t := Turn{
		Speaker:   strings.TrimSpace(m[1]),
		Comment:   strings.TrimSpace(m[2]),
		Statement: strings.TrimSpace(m[3]),
	}
	if !t.Valid() {
		return Turn{}, false
	}
	return t, true
}

// Parse splits and dissects a block, dropping invalid turns.
func Parse(block string) []Turn {
	var out []Turn
	for _, s := range SplitTurns(block) {
		if t, ok := Dissect(s); ok {
			out = append(out, t)
		}
	}
	return out
}
