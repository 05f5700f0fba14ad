/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package journal

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Frontmatter is the YAML header of an entry. Keys other than date are kept
// in Extra so they survive a rewrite.
type Frontmatter struct {
	Date  string         `yaml:"date,omitempty"`
	Extra map[string]any `yaml:",inline"`
}

var fence = []byte("---")

// SplitFrontmatter separates a leading "---" fenced YAML block from the body.
// Text without a complete fence is returned unchanged as the body.
func SplitFrontmatter(src []byte) (Frontmatter, []byte, error) {
	var fm Frontmatter
	src = bytes.TrimPrefix(src, []byte("\ufeff"))
	first, rest, ok := cutLine(src)
	if !ok || !bytes.Equal(bytes.TrimSpace(first), fence) {
		return fm, src, nil
	}
	var header []byte
	for len(rest) > 0 {
		line, next, _ := cutLine(rest)
		if bytes.Equal(bytes.TrimSpace(line), fence) {
			if err := yaml.Unmarshal(header, &fm); err != nil {
				return Frontmatter{}, src, fmt.Errorf("parse frontmatter: %w", err)
			}
			return fm, next, nil
		}
		header = append(header, line...)
		header = append(header, '\n')
		rest = next
	}
	return Frontmatter{}, src, nil
}

func cutLine(b []byte) (line, rest []byte, found bool) {
	line, rest, found = bytes.Cut(b, []byte("\n"))
	return bytes.TrimSuffix(line, []byte("\r")), rest, found
}

// Marshal renders the fenced header followed by a blank line.
func (fm Frontmatter) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(fm)
	if err != nil {
		return nil, fmt.Errorf("encode frontmatter: %w", err)
	}
	var b bytes.Buffer
	b.WriteString("---\n")
	b.Write(data)
	b.WriteString("---\n\n")
	return b.Bytes(), nil
}
