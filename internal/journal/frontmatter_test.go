/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package journal

import (
	"strings"
	"testing"
)

func TestSplitFrontmatter(t *testing.T) {
	src := "---\ndate: 2024-03-09 14:05:06 +01:00\nmood: calm\n---\n\n.Ben: Hi\n"
	fm, body, err := SplitFrontmatter([]byte(src))
	if err != nil {
		t.Fatalf("SplitFrontmatter: %v", err)
	}
	if fm.Date != "2024-03-09 14:05:06 +01:00" {
		t.Fatalf("date = %q", fm.Date)
	}
	if fm.Extra["mood"] != "calm" {
		t.Fatalf("extra keys lost: %v", fm.Extra)
	}
	if strings.TrimSpace(string(body)) != ".Ben: Hi" {
		t.Fatalf("body = %q", body)
	}
}

func TestSplitFrontmatterWithoutHeader(t *testing.T) {
	src := "Just text\n---\nmore"
	fm, body, err := SplitFrontmatter([]byte(src))
	if err != nil || fm.Date != "" || string(body) != src {
		t.Fatalf("unexpected split: %+v %q %v", fm, body, err)
	}
}

func TestSplitFrontmatterUnclosed(t *testing.T) {
	src := "---\ndate: x\nno closing fence"
	_, body, err := SplitFrontmatter([]byte(src))
	if err != nil || string(body) != src {
		t.Fatalf("unclosed header must be left as body: %q %v", body, err)
	}
}

func TestFrontmatterMarshalRoundTrip(t *testing.T) {
	data, err := Frontmatter{Date: "2024-03-09 14:05:06 +01:00"}.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.HasPrefix(string(data), "---\n") || !strings.HasSuffix(string(data), "---\n\n") {
		t.Fatalf("unexpected fences: %q", data)
	}
	fm, _, err := SplitFrontmatter(data)
	if err != nil || fm.Date != "2024-03-09 14:05:06 +01:00" {
		t.Fatalf("round trip failed: %+v %v", fm, err)
	}
}
