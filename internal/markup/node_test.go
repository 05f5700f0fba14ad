/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package markup

import (
	"strings"
	"testing"
)

func TestAddClassDeduplicates(t *testing.T) {
	n := El("li", "a", "a", "")
	n.AddClass("b")
	n.AddClass("a")
	if got := strings.Join(n.Classes, " "); got != "a b" {
		t.Fatalf("classes = %q, want %q", got, "a b")
	}
}

func TestTextContentTurnsBreaksIntoNewlines(t *testing.T) {
	p := El("p").Append(Text("one"), El("br"), Text("two"), El("span").Append(Text("!")))
	if got := p.TextContent(); got != "one\ntwo!" {
		t.Fatalf("TextContent = %q", got)
	}
}

func TestRenderEscapesAndOrdersAttributes(t *testing.T) {
	n := El("p", "x", "y")
	n.SetAttr("data-b", "2")
	n.SetAttr("data-a", "1")
	n.Append(Text("a < b"), El("br"))
	got, err := RenderString(n)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := `<p class="x y" data-a="1" data-b="2">a &lt; b<br/></p>`
	if got != want {
		t.Fatalf("render = %q, want %q", got, want)
	}
}

func TestParseHTMLRoundTripsStructure(t *testing.T) {
	nodes, err := ParseHTML(strings.NewReader(`<h1>T</h1><p class="a b">x<br>y</p><!-- c -->`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(nodes) != 2 {
		t.Fatalf("expected 2 nodes, got %d", len(nodes))
	}
	p := nodes[1]
	if p.Tag != "p" || !p.HasClass("a") || !p.HasClass("b") {
		t.Fatalf("unexpected paragraph: %+v", p)
	}
	if p.TextContent() != "x\ny" {
		t.Fatalf("TextContent = %q", p.TextContent())
	}
}

func TestFindVisitsNestedElements(t *testing.T) {
	root := El("div").Append(El("p"), El("blockquote").Append(El("p")))
	if got := len(root.Find("p")); got != 2 {
		t.Fatalf("Find(p) = %d, want 2", got)
	}
}

func TestParseHTMLDropsNewlineAfterBreak(t *testing.T) {
	nodes, err := ParseHTML(strings.NewReader("<p>one<br />\ntwo<br />\n\nthree<br />\n</p>"))
	if err != nil {
		t.Fatalf("ParseHTML: %v", err)
	}
	if got := nodes[0].TextContent(); got != "one\ntwo\n\nthree\n" {
		t.Fatalf("TextContent = %q", got)
	}
}
