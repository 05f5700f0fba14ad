/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package markup

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Render serialises nodes as HTML. Text is escaped by the html package.
func Render(w io.Writer, nodes ...*Node) error {
	for _, n := range nodes {
		if n == nil {
			continue
		}
		if err := html.Render(w, toHTML(n)); err != nil {
			return fmt.Errorf("render %s: %w", n.Tag, err)
		}
	}
	return nil
}

// RenderString is Render into a string.
func RenderString(nodes ...*Node) (string, error) {
	var b strings.Builder
	if err := Render(&b, nodes...); err != nil {
		return "", err
	}
	return b.String(), nil
}

func toHTML(n *Node) *html.Node {
	if n.IsText() {
		return &html.Node{Type: html.TextNode, Data: n.Text}
	}
	h := &html.Node{Type: html.ElementNode, Data: n.Tag, DataAtom: atom.Lookup([]byte(n.Tag))}
	if len(n.Classes) > 0 {
		h.Attr = append(h.Attr, html.Attribute{Key: "class", Val: strings.Join(n.Classes, " ")})
	}
	keys := make([]string, 0, len(n.Attrs))
	for k := range n.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		h.Attr = append(h.Attr, html.Attribute{Key: k, Val: n.Attrs[k]})
	}
	for _, c := range n.Children {
		h.AppendChild(toHTML(c))
	}
	return h
}

// ParseHTML parses an HTML fragment in body context. Comments and doctype
// nodes are dropped.
func ParseHTML(r io.Reader) ([]*Node, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	hs, err := html.ParseFragment(r, body)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	out := make([]*Node, 0, len(hs))
	for _, h := range hs {
		if n := fromHTML(h); n != nil {
			out = append(out, n)
		}
	}
	return out, nil
}

func fromHTML(h *html.Node) *Node {
	switch h.Type {
	case html.TextNode:
		data := h.Data
		// the source newline after <br> is layout, not text
		if p := h.PrevSibling; p != nil && p.Type == html.ElementNode && p.Data == "br" {
			data = strings.TrimPrefix(data, "\n")
			if data == "" {
				return nil
			}
		}
		return Text(data)
	case html.ElementNode:
		n := &Node{Tag: h.Data}
		for _, a := range h.Attr {
			n.SetAttr(a.Key, a.Val)
		}
		for c := h.FirstChild; c != nil; c = c.NextSibling {
			if cn := fromHTML(c); cn != nil {
				n.Children = append(n.Children, cn)
			}
		}
		return n
	default:
		return nil
	}
}
