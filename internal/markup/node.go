/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package markup holds the generic element tree produced by the renderers and
// handed to the host for insertion. A Node is either an element (Tag set) or a
// text node (Tag empty, Text set).
package markup

import "strings"

// Node is one element or text node. Children are ordered.
type Node struct {
	Tag      string            `json:"tag,omitempty"`
	Classes  []string          `json:"classes,omitempty"`
	Attrs    map[string]string `json:"attrs,omitempty"`
	Text     string            `json:"text,omitempty"`
	Children []*Node           `json:"children,omitempty"`
}

// El creates an element with the given classes.
func El(tag string, classes ...string) *Node {
	n := &Node{Tag: tag}
	for _, c := range classes {
		n.AddClass(c)
	}
	return n
}

// Text creates a text node.
func Text(s string) *Node { return &Node{Text: s} }

// IsText reports whether n is a text node.
func (n *Node) IsText() bool { return n.Tag == "" }

// Append adds children in order and returns n.
func (n *Node) Append(children ...*Node) *Node {
	for _, c := range children {
		if c != nil {
			n.Children = append(n.Children, c)
		}
	}
	return n
}

// AddClass adds c unless it is empty or already present.
func (n *Node) AddClass(c string) {
	c = strings.TrimSpace(c)
	if c == "" || n.HasClass(c) {
		return
	}
	n.Classes = append(n.Classes, c)
}

func (n *Node) HasClass(c string) bool {
	for _, have := range n.Classes {
		if have == c {
			return true
		}
	}
	return false
}

// SetAttr sets an attribute other than class.
func (n *Node) SetAttr(key, val string) {
	if key == "class" {
		for _, c := range strings.Fields(val) {
			n.AddClass(c)
		}
		return
	}
	if n.Attrs == nil {
		n.Attrs = map[string]string{}
	}
	n.Attrs[key] = val
}

// Attr returns the attribute value and whether it is set.
func (n *Node) Attr(key string) (string, bool) {
	v, ok := n.Attrs[key]
	return v, ok
}

// TextContent concatenates descendant text; br elements contribute a newline.
func (n *Node) TextContent() string {
	var b strings.Builder
	n.writeText(&b)
	return b.String()
}

func (n *Node) writeText(b *strings.Builder) {
	if n.IsText() {
		b.WriteString(n.Text)
		return
	}
	if n.Tag == "br" {
		b.WriteByte('\n')
		return
	}
	for _, c := range n.Children {
		c.writeText(b)
	}
}

// Walk visits n and its descendants depth-first. Returning false from fn skips
// the children of the visited node.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Find returns every descendant element (including n) with the given tag.
func (n *Node) Find(tag string) []*Node {
	var out []*Node
	n.Walk(func(x *Node) bool {
		if x.Tag == tag {
			out = append(out, x)
		}
		return true
	})
	return out
}
