/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package note

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"yesterday/internal/dialog"
	"yesterday/internal/journal"
	applog "yesterday/internal/log"
	"yesterday/internal/markup"
)

const (
	ClassComment   = "yesterday-comment"
	ClassTodo      = "yesterday-todo"
	ClassCallout   = "callout"
	DreamCallout   = "yesterday-dream"
	dreamCalloutTl = "Dream"
)

// Options tune the post-processor.
type Options struct {
	// ShowMediaGrid adds the grid class to media containers.
	ShowMediaGrid bool
	// VaultRoot resolves media paths for image dimensions; empty disables lookup.
	VaultRoot string
}

// Document is a processed note.
type Document struct {
	Path        string
	Frontmatter journal.Frontmatter
	Nodes       []*markup.Node
}

// Processor converts note markdown into post-processed markup. It holds no
// per-document state and is safe for concurrent use.
type Processor struct {
	opts   Options
	md     goldmark.Markdown
	dialog *dialog.Renderer
	log    *slog.Logger
}

// New returns a Processor with the given options.
func New(opts Options) *Processor {
	l := applog.WithComponent("note")
	return &Processor{
		opts:   opts,
		md:     goldmark.New(goldmark.WithExtensions(extension.GFM)),
		dialog: &dialog.Renderer{Logger: l.With(slog.String("sub", "dialog"))},
		log:    l,
	}
}

// ProcessFile reads and processes a note file.
func (p *Processor) ProcessFile(path string) (*Document, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read note: %w", err)
	}
	doc, err := p.Process(src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	doc.Path = path
	return doc, nil
}

// Process renders markdown and rewrites sigil paragraphs.
func (p *Processor) Process(src []byte) (*Document, error) {
	fm, body, err := journal.SplitFrontmatter(src)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := p.md.Convert(body, &buf); err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}
	nodes, err := markup.ParseHTML(&buf)
	if err != nil {
		return nil, err
	}
	root := markup.El("div").Append(nodes...)
	ps := &pass{opts: p.opts, dialog: p.dialog, log: p.log, removed: map[*markup.Node]bool{}}
	ps.walk(root)
	prune(root, ps.removed)
	if ps.dream != nil {
		p.log.Debug("unterminated dream left as plain paragraphs", slog.Int("paragraphs", len(ps.dream.paras)))
	}
	return &Document{Frontmatter: fm, Nodes: root.Children}, nil
}

// pass carries the state of one Process call.
type pass struct {
	opts    Options
	dialog  *dialog.Renderer
	log     *slog.Logger
	dream   *dream
	removed map[*markup.Node]bool
}

func (ps *pass) walk(parent *markup.Node) {
	for i, c := range parent.Children {
		switch {
		case c.IsText():
		case c.Tag == "p":
			parent.Children[i] = ps.paragraph(c)
		default:
			ps.walk(c)
		}
	}
}

func (ps *pass) paragraph(p *markup.Node) *markup.Node {
	text := strings.TrimSpace(p.TextContent())
	sg := Detect(text)

	opened := false
	if ps.dream == nil && sg.DreamStart {
		ps.dream = &dream{}
		opened = true
	}
	if ps.dream != nil {
		ps.dream.add(text)
		// a bare marker that opens a dream cannot close it too
		if !sg.DreamEnd || (opened && text == dreamMarker) {
			ps.dream.paras = append(ps.dream.paras, p)
			return p
		}
		for _, old := range ps.dream.paras {
			ps.removed[old] = true
		}
		out := ps.dream.callout()
		ps.dream = nil
		return out
	}

	switch {
	case sg.Media:
		return ps.media(text)
	case sg.Dialog:
		return ps.dialog.Render(text)
	case sg.Comment:
		return markup.El("div", ClassComment).Append(p)
	case sg.Todo:
		return markup.El("div", ClassTodo).Append(p)
	}
	return p
}

// prune drops removed nodes anywhere below root.
func prune(root *markup.Node, removed map[*markup.Node]bool) {
	if len(removed) == 0 {
		return
	}
	kept := root.Children[:0]
	for _, c := range root.Children {
		if removed[c] {
			continue
		}
		prune(c, removed)
		kept = append(kept, c)
	}
	root.Children = kept
}
