/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package export writes rendered notes to printable formats.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"yesterday/internal/dialog"
	"yesterday/internal/markup"
	"yesterday/internal/note"
)

// PDFOptions controls PDF export behavior. Units are points (pt).
// Built-in Helvetica keeps text vector without embedding; text outside
// cp1252 cannot be drawn and emoji-only turns are replaced by a placeholder.
type PDFOptions struct {
	PageSize string  // gofpdf size name, A4 when empty
	FontSize float64 // body size, 11 when zero
	Author   string
}

// EmojiPlaceholder stands in for turns the built-in fonts cannot draw.
const EmojiPlaceholder = "[emoji]"

type align int

const (
	alignLeft align = iota
	alignRight
)

// block is one laid-out paragraph of the exported note.
type block struct {
	Text  string
	Style string  // gofpdf font style: "", "B", "I", "BI"
	Scale float64 // relative to the body size
	Align align
	// Narrow blocks take part of the line width, like chat bubbles.
	Narrow bool
	Fill   bool
	Gap    float64 // extra space after, in body-size units
}

// layout flattens a rendered note into printable blocks.
func layout(nodes []*markup.Node) []block {
	var out []block
	for _, n := range nodes {
		out = appendBlocks(out, n)
	}
	return out
}

func appendBlocks(out []block, n *markup.Node) []block {
	if n.IsText() {
		if s := strings.TrimSpace(n.Text); s != "" {
			out = append(out, block{Text: s, Scale: 1})
		}
		return out
	}
	switch {
	case len(n.Tag) == 2 && n.Tag[0] == 'h' && n.Tag[1] >= '1' && n.Tag[1] <= '6':
		scale := 1.0 + float64('7'-n.Tag[1])*0.15
		return append(out, block{Text: strings.TrimSpace(n.TextContent()), Style: "B", Scale: scale, Gap: 0.3})
	case n.Tag == "ul" && n.HasClass(dialog.ClassList):
		return appendDialog(out, n)
	case n.Tag == "div" && n.HasClass(note.ClassCallout):
		for _, c := range n.Children {
			switch {
			case c.HasClass("callout-title"):
				out = append(out, block{Text: strings.TrimSpace(c.TextContent()), Style: "B", Scale: 1, Fill: true})
			case c.HasClass("callout-content"):
				for _, p := range c.Find("p") {
					out = append(out, block{Text: p.TextContent(), Style: "I", Scale: 1, Fill: true})
				}
			}
		}
		if len(out) > 0 {
			out[len(out)-1].Gap = 0.5
		}
		return out
	case n.Tag == "div" && n.HasClass(note.ClassComment):
		return append(out, block{Text: strings.TrimSpace(n.TextContent()), Style: "I", Scale: 0.9})
	case n.Tag == "div" && n.HasClass(note.ClassTodo):
		return append(out, block{Text: "[ ] " + strings.TrimSpace(n.TextContent()), Scale: 1})
	case n.Tag == "img" || n.Tag == "audio" || n.Tag == "video":
		src, _ := n.Attr("src")
		return append(out, block{Text: fmt.Sprintf("[%s: %s]", n.Tag, src), Style: "I", Scale: 0.9})
	case n.Tag == "p" || n.Tag == "pre" || n.Tag == "blockquote":
		if s := strings.TrimSpace(n.TextContent()); s != "" {
			out = append(out, block{Text: s, Scale: 1, Gap: 0.3})
		}
		return out
	case n.Tag == "li":
		return append(out, block{Text: "- " + strings.TrimSpace(n.TextContent()), Scale: 1})
	}
	for _, c := range n.Children {
		out = appendBlocks(out, c)
	}
	return out
}

// appendDialog lays out turns as bubbles: the writer's own on the right,
// everyone else's on the left.
func appendDialog(out []block, list *markup.Node) []block {
	for _, li := range list.Children {
		if li.Tag != "li" {
			continue
		}
		al := alignLeft
		if li.HasClass(dialog.ClassSelf) {
			al = alignRight
		}
		for _, c := range li.Children {
			switch {
			case c.HasClass(dialog.ClassMeta):
				out = append(out, metaBlock(c, al))
			case c.HasClass(dialog.ClassStatement):
				text := c.TextContent()
				if li.HasClass(dialog.ClassEmojiOnly) {
					text = EmojiPlaceholder
				}
				out = append(out, block{Text: text, Scale: 1, Align: al, Narrow: true, Fill: true, Gap: 0.15})
			}
		}
		if li.HasClass(dialog.ClassEndOfTurn) && len(out) > 0 {
			out[len(out)-1].Gap = 0.6
		}
	}
	return out
}

func metaBlock(meta *markup.Node, al align) block {
	var speaker, comment string
	for _, s := range meta.Children {
		switch {
		case s.HasClass(dialog.ClassSpeaker):
			speaker = s.TextContent()
		case s.HasClass(dialog.ClassComment):
			comment = s.TextContent()
		}
	}
	b := block{Text: speaker, Style: "B", Scale: 0.85, Align: al, Narrow: true}
	if comment != "" {
		b.Text += " (" + comment + ")"
		b.Style = "BI"
	}
	return b
}

// NotePDF writes the rendered note to outPath as a single PDF document.
func NotePDF(nodes []*markup.Node, title, outPath string, opt PDFOptions) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create pdf: %w", err)
	}
	if err := WriteNotePDF(f, nodes, title, opt); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// WriteNotePDF renders the note into w.
func WriteNotePDF(w io.Writer, nodes []*markup.Node, title string, opt PDFOptions) error {
	size := opt.PageSize
	if size == "" {
		size = "A4"
	}
	body := opt.FontSize
	if body <= 0 {
		body = 11
	}
	pdf := gofpdf.New("P", "pt", size, "")
	pdf.SetMargins(48, 48, 48)
	pdf.SetAutoPageBreak(true, 48)
	pdf.SetTitle(title, true)
	if opt.Author != "" {
		pdf.SetAuthor(opt.Author, true)
	}
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	width := pageW - left - right
	bubble := width * 0.7
	pdf.SetFillColor(238, 238, 238)

	if title != "" {
		pdf.SetFont("Helvetica", "B", body*1.6)
		pdf.MultiCell(width, body*2, tr(title), "", "L", false)
		pdf.Ln(body * 0.5)
	}
	for _, b := range layout(nodes) {
		pt := body * b.Scale
		pdf.SetFont("Helvetica", b.Style, pt)
		w, x, alignStr := width, left, "L"
		if b.Narrow {
			w = bubble
			if b.Align == alignRight {
				x = left + width - bubble
				alignStr = "R"
			}
		}
		pdf.SetX(x)
		pdf.MultiCell(w, pt*1.35, tr(b.Text), "", alignStr, b.Fill)
		if b.Gap > 0 {
			pdf.Ln(body * b.Gap)
		}
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
