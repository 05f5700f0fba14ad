/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package note

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	_ "golang.org/x/image/webp"

	"yesterday/internal/markup"
)

const (
	ClassMediaGrid  = "image-grid"
	ClassMediaEmbed = "media-embed"
)

// media renders one embed per non-empty line. Paths are vault-relative; the
// leading "/" is dropped.
func (p *pass) media(text string) *markup.Node {
	box := markup.El("div")
	if p.opts.ShowMediaGrid {
		box.AddClass(ClassMediaGrid)
	}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		src := strings.TrimPrefix(line, "/")
		var el *markup.Node
		switch MediaKind(src) {
		case MediaImage:
			el = markup.El("img", ClassMediaEmbed)
			el.SetAttr("alt", path.Base(src))
			if w, h, ok := p.imageSize(src); ok {
				el.SetAttr("width", strconv.Itoa(w))
				el.SetAttr("height", strconv.Itoa(h))
			}
		case MediaAudio:
			el = markup.El("audio", ClassMediaEmbed)
			el.SetAttr("controls", "")
		case MediaVideo:
			el = markup.El("video", ClassMediaEmbed)
			el.SetAttr("controls", "")
		default:
			el = markup.El("a", ClassMediaEmbed)
			el.SetAttr("href", src)
			el.Append(markup.Text(path.Base(src)))
			box.Append(el)
			continue
		}
		el.SetAttr("src", src)
		box.Append(el)
	}
	return box
}

// imageSize reads the header of a vault image. Missing or undecodable files
// are not an error; the embed simply carries no dimensions.
func (p *pass) imageSize(src string) (int, int, bool) {
	if p.opts.VaultRoot == "" {
		return 0, 0, false
	}
	rel := path.Clean(src)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		p.log.Debug("media path leaves the vault", slog.String("src", src))
		return 0, 0, false
	}
	f, err := os.Open(filepath.Join(p.opts.VaultRoot, filepath.FromSlash(rel)))
	if err != nil {
		return 0, 0, false
	}
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		p.log.Debug("image header unreadable", slog.String("src", src), slog.Any("err", err))
		return 0, 0, false
	}
	return cfg.Width, cfg.Height, true
}
