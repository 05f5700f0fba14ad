/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package note post-processes a rendered journal note: every paragraph is
// inspected for a leading sigil and rewritten into dialog lists, media grids,
// dream callouts, comment and to-do sections.
package note

import (
	"path"
	"slices"
	"strings"
)

// Sigils records which markers a paragraph's text carries. Dream start and end
// may both be set for a single-paragraph dream.
type Sigils struct {
	Media      bool
	Comment    bool
	Dialog     bool
	DreamStart bool
	DreamEnd   bool
	Todo       bool
}

const (
	commentMarker = "///"
	dreamMarker   = "§§§"
	todoMarker    = "++"
)

var (
	audioExtensions = []string{"flac", "m4a", "mp3", "ogg", "wav"}
	imageExtensions = []string{"gif", "jpg", "jpeg", "png", "webp"}
	videoExtensions = []string{"avi", "m4v", "mkv", "mov", "mp4", "webm"}
)

// Detect inspects the trimmed text content of a paragraph.
func Detect(text string) Sigils {
	return Sigils{
		Media:      strings.HasPrefix(text, "/") && MediaKind(text) != MediaUnknown,
		Comment:    strings.HasPrefix(text, commentMarker),
		Dialog:     strings.HasPrefix(text, ".") && strings.Contains(text, ":"),
		DreamStart: strings.HasPrefix(text, dreamMarker),
		DreamEnd:   strings.HasSuffix(text, dreamMarker),
		Todo:       strings.HasPrefix(text, todoMarker),
	}
}

// MediaType groups file extensions by the element that embeds them.
type MediaType int

const (
	MediaUnknown MediaType = iota
	MediaImage
	MediaAudio
	MediaVideo
)

// MediaKind classifies a path by extension, case-insensitively.
func MediaKind(p string) MediaType {
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(strings.TrimSpace(p))), ".")
	switch {
	case ext == "":
		return MediaUnknown
	case slices.Contains(imageExtensions, ext):
		return MediaImage
	case slices.Contains(audioExtensions, ext):
		return MediaAudio
	case slices.Contains(videoExtensions, ext):
		return MediaVideo
	}
	return MediaUnknown
}
