// Copyright 2015 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package rubylex

import (
	"regexp"
	"strings"
)

// MagicComment is a recognized magic comment surfaced to the caller,
// spec.md §6's "Also recognized" list.
type MagicComment struct {
	Name  string // "coding", "frozen_string_literal", "warn_indent", "shareable_constant_value"
	Value string
	Range Range
}

var codingCommentRE = regexp.MustCompile(`(?i)coding\s*[:=]\s*([A-Za-z0-9_-]+)`)

var magicCommentRE = regexp.MustCompile(`(?i)#\s*(frozen_string_literal|warn_indent|shareable_constant_value)\s*:\s*([^\n]*)`)

// detectMagicComments runs once at construction: it inspects line 1 (and
// line 2, only if line 1 is a shebang, per spec.md §4.B) for a coding
// comment and decodes the whole input if a non-built-in encoding is named,
// then collects the other recognized magic comments from those same
// lines.
func (l *Lexer) detectMagicComments() {
	lineLimit := 0
	if l.buf.HasShebang() {
		lineLimit = 1
	}
	for i := 0; i <= lineLimit && i < len(l.buf.Input.Lines); i++ {
		line := l.buf.Input.Lines[i]
		text := l.buf.Input.Bytes[line.Start:line.End]
		if m := codingCommentRE.FindSubmatchIndex(text); m != nil {
			name := string(text[m[2]:m[3]])
			l.applyEncoding(name, Range{line.Start + m[2], line.Start + m[3]})
		}
		for _, m := range magicCommentRE.FindAllSubmatchIndex(text, -1) {
			name := string(text[m[2]:m[3]])
			value := strings.TrimSpace(string(text[m[4]:m[5]]))
			l.magicComments = append(l.magicComments, MagicComment{
				Name:  name,
				Value: value,
				Range: Range{line.Start + m[0], line.Start + m[1]},
			})
		}
	}
}

// applyEncoding implements component B's contract: UTF-8 and
// ASCII-8BIT/BINARY pass through unchanged; any other name invokes the
// user-supplied decoder, re-running SetBytes on success and restarting the
// scan, or recording a fatal diagnostic and aborting on failure or absence
// of a decoder.
func (l *Lexer) applyEncoding(name string, r Range) {
	if l.decodedOnce {
		return
	}
	norm := strings.ToUpper(name)
	switch norm {
	case "UTF-8", "UTF8":
		return
	case "ASCII-8BIT", "BINARY":
		return
	}
	if l.opts.Decoder == nil {
		l.sink.CompileError(EncodingError, r)
		return
	}
	decoded, err := l.opts.Decoder(name, l.buf.Input.Bytes)
	if err != nil {
		l.sink.CompileError(EncodingError, r)
		return
	}
	l.decodedOnce = true
	name0 := l.buf.Input.Name
	l.buf = NewBuffer(name0, decoded)
	l.magicComments = nil
	l.detectMagicComments()
}

// MagicComments returns every magic comment recognized on lines 1-2.
func (l *Lexer) MagicComments() []MagicComment { return l.magicComments }

// frozenStringLiteralDefault reports the configured default for
// frozen_string_literal, or ("", false) if the file does not set one.
func (l *Lexer) frozenStringLiteralDefault() (string, bool) {
	for _, m := range l.magicComments {
		if m.Name == "frozen_string_literal" {
			return m.Value, true
		}
	}
	return "", false
}
