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

import "unicode/utf8"

// ctrlZ and ctrlD are the control bytes IsWordMatch accepts, besides
// whitespace and NUL, as ending a matched word.
const ctrlZ = 0x1a
const ctrlD = 0x04

// SourceLine describes one line of the input: bytes[Start:End) is the
// line's content, and EndsWithEOF is true for the final, possibly
// unterminated, line.
type SourceLine struct {
	Start       int
	End         int
	EndsWithEOF bool
}

func (l SourceLine) Len() int { return l.End - l.Start }

// Input is the immutable owned byte vector plus its line index. Invariant:
// line starts are monotonically increasing, consecutive lines are
// contiguous, and every byte belongs to exactly one line.
type Input struct {
	Name  string
	Bytes []byte
	Lines []SourceLine
}

// SetBytes recomputes the line index in a single pass over bytes. Every
// '\n' closes a line; a trailing partial line (or an empty input) is
// closed with EndsWithEOF true.
func (in *Input) SetBytes(bytes []byte) {
	in.Bytes = bytes
	in.Lines = in.Lines[:0]

	start := 0
	for i, c := range bytes {
		if c == '\n' {
			in.Lines = append(in.Lines, SourceLine{Start: start, End: i + 1, EndsWithEOF: false})
			start = i + 1
		}
	}
	in.Lines = append(in.Lines, SourceLine{Start: start, End: len(bytes), EndsWithEOF: true})
}

// ByteAt returns the byte at idx, and whether idx was in range.
func (in *Input) ByteAt(idx int) (byte, bool) {
	if idx < 0 || idx >= len(in.Bytes) {
		return 0, false
	}
	return in.Bytes[idx], true
}

// SubstrAt returns bytes[start:end), or nil if the range is invalid.
func (in *Input) SubstrAt(start, end int) []byte {
	if start < 0 || start > end || end > len(in.Bytes) {
		return nil
	}
	return in.Bytes[start:end]
}

// LineColForPos returns the zero-based (line, col) containing byte pos. If
// pos equals len(Bytes) it returns the EOF position at the end of the last
// line.
func (in *Input) LineColForPos(pos int) (line, col int, ok bool) {
	if pos == len(in.Bytes) {
		last := len(in.Lines) - 1
		if last < 0 {
			return 0, 0, false
		}
		return last, in.Lines[last].Len(), true
	}
	for i, l := range in.Lines {
		if pos < l.End {
			return i, pos - l.Start, true
		}
	}
	return 0, 0, false
}

// MaybeByte is a byte that might not exist (end of input). It exists so the
// scanner has a single pushback(MaybeByte) contract instead of the
// polymorphic overloads spec.md §9 flags as needing re-architecture.
type MaybeByte struct {
	b     byte
	valid bool
}

// EOFByte is the canonical end-of-input MaybeByte.
var EOFByte = MaybeByte{}

// SomeByte wraps a concrete byte.
func SomeByte(b byte) MaybeByte { return MaybeByte{b: b, valid: true} }

func (m MaybeByte) IsEOF() bool   { return !m.valid }
func (m MaybeByte) Byte() byte    { return m.b }
func (m MaybeByte) Is(b byte) bool { return m.valid && m.b == b }

func (m MaybeByte) IsSpace() bool {
	return m.valid && isSpace(m.b)
}

func (m MaybeByte) IsDigit() bool {
	return m.valid && isDigit(m.b)
}

func (m MaybeByte) IsAlnum() bool {
	return m.valid && isAlnum(m.b)
}

func (m MaybeByte) IsASCII() bool {
	return m.valid && m.b < 0x80
}

// Buffer is the cursor over an Input: pbeg/pcur/pend/ptok plus the
// prevline/lastline/nextline line indices, exactly as spec.md §3 requires.
type Buffer struct {
	Input Input

	lineCount int
	prevline  int
	hasPrev   bool
	lastline  int
	nextline  int

	pbeg int
	pcur int
	pend int
	ptok int

	eofp     bool
	crSeen   bool
	hasShebang bool

	// heredocEnd, when non-zero, is the RubySourceLine to resume at once
	// queued heredoc bodies have all been consumed.
	heredocEnd int

	// rubySourceLine is 1-based, matching spec.md's "lastline+1" rule.
	rubySourceLine int
}

// NewBuffer builds a Buffer over bytes and primes it exactly like the
// original source's Buffer::new/prepare: a leading '#!' marks a shebang
// line, and a leading UTF-8 BOM is consumed and excluded from line 1.
func NewBuffer(name string, bytes []byte) *Buffer {
	b := &Buffer{}
	b.Input.Name = name
	b.Input.SetBytes(bytes)
	b.rubySourceLine = 0
	b.prepare()
	return b
}

func (b *Buffer) prepare() {
	c := b.NextByte()
	switch {
	case c.Is('#'):
		if b.Peek('!') {
			b.hasShebang = true
		}
	case c.Is(0xef):
		if b.pend-b.pcur >= 2 {
			b1, _ := b.Input.ByteAt(b.pcur)
			b2, _ := b.Input.ByteAt(b.pcur + 1)
			if b1 == 0xbb && b2 == 0xbf {
				b.pcur += 2
				b.pbeg = b.pcur
				return
			}
		}
	case c.IsEOF():
		return
	}
	b.Pushback(c)
}

// HasShebang reports whether line 1 begins with a `#!` shebang, consulted
// by the magic-comment "line 2 only if line 1 is a shebang" rule.
func (b *Buffer) HasShebang() bool { return b.hasShebang }

// RubySourceLine is the 1-based line number for user-facing diagnostics.
func (b *Buffer) RubySourceLine() int { return b.rubySourceLine }

// Ptok, Pcur, Pbeg, Pend expose the cursor for the scanner and string
// literal stack, which live in the same package and need direct access;
// they are not part of rubylex's external contract.
func (b *Buffer) Ptok() int { return b.ptok }
func (b *Buffer) Pcur() int { return b.pcur }
func (b *Buffer) Pbeg() int { return b.pbeg }
func (b *Buffer) Pend() int { return b.pend }

func (b *Buffer) SetPtok(p int) { b.ptok = p }
func (b *Buffer) SetPcur(p int) { b.pcur = p }

// TokenFlush resets ptok to pcur, marking the start of the next token.
func (b *Buffer) TokenFlush() { b.ptok = b.pcur }

// IsEOL reports whether the cursor has reached the end of the current line.
func (b *Buffer) IsEOL() bool { return b.pcur >= b.pend }

func (b *Buffer) isEOLN(n int) bool { return b.pcur+n >= b.pend }

// Peek reports whether the next unconsumed byte equals c, without
// consuming it.
func (b *Buffer) Peek(c byte) bool { return b.PeekN(c, 0) }

// PeekN reports whether the byte n positions ahead of the cursor equals c.
func (b *Buffer) PeekN(c byte, n int) bool {
	return !b.isEOLN(n) && b.Input.Bytes[b.pcur+n] == c
}

// PeekByteN returns the MaybeByte n positions ahead of the cursor.
func (b *Buffer) PeekByteN(n int) MaybeByte {
	if b.isEOLN(n) {
		return EOFByte
	}
	return SomeByte(b.Input.Bytes[b.pcur+n])
}

// ByteAt returns the MaybeByte at an absolute offset into Input.Bytes.
func (b *Buffer) ByteAt(idx int) MaybeByte {
	if v, ok := b.Input.ByteAt(idx); ok {
		return SomeByte(v)
	}
	return EOFByte
}

// SubstrAt delegates to Input.SubstrAt.
func (b *Buffer) SubstrAt(start, end int) []byte { return b.Input.SubstrAt(start, end) }

// NextByte returns the next byte, advancing pcur, folding a lone '\r'
// followed by '\n' into a single '\n' the way original_source's
// Buffer::nextc/parser_cr does. Returns EOFByte at end of input, first
// trying to advance to the next physical line.
func (b *Buffer) NextByte() MaybeByte {
	if b.pcur == b.pend || b.eofp || b.nextline != 0 {
		if err := b.advanceLine(); err != nil {
			return EOFByte
		}
	}
	v, ok := b.Input.ByteAt(b.pcur)
	if !ok {
		return EOFByte
	}
	b.pcur++
	if v == '\r' {
		if b.Peek('\n') {
			b.pcur++
			v = '\n'
		}
	}
	return SomeByte(v)
}

// Pushback steps the cursor back by one byte. Only legal immediately after
// a NextByte call, mirroring original_source's Pushback<MaybeByte>.
func (b *Buffer) Pushback(c MaybeByte) {
	if c.IsEOF() {
		return
	}
	b.pcur--
	if b.pcur > b.pbeg {
		cur, _ := b.Input.ByteAt(b.pcur)
		prev, _ := b.Input.ByteAt(b.pcur - 1)
		if cur == '\n' && prev == '\r' {
			b.pcur--
		}
	}
}

// GotoEOL moves the cursor to the end of the current line.
func (b *Buffer) GotoEOL() { b.pcur = b.pend }

type eofError struct{}

func (eofError) Error() string { return "eof" }

// advanceLine brings the next physical line into [pbeg,pend), updating
// rubySourceLine, prevline/lastline, and flushing ptok the way
// original_source's Buffer::nextline does.
func (b *Buffer) advanceLine() error {
	v := b.nextline
	b.nextline = 0

	if v == 0 {
		if b.eofp {
			return eofError{}
		}
		if b.pend > b.pbeg {
			last, _ := b.Input.ByteAt(b.pend - 1)
			if last != '\n' {
				b.eofp = true
				b.GotoEOL()
				return eofError{}
			}
		}
		line, err := b.getline()
		if err != nil {
			b.eofp = true
			b.GotoEOL()
			return eofError{}
		}
		v = line
		b.crSeen = false
	}

	line := b.Input.Lines[v]
	if b.heredocEnd > 0 {
		b.rubySourceLine = b.heredocEnd
		b.heredocEnd = 0
	}
	b.rubySourceLine++
	b.pbeg = line.Start
	b.pcur = line.Start
	b.pend = line.End
	b.TokenFlush()
	b.prevline, b.hasPrev = b.lastline, true
	b.lastline = v
	return nil
}

func (b *Buffer) getline() (int, error) {
	if b.lineCount < len(b.Input.Lines) {
		b.lineCount++
		return b.lineCount - 1, nil
	}
	return 0, eofError{}
}

// QueueNextLine makes line the one brought in by the next advanceLine
// call, instead of the next unread line.
func (b *Buffer) QueueNextLine(line int) { b.nextline = line }

// LastLine returns the index of the line currently loaded into the buffer.
func (b *Buffer) LastLine() int { return b.lastline }

// SetHeredocEnd records the source line the parser should report once the
// heredoc body has been consumed past its terminator.
func (b *Buffer) SetHeredocEnd(line int) { b.heredocEnd = line }

// WasBOL reports whether the cursor is immediately after the first byte of
// the current line (beginning-of-line, after one NextByte call).
func (b *Buffer) WasBOL() bool { return b.pcur == b.pbeg+1 }

// IsIdentChar reports whether the byte at begin is an identifier
// character: ASCII alnum, underscore, or any non-ASCII byte.
func (b *Buffer) IsIdentChar(begin int) bool {
	c := b.Input.Bytes[begin]
	return isAlnum(c) || c == '_' || c >= 0x80
}

// IsWordMatch reports whether word occurs at the cursor and is followed by
// EOF, whitespace, NUL, ^Z, or ^D -- the original source's is_word_match,
// used to recognize the =begin/=end embedded-document markers.
func (b *Buffer) IsWordMatch(word string) bool {
	n := len(word)
	if string(b.SubstrAt(b.pcur, b.pcur+n)) != word {
		return false
	}
	if b.pcur+n == b.pend {
		return true
	}
	c := b.ByteAt(b.pcur + n)
	if c.IsSpace() {
		return true
	}
	return c.Is(0) || c.Is(ctrlZ) || c.Is(ctrlD)
}

// IsLookingAtEOL reports whether only whitespace (and possibly a comment)
// remains on the current line.
func (b *Buffer) IsLookingAtEOL() bool {
	ptr := b.pcur
	for ptr < b.pend {
		c := b.Input.Bytes[ptr]
		ptr++
		eol := c == '\n' || c == '#'
		if eol || !isASCIIWhitespace(c) {
			return eol
		}
	}
	return true
}

// IsWholeMatch reports whether the current line, starting at pbeg (after
// skipping indent whitespace when indent>0), exactly matches eos followed
// by end-of-line -- the heredoc terminator-line test, tolerant of a
// trailing \r\n.
func (b *Buffer) IsWholeMatch(eos []byte, indent bool) bool {
	ptr := b.pbeg
	n := len(eos)

	if indent {
		for ptr < len(b.Input.Bytes) && isASCIIWhitespace(b.Input.Bytes[ptr]) {
			ptr++
		}
	}
	if b.pend < ptr+n {
		return false
	}
	rest := b.pend - (ptr + n)
	if rest > 0 {
		last := b.ByteAt(ptr + n)
		if !last.Is('\n') {
			if !last.Is('\r') {
				return false
			}
			after := b.ByteAt(ptr + n + 1)
			if rest <= 1 || !after.Is('\n') {
				return false
			}
		}
	}
	return string(b.SubstrAt(ptr, ptr+n)) == string(eos)
}

// EOFNoDecrement rewinds the buffer to the last real line and pushes back
// a single non-EOF sentinel so a caller's scan loop can terminate cleanly
// on an unterminated single-line construct (e.g. `%w[` or a heredoc with
// no terminator), instead of reporting a phantom trailing blank line.
func (b *Buffer) EOFNoDecrement() {
	if b.hasPrev && !b.eofp {
		b.lastline = b.prevline
	}
	line := b.Input.Lines[b.lastline]
	b.pbeg = line.Start
	b.pend = b.pbeg + line.Len()
	b.pcur = b.pend
	b.Pushback(SomeByte(1))
	b.TokenFlush()
}

// MultibyteCharLen returns the UTF-8 continuation length (1..4) of the rune
// starting at absolute offset p, or ok=false for an invalid sequence.
func (b *Buffer) MultibyteCharLen(p int) (n int, ok bool) {
	if p < 0 || p >= len(b.Input.Bytes) {
		return 0, false
	}
	r, size := utf8.DecodeRune(b.Input.Bytes[p:])
	if r == utf8.RuneError && size <= 1 {
		return 0, false
	}
	return size, true
}
