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

import "strings"

// tryHeredocOpener recognizes <<[-~]?(['"`]?)ID\1 at the cursor (one byte
// past the first '<', which the caller already consumed) and, on a match,
// enqueues the heredoc body and returns true. On no match the cursor is
// restored and nothing is consumed.
func (l *Lexer) tryHeredocOpener() bool {
	canBeHeredoc := !l.state.IsEnd() || (l.state.IsArg() && l.spaceSeen)
	if !canBeHeredoc || !l.buf.Peek('<') {
		return false
	}
	save := l.buf.Pcur()
	l.buf.NextByte() // consume second '<'

	var indentMode rune
	if c := l.buf.PeekByteN(0); c.Is('~') || c.Is('-') {
		indentMode = rune(c.Byte())
		l.buf.NextByte()
	}

	var quote byte
	if c := l.buf.PeekByteN(0); c.Is('"') || c.Is('\'') || c.Is('`') {
		quote = c.Byte()
		l.buf.NextByte()
	}

	start := l.buf.Pcur()
	if !l.buf.PeekByteN(0).valid || !isIdentStart(l.buf.PeekByteN(0).b) {
		l.buf.SetPcur(save)
		return false
	}
	for l.buf.PeekByteN(0).valid && isIdentChar(l.buf.PeekByteN(0).b) {
		l.buf.NextByte()
	}
	id := string(l.buf.SubstrAt(start, l.buf.Pcur()))

	if quote != 0 {
		if !l.buf.PeekByteN(0).Is(quote) {
			l.buf.SetPcur(save)
			return false
		}
		l.buf.NextByte()
	}

	var fn StrFunc
	if quote != '\'' {
		fn |= StrFuncExpand
	}
	if indentMode != 0 {
		fn |= StrFuncIndent
	}

	lit := &StringLiteral{
		Func:              fn,
		Heredoc:           true,
		HeredocID:         id,
		HeredocLine:       l.buf.LastLine(),
		HeredocIndentMode: indentMode,
	}
	l.heredocQueue.Push(HeredocBody{Lit: lit, IndentMode: indentMode})
	l.state.Set(ExprEnd)
	return true
}

// scanHeredocBodies loads the next pending heredoc body onto the literal
// stack so the following Advance call scans it, per spec.md §4.E's "the
// body is not scanned immediately" rule: the opener only records intent,
// and bodies are consumed in FIFO order once their newline is reached.
func (l *Lexer) scanHeredocBodies() {
	h, ok := l.heredocQueue.Pop()
	if !ok {
		return
	}
	l.strterm.Push(h.Lit)
}

// updateHeredocIndent tracks the minimum leading-whitespace run seen on each
// line of a <<~ heredoc body, so the eventual content can have that much
// indentation stripped. heredocLineIndent resets at each newline and is
// frozen (-1) once a non-whitespace byte is seen on the line.
func (l *Lexer) updateHeredocIndent(c MaybeByte) {
	if !c.valid {
		return
	}
	switch {
	case c.b == '\n':
		l.heredocLineIndent = 0
	case l.heredocLineIndent < 0:
		// already hit content on this line; nothing more to count
	case c.b == ' ' || c.b == '\t':
		l.heredocLineIndent++
	default:
		if l.heredocIndent < 0 || l.heredocLineIndent < l.heredocIndent {
			l.heredocIndent = l.heredocLineIndent
		}
		l.heredocLineIndent = -1
	}
}

// parseHeredocLiteral is parse_string's heredoc-specific counterpart: the
// terminator is a whole line (optionally indent-skipped), not a single
// byte, so it is matched with Buffer.IsWholeMatch at the start of every
// physical line instead of StringLiteral.Term.
func (l *Lexer) parseHeredocLiteral(lit *StringLiteral) TokenKind {
	if lit.heredocTerminated {
		l.strterm.Pop()
		l.state.Set(ExprEnd)
		if !l.heredocQueue.Empty() {
			l.scanHeredocBodies()
		}
		return tSTRING_END
	}

	eos := []byte(lit.HeredocID)
	indent := lit.HeredocIndentMode != 0
	if lit.HeredocIndentMode == '~' {
		l.heredocIndent = -1
		l.heredocLineIndent = 0
	}

	l.newtok()
	for {
		if l.buf.IsEOL() {
			// Bring the next line in and step back to its first byte, so
			// the terminator test below runs at the start of that line.
			if c := l.buf.NextByte(); !c.IsEOF() {
				l.buf.Pushback(c)
			}
		}
		if l.buf.Pcur() == l.buf.Pbeg() && l.buf.IsWholeMatch(eos, indent) {
			lit.heredocTerminated = true
			l.buf.GotoEOL()
			// With no further body queued, leave the terminator line's
			// newline unread so it is scanned as the statement's tNL.
			if l.heredocQueue.Empty() && l.buf.ByteAt(l.buf.Pcur()-1).Is('\n') {
				l.buf.SetPcur(l.buf.Pcur() - 1)
			}
			break
		}

		if lit.Func.has(StrFuncExpand) {
			if c0 := l.buf.PeekByteN(0); c0.Is('#') {
				if c1 := l.buf.PeekByteN(1); c1.Is('$') || c1.Is('@') || c1.Is('{') {
					break
				}
			}
		}

		c := l.buf.NextByte()
		if c.IsEOF() {
			l.sink.ErrorAt(UnterminatedHeredoc, l.currentRange())
			lit.heredocTerminated = true
			break
		}
		if lit.HeredocIndentMode == '~' {
			l.updateHeredocIndent(c)
		}
		if !c.IsASCII() {
			l.tokaddMultibyte(c)
			continue
		}
		l.tokadd(c)
	}

	if l.tokBuf.Len() == 0 && lit.Func.has(StrFuncExpand) && l.buf.PeekByteN(0).Is('#') {
		l.buf.NextByte()
		if t, ok := l.peekVariableName(); ok {
			switch t {
			case tSTRING_DBEG:
				l.interpStack = append(l.interpStack, interpFrame{Literal: l.strterm.Pop()})
			case tSTRING_DVAR:
				l.pendingDvarResume = l.strterm.Pop()
			}
			return t
		}
		l.buf.Pushback(SomeByte('#'))
	}

	l.tokfix()
	if l.tokBuf.Len() == 0 {
		return l.parseHeredocLiteral(lit)
	}
	if lit.HeredocIndentMode == '~' && l.heredocIndent > 0 {
		l.lastStringValue = dedentHeredocLines(l.tokBuf.String(), l.heredocIndent)
	} else {
		l.lastStringValue = l.tokBuf.String()
	}
	return tSTRING_CONTENT
}

// dedentHeredocLines strips up to n leading space/tab bytes from every line
// of s: the squiggly-heredoc (<<~) stripping step updateHeredocIndent's
// tracked minimum feeds into, applied as a MRI <<~ body actually requires.
func dedentHeredocLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		j := 0
		for j < n && j < len(line) && (line[j] == ' ' || line[j] == '\t') {
			j++
		}
		lines[i] = line[j:]
	}
	return strings.Join(lines, "\n")
}
