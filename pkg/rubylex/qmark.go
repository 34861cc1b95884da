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

// scanQmark disambiguates '?' between the ternary operator and a
// single-character literal (?a, ?\n, ?\u{263a}), ported directly from
// original_source's parse_qmark: a character literal is only possible in a
// non-EXPR_END state, and only when the character following '?' is not
// itself the start of a longer identifier run.
func (l *Lexer) scanQmark() Token {
	if l.state.IsEnd() {
		l.state.Set(ExprBeg)
		return l.emit(tEH)
	}

	c := l.buf.NextByte()
	if c.IsEOF() {
		l.sink.CompileError(IncompleteCharacterSyntax, l.currentRange())
		return Token{Kind: END_OF_INPUT, Range: l.currentRange()}
	}

	if c.IsSpace() {
		if !l.state.IsArg() {
			l.sink.Warn(WarnSpaceChar, l.currentRange())
		}
		l.buf.Pushback(c)
		l.state.Set(ExprBeg)
		return l.emit(tEH)
	}

	l.newtok()

	switch {
	case !c.IsASCII():
		l.tokaddMultibyte(c)
	case isIdentChar(c.b) && l.buf.PeekByteN(0).valid && isIdentChar(l.buf.PeekByteN(0).b):
		// c is itself the start of a run of 2+ identifier characters:
		// genuinely ambiguous between `a ?b:c` (ternary) and `a ?bc`
		// (nonsense) -- MRI always resolves this as ternary, warning
		// only when a space preceded the '?'.
		if l.spaceSeen {
			start := l.buf.Pcur() - 1
			ptr := l.buf.Pcur()
			for l.buf.ByteAt(ptr).valid && isIdentChar(l.buf.ByteAt(ptr).b) {
				ptr++
			}
			word := string(l.buf.Input.Bytes[start:ptr])
			l.sink.Warnf(AmbiguousTernaryOperator, Range{start - 1, start}, "%s", word)
		}
		l.buf.Pushback(c)
		l.state.Set(ExprBeg)
		return l.emit(tEH)
	case c.Is('\\'):
		if l.buf.Peek('u') {
			l.buf.NextByte()
			l.tokaddUTF8(0, false, false)
			break
		}
		e := l.readEscape(0)
		l.tokadd(e)
	default:
		l.tokadd(c)
	}
	l.tokfix()
	l.state.Set(ExprEnd)
	return l.emit(tCHAR)
}
