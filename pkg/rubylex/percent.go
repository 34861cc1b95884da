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

// scanPercent disambiguates '%' between the modulo operator and a
// %-literal opener (%w %W %i %I %r %q %Q %s %x, or a bare %( string)).
func (l *Lexer) scanPercent() Token {
	if l.state.IsBeg() || (l.state.IsArg() && l.spaceSeen && !l.buf.PeekByteN(0).IsSpace()) {
		return l.scanPercentLiteral()
	}
	if l.buf.Peek('=') {
		l.buf.NextByte()
		l.state.Set(ExprBeg)
		return l.emitStr(tOpASGN, "%=")
	}
	l.state.Set(ExprBeg)
	return l.emitStr(tKEYWORD, "%")
}

func (l *Lexer) scanPercentLiteral() Token {
	var fn StrFunc
	kind := tSTRING_BEG

	switch c := l.buf.PeekByteN(0); {
	case c.Is('w'):
		l.buf.NextByte()
		fn = StrFuncQwords | StrFuncList
	case c.Is('W'):
		l.buf.NextByte()
		fn = StrFuncQwords | StrFuncList | StrFuncExpand
	case c.Is('i'):
		l.buf.NextByte()
		fn = StrFuncQwords | StrFuncList | StrFuncSymbol
	case c.Is('I'):
		l.buf.NextByte()
		fn = StrFuncQwords | StrFuncList | StrFuncSymbol | StrFuncExpand
	case c.Is('r'):
		l.buf.NextByte()
		fn = StrFuncRegexp | StrFuncExpand
		kind = tREGEXP_BEG
	case c.Is('q'):
		l.buf.NextByte()
	case c.Is('Q'):
		l.buf.NextByte()
		fn = StrFuncExpand
	case c.Is('s'):
		l.buf.NextByte()
		fn = StrFuncSymbol
		kind = tSYMBEG
	case c.Is('x'):
		l.buf.NextByte()
		fn = StrFuncExpand
		kind = tXSTRING_BEG
	default:
		fn = StrFuncExpand
	}

	open := l.buf.NextByte()
	if !open.valid {
		l.sink.CompileError(UnterminatedString, l.currentRange())
		return l.emit(tERROR)
	}
	term := open.Byte()
	var paren byte
	switch term {
	case '(':
		paren, term = '(', ')'
	case '[':
		paren, term = '[', ']'
	case '{':
		paren, term = '{', '}'
	case '<':
		paren, term = '<', '>'
	}

	l.strterm.Push(&StringLiteral{Func: fn, Term: term, Paren: paren})
	l.state.Set(ExprBeg)
	return l.emit(kind)
}
