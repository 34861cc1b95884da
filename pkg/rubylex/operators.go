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

// This file covers the remaining context-sensitive single-byte
// dispatchers: '/' (division vs regexp), '<' (comparison/shift vs
// heredoc), '*' and '&' (binary vs splat/block-pass unary).

func (l *Lexer) isUnaryContext() bool {
	return l.state.IsBeg() || (l.state.IsArg() && l.spaceSeen && !l.buf.PeekByteN(0).IsSpace())
}

func (l *Lexer) scanSlash() Token {
	if l.isUnaryContext() {
		l.strterm.Push(&StringLiteral{Func: StrFuncExpand | StrFuncRegexp, Term: '/'})
		l.state.Set(ExprBeg)
		return l.emit(tREGEXP_BEG)
	}
	if l.buf.Peek('=') {
		l.buf.NextByte()
		l.state.Set(ExprBeg)
		return l.emitStr(tOpASGN, "/=")
	}
	if l.state.IsSpcArg(l.spaceSeen, l.buf.PeekByteN(0).IsSpace()) {
		l.sink.Warn(AmbiguousSlash, l.currentRange())
		l.strterm.Push(&StringLiteral{Func: StrFuncExpand | StrFuncRegexp, Term: '/'})
		l.state.Set(ExprBeg)
		return l.emit(tREGEXP_BEG)
	}
	l.state.Set(ExprBeg)
	return l.emitStr(tKEYWORD, "/")
}

func (l *Lexer) scanLt() Token {
	if l.tryHeredocOpener() {
		return l.emit(tSTRING_BEG)
	}
	if l.buf.Peek('<') {
		l.buf.NextByte()
		if l.buf.Peek('=') {
			l.buf.NextByte()
			l.state.Set(ExprBeg)
			return l.emitStr(tOpASGN, "<<=")
		}
		l.state.Set(ExprBeg)
		return l.emit(tLSHFT)
	}
	if l.buf.Peek('=') {
		l.buf.NextByte()
		if l.buf.Peek('>') {
			l.buf.NextByte()
			l.state.Set(ExprBeg)
			return l.emitStr(tKEYWORD, "<=>")
		}
		l.state.Set(ExprBeg)
		return l.emitStr(tKEYWORD, "<=")
	}
	l.state.Set(ExprBeg)
	return l.emitStr(tKEYWORD, "<")
}

func (l *Lexer) scanStar() Token {
	if l.buf.Peek('*') {
		l.buf.NextByte()
		if l.buf.Peek('=') {
			l.buf.NextByte()
			l.state.Set(ExprBeg)
			return l.emitStr(tOpASGN, "**=")
		}
		unary := l.isUnaryContext()
		l.state.Set(ExprBeg)
		if unary {
			return l.emit(tDSTAR)
		}
		return l.emitStr(tKEYWORD, "**")
	}
	if l.buf.Peek('=') {
		l.buf.NextByte()
		l.state.Set(ExprBeg)
		return l.emitStr(tOpASGN, "*=")
	}
	unary := l.isUnaryContext()
	l.state.Set(ExprBeg)
	if unary {
		return l.emit(tSTAR)
	}
	return l.emitStr(tKEYWORD, "*")
}

func (l *Lexer) scanAmp() Token {
	if l.buf.Peek('&') {
		l.buf.NextByte()
		if l.buf.Peek('=') {
			l.buf.NextByte()
			l.state.Set(ExprBeg)
			return l.emitStr(tOpASGN, "&&=")
		}
		l.state.Set(ExprBeg)
		return l.emit(tANDOP)
	}
	if l.buf.Peek('=') {
		l.buf.NextByte()
		l.state.Set(ExprBeg)
		return l.emitStr(tOpASGN, "&=")
	}
	if l.buf.Peek('.') {
		l.buf.NextByte()
		l.state.Set(ExprDot)
		return l.emitStr(tKEYWORD, "&.")
	}
	unary := l.isUnaryContext()
	l.state.Set(ExprBeg)
	if unary {
		return l.emit(tAMP)
	}
	return l.emitStr(tKEYWORD, "&")
}
