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

// scanIdentifier reads a bare identifier, classifies it as a constant
// (leading uppercase), a plain identifier, or an fid (trailing ? or !,
// skipped when a trailing ! is actually the start of !=), then checks in
// order: label suffix (foo:), keyword lookup (suppressed right after . or
// a method-name position), falling back to the plain identifier/constant
// token. do/do_cond/do_block disambiguation is left to the external parser
// (spec.md §4.I): the scanner always emits the same "do" keyword token.
func (l *Lexer) scanIdentifier() Token {
	l.newtok()
	for l.buf.PeekByteN(0).valid && isIdentChar(l.buf.PeekByteN(0).b) {
		l.tokadd(l.buf.NextByte())
	}

	kind := tIDENTIFIER
	if s := l.tokBuf.String(); len(s) > 0 && isUpper(s[0]) {
		kind = tCONSTANT
	}

	if suffix := l.buf.PeekByteN(0); suffix.Is('?') || suffix.Is('!') {
		if !(suffix.Is('!') && l.buf.PeekByteN(1).Is('=')) {
			l.tokadd(l.buf.NextByte())
			kind = tFID
		}
	}
	l.tokfix()
	name := l.tok()

	if c := l.buf.PeekByteN(0); c.Is(':') && !l.buf.PeekByteN(1).Is(':') &&
		l.state.IsLabelPossible(l.condSeen) && kind != tFID {
		l.buf.NextByte()
		l.state.Set(ExprBeg)
		return l.emit(tLABEL)
	}

	if !l.state.IsAfterOperator() {
		if _, ok := keywordTable[name]; ok {
			return l.scanKeyword(name)
		}
	}

	l.state.Set(l.stateAfterIdentifier())
	return l.emit(kind)
}

func (l *Lexer) scanKeyword(name string) Token {
	kw := keywordTable[name]
	if l.state.Has(ExprMidBit) {
		l.state.Set(kw.stateInMid)
	} else {
		l.state.Set(kw.stateOther)
	}
	return l.emit(tKEYWORD)
}

// stateAfterIdentifier reports the lex state following a non-keyword
// identifier: EXPR_ENDFN right after `def`'s name position, EXPR_ARG right
// after a `.` method call, EXPR_CMDARG otherwise (identifier may start a
// paren-less command argument list).
func (l *Lexer) stateAfterIdentifier() LexState {
	switch {
	case l.state.Has(ExprFnameBit):
		return ExprEndFn
	case l.state.Has(ExprDotBit):
		return ExprArg
	default:
		return ExprCmdArg
	}
}

func (l *Lexer) isLabelSuffix(offset int) bool {
	if !l.buf.PeekByteN(offset).Is(':') {
		return false
	}
	return !l.buf.PeekByteN(offset + 1).Is(':')
}
