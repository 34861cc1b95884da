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
	"fmt"
	"os"
	"strconv"
	"strings"
)

// interpFrame records a suspended string-literal frame while the scanner
// is inside a #{...} interpolation: Literal resumes once Braces returns to
// zero on a matching '}', per spec.md §4.E's interpolation re-entry rule.
type interpFrame struct {
	Literal *StringLiteral
	Braces  int
}

// Lexer is the core scanner (component F), consulting and updating the
// character classifier, lex-state set, and string-literal stack as it
// dispatches on the current byte to produce one Token per Advance call.
type Lexer struct {
	buf   *Buffer
	state LexState
	opts  Options
	sink  *Sink

	strterm      literalStack
	heredocQueue HeredocQueue
	interpStack  []interpFrame

	// pendingDvarResume holds a literal frame suspended for the single
	// token following a #$gvar / #@ivar / #@@cvar shorthand interpolation;
	// Advance restores it onto strterm right after that one token.
	pendingDvarResume *StringLiteral

	tokBuf   strings.Builder
	tokStart int

	commandStart  bool
	parenNest     int
	spaceSeen     bool
	condSeen      bool
	cmdArgSeen    bool

	heredocIndent     int
	heredocLineIndent int

	lastStringValue string

	decodedOnce  bool
	magicComments []MagicComment
	comments      []Range
}

// NewLexer constructs a Lexer over bytes, detecting any magic comment
// encoding on lines 1-2 before the first token is requested (component B).
func NewLexer(bytes []byte, opts Options) *Lexer {
	l := &Lexer{
		opts:  opts,
		sink:  NewSink(),
		state: ExprBeg,
	}
	l.buf = NewBuffer(opts.bufferName(), bytes)
	l.detectMagicComments()
	return l
}

// Diagnostics returns every diagnostic accumulated so far.
func (l *Lexer) Diagnostics() []Diagnostic { return l.sink.Diagnostics() }

// Comments returns the ranges of every #-to-end-of-line comment consumed
// so far (=begin/=end embedded documents are reported as a single range).
func (l *Lexer) Comments() []Range { return l.comments }

// Input returns the (possibly decoded) input the lexer is scanning.
func (l *Lexer) Input() *Input { return &l.buf.Input }

// SetCondSeen updates whether the scanner currently sits inside a
// condition expression (the test of a while/until/if, up to the keyword
// that closes it). The parser drives this through push_cond/pop_cond
// (component I, spec.md §4.I); the lexer only ever consults its current
// value, via IsLabelPossible, to disambiguate a trailing ':'.
func (l *Lexer) SetCondSeen(b bool) { l.condSeen = b }

// CondSeen reports the value last set by SetCondSeen.
func (l *Lexer) CondSeen() bool { return l.condSeen }

// SetCmdArgSeen updates the command-argument context flag driven by the
// parser's push_cmdarg/pop_cmdarg callbacks. The scanner does not branch
// on it directly -- in MRI it disambiguates grammar-level command-call
// precedence, not a lexical byte -- but it is part of the parser
// cooperation surface spec.md §4.I names, so the lexer stores and
// surfaces it for that caller.
func (l *Lexer) SetCmdArgSeen(b bool) { l.cmdArgSeen = b }

// CmdArgSeen reports the value last set by SetCmdArgSeen.
func (l *Lexer) CmdArgSeen() bool { return l.cmdArgSeen }

// SetCommandStart updates whether the next token may open a paren-less
// command argument list. The scanner itself sets this to true when it
// opens a #{...} interpolation (strterm.go's peekVariableName); the
// parser may also drive it directly via set_command_start.
func (l *Lexer) SetCommandStart(b bool) { l.commandStart = b }

// CommandStart reports the value last set by SetCommandStart.
func (l *Lexer) CommandStart() bool { return l.commandStart }

func (l *Lexer) newtok() {
	l.tokStart = l.buf.Pcur()
	l.tokBuf.Reset()
}

func (l *Lexer) tokadd(c MaybeByte) {
	if c.valid {
		l.tokBuf.WriteByte(c.b)
	}
}

func (l *Lexer) tokfix() {}

func (l *Lexer) tok() string { return l.tokBuf.String() }

// flushLiteral is a hook point mirroring original_source's literal_flush:
// by the time it's called here the token buffer has already accumulated
// every byte up to pos via tokadd, so there is nothing further to commit.
func (l *Lexer) flushLiteral(pos int) {}

func (l *Lexer) currentRange() Range { return Range{l.buf.Ptok(), l.buf.Pcur()} }

func (l *Lexer) emit(kind TokenKind) Token {
	r := Range{l.buf.Ptok(), l.buf.Pcur()}
	t := Token{Kind: kind, Range: r}
	switch kind {
	case tSTRING_CONTENT:
		t.Value = LiteralValue{Kind: LiteralString, Str: l.lastStringValue}
	case tIDENTIFIER, tCONSTANT, tIVAR, tCVAR, tGVAR, tFID, tKEYWORD, tLABEL, tCHAR:
		t.Value = LiteralValue{Kind: LiteralString, Str: l.tok()}
	}
	l.buf.TokenFlush()
	return t
}

func (l *Lexer) emitStr(kind TokenKind, s string) Token {
	t := l.emit(kind)
	t.Value = LiteralValue{Kind: LiteralString, Str: s}
	return t
}

// Advance returns the next token from the input. This is the entire
// public contract the external parser uses; it never blocks and always
// returns exactly one token (spec.md §5). With Options.Debug set, each
// token and the lex state it leaves behind are traced to stderr.
func (l *Lexer) Advance() (tok Token) {
	if l.opts.Debug {
		defer func() { fmt.Fprintf(os.Stderr, "rubylex: %s -> %s\n", tok, l.state) }()
	}
	if l.sink.IsFatal() {
		return Token{Kind: END_OF_INPUT, Range: Range{l.buf.Pcur(), l.buf.Pcur()}}
	}

	if lit := l.pendingDvarResume; lit != nil {
		l.pendingDvarResume = nil
		t := l.scanSimpleDvarToken()
		l.strterm.Push(lit)
		return t
	}

	if top := l.strterm.Peek(); top != nil {
		if top.Heredoc {
			return l.emit(l.parseHeredocLiteral(top))
		}
		return l.emit(l.parseString(top))
	}

	return l.scanNormal()
}

// scanSimpleDvarToken reads exactly one $global/@ivar/@@cvar token, the
// single token a #$x/#@x interpolation shorthand expands to.
func (l *Lexer) scanSimpleDvarToken() Token {
	if l.buf.Peek('$') {
		l.buf.NextByte()
		return l.scanGvar()
	}
	l.buf.NextByte()
	return l.scanAtVar()
}

func (l *Lexer) scanNormal() Token {
	l.spaceSeen = false

	for {
		if l.buf.IsEOL() {
			if !l.heredocQueue.Empty() {
				l.scanHeredocBodies()
			}
		}
		c := l.buf.NextByte()

		switch {
		case c.IsEOF():
			l.buf.TokenFlush()
			return Token{Kind: END_OF_INPUT, Range: l.currentRange()}

		case c.Is(' '), c.Is('\t'), c.Is('\v'), c.Is('\f'), c.Is('\r'):
			l.spaceSeen = true
			l.buf.TokenFlush()
			continue

		case c.Is('\\') && l.buf.Peek('\n'):
			l.buf.NextByte()
			l.spaceSeen = true
			l.buf.TokenFlush()
			continue

		case c.Is('\n'):
			l.buf.TokenFlush()
			if !l.heredocQueue.Empty() {
				// The queued body is scanned first; the tNL comes from
				// the terminator line's newline once the body ends.
				l.scanHeredocBodies()
				return l.emit(l.parseHeredocLiteral(l.strterm.Peek()))
			}
			if l.state.IsBeg() || l.state == ExprFname || l.state.IsArg() && !l.spaceSeen {
				continue
			}
			l.state.Set(ExprBeg)
			return l.emit(tNL)

		case c.Is('#'):
			l.buf.GotoEOL()
			l.comments = append(l.comments, Range{l.buf.Ptok(), l.buf.Pcur()})
			l.buf.TokenFlush()
			continue

		case c.Is('='):
			if l.buf.WasBOL() && l.buf.IsWordMatch("begin") {
				l.skipEmbeddedDocument()
				continue
			}
			l.buf.Pushback(c)
			return l.scanOperatorOrLiteral()

		default:
			l.buf.Pushback(c)
			return l.scanOperatorOrLiteral()
		}
	}
}

// skipEmbeddedDocument consumes a =begin ... =end block as a single
// comment range.
func (l *Lexer) skipEmbeddedDocument() {
	start := l.buf.Ptok()
	for {
		l.buf.GotoEOL()
		c := l.buf.NextByte()
		if c.IsEOF() {
			l.sink.ErrorAt(UnterminatedEmbeddedDocument, Range{start, l.buf.Pcur()})
			return
		}
		if c.Is('=') && l.buf.WasBOL() && l.buf.IsWordMatch("end") {
			l.buf.GotoEOL()
			l.comments = append(l.comments, Range{start, l.buf.Pcur()})
			l.buf.TokenFlush()
			return
		}
	}
}

func (l *Lexer) scanOperatorOrLiteral() Token {
	c := l.buf.NextByte()

	switch {
	case c.IsDigit():
		l.buf.Pushback(c)
		return l.scanNumber()

	case c.Is('"'):
		return l.openQuote('"', 0, StrFuncExpand)

	case c.Is('\''):
		return l.openQuote('\'', 0, 0)

	case c.Is('`'):
		return l.openQuote('`', 0, StrFuncExpand)

	case c.Is(':'):
		return l.scanColon()

	case c.Is('?'):
		return l.scanQmark()

	case c.Is('%'):
		return l.scanPercent()

	case c.Is('/'):
		return l.scanSlash()

	case c.Is('<'):
		return l.scanLt()

	case c.Is('*'):
		return l.scanStar()

	case c.Is('&'):
		return l.scanAmp()

	case c.Is('@'):
		return l.scanAtVar()

	case c.Is('$'):
		return l.scanGvar()

	case isIdentStart(safeByte(c)):
		l.buf.Pushback(c)
		return l.scanIdentifier()

	default:
		l.buf.Pushback(c)
		return l.scanPunct()
	}
}

func safeByte(c MaybeByte) byte {
	if c.valid {
		return c.b
	}
	return 0
}

// scanNumber reads an integer or float literal. Underscore digit
// separators are accepted anywhere a digit is; this is not a
// fully-general MRI numeric literal scanner: 0x/0b/0o prefixes are read,
// but rational and imaginary suffixes (1r, 2i) are not, so tRATIONAL and
// tIMAGINARY are never produced.
func (l *Lexer) scanNumber() Token {
	l.newtok()
	isFloat := false

	if l.buf.PeekByteN(0).Is('0') {
		l.tokadd(l.buf.NextByte())
		switch {
		case l.buf.PeekByteN(0).Is('x') || l.buf.PeekByteN(0).Is('X'):
			l.tokadd(l.buf.NextByte())
			l.scanDigits(isHexDigit)
			return l.finishNumber(false)
		case l.buf.PeekByteN(0).Is('b') || l.buf.PeekByteN(0).Is('B'):
			l.tokadd(l.buf.NextByte())
			l.scanDigits(isBinDigit)
			return l.finishNumber(false)
		case l.buf.PeekByteN(0).Is('o') || l.buf.PeekByteN(0).Is('O'):
			l.tokadd(l.buf.NextByte())
			l.scanDigits(isOctDigit)
			return l.finishNumber(false)
		}
	}

	l.scanDigits(isDigitOrUnderscore)
	if l.buf.PeekByteN(0).Is('.') && l.buf.PeekByteN(1).IsDigit() {
		isFloat = true
		l.tokadd(l.buf.NextByte())
		l.scanDigits(isDigitOrUnderscore)
	}
	if c := l.buf.PeekByteN(0); c.Is('e') || c.Is('E') {
		save := l.buf.Pcur()
		l.tokadd(l.buf.NextByte())
		if c2 := l.buf.PeekByteN(0); c2.Is('+') || c2.Is('-') {
			l.tokadd(l.buf.NextByte())
		}
		if l.buf.PeekByteN(0).IsDigit() {
			isFloat = true
			l.scanDigits(isDigitOrUnderscore)
		} else {
			l.buf.SetPcur(save)
		}
	}
	return l.finishNumber(isFloat)
}

func (l *Lexer) scanDigits(pred func(byte) bool) {
	for {
		c := l.buf.PeekByteN(0)
		if !c.valid || (!pred(c.b) && c.b != '_') {
			break
		}
		l.tokadd(l.buf.NextByte())
	}
}

func isHexDigit(c byte) bool { _, ok := hexDigit(SomeByte(c)); return ok }
func isOctDigit(c byte) bool { return c >= '0' && c <= '7' }
func isBinDigit(c byte) bool { return c == '0' || c == '1' }
func isDigitOrUnderscore(c byte) bool { return isDigit(c) || c == '_' }

func (l *Lexer) finishNumber(isFloat bool) Token {
	l.tokfix()
	text := strings.ReplaceAll(l.tok(), "_", "")
	l.state.Set(ExprEnd)
	if isFloat {
		f, _ := strconv.ParseFloat(text, 64)
		t := l.emit(tFLOAT)
		t.Value = LiteralValue{Kind: LiteralFloat, Float: f}
		return t
	}
	v, _ := strconv.ParseInt(text, 0, 64)
	t := l.emit(tINTEGER)
	t.Value = LiteralValue{Kind: LiteralInteger, Integer: v}
	return t
}

func (l *Lexer) openQuote(term byte, paren byte, fn StrFunc) Token {
	l.strterm.Push(&StringLiteral{Func: fn, Term: term, Paren: paren})
	l.state.Set(ExprBeg)
	return l.emit(tSTRING_BEG)
}

// scanColon disambiguates ':' between tCOLON (ternary else / hash-value
// separator), tCOLON2 ('::'), and tSYMBEG (a symbol literal opener,
// including the quoted-name form :"...").
func (l *Lexer) scanColon() Token {
	if l.buf.Peek(':') {
		l.buf.NextByte()
		l.state.Set(ExprDot)
		return l.emit(tCOLON2)
	}

	c := l.buf.PeekByteN(0)
	symbolPossible := c.valid && (isIdentStart(c.b) || c.b == '"' || c.b == '\'' || isGlobalNamePunct(c.b))
	if l.state.IsEnd() || c.IsSpace() || !symbolPossible {
		l.state.Set(ExprBeg)
		return l.emit(tCOLON)
	}

	l.state.Set(ExprFname)
	if c.Is('"') {
		l.buf.NextByte()
		l.strterm.Push(&StringLiteral{Func: StrFuncExpand | StrFuncSymbol, Term: '"'})
		return l.emit(tSYMBEG)
	}
	if c.Is('\'') {
		l.buf.NextByte()
		l.strterm.Push(&StringLiteral{Func: StrFuncSymbol, Term: '\''})
		return l.emit(tSYMBEG)
	}
	return l.emit(tSYMBEG)
}

func (l *Lexer) scanAtVar() Token {
	l.newtok()
	l.tokadd(SomeByte('@'))
	kind := tIVAR
	if l.buf.Peek('@') {
		l.tokadd(l.buf.NextByte())
		kind = tCVAR
	}
	if !l.buf.PeekByteN(0).valid || !isIdentStart(l.buf.PeekByteN(0).b) {
		l.sink.ErrorAt(InvalidCharacterSyntax, l.currentRange())
	}
	for l.buf.PeekByteN(0).valid && isIdentChar(l.buf.PeekByteN(0).b) {
		l.tokadd(l.buf.NextByte())
	}
	l.tokfix()
	l.state.Set(ExprEnd)
	return l.emit(kind)
}

func (l *Lexer) scanGvar() Token {
	l.newtok()
	l.tokadd(SomeByte('$'))
	c := l.buf.NextByte()
	if c.valid && (isGlobalNamePunct(c.b) || isDigit(c.b)) {
		l.tokadd(c)
		l.tokfix()
		l.state.Set(ExprEnd)
		return l.emit(tGVAR)
	}
	l.buf.Pushback(c)
	for l.buf.PeekByteN(0).valid && isIdentChar(l.buf.PeekByteN(0).b) {
		l.tokadd(l.buf.NextByte())
	}
	l.tokfix()
	l.state.Set(ExprEnd)
	return l.emit(tGVAR)
}

func (l *Lexer) scanPunct() Token {
	c := l.buf.NextByte()
	switch {
	case c.Is('('):
		kind := tLPAREN
		if l.state.IsBeg() || (l.state.IsArg() && l.spaceSeen) {
			kind = tLPAREN_ARG
		}
		l.parenNest++
		l.state.Set(ExprBeg)
		return l.emit(kind)
	case c.Is(')'):
		l.parenNest--
		l.state.Set(ExprEnd)
		return l.emit(tRPAREN)
	case c.Is('['):
		l.state.Set(ExprBeg)
		return l.emit(tLBRACK)
	case c.Is(']'):
		l.state.Set(ExprEnd)
		return l.emit(tRBRACK)
	case c.Is('{'):
		if len(l.interpStack) > 0 {
			l.interpStack[len(l.interpStack)-1].Braces++
		}
		l.state.Set(ExprBeg)
		return l.emit(tLBRACE)
	case c.Is('}'):
		if n := len(l.interpStack); n > 0 {
			top := &l.interpStack[n-1]
			if top.Braces == 0 {
				lit := top.Literal
				l.interpStack = l.interpStack[:n-1]
				l.strterm.Push(lit)
				l.state.Set(ExprEnd)
				return l.emit(tSTRING_DEND)
			}
			top.Braces--
		}
		l.state.Set(ExprEnd)
		return l.emit(tRBRACE)
	case c.Is(','):
		l.state.Set(ExprBeg)
		return l.emit(tCOMMA)
	case c.Is(';'):
		l.state.Set(ExprBeg)
		return l.emit(tSEMI)
	case c.Is('.'):
		if l.buf.Peek('.') {
			l.buf.NextByte()
			if l.buf.Peek('.') {
				l.buf.NextByte()
				l.state.Set(ExprBeg)
				return l.emit(tDOT3)
			}
			l.state.Set(ExprBeg)
			return l.emit(tDOT2)
		}
		l.state.Set(ExprDot)
		return l.emit(tDOT)
	case c.Is('+'):
		return l.scanPlusMinus('+', tUPLUS)
	case c.Is('-'):
		return l.scanPlusMinus('-', tUMINUS)
	case c.Is('|'):
		if l.buf.Peek('|') {
			l.buf.NextByte()
			l.state.Set(ExprBeg)
			return l.emit(tOROP)
		}
		l.state.Set(ExprBeg)
		return l.emitStr(tKEYWORD, "|")
	case c.Is('^'):
		l.state.Set(ExprBeg)
		return l.emitStr(tKEYWORD, "^")
	case c.Is('~'):
		l.state.Set(ExprBeg)
		return l.emitStr(tKEYWORD, "~")
	case c.Is('!'):
		if l.buf.Peek('=') {
			l.buf.NextByte()
			l.state.Set(ExprBeg)
			return l.emitStr(tKEYWORD, "!=")
		}
		l.state.Set(ExprBeg)
		return l.emitStr(tKEYWORD, "!")
	case c.Is('='):
		if l.buf.Peek('=') {
			l.buf.NextByte()
			if l.buf.Peek('=') {
				l.buf.NextByte()
				l.state.Set(ExprBeg)
				return l.emitStr(tKEYWORD, "===")
			}
			l.state.Set(ExprBeg)
			return l.emitStr(tKEYWORD, "==")
		}
		if l.buf.Peek('~') {
			l.buf.NextByte()
			l.state.Set(ExprBeg)
			return l.emitStr(tKEYWORD, "=~")
		}
		if l.buf.Peek('>') {
			l.buf.NextByte()
			l.state.Set(ExprBeg)
			return l.emitStr(tKEYWORD, "=>")
		}
		l.state.Set(ExprBeg)
		return l.emitStr(tOpASGN, "=")
	case c.Is('>'):
		if l.buf.Peek('=') {
			l.buf.NextByte()
			l.state.Set(ExprBeg)
			return l.emitStr(tKEYWORD, ">=")
		}
		if l.buf.Peek('>') {
			l.buf.NextByte()
			l.state.Set(ExprBeg)
			return l.emit(tRSHFT)
		}
		l.state.Set(ExprBeg)
		return l.emitStr(tKEYWORD, ">")
	case c.Is('\\'):
		return l.emit(tBACKSLASH)
	default:
		l.sink.ErrorAt(InvalidCharacterSyntax, l.currentRange())
		return l.emit(tERROR)
	}
}

func (l *Lexer) scanPlusMinus(op byte, unary TokenKind) Token {
	c := l.buf.PeekByteN(0)
	if c.Is('=') {
		l.buf.NextByte()
		l.state.Set(ExprBeg)
		return l.emitStr(tOpASGN, string(op)+"=")
	}
	isUnary := l.state.IsBeg() || (l.state.IsArg() && l.spaceSeen && !c.IsSpace())
	if isUnary {
		l.state.Set(ExprBeg)
		if c.IsDigit() {
			return l.emit(tUMINUS_NUM)
		}
		return l.emit(unary)
	}
	l.state.Set(ExprBeg)
	return l.emitStr(tKEYWORD, string(op))
}
