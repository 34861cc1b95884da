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

import "fmt"

// Severity classifies a Diagnostic. Warning and Error are both recoverable
// (scanning continues); Fatal stops the scan and causes every subsequent
// Advance call to return an END_OF_INPUT token.
type Severity int

const (
	Warning Severity = iota
	Error
	Fatal
)

func (s Severity) String() string {
	switch s {
	case Warning:
		return "warning"
	case Error:
		return "error"
	case Fatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// DiagnosticKind enumerates the lexical problems the scanner can report.
// Grammatical ("unexpected token") and semantic-lite (duplicate keyword
// argument) kinds belong to the external parser, not this package.
type DiagnosticKind int

const (
	IncompleteCharacterSyntax DiagnosticKind = iota
	AmbiguousTernaryOperator
	AmbiguousFirstArgument
	UnterminatedString
	UnterminatedRegexp
	UnterminatedList
	UnterminatedHeredoc
	UnterminatedEmbeddedDocument
	InvalidEscapeCharacter
	InvalidMultibyteChar
	InvalidCharacterSyntax
	InvalidUnicodeEscape
	UnknownRegexOption
	EncodingError
	WarnSpaceChar
	AmbiguousSlash
	AmbiguousUnaryOperator
)

var diagnosticKindNames = map[DiagnosticKind]string{
	IncompleteCharacterSyntax:    "incomplete character syntax",
	AmbiguousTernaryOperator:     "ambiguous ternary operator",
	AmbiguousFirstArgument:       "ambiguous first argument",
	UnterminatedString:           "unterminated string meets end of file",
	UnterminatedRegexp:           "unterminated regexp meets end of file",
	UnterminatedList:             "unterminated list meets end of file",
	UnterminatedHeredoc:          "can't find string terminator for heredoc",
	UnterminatedEmbeddedDocument: "embedded document meets end of file",
	InvalidEscapeCharacter:       "invalid escape character syntax",
	InvalidMultibyteChar:         "invalid multibyte char",
	InvalidCharacterSyntax:       "invalid character syntax",
	InvalidUnicodeEscape:         "invalid unicode escape",
	UnknownRegexOption:           "unknown regexp option",
	EncodingError:                "encoding error",
	WarnSpaceChar:                "whitespace before operator",
	AmbiguousSlash:               "ambiguous first argument; put parentheses or a space even after `/' operator",
	AmbiguousUnaryOperator:       "ambiguous unary operator",
}

func (k DiagnosticKind) String() string {
	if s, ok := diagnosticKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("DiagnosticKind(%d)", int(k))
}

// Diagnostic is a single warning/error/fatal accumulated by the sink.
// Text carries the rendered message (for kinds parameterized with e.g. the
// ambiguous word, per spec.md's AmbiguousTernaryOperator(String)).
type Diagnostic struct {
	Severity Severity
	Kind     DiagnosticKind
	Text     string
	Range    Range
}

func (d Diagnostic) String() string {
	if d.Text != "" {
		return fmt.Sprintf("%s: %s", d.Severity, d.Text)
	}
	return fmt.Sprintf("%s: %s", d.Severity, d.Kind)
}

// Sink is an append-only accumulator for diagnostics produced while
// scanning. It never panics or returns an error to the scanner; callers
// inspect Diagnostics() after the scan completes.
type Sink struct {
	diagnostics []Diagnostic
	fatal       bool
}

// NewSink returns an empty diagnostic sink.
func NewSink() *Sink {
	return &Sink{}
}

// Warn appends a non-fatal warning.
func (s *Sink) Warn(kind DiagnosticKind, r Range) {
	s.append(Warning, kind, "", r)
}

// Warnf appends a non-fatal warning with a rendered message.
func (s *Sink) Warnf(kind DiagnosticKind, r Range, format string, args ...interface{}) {
	s.append(Warning, kind, fmt.Sprintf(format, args...), r)
}

// ErrorAt appends a recoverable error; the resulting AST (built by the
// external parser) may be partial but scanning continues.
func (s *Sink) ErrorAt(kind DiagnosticKind, r Range) {
	s.append(Error, kind, "", r)
}

// Errorf appends a recoverable error with a rendered message.
func (s *Sink) Errorf(kind DiagnosticKind, r Range, format string, args ...interface{}) {
	s.append(Error, kind, fmt.Sprintf(format, args...), r)
}

// CompileError appends a fatal diagnostic. Once called, IsFatal reports
// true and every subsequent Advance call must return END_OF_INPUT.
func (s *Sink) CompileError(kind DiagnosticKind, r Range) {
	s.append(Fatal, kind, "", r)
	s.fatal = true
}

func (s *Sink) append(sev Severity, kind DiagnosticKind, text string, r Range) {
	s.diagnostics = append(s.diagnostics, Diagnostic{Severity: sev, Kind: kind, Text: text, Range: r})
}

// IsFatal reports whether a fatal diagnostic has been recorded.
func (s *Sink) IsFatal() bool { return s.fatal }

// Diagnostics returns all diagnostics accumulated so far, oldest first.
func (s *Sink) Diagnostics() []Diagnostic {
	return s.diagnostics
}
