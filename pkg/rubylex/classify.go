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

// This file implements the pure byte/rune predicates component C requires:
// no state, no I/O, just classification. Multibyte length checking is not
// here: MultibyteCharLen is on Buffer, since it needs the input bytes.

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func isASCIIWhitespace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }

func isLower(c byte) bool { return c >= 'a' && c <= 'z' }

func isAlpha(c byte) bool { return isUpper(c) || isLower(c) }

func isAlnum(c byte) bool { return isAlpha(c) || isDigit(c) }

func isASCII(c byte) bool { return c < 0x80 }

// isIdentChar reports whether c may appear in the body of an identifier:
// alnum, underscore, or any non-ASCII byte (treated as part of a
// multibyte identifier character).
func isIdentChar(c byte) bool { return isAlnum(c) || c == '_' || !isASCII(c) }

// isIdentStart reports whether c may begin an identifier body (after any
// sigil/case has already been classified): letter, underscore, or
// non-ASCII.
func isIdentStart(c byte) bool { return isAlpha(c) || c == '_' || !isASCII(c) }

// globalNamePunctSet is the set of punctuation bytes valid as the single
// character following '$' in a punctuation global variable ($!, $~, ...).
const globalNamePunctSet = "_~*$?!@/\\;,.=:<>\"&`+0123456789"

func isGlobalNamePunct(c byte) bool {
	for i := 0; i < len(globalNamePunctSet); i++ {
		if globalNamePunctSet[i] == c {
			return true
		}
	}
	return false
}

// escapedControlCode maps a control byte to a printable label for
// whitespace-before-operator warnings (e.g. "?\\t" is reported as "\\t").
func escapedControlCode(c byte) (string, bool) {
	switch c {
	case '\t':
		return "\\t", true
	case '\n':
		return "\\n", true
	case '\v':
		return "\\v", true
	case '\f':
		return "\\f", true
	case '\r':
		return "\\r", true
	case ' ':
		return " ", true
	default:
		if c < 0x20 || c == 0x7f {
			return "", true
		}
		return "", false
	}
}

// isRegexMeta reports whether c is one of the "simple" regexp
// metacharacters MRI recognizes directly (used to resolve
// is_simple_re_match, see DESIGN.md).
func isRegexMeta(c byte) bool {
	switch c {
	case '.', '*', '+', '?', '(', ')', '[', ']', '{', '}', '^', '$', '|', '\\':
		return true
	}
	return false
}
