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

// keywordInfo describes one entry of the keyword table spec.md §4.F
// requires: the state to transition to depends on whether the scanner was
// already in EXPR_MID (return/break/next/... context) when the keyword was
// read, and some keywords (if/unless/while/until/rescue) also have a
// modifier form recognized by the external parser from EXPR_BEG context
// following a statement -- the lexer only needs to flag that a keyword
// supports the modifier reading, not resolve it (that's a grammar
// decision).
type keywordInfo struct {
	name          string
	stateInMid    LexState
	stateOther    LexState
	hasModifier   bool
}

// keywordTable is the 41-entry reserved-word table (__LINE__ through
// yield); do/do_cond/do_block disambiguation is not modeled here since it
// additionally depends on the parser's cond_stack (spec.md §4.I): the
// scanner emits one "do" keyword token and leaves the choice to the parser.
var keywordTable = map[string]keywordInfo{
	"__LINE__":     {"__LINE__", ExprEnd, ExprEnd, false},
	"__FILE__":     {"__FILE__", ExprEnd, ExprEnd, false},
	"__ENCODING__": {"__ENCODING__", ExprEnd, ExprEnd, false},
	"BEGIN":        {"BEGIN", ExprEnd, ExprEnd, false},
	"END":          {"END", ExprEnd, ExprEnd, false},
	"alias":        {"alias", ExprFname, ExprFname, false},
	"and":          {"and", ExprBeg, ExprBeg, false},
	"begin":        {"begin", ExprBeg, ExprBeg, false},
	"break":        {"break", ExprMid, ExprMid, false},
	"case":         {"case", ExprBeg, ExprBeg, false},
	"class":        {"class", ExprClass, ExprClass, false},
	"def":          {"def", ExprFname, ExprFname, false},
	"defined?":     {"defined?", ExprArg, ExprArg, false},
	"do":           {"do", ExprBeg, ExprBeg, false},
	"else":         {"else", ExprBeg, ExprBeg, false},
	"elsif":        {"elsif", ExprBeg, ExprBeg, false},
	"end":          {"end", ExprEnd, ExprEnd, false},
	"ensure":       {"ensure", ExprBeg, ExprBeg, false},
	"false":        {"false", ExprEnd, ExprEnd, false},
	"for":          {"for", ExprBeg, ExprBeg, false},
	"if":           {"if", ExprBeg, ExprBeg, true},
	"in":           {"in", ExprBeg, ExprBeg, false},
	"module":       {"module", ExprBeg, ExprBeg, false},
	"next":         {"next", ExprMid, ExprMid, false},
	"nil":          {"nil", ExprEnd, ExprEnd, false},
	"not":          {"not", ExprArg, ExprBeg, false},
	"or":           {"or", ExprBeg, ExprBeg, false},
	"redo":         {"redo", ExprEnd, ExprEnd, false},
	"rescue":       {"rescue", ExprMid, ExprArg, true},
	"retry":        {"retry", ExprEnd, ExprEnd, false},
	"return":       {"return", ExprMid, ExprMid, false},
	"self":         {"self", ExprEnd, ExprEnd, false},
	"super":        {"super", ExprArg, ExprArg, false},
	"then":         {"then", ExprBeg, ExprBeg, false},
	"true":         {"true", ExprEnd, ExprEnd, false},
	"undef":        {"undef", ExprFname, ExprFname, false},
	"unless":       {"unless", ExprBeg, ExprBeg, true},
	"until":        {"until", ExprBeg, ExprBeg, true},
	"when":         {"when", ExprBeg, ExprBeg, false},
	"while":        {"while", ExprBeg, ExprBeg, true},
	"yield":        {"yield", ExprArg, ExprArg, false},
}
