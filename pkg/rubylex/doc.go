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

// Package rubylex implements the mode-carrying lexer for Ruby source: it
// consumes a byte buffer and produces a stream of tokens with byte-accurate
// source ranges, disambiguating context-sensitive bytes (?, %, /, *, &, :,
// <<) by tracking lex_state and an active string-literal/heredoc stack.
//
//	tIDENTIFIER  tCONSTANT   tIVAR        tGVAR        tFID
//	tINTEGER     tFLOAT      tSTRING_BEG  tSTRING_END  tSTRING_CONTENT
//	tREGEXP_BEG  tREGEXP_END tSYMBEG      tLABEL       tCHAR
//	tEH          tSP         tNL          END_OF_INPUT ...
//
// The grammar-driven parser, AST node catalogue, and diagnostic message
// catalogue are out of scope: this package states only the contract it
// exposes to them (see package rubyparser for the cooperation surface).
package rubylex
