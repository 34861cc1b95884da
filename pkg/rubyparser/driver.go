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

package rubyparser

import "github.com/rbparse/rbparse/pkg/rubylex"

// Driver runs a single parse, the way the teacher's Parse loops over
// nextStatement accumulating into statements/errout (pkg/yang/parse.go),
// generalized here to loop over Advance accumulating into
// Tokens/Diagnostics/Comments/MagicComments. Ast stays nil unless a
// Grammar is supplied: this package states the lexer cooperation
// contract, not a Ruby grammar.
type Driver struct {
	// Grammar, if set, builds the AST from the Context in place of the
	// token-collecting loop, and Tokens is then left empty. Left nil,
	// Parse only exercises the lexer end to end.
	Grammar Grammar
}

// Parse scans bytes to completion and returns everything the scan
// produced, mirroring spec.md §6's do_parse return value.
func (d *Driver) Parse(bytes []byte, opts rubylex.Options) ParserResult {
	lex := rubylex.NewLexer(bytes, opts)
	ctx := NewContext(lex)

	var result ParserResult
	if d.Grammar != nil {
		result.Ast = d.Grammar.Parse(ctx)
	} else {
		for {
			tok := ctx.Advance()
			result.Tokens = append(result.Tokens, tok)
			if tok.Kind == rubylex.END_OF_INPUT {
				break
			}
		}
	}

	result.Diagnostics = lex.Diagnostics()
	result.Input = lex.Input()
	result.MagicComments = lex.MagicComments()
	for _, r := range lex.Comments() {
		result.Comments = append(result.Comments, Comment{Range: r})
	}
	return result
}
