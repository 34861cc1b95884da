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

// Package rubyparser supplies the cooperation surface a grammar-driven
// parser needs around rubylex.Lexer (component I): the cmdarg/cond
// context stacks and command_start flag the parser mutates between
// Advance calls, and a minimal Driver that loops over Advance the way a
// real parser would, collecting tokens, comments, magic comments and
// diagnostics. It does not implement Ruby's grammar; the LALR driver and
// AST node catalogue are out of scope (see Grammar below).
package rubyparser

import "github.com/rbparse/rbparse/pkg/rubylex"

// Node is the minimal contract an AST node must satisfy so that tooling
// built on top of a ParserResult can walk it without depending on a
// concrete grammar implementation: every node carries a primary range and
// any number of auxiliary ranges pointing at constituent tokens (keyword_l,
// begin_l, end_l, operator_l, ...).
type Node interface {
	// ExpressionRange is the node's primary source range.
	ExpressionRange() rubylex.Range
	// AuxiliaryRanges returns the node's named auxiliary ranges, e.g.
	// {"keyword_l": ..., "begin_l": ..., "end_l": ...}.
	AuxiliaryRanges() map[string]rubylex.Range
	// Children returns the node's child nodes, in source order.
	Children() []Node
}

// Comment is a single #-to-end-of-line or =begin/=end range surfaced
// alongside the AST, exactly as rubylex.Lexer.Comments reports them.
type Comment struct {
	Range rubylex.Range
}

// Grammar is the seam a real LALR (or any other) Ruby grammar implements
// to plug into Driver.Parse. Supplying one is what turns a ParserResult's
// nil Ast into a populated tree; without one, Driver only exercises the
// lexer's contract end to end, per this package's explicit non-goal of
// inventing the grammar itself.
type Grammar interface {
	// Parse consumes tokens from ctx until END_OF_INPUT and returns the
	// root node, or nil if the input produced no expression (an empty
	// program, or a fatal diagnostic before any node was built).
	Parse(ctx *Context) Node
}

// ParserResult is everything a single parse produces, mirroring
// spec.md §6's do_parse return value.
type ParserResult struct {
	Ast           Node
	Tokens        []rubylex.Token
	Diagnostics   []rubylex.Diagnostic
	Input         *rubylex.Input
	Comments      []Comment
	MagicComments []rubylex.MagicComment
}
