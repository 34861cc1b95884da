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

// Context is the shared value spec.md §9's cyclic scanner/parser coupling
// note calls for: it owns the cond and cmdarg context stacks and the
// command_start flag, and is the only thing allowed to mutate the
// lexer's notion of them (spec.md §4.I). It is owned by whatever drives
// the parse -- Driver here, or a caller's own grammar -- and passed by
// reference, never held as global state.
//
// The push/pop pair is shaped directly on the teacher's parser's own
// []*token stack (pkg/yang/parse.go's push/pop over p.tokens): a plain
// LIFO of the boolean each nested cond/cmdarg context carries, with the
// lexer's single current-value field kept in sync on every mutation.
type Context struct {
	lex *rubylex.Lexer

	condStack   []bool
	cmdargStack []bool
}

// NewContext wraps lex, starting both stacks empty (cond/cmdarg false
// outside any nested context).
func NewContext(lex *rubylex.Lexer) *Context {
	return &Context{lex: lex}
}

// Lexer returns the underlying lexer, for callers that need to call
// Advance directly alongside the context callbacks.
func (c *Context) Lexer() *rubylex.Lexer { return c.lex }

// Advance returns the next token. It is the only way tokens are obtained
// (spec.md §4.I); Context adds no buffering of its own.
func (c *Context) Advance() rubylex.Token { return c.lex.Advance() }

// PushCond opens a nested condition-expression context (entering the test
// of a while/until/if), consulted by the lexer to disambiguate a trailing
// ':' as a label rather than a ternary/hash separator.
func (c *Context) PushCond(seen bool) {
	c.condStack = append(c.condStack, seen)
	c.lex.SetCondSeen(seen)
}

// PopCond closes the innermost condition-expression context, restoring
// the enclosing one (or false, if none remains).
func (c *Context) PopCond() {
	if n := len(c.condStack); n > 0 {
		c.condStack = c.condStack[:n-1]
	}
	c.lex.SetCondSeen(c.condTop())
}

func (c *Context) condTop() bool {
	if n := len(c.condStack); n > 0 {
		return c.condStack[n-1]
	}
	return false
}

// PushCmdArg opens a nested command-argument context (entering a
// paren-less command call's argument list).
func (c *Context) PushCmdArg(seen bool) {
	c.cmdargStack = append(c.cmdargStack, seen)
	c.lex.SetCmdArgSeen(seen)
}

// PopCmdArg closes the innermost command-argument context.
func (c *Context) PopCmdArg() {
	if n := len(c.cmdargStack); n > 0 {
		c.cmdargStack = c.cmdargStack[:n-1]
	}
	c.lex.SetCmdArgSeen(c.cmdargTop())
}

func (c *Context) cmdargTop() bool {
	if n := len(c.cmdargStack); n > 0 {
		return c.cmdargStack[n-1]
	}
	return false
}

// SetCommandStart drives the lexer's command_start flag directly; unlike
// cond/cmdarg it is not stacked, matching MRI's own single bit.
func (c *Context) SetCommandStart(b bool) { c.lex.SetCommandStart(b) }
