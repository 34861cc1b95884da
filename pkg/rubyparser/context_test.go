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

import (
	"testing"

	"github.com/rbparse/rbparse/pkg/rubylex"
)

func TestContextCondStack(t *testing.T) {
	lex := rubylex.NewLexer([]byte("x"), rubylex.Options{})
	ctx := NewContext(lex)

	if lex.CondSeen() {
		t.Fatalf("CondSeen() = true before any PushCond")
	}

	ctx.PushCond(true)
	if !lex.CondSeen() {
		t.Errorf("CondSeen() = false after PushCond(true)")
	}

	ctx.PushCond(false)
	if lex.CondSeen() {
		t.Errorf("CondSeen() = true after nested PushCond(false)")
	}

	ctx.PopCond()
	if !lex.CondSeen() {
		t.Errorf("CondSeen() = false after PopCond, want the outer true to resurface")
	}

	ctx.PopCond()
	if lex.CondSeen() {
		t.Errorf("CondSeen() = true after popping the last frame")
	}
}

func TestContextCmdArgStack(t *testing.T) {
	lex := rubylex.NewLexer([]byte("x"), rubylex.Options{})
	ctx := NewContext(lex)

	ctx.PushCmdArg(true)
	if !lex.CmdArgSeen() {
		t.Errorf("CmdArgSeen() = false after PushCmdArg(true)")
	}
	ctx.PopCmdArg()
	if lex.CmdArgSeen() {
		t.Errorf("CmdArgSeen() = true after PopCmdArg with nothing left")
	}
}

func TestContextPopOnEmptyStackStaysFalse(t *testing.T) {
	lex := rubylex.NewLexer([]byte("x"), rubylex.Options{})
	ctx := NewContext(lex)

	ctx.PopCond()
	ctx.PopCmdArg()
	if lex.CondSeen() || lex.CmdArgSeen() {
		t.Errorf("popping an empty stack changed lexer state")
	}
}

func TestContextSetCommandStart(t *testing.T) {
	lex := rubylex.NewLexer([]byte("x"), rubylex.Options{})
	ctx := NewContext(lex)

	ctx.SetCommandStart(true)
	if !lex.CommandStart() {
		t.Errorf("CommandStart() = false after SetCommandStart(true)")
	}
	ctx.SetCommandStart(false)
	if lex.CommandStart() {
		t.Errorf("CommandStart() = true after SetCommandStart(false)")
	}
}

func TestContextAdvanceDelegatesToLexer(t *testing.T) {
	lex := rubylex.NewLexer([]byte("42"), rubylex.Options{})
	ctx := NewContext(lex)

	tok := ctx.Advance()
	if tok.Value.Integer != 42 {
		t.Errorf("Advance() = %+v, want integer 42", tok)
	}
}
