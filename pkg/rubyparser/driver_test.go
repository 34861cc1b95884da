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

func TestDriverParseWithoutGrammarCollectsTokens(t *testing.T) {
	d := Driver{}
	res := d.Parse([]byte("x = 1"), rubylex.Options{BufferName: "test.rb"})

	if res.Ast != nil {
		t.Errorf("Ast = %v, want nil with no Grammar set", res.Ast)
	}
	if len(res.Tokens) == 0 {
		t.Fatalf("Tokens is empty")
	}
	last := res.Tokens[len(res.Tokens)-1]
	if last.Kind != rubylex.END_OF_INPUT {
		t.Errorf("last token kind = %v, want END_OF_INPUT", last.Kind)
	}
	if res.Input == nil || string(res.Input.Bytes) != "x = 1" {
		t.Errorf("Input = %+v, want bytes %q", res.Input, "x = 1")
	}
}

func TestDriverParseWithGrammar(t *testing.T) {
	fg := &fakeGrammar{}
	d := Driver{Grammar: fg}
	res := d.Parse([]byte("x = 1"), rubylex.Options{})

	if res.Ast != fg.node {
		t.Errorf("Ast = %v, want the fakeGrammar's node", res.Ast)
	}
	if len(res.Tokens) != 0 {
		t.Errorf("Tokens = %v, want none collected when a Grammar drives the parse", res.Tokens)
	}
	if !fg.called {
		t.Errorf("Grammar.Parse was not invoked")
	}
}

func TestDriverParseSurfacesDiagnostics(t *testing.T) {
	d := Driver{}
	res := d.Parse([]byte("?"), rubylex.Options{})

	if len(res.Diagnostics) == 0 {
		t.Errorf("Diagnostics is empty, want at least one for an incomplete character literal")
	}
}

func TestDriverParseSurfacesMagicComments(t *testing.T) {
	d := Driver{}
	res := d.Parse([]byte("# frozen_string_literal: true\n1"), rubylex.Options{})

	if len(res.MagicComments) != 1 || res.MagicComments[0].Name != "frozen_string_literal" {
		t.Errorf("MagicComments = %+v, want one frozen_string_literal entry", res.MagicComments)
	}
}

type fakeGrammar struct {
	called bool
	node   Node
}

func (g *fakeGrammar) Parse(ctx *Context) Node {
	g.called = true
	g.node = fakeNode{}
	return g.node
}

type fakeNode struct{}

func (fakeNode) ExpressionRange() rubylex.Range          { return rubylex.Range{} }
func (fakeNode) AuxiliaryRanges() map[string]rubylex.Range { return nil }
func (fakeNode) Children() []Node                        { return nil }
