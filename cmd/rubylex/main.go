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

// Program rubylex scans Ruby source and displays the resulting token
// stream or diagnostics.
//
// Usage: rubylex [--format FORMAT] [--debug] [FILE ...]
//
// FORMAT, which defaults to "tokens", selects what is printed. Use
// "rubylex --help" for the list of available formats.
//
// If no FILE is given, standard input is scanned.
package main

import (
	"fmt"
	"io/ioutil"
	"os"
	"sort"
	"strings"

	"github.com/pborman/getopt"

	"github.com/rbparse/rbparse/pkg/rubylex"
	"github.com/rbparse/rbparse/pkg/rubyparser"
)

// Each format must register a formatter with register. The function f is
// called once per scanned file with that file's ParserResult.
type formatter struct {
	name string
	f    func(name string, res rubyparser.ParserResult)
	help string
}

var formatters = map[string]*formatter{}

func register(f *formatter) { formatters[f.name] = f }

func init() {
	register(&formatter{
		name: "tokens",
		help: "one line per token: kind, byte range, literal value",
		f:    printTokens,
	})
	register(&formatter{
		name: "diagnostics",
		help: "one line per diagnostic: severity, kind, byte range",
		f:    printDiagnostics,
	})
}

func printTokens(name string, res rubyparser.ParserResult) {
	for _, t := range res.Tokens {
		fmt.Printf("%s: %s\n", name, t)
	}
}

func printDiagnostics(name string, res rubyparser.ParserResult) {
	for _, d := range res.Diagnostics {
		fmt.Printf("%s:%d:%d: %s\n", name, d.Range.Start, d.Range.End, d)
	}
}

var stop = os.Exit

func main() {
	var format string
	var debug bool
	var help bool

	formats := make([]string, 0, len(formatters))
	for k := range formatters {
		formats = append(formats, k)
	}
	sort.Strings(formats)

	getopt.StringVarLong(&format, "format", 0, "format to display: "+strings.Join(formats, ", "), "FORMAT")
	getopt.BoolVarLong(&debug, "debug", 0, "trace lex-state transitions to stderr")
	getopt.BoolVarLong(&help, "help", '?', "display help")
	getopt.SetParameters("[FILE ...]")

	if err := getopt.Getopt(func(o getopt.Option) bool { return true }); err != nil {
		fmt.Fprintln(os.Stderr, err)
		getopt.PrintUsage(os.Stderr)
		stop(1)
	}

	if help {
		getopt.CommandLine.PrintUsage(os.Stderr)
		fmt.Fprintf(os.Stderr, "\nFormats:\n")
		for _, fn := range formats {
			fmt.Fprintf(os.Stderr, "    %s - %s\n", fn, formatters[fn].help)
		}
		stop(0)
	}

	if format == "" {
		format = "tokens"
	}
	fm, ok := formatters[format]
	if !ok {
		fmt.Fprintf(os.Stderr, "%s: invalid format.  Choices are %s\n", format, strings.Join(formats, ", "))
		stop(1)
	}

	files := getopt.Args()
	if len(files) == 0 {
		data, err := ioutil.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			stop(1)
		}
		scanOne("<STDIN>", data, debug, fm)
		return
	}

	for _, name := range files {
		data, err := ioutil.ReadFile(name)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		scanOne(name, data, debug, fm)
	}
}

func scanOne(name string, data []byte, debug bool, fm *formatter) {
	d := rubyparser.Driver{}
	res := d.Parse(data, rubylex.Options{BufferName: name, Debug: debug})
	fm.f(name, res)
}
