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

// DecodeFunc re-encodes bytes from a named source encoding to UTF-8. It is
// invoked synchronously on the calling goroutine and must not retain
// references to the input buffer beyond its return (spec.md §5).
type DecodeFunc func(encoding string, bytes []byte) ([]byte, error)

// Options configures a Lexer, mirroring the teacher's Options struct
// (pkg/yang/options.go) generalized to spec.md §6's construction options.
type Options struct {
	// BufferName is used in diagnostic ranges; defaults to "(eval)".
	BufferName string
	// Debug enables trace prints at state transitions, the same
	// stderr-tracing behavior the teacher's lexer.debug field drives.
	Debug bool
	// Decoder re-encodes non-UTF-8/non-ASCII-8BIT magic-comment
	// encodings to UTF-8. Nil means unrecognized encodings are a fatal
	// diagnostic.
	Decoder DecodeFunc
}

func (o Options) bufferName() string {
	if o.BufferName == "" {
		return "(eval)"
	}
	return o.BufferName
}
