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

import "fmt"

// TokenKind is a closed enum of the lexical token kinds the scanner can
// produce. Single-character punctuation tokens that have no dedicated
// semantic meaning (e.g. '(' ')' ',') are represented by their own named
// constants too, so the parser never has to special-case raw bytes.
type TokenKind int

const (
	tINVALID TokenKind = iota

	tIDENTIFIER
	tCONSTANT
	tIVAR // @foo
	tCVAR // @@foo
	tGVAR // $foo
	tFID  // identifier ending in ? or !
	tOpASGN
	tINTEGER
	tFLOAT
	tRATIONAL
	tIMAGINARY
	tCHAR
	tUPLUS
	tUMINUS
	tUMINUS_NUM

	tSTRING_BEG
	tSTRING_END
	tSTRING_DEND // closing } of #{...}
	tSTRING_CONTENT
	tSTRING_DVAR // #$x or #@x shorthand interpolation
	tSTRING_DBEG // #{

	tXSTRING_BEG

	tREGEXP_BEG
	tREGEXP_END
	tREGEXP_OPT

	tSYMBEG
	tLABEL
	tLABEL_END

	tNL
	tSP
	tEH // ?  (ternary)
	tCOLON
	tCOLON2
	tCOLON3
	tDOT
	tDOT2
	tDOT3
	tAMP
	tANDOP
	tOROP
	tSTAR
	tDSTAR
	tLSHFT
	tRSHFT
	tLPAREN
	tLPAREN_ARG
	tRPAREN
	tLBRACK
	tRBRACK
	tLBRACE
	tLBRACE_ARG
	tRBRACE
	tCOMMA
	tSEMI
	tBACKSLASH

	tKEYWORD

	tUNARY_NUM
	tCOMMENT

	END_OF_INPUT
	tERROR
)

//go:generate stringer -type=TokenKind
func (k TokenKind) String() string {
	if s, ok := tokenKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

var tokenKindNames = map[TokenKind]string{
	tINVALID:        "INVALID",
	tIDENTIFIER:     "tIDENTIFIER",
	tCONSTANT:       "tCONSTANT",
	tIVAR:           "tIVAR",
	tCVAR:           "tCVAR",
	tGVAR:           "tGVAR",
	tFID:            "tFID",
	tOpASGN:         "tOP_ASGN",
	tINTEGER:        "tINTEGER",
	tFLOAT:          "tFLOAT",
	tRATIONAL:       "tRATIONAL",
	tIMAGINARY:      "tIMAGINARY",
	tCHAR:           "tCHAR",
	tUPLUS:          "tUPLUS",
	tUMINUS:         "tUMINUS",
	tUMINUS_NUM:     "tUMINUS_NUM",
	tSTRING_BEG:     "tSTRING_BEG",
	tSTRING_END:     "tSTRING_END",
	tSTRING_DEND:    "tSTRING_DEND",
	tSTRING_CONTENT: "tSTRING_CONTENT",
	tSTRING_DVAR:    "tSTRING_DVAR",
	tSTRING_DBEG:    "tSTRING_DBEG",
	tXSTRING_BEG:    "tXSTRING_BEG",
	tREGEXP_BEG:     "tREGEXP_BEG",
	tREGEXP_END:     "tREGEXP_END",
	tREGEXP_OPT:     "tREGEXP_OPT",
	tSYMBEG:         "tSYMBEG",
	tLABEL:          "tLABEL",
	tLABEL_END:      "tLABEL_END",
	tNL:             "tNL",
	tSP:             "tSP",
	tEH:             "tEH",
	tCOLON:          "tCOLON",
	tCOLON2:         "tCOLON2",
	tCOLON3:         "tCOLON3",
	tDOT:            "tDOT",
	tDOT2:           "tDOT2",
	tDOT3:           "tDOT3",
	tAMP:            "tAMP",
	tANDOP:          "tANDOP",
	tOROP:           "tOROP",
	tSTAR:           "tSTAR",
	tDSTAR:          "tDSTAR",
	tLSHFT:          "tLSHFT",
	tRSHFT:          "tRSHFT",
	tLPAREN:         "tLPAREN",
	tLPAREN_ARG:     "tLPAREN_ARG",
	tRPAREN:         "tRPAREN",
	tLBRACK:         "tLBRACK",
	tRBRACK:         "tRBRACK",
	tLBRACE:         "tLBRACE",
	tLBRACE_ARG:     "tLBRACE_ARG",
	tRBRACE:         "tRBRACE",
	tCOMMA:          "tCOMMA",
	tSEMI:           "tSEMI",
	tBACKSLASH:      "tBACKSLASH",
	tKEYWORD:        "tKEYWORD",
	tCOMMENT:        "tCOMMENT",
	END_OF_INPUT:    "END_OF_INPUT",
	tERROR:          "tERROR",
}

// Range is a half-open [Start, End) byte interval into the (possibly
// decoded) input. It is a plain value type, anchored to an Input by the
// offsets it carries rather than by a pointer, so it outlives any one
// Token.
type Range struct {
	Start int
	End   int
}

// Source returns the range's literal surface text from bytes.
func (r Range) Source(bytes []byte) string {
	if r.Start < 0 || r.End > len(bytes) || r.Start > r.End {
		return ""
	}
	return string(bytes[r.Start:r.End])
}

// Len returns the number of bytes the range spans.
func (r Range) Len() int { return r.End - r.Start }

// LiteralValueKind distinguishes the payload carried by a Token.
type LiteralValueKind int

const (
	LiteralNone LiteralValueKind = iota
	LiteralBytes
	LiteralInteger
	LiteralFloat
	LiteralString
)

// LiteralValue is a tagged union over the value a token carries, mirroring
// spec.md's `None | Bytes | Integer | Float | String`.
type LiteralValue struct {
	Kind    LiteralValueKind
	Bytes   []byte
	Integer int64
	Float   float64
	Str     string
}

// Token is the immutable value the scanner emits one of per Advance call.
type Token struct {
	Kind  TokenKind
	Value LiteralValue
	Range Range
}

func (t Token) String() string {
	switch t.Value.Kind {
	case LiteralString, LiteralBytes:
		return fmt.Sprintf("%s(%q)@%d:%d", t.Kind, t.Value.Str, t.Range.Start, t.Range.End)
	default:
		return fmt.Sprintf("%s@%d:%d", t.Kind, t.Range.Start, t.Range.End)
	}
}
