// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package qasm

import (
	"github.com/consensys/go-qasm/pkg/util/source/lex"
)

// END_OF signals "end of file"
const END_OF uint = 0

// WHITESPACE signals whitespace (including newlines)
const WHITESPACE uint = 1

// COMMENT signals "// ... \n"
const COMMENT uint = 2

// LBRACE signals "("
const LBRACE uint = 3

// RBRACE signals ")"
const RBRACE uint = 4

// LCURLY signals "{"
const LCURLY uint = 5

// RCURLY signals "}"
const RCURLY uint = 6

// LSQUARE signals "["
const LSQUARE uint = 7

// RSQUARE signals "]"
const RSQUARE uint = 8

// COMMA signals ","
const COMMA uint = 9

// SEMICOLON signals ";"
const SEMICOLON uint = 10

// RIGHTARROW signals "->"
const RIGHTARROW uint = 11

// EQUALS signals "=="
const EQUALS uint = 12

// STRING signals a double-quoted string literal
const STRING uint = 13

// NUMBER signals an integer or real number
const NUMBER uint = 14

// IDENTIFIER signals a keyword, register, gate or parameter name.
const IDENTIFIER uint = 15

// ADD signals "+"
const ADD uint = 16

// SUB signals "-"
const SUB uint = 17

// MUL signals "*"
const MUL uint = 18

// DIV signals "/"
const DIV uint = 19

// POW signals "^"
const POW uint = 20

// Rule for describing whitespace
var whitespace lex.Scanner[rune] = lex.Many(lex.Or(lex.Unit(' '), lex.Unit('\t'), lex.Unit('\r'), lex.Unit('\n')))

var digits lex.Scanner[rune] = lex.Many(lex.Within('0', '9'))

var identifierStart lex.Scanner[rune] = lex.Or(
	lex.Unit('_'),
	lex.Within('a', 'z'),
	lex.Within('A', 'Z'))

var identifierRest lex.Scanner[rune] = lex.Many(lex.Or(
	lex.Unit('_'),
	lex.Within('0', '9'),
	lex.Within('a', 'z'),
	lex.Within('A', 'Z')))

// Rule for describing identifiers
var identifier lex.Scanner[rune] = lex.And(identifierStart, identifierRest)

// Comments start with "//" and continue until a newline or EOF.
var comment lex.Scanner[rune] = lex.And(lex.String("//"), lex.Until('\n'))

// number accepts integers and reals such as "2", "2.0", ".5" or "1e-3".
func number(items []rune) uint {
	n := digits(items)
	// Fractional part
	if int(n) < len(items) && items[n] == '.' {
		n += 1 + digits(items[n+1:])
	}
	// Must have seen at least one digit
	if n == 0 || (n == 1 && items[0] == '.') {
		return 0
	}
	// Exponent
	if int(n) < len(items) && (items[n] == 'e' || items[n] == 'E') {
		m := n + 1
		if int(m) < len(items) && (items[m] == '+' || items[m] == '-') {
			m++
		}
		//
		if e := digits(items[m:]); e > 0 {
			n = m + e
		}
	}
	//
	return n
}

// quoted accepts a double-quoted string literal (without escapes).
func quoted(items []rune) uint {
	if len(items) == 0 || items[0] != '"' {
		return 0
	}
	//
	n := 1 + lex.Until('"')(items[1:])
	if int(n) >= len(items) {
		// unterminated
		return 0
	}
	//
	return n + 1
}

// lexing rules
var rules []lex.LexRule[rune] = []lex.LexRule[rune]{
	lex.Rule(comment, COMMENT),
	lex.Rule(lex.Unit('('), LBRACE),
	lex.Rule(lex.Unit(')'), RBRACE),
	lex.Rule(lex.Unit('{'), LCURLY),
	lex.Rule(lex.Unit('}'), RCURLY),
	lex.Rule(lex.Unit('['), LSQUARE),
	lex.Rule(lex.Unit(']'), RSQUARE),
	lex.Rule(lex.Unit(','), COMMA),
	lex.Rule(lex.Unit(';'), SEMICOLON),
	lex.Rule(lex.String("->"), RIGHTARROW),
	lex.Rule(lex.String("=="), EQUALS),
	lex.Rule(lex.Unit('+'), ADD),
	lex.Rule(lex.Unit('-'), SUB),
	lex.Rule(lex.Unit('*'), MUL),
	lex.Rule(lex.Unit('/'), DIV),
	lex.Rule(lex.Unit('^'), POW),
	lex.Rule[rune](quoted, STRING),
	lex.Rule(whitespace, WHITESPACE),
	lex.Rule[rune](number, NUMBER),
	lex.Rule(identifier, IDENTIFIER),
	lex.Rule(lex.Eof[rune](), END_OF),
}
