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
package lex

import (
	"testing"

	"github.com/consensys/go-qasm/pkg/util/source"
	"github.com/stretchr/testify/assert"
)

func TestLexer_00(t *testing.T) {
	checkLexer(t, "", 0, Token{END_OF, source.NewSpan(0, 0)})
}

func TestLexer_01(t *testing.T) {
	checkLexer(t, "[", 0,
		Token{LSQUARE, source.NewSpan(0, 1)},
		Token{END_OF, source.NewSpan(1, 1)})
}

func TestLexer_02(t *testing.T) {
	checkLexer(t, "q[0]", 0,
		Token{IDENT, source.NewSpan(0, 1)},
		Token{LSQUARE, source.NewSpan(1, 2)},
		Token{NUMBER, source.NewSpan(2, 3)},
		Token{RSQUARE, source.NewSpan(3, 4)},
		Token{END_OF, source.NewSpan(4, 4)})
}

func TestLexer_03(t *testing.T) {
	// Unknown character halts lexing
	checkLexer(t, "$", 1)
}

func TestLexer_04(t *testing.T) {
	checkLexer(t, "qreg  q12", 0,
		Token{IDENT, source.NewSpan(0, 4)},
		Token{WSPACE, source.NewSpan(4, 6)},
		Token{IDENT, source.NewSpan(6, 9)},
		Token{END_OF, source.NewSpan(9, 9)})
}

func TestLexer_05(t *testing.T) {
	// Keyword must win over the single character
	checkLexer(t, "->-", 0,
		Token{ARROW, source.NewSpan(0, 2)},
		Token{MINUS, source.NewSpan(2, 3)},
		Token{END_OF, source.NewSpan(3, 3)})
}

func TestLexer_06(t *testing.T) {
	// Stops at the first unknown character and reports what remains
	checkLexer(t, "q$q", 2,
		Token{IDENT, source.NewSpan(0, 1)})
}

func TestScanner_Until(t *testing.T) {
	until := Until('\n')
	assert.Equal(t, uint(3), until([]rune("abc\ndef")))
	assert.Equal(t, uint(3), until([]rune("abc")))
	assert.Equal(t, uint(0), until([]rune("\nabc")))
}

func TestScanner_String(t *testing.T) {
	kw := String("gate")
	assert.Equal(t, uint(4), kw([]rune("gate foo")))
	assert.Equal(t, uint(0), kw([]rune("gat")))
}

// ==================================================================
// Framework
// ==================================================================

const END_OF uint = 0
const WSPACE uint = 1
const LSQUARE uint = 2
const RSQUARE uint = 3
const NUMBER uint = 4
const IDENT uint = 5
const ARROW uint = 6
const MINUS uint = 7

var whitespace = Many(Or(Unit(' '), Unit('\t')))

var number = Many(Within('0', '9'))

var ident = And(Or(Within('a', 'z'), Within('A', 'Z')), Many(Or(Within('a', 'z'), Within('0', '9'))))

var rules = []LexRule[rune]{
	Rule(Unit('['), LSQUARE),
	Rule(Unit(']'), RSQUARE),
	Rule(String("->"), ARROW),
	Rule(Unit('-'), MINUS),
	Rule(whitespace, WSPACE),
	Rule(number, NUMBER),
	Rule(ident, IDENT),
	Rule(Eof[rune](), END_OF),
}

func checkLexer(t *testing.T, input string, remaining uint, expected ...Token) {
	lexer := NewLexer([]rune(input), rules...)
	tokens := lexer.Collect()
	//
	assert.Equal(t, remaining, lexer.Remaining())
	assert.Equal(t, expected, tokens)
}
