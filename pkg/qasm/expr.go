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
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/consensys/go-qasm/pkg/util/source"
	"github.com/consensys/go-qasm/pkg/util/source/lex"
)

// Tolerance used when comparing angles.
const Tolerance = 1e-10

// SplitParams splits a parameter list on its top-level commas, such that
// "pi/2,sin(0.1)" gives ["pi/2", "sin(0.1)"].
func SplitParams(text string) []string {
	var (
		params []string
		depth  int
		start  int
	)
	//
	if text == "" {
		return nil
	}
	//
	for i, c := range text {
		switch c {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				params = append(params, text[start:i])
				start = i + 1
			}
		}
	}
	//
	return append(params, text[start:])
}

// EvalParam evaluates a constant parameter expression such as "-3*pi/4" or
// "sin(0.2)^2".  Expressions referring to unbound names (e.g. the formal
// parameters of a gate definition) cannot be evaluated.
func EvalParam(text string) (float64, error) {
	var (
		srcfile = source.NewSourceFile("<param>", []byte(text))
		lexer   = lex.NewLexer(srcfile.Contents(), rules...)
		tokens  = lexer.Collect()
	)
	//
	if lexer.Remaining() != 0 {
		return 0, fmt.Errorf("invalid parameter expression \"%s\"", text)
	}
	//
	eval := evaluator{srcfile: srcfile}
	//
	for _, t := range tokens {
		if t.Kind != WHITESPACE && t.Kind != COMMENT {
			eval.tokens = append(eval.tokens, t)
		}
	}
	//
	value, err := eval.parseExpr()
	if err != nil {
		return 0, err
	} else if eval.lookahead().Kind != END_OF {
		return 0, fmt.Errorf("unexpected \"%s\" in \"%s\"", eval.text(eval.lookahead()), text)
	}
	//
	return value, nil
}

// FormatAngle formats an angle, using pi notation for common fractions.
func FormatAngle(val float64) string {
	type piForm struct {
		value   float64
		display string
	}
	//
	forms := []piForm{
		{2 * math.Pi, "2*pi"},
		{math.Pi, "pi"},
		{math.Pi / 2, "pi/2"},
		{math.Pi / 3, "pi/3"},
		{math.Pi / 4, "pi/4"},
		{math.Pi / 6, "pi/6"},
		{math.Pi / 8, "pi/8"},
		{3 * math.Pi / 4, "3*pi/4"},
		{3 * math.Pi / 2, "3*pi/2"},
		{2 * math.Pi / 3, "2*pi/3"},
	}
	//
	if math.Abs(val) < Tolerance {
		return "0"
	}
	//
	for _, f := range forms {
		if math.Abs(val-f.value) < Tolerance {
			return f.display
		} else if math.Abs(val+f.value) < Tolerance {
			return "-" + f.display
		}
	}
	//
	return strconv.FormatFloat(val, 'g', -1, 64)
}

var functions = map[string]func(float64) float64{
	"sin":  math.Sin,
	"cos":  math.Cos,
	"tan":  math.Tan,
	"exp":  math.Exp,
	"ln":   math.Log,
	"sqrt": math.Sqrt,
}

// evaluator is a small recursive-descent evaluator over the OpenQASM lexer
// tokens, respecting the usual precedence of "+-", "*/", unary "-" and "^".
type evaluator struct {
	srcfile *source.File
	tokens  []lex.Token
	index   int
}

func (p *evaluator) parseExpr() (float64, error) {
	lhs, err := p.parseTerm()
	//
	for err == nil {
		var rhs float64
		//
		switch p.lookahead().Kind {
		case ADD:
			p.index++
			rhs, err = p.parseTerm()
			lhs += rhs
		case SUB:
			p.index++
			rhs, err = p.parseTerm()
			lhs -= rhs
		default:
			return lhs, nil
		}
	}
	//
	return 0, err
}

func (p *evaluator) parseTerm() (float64, error) {
	lhs, err := p.parseUnary()
	//
	for err == nil {
		var rhs float64
		//
		switch p.lookahead().Kind {
		case MUL:
			p.index++
			rhs, err = p.parseUnary()
			lhs *= rhs
		case DIV:
			p.index++
			rhs, err = p.parseUnary()
			lhs /= rhs
		default:
			return lhs, nil
		}
	}
	//
	return 0, err
}

func (p *evaluator) parseUnary() (float64, error) {
	switch p.lookahead().Kind {
	case SUB:
		p.index++
		val, err := p.parseUnary()
		//
		return -val, err
	case ADD:
		p.index++
		return p.parseUnary()
	}
	//
	base, err := p.parsePrimary()
	if err != nil || p.lookahead().Kind != POW {
		return base, err
	}
	// Exponentiation is right associative
	p.index++
	//
	exp, err := p.parseUnary()
	//
	return math.Pow(base, exp), err
}

func (p *evaluator) parsePrimary() (float64, error) {
	token := p.lookahead()
	text := p.text(token)
	//
	switch token.Kind {
	case NUMBER:
		p.index++
		return strconv.ParseFloat(text, 64)
	case LBRACE:
		p.index++
		return p.parseBracketed()
	case IDENTIFIER:
		p.index++
		//
		if strings.EqualFold(text, "pi") {
			return math.Pi, nil
		} else if fn, ok := functions[text]; ok && p.lookahead().Kind == LBRACE {
			p.index++
			val, err := p.parseBracketed()
			//
			return fn(val), err
		}
		//
		return 0, fmt.Errorf("unbound name \"%s\"", text)
	case END_OF:
		return 0, fmt.Errorf("unexpected end of expression")
	default:
		return 0, fmt.Errorf("unexpected \"%s\"", text)
	}
}

// Parse an expression followed by ")", where "(" was already consumed.
func (p *evaluator) parseBracketed() (float64, error) {
	val, err := p.parseExpr()
	if err != nil {
		return 0, err
	} else if p.lookahead().Kind != RBRACE {
		return 0, fmt.Errorf("expected \")\"")
	}
	//
	p.index++
	//
	return val, nil
}

func (p *evaluator) lookahead() lex.Token {
	return p.tokens[p.index]
}

func (p *evaluator) text(token lex.Token) string {
	return p.srcfile.Text(token.Span)
}
