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
	"slices"
	"strconv"
	"strings"

	"github.com/consensys/go-qasm/pkg/util/source"
	"github.com/consensys/go-qasm/pkg/util/source/lex"
	log "github.com/sirupsen/logrus"
)

// Parse accepts a given source file representing an OpenQASM 2.0 program and
// parses it into a circuit.  Parsing is best effort: a circuit is always
// returned, and statements which could not be parsed are skipped and reported
// as syntax errors.  Register references are not checked (see Validate).
func Parse(srcfile *source.File) (*Circuit, []source.SyntaxError) {
	parser := NewParser(srcfile)
	circuit, errs := parser.parse()
	//
	log.Debugf("parsed %s with %d operations (%d errors)", srcfile.Filename(), len(circuit.Operations), len(errs))
	//
	return circuit, errs
}

// ParseString parses a given string as an OpenQASM program.
func ParseString(text string) (*Circuit, []source.SyntaxError) {
	return Parse(source.NewSourceFile("<string>", []byte(text)))
}

// ParseFile reads and parses a given file.  The error return is reserved for
// I/O failures, in which case no circuit is returned.
func ParseFile(filename string) (*Circuit, []source.SyntaxError, error) {
	srcfile, err := source.ReadFile(filename)
	if err != nil {
		return nil, nil, err
	}
	//
	circuit, errs := Parse(srcfile)
	//
	return circuit, errs, nil
}

// Parser is a recursive-descent parser for OpenQASM 2.0.
type Parser struct {
	srcfile *source.File
	tokens  []lex.Token
	// Position within the tokens
	index int
}

// NewParser constructs a new parser for a given source file.
func NewParser(srcfile *source.File) *Parser {
	return &Parser{srcfile, nil, 0}
}

func (p *Parser) parse() (*Circuit, []source.SyntaxError) {
	var (
		circuit Circuit
		errs    = p.lex()
	)
	//
	for p.lookahead().Kind != END_OF {
		errs = append(errs, p.parseStatement(&circuit)...)
	}
	//
	return &circuit, errs
}

// Initialise lexer and lex contents.  Lexing stops at the first unknown
// character, which is reported whilst everything before it is still parsed.
func (p *Parser) lex() []source.SyntaxError {
	var (
		errs   []source.SyntaxError
		lexer  = lex.NewLexer(p.srcfile.Contents(), rules...)
		tokens = lexer.Collect()
	)
	//
	if lexer.Remaining() != 0 {
		start, end := lexer.Index(), lexer.Index()+lexer.Remaining()
		err := p.srcfile.SyntaxError(source.NewSpan(int(start), int(end)), "unknown text encountered")
		errs = append(errs, *err)
		// Terminate the token stream where lexing stopped
		tokens = append(tokens, lex.Token{Kind: END_OF, Span: source.NewSpan(int(start), int(start))})
	}
	// Strip whitespace and comments
	p.tokens = slices.DeleteFunc(tokens, func(t lex.Token) bool {
		return t.Kind == WHITESPACE || t.Kind == COMMENT
	})
	//
	return errs
}

func (p *Parser) parseStatement(circuit *Circuit) []source.SyntaxError {
	var (
		lookahead = p.lookahead()
		errs      []source.SyntaxError
		// Token kind to skip past when recovering from an error
		sync = SEMICOLON
		// Declarations occupy a single line, so recovery stops at the next one
		line = false
	)
	//
	switch p.text(lookahead) {
	case "OPENQASM":
		errs, line = p.parseVersion(circuit), true
	case "include":
		errs, line = p.parseInclude(circuit), true
	case "qreg", "creg":
		errs, line = p.parseRegister(circuit), true
	case "gate", "opaque":
		var gate GateDefinition
		//
		if gate, errs = p.parseGateDefinition(); len(errs) == 0 {
			circuit.Gates = append(circuit.Gates, gate)
		} else if p.text(lookahead) == "gate" {
			sync = RCURLY
		}
	default:
		var op Operation
		//
		if op, errs = p.parseOperation(); len(errs) == 0 {
			circuit.Operations = append(circuit.Operations, op)
		}
	}
	// Recover by skipping the remainder of the statement
	if len(errs) > 0 && line {
		p.skipLine(sync)
	} else if len(errs) > 0 {
		p.skipPast(sync)
	}
	//
	return errs
}

func (p *Parser) parseVersion(circuit *Circuit) []source.SyntaxError {
	var (
		version lex.Token
		errs    []source.SyntaxError
	)
	// Advance past "OPENQASM"
	p.match(IDENTIFIER)
	//
	if version, errs = p.expect(NUMBER); len(errs) > 0 {
		return errs
	} else if _, errs = p.expect(SEMICOLON); len(errs) > 0 {
		return errs
	}
	//
	circuit.Version = p.text(version)
	//
	return nil
}

func (p *Parser) parseInclude(circuit *Circuit) []source.SyntaxError {
	var (
		file lex.Token
		errs []source.SyntaxError
	)
	// Advance past "include"
	p.match(IDENTIFIER)
	//
	if file, errs = p.expect(STRING); len(errs) > 0 {
		return errs
	} else if _, errs = p.expect(SEMICOLON); len(errs) > 0 {
		return errs
	}
	// Strip quotes
	name := p.text(file)
	circuit.Includes = append(circuit.Includes, name[1:len(name)-1])
	//
	return nil
}

func (p *Parser) parseRegister(circuit *Circuit) []source.SyntaxError {
	var (
		kind = p.text(p.next())
		name string
		size uint
		errs []source.SyntaxError
	)
	//
	if name, errs = p.parseIdentifier(); len(errs) > 0 {
		return errs
	} else if _, errs = p.expect(LSQUARE); len(errs) > 0 {
		return errs
	} else if size, errs = p.parseNumber(); len(errs) > 0 {
		return errs
	} else if _, errs = p.expect(RSQUARE); len(errs) > 0 {
		return errs
	} else if _, errs = p.expect(SEMICOLON); len(errs) > 0 {
		return errs
	}
	//
	if kind == "qreg" {
		circuit.DeclareQReg(name, size)
	} else {
		circuit.DeclareCReg(name, size)
	}
	//
	return nil
}

// Parse a gate definition "gate name(params) args { body }" or an opaque
// declaration "opaque name(params) args;".
func (p *Parser) parseGateDefinition() (GateDefinition, []source.SyntaxError) {
	var (
		gate   GateDefinition
		params []string
		args   []string
		body   []string
		op     Operation
		errs   []source.SyntaxError
	)
	//
	gate.Opaque = p.text(p.next()) == "opaque"
	//
	if gate.Name, errs = p.parseIdentifier(); len(errs) > 0 {
		return gate, errs
	}
	// Parse (optional) classical parameters
	if p.match(LBRACE) && !p.match(RBRACE) {
		if params, errs = p.parseIdentifierList(); len(errs) > 0 {
			return gate, errs
		} else if _, errs = p.expect(RBRACE); len(errs) > 0 {
			return gate, errs
		}
	}
	// Parse qubit arguments
	if args, errs = p.parseIdentifierList(); len(errs) > 0 {
		return gate, errs
	}
	//
	gate.Params = strings.Join(args, ",")
	if len(params) > 0 {
		gate.Params = fmt.Sprintf("(%s) %s", strings.Join(params, ","), gate.Params)
	}
	//
	if gate.Opaque {
		_, errs = p.expect(SEMICOLON)
		return gate, errs
	} else if _, errs = p.expect(LCURLY); len(errs) > 0 {
		return gate, errs
	}
	// Parse body statements until end of block
	for p.lookahead().Kind != RCURLY {
		if op, errs = p.parseOperation(); len(errs) > 0 {
			return gate, errs
		}
		//
		body = append(body, op.String())
	}
	// Advance past "}"
	p.match(RCURLY)
	//
	gate.Body = strings.Join(body, " ")
	//
	return gate, nil
}

// Parse an operation, such as "h q[0];", "u1(pi/2) q;", "measure q -> c;" or
// "if(c==1) x q[0];".
func (p *Parser) parseOperation() (Operation, []source.SyntaxError) {
	var (
		op      Operation
		qubits  string
		targets string
		errs    []source.SyntaxError
	)
	//
	if p.text(p.lookahead()) == "if" {
		if op.Condition, errs = p.parseCondition(); len(errs) > 0 {
			return op, errs
		}
	}
	//
	if op.Name, errs = p.parseIdentifier(); len(errs) > 0 {
		return op, errs
	}
	// Parse (optional) parameters
	if p.match(LBRACE) {
		if op.Params, errs = p.parseExpressionList(); len(errs) > 0 {
			return op, errs
		}
	}
	// Parse arguments
	if qubits, errs = p.parseArgumentList(); len(errs) > 0 {
		return op, errs
	}
	// Parse (optional) measurement targets
	if p.match(RIGHTARROW) {
		if targets, errs = p.parseArgumentList(); len(errs) > 0 {
			return op, errs
		}
		//
		qubits = fmt.Sprintf("%s -> %s", qubits, targets)
	}
	//
	op.Qubits = qubits
	_, errs = p.expect(SEMICOLON)
	//
	return op, errs
}

// Parse a classical guard "if(c==n)", returning "c==n".
func (p *Parser) parseCondition() (string, []source.SyntaxError) {
	var (
		creg  string
		value uint
		errs  []source.SyntaxError
	)
	// Advance past "if"
	p.match(IDENTIFIER)
	//
	if _, errs = p.expect(LBRACE); len(errs) > 0 {
		return "", errs
	} else if creg, errs = p.parseIdentifier(); len(errs) > 0 {
		return "", errs
	} else if _, errs = p.expect(EQUALS); len(errs) > 0 {
		return "", errs
	} else if value, errs = p.parseNumber(); len(errs) > 0 {
		return "", errs
	} else if _, errs = p.expect(RBRACE); len(errs) > 0 {
		return "", errs
	}
	//
	return fmt.Sprintf("%s==%d", creg, value), nil
}

// Parse a comma-separated list of arguments, each being a register or an
// indexed qubit / bit, returning its normalised form.
func (p *Parser) parseArgumentList() (string, []source.SyntaxError) {
	var (
		args []string
		arg  string
		errs []source.SyntaxError
	)
	//
	for len(args) == 0 || p.match(COMMA) {
		if arg, errs = p.parseArgument(); len(errs) > 0 {
			return "", errs
		}
		//
		args = append(args, arg)
	}
	//
	return strings.Join(args, ","), nil
}

func (p *Parser) parseArgument() (string, []source.SyntaxError) {
	var (
		name  string
		index uint
		errs  []source.SyntaxError
	)
	//
	if name, errs = p.parseIdentifier(); len(errs) > 0 {
		return "", errs
	} else if !p.match(LSQUARE) {
		return name, nil
	} else if index, errs = p.parseNumber(); len(errs) > 0 {
		return "", errs
	} else if _, errs = p.expect(RSQUARE); len(errs) > 0 {
		return "", errs
	}
	//
	return fmt.Sprintf("%s[%d]", name, index), nil
}

// Parse the parameter expressions of an operation up to (and including) the
// closing brace, returning their normalised text.  The opening brace has
// already been consumed.
func (p *Parser) parseExpressionList() (string, []source.SyntaxError) {
	var (
		builder strings.Builder
		depth   = 1
	)
	//
	for {
		token := p.lookahead()
		//
		switch token.Kind {
		case LBRACE:
			depth++
		case RBRACE:
			depth--
		case NUMBER, IDENTIFIER, COMMA, ADD, SUB, MUL, DIV, POW:
		default:
			return "", p.syntaxErrors(token, "unexpected token in parameter list")
		}
		//
		p.next()
		//
		if depth == 0 {
			return builder.String(), nil
		}
		//
		builder.WriteString(p.text(token))
	}
}

func (p *Parser) parseIdentifierList() ([]string, []source.SyntaxError) {
	var (
		names []string
		name  string
		errs  []source.SyntaxError
	)
	//
	for len(names) == 0 || p.match(COMMA) {
		if name, errs = p.parseIdentifier(); len(errs) > 0 {
			return nil, errs
		}
		//
		names = append(names, name)
	}
	//
	return names, nil
}

func (p *Parser) parseIdentifier() (string, []source.SyntaxError) {
	token, errs := p.expect(IDENTIFIER)
	if len(errs) > 0 {
		return "", errs
	}
	//
	return p.text(token), nil
}

func (p *Parser) parseNumber() (uint, []source.SyntaxError) {
	token, errs := p.expect(NUMBER)
	if len(errs) > 0 {
		return 0, errs
	}
	//
	n, err := strconv.ParseUint(p.text(token), 10, 64)
	if err != nil {
		return 0, p.syntaxErrors(token, "expected unsigned integer")
	}
	//
	return uint(n), nil
}

// Get the text representing the given token as a string.
func (p *Parser) text(token lex.Token) string {
	return p.srcfile.Text(token.Span)
}

// Lookahead returns the next token.  This must exist because EOF is always
// appended at the end of the token stream.
func (p *Parser) lookahead() lex.Token {
	return p.tokens[p.index]
}

// Consume the next token, unless it is EOF.
func (p *Parser) next() lex.Token {
	token := p.tokens[p.index]
	if token.Kind != END_OF {
		p.index++
	}
	//
	return token
}

// Match attempts to match the lookahead with a given kind of token.  If this
// matches, then the lookahead is consumed and true returned.  Otherwise, false
// is returned.
func (p *Parser) match(kind uint) bool {
	if p.lookahead().Kind == kind {
		p.next()
		return true
	}
	//
	return false
}

// Expect a given token kind at this point, or produce a syntax error.
func (p *Parser) expect(kind uint) (lex.Token, []source.SyntaxError) {
	lookahead := p.lookahead()
	if lookahead.Kind != kind {
		return lookahead, p.syntaxErrors(lookahead, fmt.Sprintf("expected %s, found \"%s\"",
			tokenNames[kind], p.text(lookahead)))
	}
	//
	return p.next(), nil
}

// Skip tokens until just after the next token of the given kind, or EOF.
func (p *Parser) skipPast(kind uint) {
	for p.lookahead().Kind != END_OF {
		if p.next().Kind == kind {
			return
		}
	}
}

// Skip tokens until just after the next token of the given kind, stopping early
// at a token which starts a new line (or EOF).
func (p *Parser) skipLine(kind uint) {
	for p.lookahead().Kind != END_OF && !p.startsLine() {
		if p.next().Kind == kind {
			return
		}
	}
}

// Check whether the lookahead is the first token on its line.
func (p *Parser) startsLine() bool {
	if p.index == 0 {
		return true
	}
	//
	var (
		contents = p.srcfile.Contents()
		start    = p.tokens[p.index-1].Span.End()
		end      = p.tokens[p.index].Span.Start()
	)
	//
	return slices.Contains(contents[start:end], '\n')
}

func (p *Parser) syntaxErrors(token lex.Token, msg string) []source.SyntaxError {
	return []source.SyntaxError{*p.srcfile.SyntaxError(token.Span, msg)}
}

var tokenNames = map[uint]string{
	END_OF:     "end of file",
	LBRACE:     "\"(\"",
	RBRACE:     "\")\"",
	LCURLY:     "\"{\"",
	RCURLY:     "\"}\"",
	LSQUARE:    "\"[\"",
	RSQUARE:    "\"]\"",
	COMMA:      "\",\"",
	SEMICOLON:  "\";\"",
	RIGHTARROW: "\"->\"",
	EQUALS:     "\"==\"",
	STRING:     "string",
	NUMBER:     "number",
	IDENTIFIER: "identifier",
}
