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
	"strconv"
	"strings"
)

// Argument identifies either a whole register (Index < 0) or a single qubit /
// bit within a register.
type Argument struct {
	Register string
	Index    int
}

// String returns the normalised OpenQASM form of this argument.
func (a Argument) String() string {
	if a.Index < 0 {
		return a.Register
	}
	//
	return fmt.Sprintf("%s[%d]", a.Register, a.Index)
}

// IsRegister checks whether this argument refers to an entire register.
func (a Argument) IsRegister() bool {
	return a.Index < 0
}

// ParseArguments decodes a comma-separated argument list such as
// "q[0],q[1]".  Malformed entries are treated as whole registers.
func ParseArguments(text string) []Argument {
	var args []Argument
	//
	for _, item := range strings.Split(text, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		//
		args = append(args, parseArgument(item))
	}
	//
	return args
}

// FormatArguments encodes a list of arguments in normalised form.
func FormatArguments(args []Argument) string {
	items := make([]string, len(args))
	for i, a := range args {
		items[i] = a.String()
	}
	//
	return strings.Join(items, ",")
}

// QuantumArgs returns the arguments on the left of any "->".
func (o *Operation) QuantumArgs() []Argument {
	lhs, _, _ := strings.Cut(o.Qubits, "->")
	return ParseArguments(lhs)
}

// ClassicalArgs returns the (measurement) arguments on the right of "->", if
// any.
func (o *Operation) ClassicalArgs() []Argument {
	if _, rhs, ok := strings.Cut(o.Qubits, "->"); ok {
		return ParseArguments(rhs)
	}
	//
	return nil
}

// ConditionRegister returns the classical register guarding this operation,
// or the empty string if it is unconditional.
func (o *Operation) ConditionRegister() string {
	name, _, _ := strings.Cut(o.Condition, "==")
	return name
}

// SetQuantumArgs replaces the arguments on the left of any "->".
func (o *Operation) SetQuantumArgs(args []Argument) {
	qubits := FormatArguments(args)
	//
	if _, rhs, ok := strings.Cut(o.Qubits, "->"); ok {
		qubits = fmt.Sprintf("%s -> %s", qubits, strings.TrimSpace(rhs))
	}
	//
	o.Qubits = qubits
}

func parseArgument(item string) Argument {
	name, rest, ok := strings.Cut(item, "[")
	if !ok || !strings.HasSuffix(rest, "]") {
		return Argument{item, -1}
	}
	//
	index, err := strconv.Atoi(strings.TrimSuffix(rest, "]"))
	if err != nil || index < 0 {
		return Argument{item, -1}
	}
	//
	return Argument{name, index}
}
