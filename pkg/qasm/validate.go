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
	"strings"
)

// StructuralError reports references to undeclared registers, or indices
// outside the bounds of their register.  This is distinct from both I/O errors
// and syntax errors: the text parsed fine, but does not describe a well-formed
// circuit.
type StructuralError struct {
	Problems []string
}

// Error implements the error interface.
func (e *StructuralError) Error() string {
	return fmt.Sprintf("invalid circuit: %s", strings.Join(e.Problems, "; "))
}

// Validate checks that every qubit / bit referenced by an operation resolves
// to a declared register (and lies within its bounds), and that broadcast
// arguments have matching sizes.  Gate definition bodies are not checked since
// they refer to formal arguments.
func (c *Circuit) Validate() error {
	var problems []string
	//
	for i := range c.Operations {
		op := &c.Operations[i]
		sizes := make(map[uint]bool)
		//
		for _, arg := range op.QuantumArgs() {
			if size, msg := checkArgument(arg, c.QReg, "qreg"); msg != "" {
				problems = append(problems, fmt.Sprintf("%s (%s)", msg, op.String()))
			} else if arg.IsRegister() {
				sizes[size] = true
			}
		}
		//
		for _, arg := range op.ClassicalArgs() {
			if size, msg := checkArgument(arg, c.CReg, "creg"); msg != "" {
				problems = append(problems, fmt.Sprintf("%s (%s)", msg, op.String()))
			} else if arg.IsRegister() {
				sizes[size] = true
			}
		}
		//
		if len(sizes) > 1 {
			problems = append(problems, fmt.Sprintf("mismatched register sizes (%s)", op.String()))
		}
		//
		if name := op.ConditionRegister(); name != "" {
			if _, ok := c.CReg(name); !ok {
				problems = append(problems, fmt.Sprintf("unknown creg \"%s\" (%s)", name, op.String()))
			}
		}
	}
	//
	if len(problems) > 0 {
		return &StructuralError{problems}
	}
	//
	return nil
}

func checkArgument(arg Argument, lookup func(string) (uint, bool), kind string) (uint, string) {
	size, ok := lookup(arg.Register)
	//
	switch {
	case !ok:
		return 0, fmt.Sprintf("unknown %s \"%s\"", kind, arg.Register)
	case !arg.IsRegister() && uint(arg.Index) >= size:
		return 0, fmt.Sprintf("index %d out of bounds for %s \"%s\" of size %d", arg.Index, kind, arg.Register, size)
	}
	//
	return size, ""
}
