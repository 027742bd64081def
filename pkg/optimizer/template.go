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
package optimizer

import (
	"github.com/consensys/go-qasm/pkg/qasm"
	"github.com/consensys/go-qasm/pkg/transpiler"
	log "github.com/sirupsen/logrus"
)

// Template describes a run of gates on a single qubit which is equivalent to a
// (shorter) run.
type Template struct {
	Pattern     []string
	Replacement []string
}

// TEMPLATES lists the single-qubit templates recognised by TemplateMatching.
var TEMPLATES = []Template{
	{[]string{"h", "x", "h"}, []string{"z"}},
	{[]string{"h", "z", "h"}, []string{"x"}},
	{[]string{"s", "s"}, []string{"z"}},
	{[]string{"sdg", "sdg"}, []string{"z"}},
	{[]string{"t", "t"}, []string{"s"}},
	{[]string{"tdg", "tdg"}, []string{"sdg"}},
}

// TemplateMatching replaces known sub-circuits with equivalent, shorter ones.
// Besides the single-qubit TEMPLATES, three alternating cx gates are replaced
// by a swap.  Matching is on physically adjacent, unconditioned operations.
type TemplateMatching struct {
	transpiler.Base
}

// NewTemplateMatching constructs a template matching pass.
func NewTemplateMatching() *TemplateMatching {
	return &TemplateMatching{transpiler.Base{
		PassName:        "TemplateMatching",
		PassDescription: "Replace known sub-circuits with shorter equivalents",
		Kind:            transpiler.OPTIMIZATION,
	}}
}

// Run this pass over a given circuit.
func (p *TemplateMatching) Run(circuit *qasm.Circuit, _ transpiler.Options) (*qasm.Circuit, error) {
	n := len(circuit.Operations)
	circuit.Operations = matchTemplates(circuit.Operations)
	//
	log.Debugf("template matching removed %d operations", n-len(circuit.Operations))
	//
	return circuit, nil
}

// Replace every match, stepping back after each so that a replacement can
// itself form part of a later match.  Every replacement is strictly shorter
// than its pattern, hence this terminates.
func matchTemplates(ops []qasm.Operation) []qasm.Operation {
	ops = append([]qasm.Operation(nil), ops...)
	//
	for i := 0; i < len(ops); {
		if n, replacement := matchAt(ops, i); n > 0 {
			ops = append(ops[:i], append(replacement, ops[i+n:]...)...)
			i = max(0, i-2)
		} else {
			i++
		}
	}
	//
	return ops
}

// Determine whether any template matches at a given position, returning the
// length of the match and its replacement.
func matchAt(ops []qasm.Operation, index int) (int, []qasm.Operation) {
	for _, t := range TEMPLATES {
		if matchesPattern(ops, index, t.Pattern) {
			replacement := make([]qasm.Operation, len(t.Replacement))
			for i, name := range t.Replacement {
				replacement[i] = qasm.Operation{Name: name, Qubits: ops[index].Qubits}
			}
			//
			return len(t.Pattern), replacement
		}
	}
	//
	if swap, ok := matchSwap(ops, index); ok {
		return 3, []qasm.Operation{swap}
	}
	//
	return 0, nil
}

func matchesPattern(ops []qasm.Operation, index int, pattern []string) bool {
	if index+len(pattern) > len(ops) {
		return false
	}
	//
	for i, name := range pattern {
		op := &ops[index+i]
		//
		if op.Name != name || op.Params != "" || op.Condition != "" || op.Qubits != ops[index].Qubits {
			return false
		}
	}
	//
	return true
}

// Match "cx a,b; cx b,a; cx a,b;", which is equivalent to "swap a,b;".
func matchSwap(ops []qasm.Operation, index int) (qasm.Operation, bool) {
	if index+3 > len(ops) {
		return qasm.Operation{}, false
	}
	//
	var args [3][]qasm.Argument
	//
	for i := range args {
		op := &ops[index+i]
		if op.Name != "cx" || op.Condition != "" {
			return qasm.Operation{}, false
		}
		//
		if args[i] = op.QuantumArgs(); len(args[i]) != 2 {
			return qasm.Operation{}, false
		}
	}
	//
	a, b := args[0][0], args[0][1]
	//
	if args[1][0] != b || args[1][1] != a || args[2][0] != a || args[2][1] != b {
		return qasm.Operation{}, false
	}
	//
	return qasm.Operation{Name: "swap", Qubits: ops[index].Qubits}, true
}
