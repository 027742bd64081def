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

// GateCancellation removes pairs of identical self-inverse gates (h, x, y and
// z) which are immediately adjacent in the operation list.  Adjacency here is
// physical: "h q[0]; x q[1]; h q[0];" is left alone, even though the two
// Hadamards are adjacent on q[0].  CommutationSimplification handles that
// case.  The list is scanned once, hence "h h h" leaves a single "h".
type GateCancellation struct {
	transpiler.Base
}

// NewGateCancellation constructs a gate cancellation pass.
func NewGateCancellation() *GateCancellation {
	return &GateCancellation{transpiler.Base{
		PassName:        "GateCancellation",
		PassDescription: "Cancel adjacent pairs of identical self-inverse gates",
		Kind:            transpiler.OPTIMIZATION,
	}}
}

// Run this pass over a given circuit.
func (p *GateCancellation) Run(circuit *qasm.Circuit, _ transpiler.Options) (*qasm.Circuit, error) {
	n := len(circuit.Operations)
	//
	circuit.Operations = cancelAdjacent(circuit.Operations, func(lhs *qasm.Operation, rhs *qasm.Operation) bool {
		return pauliGates[lhs.Name] && lhs.Name == rhs.Name && sameTarget(lhs, rhs)
	})
	//
	log.Debugf("gate cancellation removed %d operations", n-len(circuit.Operations))
	//
	return circuit, nil
}

// AdjointFolding removes adjacent pairs of gates which are each other's
// adjoint, such as "s; sdg", "t; tdg" or "rz(a); rz(-a)".  As for
// GateCancellation, adjacency is physical and the list is scanned once.
type AdjointFolding struct {
	transpiler.Base
}

// NewAdjointFolding constructs an adjoint folding pass.
func NewAdjointFolding() *AdjointFolding {
	return &AdjointFolding{transpiler.Base{
		PassName:        "AdjointFolding",
		PassDescription: "Fold adjacent gates with their adjoints",
		Kind:            transpiler.OPTIMIZATION,
	}}
}

// Run this pass over a given circuit.
func (p *AdjointFolding) Run(circuit *qasm.Circuit, _ transpiler.Options) (*qasm.Circuit, error) {
	n := len(circuit.Operations)
	//
	circuit.Operations = cancelAdjacent(circuit.Operations, func(lhs *qasm.Operation, rhs *qasm.Operation) bool {
		return !selfInverseGates[lhs.Name] && isInverse(lhs, rhs)
	})
	//
	log.Debugf("adjoint folding removed %d operations", n-len(circuit.Operations))
	//
	return circuit, nil
}

// Remove pairs of (physically) adjacent operations for which a given predicate
// holds, in a single left-to-right scan.
func cancelAdjacent(ops []qasm.Operation, cancels func(*qasm.Operation, *qasm.Operation) bool) []qasm.Operation {
	nops := make([]qasm.Operation, 0, len(ops))
	//
	for i := 0; i < len(ops); i++ {
		if i+1 < len(ops) && cancels(&ops[i], &ops[i+1]) {
			i++
			continue
		}
		//
		nops = append(nops, ops[i])
	}
	//
	return nops
}
