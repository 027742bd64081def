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
	"math"
	"strings"

	"github.com/consensys/go-qasm/pkg/analysis"
	"github.com/consensys/go-qasm/pkg/qasm"
)

// Single-qubit gates which are their own inverse, as considered by the
// (conservative) adjacent gate cancellation.
var pauliGates = map[string]bool{"h": true, "x": true, "y": true, "z": true}

// All gates which are their own inverse.
var selfInverseGates = map[string]bool{
	"h": true, "x": true, "y": true, "z": true, "cx": true, "cy": true, "cz": true, "ch": true,
	"swap": true, "ccx": true, "cswap": true,
}

// Pairs of gates which are the adjoint of each other.
var adjointGates = map[string]string{
	"s": "sdg", "sdg": "s", "t": "tdg", "tdg": "t", "sx": "sxdg", "sxdg": "sx",
}

// Gates parameterised by a single angle, such that R(a);R(b) == R(a+b).
var rotationGates = map[string]bool{
	"rx": true, "ry": true, "rz": true, "p": true, "u1": true, "crx": true, "cry": true, "crz": true,
	"cp": true, "cu1": true, "rxx": true, "ryy": true, "rzz": true,
}

// ============================================================================
// Wire roles
// ============================================================================

// A role describes how an operation acts upon a given wire.  Two operations
// commute when, on every wire they share, they act in the same (non-general)
// role.  For example, "rz q[0]" and the control of "cx q[0],q[1]" are both
// diagonal in the computational basis.
type role uint8

const (
	// Arbitrary action
	general role = iota
	// Diagonal in the computational basis
	zbasis
	// Diagonal in the Hadamard basis
	xbasis
	// Classical read (e.g. of a condition)
	reads
)

// Roles of each quantum argument for those gates with known structure.
var gateRoles = map[string][]role{
	"id":   {zbasis},
	"z":    {zbasis},
	"s":    {zbasis},
	"sdg":  {zbasis},
	"t":    {zbasis},
	"tdg":  {zbasis},
	"rz":   {zbasis},
	"p":    {zbasis},
	"u1":   {zbasis},
	"x":    {xbasis},
	"sx":   {xbasis},
	"sxdg": {xbasis},
	"rx":   {xbasis},
	"cx":   {zbasis, xbasis},
	"crx":  {zbasis, xbasis},
	"ccx":  {zbasis, zbasis, xbasis},
	"cz":   {zbasis, zbasis},
	"cp":   {zbasis, zbasis},
	"cu1":  {zbasis, zbasis},
	"crz":  {zbasis, zbasis},
	"rzz":  {zbasis, zbasis},
	"rxx":  {xbasis, xbasis},
}

// Determine the role played by an operation on each wire it touches.
func wireRoles(circuit *qasm.Circuit, op *qasm.Operation) map[string]role {
	var (
		roles   = make(map[string]role)
		known   = gateRoles[op.Name]
		nargs   = len(op.QuantumArgs())
		mapping = len(known) == nargs
	)
	//
	for _, inputs := range analysis.Wires(circuit, op) {
		// Condition wires come last
		limit := len(inputs)
		if op.ConditionRegister() != "" {
			limit = max(0, limit-conditionSize(circuit, op))
		}
		//
		for i, w := range inputs {
			r := general
			//
			if i >= limit {
				r = reads
			} else if mapping && i < nargs {
				r = known[i]
			}
			//
			if old, ok := roles[w]; ok && old != r {
				r = general
			}
			//
			roles[w] = r
		}
	}
	//
	return roles
}

// Number of condition wires appended to each instance of an operation.
func conditionSize(circuit *qasm.Circuit, op *qasm.Operation) int {
	if size, ok := circuit.CReg(op.ConditionRegister()); ok {
		return int(size)
	}
	//
	return 1
}

// Check whether two operations touch any common wire.
func overlaps(lhs map[string]role, rhs map[string]role) bool {
	for w := range lhs {
		if _, ok := rhs[w]; ok {
			return true
		}
	}
	//
	return false
}

// Check whether two operations commute, based on the roles they play on their
// shared wires.  This is sufficient, but not necessary.
func commutes(lhs map[string]role, rhs map[string]role) bool {
	for w, l := range lhs {
		if r, ok := rhs[w]; ok && (l != r || l == general) {
			return false
		}
	}
	//
	return true
}

// ============================================================================
// Inverses & rotations
// ============================================================================

// Check whether two operations apply to exactly the same arguments, under the
// same condition.
func sameTarget(lhs *qasm.Operation, rhs *qasm.Operation) bool {
	return lhs.Qubits == rhs.Qubits && lhs.Condition == rhs.Condition
}

// Check whether an operation cancels the one immediately preceding it (on all
// of its wires).
func isInverse(lhs *qasm.Operation, rhs *qasm.Operation) bool {
	if !sameTarget(lhs, rhs) || strings.Contains(lhs.Qubits, "->") {
		return false
	} else if selfInverseGates[lhs.Name] {
		return lhs.Name == rhs.Name && lhs.Params == "" && rhs.Params == ""
	} else if adj, ok := adjointGates[lhs.Name]; ok {
		return adj == rhs.Name
	} else if rotationGates[lhs.Name] && lhs.Name == rhs.Name {
		sum, ok := mergeAngles(lhs, rhs)
		return ok && math.Abs(sum) < qasm.Tolerance
	}
	//
	return false
}

// Combine the angles of two rotations, returning false if either angle is not
// a constant.
func mergeAngles(lhs *qasm.Operation, rhs *qasm.Operation) (float64, bool) {
	a, ok1 := rotationAngle(lhs)
	b, ok2 := rotationAngle(rhs)
	//
	return a + b, ok1 && ok2
}

func rotationAngle(op *qasm.Operation) (float64, bool) {
	if !rotationGates[op.Name] {
		return 0, false
	}
	//
	params := qasm.SplitParams(op.Params)
	if len(params) != 1 {
		return 0, false
	}
	//
	angle, err := qasm.EvalParam(params[0])
	//
	return angle, err == nil
}

// Check whether an operation is equivalent to the identity.
func isIdentity(op *qasm.Operation) bool {
	if op.Name == "id" {
		return true
	}
	//
	angle, ok := rotationAngle(op)
	//
	return ok && math.Abs(angle) < qasm.Tolerance
}

// Attempt to merge two rotations about the same axis into one.  The result is
// nil when the two cancel out entirely.
func mergeRotations(lhs *qasm.Operation, rhs *qasm.Operation) (*qasm.Operation, bool) {
	if lhs.Name != rhs.Name || !sameTarget(lhs, rhs) {
		return nil, false
	}
	//
	sum, ok := mergeAngles(lhs, rhs)
	if !ok {
		return nil, false
	} else if math.Abs(sum) < qasm.Tolerance {
		return nil, true
	}
	//
	merged := *lhs
	merged.Params = qasm.FormatAngle(sum)
	//
	return &merged, true
}
