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
	"strings"

	"github.com/consensys/go-qasm/pkg/qasm"
	"github.com/consensys/go-qasm/pkg/transpiler"
	log "github.com/sirupsen/logrus"
)

// ConstantFolding evaluates constant parameter expressions, such that
// "rz(pi/4+pi/4) q[0]" becomes "rz(pi/2) q[0]".  Parameters which cannot be
// evaluated are left untouched.
type ConstantFolding struct {
	transpiler.Base
}

// NewConstantFolding constructs a constant folding pass.
func NewConstantFolding() *ConstantFolding {
	return &ConstantFolding{transpiler.Base{
		PassName:        "ConstantFolding",
		PassDescription: "Fold constant parameter expressions",
		Kind:            transpiler.OPTIMIZATION,
	}}
}

// Run this pass over a given circuit.
func (p *ConstantFolding) Run(circuit *qasm.Circuit, _ transpiler.Options) (*qasm.Circuit, error) {
	for i := range circuit.Operations {
		op := &circuit.Operations[i]
		//
		if op.Params != "" {
			params := qasm.SplitParams(op.Params)
			//
			for j, param := range params {
				if val, err := qasm.EvalParam(param); err == nil {
					params[j] = qasm.FormatAngle(val)
				}
			}
			//
			op.Params = strings.Join(params, ",")
		}
	}
	//
	return circuit, nil
}

// CommutationSimplification cancels (or merges) a gate with the nearest
// earlier gate on the same wires, provided every gate in between commutes with
// it.  Thus, "h q[0]; x q[1]; h q[0];" reduces to "x q[1];", whilst
// "rz(a) q[0]; cx q[0],q[1]; rz(b) q[0];" becomes
// "rz(a+b) q[0]; cx q[0],q[1];".
type CommutationSimplification struct {
	transpiler.Base
}

// NewCommutationSimplification constructs a commutation simplification pass.
func NewCommutationSimplification() *CommutationSimplification {
	return &CommutationSimplification{transpiler.Base{
		PassName:        "CommutationSimplification",
		PassDescription: "Cancel and merge gates through commuting operations",
		Kind:            transpiler.OPTIMIZATION,
	}}
}

// Run this pass over a given circuit.
func (p *CommutationSimplification) Run(circuit *qasm.Circuit, _ transpiler.Options) (*qasm.Circuit, error) {
	n := len(circuit.Operations)
	circuit.Operations = simplifyByCommutation(circuit)
	//
	log.Debugf("commutation simplification removed %d operations", n-len(circuit.Operations))
	//
	return circuit, nil
}

// GateSequenceSimplification rewrites runs of adjacent gates: inverse pairs
// (including cx, cz and swap) are removed, consecutive rotations about the same
// axis are merged, and gates equivalent to the identity (id, or a zero
// rotation) are dropped.  Removing a pair can expose a further pair, as in
// "h x x h", and these are also removed.
type GateSequenceSimplification struct {
	transpiler.Base
}

// NewGateSequenceSimplification constructs a gate sequence simplification pass.
func NewGateSequenceSimplification() *GateSequenceSimplification {
	return &GateSequenceSimplification{transpiler.Base{
		PassName:        "GateSequenceSimplification",
		PassDescription: "Simplify sequences of adjacent gates",
		Kind:            transpiler.OPTIMIZATION,
	}}
}

// Run this pass over a given circuit.
func (p *GateSequenceSimplification) Run(circuit *qasm.Circuit, _ transpiler.Options) (*qasm.Circuit, error) {
	n := len(circuit.Operations)
	circuit.Operations = simplifySequences(circuit.Operations)
	//
	log.Debugf("gate sequence simplification removed %d operations", n-len(circuit.Operations))
	//
	return circuit, nil
}

func simplifyByCommutation(circuit *qasm.Circuit) []qasm.Operation {
	var (
		ops   = circuit.Operations
		alive = make([]bool, len(ops))
		roles = make([]map[string]role, len(ops))
	)
	//
	for j := range ops {
		alive[j] = true
		roles[j] = wireRoles(circuit, &ops[j])
		//
		for k := j - 1; k >= 0; k-- {
			if !alive[k] || !overlaps(roles[k], roles[j]) {
				continue
			} else if isInverse(&ops[k], &ops[j]) {
				alive[k], alive[j] = false, false
				break
			} else if merged, ok := mergeRotations(&ops[k], &ops[j]); ok {
				alive[j] = false
				//
				if merged == nil {
					alive[k] = false
				} else {
					ops[k] = *merged
				}
				//
				break
			} else if !commutes(roles[k], roles[j]) {
				break
			}
		}
	}
	//
	nops := make([]qasm.Operation, 0, len(ops))
	//
	for i, op := range ops {
		if alive[i] {
			nops = append(nops, op)
		}
	}
	//
	return nops
}

func simplifySequences(ops []qasm.Operation) []qasm.Operation {
	stack := make([]qasm.Operation, 0, len(ops))
	//
	for _, op := range ops {
		if isIdentity(&op) {
			continue
		} else if n := len(stack); n > 0 {
			top := &stack[n-1]
			//
			if isInverse(top, &op) {
				stack = stack[:n-1]
				continue
			} else if merged, ok := mergeRotations(top, &op); ok {
				if merged == nil {
					stack = stack[:n-1]
				} else {
					*top = *merged
				}
				//
				continue
			}
		}
		//
		stack = append(stack, op)
	}
	//
	return stack
}
