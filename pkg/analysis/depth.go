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
package analysis

import (
	"fmt"

	"github.com/consensys/go-qasm/pkg/qasm"
)

// Stats summarises the size of a circuit.
type Stats struct {
	// GateCount is the number of operations in the circuit body.
	GateCount int
	// Depth is the length of the critical path through the circuit.
	Depth int
}

// Estimate computes the gate count and depth of a given circuit.
func Estimate(circuit *qasm.Circuit) Stats {
	return Stats{len(circuit.Operations), Depth(circuit)}
}

// Depth computes the exact depth of a circuit, defined as the longest chain of
// operations connected through shared wires.  Every qubit and every classical
// bit is a wire.  Operations applied to whole registers are broadcast, such
// that "h q;" on a 3-qubit register is three independent operations of depth
// one.  A classical condition reads every bit of its register.  Barriers are
// directives and contribute nothing.
func Depth(circuit *qasm.Circuit) int {
	var (
		// Depth reached so far on each wire
		wires = make(map[string]int)
		depth = 0
	)
	//
	for i := range circuit.Operations {
		op := &circuit.Operations[i]
		//
		if op.Name == "barrier" {
			continue
		}
		//
		for _, inputs := range Wires(circuit, op) {
			level := 0
			for _, w := range inputs {
				level = max(level, wires[w])
			}
			// This instance sits one layer above its inputs
			level++
			//
			for _, w := range inputs {
				wires[w] = level
			}
			//
			depth = max(depth, level)
		}
	}
	//
	return depth
}

// Wires determines the wires touched by each instance of a (possibly
// broadcast) operation.  For example, "measure q -> c" with registers of size
// two gives [[q[0] c[0]] [q[1] c[1]]].  References to undeclared registers are
// treated as a single wire named after the register.
func Wires(circuit *qasm.Circuit, op *qasm.Operation) [][]string {
	var (
		quantum   = op.QuantumArgs()
		classical = op.ClassicalArgs()
		// Number of broadcast instances
		n = uint(1)
	)
	//
	for _, arg := range quantum {
		n = max(n, broadcastSize(arg, circuit.QReg))
	}
	//
	for _, arg := range classical {
		n = max(n, broadcastSize(arg, circuit.CReg))
	}
	//
	instances := make([][]string, n)
	//
	for i := range instances {
		var inputs []string
		//
		for _, arg := range quantum {
			inputs = append(inputs, wire(arg, i, circuit.QReg))
		}
		//
		for _, arg := range classical {
			inputs = append(inputs, wire(arg, i, circuit.CReg))
		}
		//
		instances[i] = append(inputs, conditionWires(circuit, op)...)
	}
	//
	return instances
}

func conditionWires(circuit *qasm.Circuit, op *qasm.Operation) []string {
	name := op.ConditionRegister()
	if name == "" {
		return nil
	}
	//
	size, ok := circuit.CReg(name)
	if !ok {
		return []string{name}
	}
	//
	wires := make([]string, size)
	for i := range wires {
		wires[i] = fmt.Sprintf("%s[%d]", name, i)
	}
	//
	return wires
}

func broadcastSize(arg qasm.Argument, lookup func(string) (uint, bool)) uint {
	if arg.IsRegister() {
		if size, ok := lookup(arg.Register); ok {
			return size
		}
	}
	//
	return 1
}

// Determine the wire used by a given argument in the ith broadcast instance.
func wire(arg qasm.Argument, i int, lookup func(string) (uint, bool)) string {
	if !arg.IsRegister() {
		return arg.String()
	} else if size, ok := lookup(arg.Register); !ok || size == 0 {
		return arg.Register
	} else if uint(i) >= size {
		// Mismatched broadcast; clamp to the last element
		i = int(size) - 1
	}
	//
	return fmt.Sprintf("%s[%d]", arg.Register, i)
}
