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
	"slices"

	"github.com/consensys/go-qasm/pkg/qasm"
	"github.com/consensys/go-qasm/pkg/transpiler"
	log "github.com/sirupsen/logrus"
)

// QubitRemapping minimises the number of qubits a circuit uses.  Quantum
// registers which are never referenced are dropped, whilst registers only
// referenced by index are compacted onto their lowest indices (preserving the
// relative order of their active qubits).  Registers referenced as a whole
// (e.g. "h q;" or "barrier q;") are left unchanged.
type QubitRemapping struct {
	transpiler.Base
}

// NewQubitRemapping constructs a qubit remapping pass.
func NewQubitRemapping() *QubitRemapping {
	return &QubitRemapping{transpiler.Base{
		PassName:        "QubitRemapping",
		PassDescription: "Compact the quantum registers onto their active qubits",
		Kind:            transpiler.MAPPING,
	}}
}

// Run this pass over a given circuit.
func (p *QubitRemapping) Run(circuit *qasm.Circuit, options transpiler.Options) (*qasm.Circuit, error) {
	var (
		usage   = registerUsage(circuit)
		qregs   []qasm.Register
		mapping = make(map[string]map[int]int)
	)
	//
	for _, reg := range circuit.QRegs {
		used, ok := usage[reg.Name]
		//
		switch {
		case !ok:
			log.Debugf("dropping idle register %s", reg.Name)
		case used == nil:
			qregs = append(qregs, reg)
		default:
			indices := make(map[int]int)
			for i, index := range used {
				indices[index] = i
			}
			//
			mapping[reg.Name] = indices
			qregs = append(qregs, qasm.Register{Name: reg.Name, Size: uint(len(used))})
		}
	}
	//
	for i := range circuit.Operations {
		op := &circuit.Operations[i]
		args := op.QuantumArgs()
		changed := false
		//
		for j, arg := range args {
			if indices, ok := mapping[arg.Register]; ok && !arg.IsRegister() {
				args[j].Index = indices[arg.Index]
				changed = true
			}
		}
		//
		if changed {
			op.SetQuantumArgs(args)
		}
	}
	//
	circuit.QRegs = qregs
	//
	if active := circuit.NumQubits(); options.NumQubits > 0 && active > options.NumQubits {
		log.Warnf("circuit uses %d qubits, but only %d available", active, options.NumQubits)
	}
	//
	return circuit, nil
}

// Determine, for each referenced quantum register, the sorted indices used
// with it.  A register referenced as a whole maps to nil.
func registerUsage(circuit *qasm.Circuit) map[string][]int {
	var (
		usage = make(map[string][]int)
		whole = make(map[string]bool)
	)
	//
	for i := range circuit.Operations {
		for _, arg := range circuit.Operations[i].QuantumArgs() {
			if arg.IsRegister() {
				whole[arg.Register] = true
			} else if !slices.Contains(usage[arg.Register], arg.Index) {
				usage[arg.Register] = append(usage[arg.Register], arg.Index)
			}
		}
	}
	//
	for name, indices := range usage {
		slices.Sort(indices)
		usage[name] = indices
	}
	//
	for name := range whole {
		usage[name] = nil
	}
	//
	return usage
}
