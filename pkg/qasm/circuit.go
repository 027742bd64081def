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

import "slices"

// Register captures a quantum (qreg) or classical (creg) register declaration.
type Register struct {
	Name string
	Size uint
}

// GateDefinition captures a user-defined gate macro.  Params holds everything
// between the gate name and its body (e.g. "(theta) a,b"), whilst Body holds
// the normalised statements of the body.  Opaque gates have no body.
type GateDefinition struct {
	Name   string
	Params string
	Body   string
	Opaque bool
}

// Operation represents a single statement in the circuit body, such as a gate
// application, measurement, reset or barrier.  Qubits holds the normalised
// argument expression (e.g. "q[0],q[1]" or "q -> c").  Condition holds the
// "c==n" guard of a classically controlled operation, or is empty.
type Operation struct {
	Name      string
	Params    string
	Qubits    string
	Condition string
}

// OptimizationStats records gate counts and depths before and after an
// optimisation run.  It is created once per run and never modified afterwards.
type OptimizationStats struct {
	OriginalGateCount        int     `json:"original_gate_count"`
	OptimizedGateCount       int     `json:"optimized_gate_count"`
	GateReduction            int     `json:"gate_reduction"`
	GateReductionPercentage  float64 `json:"gate_reduction_percentage"`
	OriginalDepth            int     `json:"original_depth"`
	OptimizedDepth           int     `json:"optimized_depth"`
	DepthReduction           int     `json:"depth_reduction"`
	DepthReductionPercentage float64 `json:"depth_reduction_percentage"`
	OptimizationLevel        uint    `json:"optimization_level"`
}

// Circuit is the structured representation of a parsed OpenQASM program.  The
// order of Operations is the physical execution order and must never be
// rearranged for convenience.  A circuit is owned by whichever component
// currently holds it, and is never shared between concurrent users.
type Circuit struct {
	// Version from the "OPENQASM" header, or empty if missing / malformed.
	Version string
	// Includes lists the included libraries in declaration order.
	Includes []string
	// QRegs lists the quantum registers in declaration order.
	QRegs []Register
	// CRegs lists the classical registers in declaration order.
	CRegs []Register
	// Gates lists user-defined gates in declaration order.
	Gates []GateDefinition
	// Operations lists the circuit body in execution order.
	Operations []Operation
	// Stats is attached by the optimiser, never by the parser.
	Stats *OptimizationStats
}

// QReg looks up the size of a given quantum register.
func (c *Circuit) QReg(name string) (uint, bool) {
	return lookupRegister(c.QRegs, name)
}

// CReg looks up the size of a given classical register.
func (c *Circuit) CReg(name string) (uint, bool) {
	return lookupRegister(c.CRegs, name)
}

// DeclareQReg declares a quantum register, replacing the size of any existing
// register with the same name.
func (c *Circuit) DeclareQReg(name string, size uint) {
	c.QRegs = declareRegister(c.QRegs, name, size)
}

// DeclareCReg declares a classical register, replacing the size of any
// existing register with the same name.
func (c *Circuit) DeclareCReg(name string, size uint) {
	c.CRegs = declareRegister(c.CRegs, name, size)
}

// NumQubits returns the total number of declared qubits.
func (c *Circuit) NumQubits() uint {
	var n uint
	//
	for _, r := range c.QRegs {
		n += r.Size
	}
	//
	return n
}

// Clone produces a deep copy of this circuit.  Stats are shared since they are
// immutable once created.
func (c *Circuit) Clone() *Circuit {
	return &Circuit{
		Version:    c.Version,
		Includes:   slices.Clone(c.Includes),
		QRegs:      slices.Clone(c.QRegs),
		CRegs:      slices.Clone(c.CRegs),
		Gates:      slices.Clone(c.Gates),
		Operations: slices.Clone(c.Operations),
		Stats:      c.Stats,
	}
}

func lookupRegister(regs []Register, name string) (uint, bool) {
	for _, r := range regs {
		if r.Name == name {
			return r.Size, true
		}
	}
	//
	return 0, false
}

func declareRegister(regs []Register, name string, size uint) []Register {
	for i, r := range regs {
		if r.Name == name {
			regs[i].Size = size
			return regs
		}
	}
	//
	return append(regs, Register{name, size})
}
