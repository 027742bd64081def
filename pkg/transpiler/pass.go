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
package transpiler

import (
	"fmt"
	"strings"

	"github.com/consensys/go-qasm/pkg/qasm"
)

// PassType classifies passes.  It is a tag only, and is never enforced.
type PassType uint8

const (
	// OPTIMIZATION passes reduce gate count or depth.
	OPTIMIZATION PassType = iota
	// MAPPING passes assign logical qubits to physical ones.
	MAPPING
	// SYNTHESIS passes decompose or resynthesise gates.
	SYNTHESIS
	// ANALYSIS passes inspect a circuit without changing it.
	ANALYSIS
	// TRANSFORMATION passes perform general rewriting.
	TRANSFORMATION
	// ERROR_MITIGATION passes insert error mitigation.
	ERROR_MITIGATION
	// CUSTOM is for everything else.
	CUSTOM
)

var passTypeNames = []string{
	"OPTIMIZATION", "MAPPING", "SYNTHESIS", "ANALYSIS", "TRANSFORMATION", "ERROR_MITIGATION", "CUSTOM",
}

func (p PassType) String() string {
	if int(p) < len(passTypeNames) {
		return passTypeNames[p]
	}
	//
	return fmt.Sprintf("PassType(%d)", p)
}

// ParsePassType parses the (case-insensitive) name of a pass type.
func ParsePassType(name string) (PassType, error) {
	for i, n := range passTypeNames {
		if strings.EqualFold(n, name) {
			return PassType(i), nil
		}
	}
	//
	return CUSTOM, fmt.Errorf("unknown pass type \"%s\"", name)
}

// Options are supplied to every pass in a pipeline run.
type Options struct {
	// NumQubits is the number of qubits available (0 means unconstrained).
	NumQubits uint
	// TargetDepth is the requested circuit depth (0 means none requested).
	TargetDepth uint
	// Values holds any further pass-specific settings.
	Values map[string]string
}

// Value returns a pass-specific setting, or a default if it is not set.
func (o Options) Value(key string, def string) string {
	if v, ok := o.Values[key]; ok {
		return v
	}
	//
	return def
}

// Args are the constructor arguments given when instantiating a pass by name.
type Args map[string]any

// Pass is a single named transformation over a circuit.  Passes rewrite the
// given circuit in place and return it (or return a replacement).  Given the
// same circuit and options, a pass must always produce the same result.
// Callers needing the original must clone it first.
//
// Requires and Invalidates declare which kinds of passes must have run before
// this one, and which kinds are no longer valid after it.  These are advisory
// metadata only: they are never consulted when running a stage or pipeline,
// though Pipeline.Unsatisfied reports on them.
type Pass interface {
	Name() string
	Description() string
	Type() PassType
	Run(circuit *qasm.Circuit, options Options) (*qasm.Circuit, error)
	Requires() []PassType
	Invalidates() []PassType
}

// Cloner is implemented by passes carrying mutable state.  Pipelines created
// from a template receive a clone of such passes, rather than sharing them.
type Cloner interface {
	Clone() Pass
}

// Base provides the metadata of a pass, such that concrete passes need only
// embed it and supply Run.
type Base struct {
	PassName        string
	PassDescription string
	Kind            PassType
	Requirements    []PassType
	Invalidations   []PassType
}

// Name returns the name of this pass.
func (p *Base) Name() string {
	return p.PassName
}

// Description returns a one-line description of this pass.
func (p *Base) Description() string {
	if p.PassDescription == "" {
		return "No description available"
	}
	//
	return p.PassDescription
}

// Type returns the kind of this pass.
func (p *Base) Type() PassType {
	return p.Kind
}

// Requires returns the kinds of pass which should run before this one.
func (p *Base) Requires() []PassType {
	return p.Requirements
}

// Invalidates returns the kinds of pass invalidated by this one.
func (p *Base) Invalidates() []PassType {
	return p.Invalidations
}

// Func adapts a plain function into a pass.
type Func struct {
	Base
	Fn func(*qasm.Circuit, Options) (*qasm.Circuit, error)
}

// NewFunc constructs a pass from a given function.
func NewFunc(name string, kind PassType, fn func(*qasm.Circuit, Options) (*qasm.Circuit, error)) *Func {
	return &Func{Base{PassName: name, Kind: kind}, fn}
}

// Run applies the underlying function.
func (p *Func) Run(circuit *qasm.Circuit, options Options) (*qasm.Circuit, error) {
	return p.Fn(circuit, options)
}

// Factory describes a kind of pass which can be instantiated by name.  A
// factory without a constructor is abstract, and cannot be registered.
type Factory struct {
	Name        string
	Description string
	Type        PassType
	New         func(args Args) (Pass, error)
}

// IsAbstract checks whether this factory lacks a constructor.
func (f Factory) IsAbstract() bool {
	return f.New == nil
}

// Singleton constructs a factory which always returns the same stateless
// pass, ignoring any arguments.
func Singleton(pass Pass) Factory {
	return Factory{pass.Name(), pass.Description(), pass.Type(),
		func(Args) (Pass, error) { return pass, nil }}
}
