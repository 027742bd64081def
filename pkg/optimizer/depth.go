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
	"github.com/consensys/go-qasm/pkg/analysis"
	"github.com/consensys/go-qasm/pkg/qasm"
	"github.com/consensys/go-qasm/pkg/transpiler"
	log "github.com/sirupsen/logrus"
)

// DepthOptimization repeatedly applies the simplifying rewrites until either
// the circuit depth meets the requested target, or no further progress is
// made.  It does nothing unless a target depth is given.
type DepthOptimization struct {
	transpiler.Base
}

// NewDepthOptimization constructs a depth optimization pass.
func NewDepthOptimization() *DepthOptimization {
	return &DepthOptimization{transpiler.Base{
		PassName:        "DepthOptimization",
		PassDescription: "Rewrite the circuit towards a target depth",
		Kind:            transpiler.OPTIMIZATION,
	}}
}

// Run this pass over a given circuit.
func (p *DepthOptimization) Run(circuit *qasm.Circuit, options transpiler.Options) (*qasm.Circuit, error) {
	if options.TargetDepth == 0 {
		return circuit, nil
	}
	//
	target := int(options.TargetDepth)
	depth := analysis.Depth(circuit)
	//
	for depth > target {
		n := len(circuit.Operations)
		//
		circuit.Operations = simplifyByCommutation(circuit)
		circuit.Operations = simplifySequences(circuit.Operations)
		circuit.Operations = matchTemplates(circuit.Operations)
		//
		ndepth := analysis.Depth(circuit)
		//
		if len(circuit.Operations) == n && ndepth >= depth {
			log.Warnf("unable to reach target depth %d (depth is %d)", target, ndepth)
			return circuit, nil
		}
		//
		depth = ndepth
	}
	//
	log.Debugf("target depth %d reached (depth is %d)", target, depth)
	//
	return circuit, nil
}

// DepthAnalysis reports the gate count and depth of a circuit, without
// changing it.
type DepthAnalysis struct {
	transpiler.Base
}

// NewDepthAnalysis constructs a depth analysis pass.
func NewDepthAnalysis() *DepthAnalysis {
	return &DepthAnalysis{transpiler.Base{
		PassName:        "DepthAnalysis",
		PassDescription: "Report circuit gate count and depth",
		Kind:            transpiler.ANALYSIS,
	}}
}

// Run this pass over a given circuit.
func (p *DepthAnalysis) Run(circuit *qasm.Circuit, _ transpiler.Options) (*qasm.Circuit, error) {
	stats := analysis.Estimate(circuit)
	log.Infof("circuit has %d operations with depth %d", stats.GateCount, stats.Depth)
	//
	return circuit, nil
}
