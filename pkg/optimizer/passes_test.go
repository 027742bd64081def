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
	"testing"

	"github.com/consensys/go-qasm/pkg/qasm"
	"github.com/consensys/go-qasm/pkg/transpiler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = "OPENQASM 2.0;\ninclude \"qelib1.inc\";\nqreg q[3];\ncreg c[3];\n"

// ============================================================================
// Gate Cancellation
// ============================================================================

func Test_GateCancellation_00(t *testing.T) {
	checkPass(t, NewGateCancellation(), "h q[0]; h q[0]; cx q[0],q[1];", "cx q[0],q[1];")
}

func Test_GateCancellation_01(t *testing.T) {
	// Not physically adjacent
	checkPass(t, NewGateCancellation(), "h q[0]; x q[1]; h q[0];", "h q[0];", "x q[1];", "h q[0];")
}

func Test_GateCancellation_02(t *testing.T) {
	// Single scan
	checkPass(t, NewGateCancellation(), "h q[0]; h q[0]; h q[0];", "h q[0];")
	checkPass(t, NewGateCancellation(), "h q[0]; x q[0]; x q[0]; h q[0];", "h q[0];", "h q[0];")
}

func Test_GateCancellation_03(t *testing.T) {
	checkPass(t, NewGateCancellation(), "x q[1]; x q[1]; y q[2]; z q[2]; y q; y q;", "y q[2];", "z q[2];")
	checkPass(t, NewGateCancellation(), "if(c==1) x q[0]; x q[0];", "if(c==1) x q[0];", "x q[0];")
	checkPass(t, NewGateCancellation(), "s q[0]; s q[0]; cx q[0],q[1]; cx q[0],q[1];",
		"s q[0];", "s q[0];", "cx q[0],q[1];", "cx q[0],q[1];")
}

// ============================================================================
// Adjoint Folding
// ============================================================================

func Test_AdjointFolding_00(t *testing.T) {
	checkPass(t, NewAdjointFolding(), "s q[0]; sdg q[0]; t q[1]; tdg q[1]; sxdg q[2]; sx q[2];")
	checkPass(t, NewAdjointFolding(), "rz(pi/4) q[2]; rz(-pi/4) q[2]; p(0.5) q[0]; p(-1/2) q[0];")
}

func Test_AdjointFolding_01(t *testing.T) {
	checkPass(t, NewAdjointFolding(), "s q[0]; s q[0];", "s q[0];", "s q[0];")
	checkPass(t, NewAdjointFolding(), "s q[0]; sdg q[1];", "s q[0];", "sdg q[1];")
	checkPass(t, NewAdjointFolding(), "rz(theta) q[0]; rz(-theta) q[0];", "rz(theta) q[0];", "rz(-theta) q[0];")
	checkPass(t, NewAdjointFolding(), "rz(pi) q[0]; rx(-pi) q[0];", "rz(pi) q[0];", "rx(-pi) q[0];")
}

// ============================================================================
// Constant Folding
// ============================================================================

func Test_ConstantFolding_00(t *testing.T) {
	checkPass(t, NewConstantFolding(), "rz(pi/4+pi/4) q[0]; u3(0.1*2,0,a) q[1]; h q[2];",
		"rz(pi/2) q[0];", "u3(0.2,0,a) q[1];", "h q[2];")
}

// ============================================================================
// Commutation Simplification
// ============================================================================

func Test_CommutationSimplification_00(t *testing.T) {
	checkPass(t, NewCommutationSimplification(), "h q[0]; x q[1]; h q[0];", "x q[1];")
}

func Test_CommutationSimplification_01(t *testing.T) {
	// Diagonal gates commute with the control of a cx
	checkPass(t, NewCommutationSimplification(), "rz(pi/4) q[0]; cx q[0],q[1]; rz(pi/4) q[0];",
		"rz(pi/2) q[0];", "cx q[0],q[1];")
	checkPass(t, NewCommutationSimplification(), "t q[0]; cx q[0],q[1]; tdg q[0];", "cx q[0],q[1];")
	// X gates commute with the target of a cx
	checkPass(t, NewCommutationSimplification(), "x q[1]; cx q[0],q[1]; x q[1];", "cx q[0],q[1];")
	// cx gates sharing only a control commute
	checkPass(t, NewCommutationSimplification(), "cx q[0],q[1]; cx q[0],q[2]; cx q[0],q[1];", "cx q[0],q[2];")
}

func Test_CommutationSimplification_02(t *testing.T) {
	checkUnchanged(t, NewCommutationSimplification(), "h q[0]; cx q[0],q[1]; h q[0];")
	checkUnchanged(t, NewCommutationSimplification(), "z q[0]; cx q[1],q[0]; z q[0];")
	checkUnchanged(t, NewCommutationSimplification(), "x q[0]; measure q[0] -> c[0]; x q[0];")
	checkUnchanged(t, NewCommutationSimplification(), "z q[0]; barrier q; z q[0];")
	checkUnchanged(t, NewCommutationSimplification(), "if(c==1) x q[0]; measure q[1] -> c[1]; if(c==1) x q[0];")
}

func Test_CommutationSimplification_03(t *testing.T) {
	// Conditions read, hence commute with each other
	checkPass(t, NewCommutationSimplification(), "if(c==1) x q[0]; if(c==2) z q[1]; if(c==1) x q[0];",
		"if(c==2) z q[1];")
}

// ============================================================================
// Gate Sequence Simplification
// ============================================================================

func Test_GateSequenceSimplification_00(t *testing.T) {
	checkPass(t, NewGateSequenceSimplification(), "h q[0]; x q[0]; x q[0]; h q[0];")
	checkPass(t, NewGateSequenceSimplification(),
		"cx q[0],q[1]; cx q[0],q[1]; swap q[1],q[2]; swap q[1],q[2]; cz q[0],q[2]; cz q[0],q[2];")
}

func Test_GateSequenceSimplification_01(t *testing.T) {
	checkPass(t, NewGateSequenceSimplification(), "rx(pi/4) q[0]; rx(pi/4) q[0]; id q[1]; rz(0) q[2];",
		"rx(pi/2) q[0];")
	checkPass(t, NewGateSequenceSimplification(), "h q[1]; rz(pi/3) q[1]; rz(-pi/3) q[1]; h q[1];")
}

func Test_GateSequenceSimplification_02(t *testing.T) {
	checkUnchanged(t, NewGateSequenceSimplification(), "cx q[0],q[1]; cx q[1],q[0];")
	checkUnchanged(t, NewGateSequenceSimplification(), "rx(pi/4) q[0]; ry(pi/4) q[0];")
	checkUnchanged(t, NewGateSequenceSimplification(), "measure q[0] -> c[0]; measure q[0] -> c[0];")
}

// ============================================================================
// Template Matching
// ============================================================================

func Test_TemplateMatching_00(t *testing.T) {
	checkPass(t, NewTemplateMatching(), "h q[0]; x q[0]; h q[0];", "z q[0];")
	checkPass(t, NewTemplateMatching(), "h q[2]; z q[2]; h q[2];", "x q[2];")
	checkPass(t, NewTemplateMatching(), "tdg q[0]; tdg q[0];", "sdg q[0];")
}

func Test_TemplateMatching_01(t *testing.T) {
	// Replacements form later matches
	checkPass(t, NewTemplateMatching(), "t q[1]; t q[1]; t q[1]; t q[1];", "z q[1];")
}

func Test_TemplateMatching_02(t *testing.T) {
	checkPass(t, NewTemplateMatching(), "cx q[0],q[1]; cx q[1],q[0]; cx q[0],q[1];", "swap q[0],q[1];")
	checkUnchanged(t, NewTemplateMatching(), "cx q[0],q[1]; cx q[1],q[0]; cx q[1],q[0];")
	checkUnchanged(t, NewTemplateMatching(), "h q[0]; x q[1]; h q[0];")
	checkUnchanged(t, NewTemplateMatching(), "h q[0]; if(c==0) x q[0]; h q[0];")
}

// ============================================================================
// Depth Optimization
// ============================================================================

func Test_DepthOptimization_00(t *testing.T) {
	// No target
	checkUnchanged(t, NewDepthOptimization(), "h q[0]; h q[0];")
}

func Test_DepthOptimization_01(t *testing.T) {
	options := transpiler.Options{TargetDepth: 1}
	checkPassWith(t, NewDepthOptimization(), options, "h q[0]; h q[0]; x q[1];", "x q[1];")
}

func Test_DepthOptimization_02(t *testing.T) {
	// Target cannot be reached
	options := transpiler.Options{TargetDepth: 1}
	checkPassWith(t, NewDepthOptimization(), options,
		"h q[0]; x q[1]; h q[0]; cx q[0],q[1]; cx q[1],q[0]; cx q[0],q[1];",
		"x q[1];", "swap q[0],q[1];")
}

// ============================================================================
// Qubit Remapping
// ============================================================================

func Test_QubitRemapping_00(t *testing.T) {
	circuit := parse(t, "OPENQASM 2.0;\nqreg q[5];\nqreg r[2];\ncreg c[5];\n"+
		"h q[1]; cx q[1],q[4]; measure q[4] -> c[4];")
	//
	result, err := NewQubitRemapping().Run(circuit, transpiler.Options{})
	require.NoError(t, err)
	assert.Equal(t, []qasm.Register{{Name: "q", Size: 2}}, result.QRegs)
	assert.Equal(t, []string{"h q[0];", "cx q[0],q[1];", "measure q[1] -> c[4];"}, operations(result))
}

func Test_QubitRemapping_01(t *testing.T) {
	circuit := parse(t, "OPENQASM 2.0;\nqreg q[3];\nqreg r[4];\nh q; x q[2]; x r[3];")
	//
	result, err := NewQubitRemapping().Run(circuit, transpiler.Options{NumQubits: 2})
	require.NoError(t, err)
	assert.Equal(t, []qasm.Register{{Name: "q", Size: 3}, {Name: "r", Size: 1}}, result.QRegs)
	assert.Equal(t, []string{"h q;", "x q[2];", "x r[0];"}, operations(result))
}

// ============================================================================
// Depth Analysis
// ============================================================================

func Test_DepthAnalysis_00(t *testing.T) {
	pass := NewDepthAnalysis()
	assert.Equal(t, transpiler.ANALYSIS, pass.Type())
	checkUnchanged(t, pass, "h q[0]; cx q[0],q[1]; measure q -> c;")
}

// ===================================================================
// Test Helpers
// ===================================================================

func checkPass(t *testing.T, pass transpiler.Pass, body string, expected ...string) {
	t.Helper()
	checkPassWith(t, pass, transpiler.Options{}, body, expected...)
}

func checkPassWith(t *testing.T, pass transpiler.Pass, options transpiler.Options, body string,
	expected ...string) {
	t.Helper()
	//
	result, err := pass.Run(parse(t, header+body), options)
	require.NoError(t, err)
	//
	if len(expected) == 0 {
		assert.Empty(t, result.Operations)
	} else {
		assert.Equal(t, expected, operations(result))
	}
}

func checkUnchanged(t *testing.T, pass transpiler.Pass, body string) {
	t.Helper()
	//
	original := parse(t, header+body)
	result, err := pass.Run(original.Clone(), transpiler.Options{})
	require.NoError(t, err)
	assert.Equal(t, original.Operations, result.Operations)
}

func parse(t *testing.T, text string) *qasm.Circuit {
	t.Helper()
	//
	circuit, errs := qasm.ParseString(text)
	require.Empty(t, errs)
	//
	return circuit
}

func operations(circuit *qasm.Circuit) []string {
	ops := make([]string, len(circuit.Operations))
	for i, op := range circuit.Operations {
		ops[i] = op.String()
	}
	//
	return ops
}
