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
	"testing"

	"github.com/consensys/go-qasm/pkg/qasm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = "OPENQASM 2.0;\ninclude \"qelib1.inc\";\nqreg q[3];\ncreg c[3];\n"

func Test_Depth_00(t *testing.T) {
	checkDepth(t, "", 0)
}

func Test_Depth_01(t *testing.T) {
	checkDepth(t, "h q[0];", 1)
	checkDepth(t, "h q[0]; h q[1]; h q[2];", 1)
	checkDepth(t, "h q[0]; h q[0]; h q[0];", 3)
}

func Test_Depth_02(t *testing.T) {
	// Bell pair followed by broadcast measurement
	checkDepth(t, "h q[0]; cx q[0],q[1]; measure q -> c;", 3)
}

func Test_Depth_03(t *testing.T) {
	// Independent chains only meet at the final cx
	checkDepth(t, "h q[0]; x q[0]; y q[0]; z q[1]; cx q[1],q[2]; cx q[0],q[2];", 4)
}

func Test_Depth_04(t *testing.T) {
	// Broadcast gates do not synchronise their qubits
	checkDepth(t, "x q[0]; h q; y q[1];", 2)
	checkDepth(t, "x q[0]; h q; y q[0];", 3)
}

func Test_Depth_05(t *testing.T) {
	// Barriers contribute nothing
	checkDepth(t, "h q[0]; barrier q; h q[1];", 1)
}

func Test_Depth_06(t *testing.T) {
	// Classical bits are wires too
	checkDepth(t, "measure q[0] -> c[0]; measure q[1] -> c[0];", 2)
	// Conditions read the whole register
	checkDepth(t, "measure q[0] -> c[2]; if(c==1) x q[1];", 2)
}

func Test_Depth_07(t *testing.T) {
	// Physically interleaved but independent
	checkDepth(t, "h q[0]; x q[1]; h q[0];", 2)
}

func Test_Depth_08(t *testing.T) {
	// Undeclared registers still form wires
	checkDepth(t, "h r; h r; cx r,q[0];", 3)
}

func Test_Estimate_00(t *testing.T) {
	circuit := parse(t, "h q[0]; cx q[0],q[1]; barrier q; measure q -> c;")
	stats := Estimate(circuit)
	//
	assert.Equal(t, 4, stats.GateCount)
	assert.Equal(t, 3, stats.Depth)
}

func Test_Wires_00(t *testing.T) {
	circuit := parse(t, "measure q -> c; cx q[0],q[1];")
	//
	assert.Equal(t, [][]string{{"q[0]", "c[0]"}, {"q[1]", "c[1]"}, {"q[2]", "c[2]"}},
		Wires(circuit, &circuit.Operations[0]))
	assert.Equal(t, [][]string{{"q[0]", "q[1]"}}, Wires(circuit, &circuit.Operations[1]))
}

func Test_Monotonic_00(t *testing.T) {
	// Removing operations never increases depth
	circuit := parse(t, "h q[0]; cx q[0],q[1]; x q[2]; cx q[1],q[2]; h q[0]; measure q -> c;")
	depth := Depth(circuit)
	//
	for i := range circuit.Operations {
		reduced := circuit.Clone()
		reduced.Operations = append(reduced.Operations[:i], reduced.Operations[i+1:]...)
		assert.LessOrEqual(t, Depth(reduced), depth)
	}
}

func parse(t *testing.T, body string) *qasm.Circuit {
	t.Helper()
	//
	circuit, errs := qasm.ParseString(header + body)
	require.Empty(t, errs)
	//
	return circuit
}

func checkDepth(t *testing.T, body string, expected int) {
	t.Helper()
	assert.Equal(t, expected, Depth(parse(t, body)), body)
}
