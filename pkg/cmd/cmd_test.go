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
package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/consensys/go-qasm/pkg/config"
	"github.com/consensys/go-qasm/pkg/optimizer"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bellCircuit = "OPENQASM 2.0;\ninclude \"qelib1.inc\";\nqreg q[2];\ncreg c[2];\n" +
	"h q[0];\nh q[0];\ncx q[0],q[1];\nmeasure q -> c;\n"

func Test_Optimize_00(t *testing.T) {
	var out bytes.Buffer
	//
	dir := t.TempDir()
	input := writeCircuit(t, dir, "bell.qasm", bellCircuit)
	//
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"optimize", "-O", "1", "--format", "json", input})
	require.NoError(t, rootCmd.Execute())
	//
	assert.Contains(t, out.String(), "\"gate_reduction\": 2")
	assert.FileExists(t, filepath.Join(dir, "bell_optimized.qasm"))
	assert.FileExists(t, filepath.Join(dir, "bell_optimized_report.json"))
}

func Test_EngineConfig_00(t *testing.T) {
	cmd := newOptimizeFlags(t, "-O", "3", "--depth", "5")
	//
	assert.Equal(t, optimizer.Config{Level: 3, TargetDepth: 5}, engineConfig(cmd, config.Default()))
}

func Test_EngineConfig_01(t *testing.T) {
	cfg := &config.Config{OptimizationLevel: 1, NumQubits: 4, Pipeline: "custom"}
	// Flags which are not given leave the configuration unchanged
	cmd := newOptimizeFlags(t, "--qubits", "8")
	//
	assert.Equal(t, optimizer.Config{Level: 1, NumQubits: 8, Pipeline: "custom"}, engineConfig(cmd, cfg))
}

func Test_Stats_00(t *testing.T) {
	var out bytes.Buffer
	//
	input := writeCircuit(t, t.TempDir(), "bell.qasm", bellCircuit)
	//
	require.NoError(t, writeStats(&out, []string{input}, "text"))
	assert.Equal(t, input+": 2 qubits, 4 gates, depth 4\n", out.String())
	//
	out.Reset()
	require.NoError(t, writeStats(&out, []string{input}, "json"))
	assert.Contains(t, out.String(), "\"gate_count\": 4")
	//
	assert.Error(t, writeStats(&out, []string{input}, "yaml"))
	assert.Error(t, writeStats(&out, []string{input + ".missing"}, "text"))
}

func Test_Validate_00(t *testing.T) {
	var out bytes.Buffer
	//
	input := writeCircuit(t, t.TempDir(), "bell.qasm", bellCircuit)
	assert.True(t, validateFile(&out, input))
	assert.Empty(t, out.String())
}

func Test_Validate_01(t *testing.T) {
	var out bytes.Buffer
	//
	input := writeCircuit(t, t.TempDir(), "bad.qasm", "OPENQASM 2.0;\nqreg q[2];\nh r[0];\nx q[2];\n")
	assert.False(t, validateFile(&out, input))
	assert.Contains(t, out.String(), "unknown qreg \"r\"")
	assert.Contains(t, out.String(), "out of bounds")
}

func Test_Validate_02(t *testing.T) {
	var out bytes.Buffer
	//
	input := writeCircuit(t, t.TempDir(), "syntax.qasm", "OPENQASM 2.0;\nqreg q[2];\nh q[0]\n")
	assert.False(t, validateFile(&out, input))
	assert.Contains(t, out.String(), "syntax.qasm:")
	assert.Contains(t, out.String(), "^")
}

func Test_Passes_00(t *testing.T) {
	var out bytes.Buffer
	//
	listPasses(&out, optimizer.Initialize())
	//
	assert.Contains(t, out.String(), "GateCancellation")
	assert.Contains(t, out.String(), "ANALYSIS")
	assert.Contains(t, out.String(), "Light Optimization[GateCancellation,AdjointFolding]")
}

func newOptimizeFlags(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	//
	cmd := &cobra.Command{}
	cmd.Flags().UintP("opt", "O", optimizer.DEFAULT_LEVEL, "")
	cmd.Flags().Uint("depth", 0, "")
	cmd.Flags().Uint("qubits", 0, "")
	cmd.Flags().String("pipeline", "", "")
	require.NoError(t, cmd.ParseFlags(args))
	//
	return cmd
}

func writeCircuit(t *testing.T, dir string, name string, contents string) string {
	t.Helper()
	//
	filename := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(filename, []byte(contents), 0644))
	//
	return filename
}
