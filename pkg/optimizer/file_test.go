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
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/consensys/go-qasm/pkg/qasm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bell = "OPENQASM 2.0;\ninclude \"qelib1.inc\";\nqreg q[2];\ncreg c[2];\n" +
	"h q[0];\nh q[0];\nh q[0];\ncx q[0],q[1];\nmeasure q -> c;\n"

func Test_OptimizeFile_00(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "bell.qasm", bell)
	//
	stats, err := OptimizeFile(NewEngine(Initialize()), input, "", Config{Level: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, stats.GateReduction)
	//
	output := filepath.Join(dir, "bell_optimized.qasm")
	assert.Equal(t, "OPENQASM 2.0;\ninclude \"qelib1.inc\";\nqreg q[2];\ncreg c[2];\n"+
		"h q[0];\ncx q[0],q[1];\nmeasure q -> c;\n", readFile(t, output))
	//
	var report qasm.OptimizationStats
	//
	require.NoError(t, json.Unmarshal([]byte(readFile(t, filepath.Join(dir, "bell_optimized_report.json"))), &report))
	assert.Equal(t, *stats, report)
}

func Test_OptimizeFile_01(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "bell.QASM", bell)
	output := filepath.Join(dir, "out", "nested", "result.qasm")
	//
	_, err := OptimizeFile(NewEngine(Initialize()), input, output, DefaultConfig())
	require.NoError(t, err)
	assert.FileExists(t, output)
	assert.FileExists(t, filepath.Join(dir, "out", "nested", "result_report.json"))
}

func Test_OptimizeFile_02(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "bell.txt", bell)
	//
	_, err := OptimizeFile(NewEngine(Initialize()), input, "", DefaultConfig())
	assert.Error(t, err)
	assert.NoFileExists(t, filepath.Join(dir, "bell_optimized.txt"))
}

func Test_OptimizeFile_03(t *testing.T) {
	dir := t.TempDir()
	//
	_, err := OptimizeFile(NewEngine(Initialize()), filepath.Join(dir, "missing.qasm"), "", DefaultConfig())
	assert.Error(t, err)
	assert.NoFileExists(t, filepath.Join(dir, "missing_optimized.qasm"))
}

func Test_OptimizeFile_04(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "bell.qasm", bell)
	//
	_, err := OptimizeFile(NewEngine(Initialize()), input, "", Config{Level: 7})
	assert.Error(t, err)
	//
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func Test_OptimizeFile_05(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "bell.qasm", bell)
	// Report cannot be written over a directory
	require.NoError(t, os.Mkdir(filepath.Join(dir, "bell_optimized_report.json"), 0755))
	//
	_, err := OptimizeFile(NewEngine(Initialize()), input, "", DefaultConfig())
	assert.Error(t, err)
	assert.NoFileExists(t, filepath.Join(dir, "bell_optimized.qasm"))
}

func Test_OptimizedFile_00(t *testing.T) {
	assert.Equal(t, "dir/circuit_optimized.qasm", OptimizedFile("dir/circuit.qasm"))
	assert.Equal(t, "dir/circuit_report.json", ReportFile("dir/circuit.qasm"))
}

func writeInput(t *testing.T, dir string, name string, contents string) string {
	t.Helper()
	//
	filename := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(filename, []byte(contents), 0644))
	//
	return filename
}

func readFile(t *testing.T, filename string) string {
	t.Helper()
	//
	bytes, err := os.ReadFile(filename)
	require.NoError(t, err)
	//
	return string(bytes)
}
