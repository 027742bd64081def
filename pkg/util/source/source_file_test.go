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
package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Span_00(t *testing.T) {
	span := NewSpan(2, 5)
	assert.Equal(t, 2, span.Start())
	assert.Equal(t, 5, span.End())
	assert.Equal(t, 3, span.Length())
}

func Test_Span_01(t *testing.T) {
	assert.Panics(t, func() { NewSpan(3, 2) })
}

func Test_EnclosingLine_00(t *testing.T) {
	file := NewSourceFile("test.qasm", []byte("qreg q[1];\nh q[0];\nx q[0];"))
	// "h" sits at index 11
	line := file.FindFirstEnclosingLine(NewSpan(11, 12))
	assert.Equal(t, 2, line.Number())
	assert.Equal(t, "h q[0];", line.String())
	assert.Equal(t, 11, line.Start())
	assert.Equal(t, 7, line.Length())
}

func Test_EnclosingLine_01(t *testing.T) {
	file := NewSourceFile("test.qasm", []byte("h q[0];\n"))
	// Beyond the end of file, so last line is reported
	line := file.FindFirstEnclosingLine(NewSpan(100, 100))
	assert.Equal(t, 2, line.Number())
}

func Test_SyntaxError_00(t *testing.T) {
	file := NewSourceFile("bell.qasm", []byte("OPENQASM 2.0;\nqreg q[;\n"))
	err := file.SyntaxError(NewSpan(21, 22), "expected register size")
	assert.Equal(t, "bell.qasm:2: expected register size", err.Error())
	assert.Equal(t, "expected register size", err.Message())
	assert.Equal(t, ";", file.Text(err.Span()))
}

func Test_ReadFile_00(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "in.qasm")
	require.NoError(t, os.WriteFile(filename, []byte("h q[0];"), 0644))
	//
	file, err := ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, filename, file.Filename())
	assert.Equal(t, "h q[0];", string(file.Contents()))
}

func Test_ReadFile_01(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.qasm"))
	assert.Error(t, err)
}
