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

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_EvalParam_00(t *testing.T) {
	checkEval(t, "1.5", 1.5)
	checkEval(t, "pi", math.Pi)
	checkEval(t, "-pi/2", -math.Pi/2)
	checkEval(t, "3*pi/4", 3*math.Pi/4)
	checkEval(t, "2e-3", 0.002)
}

func Test_EvalParam_01(t *testing.T) {
	checkEval(t, "1+2*3", 7)
	checkEval(t, "(1+2)*3", 9)
	checkEval(t, "2^3^2", 512)
	checkEval(t, "-2^2", -4)
	checkEval(t, "10-4-3", 3)
}

func Test_EvalParam_02(t *testing.T) {
	checkEval(t, "sin(pi/2)", 1)
	checkEval(t, "cos(0)+sqrt(4)", 3)
	checkEval(t, "ln(exp(2))", 2)
}

func Test_EvalParam_03(t *testing.T) {
	for _, text := range []string{"", "theta", "1+", "(1", "1)", "$", "sin 1"} {
		_, err := EvalParam(text)
		assert.Error(t, err, text)
	}
}

func Test_SplitParams(t *testing.T) {
	assert.Nil(t, SplitParams(""))
	assert.Equal(t, []string{"pi"}, SplitParams("pi"))
	assert.Equal(t, []string{"pi/2", "sin(0.1)", "-1"}, SplitParams("pi/2,sin(0.1),-1"))
	assert.Equal(t, []string{"f(1,2)", "3"}, SplitParams("f(1,2),3"))
}

func Test_FormatAngle(t *testing.T) {
	assert.Equal(t, "0", FormatAngle(0))
	assert.Equal(t, "pi", FormatAngle(math.Pi))
	assert.Equal(t, "-pi/2", FormatAngle(-math.Pi/2))
	assert.Equal(t, "3*pi/4", FormatAngle(3*math.Pi/4))
	assert.Equal(t, "0.3", FormatAngle(0.3))
}

func checkEval(t *testing.T, text string, expected float64) {
	t.Helper()
	//
	actual, err := EvalParam(text)
	require.NoError(t, err)
	assert.InDelta(t, expected, actual, Tolerance, text)
}
