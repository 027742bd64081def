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
package util

import (
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
)

func Test_PerfStats_00(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(log.DebugLevel)
	//
	perf := NewPerfStats()
	perf.Log(log.NewEntry(logger).WithField("stage", "s"), "pass X")
	//
	entry := hook.LastEntry()
	assert.NotNil(t, entry)
	assert.Equal(t, "pass X complete", entry.Message)
	assert.Equal(t, "s", entry.Data["stage"])
	assert.Contains(t, entry.Data, "elapsed")
	assert.Contains(t, entry.Data, "alloc")
}

func Test_PerfStats_01(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(log.InfoLevel)
	// Nothing reported above debug level
	NewPerfStats().Log(log.NewEntry(logger), "pass X")
	assert.Empty(t, hook.AllEntries())
}
