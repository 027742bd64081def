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
	"github.com/consensys/go-qasm/pkg/qasm"
	"github.com/consensys/go-qasm/pkg/util"
	log "github.com/sirupsen/logrus"
)

// Stage is an ordered group of passes run sequentially as one unit.
type Stage struct {
	Name        string
	Description string
	passes      []Pass
}

// NewStage constructs an (initially empty) stage.
func NewStage(name string, description string) *Stage {
	if description == "" {
		description = "Transpiler stage: " + name
	}
	//
	return &Stage{name, description, nil}
}

// AddPass appends a pass to this stage, returning the stage for chaining.
func (s *Stage) AddPass(pass Pass) *Stage {
	s.passes = append(s.passes, pass)
	return s
}

// Passes returns the passes of this stage in execution order.
func (s *Stage) Passes() []Pass {
	return s.passes
}

// Run executes each pass in order.  The first pass to fail aborts the stage,
// and its error is returned as is.  Passes which already ran are not undone.
func (s *Stage) Run(circuit *qasm.Circuit, options Options) (*qasm.Circuit, error) {
	for _, pass := range s.passes {
		log.Debugf("running pass %s in stage %s", pass.Name(), s.Name)
		//
		perf := util.NewPerfStats()
		//
		result, err := pass.Run(circuit, options)
		if err != nil {
			log.Errorf("error in pass %s: %s", pass.Name(), err)
			return circuit, err
		}
		//
		perf.Log(log.WithField("stage", s.Name), "pass "+pass.Name())
		//
		circuit = result
	}
	//
	return circuit, nil
}

// clone this stage, sharing stateless passes.
func (s *Stage) clone() *Stage {
	stage := NewStage(s.Name, s.Description)
	//
	for _, pass := range s.passes {
		if c, ok := pass.(Cloner); ok {
			pass = c.Clone()
		}
		//
		stage.AddPass(pass)
	}
	//
	return stage
}
