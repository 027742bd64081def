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
	"maps"
	"slices"

	"github.com/consensys/go-qasm/pkg/qasm"
	log "github.com/sirupsen/logrus"
)

// DEFAULT_PIPELINE_NAME is used for pipelines not given a name.
const DEFAULT_PIPELINE_NAME = "Quantum Transpiler Pipeline"

// Pipeline is an ordered group of stages, along with a registry of the passes
// available for building further stages.
type Pipeline struct {
	Name     string
	stages   []*Stage
	registry map[string]Factory
}

// NewPipeline constructs an (initially empty) pipeline.
func NewPipeline(name string) *Pipeline {
	if name == "" {
		name = DEFAULT_PIPELINE_NAME
	}
	//
	return &Pipeline{name, nil, make(map[string]Factory)}
}

// AddStage appends a stage, returning the pipeline for chaining.
func (p *Pipeline) AddStage(stage *Stage) *Pipeline {
	p.stages = append(p.stages, stage)
	return p
}

// CreateStage constructs a new stage and appends it to this pipeline.
func (p *Pipeline) CreateStage(name string, description string) *Stage {
	stage := NewStage(name, description)
	p.AddStage(stage)
	//
	return stage
}

// Stages returns the stages of this pipeline in execution order.
func (p *Pipeline) Stages() []*Stage {
	return p.stages
}

// RegisterPass makes a kind of pass available in this pipeline.
func (p *Pipeline) RegisterPass(factory Factory) {
	if p.registry == nil {
		p.registry = make(map[string]Factory)
	}
	//
	p.registry[factory.Name] = factory
	log.Debugf("registered pass %s with pipeline %s", factory.Name, p.Name)
}

// PassFactory looks up a registered kind of pass by name.
func (p *Pipeline) PassFactory(name string) (Factory, bool) {
	f, ok := p.registry[name]
	return f, ok
}

// RegisteredPasses returns the registered kinds of pass, sorted by name.
func (p *Pipeline) RegisteredPasses() []Factory {
	var factories []Factory
	//
	for _, name := range slices.Sorted(maps.Keys(p.registry)) {
		factories = append(factories, p.registry[name])
	}
	//
	return factories
}

// Run executes each stage in order.  The first stage to fail aborts the run,
// and its error is returned as is.  There is no rollback: the circuit may
// reflect the stages (and passes) which completed before the failure, hence
// callers needing atomicity must run on a clone.
func (p *Pipeline) Run(circuit *qasm.Circuit, options Options) (*qasm.Circuit, error) {
	for _, stage := range p.stages {
		log.Debugf("running stage %s", stage.Name)
		//
		result, err := stage.Run(circuit, options)
		if err != nil {
			log.Errorf("error in stage %s: %s", stage.Name, err)
			return result, err
		}
		//
		circuit = result
	}
	//
	return circuit, nil
}

// Requirement identifies a pass whose declared requirement is not met by any
// pass running before it.
type Requirement struct {
	Stage   string
	Pass    string
	Missing PassType
}

// Unsatisfied reports every pass whose Requires() names a kind of pass which
// does not run earlier in this pipeline, taking Invalidates() into account.
// This is for inspection only: Run never consults it.
func (p *Pipeline) Unsatisfied() []Requirement {
	var (
		missing []Requirement
		valid   = make(map[PassType]bool)
	)
	//
	for _, stage := range p.stages {
		for _, pass := range stage.passes {
			for _, req := range pass.Requires() {
				if !valid[req] {
					missing = append(missing, Requirement{stage.Name, pass.Name(), req})
				}
			}
			//
			for _, inv := range pass.Invalidates() {
				delete(valid, inv)
			}
			//
			valid[pass.Type()] = true
		}
	}
	//
	return missing
}

// clone this pipeline, including its registry.
func (p *Pipeline) clone() *Pipeline {
	pipeline := NewPipeline(p.Name)
	//
	for _, stage := range p.stages {
		pipeline.AddStage(stage.clone())
	}
	//
	pipeline.registry = maps.Clone(p.registry)
	//
	return pipeline
}
