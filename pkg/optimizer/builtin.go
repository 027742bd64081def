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
	"fmt"

	"github.com/consensys/go-qasm/pkg/transpiler"
	log "github.com/sirupsen/logrus"
)

// BUILTIN_PLUGIN is the name under which the built-in passes are available.
const BUILTIN_PLUGIN = "builtin"

// DEFAULT_TEMPLATE names the template used when none is requested.  This
// matches DEFAULT_LEVEL.
const DEFAULT_TEMPLATE = "default"

// Level describes the passes applied at a given optimisation level.  Each
// level includes all the stages of the levels below it.
type Level struct {
	Description string
	Stage       transpiler.StageSpec
}

// OPTIMISATION_LEVELS provides the precanned optimisation levels.  Here 0
// implies no optimisation and, otherwise, increasing levels implies
// increasingly aggressive optimisation.
var OPTIMISATION_LEVELS = []Level{
	// Level 0 == nothing enabled
	{"No optimization", transpiler.StageSpec{}},
	// Level 1 == physically adjacent cancellation only
	{"Light optimization: gate cancellation, adjoint folding",
		transpiler.StageSpec{Name: "Light Optimization", Description: "Cancel adjacent inverse gates",
			Passes: []string{"GateCancellation", "AdjointFolding"}}},
	// Level 2 == cancellation through commuting gates
	{"Medium optimization: commutation analysis, gate simplification",
		transpiler.StageSpec{Name: "Medium Optimization", Description: "Simplify through commutation",
			Passes: []string{"ConstantFolding", "CommutationSimplification", "GateSequenceSimplification"}}},
	// Level 3 == everything
	{"Heavy optimization: depth targeting, template matching, qubit remapping",
		transpiler.StageSpec{Name: "Heavy Optimization", Description: "Resynthesise and remap the circuit",
			Passes: []string{"DepthOptimization", "TemplateMatching", "QubitRemapping"}}},
}

// DEFAULT_LEVEL gives the optimisation level used in most cases.
const DEFAULT_LEVEL = uint(2)

// MAX_LEVEL is the most aggressive optimisation level.
const MAX_LEVEL = uint(3)

// LevelTemplate returns the name of the pipeline template for a given level.
func LevelTemplate(level uint) string {
	return fmt.Sprintf("O%d", level)
}

// Builtin is the plugin providing every built-in pass.
var Builtin = transpiler.PluginFunc(func() []transpiler.Factory {
	return []transpiler.Factory{
		// Abstract marker for optimisation passes
		{Name: "Optimization", Description: "Base optimization pass", Type: transpiler.OPTIMIZATION},
		transpiler.Singleton(NewGateCancellation()),
		transpiler.Singleton(NewAdjointFolding()),
		transpiler.Singleton(NewConstantFolding()),
		transpiler.Singleton(NewCommutationSimplification()),
		transpiler.Singleton(NewGateSequenceSimplification()),
		transpiler.Singleton(NewDepthOptimization()),
		transpiler.Singleton(NewTemplateMatching()),
		transpiler.Singleton(NewQubitRemapping()),
		transpiler.Singleton(NewDepthAnalysis()),
	}
})

// Initialize constructs a manager with the built-in passes loaded, and one
// pipeline template per optimisation level (named "O0" through "O3"), along
// with the "default" template.
func Initialize() *transpiler.Manager {
	manager := transpiler.NewManager()
	manager.AddPlugin(BUILTIN_PLUGIN, Builtin)
	manager.LoadPasses(BUILTIN_PLUGIN)
	//
	for level := range OPTIMISATION_LEVELS {
		spec := levelSpec(LevelTemplate(uint(level)), uint(level))
		// Built-in passes always exist
		if err := manager.RegisterTemplateSpec(spec); err != nil {
			panic(err)
		}
	}
	//
	if err := manager.RegisterTemplateSpec(levelSpec(DEFAULT_TEMPLATE, DEFAULT_LEVEL)); err != nil {
		panic(err)
	}
	//
	log.Debugf("initialised transpiler with %d passes", len(manager.Passes()))
	//
	return manager
}

// IsBuiltinTemplate checks whether a given name is reserved for one of the
// templates registered by Initialize.
func IsBuiltinTemplate(name string) bool {
	if name == DEFAULT_TEMPLATE {
		return true
	}
	//
	for level := range OPTIMISATION_LEVELS {
		if name == LevelTemplate(uint(level)) {
			return true
		}
	}
	//
	return false
}

// Construct the template for a given optimisation level.
func levelSpec(name string, level uint) transpiler.TemplateSpec {
	spec := transpiler.TemplateSpec{Name: name}
	//
	for i := uint(1); i <= level; i++ {
		spec.Stages = append(spec.Stages, OPTIMISATION_LEVELS[i].Stage)
	}
	//
	return spec
}
