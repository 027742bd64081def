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
	"github.com/consensys/go-qasm/pkg/analysis"
	"github.com/consensys/go-qasm/pkg/qasm"
	"github.com/consensys/go-qasm/pkg/transpiler"
	"github.com/consensys/go-qasm/pkg/util"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Config determines how a circuit is optimised.
type Config struct {
	// Level is the optimisation level (0..3).
	Level uint
	// NumQubits is the number of qubits available (0 means unconstrained).
	NumQubits uint
	// TargetDepth is the requested depth (0 means none requested).
	TargetDepth uint
	// Pipeline optionally names a template to use instead of the one for the
	// given level.
	Pipeline string
}

// DefaultConfig returns the configuration used in most cases.
func DefaultConfig() Config {
	return Config{Level: DEFAULT_LEVEL}
}

// Engine applies optimisation pipelines to circuits, recording statistics on
// the outcome.
type Engine struct {
	manager *transpiler.Manager
}

// NewEngine constructs an engine which draws its pipelines from a given
// manager.
func NewEngine(manager *transpiler.Manager) *Engine {
	return &Engine{manager}
}

// Manager returns the manager used by this engine.
func (e *Engine) Manager() *transpiler.Manager {
	return e.manager
}

// Optimize a given circuit, returning an optimised copy with its statistics
// attached.  The given circuit is never modified, even when a pass fails.
func (e *Engine) Optimize(circuit *qasm.Circuit, cfg Config) (*qasm.Circuit, error) {
	if cfg.Level > MAX_LEVEL {
		return nil, errors.Errorf("invalid optimisation level %d (max %d)", cfg.Level, MAX_LEVEL)
	}
	//
	var (
		template = cfg.Pipeline
		logger   = log.WithField("run", uuid.New().String())
		options  = transpiler.Options{NumQubits: cfg.NumQubits, TargetDepth: cfg.TargetDepth}
	)
	//
	if template == "" {
		template = LevelTemplate(cfg.Level)
	}
	//
	logger.Infof("applying optimisation level %d: %s", cfg.Level, OPTIMISATION_LEVELS[cfg.Level].Description)
	//
	perf := util.NewPerfStats()
	before := analysis.Estimate(circuit)
	pipeline := e.manager.CreatePipeline(template)
	//
	result, err := pipeline.Run(circuit.Clone(), options)
	if err != nil {
		logger.Errorf("optimisation aborted: %s", err)
		return nil, err
	}
	//
	after := analysis.Estimate(result)
	result.Stats = NewStats(before, after, cfg.Level)
	//
	logger.Infof("gate count reduced by %.1f%% (%d gates)", result.Stats.GateReductionPercentage,
		result.Stats.GateReduction)
	logger.Infof("circuit depth reduced by %.1f%% (from %d to %d)", result.Stats.DepthReductionPercentage,
		before.Depth, after.Depth)
	perf.Log(logger, "pipeline "+pipeline.Name)
	//
	return result, nil
}

// NewStats derives the statistics of an optimisation run from the size of the
// circuit before and after.
func NewStats(before analysis.Stats, after analysis.Stats, level uint) *qasm.OptimizationStats {
	return &qasm.OptimizationStats{
		OriginalGateCount:        before.GateCount,
		OptimizedGateCount:       after.GateCount,
		GateReduction:            before.GateCount - after.GateCount,
		GateReductionPercentage:  percentage(before.GateCount-after.GateCount, before.GateCount),
		OriginalDepth:            before.Depth,
		OptimizedDepth:           after.Depth,
		DepthReduction:           before.Depth - after.Depth,
		DepthReductionPercentage: percentage(before.Depth-after.Depth, before.Depth),
		OptimizationLevel:        level,
	}
}

func percentage(n int, total int) float64 {
	if total == 0 {
		return 0
	}
	//
	return float64(n) * 100 / float64(total)
}
