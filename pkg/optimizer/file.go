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
	"os"
	"path/filepath"
	"strings"

	"github.com/consensys/go-qasm/pkg/qasm"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// OptimizeFile reads an OpenQASM file, optimises it and writes the result.
// When no output file is given, the result is written alongside the input
// with an "_optimized" suffix.  An accompanying JSON report is written with a
// "_report.json" suffix.  When no qubit count is configured, the total size of
// the declared quantum registers is used.  Nothing is written if any step
// fails.
func OptimizeFile(engine *Engine, input string, output string, cfg Config) (*qasm.OptimizationStats, error) {
	log.Infof("starting circuit optimization of %s", input)
	//
	if ext := strings.ToLower(filepath.Ext(input)); ext != ".qasm" {
		return nil, errors.Errorf("unsupported file type for optimization: \"%s\"", ext)
	}
	//
	circuit, errs, err := qasm.ParseFile(input)
	if err != nil {
		return nil, err
	}
	// Parsing is best effort
	for _, e := range errs {
		log.Warnf("%s", e.Error())
	}
	//
	if cfg.NumQubits == 0 {
		cfg.NumQubits = circuit.NumQubits()
		log.Infof("using %d qubits from circuit definition", cfg.NumQubits)
	}
	//
	result, err := engine.Optimize(circuit, cfg)
	if err != nil {
		return nil, err
	}
	//
	report, err := MarshalStats(result.Stats)
	if err != nil {
		return nil, err
	}
	//
	if output == "" {
		output = OptimizedFile(input)
	}
	//
	if err := writeFile(output, []byte(qasm.Write(result))); err != nil {
		return nil, err
	}
	//
	if err := writeFile(ReportFile(output), report); err != nil {
		// Don't leave a circuit behind without its report
		if rerr := os.Remove(output); rerr != nil {
			log.Warnf("failed removing %s: %s", output, rerr)
		}
		//
		return nil, err
	}
	//
	log.Infof("optimized circuit written to %s", output)
	log.Infof("optimization report written to %s", ReportFile(output))
	//
	return result.Stats, nil
}

// OptimizedFile determines the default output file for a given input file.
func OptimizedFile(input string) string {
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + "_optimized" + ext
}

// ReportFile determines the report file accompanying a given output file.
func ReportFile(output string) string {
	return strings.TrimSuffix(output, filepath.Ext(output)) + "_report.json"
}

// Write a file, creating its enclosing directories as necessary.
func writeFile(filename string, contents []byte) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return errors.Wrapf(err, "creating directory for %s", filename)
	}
	//
	if err := os.WriteFile(filename, contents, 0644); err != nil {
		return errors.Wrapf(err, "writing %s", filename)
	}
	//
	return nil
}
