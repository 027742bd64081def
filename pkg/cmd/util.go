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
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/consensys/go-qasm/pkg/config"
	"github.com/consensys/go-qasm/pkg/optimizer"
	"github.com/consensys/go-qasm/pkg/qasm"
	"github.com/consensys/go-qasm/pkg/util/source"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// GetFlag gets an expected flag, or exits if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return r
}

// GetUint gets an expected unsigned integer flag, or exits if an error
// arises.
func GetUint(cmd *cobra.Command, flag string) uint {
	r, err := cmd.Flags().GetUint(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return r
}

// GetString gets an expected string flag, or exits if an error arises.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return r
}

// Configure the log level.
func configureLogging(cmd *cobra.Command) {
	if GetFlag(cmd, "verbose") {
		log.SetLevel(log.DebugLevel)
	}
}

// Read the configuration file given on the command line (if any), or exit if
// an error arises.
func loadConfig(cmd *cobra.Command) *config.Config {
	filename := GetString(cmd, "config")
	//
	if filename == "" {
		return config.Default()
	}
	//
	cfg, err := config.Load(filename)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return cfg
}

// Construct an engine whose manager holds the built-in passes and templates,
// along with those defined in the given configuration.
func newEngine(cfg *config.Config) *optimizer.Engine {
	manager := optimizer.Initialize()
	//
	if err := cfg.Register(manager); err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return optimizer.NewEngine(manager)
}

// Determine the engine settings, where command-line flags override those of
// the configuration file.
func engineConfig(cmd *cobra.Command, cfg *config.Config) optimizer.Config {
	ecfg := cfg.Engine()
	//
	if cmd.Flags().Changed("opt") {
		ecfg.Level = GetUint(cmd, "opt")
	}
	//
	if cmd.Flags().Changed("depth") {
		ecfg.TargetDepth = GetUint(cmd, "depth")
	}
	//
	if cmd.Flags().Changed("qubits") {
		ecfg.NumQubits = GetUint(cmd, "qubits")
	}
	//
	if cmd.Flags().Changed("pipeline") {
		ecfg.Pipeline = GetString(cmd, "pipeline")
	}
	//
	return ecfg
}

// Parse a circuit file, reporting any syntax errors.  The circuit is nil if
// the file could not be read.
func readCircuitFile(out io.Writer, filename string) (*qasm.Circuit, []source.SyntaxError) {
	circuit, errs, err := qasm.ParseFile(filename)
	if err != nil {
		fmt.Fprintln(out, err)
		return nil, nil
	}
	//
	for i := range errs {
		printSyntaxError(out, &errs[i])
	}
	//
	return circuit, errs
}

// Print a syntax error with appropriate highlighting.
func printSyntaxError(out io.Writer, err *source.SyntaxError) {
	span := err.Span()
	line := err.FirstEnclosingLine()
	// Print error + line number
	fmt.Fprintf(out, "%s:%d: %s\n", err.SourceFile().Filename(), line.Number(), err.Message())
	// Print line
	fmt.Fprintln(out, line.String())
	// Print indent (todo: account for tabs)
	fmt.Fprint(out, strings.Repeat(" ", max(0, span.Start()-line.Start())))
	// Print highlight
	fmt.Fprintln(out, strings.Repeat("^", max(1, min(span.Length(), line.Length()))))
}
