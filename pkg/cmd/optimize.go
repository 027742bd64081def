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

	"github.com/consensys/go-qasm/pkg/optimizer"
	"github.com/consensys/go-qasm/pkg/qasm"
	"github.com/spf13/cobra"
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize [flags] circuit_file",
	Short: "optimise an OpenQASM circuit.",
	Long: `Optimise a given OpenQASM 2.0 circuit at a given level, writing
	the optimised circuit alongside a JSON report of the reduction in gate
	count and depth.  Level 0 applies nothing, level 1 cancels adjacent
	inverse gates, level 2 cancels gates through commuting operations and
	level 3 additionally applies templates and compacts qubits.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		// Configure log level
		configureLogging(cmd)
		//
		cfg := loadConfig(cmd)
		engine := newEngine(cfg)
		ecfg := engineConfig(cmd, cfg)
		output := GetString(cmd, "output")
		format := GetString(cmd, "format")
		// Check report format before writing anything
		if err := optimizer.CheckFormat(format); err != nil {
			fmt.Fprintln(cmd.OutOrStdout(), err)
			os.Exit(1)
		}
		// Reject structurally invalid circuits (if requested)
		if GetFlag(cmd, "strict") && !validateFile(cmd.OutOrStdout(), args[0]) {
			os.Exit(1)
		}
		//
		stats, err := optimizer.OptimizeFile(engine, args[0], output, ecfg)
		if err != nil {
			fmt.Fprintln(cmd.OutOrStdout(), err)
			os.Exit(1)
		}
		//
		if err := printStats(cmd.OutOrStdout(), stats, format); err != nil {
			fmt.Fprintln(cmd.OutOrStdout(), err)
			os.Exit(2)
		}
	},
}

func printStats(out io.Writer, stats *qasm.OptimizationStats, format string) error {
	text, err := optimizer.FormatStats(stats, format)
	if err != nil {
		return err
	}
	//
	_, err = fmt.Fprintln(out, text)
	//
	return err
}

func init() {
	rootCmd.AddCommand(optimizeCmd)
	optimizeCmd.Flags().UintP("opt", "O", optimizer.DEFAULT_LEVEL, "set optimisation level (0..3)")
	optimizeCmd.Flags().Uint("depth", 0, "set target circuit depth")
	optimizeCmd.Flags().Uint("qubits", 0, "set number of available qubits")
	optimizeCmd.Flags().StringP("output", "o", "", "set output file (default <input>_optimized.qasm)")
	optimizeCmd.Flags().String("format", "text", "set report format (text or json)")
	optimizeCmd.Flags().String("pipeline", "", "use a named pipeline template instead of the optimisation level's")
	optimizeCmd.Flags().Bool("strict", false, "reject circuits referring to undeclared registers")
}
