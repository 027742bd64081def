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
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/consensys/go-qasm/pkg/analysis"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats [flags] circuit_file(s)",
	Short: "report the size of OpenQASM circuits.",
	Long:  `Report the number of qubits, gate count and depth of one or more OpenQASM circuits.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) < 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		// Configure log level
		configureLogging(cmd)
		//
		if err := writeStats(cmd.OutOrStdout(), args, GetString(cmd, "format")); err != nil {
			fmt.Fprintln(cmd.OutOrStdout(), err)
			os.Exit(1)
		}
	},
}

// CircuitStats summarises the size of a single circuit file.
type CircuitStats struct {
	File      string `json:"file"`
	Qubits    uint   `json:"qubits"`
	GateCount int    `json:"gate_count"`
	Depth     int    `json:"depth"`
}

func writeStats(out io.Writer, filenames []string, format string) error {
	var stats []CircuitStats
	//
	for _, filename := range filenames {
		circuit, _ := readCircuitFile(out, filename)
		if circuit == nil {
			return fmt.Errorf("unable to read %s", filename)
		}
		//
		s := analysis.Estimate(circuit)
		stats = append(stats, CircuitStats{filename, circuit.NumQubits(), s.GateCount, s.Depth})
	}
	//
	switch format {
	case "json":
		bytes, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return err
		}
		//
		fmt.Fprintln(out, string(bytes))
	case "text":
		for _, s := range stats {
			fmt.Fprintf(out, "%s: %d qubits, %d gates, depth %d\n", s.File, s.Qubits, s.GateCount, s.Depth)
		}
	default:
		return fmt.Errorf("unknown format \"%s\"", format)
	}
	//
	return nil
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().String("format", "text", "set output format (text or json)")
}
