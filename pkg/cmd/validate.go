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

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [flags] circuit_file(s)",
	Short: "check OpenQASM circuits for errors.",
	Long: `Check one or more OpenQASM circuits for syntax errors, and for
	references to undeclared or out-of-bounds registers.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) < 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		// Configure log level
		configureLogging(cmd)
		//
		valid := true
		for _, filename := range args {
			valid = validateFile(cmd.OutOrStdout(), filename) && valid
		}
		//
		if !valid {
			os.Exit(1)
		}
	},
}

// Check a given circuit file, reporting any problems found.
func validateFile(out io.Writer, filename string) bool {
	circuit, errs := readCircuitFile(out, filename)
	if circuit == nil {
		return false
	}
	//
	if err := circuit.Validate(); err != nil {
		fmt.Fprintf(out, "%s: %s\n", filename, err)
		return false
	}
	//
	return len(errs) == 0
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
