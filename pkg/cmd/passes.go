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
	"strings"

	"github.com/consensys/go-qasm/pkg/transpiler"
	"github.com/spf13/cobra"
)

var passesCmd = &cobra.Command{
	Use:   "passes [flags]",
	Short: "list available passes and pipeline templates.",
	Long: `List the transpiler passes which are available, along with the
	pipeline templates (including any from the configuration file).`,
	Run: func(cmd *cobra.Command, args []string) {
		// Configure log level
		configureLogging(cmd)
		//
		engine := newEngine(loadConfig(cmd))
		listPasses(cmd.OutOrStdout(), engine.Manager())
	},
}

func listPasses(out io.Writer, manager *transpiler.Manager) {
	fmt.Fprintln(out, "Passes:")
	//
	for _, f := range manager.Passes() {
		fmt.Fprintf(out, "  %-28s %-14s %s\n", f.Name, f.Type, f.Description)
	}
	//
	fmt.Fprintln(out, "Templates:")
	//
	for _, name := range manager.Templates() {
		template, _ := manager.Template(name)
		//
		var stages []string
		for _, stage := range template.Stages() {
			var passes []string
			for _, pass := range stage.Passes() {
				passes = append(passes, pass.Name())
			}
			//
			stages = append(stages, fmt.Sprintf("%s[%s]", stage.Name, strings.Join(passes, ",")))
		}
		//
		fmt.Fprintf(out, "  %-28s %s\n", name, strings.Join(stages, " -> "))
		// Requirements are advisory only
		for _, r := range template.Unsatisfied() {
			fmt.Fprintf(out, "  %-28s warning: %s in stage %s requires a prior %s pass\n", "", r.Pass, r.Stage,
				r.Missing)
		}
	}
}

func init() {
	rootCmd.AddCommand(passesCmd)
}
