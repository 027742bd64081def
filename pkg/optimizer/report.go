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
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/consensys/go-qasm/pkg/qasm"
	"github.com/pkg/errors"
)

// REPORT_FORMATS identifies the supported formats of an optimisation report.
var REPORT_FORMATS = []string{"json", "text"}

var (
	reportStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7aa2f7")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff9e64"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7dcfff")).
			Width(8)

	reductionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9ece6a"))
)

// FormatStats renders optimisation statistics either as "json" or as "text".
func FormatStats(stats *qasm.OptimizationStats, format string) (string, error) {
	switch format {
	case "json":
		bytes, err := MarshalStats(stats)
		return string(bytes), err
	case "text":
		return RenderStats(stats), nil
	default:
		return "", CheckFormat(format)
	}
}

// CheckFormat checks whether a given report format is supported.
func CheckFormat(format string) error {
	if !slices.Contains(REPORT_FORMATS, format) {
		return errors.Errorf("unknown report format \"%s\"", format)
	}
	//
	return nil
}

// MarshalStats encodes optimisation statistics as (indented) JSON, using the
// field names of the report file.
func MarshalStats(stats *qasm.OptimizationStats) ([]byte, error) {
	return json.MarshalIndent(stats, "", "  ")
}

// RenderStats renders a human-readable summary of optimisation statistics.
func RenderStats(stats *qasm.OptimizationStats) string {
	var builder strings.Builder
	//
	builder.WriteString(titleStyle.Render(fmt.Sprintf("Optimization Summary (level %d)", stats.OptimizationLevel)))
	builder.WriteString("\n")
	builder.WriteString(renderRow("Gates", stats.OriginalGateCount, stats.OptimizedGateCount,
		stats.GateReductionPercentage))
	builder.WriteString("\n")
	builder.WriteString(renderRow("Depth", stats.OriginalDepth, stats.OptimizedDepth,
		stats.DepthReductionPercentage))
	//
	return reportStyle.Render(builder.String())
}

func renderRow(label string, before int, after int, reduction float64) string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		labelStyle.Render(label),
		fmt.Sprintf("%d → %d ", before, after),
		reductionStyle.Render(fmt.Sprintf("(%.1f%% reduction)", reduction)))
}
