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
package qasm

import (
	"fmt"
	"strings"
)

// Write serialises a given circuit as OpenQASM text.  This is the structural
// inverse of Parse: parsing the output of Write yields a circuit equal to the
// one written (ignoring attached statistics).  The version header is omitted
// when no version is known.
func Write(circuit *Circuit) string {
	var builder strings.Builder
	//
	if circuit.Version != "" {
		fmt.Fprintf(&builder, "OPENQASM %s;\n", circuit.Version)
	}
	//
	for _, include := range circuit.Includes {
		fmt.Fprintf(&builder, "include \"%s\";\n", include)
	}
	//
	for _, reg := range circuit.QRegs {
		fmt.Fprintf(&builder, "qreg %s[%d];\n", reg.Name, reg.Size)
	}
	//
	for _, reg := range circuit.CRegs {
		fmt.Fprintf(&builder, "creg %s[%d];\n", reg.Name, reg.Size)
	}
	//
	for _, gate := range circuit.Gates {
		builder.WriteString(gate.String())
		builder.WriteString("\n")
	}
	//
	for _, op := range circuit.Operations {
		builder.WriteString(op.String())
		builder.WriteString("\n")
	}
	//
	return builder.String()
}

// String returns the OpenQASM text of this circuit.
func (c *Circuit) String() string {
	return Write(c)
}

// String returns the OpenQASM text of this gate definition.
func (g GateDefinition) String() string {
	header := g.Name
	//
	switch {
	case strings.HasPrefix(g.Params, "("):
		header = g.Name + g.Params
	case g.Params != "":
		header = fmt.Sprintf("%s %s", g.Name, g.Params)
	}
	//
	switch {
	case g.Opaque:
		return fmt.Sprintf("opaque %s;", header)
	case g.Body == "":
		return fmt.Sprintf("gate %s { }", header)
	default:
		return fmt.Sprintf("gate %s { %s }", header, g.Body)
	}
}

// String returns the OpenQASM statement for this operation, e.g.
// "u1(pi/2) q[0];".  The parameter list is omitted when empty.
func (o Operation) String() string {
	var builder strings.Builder
	//
	if o.Condition != "" {
		fmt.Fprintf(&builder, "if(%s) ", o.Condition)
	}
	//
	builder.WriteString(o.Name)
	//
	if o.Params != "" {
		fmt.Fprintf(&builder, "(%s)", o.Params)
	}
	//
	fmt.Fprintf(&builder, " %s;", o.Qubits)
	//
	return builder.String()
}
