// Copyright 2026 The Validating Base Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or
// implied. See the License for the specific language governing
// permissions and limitations under the License.

package contract

import (
	"fmt"
	"sort"
	"strings"
)

// A Diagnostic is an advisory finding. Diagnostics never fail a bind;
// they describe declarations that are legal but suspicious, such as a
// validated name with no implementation behind it.
type Diagnostic struct {
	// Message is the human-readable description.
	Message string
	// Method names the declared action.
	Method string
	// Type names the declaring type.
	Type string
}

// String is suitable for human consumption.
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s", d.Type, d.Method, d.Message)
}

// Diagnostics is a sortable slice of Diagnostic.
type Diagnostics []Diagnostic

var _ sort.Interface = Diagnostics{}

// Len implements sort.Interface.
func (d Diagnostics) Len() int { return len(d) }

// Less implements sort.Interface. It orders diagnostics by type,
// method, and then by message.
func (d Diagnostics) Less(i, j int) bool {
	a, b := d[i], d[j]

	if c := strings.Compare(a.Type, b.Type); c != 0 {
		return c < 0
	}
	if c := strings.Compare(a.Method, b.Method); c != 0 {
		return c < 0
	}
	return strings.Compare(a.Message, b.Message) < 0
}

// Swap implements sort.Interface.
func (d Diagnostics) Swap(i, j int) { d[i], d[j] = d[j], d[i] }

// String is for debugging use only.
func (d Diagnostics) String() string {
	sb := &strings.Builder{}
	for _, diag := range d {
		sb.WriteString(diag.String())
		sb.WriteString("\n")
	}
	return sb.String()
}
