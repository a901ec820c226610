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

package lint

import (
	"fmt"
	"go/token"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alex-flnx/validating-base/pkg/contract"
)

// A Result describes a finding associated with a position in an input
// file.
type Result struct {
	// The position of the Contract method whose declaration produced
	// the Result.
	Contract token.Position `json:"contract" yaml:"contract"`
	// Kind classifies broken-rule findings. It is KindNone for
	// advisory results.
	Kind contract.Kind `json:"kind,omitempty" yaml:"kind,omitempty"`
	// The message for human consumption.
	Message string `json:"message" yaml:"message"`
	// The position that the message is associated with.
	Pos token.Position `json:"pos" yaml:"pos"`
	// The name of the type whose contract produced the Result.
	Producer string `json:"producer" yaml:"producer"`
	// Warning results do not fail the check.
	Warning bool `json:"warning,omitempty" yaml:"warning,omitempty"`
}

// String is suitable for human consumption.
func (r *Result) String() string {
	return r.StringRelative("")
}

// StringRelative is suitable for human consumption and makes emitted
// file paths relative to the given base path.
func (r *Result) StringRelative(basePath string) string {
	sb := &strings.Builder{}
	sb.WriteString(relative(r.Pos, basePath))
	sb.WriteString(": ")
	if r.Warning {
		sb.WriteString("warning: ")
	}
	sb.WriteString(r.Message)
	fmt.Fprintf(sb, " (%s declared at %s)", r.Producer, relative(r.Contract, basePath))
	return sb.String()
}

// relative renders a position with its filename relative to basePath.
func relative(pos token.Position, basePath string) string {
	name := pos.Filename
	if basePath != "" {
		if rel, err := filepath.Rel(basePath, name); err == nil {
			name = rel
		}
	}
	return fmt.Sprintf("%s:%d:%d", name, pos.Line, pos.Column)
}

// Results is a sortable slice of Result.
type Results []*Result

var _ sort.Interface = Results{}

// HasErrors reports whether any Result is more than advisory.
func (r Results) HasErrors() bool {
	for _, result := range r {
		if !result.Warning {
			return true
		}
	}
	return false
}

// Len implements sort.Interface.
func (r Results) Len() int { return len(r) }

// Less implements sort.Interface. It orders results by their
// filenames, position within the file, producer, and then by message.
func (r Results) Less(i, j int) bool {
	a, b := r[i], r[j]

	if c := strings.Compare(a.Pos.Filename, b.Pos.Filename); c != 0 {
		return c < 0
	}
	if c := a.Pos.Offset - b.Pos.Offset; c != 0 {
		return c < 0
	}
	if c := strings.Compare(a.Producer, b.Producer); c != 0 {
		return c < 0
	}
	return strings.Compare(a.Message, b.Message) < 0
}

// Swap implements sort.Interface.
func (r Results) Swap(i, j int) { r[i], r[j] = r[j], r[i] }

// String is for debugging use only.
func (r Results) String() string {
	sb := &strings.Builder{}
	copied := append(Results(nil), r...)
	sort.Sort(copied)
	for _, result := range copied {
		sb.WriteString(result.String())
		sb.WriteString("\n")
	}
	return sb.String()
}
