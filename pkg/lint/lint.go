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

// Package lint verifies declared contracts against Go source without
// executing it.
//
// The rules are the ones pkg/rt enforces on live values, applied
// through go/types: required names must resolve to methods or func
// fields, validated names must pair with a validator of identical
// parameters returning only an error. What the type system cannot
// show, such as whether a func field holds nil at runtime, stays with
// the runtime enforcer.
package lint

import (
	"fmt"
	"go/token"
	"go/types"
	"sort"
	"strings"

	"github.com/alex-flnx/validating-base/pkg/contract"
	"golang.org/x/tools/go/packages"
)

// A Declaration is a contract found in source.
type Declaration struct {
	// The declared contract. Only trustworthy when Static.
	Contract contract.Contract `json:"contract" yaml:"contract"`
	// The type name, qualified with its package name.
	Name string `json:"name" yaml:"name"`
	// Pos locates the declaring type.
	Pos token.Position `json:"pos" yaml:"pos"`
	// Static reports whether the declaration could be read from the
	// Contract method body without executing it.
	Static bool `json:"static" yaml:"static"`

	// The position of the Contract method, for result attribution.
	contractPos token.Position
	fn          *types.Func
	named       *types.Named
	pkg         *packages.Package
}

// String is suitable for human consumption.
func (d *Declaration) String() string {
	sb := &strings.Builder{}
	fmt.Fprintf(sb, "%s (%s:%d:%d)", d.Name, d.Pos.Filename, d.Pos.Line, d.Pos.Column)
	if !d.Static {
		sb.WriteString(": not statically analyzable")
		return sb.String()
	}
	fmt.Fprintf(sb, ": required=%v validated=%v", d.Contract.Required, d.Contract.Validated)
	return sb.String()
}

// lookup resolves a name against the pointer method set and the
// fields of the declaring type. Unexported members do not participate,
// matching the runtime.
func (d *Declaration) lookup(name string) types.Object {
	obj, _, _ := types.LookupFieldOrMethod(types.NewPointer(d.named), true, d.pkg.Types, name)
	if obj == nil || !obj.Exported() {
		return nil
	}
	return obj
}

// result builds a Result attributed to obj, falling back to the type
// declaration when the offender has no position of its own.
func (d *Declaration) result(kind contract.Kind, obj types.Object, format string, args ...any) *Result {
	pos := d.Pos
	if obj != nil {
		pos = d.pkg.Fset.Position(obj.Pos())
	}
	return &Result{
		Contract: d.contractPos,
		Kind:     kind,
		Message:  fmt.Sprintf(format, args...),
		Pos:      pos,
		Producer: d.Name,
	}
}

// Declarations is a sortable slice of Declaration.
type Declarations []*Declaration

var _ sort.Interface = Declarations{}

// Len implements sort.Interface.
func (d Declarations) Len() int { return len(d) }

// Less implements sort.Interface. It orders declarations by filename
// and position within the file.
func (d Declarations) Less(i, j int) bool {
	a, b := d[i], d[j]

	if c := strings.Compare(a.Pos.Filename, b.Pos.Filename); c != 0 {
		return c < 0
	}
	return a.Pos.Offset < b.Pos.Offset
}

// Swap implements sort.Interface.
func (d Declarations) Swap(i, j int) { d[i], d[j] = d[j], d[i] }
