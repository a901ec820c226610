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

// Package rt enforces declared contracts on live values.
//
// Binding an instance verifies its contract and returns a Bound handle
// whose Call and Func methods run validators before actions.
// Verification is ordered and atomic: required names are checked
// before validated ones, the first broken rule aborts the bind, and no
// wrapper is installed unless every rule holds.
package rt

import (
	"reflect"
)

// errType is the interface type of error.
var errType = reflect.TypeOf((*error)(nil)).Elem()

// memberKind describes how a declared name resolves on a type.
type memberKind int

const (
	// The name resolves to nothing exported.
	memberMissing memberKind = iota
	// The name resolves to an exported method.
	memberMethod
	// The name resolves to an exported func-typed field.
	memberFuncField
	// The name resolves to an exported field that cannot be invoked.
	memberOtherField
)

// A member locates a declared name within a type.
type member struct {
	kind memberKind
	// Index into the type's method set, for memberMethod.
	method int
	// Field index path into the struct, for the field kinds.
	index []int
}

// resolveMember finds the exported method or field behind a name.
// Methods win over fields. The method set is that of the type as it
// was bound, so pointer-receiver methods require binding a pointer.
func resolveMember(t reflect.Type, name string) member {
	if m, ok := t.MethodByName(name); ok {
		return member{kind: memberMethod, method: m.Index}
	}
	base := t
	if base.Kind() == reflect.Pointer {
		base = base.Elem()
	}
	if base.Kind() != reflect.Struct {
		return member{kind: memberMissing}
	}
	f, ok := base.FieldByName(name)
	if !ok || f.PkgPath != "" {
		return member{kind: memberMissing}
	}
	if f.Type.Kind() == reflect.Func {
		return member{kind: memberFuncField, index: f.Index}
	}
	return member{kind: memberOtherField, index: f.Index}
}

// invoke calls fn. Packed arguments carry a variadic tail as a single
// trailing slice, the shape reflect.MakeFunc delivers.
func invoke(fn reflect.Value, args []reflect.Value, packed bool) []reflect.Value {
	if packed && fn.Type().IsVariadic() {
		return fn.CallSlice(args)
	}
	return fn.Call(args)
}

// checkWith runs a validator, which returns exactly one error value.
func checkWith(v reflect.Value, args []reflect.Value, packed bool) error {
	out := invoke(v, args, packed)
	if out[0].IsNil() {
		return nil
	}
	return out[0].Interface().(error)
}

// errorResults builds the return values for a wrapper whose validator
// objected: zero values, with err in the trailing error slot.
func errorResults(ft reflect.Type, err error) []reflect.Value {
	out := make([]reflect.Value, ft.NumOut())
	for i := range out {
		out[i] = reflect.Zero(ft.Out(i))
	}
	ev := reflect.New(errType).Elem()
	ev.Set(reflect.ValueOf(err))
	out[len(out)-1] = ev
	return out
}
