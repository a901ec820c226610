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

package rt

import (
	"fmt"
	"reflect"

	"github.com/alex-flnx/validating-base/pkg/contract"
	"github.com/pkg/errors"
)

// An entry is the analyzed form of one declared name.
type entry struct {
	// The declared name.
	name string
	// Where the action resolves.
	act member
	// Where the validator resolves. Only meaningful for validated
	// entries whose action exists.
	val member
	// The caller-visible action signature, receiver stripped. Nil for
	// unbacked validated names.
	sig reflect.Type
	// Set when sig carries a trailing error result.
	hasErr bool
}

// A plan is the memoized, type-level analysis of one contract. It
// holds everything that can be decided without an instance in hand;
// nil func fields and wrapper installation are per-bind concerns.
type plan struct {
	typ  reflect.Type
	name string

	required  []entry
	validated []entry

	// Advisory findings, replayed on every bind so that cached and
	// uncached binds are indistinguishable.
	diags contract.Diagnostics
}

// newPlan verifies everything about the declaration that is visible in
// the type system. Checks run in declaration order, required names
// first, and the first broken rule aborts the analysis.
func newPlan(t reflect.Type, c contract.Contract) (*plan, error) {
	p := &plan{typ: t, name: t.String()}

	seen := make(map[string]bool, len(c.Required))
	for _, name := range c.Required {
		if seen[name] {
			continue
		}
		seen[name] = true

		m := resolveMember(t, name)
		switch m.kind {
		case memberMissing:
			return nil, contract.NewError(contract.KindMissingMethod, p.name, name,
				"%s: %s must be defined", p.name, name)
		case memberOtherField:
			return nil, contract.NewError(contract.KindNotCallable, p.name, name,
				"%s: %s is not a func", p.name, name)
		}
		p.required = append(p.required, entry{name: name, act: m})
	}

	seen = make(map[string]bool, len(c.Validated))
	for _, name := range c.Validated {
		if seen[name] {
			continue
		}
		seen[name] = true
		ent := entry{name: name, act: resolveMember(t, name)}

		switch ent.act.kind {
		case memberMissing:
			// Declared ahead of its implementation. Legal, advisory.
			p.diags = append(p.diags, contract.Diagnostic{
				Message: fmt.Sprintf("%s is declared as validated but not implemented", name),
				Method:  name,
				Type:    p.name,
			})
			p.validated = append(p.validated, ent)
			continue
		case memberOtherField:
			return nil, contract.NewError(contract.KindNotCallable, p.name, name,
				"%s: %s is not a func", p.name, name)
		}

		vname := contract.ValidatorName(name)
		ent.val = resolveMember(t, vname)
		switch ent.val.kind {
		case memberMissing:
			return nil, contract.NewError(contract.KindMissingValidator, p.name, vname,
				"%s: %s must be defined for the %s method", p.name, vname, name)
		case memberOtherField:
			return nil, contract.NewError(contract.KindNotCallable, p.name, vname,
				"%s: %s is not a func", p.name, vname)
		}

		asig, vsig := p.sigOf(ent.act), p.sigOf(ent.val)
		if !sameParams(asig, vsig) {
			return nil, contract.NewError(contract.KindSignatureMismatch, p.name, vname,
				"%s: %s must have the same argument signature as %s: %s vs %s",
				p.name, vname, name, vsig, asig)
		}
		if vsig.NumOut() != 1 || vsig.Out(0) != errType {
			return nil, contract.NewError(contract.KindValidatorResult, p.name, vname,
				"%s: %s must return error and nothing else", p.name, vname)
		}

		ent.sig = asig
		ent.hasErr = asig.NumOut() > 0 && asig.Out(asig.NumOut()-1) == errType
		p.validated = append(p.validated, ent)
	}

	return p, nil
}

// sigOf returns the caller-visible func type of a member, stripping
// method receivers.
func (p *plan) sigOf(m member) reflect.Type {
	switch m.kind {
	case memberMethod:
		mt := p.typ.Method(m.method).Type
		in := make([]reflect.Type, 0, mt.NumIn()-1)
		for i := 1; i < mt.NumIn(); i++ {
			in = append(in, mt.In(i))
		}
		out := make([]reflect.Type, 0, mt.NumOut())
		for i := 0; i < mt.NumOut(); i++ {
			out = append(out, mt.Out(i))
		}
		return reflect.FuncOf(in, out, mt.IsVariadic())

	case memberFuncField:
		base := p.typ
		if base.Kind() == reflect.Pointer {
			base = base.Elem()
		}
		return base.FieldByIndex(m.index).Type
	}
	panic(errors.Errorf("unresolvable member kind %d", m.kind))
}

// sameParams reports whether two signatures accept identical
// parameters. Reflection does not expose parameter names, so the
// comparison is arity, types, order, and variadicity.
func sameParams(a, b reflect.Type) bool {
	if a.NumIn() != b.NumIn() || a.IsVariadic() != b.IsVariadic() {
		return false
	}
	for i := 0; i < a.NumIn(); i++ {
		if a.In(i) != b.In(i) {
			return false
		}
	}
	return true
}

// bind applies the plan to one instance. Instance-level rules run
// first; wrappers are installed only once all of them hold.
func (p *plan) bind(rv reflect.Value) (*Bound, error) {
	b := &Bound{
		actions:  make(map[string]*boundAction, len(p.validated)),
		diags:    append(contract.Diagnostics(nil), p.diags...),
		typeName: p.name,
		unbacked: make(map[string]bool),
		value:    rv,
	}

	// A func field may be nil on one instance and set on another, so
	// callability of fields is re-established on every bind.
	for i := range p.required {
		if _, err := p.memberValue(rv, p.required[i].act, p.required[i].name); err != nil {
			return nil, err
		}
	}

	install := make([]*boundAction, 0, len(p.validated))
	for i := range p.validated {
		ent := &p.validated[i]
		if ent.act.kind == memberMissing {
			b.unbacked[ent.name] = true
			continue
		}
		fn, err := p.memberValue(rv, ent.act, ent.name)
		if err != nil {
			return nil, err
		}
		validator, err := p.memberValue(rv, ent.val, contract.ValidatorName(ent.name))
		if err != nil {
			return nil, err
		}
		act := &boundAction{ent: ent, fn: fn, validator: validator}
		b.actions[ent.name] = act
		install = append(install, act)
	}

	for _, act := range install {
		p.installField(rv, act, b)
	}
	return b, nil
}

// memberValue resolves a member to its callable value on an instance.
// Func fields are snapshotted so that a later in-place wrapper cannot
// recurse into itself.
func (p *plan) memberValue(rv reflect.Value, m member, name string) (reflect.Value, error) {
	switch m.kind {
	case memberMethod:
		return rv.Method(m.method), nil

	case memberFuncField:
		fv, err := fieldOf(rv, m.index)
		if err != nil {
			return reflect.Value{}, contract.NewError(contract.KindNotCallable, p.name, name,
				"%s: %s is unreachable: %v", p.name, name, err)
		}
		if fv.IsNil() {
			return reflect.Value{}, contract.NewError(contract.KindNotCallable, p.name, name,
				"%s: %s is a nil func", p.name, name)
		}
		return reflect.ValueOf(fv.Interface()), nil
	}
	panic(errors.Errorf("unresolvable member kind %d", m.kind))
}

// fieldOf walks a field index path from the bound value.
func fieldOf(rv reflect.Value, index []int) (reflect.Value, error) {
	base := rv
	if base.Kind() == reflect.Pointer {
		base = base.Elem()
	}
	return base.FieldByIndexErr(index)
}

// installField replaces a settable func field with a wrapper that runs
// the validator first. Methods cannot be replaced in place; their
// wrapped form is Bound.Call and Bound.Func.
func (p *plan) installField(rv reflect.Value, act *boundAction, b *Bound) {
	ent := act.ent
	if ent.act.kind != memberFuncField {
		return
	}
	if !ent.hasErr {
		b.diags = append(b.diags, contract.Diagnostic{
			Message: fmt.Sprintf("%s has no trailing error result and cannot be wrapped in place; use Call", ent.name),
			Method:  ent.name,
			Type:    p.name,
		})
		return
	}
	fv, err := fieldOf(rv, ent.act.index)
	if err != nil || !fv.CanSet() {
		b.diags = append(b.diags, contract.Diagnostic{
			Message: fmt.Sprintf("cannot wrap %s in place; bind a pointer to %s", ent.name, p.typ),
			Method:  ent.name,
			Type:    p.name,
		})
		return
	}
	fv.Set(reflect.MakeFunc(ent.sig, func(args []reflect.Value) []reflect.Value {
		if err := checkWith(act.validator, args, true); err != nil {
			return errorResults(ent.sig, err)
		}
		b.log.Debug().Str("type", b.typeName).Str("method", ent.name).Msg("validated")
		return invoke(act.fn, args, true)
	}))
	act.inPlace = true
}
