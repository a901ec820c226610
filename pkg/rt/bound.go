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
	"reflect"
	"sort"

	"github.com/alex-flnx/validating-base/pkg/contract"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// A Bound is an instance whose contract has been verified. It exposes
// the wrapped form of the validated actions. Methods on the instance
// itself remain untouched; wrapped func fields also validate when
// called directly.
type Bound struct {
	actions  map[string]*boundAction
	diags    contract.Diagnostics
	log      zerolog.Logger
	typeName string
	unbacked map[string]bool
	value    reflect.Value
}

// A boundAction joins an action to its validator on one instance.
type boundAction struct {
	ent       *entry
	fn        reflect.Value
	validator reflect.Value
	inPlace   bool
}

// Instance returns the bound value.
func (b *Bound) Instance() any { return b.value.Interface() }

// Actions returns the sorted names of the validated actions that are
// backed by an implementation.
func (b *Bound) Actions() []string {
	ret := make([]string, 0, len(b.actions))
	for name := range b.actions {
		ret = append(ret, name)
	}
	sort.Strings(ret)
	return ret
}

// Diagnostics returns the advisory findings from this bind.
func (b *Bound) Diagnostics() contract.Diagnostics {
	return append(contract.Diagnostics(nil), b.diags...)
}

// Call invokes a validated action by name. Arguments are checked
// against the action's parameter types, the validator runs with the
// same arguments, and only then does the action itself. A validator
// error propagates unchanged and the action is never entered. A
// trailing error result from the action is split off into the error
// return.
func (b *Bound) Call(name string, args ...any) ([]any, error) {
	act := b.actions[name]
	if act == nil {
		if b.unbacked[name] {
			return nil, errors.Errorf("%s: %s is declared but not implemented", b.typeName, name)
		}
		return nil, errors.Errorf("%s: no validated action named %s", b.typeName, name)
	}

	in, err := conformArgs(b.typeName, name, act.ent.sig, args)
	if err != nil {
		return nil, err
	}
	if err := checkWith(act.validator, in, false); err != nil {
		return nil, err
	}
	b.log.Debug().Str("type", b.typeName).Str("method", name).Msg("validated")
	out := invoke(act.fn, in, false)

	if act.ent.hasErr {
		last := out[len(out)-1]
		out = out[:len(out)-1]
		if !last.IsNil() {
			err = last.Interface().(error)
		}
	}
	ret := make([]any, len(out))
	for i, v := range out {
		ret[i] = v.Interface()
	}
	return ret, err
}

// Func points target, which must be a pointer to a func variable of
// the action's exact signature, at a wrapper that validates before
// invoking the action. The signature must carry a trailing error
// result to give the wrapper a failure channel; argument types are
// discharged by the compiler on this path.
func (b *Bound) Func(name string, target any) error {
	act := b.actions[name]
	if act == nil {
		if b.unbacked[name] {
			return errors.Errorf("%s: %s is declared but not implemented", b.typeName, name)
		}
		return errors.Errorf("%s: no validated action named %s", b.typeName, name)
	}

	tv := reflect.ValueOf(target)
	if !tv.IsValid() || tv.Kind() != reflect.Pointer || tv.IsNil() ||
		tv.Elem().Kind() != reflect.Func {
		return errors.Errorf("%s: Func target must be a non-nil pointer to a func variable", b.typeName)
	}
	ft := tv.Elem().Type()
	if ft != act.ent.sig {
		return errors.Errorf("%s: %s has signature %s, target is %s",
			b.typeName, name, act.ent.sig, ft)
	}
	if !act.ent.hasErr {
		return errors.Errorf("%s: %s has no trailing error result; use Call", b.typeName, name)
	}

	tv.Elem().Set(reflect.MakeFunc(ft, func(args []reflect.Value) []reflect.Value {
		if err := checkWith(act.validator, args, true); err != nil {
			return errorResults(ft, err)
		}
		b.log.Debug().Str("type", b.typeName).Str("method", name).Msg("validated")
		return invoke(act.fn, args, true)
	}))
	return nil
}
