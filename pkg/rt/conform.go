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

// conformArgs checks args against the parameters of sig and returns
// the values to invoke with. A variadic signature accepts zero or more
// trailing arguments, each checked against the element type.
func conformArgs(typeName, method string, sig reflect.Type, args []any) ([]reflect.Value, error) {
	fixed := sig.NumIn()
	if sig.IsVariadic() {
		fixed--
		if len(args) < fixed {
			return nil, contract.NewError(contract.KindBadArgument, typeName, method,
				"%s: %s takes at least %d arguments, got %d", typeName, method, fixed, len(args))
		}
	} else if len(args) != fixed {
		return nil, contract.NewError(contract.KindBadArgument, typeName, method,
			"%s: %s takes %d arguments, got %d", typeName, method, fixed, len(args))
	}

	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		var want reflect.Type
		if i < fixed {
			want = sig.In(i)
		} else {
			// Beyond the fixed parameters the signature is variadic.
			want = sig.In(sig.NumIn() - 1).Elem()
		}
		v, err := conformValue(arg, want, "")
		if err != nil {
			return nil, contract.NewError(contract.KindBadArgument, typeName, method,
				"%s: argument %d of %s: %v", typeName, i+1, method, err)
		}
		in[i] = v
	}
	return in, nil
}

// conformValue returns arg as a value assignable to want, descending
// into slices, arrays, and maps to check element types. No numeric or
// string conversions are applied; an int is not an int64 here.
func conformValue(arg any, want reflect.Type, path string) (reflect.Value, error) {
	if arg == nil {
		switch want.Kind() {
		case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map,
			reflect.Pointer, reflect.Slice:
			return reflect.Zero(want), nil
		}
		return reflect.Value{}, errors.Errorf("%scannot use nil as %s", path, want)
	}

	av := reflect.ValueOf(arg)
	if av.Type().AssignableTo(want) {
		return av, nil
	}

	switch want.Kind() {
	case reflect.Slice:
		if k := av.Kind(); k == reflect.Slice || k == reflect.Array {
			out := reflect.MakeSlice(want, av.Len(), av.Len())
			for i := 0; i < av.Len(); i++ {
				ev, err := conformValue(av.Index(i).Interface(), want.Elem(),
					fmt.Sprintf("%sindex %d: ", path, i))
				if err != nil {
					return reflect.Value{}, err
				}
				out.Index(i).Set(ev)
			}
			return out, nil
		}

	case reflect.Map:
		if av.Kind() == reflect.Map {
			out := reflect.MakeMapWithSize(want, av.Len())
			iter := av.MapRange()
			for iter.Next() {
				kv, err := conformValue(iter.Key().Interface(), want.Key(),
					fmt.Sprintf("%skey %v: ", path, iter.Key()))
				if err != nil {
					return reflect.Value{}, err
				}
				vv, err := conformValue(iter.Value().Interface(), want.Elem(),
					fmt.Sprintf("%skey %v: ", path, iter.Key()))
				if err != nil {
					return reflect.Value{}, err
				}
				out.SetMapIndex(kv, vv)
			}
			return out, nil
		}
	}

	return reflect.Value{}, errors.Errorf("%scannot use %v (%s) as %s",
		path, arg, av.Type(), want)
}
