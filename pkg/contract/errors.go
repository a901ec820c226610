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

	"github.com/pkg/errors"
)

//go:generate stringer -type Kind -trimprefix Kind

// The Kind of an Error classifies which rule was broken.
type Kind int

// The various kinds describe when a rule can be detected and what it
// means. Every non-zero kind is fatal: a bind or check that produces
// one fails. Advisory findings travel as Diagnostics instead.
//  | Kind                  | Detected | Meaning                                   |
//  --------------------------------------------------------------------------------
//  | KindMissingMethod     | bind     | a required name resolves to nothing       |
//  | KindNotCallable       | bind     | a name resolves to something un-invocable |
//  | KindMissingValidator  | bind     | an action has no paired validator         |
//  | KindSignatureMismatch | bind     | validator parameters differ from action's |
//  | KindValidatorResult   | bind     | validator returns more than an error      |
//  | KindBadArgument       | call     | an argument does not fit the parameter    |
const (
	// KindNone classifies errors that did not come from a contract
	// rule, such as a validator's own veto.
	KindNone Kind = iota
	// A required or validated name that resolves to neither a method
	// nor a field.
	KindMissingMethod
	// A name resolved to something that cannot be invoked, such as a
	// field of non-func type or a nil func field.
	KindNotCallable
	// A validated action without its paired validator.
	KindMissingValidator
	// A validator whose parameters differ from its action's.
	KindSignatureMismatch
	// A validator that declares results other than a single error.
	KindValidatorResult
	// A call-time argument that does not conform to the declared
	// parameter type.
	KindBadArgument
)

// MarshalText allows kinds to be encoded by name rather than by value.
func (i Kind) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

// An Error describes a broken contract rule.
type Error struct {
	// Kind classifies the broken rule.
	Kind Kind
	// Message is the complete human-readable description.
	Message string
	// Method names the action or validator at fault.
	Method string
	// Type names the declaring type.
	Type string
}

var _ error = &Error{}

// NewError constructs an Error in a printf style.
func NewError(kind Kind, typ, method, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Method:  method,
		Type:    typ,
	}
}

// Error implements the error interface.
func (e *Error) Error() string { return e.Message }

// KindOf classifies an error, unwrapping as needed. It returns
// KindNone for errors that did not originate from a contract rule.
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return KindNone
}
