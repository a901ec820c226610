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

// ValidatorPrefix is prepended to an action name to derive the name of
// its validator. The action Frobnicate pairs with ValidateFrobnicate.
const ValidatorPrefix = "Validate"

// ValidatorName returns the name of the validator paired with the given
// action name.
func ValidatorName(action string) string {
	return ValidatorPrefix + action
}

// A Contract declares the obligations that a type takes on. The zero
// value declares nothing.
type Contract struct {
	// Required names must resolve to something callable on the
	// declaring type. Nothing further is demanded of them.
	Required []string `json:"required,omitempty" yaml:"required,omitempty"`
	// Validated names must resolve to something callable and be paired
	// with a validator. The validator accepts the same arguments as
	// the action and returns only an error.
	Validated []string `json:"validated,omitempty" yaml:"validated,omitempty"`
}

// A Declarer publishes its own Contract. The runtime resolves
// declarations through this interface; the static checker recognizes
// the method by its signature.
type Declarer interface {
	Contract() Contract
}
