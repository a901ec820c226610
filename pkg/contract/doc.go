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

// Package contract defines the declarations and findings shared by the
// runtime and static enforcers.
//
// A type takes on obligations by implementing Declarer:
//
//	func (c *Calculator) Contract() contract.Contract {
//		return contract.Contract{
//			Required:  []string{"Reset"},
//			Validated: []string{"Sum"},
//		}
//	}
//
// Required names must resolve to something callable: an exported
// method, or an exported func-typed field holding a non-nil value.
// Nothing else is demanded of them.
//
// Validated names pair an action with a validator. The validator's
// name is derived by prepending "Validate", so the action Sum pairs
// with ValidateSum. The validator must accept exactly the same
// arguments as its action and return only an error. Once verified,
// every invocation that goes through the enforcer runs the validator
// first and refuses to run the action when the validator objects:
//
//	func (c *Calculator) Sum(values []int) int { ... }
//	func (c *Calculator) ValidateSum(values []int) error {
//		if len(values) == 0 {
//			return errors.New("no values to sum")
//		}
//		return nil
//	}
//
// Declaring a validated name without implementing it is legal and
// produces an advisory Diagnostic rather than an error, so a contract
// can be written before all of its actions exist.
//
// Broken rules surface as an Error whose Kind tells the caller which
// rule was violated and when it could have been detected. The same
// taxonomy is shared by the reflection-based runtime in pkg/rt and the
// source-level checker in pkg/lint, so a violation reads the same no
// matter which of the two found it.
package contract
