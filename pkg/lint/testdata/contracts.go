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

// Package testdata holds one declaring type per checker outcome.
package testdata

import (
	"github.com/alex-flnx/validating-base/pkg/contract"
	"github.com/pkg/errors"
)

// Clean satisfies everything it declares.
type Clean struct {
	total int
}

func (c *Clean) Contract() contract.Contract {
	return contract.Contract{
		Required:  []string{"Reset"},
		Validated: []string{"Sum"},
	}
}

func (c *Clean) Reset() { c.total = 0 }

func (c *Clean) Sum(values []int) int {
	for _, v := range values {
		c.total += v
	}
	return c.total
}

func (c *Clean) ValidateSum(values []int) error {
	if len(values) == 0 {
		return errors.New("nothing to sum")
	}
	return nil
}

// Fieldful keeps its action in a func field. The type system vouches
// for the shape; whether the field is nil is the runtime's problem.
type Fieldful struct {
	Frob func(n int) (int, error)
}

func (f *Fieldful) Contract() contract.Contract {
	return contract.Contract{Validated: []string{"Frob"}}
}

func (f *Fieldful) ValidateFrob(n int) error {
	if n < 0 {
		return errors.New("n must not be negative")
	}
	return nil
}

// Roadmap declares an action it has not implemented yet.
type Roadmap struct{}

func (r Roadmap) Contract() contract.Contract {
	return contract.Contract{Validated: []string{"Fly"}}
}

// Hollow never defines its required method.
type Hollow struct{}

func (h Hollow) Contract() contract.Contract {
	return contract.Contract{Required: []string{"Launch"}}
}

// Grounded has the required name, but not as something callable.
type Grounded struct {
	Launch int
}

func (g Grounded) Contract() contract.Contract {
	return contract.Contract{Required: []string{"Launch"}}
}

// Unchecked has an action with no validator anywhere in sight.
type Unchecked struct{}

func (u Unchecked) Contract() contract.Contract {
	return contract.Contract{Validated: []string{"Run"}}
}

func (u Unchecked) Run(n int) {}

// Mute has a validator name bound to a plain value.
type Mute struct {
	ValidateRun int
}

func (m Mute) Contract() contract.Contract {
	return contract.Contract{Validated: []string{"Run"}}
}

func (m Mute) Run(n int) {}

// Skewed pairs its action with a validator of a different shape.
type Skewed struct{}

func (s Skewed) Contract() contract.Contract {
	return contract.Contract{Validated: []string{"Run"}}
}

func (s Skewed) Run(n int) {}

func (s Skewed) ValidateRun(label string) error { return nil }

// Chatty has a validator that insists on returning a value.
type Chatty struct{}

func (c Chatty) Contract() contract.Contract {
	return contract.Contract{Validated: []string{"Run"}}
}

func (c Chatty) Run(n int) {}

func (c Chatty) ValidateRun(n int) (int, error) { return n, nil }

// Computed builds its declaration at runtime, which the checker
// cannot follow.
type Computed struct{}

func (c Computed) Contract() contract.Contract {
	names := []string{"Run"}
	return contract.Contract{Required: names}
}

func (c Computed) Run() {}
