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

// Package util defines path helpers shared by the analysis code.
package util

import (
	"go/types"
	"strings"
)

// Base is the import path prefix of this module's packages. The static
// checker needs it to recognize uses of specific types in user-written
// code.
const Base = "github.com/alex-flnx/validating-base/pkg/"

// InPackage checks to see if the given object is declared in a package
// with the given path or is in a vendored version of the same.
func InPackage(obj types.Object, path string) bool {
	pkg := obj.Pkg()
	if pkg == nil {
		return false
	}
	if pkg.Path() == path {
		return true
	}
	if strings.HasSuffix(pkg.Path(), "/vendor/"+path) {
		return true
	}
	return false
}
