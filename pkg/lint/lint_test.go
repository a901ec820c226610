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

package lint

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/alex-flnx/validating-base/pkg/contract"
	"github.com/stretchr/testify/assert"
)

// A finding is the per-producer shape we expect out of the Checker.
type finding struct {
	kind    contract.Kind
	warning bool
	message string
}

var expected = map[string]finding{
	"testdata.Chatty":    {contract.KindValidatorResult, false, "ValidateRun must return error and nothing else"},
	"testdata.Computed":  {contract.KindNone, true, "not statically analyzable"},
	"testdata.Grounded":  {contract.KindNotCallable, false, "Launch is not a func"},
	"testdata.Hollow":    {contract.KindMissingMethod, false, "Launch must be defined"},
	"testdata.Mute":      {contract.KindNotCallable, false, "ValidateRun is not a func"},
	"testdata.Roadmap":   {contract.KindNone, true, "Fly is declared as validated but not implemented"},
	"testdata.Skewed":    {contract.KindSignatureMismatch, false, "ValidateRun must have the same argument signature as Run"},
	"testdata.Unchecked": {contract.KindMissingValidator, false, "ValidateRun must be defined for the Run method"},
}

func TestCheckerExecute(t *testing.T) {
	a := assert.New(t)

	c := &Checker{
		Dir:      "testdata",
		Packages: []string{"."},
	}
	results, err := c.Execute(context.Background())
	if !a.NoError(err) {
		return
	}

	a.Truef(sort.IsSorted(results), "unsorted results:\n%s", results)
	a.Lenf(results, len(expected), "results:\n%s", results)
	a.True(results.HasErrors())

	for _, res := range results {
		exp, ok := expected[res.Producer]
		if !a.Truef(ok, "unexpected result %s", res) {
			continue
		}
		a.Equalf(exp.kind, res.Kind, "result %s", res)
		a.Equalf(exp.warning, res.Warning, "result %s", res)
		a.Contains(res.Message, exp.message)
		a.NotZero(res.Pos.Line)
		a.NotZero(res.Contract.Line)
		a.True(strings.HasPrefix(res.StringRelative(c.Dir), "contracts.go:"), res.StringRelative(c.Dir))
	}
}

func TestCheckerTests(t *testing.T) {
	a := assert.New(t)

	c := &Checker{
		Dir:      "testdata",
		Packages: []string{"."},
		Tests:    true,
	}
	results, err := c.Execute(context.Background())
	if !a.NoError(err) {
		return
	}

	// The test variant carries everything the base package does, plus
	// the declarations in its _test.go files.
	a.Lenf(results, len(expected)+1, "results:\n%s", results)
	var draft *Result
	for _, res := range results {
		if res.Producer == "testdata.Draft" {
			draft = res
		}
	}
	if a.NotNil(draft) {
		a.Equal(contract.KindMissingMethod, draft.Kind)
		a.Contains(draft.Message, "Publish must be defined")
	}
}

func TestCheckerDeclarations(t *testing.T) {
	a := assert.New(t)

	c := &Checker{
		Dir:      "testdata",
		Packages: []string{"."},
	}
	decls, err := c.Declarations(context.Background())
	if !a.NoError(err) {
		return
	}

	a.Len(decls, len(expected)+2)
	a.True(sort.IsSorted(decls))

	byName := make(map[string]*Declaration, len(decls))
	for _, decl := range decls {
		byName[decl.Name] = decl
	}

	if clean := byName["testdata.Clean"]; a.NotNil(clean) {
		a.True(clean.Static)
		a.Equal([]string{"Reset"}, clean.Contract.Required)
		a.Equal([]string{"Sum"}, clean.Contract.Validated)
		a.Contains(clean.String(), "required=[Reset]")
	}
	if fieldful := byName["testdata.Fieldful"]; a.NotNil(fieldful) {
		a.True(fieldful.Static)
		a.Empty(fieldful.Contract.Required)
		a.Equal([]string{"Frob"}, fieldful.Contract.Validated)
	}
	if computed := byName["testdata.Computed"]; a.NotNil(computed) {
		a.False(computed.Static)
		a.Contains(computed.String(), "not statically analyzable")
	}
}

func TestCheckerNoPackages(t *testing.T) {
	a := assert.New(t)

	c := &Checker{Dir: "testdata"}
	_, err := c.Execute(context.Background())
	a.ErrorContains(err, "no packages specified")
}

func TestCheckerLoadError(t *testing.T) {
	a := assert.New(t)

	dir := t.TempDir()
	writeFile(t, dir, "go.mod", "module example.com/broken\n\ngo 1.24\n")
	writeFile(t, dir, "broken.go", "package broken\n\nfunc Oops() {\n")

	c := &Checker{
		Dir:      dir,
		Packages: []string{"."},
	}
	_, err := c.Execute(context.Background())
	a.ErrorContains(err, "could not load source due to error(s)")
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}
