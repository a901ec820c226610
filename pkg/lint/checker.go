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
	"go/ast"
	"go/token"
	"go/types"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/alex-flnx/validating-base/pkg/contract"
	"github.com/alex-flnx/validating-base/pkg/util"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/go/packages"
)

// loadMode is everything the Checker needs: syntax for reading the
// declaration literals, types for checking them.
const loadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedImports |
	packages.NeedDeps |
	packages.NeedTypes |
	packages.NeedSyntax |
	packages.NeedTypesInfo

// errType is the universal error type.
var errType = types.Universe.Lookup("error").Type()

// A Checker verifies contract declarations in Go source. Set the
// exported fields, then call Execute.
type Checker struct {
	// Allows the working directory to be overridden.
	Dir string
	// Logger receives diagnostic messages. The zero value discards
	// them.
	Logger zerolog.Logger
	// The package patterns to load.
	Packages []string
	// If true, the test sources for the packages are checked instead
	// of the base variants.
	Tests bool

	mu struct {
		sync.Mutex
		results Results
	}
}

// Execute loads the configured packages, collects every contract
// declaration, and verifies each one. The returned Results are sorted
// by position.
func (c *Checker) Execute(ctx context.Context) (Results, error) {
	decls, err := c.Declarations(ctx)
	if err != nil {
		return nil, err
	}

	if err := c.verifyAll(ctx, decls); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	sort.Sort(c.mu.results)
	return c.mu.results, nil
}

// Declarations loads the configured packages and returns the contract
// declarations found in them, sorted by position. Nothing is verified.
func (c *Checker) Declarations(ctx context.Context) (Declarations, error) {
	if len(c.Packages) == 0 {
		return nil, errors.New("no packages specified")
	}
	absDir, err := filepath.Abs(c.Dir)
	if err != nil {
		return nil, err
	}
	c.Dir = absDir

	cfg := &packages.Config{
		Context: ctx,
		Dir:     c.Dir,
		Fset:    token.NewFileSet(),
		Mode:    loadMode,
		Tests:   c.Tests,
	}
	pkgs, err := packages.Load(cfg, c.Packages...)
	if err != nil {
		return nil, err
	}

	work := make([]*packages.Package, 0, len(pkgs))
	for _, pkg := range pkgs {
		if pkg.Errors != nil {
			return nil, errors.Wrap(pkg.Errors[0], "could not load source due to error(s)")
		}
		// When tests are requested, the loader returns each package
		// several times over. We want the variant that includes the
		// test sources; see the discussion on packages.Config.
		if c.Tests && !strings.HasSuffix(pkg.ID, ".test]") {
			continue
		}
		work = append(work, pkg)
	}

	mu := struct {
		sync.Mutex
		decls Declarations
	}{}

	g, ctx := errgroup.WithContext(ctx)
	workCh := make(chan *packages.Package, 1)

	for i := 0; i < runtime.NumCPU(); i++ {
		g.Go(func() error {
			for {
				select {
				case pkg, open := <-workCh:
					if !open {
						return nil
					}
					found := c.discover(pkg)
					if len(found) > 0 {
						mu.Lock()
						mu.decls = append(mu.decls, found...)
						mu.Unlock()
					}
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		})
	}

sendLoop:
	for _, pkg := range work {
		select {
		case workCh <- pkg:
		case <-ctx.Done():
			break sendLoop
		}
	}
	close(workCh)

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Sort(mu.decls)
	return mu.decls, nil
}

// verifyAll fans the declarations out over a worker pool.
func (c *Checker) verifyAll(ctx context.Context, decls Declarations) error {
	g, ctx := errgroup.WithContext(ctx)
	workCh := make(chan *Declaration, 1)

	for i := 0; i < runtime.NumCPU(); i++ {
		g.Go(func() error {
			for {
				select {
				case decl, open := <-workCh:
					if !open {
						return nil
					}
					c.Logger.Debug().Str("type", decl.Name).Msg("verifying")
					c.verify(decl)
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		})
	}

sendLoop:
	for _, decl := range decls {
		select {
		case workCh <- decl:
		case <-ctx.Done():
			break sendLoop
		}
	}
	close(workCh)
	return g.Wait()
}

// discover returns the types in pkg whose method set includes a
// Contract method of the right shape.
func (c *Checker) discover(pkg *packages.Package) Declarations {
	var ret Declarations
	scope := pkg.Types.Scope()
	for _, name := range scope.Names() {
		tn, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || tn.IsAlias() {
			continue
		}
		named, ok := tn.Type().(*types.Named)
		if !ok || types.IsInterface(named) {
			continue
		}
		fn := contractMethod(pkg, named)
		if fn == nil {
			continue
		}
		decl := &Declaration{
			Name:        pkg.Types.Name() + "." + name,
			Pos:         pkg.Fset.Position(tn.Pos()),
			contractPos: pkg.Fset.Position(fn.Pos()),
			fn:          fn,
			named:       named,
			pkg:         pkg,
		}
		c.extract(pkg, decl)
		c.Logger.Debug().
			Str("type", decl.Name).
			Bool("static", decl.Static).
			Msg("found declaration")
		ret = append(ret, decl)
	}
	return ret
}

// contractMethod returns the Contract method of named, or nil when the
// type does not declare one returning a contract.Contract.
func contractMethod(pkg *packages.Package, named *types.Named) *types.Func {
	obj, _, _ := types.LookupFieldOrMethod(types.NewPointer(named), true, pkg.Types, "Contract")
	fn, ok := obj.(*types.Func)
	if !ok {
		return nil
	}
	sig := fn.Type().(*types.Signature)
	if sig.Params().Len() != 0 || sig.Results().Len() != 1 {
		return nil
	}
	res, ok := types.Unalias(sig.Results().At(0).Type()).(*types.Named)
	if !ok || res.Obj().Name() != "Contract" {
		return nil
	}
	if !util.InPackage(res.Obj(), util.Base+"contract") {
		return nil
	}
	return fn
}

// extract reads the declaration out of the Contract method body. Only
// a single return of a keyed composite literal built from string
// literals counts as static; anything else leaves the declaration
// dynamic for the runtime to resolve.
func (c *Checker) extract(pkg *packages.Package, decl *Declaration) {
	fd := methodDecl(pkg, decl.fn)
	if fd == nil || fd.Body == nil {
		return
	}

	var rets []*ast.ReturnStmt
	ast.Inspect(fd.Body, func(node ast.Node) bool {
		switch t := node.(type) {
		case *ast.FuncLit:
			// Closures return for themselves.
			return false
		case *ast.ReturnStmt:
			rets = append(rets, t)
		}
		return true
	})
	if len(rets) != 1 || len(rets[0].Results) != 1 {
		return
	}
	lit, ok := rets[0].Results[0].(*ast.CompositeLit)
	if !ok {
		return
	}

	var con contract.Contract
	for _, elt := range lit.Elts {
		kv, ok := elt.(*ast.KeyValueExpr)
		if !ok {
			return
		}
		key, ok := kv.Key.(*ast.Ident)
		if !ok {
			return
		}
		names, ok := stringList(kv.Value)
		if !ok {
			return
		}
		switch key.Name {
		case "Required":
			con.Required = names
		case "Validated":
			con.Validated = names
		default:
			return
		}
	}
	decl.Contract = con
	decl.Static = true
}

// methodDecl finds the FuncDecl behind fn.
func methodDecl(pkg *packages.Package, fn *types.Func) *ast.FuncDecl {
	for _, file := range pkg.Syntax {
		for _, d := range file.Decls {
			if fd, ok := d.(*ast.FuncDecl); ok && pkg.TypesInfo.ObjectOf(fd.Name) == fn {
				return fd
			}
		}
	}
	return nil
}

// stringList unpacks a []string{...} literal.
func stringList(expr ast.Expr) ([]string, bool) {
	lit, ok := expr.(*ast.CompositeLit)
	if !ok {
		return nil, false
	}
	ret := make([]string, 0, len(lit.Elts))
	for _, elt := range lit.Elts {
		basic, ok := elt.(*ast.BasicLit)
		if !ok || basic.Kind != token.STRING {
			return nil, false
		}
		name, err := strconv.Unquote(basic.Value)
		if err != nil {
			return nil, false
		}
		ret = append(ret, name)
	}
	return ret, true
}

// verify applies the contract rules to a single declaration. Unlike
// the runtime, which stops a bind at the first broken rule, the
// Checker reports every finding so one run shows the whole cleanup.
func (c *Checker) verify(decl *Declaration) {
	if !decl.Static {
		c.report(&Result{
			Contract: decl.contractPos,
			Message:  "contract is not statically analyzable; only the runtime can verify it",
			Pos:      decl.Pos,
			Producer: decl.Name,
			Warning:  true,
		})
		return
	}

	seen := make(map[string]bool)
	for _, name := range decl.Contract.Required {
		if seen[name] {
			continue
		}
		seen[name] = true
		obj := decl.lookup(name)
		switch {
		case obj == nil:
			c.report(decl.result(contract.KindMissingMethod, nil,
				"%s must be defined", name))
		case signatureOf(obj) == nil:
			c.report(decl.result(contract.KindNotCallable, obj,
				"%s is not a func", name))
		}
	}

	seen = make(map[string]bool)
	for _, name := range decl.Contract.Validated {
		if seen[name] {
			continue
		}
		seen[name] = true

		obj := decl.lookup(name)
		if obj == nil {
			// Declared ahead of its implementation. Legal, advisory,
			// and the validator is not demanded until the action lands.
			res := decl.result(contract.KindNone, nil, "%s is declared as validated but not implemented", name)
			res.Warning = true
			c.report(res)
			continue
		}
		actSig := signatureOf(obj)
		if actSig == nil {
			c.report(decl.result(contract.KindNotCallable, obj,
				"%s is not a func", name))
			continue
		}

		vName := contract.ValidatorName(name)
		vObj := decl.lookup(vName)
		if vObj == nil {
			c.report(decl.result(contract.KindMissingValidator, nil,
				"%s must be defined for the %s method", vName, name))
			continue
		}
		vSig := signatureOf(vObj)
		if vSig == nil {
			c.report(decl.result(contract.KindNotCallable, vObj,
				"%s is not a func", vName))
			continue
		}
		if !sameParams(actSig, vSig) {
			c.report(decl.result(contract.KindSignatureMismatch, vObj,
				"%s must have the same argument signature as %s: %s vs %s",
				vName, name, vSig.Params(), actSig.Params()))
			continue
		}
		if !returnsOnlyError(vSig) {
			c.report(decl.result(contract.KindValidatorResult, vObj,
				"%s must return error and nothing else", vName))
		}
	}
}

// report appends a Result.
func (c *Checker) report(r *Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mu.results = append(c.mu.results, r)
}

// signatureOf returns the callable signature behind an object: the
// type of a method, or the underlying func type of a field. It is nil
// when the object cannot be invoked.
func signatureOf(obj types.Object) *types.Signature {
	switch t := obj.(type) {
	case *types.Func:
		return t.Type().(*types.Signature)
	case *types.Var:
		if sig, ok := t.Type().Underlying().(*types.Signature); ok {
			return sig
		}
	}
	return nil
}

// sameParams reports whether two signatures accept identical
// parameters: arity, types, order, and variadicity. Receivers and
// parameter names are not compared.
func sameParams(a, b *types.Signature) bool {
	if a.Variadic() != b.Variadic() {
		return false
	}
	aP, bP := a.Params(), b.Params()
	if aP.Len() != bP.Len() {
		return false
	}
	for i := 0; i < aP.Len(); i++ {
		if !types.Identical(aP.At(i).Type(), bP.At(i).Type()) {
			return false
		}
	}
	return true
}

// returnsOnlyError reports whether sig declares exactly one result of
// type error.
func returnsOnlyError(sig *types.Signature) bool {
	res := sig.Results()
	return res.Len() == 1 && types.Identical(res.At(0).Type(), errType)
}
