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
	"sync"

	"github.com/alex-flnx/validating-base/pkg/contract"
	"github.com/jellydator/ttlcache/v3"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Enforcer binds instances to their declared contracts. The zero value
// is ready to use, and a single Enforcer is safe for concurrent use.
//
// Analysis of a type is memoized, keyed by reflect.Type, so binding
// many instances of the same type pays for its checks once. Advisory
// diagnostics recorded during analysis are replayed on every bind.
type Enforcer struct {
	// DisableCache turns off the per-type memoization of contract
	// analysis.
	DisableCache bool
	// Logger receives diagnostic messages. The zero value discards
	// them.
	Logger zerolog.Logger
	// Reporter, when set, receives advisory diagnostics as they are
	// found. The same diagnostics are always available from
	// Bound.Diagnostics.
	Reporter func(contract.Diagnostic)

	cacheOnce sync.Once
	cache     *ttlcache.Cache[reflect.Type, *plan]
}

// DefaultEnforcer backs the package-level Bind.
var DefaultEnforcer = &Enforcer{}

// Bind verifies v against its declared contract using DefaultEnforcer.
func Bind(v any) (*Bound, error) {
	return DefaultEnforcer.Bind(v)
}

// Bind verifies v against the contract it declares through
// contract.Declarer and returns the bound handle. Binding is atomic:
// on error, no wrapper has been installed and no handle is returned.
func (e *Enforcer) Bind(v any) (*Bound, error) {
	if err := checkValue(v); err != nil {
		return nil, err
	}
	d, ok := v.(contract.Declarer)
	if !ok {
		return nil, errors.Errorf("%T does not implement contract.Declarer", v)
	}
	return e.bind(v, d.Contract(), !e.DisableCache)
}

// BindContract is Bind with an explicit declaration, for types that do
// not implement contract.Declarer. The analysis is never cached.
func (e *Enforcer) BindContract(v any, c contract.Contract) (*Bound, error) {
	if err := checkValue(v); err != nil {
		return nil, err
	}
	return e.bind(v, c, false)
}

// CacheMetrics reports insertion and hit counters from the plan cache.
func (e *Enforcer) CacheMetrics() ttlcache.Metrics {
	e.initCache()
	return e.cache.Metrics()
}

// checkValue rejects nil bind targets before any method, Contract
// included, can be invoked on them.
func checkValue(v any) error {
	if v == nil {
		return errors.New("cannot bind nil")
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return errors.Errorf("cannot bind a nil %s", rv.Type())
	}
	return nil
}

func (e *Enforcer) bind(v any, c contract.Contract, cacheable bool) (*Bound, error) {
	rv := reflect.ValueOf(v)
	p, err := e.planFor(rv.Type(), c, cacheable)
	if err != nil {
		return nil, err
	}
	b, err := p.bind(rv)
	if err != nil {
		return nil, err
	}
	b.log = e.Logger

	for _, d := range b.diags {
		e.Logger.Warn().Str("type", d.Type).Str("method", d.Method).Msg(d.Message)
		if e.Reporter != nil {
			e.Reporter(d)
		}
	}
	e.Logger.Debug().Str("type", p.name).Int("actions", len(b.actions)).Msg("bound")
	return b, nil
}

func (e *Enforcer) initCache() {
	e.cacheOnce.Do(func() {
		e.cache = ttlcache.New[reflect.Type, *plan]()
	})
}

// planFor returns the memoized analysis for t, building it on a miss.
// Failed analyses are not cached; a failing bind stays a failing bind
// and its cost is not a concern.
func (e *Enforcer) planFor(t reflect.Type, c contract.Contract, cacheable bool) (*plan, error) {
	if !cacheable {
		return newPlan(t, c)
	}
	e.initCache()
	if item := e.cache.Get(t); item != nil {
		e.Logger.Debug().Str("type", item.Value().name).Msg("plan cache hit")
		return item.Value(), nil
	}
	p, err := newPlan(t, c)
	if err != nil {
		return nil, err
	}
	e.cache.Set(t, p, ttlcache.NoTTL)
	return p, nil
}
