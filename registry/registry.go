/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package registry maps string identifiers to live object instances, one
// registry per reflectable type. Registries hold non-owning references:
// whoever constructed an object owns its lifetime and must release it
// (unregister) before the storage goes away.
package registry

import (
	"sync"

	"github.com/cockroachdb/errors"

	"dirpx.dev/ofx/apis"
)

var (
	// ErrEmptyIdentifier is returned when an empty identifier is provided.
	ErrEmptyIdentifier = errors.New("ofx(registry): empty identifier provided")
	// ErrNilObject is returned when a nil instance is provided.
	ErrNilObject = errors.New("ofx(registry): nil object provided")
	// ErrIdentifierTaken indicates an identifier collision while
	// Config.AllowOverwrite is disabled.
	ErrIdentifierTaken = errors.New("ofx(registry): identifier already registered")
)

// New constructs a Registry honoring cfg's collision policy.
func New(cfg apis.Config) apis.Registry {
	return &registry{cfg: cfg}
}

// registry is a simple Registry implementation backed by sync.Map.
type registry struct {
	// cfg carries the collision policy (AllowOverwrite).
	cfg apis.Config
	// mu guards write-side consistency and counter.
	mu sync.Mutex
	// m maps identifier to live instance.
	m sync.Map // map[string]apis.Reflectable
	// count tracks the number of registered identifiers.
	count int
}

// Register inserts the mapping for id. Under the default policy a second
// registration for the same id silently replaces the first; the lifecycle
// layer is responsible for not creating unintended collisions.
func (r *registry) Register(id string, obj apis.Reflectable) error {
	// Validate inputs early.
	if id == "" {
		return ErrEmptyIdentifier
	}
	if obj == nil {
		return ErrNilObject
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.m.Load(id); ok {
		if old == obj {
			return nil // idempotent re-registration
		}
		if !r.cfg.AllowOverwrite {
			return errors.Wrapf(ErrIdentifierTaken, "id %q", id)
		}
		// Last-register-wins: replace without touching the counter.
		r.m.Store(id, obj)
		return nil
	}

	r.m.Store(id, obj)
	r.count++
	return nil
}

// Unregister removes the mapping if present; absent ids are a no-op.
func (r *registry) Unregister(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.m.Load(id); ok {
		r.m.Delete(id)
		r.count--
	}
}

// Lookup returns the instance for id if present.
func (r *registry) Lookup(id string) (apis.Reflectable, bool) {
	if id == "" {
		return nil, false
	}
	if v, ok := r.m.Load(id); ok {
		return v.(apis.Reflectable), true
	}
	return nil, false
}

// Entries returns a snapshot for diagnostics/docs (order is unspecified).
func (r *registry) Entries() []apis.Entry {
	entries := make([]apis.Entry, 0, r.Count())
	r.m.Range(func(key, value any) bool {
		entries = append(entries, apis.Entry{
			ID:     key.(string),
			Object: value.(apis.Reflectable),
		})
		return true
	})
	return entries
}

// Count returns the number of registered identifiers.
func (r *registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Reset clears all entries.
func (r *registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m = sync.Map{}
	r.count = 0
}
