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

package registry

import (
	"reflect"
	"sync"

	"dirpx.dev/ofx/apis"
	uref "dirpx.dev/ofx/utils/reflect"
)

// NewHub constructs a Hub whose scopes apply cfg's collision policy.
// Scope keys are normalized with cfg.MaxDepth pointer unwrapping.
func NewHub(cfg apis.Config) apis.Hub {
	return &hub{cfg: cfg}
}

// hub owns one registry per reflectable type, created on first use.
// Identifiers are unique only within a scope, never across scopes.
type hub struct {
	// cfg is handed to every scope registry.
	cfg apis.Config
	// mu guards scope creation.
	mu sync.Mutex
	// m maps normalized reflect.Type to its apis.Registry.
	m sync.Map // map[reflect.Type]apis.Registry
}

// For returns the registry scoped to t, creating it on first use.
// Unnamed or nil types share a single fallback scope so callers never
// receive a nil registry.
func (h *hub) For(t reflect.Type) apis.Registry {
	key := h.key(t)

	// Fast read path.
	if v, ok := h.m.Load(key); ok {
		return v.(apis.Registry)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	// Re-check under lock in case another goroutine created the scope.
	if v, ok := h.m.Load(key); ok {
		return v.(apis.Registry)
	}

	reg := New(h.cfg)
	h.m.Store(key, reg)
	return reg
}

// Scopes returns the types that currently have a registry.
func (h *hub) Scopes() []reflect.Type {
	var out []reflect.Type
	h.m.Range(func(key, _ any) bool {
		if t, ok := key.(reflect.Type); ok {
			out = append(out, t)
		}
		return true
	})
	return out
}

// Reset drops all scopes and their entries.
func (h *hub) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.m = sync.Map{}
}

// fallbackScope keys registries for types Normalize rejects.
type fallbackScope struct{}

// key normalizes t into a stable scope key.
func (h *hub) key(t reflect.Type) any {
	nt, err := uref.Normalize(t, h.cfg)
	if err != nil {
		return fallbackScope{}
	}
	return nt
}
