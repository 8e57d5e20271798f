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

package apis

import "reflect"

// Registry maps string identifiers to live object instances of one
// reflectable type. Entries are non-owning references: the registry never
// controls instance lifetime, and an instance must unregister before its
// storage goes away.
type Registry interface {
	// Register inserts the mapping for id. Collision behavior is governed by
	// Config.AllowOverwrite (last-register-wins by default).
	Register(id string, obj Reflectable) error
	// Unregister removes the mapping if present; absent ids are a no-op.
	Unregister(id string)
	// Lookup returns the instance for id. Not-found is a normal, reportable
	// condition, not an error.
	Lookup(id string) (obj Reflectable, ok bool)
	// Entries returns a snapshot for diagnostics/docs (order is unspecified).
	Entries() []Entry
	// Count returns the number of registered identifiers.
	Count() int
	// Reset clears all entries.
	Reset()
}

// Entry is a single (identifier, instance) association in a Registry
// snapshot.
type Entry struct {
	// ID is the registered identifier.
	ID string
	// Object is the live instance it maps to.
	Object Reflectable
}

// Hub owns one Registry per reflectable type. Identifiers are unique only
// within a single type's registry, never across types.
type Hub interface {
	// For returns the registry scoped to t, creating it on first use.
	// t is normalized (pointer chains unwrapped) before keying.
	For(t reflect.Type) Registry
	// Scopes returns the types that currently have a registry.
	Scopes() []reflect.Type
	// Reset drops all scopes and their entries.
	Reset()
}
