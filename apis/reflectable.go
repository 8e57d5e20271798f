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

// Field declares one named, addressable member of a reflectable object.
//
// Ptr points at the member's storage inside a specific live instance, so a
// Field is both the declaration (name) and the binding (address). Types
// produce their Field list in Fields; the list order is the declaration
// order exposed to path resolution.
type Field struct {
	// Name is the member's path segment. Must be non-empty and unique within
	// the owning type's field list.
	Name string
	// Ptr is a typed pointer to the member's storage (e.g. &obj.Count).
	Ptr any
}

// Reflectable is the capability an object type must have to participate in
// identifier-based registration and dotted-path resolution.
//
// # Overview
//
// A reflectable type declares an ordered list of named fields and holds one
// current object identifier. Implementations typically embed object.Handle
// (which supplies ObjectID and the registration lifecycle) and implement
// Fields by listing pointers to their own members:
//
//	type Probe struct {
//	    object.Handle
//	    Count int
//	    Label string
//	}
//
//	func (p *Probe) Fields() []apis.Field {
//	    return []apis.Field{
//	        {Name: "count", Ptr: &p.Count},
//	        {Name: "label", Ptr: &p.Label},
//	    }
//	}
//
// # Contract
//
//   - Fields MUST return the same names, in the same order, on every call
//     for a given instance (the schema is fixed at type-definition time).
//   - Every Ptr MUST be a non-nil pointer into the receiver instance, so
//     that mutation through an accessor is visible on the object.
//   - A field whose pointed-to type is itself Reflectable becomes navigable
//     by further path segments; a field whose type has a registered codec
//     becomes a readable/writable leaf. A field may be both.
//   - ObjectID returns the current registered identifier, or "" while the
//     instance is not registered. It MUST be cheap and side-effect free.
type Reflectable interface {
	// ObjectID returns the instance's current identifier ("" if unregistered).
	ObjectID() string
	// Fields returns the declared members in declaration order.
	Fields() []Field
}
