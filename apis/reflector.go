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

// Member is one reflected member of one live instance. Either capability
// (or both) may be set: Accessor when the member's type has a codec, Nested
// when the member is itself reflectable. A declared field with neither
// capability is omitted from the reflected member list entirely.
type Member struct {
	// Name is the member's path segment.
	Name string
	// Accessor is the leaf get/set handle, or nil if the member has no codec.
	Accessor Accessor
	// Nested is the member's own reflectable value, or nil if the member is
	// not navigable.
	Nested Reflectable
}

// Members is a declaration-ordered snapshot of one instance's reflected
// members. It is rebuilt for every dispatch and must not be held across
// commands. Lookups are linear: field lists are small by construction.
type Members []Member

// Lookup returns the member with the given name.
func (ms Members) Lookup(name string) (Member, bool) {
	for _, m := range ms {
		if m.Name == name {
			return m, true
		}
	}
	return Member{}, false
}

// Names returns the member names in declaration order.
func (ms Members) Names() []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.Name
	}
	return out
}

// Reflector turns a live reflectable instance into its ordered member
// snapshot by walking the declared field list and binding each field.
type Reflector interface {
	// Reflect binds obj's declared fields. Duplicate field names are an
	// error; fields with no capability are skipped.
	Reflect(obj Reflectable) (Members, error)
}
