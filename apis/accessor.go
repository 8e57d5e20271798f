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

// Accessor is a type-erased handle over one field of one live object
// instance.
//
// # Semantics
//
// An Accessor binds a field's storage location to the codec for the field's
// type. It is transient: a reflector creates accessors on demand for a single
// dispatch, and they MUST NOT be cached across commands, because the bound
// instance may change between calls.
//
// # Contract
//
//   - Get MUST succeed for any valid binding; encoding a leaf value to text
//     is total.
//   - Set MUST be all-or-nothing: on a conversion failure the field is left
//     unchanged and a non-nil error is returned. No partial writes.
//   - Accessors hold non-owning references. The caller is responsible for
//     keeping the bound instance alive for the accessor's (short) lifetime.
type Accessor interface {
	// Get returns the bound field's current value in text form.
	Get() string
	// Set parses text and assigns the decoded value into the bound field.
	// On error the field is unchanged.
	Set(text string) error
}
