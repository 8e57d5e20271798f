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

// Binder is a pluggable field-binding step. A Reflector runs every binder
// over every declared field; each binder contributes at most one capability
// (leaf accessor or nested descent) to the member under construction.
//
// Binders decorate rather than short-circuit: a field whose type both has a
// codec and is reflectable ends up with both capabilities set.
type Binder interface {
	// Bind inspects f and, if it can serve it, fills the corresponding part
	// of m. It returns true if it contributed, false to fall through.
	Bind(f Field, m *Member, cfg Config) bool
}
