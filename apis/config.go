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

// Config carries read-only dispatch and registration knobs.
// It is passed by value and should be treated as immutable by implementations.
type Config struct {
	// MaxDepth limits the number of dotted path segments a single command may
	// walk, and the pointer unwrap depth used when normalizing registry scope
	// keys. Acts as a safety guard against pathological nesting.
	MaxDepth int

	// AllowOverwrite controls identifier collisions in a registry. If true,
	// a later registration under an existing identifier silently replaces the
	// earlier one (last-register-wins). If false, the collision is an error.
	AllowOverwrite bool
}
