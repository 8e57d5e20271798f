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

package strategy

import (
	"dirpx.dev/ofx/apis"
)

// NewNestedBinder creates an apis.Binder that marks a member navigable when
// the field is itself reflectable.
func NewNestedBinder() apis.Binder {
	return &nestedBinder{}
}

// nestedBinder is a zero-cost capability probe: if the field's pointer
// implements apis.Reflectable, the member becomes a descent point for
// further path segments. The nested object keeps its own field set; nothing
// is flattened into the parent.
type nestedBinder struct{}

// Ensure nestedBinder implements apis.Binder.
var _ apis.Binder = (*nestedBinder)(nil)

// Bind marks the member navigable if the field is reflectable.
func (*nestedBinder) Bind(f apis.Field, m *apis.Member, _ apis.Config) bool {
	if f.Ptr == nil {
		return false
	}
	if n, ok := f.Ptr.(apis.Reflectable); ok {
		m.Nested = n
		return true
	}
	return false
}
