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
	"reflect"

	"dirpx.dev/ofx/apis"
)

// NewCodecBinder creates an apis.Binder that gives a member a leaf accessor
// when the field's type has a codec in cs.
func NewCodecBinder(cs apis.Codecs) apis.Binder {
	return &codecBinder{cs: cs}
}

// codecBinder binds leaf fields: it consults the codec set by the field's
// exact type and, on a hit, installs an accessor over the field's storage.
type codecBinder struct {
	cs apis.Codecs
}

// Ensure codecBinder implements apis.Binder.
var _ apis.Binder = (*codecBinder)(nil)

// Bind installs a leaf accessor if the field's type has a codec.
func (b *codecBinder) Bind(f apis.Field, m *apis.Member, _ apis.Config) bool {
	if b.cs == nil || f.Ptr == nil {
		return false
	}
	ptr := reflect.ValueOf(f.Ptr)
	if ptr.Kind() != reflect.Ptr || ptr.IsNil() {
		return false
	}
	c, ok := b.cs.Lookup(ptr.Type().Elem())
	if !ok {
		return false
	}
	m.Accessor = fieldAccessor{ptr: ptr, codec: c}
	return true
}

// fieldAccessor is the runtime binding of one codec to one field's storage.
// It is created per dispatch and discarded with the member snapshot.
type fieldAccessor struct {
	ptr   reflect.Value // pointer to the field's storage
	codec apis.Codec
}

// Ensure fieldAccessor implements apis.Accessor.
var _ apis.Accessor = fieldAccessor{}

// Get reads the field through the codec. Encoding is total.
func (a fieldAccessor) Get() string {
	return a.codec.Encode(a.ptr.Elem())
}

// Set decodes text and assigns the result into the field. The assignment
// happens only after a successful decode, so a rejected value leaves the
// field unchanged.
func (a fieldAccessor) Set(text string) error {
	v, err := a.codec.Decode(text)
	if err != nil {
		return err
	}
	a.ptr.Elem().Set(v)
	return nil
}
