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

// Codec converts between values of a single leaf type and their text form.
//
// Encode is total: it must produce a text form for any in-range value of the
// codec's type. Decode is partial: text that is not a valid lexical
// representation of the type yields an error and no value.
//
// A Codec is bound to exactly one reflect.Type inside a Codecs set; the
// values it receives and returns are always of that type.
type Codec interface {
	// Encode returns the text form of v. It must not fail.
	Encode(v reflect.Value) string
	// Decode parses text into a value of the codec's type.
	Decode(text string) (reflect.Value, error)
}

// Codecs is the set of leaf codecs known to a reflector.
// Keep it minimal so implementations can be lock-free or sync.Map-backed.
type Codecs interface {
	// Register associates a reflect.Type with a codec.
	// Re-registering an already covered type is an error.
	Register(t reflect.Type, c Codec) error
	// Lookup returns the codec for a type if present.
	Lookup(t reflect.Type) (c Codec, ok bool)
	// Entries returns a snapshot for diagnostics/docs (order is unspecified).
	Entries() []CodecEntry
	// Count returns the number of registered codecs.
	Count() int
	// Reset clears all registered codecs.
	Reset()
}

// CodecEntry is a single (type, codec) association in a Codecs snapshot.
type CodecEntry struct {
	// Type is the leaf type the codec covers.
	Type reflect.Type
	// Codec is the associated codec.
	Codec Codec
}
