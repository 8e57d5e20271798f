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

// Package codec provides the leaf text codecs: the bidirectional conversion
// between a field value and its text form. Encoding is total, decoding may
// fail with ErrConversion. The default set covers the scalar types and is
// extended per leaf type via Of and Set.Register.
package codec

import (
	"reflect"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cast"

	"dirpx.dev/ofx/apis"
)

var (
	// ErrNilType is returned when a nil reflect.Type is provided.
	ErrNilType = errors.New("ofx(codec): nil reflect.Type provided")
	// ErrNilCodec is returned when a nil codec is provided.
	ErrNilCodec = errors.New("ofx(codec): nil codec provided")
	// ErrCodecExists indicates an attempt to register a codec for a type
	// that is already covered.
	ErrCodecExists = errors.New("ofx(codec): codec already registered for type")
	// ErrConversion indicates that input text is not a valid lexical
	// representation of the target leaf type.
	ErrConversion = errors.New("ofx(codec): text conversion failed")
)

// Of builds an apis.Codec for leaf type T from an encode and a decode
// function. It is the extension point for leaf types beyond the default
// scalar set:
//
//	set.Register(reflect.TypeOf(Color{}), codec.Of(encodeColor, parseColor))
//
// dec errors are wrapped as ErrConversion.
func Of[T any](enc func(T) string, dec func(string) (T, error)) apis.Codec {
	return typed[T]{enc: enc, dec: dec}
}

// typed adapts a pair of T-level conversion functions to the type-erased
// apis.Codec contract.
type typed[T any] struct {
	enc func(T) string
	dec func(string) (T, error)
}

// Encode returns the text form of v. v always holds the registered type.
func (c typed[T]) Encode(v reflect.Value) string {
	return c.enc(v.Interface().(T))
}

// Decode parses text into a value of T.
func (c typed[T]) Decode(text string) (reflect.Value, error) {
	out, err := c.dec(text)
	if err != nil {
		return reflect.Value{}, errors.Wrapf(ErrConversion, "%q: %v", text, err)
	}
	return reflect.ValueOf(out), nil
}

// New constructs an empty codec set.
func New() apis.Codecs {
	return &set{}
}

// NewDefault constructs a codec set pre-populated with the scalar codecs:
// bool, string, every int and uint width, float32/64, and time.Duration.
func NewDefault() apis.Codecs {
	s := New()
	for t, c := range defaults() {
		// Defaults are disjoint by construction; Register cannot fail here.
		_ = s.Register(t, c)
	}
	return s
}

// set is a simple Codecs implementation backed by sync.Map.
type set struct {
	// mu guards write-side consistency and counter.
	mu sync.Mutex
	// m maps reflect.Type to apis.Codec.
	m sync.Map // map[reflect.Type]apis.Codec
	// count tracks the number of registered codecs.
	count int
}

// Register associates t with codec c. A type may carry only one codec;
// replacing requires a fresh set (schemas are fixed at setup time).
func (s *set) Register(t reflect.Type, c apis.Codec) error {
	// Validate inputs early.
	if t == nil {
		return ErrNilType
	}
	if c == nil {
		return ErrNilCodec
	}

	// Fast read path: duplicate check without locking.
	if _, ok := s.m.Load(t); ok {
		return errors.Wrapf(ErrCodecExists, "type %s", t)
	}

	// Write path: guard with a mutex to keep counter consistent and avoid ABA.
	s.mu.Lock()
	defer s.mu.Unlock()

	// Re-check under lock in case another goroutine stored meanwhile.
	if _, ok := s.m.Load(t); ok {
		return errors.Wrapf(ErrCodecExists, "type %s", t)
	}

	s.m.Store(t, c)
	s.count++
	return nil
}

// Lookup returns the codec for a type if present.
func (s *set) Lookup(t reflect.Type) (apis.Codec, bool) {
	if t == nil {
		return nil, false
	}
	if v, ok := s.m.Load(t); ok {
		return v.(apis.Codec), true
	}
	return nil, false
}

// Entries returns a snapshot for diagnostics/docs (order is unspecified).
func (s *set) Entries() []apis.CodecEntry {
	entries := make([]apis.CodecEntry, 0, s.Count())
	s.m.Range(func(key, value any) bool {
		entries = append(entries, apis.CodecEntry{
			Type:  key.(reflect.Type),
			Codec: value.(apis.Codec),
		})
		return true
	})
	return entries
}

// Count returns the number of registered codecs.
func (s *set) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}

// Reset clears all registered codecs.
func (s *set) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m = sync.Map{}
	s.count = 0
}

// str narrows cast.ToString (which takes any) to a single leaf type so it
// can seed Of's encode side.
func str[T any](v T) string { return cast.ToString(v) }

// via narrows one of cast's To*E converters (which take any) to a
// string-only decoder for Of's decode side.
func via[T any](f func(any) (T, error)) func(string) (T, error) {
	return func(s string) (T, error) { return f(s) }
}

// defaults builds the scalar codec table. Decoding goes through cast's
// strict To*E converters; encoding through cast.ToString, which is total for
// every type listed here.
func defaults() map[reflect.Type]apis.Codec {
	return map[reflect.Type]apis.Codec{
		reflect.TypeOf(false):            Of(str[bool], via(cast.ToBoolE)),
		reflect.TypeOf(""):               Of(str[string], via(cast.ToStringE)),
		reflect.TypeOf(int(0)):           Of(str[int], via(cast.ToIntE)),
		reflect.TypeOf(int8(0)):          Of(str[int8], via(cast.ToInt8E)),
		reflect.TypeOf(int16(0)):         Of(str[int16], via(cast.ToInt16E)),
		reflect.TypeOf(int32(0)):         Of(str[int32], via(cast.ToInt32E)),
		reflect.TypeOf(int64(0)):         Of(str[int64], via(cast.ToInt64E)),
		reflect.TypeOf(uint(0)):          Of(str[uint], via(cast.ToUintE)),
		reflect.TypeOf(uint8(0)):         Of(str[uint8], via(cast.ToUint8E)),
		reflect.TypeOf(uint16(0)):        Of(str[uint16], via(cast.ToUint16E)),
		reflect.TypeOf(uint32(0)):        Of(str[uint32], via(cast.ToUint32E)),
		reflect.TypeOf(uint64(0)):        Of(str[uint64], via(cast.ToUint64E)),
		reflect.TypeOf(float32(0)):       Of(str[float32], via(cast.ToFloat32E)),
		reflect.TypeOf(float64(0)):       Of(str[float64], via(cast.ToFloat64E)),
		reflect.TypeOf(time.Duration(0)): Of(time.Duration.String, via(cast.ToDurationE)),
	}
}
