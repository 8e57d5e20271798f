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

// Package object provides the registration lifecycle for reflectable types.
//
// A type participates by embedding Handle and declaring its fields:
//
//	type Probe struct {
//	    object.Handle
//	    Count int
//	}
//
//	func (p *Probe) Fields() []apis.Field {
//	    return []apis.Field{{Name: "count", Ptr: &p.Count}}
//	}
//
// Attach registers the instance in its type's hub scope under an identifier;
// Rename moves it to a new identifier; Release unregisters it. Go has no
// destructors, so Release is explicit: an instance must be released before
// its storage goes away, or the registry is left holding a dangling
// reference.
package object

import (
	"reflect"

	"github.com/cockroachdb/errors"

	"dirpx.dev/ofx/apis"
)

var (
	// ErrEmptyIdentifier is returned when an empty identifier is provided to
	// Attach or Rename. This is the one lifecycle failure that callers must
	// treat as a programming error: the object is not usable under an empty
	// identifier and prior registration state is left unchanged.
	ErrEmptyIdentifier = errors.New("ofx(object): empty identifier provided")
	// ErrNilObject is returned when a nil instance is provided.
	ErrNilObject = errors.New("ofx(object): nil object provided")
	// ErrNilHub is returned when a nil hub is provided.
	ErrNilHub = errors.New("ofx(object): nil hub provided")
	// ErrNotAttached is returned by Rename on a handle that was never
	// attached (or has been released).
	ErrNotAttached = errors.New("ofx(object): object is not attached")
	// ErrBadField indicates a malformed field declaration: empty or
	// duplicate name, or a Ptr that is not a non-nil pointer.
	ErrBadField = errors.New("ofx(object): invalid field declaration")
	// ErrUnsupportedField indicates a declared field whose type has no codec
	// and is not itself reflectable. Declarations are checked when the
	// object is attached, not when a path first touches the field.
	ErrUnsupportedField = errors.New("ofx(object): field type has no codec and is not reflectable")
)

// Handle carries an instance's registration state. Embed it by value; its
// zero value is a detached handle.
type Handle struct {
	reg  apis.Registry
	self apis.Reflectable
	id   string
}

// Object is what Attach accepts: a Reflectable that embeds Handle.
// The unexported method pins the embedding requirement at compile time.
type Object interface {
	apis.Reflectable
	handle() *Handle
}

func (h *Handle) handle() *Handle { return h }

// ObjectID returns the current identifier, or "" while detached.
func (h *Handle) ObjectID() string { return h.id }

// Attach validates obj's field declarations against codecs and registers obj
// under id in hub's scope for obj's dynamic type.
//
// An already attached object is moved: the new registration happens first,
// then the old identifier is unregistered, so a failed Attach leaves the
// previous registration untouched. codecs may be nil, in which case only
// nested reflectable fields pass validation.
func Attach(hub apis.Hub, codecs apis.Codecs, obj Object, id string) error {
	if hub == nil {
		return ErrNilHub
	}
	if obj == nil {
		return ErrNilObject
	}
	if id == "" {
		return ErrEmptyIdentifier
	}
	if err := validate(obj, codecs); err != nil {
		return err
	}

	reg := hub.For(reflect.TypeOf(obj))
	if err := reg.Register(id, obj); err != nil {
		return err
	}

	h := obj.handle()
	if h.reg != nil && !(h.reg == reg && h.id == id) {
		h.reg.Unregister(h.id)
	}
	h.reg = reg
	h.self = obj
	h.id = id
	return nil
}

// Rename moves the instance to a new identifier within its scope. The new
// registration happens before the old one is removed, so a failed rename
// leaves the previous registration unchanged.
func (h *Handle) Rename(id string) error {
	if id == "" {
		return ErrEmptyIdentifier
	}
	if h.reg == nil || h.self == nil {
		return ErrNotAttached
	}
	if id == h.id {
		return nil
	}
	if err := h.reg.Register(id, h.self); err != nil {
		return err
	}
	h.reg.Unregister(h.id)
	h.id = id
	return nil
}

// Release unregisters the instance and detaches the handle. It is
// idempotent and must be called before the instance's storage goes away.
func (h *Handle) Release() {
	if h.reg != nil {
		h.reg.Unregister(h.id)
	}
	h.reg = nil
	h.self = nil
	h.id = ""
}

// validate checks obj's declared fields: names non-empty and unique, every
// Ptr a non-nil pointer, and every field either leaf-convertible (codec
// present for the pointed-to type) or itself reflectable. This is the
// registration-time diagnostic; path resolution never reaches an invalid
// declaration.
func validate(obj Object, codecs apis.Codecs) error {
	seen := make(map[string]struct{})
	for _, f := range obj.Fields() {
		if f.Name == "" {
			return errors.Wrap(ErrBadField, "empty field name")
		}
		if _, dup := seen[f.Name]; dup {
			return errors.Wrapf(ErrBadField, "duplicate field %q", f.Name)
		}
		seen[f.Name] = struct{}{}

		pt := reflect.TypeOf(f.Ptr)
		if pt == nil || pt.Kind() != reflect.Ptr || reflect.ValueOf(f.Ptr).IsNil() {
			return errors.Wrapf(ErrBadField, "field %q: Ptr must be a non-nil pointer", f.Name)
		}

		if _, ok := f.Ptr.(apis.Reflectable); ok {
			continue
		}
		if codecs != nil {
			if _, ok := codecs.Lookup(pt.Elem()); ok {
				continue
			}
		}
		return errors.Wrapf(ErrUnsupportedField, "field %q of type %s", f.Name, pt.Elem())
	}
	return nil
}
