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

package reflector

import (
	"github.com/cockroachdb/errors"

	"dirpx.dev/ofx/apis"
)

var (
	// ErrNilObject is returned when a nil instance is provided.
	ErrNilObject = errors.New("ofx(reflector): nil object provided")
	// ErrDuplicateField indicates two declared fields share a name.
	ErrDuplicateField = errors.New("ofx(reflector): duplicate field name")
)

// New constructs an apis.Reflector that applies the given binders, in order,
// to every declared field. Nil binders are ignored. The returned reflector
// is safe for concurrent use provided binders themselves are safe for
// concurrent Bind calls.
func New(cfg apis.Config, binders ...apis.Binder) apis.Reflector {
	// Filter out nils to avoid nil-interface panics on call sites.
	out := make([]apis.Binder, 0, len(binders))
	for _, b := range binders {
		if b != nil {
			out = append(out, b)
		}
	}
	return chain{cfg: cfg, binders: out}
}

// chain is an immutable, order-preserving reflector over a set of binders.
type chain struct {
	cfg     apis.Config
	binders []apis.Binder
}

// Reflect walks obj's declared fields in declaration order and lets every
// binder contribute capabilities. Fields no binder can serve are omitted, so
// addressing them reports member-not-found downstream. The result is a
// point-in-time snapshot bound to obj and must be rebuilt for every
// dispatch.
func (r chain) Reflect(obj apis.Reflectable) (apis.Members, error) {
	if obj == nil {
		return nil, ErrNilObject
	}

	fields := obj.Fields()
	members := make(apis.Members, 0, len(fields))
	seen := make(map[string]struct{}, len(fields))

	for _, f := range fields {
		if _, dup := seen[f.Name]; dup {
			return nil, errors.Wrapf(ErrDuplicateField, "field %q", f.Name)
		}
		seen[f.Name] = struct{}{}

		m := apis.Member{Name: f.Name}
		bound := false
		for _, b := range r.binders {
			if b.Bind(f, &m, r.cfg) {
				bound = true
			}
		}
		if bound {
			members = append(members, m)
		}
	}
	return members, nil
}
