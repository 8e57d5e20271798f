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

package reflect

import (
	"reflect"

	"github.com/cockroachdb/errors"

	"dirpx.dev/ofx/apis"
	"dirpx.dev/ofx/config"
)

var (
	// ErrReflectNilType is returned when a nil reflect.Type is provided.
	ErrReflectNilType = errors.New("reflect: nil reflect.Type provided")
	// ErrReflectTypeNotNamed indicates that the provided type (after unwrapping
	// pointers) is not a named type and cannot key a registry scope.
	ErrReflectTypeNotNamed = errors.New("reflect: type has no name")
)

// Normalize unwraps pointer chains according to config (MaxDepth) and
// returns the nearest named type, or an error if none is found.
//
// Registry scopes are keyed by object type; instances arrive as *T (or,
// pathologically, **T), so only pointer depth varies. Anything that does not
// bottom out at a named type within MaxDepth steps is rejected.
//
// If MaxDepth <= 0, DefaultMaxDepth is used.
func Normalize(t reflect.Type, cfg apis.Config) (reflect.Type, error) {
	if t == nil {
		return nil, ErrReflectNilType
	}
	maxDepth := cfg.MaxDepth
	if maxDepth <= 0 {
		maxDepth = config.DefaultMaxDepth
	}

	for i := 0; t.Kind() == reflect.Ptr && i < maxDepth; i++ {
		t = t.Elem()
	}

	if t.Kind() != reflect.Ptr && t.Name() != "" {
		return t, nil
	}
	return nil, ErrReflectTypeNotNamed
}
