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

package builder

import (
	"go.uber.org/zap"

	"dirpx.dev/ofx/apis"
	"dirpx.dev/ofx/codec"
	"dirpx.dev/ofx/dispatch"
	"dirpx.dev/ofx/reflector"
	"dirpx.dev/ofx/registry"
	"dirpx.dev/ofx/strategy"
)

// New creates and returns a new instance of an apis.Builder.
func New() apis.Builder {
	return &builder{}
}

// builder is an empty struct to be used as a receiver for builder methods.
type builder struct{}

// BuildCodecs builds the leaf codec set. A fresh set starts from the scalar
// defaults; entries from a pre-existing set are carried over so custom leaf
// types survive rebuilds.
func (b *builder) BuildCodecs(_ apis.Config, prev apis.Codecs, _ any) apis.Codecs {
	next := codec.NewDefault()
	if prev != nil {
		for _, e := range prev.Entries() {
			_ = next.Register(e.Type, e.Codec)
		}
	}
	return next
}

// BuildHub returns the pre-existing hub unchanged when there is one:
// replacing a hub would orphan every live registration in it. A hub is only
// ever created once, at first build.
func (b *builder) BuildHub(cfg apis.Config, prev apis.Hub, _ any) apis.Hub {
	if prev != nil {
		return prev
	}
	return registry.NewHub(cfg)
}

// BuildReflector builds and returns a new apis.Reflector chaining the nested
// and codec binders, so a member can be navigable, a text leaf, or both.
func (b *builder) BuildReflector(cfg apis.Config, codecs apis.Codecs, _ any) apis.Reflector {
	return reflector.New(
		cfg,
		strategy.NewNestedBinder(),
		strategy.NewCodecBinder(codecs),
	)
}

// BuildDispatcher builds and returns a new apis.Dispatcher over the given
// root scope. If ext carries a *zap.Logger it becomes the dispatcher's
// side-channel diagnostic logger; otherwise the dispatcher stays silent.
func (b *builder) BuildDispatcher(cfg apis.Config, reg apis.Registry, refl apis.Reflector, ext any) apis.Dispatcher {
	log, _ := ext.(*zap.Logger)
	return dispatch.New(cfg, reg, refl, log)
}
