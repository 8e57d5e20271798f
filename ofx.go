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

package ofx

import (
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/cockroachdb/errors"

	"dirpx.dev/ofx/apis"
	"dirpx.dev/ofx/builder"
	"dirpx.dev/ofx/config"
	"dirpx.dev/ofx/object"
)

// init initializes the global introspection state.
func init() {
	// Initialize state with default cfg, codecs, hub, reflector, dispatcher.
	s := &state{cfg: config.DefaultConfig()}
	b := builder.New()
	s.codecs = b.BuildCodecs(s.cfg, nil, nil)
	s.hub = b.BuildHub(s.cfg, nil, nil)
	s.refl = b.BuildReflector(s.cfg, s.codecs, nil)
	s.disp = b.BuildDispatcher(s.cfg, nil, s.refl, nil)
	s.bld = b
	// Store the initial state atomically.
	st.Store(s)
}

var (
	// ErrNilCodecs is returned when a builder returns a nil codec set.
	ErrNilCodecs = errors.New("ofx: builder returned nil codecs")
	// ErrNilHub is returned when a builder returns a nil hub.
	ErrNilHub = errors.New("ofx: builder returned nil hub")
	// ErrNilReflector is returned when a builder returns a nil reflector.
	ErrNilReflector = errors.New("ofx: builder returned nil reflector")
	// ErrNilDispatcher is returned when a builder returns a nil dispatcher.
	ErrNilDispatcher = errors.New("ofx: builder returned nil dispatcher")
)

// Execute runs one command against the global dispatcher and returns the
// resulting value text. Failure and success-with-empty-text are distinct:
// failures carry a non-nil error.
// This is a convenience wrapper around the global disp.
func Execute(cmd string) (string, error) {
	return st.Load().disp.Execute(cmd)
}

// ParseAndExecute runs one command and returns its result text, or the
// empty string on any failure. Callers that must distinguish a legitimately
// empty value from a failure should use Execute instead.
func ParseAndExecute(cmd string) string {
	out, err := Execute(cmd)
	if err != nil {
		return ""
	}
	return out
}

// Attach validates obj against the global codec set and registers it under
// id in the global hub's scope for obj's dynamic type.
// This is a convenience wrapper around the global hub and codecs.
func Attach(obj object.Object, id string) error {
	s := st.Load()
	return object.Attach(s.hub, s.codecs, obj, id)
}

// RegisterCodec adds a leaf codec to the global codec set.
// This is a convenience wrapper around the global codecs.
func RegisterCodec(t reflect.Type, c apis.Codec) error {
	return st.Load().codecs.Register(t, c)
}

// SetAll explicitly sets all global state components.
//
// Nil arguments leave the corresponding component unchanged (rebuilt where
// rebuilding applies), except for ext which is always replaced. The hub is
// never replaced; live registrations always survive.
//
// This is a convenience wrapper around the global state.
func SetAll(cfg *apis.Config, ext any, cs apis.Codecs, d apis.Dispatcher, bld apis.Builder, root reflect.Type) {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Configuration
	ncfg := old.cfg
	if cfg != nil {
		ncfg = *cfg
	}

	// Extension
	next := ext

	// Builder
	nbld := old.bld
	if bld != nil {
		nbld = bld
	}

	// Root scope type
	nroot := old.root
	if root != nil {
		nroot = root
	}

	// Hub: persistent by contract.
	nhub := nbld.BuildHub(ncfg, old.hub, next)
	if nhub == nil {
		panic(ErrNilHub)
	}

	// Codecs
	ncod := cs
	npcod := false
	if ncod == nil {
		ncod = nbld.BuildCodecs(ncfg, old.codecs, next)
	} else {
		npcod = true
	}
	if ncod == nil {
		panic(ErrNilCodecs)
	}

	// Reflector
	nrefl := nbld.BuildReflector(ncfg, ncod, next)
	if nrefl == nil {
		panic(ErrNilReflector)
	}

	// Dispatcher
	ndisp := d
	npdis := false
	if ndisp == nil {
		ndisp = nbld.BuildDispatcher(ncfg, scopeOf(nhub, nroot), nrefl, next)
	} else {
		npdis = true
	}
	if ndisp == nil {
		panic(ErrNilDispatcher)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:    ncfg,
			ext:    next,
			codecs: ncod,
			hub:    nhub,
			refl:   nrefl,
			disp:   ndisp,
			bld:    nbld,
			root:   nroot,
			pcod:   npcod,
			pdis:   npdis,
		},
	)
}

// Config returns the global configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig sets the global configuration to cfg.
// It rebuilds the unpinned layers using the new configuration.
// This is a convenience wrapper around the global state.
func SetConfig(cfg apis.Config) {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()
	b := old.bld

	// Build new codecs, reflector, and dispatcher based on the new cfg.
	ncod := old.codecs
	if !old.pcod {
		ncod = b.BuildCodecs(cfg, old.codecs, old.ext)
	}
	nrefl := b.BuildReflector(cfg, ncod, old.ext)
	ndisp := old.disp
	if !old.pdis {
		ndisp = b.BuildDispatcher(cfg, scopeOf(old.hub, old.root), nrefl, old.ext)
	}

	// Ensure non-nil layers.
	if ncod == nil {
		panic(ErrNilCodecs)
	}
	if nrefl == nil {
		panic(ErrNilReflector)
	}
	if ndisp == nil {
		panic(ErrNilDispatcher)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:    cfg,
			ext:    old.ext,
			codecs: ncod,
			hub:    old.hub,
			refl:   nrefl,
			disp:   ndisp,
			bld:    b,
			root:   old.root,
			pcod:   old.pcod,
			pdis:   old.pdis,
		},
	)
}

// Codecs returns the global leaf codec set.
func Codecs() apis.Codecs {
	return st.Load().codecs
}

// SetCodecs sets the global codec set to cs and pins it.
// The reflector and (unless pinned) the dispatcher are rebuilt over cs.
// This is a convenience wrapper around the global state.
func SetCodecs(cs apis.Codecs) {
	if cs == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()
	b := old.bld

	// Build new reflector and dispatcher over the new codec set.
	nrefl := b.BuildReflector(old.cfg, cs, old.ext)
	if nrefl == nil {
		panic(ErrNilReflector)
	}
	ndisp := old.disp
	if !old.pdis {
		ndisp = b.BuildDispatcher(old.cfg, scopeOf(old.hub, old.root), nrefl, old.ext)
	}
	if ndisp == nil {
		panic(ErrNilDispatcher)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:    old.cfg,
			ext:    old.ext,
			codecs: cs,
			hub:    old.hub,
			refl:   nrefl,
			disp:   ndisp,
			bld:    b,
			root:   old.root,
			pcod:   true,
			pdis:   old.pdis,
		},
	)
}

// Hub returns the global per-type registry hub.
func Hub() apis.Hub {
	return st.Load().hub
}

// Root returns the reflect.Type whose registry scope the global dispatcher
// resolves root identifiers against, or nil if none is configured.
func Root() reflect.Type {
	return st.Load().root
}

// SetRoot sets the root scope type for the global dispatcher and rebuilds
// the dispatcher over that scope unless it is pinned.
// This is a convenience wrapper around the global state.
func SetRoot(t reflect.Type) {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()
	b := old.bld

	// Build new dispatcher over the new root scope.
	ndisp := old.disp
	if !old.pdis {
		ndisp = b.BuildDispatcher(old.cfg, scopeOf(old.hub, t), old.refl, old.ext)
	}
	if ndisp == nil {
		panic(ErrNilDispatcher)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:    old.cfg,
			ext:    old.ext,
			codecs: old.codecs,
			hub:    old.hub,
			refl:   old.refl,
			disp:   ndisp,
			bld:    b,
			root:   t,
			pcod:   old.pcod,
			pdis:   old.pdis,
		},
	)
}

// Reflector returns the global reflector.
func Reflector() apis.Reflector {
	return st.Load().refl
}

// Dispatcher returns the global dispatcher.
func Dispatcher() apis.Dispatcher {
	return st.Load().disp
}

// SetDispatcher sets the global dispatcher to d and pins it.
// This is a convenience wrapper around the global state.
func SetDispatcher(d apis.Dispatcher) {
	if d == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:    old.cfg,
			ext:    old.ext,
			codecs: old.codecs,
			hub:    old.hub,
			refl:   old.refl,
			disp:   d,
			bld:    old.bld,
			root:   old.root,
			pcod:   old.pcod,
			pdis:   true,
		},
	)
}

// Builder returns the global builder.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder sets the global builder to b and rebuilds the unpinned layers.
// This is a convenience wrapper around the global state.
func SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Build new layers based on the new builder and old state.
	ncod := old.codecs
	if !old.pcod {
		ncod = b.BuildCodecs(old.cfg, old.codecs, old.ext)
	}
	nrefl := b.BuildReflector(old.cfg, ncod, old.ext)
	ndisp := old.disp
	if !old.pdis {
		ndisp = b.BuildDispatcher(old.cfg, scopeOf(old.hub, old.root), nrefl, old.ext)
	}

	// Ensure non-nil layers.
	if ncod == nil {
		panic(ErrNilCodecs)
	}
	if nrefl == nil {
		panic(ErrNilReflector)
	}
	if ndisp == nil {
		panic(ErrNilDispatcher)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:    old.cfg,
			ext:    old.ext,
			codecs: ncod,
			hub:    old.hub,
			refl:   nrefl,
			disp:   ndisp,
			bld:    b,
			root:   old.root,
			pcod:   old.pcod,
			pdis:   old.pdis,
		},
	)
}

// SetExt replaces extension config and rebuilds non-pinned layers via the
// builder. The default builder uses a *zap.Logger ext as the dispatcher's
// diagnostic logger.
func SetExt[T any](ext T) {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()
	b := old.bld

	// Build new layers based on the new ext and old state.
	ncod := old.codecs
	if !old.pcod {
		ncod = b.BuildCodecs(old.cfg, old.codecs, ext)
	}
	nrefl := b.BuildReflector(old.cfg, ncod, ext)
	ndisp := old.disp
	if !old.pdis {
		ndisp = b.BuildDispatcher(old.cfg, scopeOf(old.hub, old.root), nrefl, ext)
	}

	// Ensure non-nil layers.
	if ncod == nil {
		panic(ErrNilCodecs)
	}
	if nrefl == nil {
		panic(ErrNilReflector)
	}
	if ndisp == nil {
		panic(ErrNilDispatcher)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:    old.cfg,
			ext:    ext,
			codecs: ncod,
			hub:    old.hub,
			refl:   nrefl,
			disp:   ndisp,
			bld:    b,
			root:   old.root,
			pcod:   old.pcod,
			pdis:   old.pdis,
		},
	)
}

// ExtAs returns the global extension config as type T.
func ExtAs[T any]() (T, bool) {
	ext, ok := st.Load().ext.(T)
	return ext, ok
}

// IsCodecsPinned returns whether the global codec set is pinned (immutable).
func IsCodecsPinned() bool {
	return st.Load().pcod
}

// PinCodecs makes the global codec set immutable.
func PinCodecs() {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	st.Store(old.with(func(s *state) { s.pcod = true }))
}

// UnpinCodecs makes the global codec set rebuildable again.
func UnpinCodecs() {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	st.Store(old.with(func(s *state) { s.pcod = false }))
}

// IsDispatcherPinned returns whether the global dispatcher is pinned
// (immutable).
func IsDispatcherPinned() bool {
	return st.Load().pdis
}

// PinDispatcher makes the global dispatcher immutable.
func PinDispatcher() {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	st.Store(old.with(func(s *state) { s.pdis = true }))
}

// UnpinDispatcher makes the global dispatcher rebuildable again.
func UnpinDispatcher() {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	st.Store(old.with(func(s *state) { s.pdis = false }))
}

// scopeOf resolves the root registry scope, or nil when no root type is
// configured (the dispatcher then reports object-not-found for everything).
func scopeOf(hub apis.Hub, root reflect.Type) apis.Registry {
	if hub == nil || root == nil {
		return nil
	}
	return hub.For(root)
}

// buildMu serializes writers (reconfigurations/swaps) so we never publish
// partially-built snapshots.
var buildMu sync.Mutex

// st is the global introspection state.
var st atomic.Pointer[state]

// state is the global state snapshot.
// Immutable snapshot published atomically via st.Store; never mutate fields
// of a published state. Writers create a new state and swap it atomically.
type state struct {
	// cfg is the global configuration.
	cfg apis.Config
	// ext is the global extension configuration.
	ext any
	// codecs is the global leaf codec set.
	codecs apis.Codecs
	// hub is the global per-type registry hub. It is never replaced.
	hub apis.Hub
	// refl is the global reflector.
	refl apis.Reflector
	// disp is the global dispatcher.
	disp apis.Dispatcher
	// bld is the global builder.
	bld apis.Builder
	// root is the type whose scope the dispatcher resolves against.
	root reflect.Type
	// pcod indicates whether the codec set is pinned (immutable).
	pcod bool
	// pdis indicates whether the dispatcher is pinned (immutable).
	pdis bool
}

// with returns a copy of s modified by fn. Used by the pin toggles, which
// change flags without rebuilding any layer.
func (s *state) with(fn func(*state)) *state {
	c := *s
	fn(&c)
	return &c
}
