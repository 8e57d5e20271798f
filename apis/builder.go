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

// Builder composes the introspection components from a Config.
// Implementations may migrate state from previous instances (prev*), or
// ignore them. ext is an optional extension context; its meaning is
// implementation-defined (the default builder uses a *zap.Logger ext as the
// dispatcher's diagnostic logger).
type Builder interface {
	// BuildCodecs constructs the leaf codec set for Config. May migrate
	// entries from a previous set.
	BuildCodecs(cfg Config, prev Codecs, ext any) Codecs
	// BuildHub constructs the per-type registry hub. Implementations MUST
	// return prev when it is non-nil: replacing a hub would orphan the live
	// objects registered in it.
	BuildHub(cfg Config, prev Hub, ext any) Hub
	// BuildReflector constructs a Reflector over the given codec set.
	BuildReflector(cfg Config, codecs Codecs, ext any) Reflector
	// BuildDispatcher constructs a Dispatcher resolving root identifiers
	// against reg. reg may be nil, in which case every command fails with
	// object-not-found until a root scope is configured.
	BuildDispatcher(cfg Config, reg Registry, refl Reflector, ext any) Dispatcher
}
