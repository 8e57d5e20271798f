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

// Package ofx provides a global, process-wide object introspection and
// mutation service.
//
// ofx is responsible for making live Go objects addressable by text: an
// object registers under a string identifier, declares its fields, and from
// that point any declared field — including fields of nested objects — can
// be read or written through a one-line text command such as:
//
//	set test_object.d.a=666
//	get test_object.d.b
//
// This is the classic debug-console / remote-tweak facility: operators,
// test harnesses, and embedded consoles poke at a running process's state
// without the process compiling in a bespoke command handler per field.
//
// # Design
//
// The core of ofx is a read-mostly global snapshot (state). The snapshot
// holds:
//
//   - Config: rules that bound command resolution (maximum path depth,
//     whether re-registering an identifier displaces the previous holder).
//
//   - Codecs: a process-wide mapping from leaf Go types to text codecs
//     (encode a value to text, decode text into a value). Scalar types are
//     covered out of the box; custom leaf types can be added at runtime
//     (RegisterCodec).
//
//   - Hub: per-type object registries. Each registry maps string
//     identifiers to live object instances of one root type. The hub is
//     created once and never replaced, so registrations survive every
//     reconfiguration.
//
//   - Reflector: a read-only object that answers "what members does this
//     object expose?". It runs a chain of binder strategies over the
//     object's declared fields: a field that is itself reflectable becomes
//     navigable, a field with a registered codec becomes a text leaf, and
//     a field can be both.
//
//   - Dispatcher: parses command text, resolves the dotted path through
//     the registry and reflector, and applies the get or set.
//
//   - Builder: a pluggable factory that constructs Codecs, Hub, Reflector
//     and Dispatcher instances for a given Config (and optional extension
//     data).
//
// All of these live inside a single immutable struct called state. The
// package holds an atomic pointer to the current state. Readers load that
// pointer, use it, and never mutate it. Writers build a brand-new state and
// atomically swap it in. Command execution is therefore lock-free on the
// hot path:
//
//	out := ofx.ParseAndExecute("set test_object.a=42")
//
// and concurrent callers always see a consistent snapshot.
//
// # Global API
//
// The package exposes three groups of operations:
//
//  1. Read helpers:
//
//     Execute(cmd string) (string, error)
//     ParseAndExecute(cmd string) string
//     Codecs() apis.Codecs
//     Hub() apis.Hub
//     Reflector() apis.Reflector
//     Dispatcher() apis.Dispatcher
//
//     These are safe for concurrent use without additional locking. They
//     always read from the latest published snapshot. ParseAndExecute
//     collapses every failure to the empty string; Execute keeps failure
//     and empty-but-successful results distinct.
//
//  2. Mutation helpers:
//
//     Attach(obj object.Object, id string) error
//     RegisterCodec(t reflect.Type, c apis.Codec) error
//     SetConfig(cfg apis.Config)
//     SetBuilder(b apis.Builder)
//     SetExt(ext T)
//     SetCodecs(cs apis.Codecs)
//     SetDispatcher(d apis.Dispatcher)
//     SetRoot(t reflect.Type)
//     PinCodecs() / UnpinCodecs()
//     PinDispatcher() / UnpinDispatcher()
//     SetAll(...)
//
//     Each of these acquires an internal build lock, derives a new
//     snapshot (rebuilding or reusing layers as needed), and then
//     atomically publishes that snapshot.
//
//     Semantics in short:
//
//     - Config affects resolution rules. Calling SetConfig() may trigger
//     a rebuild of Codecs and/or Dispatcher, unless they are explicitly
//     "pinned". The Hub is never rebuilt.
//
//     - Builder controls how the layers are constructed. Swapping the
//     Builder lets you replace binder strategies or command grammar at
//     runtime.
//
//     - Ext is an opaque extension payload. ofx does not interpret it; it
//     is passed down to the Builder on each rebuild. The default builder
//     treats a *zap.Logger ext as the dispatcher's diagnostic logger.
//
//     - SetRoot(t) selects which per-type registry scope the dispatcher
//     resolves root identifiers against. A dispatcher serves exactly one
//     scope; switching root types swaps the dispatcher, not the data.
//
//     - SetCodecs() / SetDispatcher() directly overwrite the current
//     layer in the snapshot and "pin" it. A pinned layer is not rebuilt
//     automatically until the matching Unpin call.
//
//     - SetAll(...) is the "hard reset" API, mainly used by tests to get
//     a clean deterministic state between cases.
//
//  3. Introspection:
//
//     Config() apis.Config
//     Root() reflect.Type
//     ExtAs[T]() (T, bool)
//     IsCodecsPinned() / IsDispatcherPinned()
//     // plus Codecs().Entries(), Hub().Scopes(), etc.
//
// # Concurrency model
//
// Reads are wait-free: they load the current *state atomically and never
// take locks. The layers inside a published state must themselves be
// concurrency-safe for reads; the bundled implementations are.
//
// Writes take a short build mutex, assemble a brand-new state struct, and
// publish it via an atomic pointer swap. This gives the calling binary a
// predictable "last write wins" behavior without forcing per-command
// locking.
//
// Field access itself is not synchronized against the owning object's own
// goroutines: a set writes through the registered field pointer directly.
// Objects whose fields are mutated concurrently by their own code need
// their own discipline, exactly as they would for any other writer.
//
// # Object model
//
// An addressable object embeds object.Handle and declares its fields:
//
//	type Record struct {
//		object.Handle
//		A int
//		B string
//	}
//
//	func (r *Record) Fields() []apis.Field {
//		return []apis.Field{
//			{Name: "a", Ptr: &r.A},
//			{Name: "b", Ptr: &r.B},
//		}
//	}
//
// Attach validates the declaration against the current codec set, registers
// the object, and arms the handle; Rename moves it to a new identifier and
// Release withdraws it. Declared fields that are neither codec-covered nor
// reflectable are rejected at Attach time, so a malformed declaration
// surfaces once, at registration, rather than per command.
//
// # Scope
//
// ofx is intentionally small. It does not try to be an RPC layer, a
// scripting language, or a persistence format. It only solves one job:
//
//	"Given a string identifier and a dotted field path, read or write
//	 that field's value as text on a live object."
//
// Everything else (transport, auth, command history, batching) belongs to
// higher layers.
package ofx
