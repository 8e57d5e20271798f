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

package registry_test

import (
	"reflect"
	"runtime"
	"sync"
	"testing"

	"github.com/spf13/cast"

	"dirpx.dev/ofx/apis"
	"dirpx.dev/ofx/config"
	"dirpx.dev/ofx/registry"
)

// TestConcurrentRegisterAndLookup verifies that Register/Lookup/Entries/Count
// are race-free and consistent under concurrent use.
func TestConcurrentRegisterAndLookup(t *testing.T) {
	reg := registry.New(config.DefaultConfig())

	ids := make([]string, 10)
	objs := make([]*probe, 10)
	for i := range ids {
		ids[i] = "p" + cast.ToString(i)
		objs[i] = &probe{id: ids[i]}
	}

	// Register once (sequential) to establish baseline.
	for i, id := range ids {
		if err := reg.Register(id, objs[i]); err != nil {
			t.Fatalf("register %s: %v", id, err)
		}
	}

	wg := sync.WaitGroup{}
	workers := runtime.GOMAXPROCS(0) * 4

	// Readers
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < 5000; i++ {
				id := ids[i%len(ids)]
				if got, ok := reg.Lookup(id); !ok || got == nil {
					t.Errorf("lookup failed for %s: ok=%v", id, ok)
					return
				}
				_ = reg.Count()
				_ = reg.Entries()
			}
		}()
	}

	// Writers (idempotent re-register)
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(n int) {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				j := (i + n) % len(ids)
				_ = reg.Register(ids[j], objs[j]) // must be safe & idempotent
			}
		}(w)
	}

	wg.Wait()

	// Final consistency checks.
	if reg.Count() != len(ids) {
		t.Fatalf("count mismatch: got %d want %d", reg.Count(), len(ids))
	}
	got := map[string]apis.Reflectable{}
	for _, e := range reg.Entries() {
		got[e.ID] = e.Object
	}
	for i, id := range ids {
		if got[id] != apis.Reflectable(objs[i]) {
			t.Fatalf("entry mismatch for %s", id)
		}
	}
}

// TestConcurrentHubScopeCreation hammers For() from many goroutines and
// checks that every caller receives the same scope registry.
func TestConcurrentHubScopeCreation(t *testing.T) {
	h := registry.NewHub(config.DefaultConfig())
	pt := reflect.TypeOf(probe{})

	workers := runtime.GOMAXPROCS(0) * 4
	out := make([]apis.Registry, workers)
	wg := sync.WaitGroup{}

	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(n int) {
			defer wg.Done()
			out[n] = h.For(pt)
		}(w)
	}
	wg.Wait()

	for n := 1; n < workers; n++ {
		if out[n] != out[0] {
			t.Fatalf("worker %d received a different scope", n)
		}
	}
	if len(h.Scopes()) != 1 {
		t.Fatalf("Scopes len = %d, want 1", len(h.Scopes()))
	}
}

// TestResetSnapshot ensures Reset is safe and Entries returns a stable snapshot.
func TestResetSnapshot(t *testing.T) {
	reg := registry.New(config.DefaultConfig())

	_ = reg.Register("a", &probe{id: "a"})
	_ = reg.Register("b", &probe{id: "b"})

	snap := reg.Entries() // snapshot copy expected
	reg.Reset()

	// After Reset, Count() should be 0, but previous snapshot must still be usable.
	if reg.Count() != 0 {
		t.Fatalf("count after reset: got %d want 0", reg.Count())
	}
	if len(snap) != 2 {
		t.Fatalf("snapshot length changed unexpectedly: %d", len(snap))
	}
	// sanity
	if snap[0].Object == nil || snap[1].Object == nil {
		t.Fatalf("snapshot contents invalid after reset")
	}
}

// This ensures the interfaces are satisfied; not a test but a compile-time check.
var (
	_ apis.Registry = registry.New(config.DefaultConfig())
	_ apis.Hub      = registry.NewHub(config.DefaultConfig())
)
