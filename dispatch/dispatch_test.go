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

package dispatch_test

import (
	"testing"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"dirpx.dev/ofx/apis"
	"dirpx.dev/ofx/codec"
	"dirpx.dev/ofx/config"
	"dirpx.dev/ofx/dispatch"
	"dirpx.dev/ofx/reflector"
	"dirpx.dev/ofx/registry"
	"dirpx.dev/ofx/strategy"
)

// entry is one nesting level below unit.
type entry struct {
	A int
	B string
}

func (e *entry) ObjectID() string { return "entry" }
func (e *entry) Fields() []apis.Field {
	return []apis.Field{
		{Name: "a", Ptr: &e.A},
		{Name: "b", Ptr: &e.B},
	}
}

// unit is the root object shape: a scalar, a nested entry, and a member that
// is deliberately not declared.
type unit struct {
	A int
	D entry

	NonReflectable string
}

func (u *unit) ObjectID() string { return "unit" }
func (u *unit) Fields() []apis.Field {
	return []apis.Field{
		{Name: "a", Ptr: &u.A},
		{Name: "d", Ptr: &u.D},
	}
}

// deep builds an arbitrarily nested chain for depth-limit tests.
type deep struct {
	Next *deep
	Leaf int
}

func (d *deep) ObjectID() string { return "deep" }
func (d *deep) Fields() []apis.Field {
	fields := []apis.Field{{Name: "leaf", Ptr: &d.Leaf}}
	if d.Next != nil {
		fields = append(fields, apis.Field{Name: "next", Ptr: d.Next})
	}
	return fields
}

func newDispatcher(t *testing.T, cfg apis.Config, objs map[string]apis.Reflectable) apis.Dispatcher {
	t.Helper()

	reg := registry.New(cfg)
	for id, obj := range objs {
		if err := reg.Register(id, obj); err != nil {
			t.Fatalf("register %q: %v", id, err)
		}
	}
	refl := reflector.New(
		cfg,
		strategy.NewNestedBinder(),
		strategy.NewCodecBinder(codec.NewDefault()),
	)
	return dispatch.New(cfg, reg, refl, zap.NewNop())
}

func newUnit() *unit {
	return &unit{
		A:              1,
		D:              entry{A: 2, B: "hello"},
		NonReflectable: "nonreflectable",
	}
}

func TestExecute_GetAndSet(t *testing.T) {
	u := newUnit()
	d := newDispatcher(t, config.DefaultConfig(), map[string]apis.Reflectable{"test_object": u})

	cases := []struct {
		cmd  string
		want string
	}{
		// Basic get/set for direct members.
		{"set test_object.a=42", "42"},
		{"get test_object.a", "42"},
		// Nested member access.
		{"set test_object.d.a=666", "666"},
		{"get test_object.d.a", "666"},
		// String member round trip.
		{"set test_object.d.b=hello_world", "hello_world"},
		{"get test_object.d.b", "hello_world"},
	}
	for _, tc := range cases {
		got, err := d.Execute(tc.cmd)
		if err != nil {
			t.Fatalf("Execute(%q) failed: %v", tc.cmd, err)
		}
		if got != tc.want {
			t.Fatalf("Execute(%q) = %q, want %q", tc.cmd, got, tc.want)
		}
	}

	// Sets must have written through to the instance.
	if u.A != 42 || u.D.A != 666 || u.D.B != "hello_world" {
		t.Fatalf("instance state = {a:%d d.a:%d d.b:%q}, want {42 666 hello_world}",
			u.A, u.D.A, u.D.B)
	}
}

func TestExecute_Failures(t *testing.T) {
	d := newDispatcher(t, config.DefaultConfig(), map[string]apis.Reflectable{"test_object": newUnit()})

	cases := []struct {
		name string
		cmd  string
		want error
	}{
		{"unknown object", "set invalid_object.a=42", dispatch.ErrObjectNotFound},
		{"unknown member", "set test_object.invalid=42", dispatch.ErrMemberNotFound},
		{"undeclared member", "set test_object.nonreflectable=42", dispatch.ErrMemberNotFound},
		{"missing value", "set test_object.a", dispatch.ErrMalformedCommand},
		{"unknown operation", "invalid test_object.a", dispatch.ErrMalformedCommand},
		{"empty command", "", dispatch.ErrMalformedCommand},
		{"operation only", "get", dispatch.ErrMalformedCommand},
		{"no path separator", "get test_object", dispatch.ErrMalformedCommand},
		{"empty root", "get .a", dispatch.ErrMalformedCommand},
		{"empty member", "get test_object.", dispatch.ErrMalformedCommand},
		{"descent into leaf", "get test_object.a.b", dispatch.ErrNotNavigable},
		{"navigable-only leaf", "get test_object.d", dispatch.ErrMemberNotFound},
	}
	for _, tc := range cases {
		got, err := d.Execute(tc.cmd)
		if !errors.Is(err, tc.want) {
			t.Fatalf("%s: Execute(%q) error = %v, want %v", tc.name, tc.cmd, err, tc.want)
		}
		if got != "" {
			t.Fatalf("%s: Execute(%q) = %q on failure, want \"\"", tc.name, tc.cmd, got)
		}
	}
}

func TestExecute_FailedSet_LeavesFieldUnchanged(t *testing.T) {
	u := newUnit()
	d := newDispatcher(t, config.DefaultConfig(), map[string]apis.Reflectable{"test_object": u})

	if _, err := d.Execute("set test_object.a=not_an_int"); !errors.Is(err, codec.ErrConversion) {
		t.Fatalf("Execute error = %v, want ErrConversion", err)
	}
	if u.A != 1 {
		t.Fatalf("failed set changed field to %d, want 1", u.A)
	}
}

func TestExecute_SetEmptyValue(t *testing.T) {
	u := newUnit()
	d := newDispatcher(t, config.DefaultConfig(), map[string]apis.Reflectable{"test_object": u})

	// "=" with nothing after it is a legitimate empty value for strings.
	got, err := d.Execute("set test_object.d.b=")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if got != "" {
		t.Fatalf("Execute = %q, want \"\"", got)
	}
	if u.D.B != "" {
		t.Fatalf("d.b = %q, want \"\"", u.D.B)
	}
}

func TestExecute_TrailingTokensIgnored(t *testing.T) {
	d := newDispatcher(t, config.DefaultConfig(), map[string]apis.Reflectable{"test_object": newUnit()})

	got, err := d.Execute("get test_object.a trailing garbage")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if got != "1" {
		t.Fatalf("Execute = %q, want %q", got, "1")
	}
}

func TestExecute_DepthLimit(t *testing.T) {
	// Build a 4-level chain and cap resolution at 2 segments.
	leaf := &deep{Leaf: 7}
	mid := &deep{Next: leaf}
	root := &deep{Next: mid}

	cfg := config.NewConfig(config.WithMaxDepth(2))
	d := newDispatcher(t, cfg, map[string]apis.Reflectable{"root": root})

	if got, err := d.Execute("get root.next.leaf"); err != nil || got != "0" {
		t.Fatalf("2-segment path: got %q err %v, want \"0\"", got, err)
	}
	if _, err := d.Execute("get root.next.next.leaf"); !errors.Is(err, dispatch.ErrPathTooDeep) {
		t.Fatalf("3-segment path error = %v, want ErrPathTooDeep", err)
	}
}

func TestExecute_NilScope(t *testing.T) {
	cfg := config.DefaultConfig()
	refl := reflector.New(cfg, strategy.NewCodecBinder(codec.NewDefault()))
	d := dispatch.New(cfg, nil, refl, nil)

	if _, err := d.Execute("get anything.a"); !errors.Is(err, dispatch.ErrObjectNotFound) {
		t.Fatalf("Execute with nil scope error = %v, want ErrObjectNotFound", err)
	}
}

func TestExecute_ValueMayContainDots(t *testing.T) {
	u := newUnit()
	d := newDispatcher(t, config.DefaultConfig(), map[string]apis.Reflectable{"test_object": u})

	// Everything after '=' is value text; dots in it are not path segments.
	got, err := d.Execute("set test_object.d.b=a.b.c")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if got != "a.b.c" || u.D.B != "a.b.c" {
		t.Fatalf("got %q, d.b = %q, want both %q", got, u.D.B, "a.b.c")
	}
}
