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

package strategy_test

import (
	"reflect"
	"testing"

	"github.com/cockroachdb/errors"

	"dirpx.dev/ofx/apis"
	"dirpx.dev/ofx/codec"
	"dirpx.dev/ofx/config"
	"dirpx.dev/ofx/strategy"
)

// leafOwner exposes plain scalar fields.
type leafOwner struct {
	N int
	S string
}

// nestedOwner is reflectable itself, so it can appear as a field of another
// object.
type nestedOwner struct {
	Inner int
}

func (n *nestedOwner) ObjectID() string { return "nested" }
func (n *nestedOwner) Fields() []apis.Field {
	return []apis.Field{{Name: "inner", Ptr: &n.Inner}}
}

func TestCodecBinder_BindsLeafWithCodec(t *testing.T) {
	b := strategy.NewCodecBinder(codec.NewDefault())
	owner := &leafOwner{N: 7}

	m := apis.Member{Name: "n"}
	if !b.Bind(apis.Field{Name: "n", Ptr: &owner.N}, &m, config.DefaultConfig()) {
		t.Fatalf("Bind = false, want true for int field")
	}
	if m.Accessor == nil {
		t.Fatalf("Bind did not install an accessor")
	}

	if got := m.Accessor.Get(); got != "7" {
		t.Fatalf("Get = %q, want %q", got, "7")
	}
	if err := m.Accessor.Set("42"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if owner.N != 42 {
		t.Fatalf("field = %d after Set, want 42", owner.N)
	}
}

func TestCodecBinder_SetFailure_LeavesFieldUnchanged(t *testing.T) {
	b := strategy.NewCodecBinder(codec.NewDefault())
	owner := &leafOwner{N: 7}

	m := apis.Member{Name: "n"}
	if !b.Bind(apis.Field{Name: "n", Ptr: &owner.N}, &m, config.DefaultConfig()) {
		t.Fatalf("Bind failed")
	}

	err := m.Accessor.Set("not-a-number")
	if !errors.Is(err, codec.ErrConversion) {
		t.Fatalf("Set error = %v, want ErrConversion", err)
	}
	if owner.N != 7 {
		t.Fatalf("failed Set changed field to %d, want 7 untouched", owner.N)
	}
}

func TestCodecBinder_SkipsUncoveredType(t *testing.T) {
	b := strategy.NewCodecBinder(codec.NewDefault())
	ch := make(chan int)

	m := apis.Member{Name: "ch"}
	if b.Bind(apis.Field{Name: "ch", Ptr: &ch}, &m, config.DefaultConfig()) {
		t.Fatalf("Bind = true for type without codec")
	}
	if m.Accessor != nil {
		t.Fatalf("accessor installed for uncovered type")
	}
}

func TestCodecBinder_NilInputs(t *testing.T) {
	cfg := config.DefaultConfig()
	owner := &leafOwner{}

	var m apis.Member
	if strategy.NewCodecBinder(nil).Bind(apis.Field{Name: "n", Ptr: &owner.N}, &m, cfg) {
		t.Fatalf("Bind with nil codec set = true")
	}

	b := strategy.NewCodecBinder(codec.NewDefault())
	if b.Bind(apis.Field{Name: "n", Ptr: nil}, &m, cfg) {
		t.Fatalf("Bind with nil Ptr = true")
	}
	if b.Bind(apis.Field{Name: "n", Ptr: 7}, &m, cfg) {
		t.Fatalf("Bind with non-pointer Ptr = true")
	}
	if b.Bind(apis.Field{Name: "n", Ptr: (*int)(nil)}, &m, cfg) {
		t.Fatalf("Bind with typed nil Ptr = true")
	}
}

func TestNestedBinder_BindsReflectable(t *testing.T) {
	b := strategy.NewNestedBinder()
	n := &nestedOwner{}

	m := apis.Member{Name: "d"}
	if !b.Bind(apis.Field{Name: "d", Ptr: n}, &m, config.DefaultConfig()) {
		t.Fatalf("Bind = false for reflectable field")
	}
	if m.Nested != apis.Reflectable(n) {
		t.Fatalf("Nested does not point at the field instance")
	}
}

func TestNestedBinder_SkipsPlainField(t *testing.T) {
	b := strategy.NewNestedBinder()
	owner := &leafOwner{}

	m := apis.Member{Name: "n"}
	if b.Bind(apis.Field{Name: "n", Ptr: &owner.N}, &m, config.DefaultConfig()) {
		t.Fatalf("Bind = true for plain scalar field")
	}
	if m.Nested != nil {
		t.Fatalf("Nested set for plain scalar field")
	}
}

func TestBinders_Decorate_SameMember(t *testing.T) {
	// A reflectable field whose type also carries a codec must end up with
	// both capabilities on one member.
	cs := codec.NewDefault()
	n := &nestedOwner{Inner: 3}
	if err := cs.Register(
		// Leaf form is just the inner value's text.
		reflect.TypeOf(*n),
		codec.Of(
			func(v nestedOwner) string { return "inner" },
			func(s string) (nestedOwner, error) { return nestedOwner{}, nil },
		),
	); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	m := apis.Member{Name: "d"}
	f := apis.Field{Name: "d", Ptr: n}

	if !strategy.NewNestedBinder().Bind(f, &m, config.DefaultConfig()) {
		t.Fatalf("nested binder skipped the field")
	}
	if !strategy.NewCodecBinder(cs).Bind(f, &m, config.DefaultConfig()) {
		t.Fatalf("codec binder skipped the field")
	}

	if m.Nested == nil || m.Accessor == nil {
		t.Fatalf("member is not both navigable and leaf: nested=%v accessor=%v",
			m.Nested != nil, m.Accessor != nil)
	}
}
