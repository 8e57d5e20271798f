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

package dispatch

import (
	"fmt"
	"strings"
)

// Op is the operation keyword of a command: read a field's text form, or
// parse text and write it into a field. The set is intentionally closed;
// anything else in the operation position is a malformed command.
type Op int

const (
	// Get reads the addressed field and returns its text form.
	Get Op = iota
	// Set parses the command's value text and writes it into the addressed
	// field. A failed conversion leaves the field unchanged.
	Set
)

// String returns the canonical command keyword for the operation.
// For unknown or out-of-range values it returns a diagnostic form
// "Unknown(<n>)" and never panics, so corrupted values can still be
// surfaced safely in logs.
func (op Op) String() string {
	switch op {
	case Get:
		return "get"
	case Set:
		return "set"
	default:
		return fmt.Sprintf("Unknown(%d)", int(op))
	}
}

// ParseOp parses a command keyword into an Op. Matching is case-insensitive
// and surrounding whitespace is trimmed. Any other input is a non-nil error;
// callers must not rely on the returned Op in the error case.
func ParseOp(s string) (Op, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Get, fmt.Errorf("dispatch: empty operation")
	}

	switch strings.ToLower(trimmed) {
	case "get":
		return Get, nil
	case "set":
		return Set, nil
	default:
		return Get, fmt.Errorf("dispatch: unknown operation %q", s)
	}
}

// MustParseOp is like ParseOp but panics on invalid input. Intended for
// hard-coded keywords in code and tests, never for untrusted input.
func MustParseOp(s string) Op {
	op, err := ParseOp(s)
	if err != nil {
		panic(err)
	}
	return op
}

// MarshalText encodes Op as its canonical keyword. Unknown values are an
// error rather than a silently persisted "Unknown(...)" form.
func (op Op) MarshalText() ([]byte, error) {
	switch op {
	case Get, Set:
		return []byte(op.String()), nil
	default:
		return nil, fmt.Errorf("dispatch: cannot marshal unknown operation %d", int(op))
	}
}

// UnmarshalText decodes an Op from its keyword. It accepts the same tokens
// as ParseOp; on failure the receiver is left unchanged.
func (op *Op) UnmarshalText(text []byte) error {
	value, err := ParseOp(string(text))
	if err != nil {
		return err
	}
	*op = value
	return nil
}
