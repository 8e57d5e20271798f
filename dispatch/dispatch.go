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

// Package dispatch parses text commands and resolves their dotted paths to
// field accessors.
//
// Grammar: "<get|set> <id>.<member>[.<member>...][=<value>]". The leading
// identifier is resolved against a registry scope; remaining segments
// descend through nested reflectable fields; the final segment addresses a
// leaf accessor.
//
// Every failure is an expected, recoverable condition: callers receive a
// sentinel error (never a panic, never process termination), and the
// human-oriented detail of which object or member was missing goes to the
// dispatcher's side-channel logger only.
package dispatch

import (
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"dirpx.dev/ofx/apis"
	"dirpx.dev/ofx/config"
)

var (
	// ErrMalformedCommand indicates the command text does not match the
	// grammar: too few tokens, unknown operation, missing path separator, or
	// a set without '='.
	ErrMalformedCommand = errors.New("ofx(dispatch): malformed command")
	// ErrObjectNotFound indicates the root identifier has no registry entry.
	ErrObjectNotFound = errors.New("ofx(dispatch): object not found")
	// ErrMemberNotFound indicates a path segment names no reflected member.
	ErrMemberNotFound = errors.New("ofx(dispatch): member not found")
	// ErrNotNavigable indicates the path continues past a member that is not
	// itself reflectable.
	ErrNotNavigable = errors.New("ofx(dispatch): member is not navigable")
	// ErrPathTooDeep indicates the path exceeds Config.MaxDepth segments.
	ErrPathTooDeep = errors.New("ofx(dispatch): path exceeds depth limit")
)

// New constructs an apis.Dispatcher that resolves root identifiers against
// reg and reflects instances through refl. log carries failure diagnostics;
// nil means silent (zap.NewNop).
//
// reg may be nil, in which case every command fails with ErrObjectNotFound
// until the caller wires a real scope.
func New(cfg apis.Config, reg apis.Registry, refl apis.Reflector, log *zap.Logger) apis.Dispatcher {
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = config.DefaultMaxDepth
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &dispatcher{cfg: cfg, reg: reg, refl: refl, log: log}
}

// dispatcher is the default Dispatcher implementation. It holds no per
// command state; Execute is safe for repeated calls with arbitrary input.
type dispatcher struct {
	cfg  apis.Config
	reg  apis.Registry
	refl apis.Reflector
	log  *zap.Logger
}

// Ensure dispatcher implements apis.Dispatcher.
var _ apis.Dispatcher = (*dispatcher)(nil)

// command is one parsed line: operation, path split into segments, and the
// value text for sets (may legitimately be empty).
type command struct {
	op    Op
	root  string
	path  []string
	value string
}

// Execute parses cmd, resolves its path, and applies the operation.
func (d *dispatcher) Execute(cmd string) (string, error) {
	c, err := d.parse(cmd)
	if err != nil {
		d.log.Debug("command rejected", zap.String("cmd", cmd), zap.Error(err))
		return "", err
	}

	if d.reg == nil {
		d.log.Warn("no root scope configured", zap.String("id", c.root))
		return "", errors.Wrapf(ErrObjectNotFound, "id %q", c.root)
	}
	obj, ok := d.reg.Lookup(c.root)
	if !ok {
		d.log.Warn("object not found", zap.String("id", c.root))
		return "", errors.Wrapf(ErrObjectNotFound, "id %q", c.root)
	}

	// Descend through nested reflectable members, carrying the current
	// object; only the final segment addresses an accessor.
	for _, seg := range c.path[:len(c.path)-1] {
		m, err := d.member(obj, seg)
		if err != nil {
			return "", err
		}
		if m.Nested == nil {
			d.log.Warn("member not navigable", zap.String("member", seg))
			return "", errors.Wrapf(ErrNotNavigable, "member %q", seg)
		}
		obj = m.Nested
	}

	leaf := c.path[len(c.path)-1]
	m, err := d.member(obj, leaf)
	if err != nil {
		return "", err
	}
	if m.Accessor == nil {
		// Navigable-only member addressed as a leaf: no codec, no text form.
		d.log.Warn("member has no text form", zap.String("member", leaf))
		return "", errors.Wrapf(ErrMemberNotFound, "member %q has no text form", leaf)
	}

	switch c.op {
	case Set:
		if err := m.Accessor.Set(c.value); err != nil {
			d.log.Warn("set rejected",
				zap.String("member", leaf),
				zap.String("value", c.value),
				zap.Error(err),
			)
			return "", err
		}
		return c.value, nil
	default:
		return m.Accessor.Get(), nil
	}
}

// member reflects obj and looks up one path segment.
func (d *dispatcher) member(obj apis.Reflectable, name string) (apis.Member, error) {
	members, err := d.refl.Reflect(obj)
	if err != nil {
		d.log.Warn("reflection failed", zap.String("id", obj.ObjectID()), zap.Error(err))
		return apis.Member{}, err
	}
	m, ok := members.Lookup(name)
	if !ok {
		d.log.Warn("member not found", zap.String("member", name))
		return apis.Member{}, errors.Wrapf(ErrMemberNotFound, "member %q", name)
	}
	return m, nil
}

// parse tokenizes one command line and splits its path. Empty tokens are
// skipped; tokens after the path are ignored (there is no quoting, so a
// value cannot contain spaces).
func (d *dispatcher) parse(cmd string) (command, error) {
	tokens := strings.Fields(cmd)
	if len(tokens) < 2 {
		return command{}, errors.Wrap(ErrMalformedCommand, "expected: <get|set> <id>.<member>[=<value>]")
	}

	op, err := ParseOp(tokens[0])
	if err != nil {
		return command{}, errors.Wrapf(ErrMalformedCommand, "operation %q", tokens[0])
	}

	pathSpec := tokens[1]
	var value string
	if op == Set {
		eq := strings.IndexByte(pathSpec, '=')
		if eq < 0 {
			return command{}, errors.Wrap(ErrMalformedCommand, "set requires '=<value>'")
		}
		value = pathSpec[eq+1:]
		pathSpec = pathSpec[:eq]
	}

	root, rest, found := strings.Cut(pathSpec, ".")
	if !found || root == "" || rest == "" {
		return command{}, errors.Wrap(ErrMalformedCommand, "path requires '<id>.<member>'")
	}

	path := strings.Split(rest, ".")
	if len(path) > d.cfg.MaxDepth {
		return command{}, errors.Wrapf(ErrPathTooDeep, "%d segments (limit %d)", len(path), d.cfg.MaxDepth)
	}

	return command{op: op, root: root, path: path, value: value}, nil
}
