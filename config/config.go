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

package config

import (
	"dirpx.dev/ofx/apis"
)

const (
	// DefaultMaxDepth represents the default for MaxDepth.
	// Eight path segments is sufficient for all practical schemas.
	DefaultMaxDepth = 8
	// DefaultAllowOverwrite represents the default for AllowOverwrite.
	// When true, a later registration under an existing identifier silently
	// replaces the earlier one (last-register-wins).
	DefaultAllowOverwrite = true
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	// Ensure MaxDepth is valid.
	if cfg.MaxDepth < 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		MaxDepth:       DefaultMaxDepth,
		AllowOverwrite: DefaultAllowOverwrite,
	}
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithMaxDepth sets the MaxDepth option.
// A negative value resets to the default.
func WithMaxDepth(max int) Option {
	return func(c *apis.Config) {
		if max < 0 {
			c.MaxDepth = DefaultMaxDepth
			return
		}
		c.MaxDepth = max
	}
}

// WithAllowOverwrite sets the AllowOverwrite option.
func WithAllowOverwrite(allow bool) Option {
	return func(c *apis.Config) {
		c.AllowOverwrite = allow
	}
}
