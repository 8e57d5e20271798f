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

package config_test

import (
	"testing"

	"dirpx.dev/ofx/config"
)

func TestDefaultConfigValues(t *testing.T) {
	got := config.DefaultConfig()

	if got.MaxDepth != config.DefaultMaxDepth {
		t.Fatalf("MaxDepth = %d, want %d", got.MaxDepth, config.DefaultMaxDepth)
	}
	if got.AllowOverwrite != config.DefaultAllowOverwrite {
		t.Fatalf("AllowOverwrite = %v, want %v", got.AllowOverwrite, config.DefaultAllowOverwrite)
	}
}

func TestNewConfig_NoOptions_EqualsDefault(t *testing.T) {
	def := config.DefaultConfig()
	got := config.NewConfig()
	if got != def {
		t.Fatalf("NewConfig() = %+v, want default %+v", got, def)
	}
}

func TestWithMaxDepth_Positive(t *testing.T) {
	c := config.NewConfig(config.WithMaxDepth(3))
	if c.MaxDepth != 3 {
		t.Fatalf("MaxDepth = %d, want 3", c.MaxDepth)
	}
}

func TestWithMaxDepth_Zero_Allowed(t *testing.T) {
	c := config.NewConfig(config.WithMaxDepth(0))
	if c.MaxDepth != 0 {
		t.Fatalf("MaxDepth = %d, want 0", c.MaxDepth)
	}
}

func TestWithMaxDepth_Negative_ResetsToDefault(t *testing.T) {
	c := config.NewConfig(config.WithMaxDepth(-1))
	if c.MaxDepth != config.DefaultMaxDepth {
		t.Fatalf("MaxDepth = %d, want default %d", c.MaxDepth, config.DefaultMaxDepth)
	}
}

func TestWithAllowOverwrite(t *testing.T) {
	c := config.NewConfig(config.WithAllowOverwrite(false))
	if c.AllowOverwrite {
		t.Fatalf("AllowOverwrite = %v, want false", c.AllowOverwrite)
	}

	c2 := config.NewConfig(config.WithAllowOverwrite(true))
	if !c2.AllowOverwrite {
		t.Fatalf("AllowOverwrite = %v, want true", c2.AllowOverwrite)
	}
}

func TestNewConfig_OptionsApplyInOrder(t *testing.T) {
	c := config.NewConfig(
		config.WithMaxDepth(2),
		config.WithMaxDepth(5),
	)
	if c.MaxDepth != 5 {
		t.Fatalf("MaxDepth = %d, want 5 (last option wins)", c.MaxDepth)
	}
}
