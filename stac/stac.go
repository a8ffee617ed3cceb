// Copyright 2018, RadiantBlue Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package stac assembles STAC collections and items for GLM L2 LCFA files
package stac

import (
	"github.com/jonboulle/clockwork"
	"github.com/venicegeo/goes-glm-stac/glm"
)

var clock = clockwork.NewRealClock()

// SetClock replaces the clock used for default timestamps. nil restores the
// real clock.
func SetClock(c clockwork.Clock) {
	if c == nil {
		c = clockwork.NewRealClock()
	}
	clock = c
}

// Opener opens a GLM netCDF file
type Opener func(path string) (glm.Dataset, error)

var openDataset Opener = glm.Open

// SetOpener replaces the function used to open source files. nil restores
// glm.Open.
func SetOpener(fn Opener) {
	if fn == nil {
		fn = glm.Open
	}
	openDataset = fn
}
