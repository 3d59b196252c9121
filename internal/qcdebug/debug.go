// Copyright 2026 Qualcalc Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package qcdebug

import (
	"sync"

	"qualcalc.org/go/internal/envflag"
)

// Flags holds the set of QCALC_DEBUG flags. It is initialized by Init.
var Flags Config

// Config holds the set of known QCALC_DEBUG flags.
//
// When adding, deleting, or modifying entries below,
// update the environment help of cmd/qcalc/cmd as well.
type Config struct {
	// LogSearch sets the log level for the refinement search.
	//
	//	0: no logging
	//	1: log every search state
	LogSearch int

	// LogClosure sets the log level for algebraic closure.
	//
	//	0: no logging
	//	1: log inconsistencies
	//	2: also log every narrowed constraint
	LogClosure int

	// Strict verifies every successful refinement search by closing both
	// resulting scenarios once more.
	Strict bool

	// Strategy is the default branching strategy of the refinement search.
	Strategy string `envflag:"default:firstedge,oneof:firstedge|alledges"`

	// Merge is the default way the cross-network generalizer writes into
	// the other network.
	Merge string `envflag:"default:intersect,oneof:intersect|union|replace"`
}

// Init initializes Flags. Like its counterpart in the command line tool,
// it reports malformed input as an error rather than panicking in an init
// function.
func Init() error {
	return initOnce()
}

var initOnce = sync.OnceValue(func() error {
	return envflag.Init(&Flags, "QCALC_DEBUG")
})
