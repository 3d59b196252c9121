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

// Package stats holds counters for closure and search work.
package stats

import (
	"strings"
	"sync"
	"text/template"
)

// Counts holds counters for key events during closure and search.
type Counts struct {
	// Closure counters
	//
	// These are maintained by the solver.

	// Closures counts calls to enforce algebraic closure.
	Closures int64

	// Inconsistent counts closures that found an empty constraint.
	Inconsistent int64

	// Revisions counts evaluations of R_ik ∩ (R_ij ∘ R_jk).
	Revisions int64

	// Narrowings counts revisions that changed a constraint. A number of
	// Narrowings close to Revisions indicates weak propagation.
	Narrowings int64

	// Search counters

	// Nodes counts the search states that were entered.
	Nodes int64

	// Backtracks counts search states that were rolled back.
	Backtracks int64

	// Generalizations counts calls to the cross-network generalizer.
	Generalizations int64

	// MaxDepth is the deepest search state reached.
	MaxDepth int64
}

func (c *Counts) Add(other Counts) {
	c.Closures += other.Closures
	c.Inconsistent += other.Inconsistent
	c.Revisions += other.Revisions
	c.Narrowings += other.Narrowings

	c.Nodes += other.Nodes
	c.Backtracks += other.Backtracks
	c.Generalizations += other.Generalizations
	if other.MaxDepth > c.MaxDepth {
		c.MaxDepth = other.MaxDepth
	}
}

func (c Counts) Since(start Counts) Counts {
	c.Closures -= start.Closures
	c.Inconsistent -= start.Inconsistent
	c.Revisions -= start.Revisions
	c.Narrowings -= start.Narrowings

	c.Nodes -= start.Nodes
	c.Backtracks -= start.Backtracks
	c.Generalizations -= start.Generalizations

	// MaxDepth is a peak and is kept as is.
	return c
}

var stats = sync.OnceValue(func() *template.Template {
	return template.Must(template.New("stats").Parse(`{{"" -}}

Closures:     {{.Closures}}{{if .Inconsistent}}
Inconsistent: {{.Inconsistent}}{{end}}
Revisions:    {{.Revisions}}
Narrowings:   {{.Narrowings}}{{if .Nodes}}

Nodes:           {{.Nodes}}
Backtracks:      {{.Backtracks}}
Generalizations: {{.Generalizations}}
MaxDepth:        {{.MaxDepth}}{{end}}`))
})

func (s Counts) String() string {
	buf := &strings.Builder{}
	err := stats().Execute(buf, s)
	if err != nil {
		panic(err)
	}
	return buf.String()
}
