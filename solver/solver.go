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

// Package solver enforces algebraic closure on constraint networks and
// searches for consistent scenarios.
//
// Algebraic closure follows the weighted queue algorithm of
//
//	Peter van Beek, Dennis W. Manchak:
//	The Design and an Experimental Analysis of Algorithms for Temporal
//	Reasoning. Journal of Artificial Intelligence Research 4, 1-18, 1996.
package solver

import (
	"fmt"

	"qualcalc.org/go/calculus"
	"qualcalc.org/go/internal/qcdebug"
	"qualcalc.org/go/internal/qclog"
	"qualcalc.org/go/network"
	"qualcalc.org/go/stats"
)

// A Solver reasons about networks of a single calculus.
//
// A Solver is not safe for concurrent use; use one Solver per goroutine.
type Solver struct {
	cal *calculus.Calculus

	// subclass is the configured tractable subclass, if any; parts caches
	// how relations are split into members of it.
	subclass map[calculus.Relation]bool
	parts    map[calculus.Relation][]calculus.Relation

	counts stats.Counts
	log    *qclog.Logger
	queue  edgeQueue
}

// New returns a solver for networks over cal. Closure tracing is enabled
// through QCALC_DEBUG=logclosure=N.
func New(cal *calculus.Calculus) *Solver {
	s := &Solver{cal: cal}
	if qcdebug.Init() == nil && qcdebug.Flags.LogClosure > 0 {
		s.log = &qclog.Logger{Level: qcdebug.Flags.LogClosure}
	}
	return s
}

// Calculus returns the calculus of the solver.
func (s *Solver) Calculus() *calculus.Calculus { return s.cal }

// Stats returns the counters accumulated by s.
func (s *Solver) Stats() stats.Counts { return s.counts }

// SetLogger sets the logger used for closure tracing; nil disables it.
func (s *Solver) SetLogger(l *qclog.Logger) { s.log = l }

func (s *Solver) mustMatch(n *network.Network) {
	if n.Calculus() != s.cal {
		panic(fmt.Sprintf("solver: network over calculus %s passed to solver for %s",
			n.Calculus(), s.cal))
	}
}

// EnforceAlgebraicClosure narrows the constraints of n until, for all
// variables i, j and k, R_ik ⊆ R_ij ∘ R_jk. It reports false as soon as a
// constraint becomes empty; n is then left partially narrowed.
//
// It panics if n is not over the calculus of s.
func (s *Solver) EnforceAlgebraicClosure(n *network.Network) bool {
	s.mustMatch(n)
	s.counts.Closures++
	if n.HasEmpty() {
		s.counts.Inconsistent++
		s.log.Logf(1, "closure: network %q has an empty constraint", n.Name())
		return false
	}

	size := n.Size()
	q := &s.queue
	q.reset(size, s.cal.Size())
	for _, e := range n.Edges() {
		q.push(e, n.Constraint(e.I, e.J).Count())
	}

	for q.len > 0 {
		e := q.pop()
		i, j := e.I, e.J
		rij := n.Constraint(i, j)
		for k := 0; k < size; k++ {
			if k == i || k == j {
				continue
			}
			if !s.revise(n, i, k, rij, n.Constraint(j, k)) {
				return false
			}
			if !s.revise(n, k, j, n.Constraint(k, i), rij) {
				return false
			}
		}
	}
	return true
}

// revise sets R_xy to R_xy ∩ (a ∘ b) and queues (x, y) if it changed.
func (s *Solver) revise(n *network.Network, x, y int, a, b calculus.Relation) bool {
	s.counts.Revisions++
	old := n.Constraint(x, y)
	r := old.Intersect(s.cal.Compose(a, b))
	if r == old {
		return true
	}
	s.counts.Narrowings++
	// Indices are valid by construction.
	_ = n.SetConstraint(x, y, r)
	if s.log.Enabled(2) {
		s.log.Logf(2, "closure: (%d, %d) %s -> %s", x, y, s.cal.Format(old), s.cal.Format(r))
	}
	if r.IsEmpty() {
		s.counts.Inconsistent++
		s.log.Logf(1, "closure: (%d, %d) became empty", x, y)
		return false
	}
	s.queue.push(network.Edge{I: x, J: y}, r.Count())
	return true
}
