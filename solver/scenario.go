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

package solver

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"

	"qualcalc.org/go/calculus"
	"qualcalc.org/go/network"
)

var (
	// ErrSubclassSet is returned when a tractable subclass is configured
	// twice on the same solver.
	ErrSubclassSet = errors.New("tractable subclass already set")

	// ErrNotSubclass is returned for relation classes that cannot serve as
	// a tractable subclass.
	ErrNotSubclass = errors.New("not a valid subclass")
)

// SetTractableSubclass makes s split constraints into members of class
// rather than into base relations. Algebraic closure must decide
// consistency for networks labelled with class only, which is the case for
// tractable subclasses such as the ORD-Horn class of Allen's algebra.
//
// The class must contain every base relation and be closed under
// composition. It can be set only once.
func (s *Solver) SetTractableSubclass(class []calculus.Relation) error {
	if s.subclass != nil {
		return ErrSubclassSet
	}
	set := make(map[calculus.Relation]bool, len(class))
	for _, r := range class {
		if !r.IsEmpty() {
			set[r] = true
		}
	}
	for i := range s.cal.Size() {
		if !set[calculus.Single(i)] {
			return fmt.Errorf("%w: base relation %s missing", ErrNotSubclass, s.cal.Base(i))
		}
	}
	if missing := calculus.MissingRels(s.cal, class); len(missing) > 0 {
		return fmt.Errorf("%w: not closed under composition, %d relations missing such as %s",
			ErrNotSubclass, len(missing), s.cal.Format(missing[0]))
	}
	s.subclass = set
	s.parts = map[calculus.Relation][]calculus.Relation{}
	return nil
}

// isAtomic reports whether r needs no further splitting.
func (s *Solver) isAtomic(r calculus.Relation) bool {
	if s.subclass != nil {
		return s.subclass[r]
	}
	return r.Count() <= 1
}

// split returns the relations that r is split into during search: its base
// relations, or the maximal members of the subclass contained in r. The
// parts together cover r.
func (s *Solver) split(r calculus.Relation) []calculus.Relation {
	if s.subclass == nil {
		bases := r.Bases()
		a := make([]calculus.Relation, len(bases))
		for i, b := range bases {
			a[i] = calculus.Single(b)
		}
		return a
	}
	if p, ok := s.parts[r]; ok {
		return p
	}
	var cands []calculus.Relation
	for m := range s.subclass {
		if m.SubsetOf(r) {
			cands = append(cands, m)
		}
	}
	var parts []calculus.Relation
	for _, m := range cands {
		maximal := true
		for _, o := range cands {
			if o != m && m.SubsetOf(o) {
				maximal = false
				break
			}
		}
		if maximal {
			parts = append(parts, m)
		}
	}
	// Larger parts first, ties broken by value for determinism.
	slices.SortFunc(parts, func(a, b calculus.Relation) int {
		if c := cmp.Compare(b.Count(), a.Count()); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	s.parts[r] = parts
	return parts
}

// Scenario searches a refinement of n whose constraints are all atomic (base
// relations, or subclass members if a subclass is set) and that is
// algebraically closed. n itself is not modified. It reports false if no
// such refinement exists. The only error returned is that of ctx.
func (s *Solver) Scenario(ctx context.Context, n *network.Network) (*network.Network, bool, error) {
	s.mustMatch(n)
	work := n.Clone()
	if !s.EnforceAlgebraicClosure(work) {
		return nil, false, nil
	}
	ok, err := s.scenario(ctx, work)
	if err != nil || !ok {
		return nil, false, err
	}
	return work, true, nil
}

func (s *Solver) scenario(ctx context.Context, n *network.Network) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.counts.Nodes++
	var edge network.Edge
	found := false
	for _, e := range n.Edges() {
		if !s.isAtomic(n.Constraint(e.I, e.J)) {
			edge, found = e, true
			break
		}
	}
	if !found {
		return true, nil
	}
	snap := n.Snapshot()
	for _, part := range s.split(n.Constraint(edge.I, edge.J)) {
		_ = n.SetConstraint(edge.I, edge.J, part)
		if s.EnforceAlgebraicClosure(n) {
			ok, err := s.scenario(ctx, n)
			if ok || err != nil {
				return ok, err
			}
		}
		s.counts.Backtracks++
		n.Restore(snap)
	}
	return false, nil
}
