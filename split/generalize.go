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

package split

import (
	"errors"
	"fmt"

	"qualcalc.org/go/calculus"
	"qualcalc.org/go/network"
)

var (
	// ErrNotPointLike is returned for calculi without the base relations
	// <, = and >.
	ErrNotPointLike = errors.New("calculus lacks base relations <, = and >")

	// ErrMismatch is returned for pairs of networks that differ in size or
	// calculus.
	ErrMismatch = errors.New("networks do not match")
)

// A MergeMode determines how the generalizer writes a relation into the
// constraint of the other network.
type MergeMode int

const (
	// MergeIntersect intersects the constraint with the relation.
	MergeIntersect MergeMode = iota

	// MergeUnion adds the relation to the constraint.
	MergeUnion

	// MergeReplace overwrites the constraint.
	MergeReplace
)

var mergeNames = []string{"intersect", "union", "replace"}

func (m MergeMode) String() string {
	if m < 0 || int(m) >= len(mergeNames) {
		return fmt.Sprintf("MergeMode(%d)", int(m))
	}
	return mergeNames[m]
}

// ParseMergeMode parses the name of a merge mode.
func ParseMergeMode(s string) (MergeMode, error) {
	for i, name := range mergeNames {
		if s == name {
			return MergeMode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown merge mode %q", s)
}

// pointRels holds the relations the generalizer needs from a point-like
// calculus.
type pointRels struct {
	lt, eq, gt int
	leq, geq   calculus.Relation // ( = < ) and ( = > )
}

func pointRelsOf(c *calculus.Calculus) (pointRels, error) {
	var p pointRels
	var ok [3]bool
	p.lt, ok[0] = c.Index("<")
	p.eq, ok[1] = c.Index("=")
	p.gt, ok[2] = c.Index(">")
	if !ok[0] || !ok[1] || !ok[2] {
		return p, fmt.Errorf("%w: %s", ErrNotPointLike, c)
	}
	p.leq = calculus.Single(p.lt).Union(calculus.Single(p.eq))
	p.geq = calculus.Single(p.gt).Union(calculus.Single(p.eq))
	return p, nil
}

// Generalize weakens b using the directions ruled out by a. For every
// constraint (i, j), i < j, of a that does not contain =:
//
//   - if it lacks <, ( = > ) is merged into b's constraint (i, j);
//   - if it lacks >, ( = < ) is merged into b's constraint (i, j).
//
// Generalize stops at the first empty constraint of a without visiting
// the remaining ones. It must be called in both directions to propagate
// information symmetrically.
func Generalize(a, b *network.Network, mode MergeMode) error {
	if err := checkPair(a, b); err != nil {
		return err
	}
	p, err := pointRelsOf(a.Calculus())
	if err != nil {
		return err
	}
	generalize(a, b, p, mode)
	return nil
}

func checkPair(a, b *network.Network) error {
	if a.Calculus() != b.Calculus() || a.Size() != b.Size() {
		return fmt.Errorf("%w: %d variables over %s vs %d variables over %s",
			ErrMismatch, a.Size(), a.Calculus(), b.Size(), b.Calculus())
	}
	return nil
}

func generalize(a, b *network.Network, p pointRels, mode MergeMode) {
	for _, e := range a.Edges() {
		r := a.Constraint(e.I, e.J)
		if r.IsEmpty() {
			return
		}
		if r.Has(p.eq) {
			continue
		}
		if !r.Has(p.lt) {
			merge(b, e, p.geq, mode)
		}
		if !r.Has(p.gt) {
			merge(b, e, p.leq, mode)
		}
	}
}

func merge(n *network.Network, e network.Edge, r calculus.Relation, mode MergeMode) {
	// Edges come from a network of the same size and are valid.
	switch mode {
	case MergeIntersect:
		_ = n.AddConstraint(e.I, e.J, r)
	case MergeUnion:
		_ = n.UnionConstraint(e.I, e.J, r)
	case MergeReplace:
		_ = n.SetConstraint(e.I, e.J, r)
	default:
		panic(fmt.Sprintf("split: invalid %v", mode))
	}
}
