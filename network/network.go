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

// Package network implements qualitative constraint networks: a fixed set
// of variables with a relation of one calculus between every pair of them.
//
// Only the constraints (i, j) with i < j are stored. The constraint (j, i)
// is the converse of (i, j) and (i, i) is the identity relation.
package network

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"qualcalc.org/go/calculus"
)

// ErrIndex is returned for constraints outside of the network or on its
// diagonal.
var ErrIndex = errors.New("invalid constraint index")

// An Edge identifies the constraint between variables I and J, I < J.
type Edge struct {
	I, J int
}

// A Network is a constraint network over a single calculus.
//
// A Network is not safe for concurrent use.
type Network struct {
	cal   *calculus.Calculus
	size  int
	name  string
	edges []calculus.Relation
}

// New returns a network of size variables in which every constraint is
// the universal relation.
func New(size int, cal *calculus.Calculus) *Network {
	if size < 0 {
		panic(fmt.Sprintf("network: negative size %d", size))
	}
	n := &Network{
		cal:   cal,
		size:  size,
		edges: make([]calculus.Relation, size*(size-1)/2),
	}
	u := cal.Universal()
	for i := range n.edges {
		n.edges[i] = u
	}
	return n
}

func (n *Network) Size() int                     { return n.size }
func (n *Network) Calculus() *calculus.Calculus { return n.cal }
func (n *Network) Name() string                 { return n.name }
func (n *Network) SetName(name string)          { n.name = name }

// index returns the position of constraint (i, j), i < j, in n.edges.
func (n *Network) index(i, j int) int {
	return i*(2*n.size-i-1)/2 + j - i - 1
}

func (n *Network) check(i, j int) error {
	if i < 0 || j < 0 || i >= n.size || j >= n.size {
		return fmt.Errorf("%w (%d, %d) in network of size %d", ErrIndex, i, j, n.size)
	}
	if i == j {
		return fmt.Errorf("%w (%d, %d): diagonal constraints are fixed", ErrIndex, i, j)
	}
	return nil
}

// Constraint returns the relation between variables i and j. It panics if
// either index is out of range.
func (n *Network) Constraint(i, j int) calculus.Relation {
	switch {
	case i < 0 || j < 0 || i >= n.size || j >= n.size:
		panic(fmt.Sprintf("network: constraint (%d, %d) out of range [0, %d)", i, j, n.size))
	case i == j:
		return n.cal.Identity()
	case i < j:
		return n.edges[n.index(i, j)]
	}
	return n.cal.Converse(n.edges[n.index(j, i)])
}

// SetConstraint replaces the relation between i and j by r.
func (n *Network) SetConstraint(i, j int, r calculus.Relation) error {
	if err := n.check(i, j); err != nil {
		return err
	}
	if i > j {
		i, j, r = j, i, n.cal.Converse(r)
	}
	n.edges[n.index(i, j)] = r
	return nil
}

// AddConstraint intersects the relation between i and j with r.
func (n *Network) AddConstraint(i, j int, r calculus.Relation) error {
	if err := n.check(i, j); err != nil {
		return err
	}
	return n.SetConstraint(i, j, n.Constraint(i, j).Intersect(r))
}

// UnionConstraint adds the base relations of r to the relation between i
// and j.
func (n *Network) UnionConstraint(i, j int, r calculus.Relation) error {
	if err := n.check(i, j); err != nil {
		return err
	}
	return n.SetConstraint(i, j, n.Constraint(i, j).Union(r))
}

// Label returns the relation between i and j in textual form. It returns
// the empty string for indices outside the network.
func (n *Network) Label(i, j int) string {
	if i < 0 || j < 0 || i >= n.size || j >= n.size {
		return ""
	}
	return n.cal.Format(n.Constraint(i, j))
}

// SetLabel is like SetConstraint for a label in textual form.
func (n *Network) SetLabel(i, j int, label string) error {
	r, err := n.cal.ParseLabel(label)
	if err != nil {
		return err
	}
	return n.SetConstraint(i, j, r)
}

// AddLabel is like AddConstraint for a label in textual form.
func (n *Network) AddLabel(i, j int, label string) error {
	r, err := n.cal.ParseLabel(label)
	if err != nil {
		return err
	}
	return n.AddConstraint(i, j, r)
}

// Edges returns all stored constraints ordered by I, then J.
func (n *Network) Edges() []Edge {
	a := make([]Edge, 0, len(n.edges))
	for i := 0; i < n.size; i++ {
		for j := i + 1; j < n.size; j++ {
			a = append(a, Edge{i, j})
		}
	}
	return a
}

// FirstDisjunctive returns the first edge, in the order of Edges, whose
// relation holds more than one base relation.
func (n *Network) FirstDisjunctive() (e Edge, ok bool) {
	return n.NextDisjunctive(Edge{0, 0})
}

// NextDisjunctive is like FirstDisjunctive, but only considers edges
// after e.
func (n *Network) NextDisjunctive(e Edge) (next Edge, ok bool) {
	for i := e.I; i < n.size; i++ {
		j := i + 1
		if i == e.I && e.J >= j {
			j = e.J + 1
		}
		for ; j < n.size; j++ {
			if n.edges[n.index(i, j)].Count() > 1 {
				return Edge{i, j}, true
			}
		}
	}
	return Edge{}, false
}

// IsScenario reports whether every constraint is a single base relation.
func (n *Network) IsScenario() bool {
	for _, r := range n.edges {
		if !r.IsSingleton() {
			return false
		}
	}
	return true
}

// HasEmpty reports whether some constraint is the empty relation.
func (n *Network) HasEmpty() bool {
	return slices.Contains(n.edges, calculus.Empty)
}

// A Snapshot records every constraint of a network.
type Snapshot struct {
	edges []calculus.Relation
}

// Snapshot returns a copy of the constraints of n.
func (n *Network) Snapshot() Snapshot {
	return Snapshot{slices.Clone(n.edges)}
}

// Restore resets the constraints of n to those recorded in s, which must
// have been taken from a network of the same size.
func (n *Network) Restore(s Snapshot) {
	if len(s.edges) != len(n.edges) {
		panic("network: snapshot of a network with a different size")
	}
	copy(n.edges, s.edges)
}

// Clone returns a deep copy of n.
func (n *Network) Clone() *Network {
	c := *n
	c.edges = slices.Clone(n.edges)
	return &c
}

// Equal reports whether n and m have the same calculus, size and
// constraints. Names are not compared.
func (n *Network) Equal(m *Network) bool {
	return n.cal == m.cal && n.size == m.size && slices.Equal(n.edges, m.edges)
}

// Refines reports whether n is a proper refinement of m: every constraint
// of n is a subset of the one in m and at least one is a proper subset.
func (n *Network) Refines(m *Network) bool {
	if n.cal != m.cal || n.size != m.size {
		return false
	}
	proper := false
	for k, r := range n.edges {
		if !r.SubsetOf(m.edges[k]) {
			return false
		}
		if r != m.edges[k] {
			proper = true
		}
	}
	return proper
}

// String lists the constraints of n as "i j label" lines.
func (n *Network) String() string {
	var b strings.Builder
	for _, e := range n.Edges() {
		fmt.Fprintf(&b, "%d %d %s\n", e.I, e.J, n.Label(e.I, e.J))
	}
	return b.String()
}
