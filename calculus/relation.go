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

package calculus

import "math/bits"

// MaxBases is the maximum number of base relations a calculus may have.
const MaxBases = 64

// A Relation is a set of base relations of a single calculus. Bit i is set
// if the base relation with index i is part of the set.
//
// A Relation carries no reference to its calculus; it is only meaningful
// together with the calculus that produced it.
type Relation uint64

// Empty is the empty relation. A constraint labelled with Empty is
// unsatisfiable.
const Empty Relation = 0

// Single returns the relation holding only the base relation with index i.
func Single(i int) Relation {
	return 1 << uint(i)
}

// Has reports whether base relation i is part of r.
func (r Relation) Has(i int) bool {
	return r&Single(i) != 0
}

// Count returns the number of base relations in r.
func (r Relation) Count() int {
	return bits.OnesCount64(uint64(r))
}

// IsEmpty reports whether r is the empty relation.
func (r Relation) IsEmpty() bool { return r == Empty }

// IsSingleton reports whether r holds exactly one base relation.
func (r Relation) IsSingleton() bool {
	return r != 0 && r&(r-1) == 0
}

func (r Relation) Union(s Relation) Relation     { return r | s }
func (r Relation) Intersect(s Relation) Relation { return r & s }

// SubsetOf reports whether every base relation of r is also in s.
func (r Relation) SubsetOf(s Relation) bool {
	return r&^s == 0
}

// Bases returns the indices of the base relations in r in increasing order.
func (r Relation) Bases() []int {
	a := make([]int, 0, r.Count())
	for x := uint64(r); x != 0; x &= x - 1 {
		a = append(a, bits.TrailingZeros64(x))
	}
	return a
}
