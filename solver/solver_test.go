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
	"context"
	"testing"

	"github.com/go-quicktest/qt"

	"qualcalc.org/go/calculus"
	"qualcalc.org/go/network"
)

type constraint struct {
	i, j  int
	label string
}

func makeNetwork(t *testing.T, c *calculus.Calculus, size int, cs ...constraint) *network.Network {
	t.Helper()
	n := network.New(size, c)
	for _, x := range cs {
		qt.Assert(t, qt.IsNil(n.SetLabel(x.i, x.j, x.label)))
	}
	return n
}

func TestEnforceAlgebraicClosure(t *testing.T) {
	testCases := []struct {
		name string
		cal  *calculus.Calculus
		size int
		in   []constraint
		ok   bool
		want []constraint
	}{{
		name: "PointTransitive",
		cal:  calculus.Point(),
		size: 3,
		in:   []constraint{{0, 1, "( < )"}, {1, 2, "( < = )"}},
		ok:   true,
		want: []constraint{{0, 1, "( < )"}, {0, 2, "( < )"}, {1, 2, "( < = )"}},
	}, {
		name: "PointCycle",
		cal:  calculus.Point(),
		size: 3,
		in:   []constraint{{0, 1, "( < )"}, {1, 2, "( < )"}, {2, 0, "( < )"}},
		ok:   false,
	}, {
		name: "PointEquality",
		cal:  calculus.Point(),
		size: 4,
		in:   []constraint{{0, 1, "( = )"}, {1, 2, "( < = )"}, {0, 2, "( = > )"}, {2, 3, "( > )"}},
		ok:   true,
		want: []constraint{
			{0, 1, "( = )"}, {0, 2, "( = )"}, {0, 3, "( > )"},
			{1, 2, "( = )"}, {1, 3, "( > )"}, {2, 3, "( > )"},
		},
	}, {
		name: "EmptyInput",
		cal:  calculus.Point(),
		size: 2,
		in:   []constraint{{0, 1, "( )"}},
		ok:   false,
	}, {
		name: "AllenChain",
		cal:  calculus.Allen(),
		size: 3,
		in:   []constraint{{0, 1, "( m )"}, {1, 2, "( d )"}},
		ok:   true,
		want: []constraint{{0, 1, "( m )"}, {0, 2, "( d o s )"}, {1, 2, "( d )"}},
	}, {
		name: "AllenInconsistent",
		cal:  calculus.Allen(),
		size: 3,
		in:   []constraint{{0, 1, "( d )"}, {1, 2, "( d )"}, {0, 2, "( di )"}},
		ok:   false,
	}}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			n := makeNetwork(t, tc.cal, tc.size, tc.in...)
			s := New(tc.cal)
			qt.Assert(t, qt.Equals(s.EnforceAlgebraicClosure(n), tc.ok))
			if !tc.ok {
				qt.Assert(t, qt.IsTrue(s.Stats().Inconsistent > 0))
				return
			}
			want := makeNetwork(t, tc.cal, tc.size, tc.want...)
			qt.Assert(t, qt.IsTrue(n.Equal(want)), qt.Commentf("got:\n%s\nwant:\n%s", n, want))

			// A closed network is a fixed point.
			again := n.Clone()
			qt.Assert(t, qt.IsTrue(s.EnforceAlgebraicClosure(again)))
			qt.Assert(t, qt.IsTrue(again.Equal(n)))
		})
	}
}

func TestMismatchedCalculus(t *testing.T) {
	s := New(calculus.Point())
	qt.Assert(t, qt.PanicMatches(func() {
		s.EnforceAlgebraicClosure(network.New(2, calculus.Allen()))
	}, `solver: network over calculus allen passed to solver for point`))
}

func TestScenario(t *testing.T) {
	c := calculus.Allen()
	n := makeNetwork(t, c, 4,
		constraint{0, 1, "( < m o )"},
		constraint{1, 2, "( d s f )"},
		constraint{2, 3, "( > mi )"},
	)
	orig := n.Clone()
	s := New(c)
	sc, ok, err := s.Scenario(context.Background(), n)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.IsTrue(n.Equal(orig)), qt.Commentf("input modified"))
	qt.Assert(t, qt.IsTrue(sc.IsScenario()))
	for _, e := range n.Edges() {
		qt.Assert(t, qt.IsTrue(sc.Constraint(e.I, e.J).SubsetOf(n.Constraint(e.I, e.J))))
	}
	qt.Assert(t, qt.IsTrue(s.EnforceAlgebraicClosure(sc.Clone())))

	bad := makeNetwork(t, c, 3,
		constraint{0, 1, "( < )"},
		constraint{1, 2, "( < )"},
		constraint{0, 2, "( > mi )"},
	)
	_, ok, err = s.Scenario(context.Background(), bad)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsFalse(ok))
}

func TestScenarioCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := New(calculus.Point())
	_, ok, err := s.Scenario(ctx, network.New(3, calculus.Point()))
	qt.Assert(t, qt.IsFalse(ok))
	qt.Assert(t, qt.ErrorIs(err, context.Canceled))
}

func TestTractableSubclass(t *testing.T) {
	c := calculus.Point()
	var all []calculus.Relation
	for r := calculus.Relation(1); r <= c.Universal(); r++ {
		all = append(all, r)
	}

	s := New(c)
	err := s.SetTractableSubclass(all[:1])
	qt.Assert(t, qt.ErrorMatches(err, `not a valid subclass: base relation = missing`))
	qt.Assert(t, qt.ErrorIs(err, ErrNotSubclass))

	singles := []calculus.Relation{calculus.Single(0), calculus.Single(1), calculus.Single(2)}
	err = s.SetTractableSubclass(singles)
	qt.Assert(t, qt.ErrorMatches(err,
		`not a valid subclass: not closed under composition, 1 relations missing such as \( < = > \)`))

	qt.Assert(t, qt.IsNil(s.SetTractableSubclass(all)))
	qt.Assert(t, qt.ErrorIs(s.SetTractableSubclass(all), ErrSubclassSet))

	// Every relation is atomic, so the closed network is the answer.
	n := makeNetwork(t, c, 3, constraint{0, 1, "( < = )"})
	sc, ok, err := s.Scenario(context.Background(), n)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.IsTrue(sc.Equal(n)))
}

func TestSplitIntoSubclass(t *testing.T) {
	c := calculus.Point()
	s := New(c)
	class := []calculus.Relation{
		c.MustParseLabel("( < )"),
		c.MustParseLabel("( = )"),
		c.MustParseLabel("( > )"),
		c.MustParseLabel("( < = )"),
		c.MustParseLabel("( = > )"),
		c.MustParseLabel("( < = > )"),
	}
	qt.Assert(t, qt.IsNil(s.SetTractableSubclass(class)))
	qt.Assert(t, qt.IsTrue(s.isAtomic(c.Universal())))
	qt.Assert(t, qt.IsFalse(s.isAtomic(c.MustParseLabel("( < > )"))))
	got := c.FormatAll(s.split(c.MustParseLabel("( < > )")))
	qt.Assert(t, qt.DeepEquals(got, []string{"( < )", "( > )"}))
}
