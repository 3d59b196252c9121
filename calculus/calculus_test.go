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

import (
	"testing"

	"github.com/go-quicktest/qt"
	"github.com/google/go-cmp/cmp"
)

func TestParseFormat(t *testing.T) {
	c := Allen()
	testCases := []struct {
		in   string
		want string
		err  string
	}{{
		in:   "( < d m o s )",
		want: "( < d m o s )",
	}, {
		in:   "(s < d m)",
		want: "( < d m s )",
	}, {
		in:   "(< d s m d)",
		want: "( < d m s )",
	}, {
		in:   "  ( )  ",
		want: "( )",
	}, {
		in:   "()",
		want: "( )",
	}, {
		in:   "oi mi",
		want: "( mi oi )",
	}, {
		in:  "( < x )",
		err: `unknown base relation "x" in calculus allen`,
	}, {
		in:  "( < d",
		err: `label "\( < d": missing closing parenthesis`,
	}}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			r, err := c.ParseLabel(tc.in)
			if tc.err != "" {
				qt.Assert(t, qt.ErrorMatches(err, tc.err))
				return
			}
			qt.Assert(t, qt.IsNil(err))
			qt.Assert(t, qt.Equals(c.Format(r), tc.want))
		})
	}
}

func TestParseUnknownIs(t *testing.T) {
	_, err := Point().ParseLabel("( < d )")
	qt.Assert(t, qt.ErrorIs(err, ErrUnknownRelation))
}

func TestRelationSet(t *testing.T) {
	c := Point()
	lt := c.MustParseLabel("( < )")
	le := c.MustParseLabel("( < = )")
	qt.Assert(t, qt.IsTrue(lt.IsSingleton()))
	qt.Assert(t, qt.IsFalse(le.IsSingleton()))
	qt.Assert(t, qt.IsFalse(Empty.IsSingleton()))
	qt.Assert(t, qt.IsTrue(lt.SubsetOf(le)))
	qt.Assert(t, qt.IsFalse(le.SubsetOf(lt)))
	qt.Assert(t, qt.Equals(le.Count(), 2))
	qt.Assert(t, qt.DeepEquals(le.Bases(), []int{0, 1}))
	qt.Assert(t, qt.Equals(le.Intersect(c.MustParseLabel("( = > )")), c.Identity()))
	qt.Assert(t, qt.Equals(lt.Union(c.MustParseLabel("( > )")).Count(), 2))
}

func TestPointTables(t *testing.T) {
	c := Point()
	qt.Assert(t, qt.DeepEquals(c.Bases(), []string{"<", "=", ">"}))
	qt.Assert(t, qt.Equals(c.Format(c.Universal()), "( < = > )"))

	testCases := []struct {
		a, b, want string
	}{
		{"( < )", "( < )", "( < )"},
		{"( < )", "( > )", "( < = > )"},
		{"( < = )", "( < = )", "( < = )"},
		{"( = )", "( > )", "( > )"},
		{"( < = )", "( = > )", "( < = > )"},
		{"( )", "( < )", "( )"},
	}
	for _, tc := range testCases {
		got, err := c.ComposeLabels(tc.a, tc.b)
		qt.Assert(t, qt.IsNil(err))
		qt.Check(t, qt.Equals(got, tc.want), qt.Commentf("%s ∘ %s", tc.a, tc.b))
	}

	conv, err := c.ConverseLabel("( < = )")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(conv, "( = > )"))
}

func TestAllenTables(t *testing.T) {
	c := Allen()
	qt.Assert(t, qt.Equals(c.Size(), 13))
	qt.Assert(t, qt.Equals(c.Format(c.Universal()),
		"( < = > d di f fi m mi o oi s si )"))

	testCases := []struct {
		a, b, want string
	}{
		{"d", "d", "( d )"},
		{"o", "o", "( < m o )"},
		{"m", "m", "( < )"},
		{"<", ">", "( < = > d di f fi m mi o oi s si )"},
		{"s", "si", "( = s si )"},
		{"d", "di", "( < = > d di f fi m mi o oi s si )"},
		{"=", "oi", "( oi )"},
	}
	for _, tc := range testCases {
		got, err := c.ComposeLabels(tc.a, tc.b)
		qt.Assert(t, qt.IsNil(err))
		qt.Check(t, qt.Equals(got, tc.want), qt.Commentf("%s ∘ %s", tc.a, tc.b))
	}

	// Composition and converse interact as in every relation algebra:
	// (a ∘ b)˘ = b˘ ∘ a˘.
	for i := range c.Size() {
		for j := range c.Size() {
			a, b := Single(i), Single(j)
			lhs := c.Converse(c.Compose(a, b))
			rhs := c.Compose(c.Converse(b), c.Converse(a))
			qt.Assert(t, qt.Equals(lhs, rhs))
		}
	}
}

func TestNewErrors(t *testing.T) {
	testCases := []struct {
		name   string
		tables Tables
		err    string
	}{{
		name:   "empty",
		tables: Tables{},
		err:    `invalid calculus empty: 0 base relations, want 1 to 64`,
	}, {
		name: "noidentity",
		tables: Tables{
			Bases:    []string{"a"},
			Identity: "b",
		},
		err: `invalid calculus noidentity: identity "b" is not a base relation`,
	}, {
		name: "notinvolution",
		tables: Tables{
			Bases:    []string{"a", "b", "c"},
			Identity: "a",
			Converse: map[string]string{"a": "b", "b": "c", "c": "a"},
		},
		err: `(?s)invalid calculus notinvolution: .*converse is not an involution at "a".*`,
	}, {
		name: "incomplete",
		tables: Tables{
			Bases:       []string{"a"},
			Identity:    "a",
			Converse:    map[string]string{"a": "a"},
			Composition: map[[2]string][]string{},
		},
		err: `invalid calculus incomplete: no composition for "a":"a"`,
	}}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.name, tc.tables)
			qt.Assert(t, qt.ErrorMatches(err, tc.err))
			qt.Assert(t, qt.ErrorIs(err, ErrInvalidCalculus))
		})
	}
}

func TestLookup(t *testing.T) {
	c, err := Lookup("allen")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(c, Allen()))

	_, err = Lookup("rcc8")
	qt.Assert(t, qt.ErrorIs(err, ErrUnknownCalculus))

	if diff := cmp.Diff([]string{"allen", "point"}, Names()); diff != "" {
		t.Errorf("Names mismatch (-want +got):\n%s", diff)
	}
}
