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
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
)

// ErrUnknownCalculus is returned by Lookup for names without a builtin.
var ErrUnknownCalculus = errors.New("unknown calculus")

var builtins = map[string]func() *Calculus{
	"point": Point,
	"allen": Allen,
}

// Lookup returns the builtin calculus with the given name.
func Lookup(name string) (*Calculus, error) {
	f, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (have %v)", ErrUnknownCalculus, name, Names())
	}
	return f(), nil
}

// Names lists the builtin calculi in alphabetical order.
func Names() []string {
	return slices.Sorted(maps.Keys(builtins))
}

// Point returns the point algebra with base relations <, = and >.
func Point() *Calculus { return point() }

var point = sync.OnceValue(func() *Calculus {
	all := []string{"<", "=", ">"}
	return mustNew("point", Tables{
		Bases:    all,
		Identity: "=",
		Converse: map[string]string{"<": ">", "=": "=", ">": "<"},
		Composition: map[[2]string][]string{
			{"<", "<"}: {"<"},
			{"<", "="}: {"<"},
			{"<", ">"}: all,
			{"=", "<"}: {"<"},
			{"=", "="}: {"="},
			{"=", ">"}: {">"},
			{">", "<"}: all,
			{">", "="}: {">"},
			{">", ">"}: {">"},
		},
	})
})

// Allen returns Allen's interval algebra with its thirteen base relations.
//
// The composition table is derived from the endpoint semantics of the
// relations: three intervals have at most six distinct endpoints, so all
// configurations are found by placing the intervals on six positions.
func Allen() *Calculus { return allen() }

var allen = sync.OnceValue(func() *Calculus {
	type interval struct{ start, end int }
	var ivs []interval
	for s := 0; s < 6; s++ {
		for e := s + 1; e < 6; e++ {
			ivs = append(ivs, interval{s, e})
		}
	}
	rel := func(x, y interval) string {
		switch {
		case x == y:
			return "="
		case x.end < y.start:
			return "<"
		case y.end < x.start:
			return ">"
		case x.end == y.start:
			return "m"
		case y.end == x.start:
			return "mi"
		case x.start == y.start:
			if x.end < y.end {
				return "s"
			}
			return "si"
		case x.end == y.end:
			if x.start > y.start {
				return "f"
			}
			return "fi"
		case x.start > y.start && x.end < y.end:
			return "d"
		case x.start < y.start && x.end > y.end:
			return "di"
		case x.start < y.start:
			return "o"
		}
		return "oi"
	}

	seen := map[[2]string]map[string]bool{}
	for _, x := range ivs {
		for _, y := range ivs {
			xy := rel(x, y)
			for _, z := range ivs {
				k := [2]string{xy, rel(y, z)}
				if seen[k] == nil {
					seen[k] = map[string]bool{}
				}
				seen[k][rel(x, z)] = true
			}
		}
	}
	comp := make(map[[2]string][]string, len(seen))
	for k, set := range seen {
		comp[k] = slices.Sorted(maps.Keys(set))
	}

	return mustNew("allen", Tables{
		Bases:    []string{"<", ">", "=", "d", "di", "f", "fi", "m", "mi", "o", "oi", "s", "si"},
		Identity: "=",
		Converse: map[string]string{
			"<": ">", ">": "<", "=": "=",
			"d": "di", "di": "d",
			"f": "fi", "fi": "f",
			"m": "mi", "mi": "m",
			"o": "oi", "oi": "o",
			"s": "si", "si": "s",
		},
		Composition: comp,
	})
})

func mustNew(name string, t Tables) *Calculus {
	c, err := New(name, t)
	if err != nil {
		panic(err)
	}
	return c
}
