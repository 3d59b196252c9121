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

package csp

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/go-quicktest/qt"
	"github.com/google/go-cmp/cmp"

	"qualcalc.org/go/calculus"
	"qualcalc.org/go/network"
)

const twoNetworks = `
# A chain and a cycle.
2 #chain
0 1 ( < )
1 2 ( < = )
0 1 ( < = )
.

1
1 0 ( > )
.
`

func TestDecode(t *testing.T) {
	d := NewDecoder("in.csp", strings.NewReader(twoNetworks), calculus.Point())

	n, err := d.Decode()
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(n.Name(), "chain"))
	qt.Assert(t, qt.Equals(n.Size(), 3))
	qt.Assert(t, qt.Equals(n.Label(0, 1), "( < )"))
	qt.Assert(t, qt.Equals(n.Label(1, 2), "( < = )"))
	qt.Assert(t, qt.Equals(n.Label(0, 2), "( < = > )"))

	n, err = d.Decode()
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(n.Name(), ""))
	qt.Assert(t, qt.Equals(n.Label(0, 1), "( < )"))

	_, err = d.Decode()
	qt.Assert(t, qt.Equals(err, io.EOF))
	_, err = d.Decode()
	qt.Assert(t, qt.Equals(err, io.EOF))
}

func TestDecodeErrors(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		err  string
	}{{
		name: "Header",
		in:   "x\n.\n",
		err:  `in.csp:1: syntax error: invalid header "x"`,
	}, {
		name: "Unterminated",
		in:   "1 #a\n0 1 ( < )\n",
		err:  `in.csp:2: syntax error: network "a" not terminated by "."`,
	}, {
		name: "ShortLine",
		in:   "1\n0 1\n.\n",
		err:  `in.csp:2: syntax error: invalid constraint "0 1"`,
	}, {
		name: "Variables",
		in:   "1\na 1 ( < )\n.\n",
		err:  `in.csp:2: syntax error: invalid variables in "a 1 \( < \)"`,
	}, {
		name: "Index",
		in:   "1\n0 2 ( < )\n.\n",
		err:  `in.csp:2: invalid constraint index \(0, 2\) in network of size 2`,
	}, {
		name: "Label",
		in:   "1\n\n0 1 ( < d )\n.\n",
		err:  `in.csp:3: unknown base relation "d" in calculus point`,
	}, {
		name: "TooLarge",
		in:   "100000\n.\n",
		err:  `in.csp:1: syntax error: network of 100001 variables exceeds limit of 4096`,
	}}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeAll("in.csp", strings.NewReader(tc.in), calculus.Point())
			qt.Assert(t, qt.ErrorMatches(err, tc.err))
		})
	}
}

func TestEncode(t *testing.T) {
	ns, err := DecodeAll("in.csp", strings.NewReader(twoNetworks), calculus.Point())
	qt.Assert(t, qt.IsNil(err))
	var buf bytes.Buffer
	for _, n := range ns {
		qt.Assert(t, qt.IsNil(Encode(&buf, n)))
	}
	want := `2 #chain
0 1 ( < )
1 2 ( < = )
.
1
0 1 ( < )
.
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("unexpected output (-want +got):\n%s", diff)
	}

	again, err := DecodeAll("out.csp", &buf, calculus.Point())
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(again, 2))
	for i := range ns {
		qt.Assert(t, qt.IsTrue(again[i].Equal(ns[i])))
	}
}

const yamlNetworks = `name: chain
calculus: allen
size: 3
constraints:
  - {i: 0, j: 1, label: ( m )}
  - {i: 2, j: 1, label: ( di )}
---
calculus: point
size: 2
`

func TestDecodeYAML(t *testing.T) {
	ns, err := DecodeYAML(strings.NewReader(yamlNetworks))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(ns, 2))

	n := ns[0]
	qt.Assert(t, qt.Equals(n.Calculus(), calculus.Allen()))
	qt.Assert(t, qt.Equals(n.Name(), "chain"))
	qt.Assert(t, qt.Equals(n.Label(0, 1), "( m )"))
	qt.Assert(t, qt.Equals(n.Label(1, 2), "( d )"))

	qt.Assert(t, qt.Equals(ns[1].Calculus(), calculus.Point()))
	qt.Assert(t, qt.IsTrue(ns[1].Equal(network.New(2, calculus.Point()))))

	qt.Assert(t, qt.DeepEquals(NewDocument(n), &Document{
		Name:     "chain",
		Calculus: "allen",
		Size:     3,
		Constraints: []Constraint{
			{0, 1, "( m )"},
			{1, 2, "( d )"},
		},
	}))

	var buf bytes.Buffer
	qt.Assert(t, qt.IsNil(EncodeYAML(&buf, ns...)))
	again, err := DecodeYAML(&buf)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(again, 2))
	for i := range ns {
		qt.Assert(t, qt.IsTrue(again[i].Equal(ns[i])))
		qt.Assert(t, qt.Equals(again[i].Name(), ns[i].Name()))
	}
}

func TestDecodeYAMLErrors(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		err  string
	}{{
		name: "Calculus",
		in:   "calculus: rcc8\nsize: 2\n",
		err:  `network 0: unknown calculus "rcc8" \(have \[allen point\]\)`,
	}, {
		name: "Size",
		in:   "calculus: point\nsize: 0\n",
		err:  `network 0: syntax error: size 0 out of range \[1, 4096\]`,
	}, {
		name: "UnknownField",
		in:   "calculus: point\nsize: 2\nvars: 3\n",
		err:  `yaml: unmarshal errors:\n.*field vars not found.*`,
	}, {
		name: "Constraints",
		in:   "calculus: point\nsize: 2\nconstraints:\n- {i: 0, j: 0, label: ( < )}\n- {i: 0, j: 1, label: ( x )}\n",
		err:  `(?s)network 0: constraint 0: .*diagonal.*\nconstraint 1: unknown base relation "x".*`,
	}}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeYAML(strings.NewReader(tc.in))
			qt.Assert(t, qt.ErrorMatches(err, tc.err))
		})
	}
}
