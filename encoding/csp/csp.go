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

// Package csp reads and writes constraint networks.
//
// The text format holds any number of networks. Each network starts with a
// header line holding the largest variable index, optionally followed by
// a name introduced with #, and ends with a line holding a single dot:
//
//	2 #example
//	0 1 ( < )
//	1 2 ( < = )
//	.
//
// Lines starting with # and empty lines are ignored. Repeated constraints
// on the same pair of variables are intersected.
//
// The YAML format holds one network per document, see Document.
package csp

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"qualcalc.org/go/calculus"
	"qualcalc.org/go/network"
)

// ErrSyntax is returned for malformed input.
var ErrSyntax = errors.New("syntax error")

// MaxVariables is the largest number of variables a decoded network may
// have.
const MaxVariables = 1 << 12

// A Decoder reads networks in text format over a single calculus.
type Decoder struct {
	cal  *calculus.Calculus
	name string
	s    *bufio.Scanner
	line int

	// err is returned by any further calls to Decode when not nil.
	err error
}

// NewDecoder returns a decoder reading from r. The name is used in error
// messages.
func NewDecoder(name string, r io.Reader, cal *calculus.Calculus) *Decoder {
	return &Decoder{cal: cal, name: name, s: bufio.NewScanner(r)}
}

// next returns the next line that is neither empty nor a comment.
func (d *Decoder) next() (string, bool) {
	for d.s.Scan() {
		d.line++
		line := strings.TrimSpace(d.s.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		return line, true
	}
	return "", false
}

func (d *Decoder) errorf(format string, args ...any) error {
	return fmt.Errorf("%s:%d: %w: %s", d.name, d.line, ErrSyntax, fmt.Sprintf(format, args...))
}

// Decode returns the next network of the input, or io.EOF if there is
// none.
func (d *Decoder) Decode() (*network.Network, error) {
	if d.err != nil {
		return nil, d.err
	}
	n, err := d.decode()
	if err != nil {
		d.err = err
	}
	return n, err
}

func (d *Decoder) decode() (*network.Network, error) {
	header, ok := d.next()
	if !ok {
		if err := d.s.Err(); err != nil {
			return nil, fmt.Errorf("%s: %w", d.name, err)
		}
		return nil, io.EOF
	}
	num, name, _ := strings.Cut(header, "#")
	last, err := strconv.Atoi(strings.TrimSpace(num))
	if err != nil || last < 0 {
		return nil, d.errorf("invalid header %q", header)
	}
	if last >= MaxVariables {
		return nil, d.errorf("network of %d variables exceeds limit of %d", last+1, MaxVariables)
	}
	n := network.New(last+1, d.cal)
	n.SetName(strings.TrimSpace(name))

	for {
		line, ok := d.next()
		if !ok {
			if err := d.s.Err(); err != nil {
				return nil, fmt.Errorf("%s: %w", d.name, err)
			}
			return nil, d.errorf("network %q not terminated by \".\"", n.Name())
		}
		if line == "." {
			return n, nil
		}
		f := strings.Fields(line)
		if len(f) < 3 {
			return nil, d.errorf("invalid constraint %q", line)
		}
		i, err1 := strconv.Atoi(f[0])
		j, err2 := strconv.Atoi(f[1])
		if err1 != nil || err2 != nil {
			return nil, d.errorf("invalid variables in %q", line)
		}
		r, err := d.cal.ParseLabel(strings.Join(f[2:], " "))
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", d.name, d.line, err)
		}
		if err := n.AddConstraint(i, j, r); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", d.name, d.line, err)
		}
	}
}

// DecodeAll reads all networks from r.
func DecodeAll(name string, r io.Reader, cal *calculus.Calculus) ([]*network.Network, error) {
	d := NewDecoder(name, r, cal)
	var a []*network.Network
	for {
		n, err := d.Decode()
		if err == io.EOF {
			return a, nil
		}
		if err != nil {
			return nil, err
		}
		a = append(a, n)
	}
}

// Encode writes n to w in text format. Universal constraints are omitted.
func Encode(w io.Writer, n *network.Network) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d", n.Size()-1)
	if n.Name() != "" {
		fmt.Fprintf(bw, " #%s", n.Name())
	}
	bw.WriteString("\n")
	cal := n.Calculus()
	for _, e := range n.Edges() {
		r := n.Constraint(e.I, e.J)
		if r == cal.Universal() {
			continue
		}
		fmt.Fprintf(bw, "%d %d %s\n", e.I, e.J, cal.Format(r))
	}
	bw.WriteString(".\n")
	return bw.Flush()
}
