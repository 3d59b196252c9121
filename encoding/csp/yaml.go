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
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"qualcalc.org/go/calculus"
	"qualcalc.org/go/network"
)

// Document is the YAML form of a network:
//
//	name: example
//	calculus: point
//	size: 3
//	constraints:
//	  - {i: 0, j: 1, label: ( < )}
//
// Constraints that are not listed are universal.
type Document struct {
	Name        string       `yaml:"name,omitempty"`
	Calculus    string       `yaml:"calculus"`
	Size        int          `yaml:"size"`
	Constraints []Constraint `yaml:"constraints,omitempty"`
}

// Constraint is a single constraint of a Document.
type Constraint struct {
	I     int    `yaml:"i"`
	J     int    `yaml:"j"`
	Label string `yaml:"label"`
}

// NewDocument returns the document form of n.
func NewDocument(n *network.Network) *Document {
	cal := n.Calculus()
	doc := &Document{Name: n.Name(), Calculus: cal.Name(), Size: n.Size()}
	for _, e := range n.Edges() {
		r := n.Constraint(e.I, e.J)
		if r == cal.Universal() {
			continue
		}
		doc.Constraints = append(doc.Constraints, Constraint{e.I, e.J, cal.Format(r)})
	}
	return doc
}

// Network builds the network described by doc. The calculus is looked up
// among the builtin calculi.
func (doc *Document) Network() (*network.Network, error) {
	cal, err := calculus.Lookup(doc.Calculus)
	if err != nil {
		return nil, err
	}
	if doc.Size < 1 || doc.Size > MaxVariables {
		return nil, fmt.Errorf("%w: size %d out of range [1, %d]", ErrSyntax, doc.Size, MaxVariables)
	}
	n := network.New(doc.Size, cal)
	n.SetName(doc.Name)
	var errs []error
	for k, c := range doc.Constraints {
		if err := n.AddLabel(c.I, c.J, c.Label); err != nil {
			errs = append(errs, fmt.Errorf("constraint %d: %w", k, err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return n, nil
}

// DecodeYAML reads all YAML documents from r.
func DecodeYAML(r io.Reader) ([]*network.Network, error) {
	d := yaml.NewDecoder(r)
	d.KnownFields(true)
	var a []*network.Network
	for {
		var doc Document
		err := d.Decode(&doc)
		if err == io.EOF {
			return a, nil
		}
		if err != nil {
			return nil, err
		}
		n, err := doc.Network()
		if err != nil {
			return nil, fmt.Errorf("network %d: %w", len(a), err)
		}
		a = append(a, n)
	}
}

// EncodeYAML writes the networks to w as a stream of YAML documents.
func EncodeYAML(w io.Writer, ns ...*network.Network) error {
	e := yaml.NewEncoder(w)
	e.SetIndent(2)
	for _, n := range ns {
		if err := e.Encode(NewDocument(n)); err != nil {
			return err
		}
	}
	return e.Close()
}
