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

// Package calculus defines qualitative calculi: finite sets of base relations
// together with their composition and converse tables.
//
// A set of base relations is represented as a [Relation]. Its textual form,
// called a label, lists the base relations between parentheses:
//
//	( < d m o s )
//
// The empty label "( )" denotes an unsatisfiable constraint.
package calculus

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	// ErrUnknownRelation is returned when a label mentions a token that is
	// not a base relation of the calculus.
	ErrUnknownRelation = errors.New("unknown base relation")

	// ErrInvalidCalculus is returned by New for inconsistent tables.
	ErrInvalidCalculus = errors.New("invalid calculus")
)

// Tables holds the definition of a calculus.
type Tables struct {
	// Bases lists the base relation names. Their order is irrelevant:
	// a calculus orders its base relations by name.
	Bases []string

	// Identity names the identity base relation.
	Identity string

	// Converse maps every base relation to its converse.
	Converse map[string]string

	// Composition maps every ordered pair of base relations to the
	// possible relations between the outer arguments.
	Composition map[[2]string][]string
}

// A Calculus is an immutable qualitative relation algebra.
type Calculus struct {
	name      string
	bases     []string
	index     map[string]int
	identity  Relation
	universal Relation
	converse  []int
	comp      []Relation // comp[i*len(bases)+j] = bases[i] ∘ bases[j]
}

// New creates a calculus from the given tables. It checks that the tables
// are complete and that the converse is an involution.
func New(name string, t Tables) (*Calculus, error) {
	n := len(t.Bases)
	if n == 0 || n > MaxBases {
		return nil, fmt.Errorf("%w %s: %d base relations, want 1 to %d",
			ErrInvalidCalculus, name, n, MaxBases)
	}
	c := &Calculus{
		name:  name,
		bases: slices.Clone(t.Bases),
		index: make(map[string]int, n),
	}
	// Fix the order of the base relations for reproducibility.
	slices.Sort(c.bases)
	for i, b := range c.bases {
		if _, ok := c.index[b]; ok {
			return nil, fmt.Errorf("%w %s: duplicate base relation %q", ErrInvalidCalculus, name, b)
		}
		if b == "" || strings.ContainsAny(b, "() \t\n") {
			return nil, fmt.Errorf("%w %s: malformed base relation %q", ErrInvalidCalculus, name, b)
		}
		c.index[b] = i
		c.universal |= Single(i)
	}

	id, ok := c.index[t.Identity]
	if !ok {
		return nil, fmt.Errorf("%w %s: identity %q is not a base relation", ErrInvalidCalculus, name, t.Identity)
	}
	c.identity = Single(id)

	var errs []error
	c.converse = make([]int, n)
	for i, b := range c.bases {
		cb, ok := t.Converse[b]
		if !ok {
			errs = append(errs, fmt.Errorf("no converse for %q", b))
			continue
		}
		j, ok := c.index[cb]
		if !ok {
			errs = append(errs, fmt.Errorf("converse of %q: %w %q", b, ErrUnknownRelation, cb))
			continue
		}
		c.converse[i] = j
	}
	if len(errs) == 0 {
		for i, j := range c.converse {
			if c.converse[j] != i {
				errs = append(errs, fmt.Errorf("converse is not an involution at %q", c.bases[i]))
			}
		}
	}

	c.comp = make([]Relation, n*n)
	for i, a := range c.bases {
		for j, b := range c.bases {
			res, ok := t.Composition[[2]string{a, b}]
			if !ok {
				errs = append(errs, fmt.Errorf("no composition for %q:%q", a, b))
				continue
			}
			for _, tok := range res {
				k, ok := c.index[tok]
				if !ok {
					errs = append(errs, fmt.Errorf("composition %q:%q: %w %q", a, b, ErrUnknownRelation, tok))
					continue
				}
				c.comp[i*n+j] |= Single(k)
			}
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrInvalidCalculus, name, err)
	}
	return c, nil
}

// Name reports the name of the calculus.
func (c *Calculus) Name() string { return c.name }

// Size reports the number of base relations.
func (c *Calculus) Size() int { return len(c.bases) }

// Base returns the name of base relation i.
func (c *Calculus) Base(i int) string { return c.bases[i] }

// Bases returns the base relation names in canonical order.
func (c *Calculus) Bases() []string { return slices.Clone(c.bases) }

// Index returns the index of the named base relation.
func (c *Calculus) Index(name string) (int, bool) {
	i, ok := c.index[name]
	return i, ok
}

// Universal returns the relation holding all base relations.
func (c *Calculus) Universal() Relation { return c.universal }

// Identity returns the identity relation.
func (c *Calculus) Identity() Relation { return c.identity }

// Compose returns the composition of a and b: the union of the compositions
// of all pairs of base relations drawn from a and b.
func (c *Calculus) Compose(a, b Relation) Relation {
	n := len(c.bases)
	var res Relation
	for _, i := range a.Bases() {
		row := c.comp[i*n : (i+1)*n]
		for _, j := range b.Bases() {
			res |= row[j]
			if res == c.universal {
				return res
			}
		}
	}
	return res
}

// Converse returns the converse of r.
func (c *Calculus) Converse(r Relation) Relation {
	var res Relation
	for _, i := range r.Bases() {
		res |= Single(c.converse[i])
	}
	return res
}

// ParseLabel parses a label such as "( < = )". Whitespace is free-form,
// tokens may repeat and appear in any order. The parentheses may be omitted.
func (c *Calculus) ParseLabel(s string) (Relation, error) {
	body := strings.TrimSpace(s)
	if strings.HasPrefix(body, "(") {
		if !strings.HasSuffix(body, ")") {
			return Empty, fmt.Errorf("label %q: missing closing parenthesis", s)
		}
		body = body[1 : len(body)-1]
	}
	var r Relation
	for _, tok := range strings.Fields(body) {
		i, ok := c.index[tok]
		if !ok {
			return Empty, fmt.Errorf("%w %q in calculus %s", ErrUnknownRelation, tok, c.name)
		}
		r |= Single(i)
	}
	return r, nil
}

// MustParseLabel is like ParseLabel but panics on error.
func (c *Calculus) MustParseLabel(s string) Relation {
	r, err := c.ParseLabel(s)
	if err != nil {
		panic(err)
	}
	return r
}

// Format returns the canonical label of r.
func (c *Calculus) Format(r Relation) string {
	var b strings.Builder
	b.WriteString("(")
	for _, i := range r.Bases() {
		b.WriteByte(' ')
		b.WriteString(c.bases[i])
	}
	b.WriteString(" )")
	return b.String()
}

// FormatAll returns the canonical labels of all relations in rs.
func (c *Calculus) FormatAll(rs []Relation) []string {
	a := make([]string, len(rs))
	for i, r := range rs {
		a[i] = c.Format(r)
	}
	return a
}

// ComposeLabels composes two labels given in textual form.
func (c *Calculus) ComposeLabels(a, b string) (string, error) {
	ra, err := c.ParseLabel(a)
	if err != nil {
		return "", err
	}
	rb, err := c.ParseLabel(b)
	if err != nil {
		return "", err
	}
	return c.Format(c.Compose(ra, rb)), nil
}

// ConverseLabel returns the converse of a label given in textual form.
func (c *Calculus) ConverseLabel(s string) (string, error) {
	r, err := c.ParseLabel(s)
	if err != nil {
		return "", err
	}
	return c.Format(c.Converse(r)), nil
}

func (c *Calculus) String() string { return c.name }
