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
	"context"
	"errors"
	"fmt"

	"qualcalc.org/go/calculus"
	"qualcalc.org/go/internal/qcdebug"
	"qualcalc.org/go/internal/qclog"
	"qualcalc.org/go/network"
	"qualcalc.org/go/stats"
)

// ErrNodeLimit is returned when a search exceeds Config.MaxNodes.
var ErrNodeLimit = errors.New("search node limit exceeded")

// A Closer enforces algebraic closure on a network, reporting false if the
// network turns out to be inconsistent. *solver.Solver is a Closer.
type Closer interface {
	EnforceAlgebraicClosure(n *network.Network) bool
}

// A Strategy selects the edges the search branches on.
type Strategy int

const (
	// FirstEdge branches on the first disjunctive edge only. When all of
	// its alternatives fail, the state fails.
	FirstEdge Strategy = iota

	// AllEdges moves on to the next disjunctive edge when all alternatives
	// of an edge fail.
	AllEdges
)

var strategyNames = []string{"firstedge", "alledges"}

func (s Strategy) String() string {
	if s < 0 || int(s) >= len(strategyNames) {
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
	return strategyNames[s]
}

// ParseStrategy parses the name of a strategy.
func ParseStrategy(s string) (Strategy, error) {
	for i, name := range strategyNames {
		if s == name {
			return Strategy(i), nil
		}
	}
	return 0, fmt.Errorf("unknown strategy %q", s)
}

// A ValueOrder determines the order in which the base relations of an edge
// are tried.
type ValueOrder int

const (
	// CanonicalOrder tries base relations in the order of the calculus.
	CanonicalOrder ValueOrder = iota

	// IdentityFirst tries the identity relation before all others.
	IdentityFirst
)

var orderNames = []string{"canonical", "identity"}

func (o ValueOrder) String() string {
	if o < 0 || int(o) >= len(orderNames) {
		return fmt.Sprintf("ValueOrder(%d)", int(o))
	}
	return orderNames[o]
}

// ParseValueOrder parses the name of a value order.
func ParseValueOrder(s string) (ValueOrder, error) {
	for i, name := range orderNames {
		if s == name {
			return ValueOrder(i), nil
		}
	}
	return 0, fmt.Errorf("unknown value order %q", s)
}

// Config configures a search.
type Config struct {
	Strategy   Strategy
	Merge      MergeMode
	ValueOrder ValueOrder

	// MaxNodes bounds the number of search states if positive. Under
	// MergeUnion and MergeReplace the generalizer may widen constraints
	// that the search already narrowed, and a search need not terminate.
	MaxNodes int64

	// LogLevel enables tracing of search states if positive.
	LogLevel int

	// Logger, if not nil, overrides LogLevel.
	Logger *qclog.Logger

	// Verify closes both scenarios once more after a successful search and
	// panics if that changes them.
	Verify bool
}

// DefaultConfig returns the configuration selected by QCALC_DEBUG.
// Malformed settings are ignored.
func DefaultConfig() *Config {
	cfg := &Config{}
	if qcdebug.Init() != nil {
		return cfg
	}
	f := &qcdebug.Flags
	cfg.Strategy, _ = ParseStrategy(f.Strategy)
	cfg.Merge, _ = ParseMergeMode(f.Merge)
	cfg.LogLevel = f.LogSearch
	cfg.Verify = f.Strict
	return cfg
}

// A Searcher refines pairs of networks. It is not safe for concurrent use.
type Searcher struct {
	closer Closer
	cfg    Config
	log    *qclog.Logger
	counts stats.Counts
}

// NewSearcher returns a Searcher that closes networks with c. A nil cfg
// means DefaultConfig.
func NewSearcher(c Closer, cfg *Config) *Searcher {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	s := &Searcher{closer: c, cfg: *cfg, log: cfg.Logger}
	if s.log == nil && cfg.LogLevel > 0 {
		s.log = &qclog.Logger{Level: cfg.LogLevel}
	}
	return s
}

// Stats returns the search counters accumulated by s. Closure counters are
// kept by the Closer.
func (s *Searcher) Stats() stats.Counts { return s.counts }

// Search is shorthand for NewSearcher(c, cfg).Search(ctx, a, b).
func Search(ctx context.Context, c Closer, a, b *network.Network, cfg *Config) (bool, error) {
	return NewSearcher(c, cfg).Search(ctx, a, b)
}

// A frame is an open search state that branches on an edge.
type frame struct {
	snapA, snapB     network.Snapshot // on entry
	closedA, closedB network.Snapshot // after closure and generalization

	net   *network.Network // network holding edge
	edge  network.Edge
	parts []calculus.Relation
	next  int // index of the next part to try
}

// Search refines a and b simultaneously into scenarios that are both
// algebraically closed, using Generalize in both directions at every
// state to carry ruled-out directions from one network to the other.
//
// On success a and b hold the scenarios. Otherwise both are restored to
// their state on entry. The only errors returned are those of ctx,
// ErrNodeLimit, ErrMismatch and ErrNotPointLike.
func (s *Searcher) Search(ctx context.Context, a, b *network.Network) (bool, error) {
	if err := checkPair(a, b); err != nil {
		return false, err
	}
	p, err := pointRelsOf(a.Calculus())
	if err != nil {
		return false, err
	}
	entryA, entryB := a.Snapshot(), b.Snapshot()
	startNodes := s.counts.Nodes

	var stack []*frame
	for {
		err := ctx.Err()
		if err == nil && s.cfg.MaxNodes > 0 && s.counts.Nodes-startNodes >= s.cfg.MaxNodes {
			err = fmt.Errorf("%w: %d states", ErrNodeLimit, s.cfg.MaxNodes)
		}
		if err != nil {
			a.Restore(entryA)
			b.Restore(entryB)
			return false, err
		}
		f, done := s.enter(a, b, p, len(stack))
		if done {
			s.log.Logf(1, "scenario found")
			s.verify(a, b)
			return true, nil
		}
		if f != nil {
			stack = append(stack, f)
			s.log.Indent()
		}

		// Select the next alternative of the innermost open state.
		for len(stack) > 0 && !s.advance(a, b, stack[len(stack)-1]) {
			stack = stack[:len(stack)-1]
			s.log.Dedent()
			s.counts.Backtracks++
		}
		if len(stack) == 0 {
			s.log.Logf(1, "no scenario")
			return false, nil
		}
	}
}

// enter processes a new search state. It returns done if both networks are
// scenarios, a frame if the state branches, and neither if the state
// failed and was rolled back.
func (s *Searcher) enter(a, b *network.Network, p pointRels, depth int) (f *frame, done bool) {
	s.counts.Nodes++
	s.counts.MaxDepth = max(s.counts.MaxDepth, int64(depth))

	snapA, snapB := a.Snapshot(), b.Snapshot()

	// The outcome of the first closures is decided by the second ones.
	s.closer.EnforceAlgebraicClosure(a)
	s.closer.EnforceAlgebraicClosure(b)
	s.counts.Generalizations += 2
	generalize(a, b, p, s.cfg.Merge)
	generalize(b, a, p, s.cfg.Merge)
	if !s.closer.EnforceAlgebraicClosure(a) || !s.closer.EnforceAlgebraicClosure(b) {
		s.log.Logf(1, "depth %d: inconsistent", depth)
		a.Restore(snapA)
		b.Restore(snapB)
		s.counts.Backtracks++
		return nil, false
	}

	f = &frame{snapA: snapA, snapB: snapB}
	if !s.nextEdge(a, b, f, false) {
		return nil, true
	}
	if s.cfg.Strategy == AllEdges {
		f.closedA, f.closedB = a.Snapshot(), b.Snapshot()
	}
	s.logBranch(a, depth, f)
	return f, false
}

// nextEdge points f at the next disjunctive edge, in a first and then in b.
// If cont is set, the search continues after the current edge of f.
func (s *Searcher) nextEdge(a, b *network.Network, f *frame, cont bool) bool {
	var e network.Edge
	ok := false
	switch {
	case !cont:
		f.net = a
		e, ok = a.FirstDisjunctive()
	case f.net == a:
		e, ok = a.NextDisjunctive(f.edge)
	default:
		e, ok = b.NextDisjunctive(f.edge)
	}
	if !ok && f.net == a {
		f.net = b
		e, ok = b.FirstDisjunctive()
	}
	if !ok {
		return false
	}
	f.edge = e
	f.parts = s.order(f.net.Calculus(), f.net.Constraint(e.I, e.J))
	f.next = 0
	return true
}

// advance narrows the edge of f to its next alternative. If none is left
// it moves on to the next disjunctive edge under AllEdges. Once f is
// exhausted, advance restores the networks to their state on entry of f
// and reports false.
func (s *Searcher) advance(a, b *network.Network, f *frame) bool {
	for {
		if f.next < len(f.parts) {
			r := f.parts[f.next]
			f.next++
			// The edge is valid and not on the diagonal.
			_ = f.net.SetConstraint(f.edge.I, f.edge.J, r)
			if s.log.Enabled(1) {
				s.log.Logf(1, "try (%d, %d) = %s", f.edge.I, f.edge.J, f.net.Calculus().Format(r))
			}
			return true
		}
		if s.cfg.Strategy == AllEdges {
			a.Restore(f.closedA)
			b.Restore(f.closedB)
			if s.nextEdge(a, b, f, true) {
				s.log.Logf(1, "next edge (%d, %d)", f.edge.I, f.edge.J)
				continue
			}
		}
		a.Restore(f.snapA)
		b.Restore(f.snapB)
		return false
	}
}

// order returns the base relations of r in the order they are tried.
func (s *Searcher) order(c *calculus.Calculus, r calculus.Relation) []calculus.Relation {
	var parts []calculus.Relation
	id := c.Identity()
	if s.cfg.ValueOrder == IdentityFirst && id.SubsetOf(r) {
		parts = append(parts, id)
		r &^= id
	}
	for _, i := range r.Bases() {
		parts = append(parts, calculus.Single(i))
	}
	return parts
}

func (s *Searcher) logBranch(a *network.Network, depth int, f *frame) {
	if !s.log.Enabled(1) {
		return
	}
	which := "first"
	if f.net != a {
		which = "second"
	}
	s.log.Logf(1, "depth %d: branch on %s network (%d, %d) %s", depth, which,
		f.edge.I, f.edge.J, f.net.Calculus().Format(f.net.Constraint(f.edge.I, f.edge.J)))
}

func (s *Searcher) verify(a, b *network.Network) {
	if !s.cfg.Verify {
		return
	}
	for _, n := range []*network.Network{a, b} {
		c := n.Clone()
		if !s.closer.EnforceAlgebraicClosure(c) || !c.Equal(n) || !n.IsScenario() {
			panic(fmt.Sprintf("split: search returned a network that is not a closed scenario:\n%s", n))
		}
	}
}
