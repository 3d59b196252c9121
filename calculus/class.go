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
	"bufio"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/mpvl/unique"
)

// A Composer computes the composition of two relations. A *Calculus is a
// Composer.
type Composer interface {
	Compose(a, b Relation) Relation
}

// MissingRels returns the compositions of all ordered pairs of relations in
// class, including each relation with itself, that are not part of class.
// Each missing relation is reported once, in order of discovery.
//
// A class for which MissingRels returns nothing is closed under composition.
func MissingRels(c Composer, class []Relation) []Relation {
	have := make(map[Relation]bool, len(class))
	for _, r := range class {
		have[r] = true
	}
	var missing []Relation
	for _, r1 := range class {
		for _, r2 := range class {
			r := c.Compose(r1, r2)
			if !have[r] {
				have[r] = true
				missing = append(missing, r)
			}
		}
	}
	return missing
}

// CloseClass returns the smallest superset of class that is closed under
// composition, along with the number of rounds in which it had to be
// extended. Relations are appended in order of discovery; class itself is
// not modified.
//
// Closure under converse is not computed.
func CloseClass(c Composer, class []Relation) (closed []Relation, rounds int) {
	closed = slices.Clone(class)
	for {
		missing := MissingRels(c, closed)
		if len(missing) == 0 {
			return closed, rounds
		}
		closed = append(closed, missing...)
		rounds++
	}
}

// ReadClass reads a relation class with one label per line. Empty lines and
// lines starting with # are ignored. The result is sorted by canonical
// label and holds every relation once.
func ReadClass(c *Calculus, r io.Reader) ([]Relation, error) {
	byLabel := map[string]Relation{}
	var labels []string
	s := bufio.NewScanner(r)
	for line := 1; s.Scan(); line++ {
		text := strings.TrimSpace(s.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		rel, err := c.ParseLabel(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		label := c.Format(rel)
		byLabel[label] = rel
		labels = append(labels, label)
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	unique.Strings(&labels)

	class := make([]Relation, len(labels))
	for i, l := range labels {
		class[i] = byLabel[l]
	}
	return class, nil
}

// WriteClass writes class one canonical label per line.
func WriteClass(w io.Writer, c *Calculus, class []Relation) error {
	bw := bufio.NewWriter(w)
	for _, r := range class {
		bw.WriteString(c.Format(r))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
