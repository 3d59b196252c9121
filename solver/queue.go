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

import "qualcalc.org/go/network"

// edgeQueue is a priority queue of edges in which edges with fewer base
// relations come first. Edges of equal weight are served in FIFO order.
// An edge is in the queue at most once.
type edgeQueue struct {
	buckets [][]network.Edge // indexed by weight
	queued  []bool           // indexed by i*size+j
	size    int
	len     int
	min     int // no bucket below min holds edges
}

func (q *edgeQueue) reset(size, maxWeight int) {
	q.size = size
	if cap(q.queued) < size*size {
		q.queued = make([]bool, size*size)
	} else {
		q.queued = q.queued[:size*size]
		clear(q.queued)
	}
	if len(q.buckets) < maxWeight+1 {
		q.buckets = make([][]network.Edge, maxWeight+1)
	}
	for i := range q.buckets {
		q.buckets[i] = q.buckets[i][:0]
	}
	q.len = 0
	q.min = 0
}

func (q *edgeQueue) push(e network.Edge, weight int) {
	if e.I > e.J {
		e.I, e.J = e.J, e.I
	}
	k := e.I*q.size + e.J
	if q.queued[k] {
		return
	}
	q.queued[k] = true
	q.buckets[weight] = append(q.buckets[weight], e)
	q.len++
	if weight < q.min {
		q.min = weight
	}
}

func (q *edgeQueue) pop() network.Edge {
	for len(q.buckets[q.min]) == 0 {
		q.min++
	}
	b := q.buckets[q.min]
	e := b[0]
	q.buckets[q.min] = b[1:]
	q.queued[e.I*q.size+e.J] = false
	q.len--
	return e
}
