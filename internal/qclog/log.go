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

// Package qclog provides the trace logging of the solver and the search.
package qclog

import (
	"fmt"
	"log"
	"strings"
)

func init() {
	log.SetFlags(0)
}

// A Logger writes numbered, indented trace lines. The zero Logger is
// disabled.
type Logger struct {
	// Level is the log level. Lines of level 1 up to and including Level
	// are written.
	Level int

	// Output receives the lines. If nil, the standard logger is used.
	Output func(calldepth int, s string) error

	id   int
	nest int
}

// Enabled reports whether lines of the given level are written.
func (l *Logger) Enabled(level int) bool {
	return l != nil && level > 0 && level <= l.Level
}

// Logf writes a trace line for the given level.
func (l *Logger) Logf(level int, format string, args ...interface{}) {
	if !l.Enabled(level) {
		return
	}
	w := &strings.Builder{}

	l.id++
	fmt.Fprintf(w, "%3d ", l.id)
	for i := 0; i < l.nest; i++ {
		w.WriteString("... ")
	}
	fmt.Fprintf(w, format, args...)

	out := l.Output
	if out == nil {
		out = log.Output
	}
	_ = out(2, w.String())
}

// Indent increases the indentation of subsequent lines; Dedent undoes it.
func (l *Logger) Indent() {
	if l != nil {
		l.nest++
	}
}

func (l *Logger) Dedent() {
	if l != nil && l.nest > 0 {
		l.nest--
	}
}
