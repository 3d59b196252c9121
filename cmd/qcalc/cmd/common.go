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

package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"qualcalc.org/go/calculus"
	"qualcalc.org/go/encoding/csp"
	"qualcalc.org/go/network"
	"qualcalc.org/go/stats"
)

func getLang() language.Tag {
	loc := os.Getenv("LC_ALL")
	if loc == "" {
		loc = os.Getenv("LANG")
	}
	loc = strings.Split(loc, ".")[0]
	return language.Make(loc)
}

// printer returns a printer for user-facing messages.
func printer() *message.Printer {
	return message.NewPrinter(getLang())
}

func exitOnErr(cmd *Command, err error, fatal bool) {
	if err == nil {
		return
	}
	w := &bytes.Buffer{}
	printer().Fprintf(w, "%v\n", err)
	_, _ = cmd.Stderr().Write(w.Bytes())
	if fatal {
		exit()
	}
}

func loadCalculus(cmd *Command, name string) *calculus.Calculus {
	c, err := calculus.Lookup(name)
	exitOnErr(cmd, err, true)
	return c
}

// openInput opens the named file, or standard input for "-".
func openInput(cmd *Command, name string) io.ReadCloser {
	if name == "-" {
		return io.NopCloser(cmd.InOrStdin())
	}
	f, err := os.Open(name)
	exitOnErr(cmd, err, true)
	return f
}

func isYAML(name string) bool {
	switch filepath.Ext(name) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// readNetworks reads all networks from the named file. Files with a YAML
// extension name their calculus in every document, which must match cal.
func readNetworks(cmd *Command, name string, cal *calculus.Calculus) []*network.Network {
	r := openInput(cmd, name)
	defer r.Close()

	var ns []*network.Network
	var err error
	if isYAML(name) {
		ns, err = csp.DecodeYAML(r)
		for i := 0; err == nil && i < len(ns); i++ {
			if got := ns[i].Calculus(); got != cal {
				err = fmt.Errorf("%s: network %d is over calculus %s, want %s", name, i, got, cal)
			}
		}
	} else {
		ns, err = csp.DecodeAll(name, r, cal)
	}
	exitOnErr(cmd, err, true)
	return ns
}

// printStats writes counts to the standard error without failing the
// command.
func printStats(cmd *Command, counts stats.Counts) {
	printer().Fprintf(cmd.ErrOrStderr(), "%v\n", counts)
}
