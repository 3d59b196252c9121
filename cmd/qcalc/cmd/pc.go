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
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"qualcalc.org/go/encoding/csp"
	"qualcalc.org/go/network"
	"qualcalc.org/go/solver"
	"qualcalc.org/go/stats"
)

func newPCCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pc <calculus> <file>",
		Short: "enforce algebraic closure on networks",
		Long: `pc enforces algebraic closure, also known as path consistency, on every
network in a file and prints the closed networks in input order.
Inconsistent networks are reported as comments.

Networks are read in the text format:

	2 #example
	0 1 ( < )
	1 2 ( < = )
	.

The first line of a network holds its largest variable index and an
optional name; the network ends with a single dot. Files ending in .yaml
or .yml are read as YAML documents of the form

	name: example
	calculus: point
	size: 3
	constraints:
	  - {i: 0, j: 1, label: ( < )}

Networks are closed concurrently; --jobs bounds the number of networks
closed at once.
`,
		Args: cobra.ExactArgs(2),
		RunE: mkRunE(c, runPC),
	}
	addPCFlags(cmd.Flags())
	addStatsFlag(cmd.Flags())
	return cmd
}

func runPC(cmd *Command, args []string) error {
	cal := loadCalculus(cmd, args[0])
	ns := readNetworks(cmd, args[1], cal)

	jobs := flagJobs.Int(cmd)
	if jobs < 1 {
		exitOnErr(cmd, fmt.Errorf("invalid number of jobs %d", jobs), true)
	}

	// Solvers are not safe for concurrent use: each goroutine gets its own.
	ok := make([]bool, len(ns))
	counts := make([]stats.Counts, len(ns))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(jobs)
	for i, n := range ns {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s := solver.New(cal)
			ok[i] = s.EnforceAlgebraicClosure(n)
			counts[i] = s.Stats()
			return nil
		})
	}
	exitOnErr(cmd, g.Wait(), true)

	w := cmd.OutOrStdout()
	var consistent []*network.Network
	var total stats.Counts
	for i, n := range ns {
		total.Add(counts[i])
		if !ok[i] {
			fmt.Fprintf(w, "# network %s is inconsistent\n", displayName(i, n))
			continue
		}
		consistent = append(consistent, n)
	}
	if flagYAML.Bool(cmd) {
		if len(consistent) > 0 {
			exitOnErr(cmd, csp.EncodeYAML(w, consistent...), true)
		}
	} else {
		for _, n := range consistent {
			exitOnErr(cmd, csp.Encode(w, n), true)
		}
	}
	if flagStats.Bool(cmd) {
		printStats(cmd, total)
	}
	return nil
}

// displayName identifies the i-th network of a file in messages.
func displayName(i int, n *network.Network) string {
	if n.Name() != "" {
		return fmt.Sprintf("%d (%s)", i, n.Name())
	}
	return fmt.Sprint(i)
}
