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

	"qualcalc.org/go/calculus"
	"qualcalc.org/go/encoding/csp"
	"qualcalc.org/go/network"
	"qualcalc.org/go/solver"
	"qualcalc.org/go/split"
)

func newSplitCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "split <calculus> <file> <file>",
		Short: "refine two networks into mutually consistent scenarios",
		Long: `split refines the first network of each of two files simultaneously until
both are algebraically closed scenarios. At every step, a constraint of
one network that rules out a direction weakens the corresponding
constraint of the other network. The calculus must have the base
relations <, = and >.

On success split prints both scenarios. Otherwise it prints
"no scenario" and leaves the exit code at zero.

The search branches on the first constraint that is not a single base
relation. With --strategy=alledges it moves on to the next such
constraint when all alternatives of one fail.

With --merge=union or --merge=replace the search may undo its own
refinements; --max-nodes bounds it.
`,
		Args: cobra.ExactArgs(3),
		RunE: mkRunE(c, runSplit),
	}
	addSplitFlags(cmd.Flags())
	addYAMLOutFlag(cmd.Flags())
	addStatsFlag(cmd.Flags())
	return cmd
}

func runSplit(cmd *Command, args []string) error {
	cal := loadCalculus(cmd, args[0])
	a := firstNetwork(cmd, args[1], cal)
	b := firstNetwork(cmd, args[2], cal)

	cfg := split.DefaultConfig()
	var err error
	cfg.Strategy, err = split.ParseStrategy(flagStrategy.String(cmd))
	exitOnErr(cmd, err, true)
	cfg.Merge, err = split.ParseMergeMode(flagMerge.String(cmd))
	exitOnErr(cmd, err, true)
	cfg.ValueOrder, err = split.ParseValueOrder(flagValueOrder.String(cmd))
	exitOnErr(cmd, err, true)
	cfg.MaxNodes = flagMaxNodes.Int64(cmd)

	s := solver.New(cal)
	srch := split.NewSearcher(s, cfg)
	ok, err := srch.Search(cmd.Context(), a, b)
	exitOnErr(cmd, err, true)

	if flagStats.Bool(cmd) {
		counts := s.Stats()
		counts.Add(srch.Stats())
		defer printStats(cmd, counts)
	}

	w := cmd.OutOrStdout()
	if !ok {
		fmt.Fprintln(w, "no scenario")
		return nil
	}
	if flagYAML.Bool(cmd) {
		exitOnErr(cmd, csp.EncodeYAML(w, a, b), true)
		return nil
	}
	exitOnErr(cmd, csp.Encode(w, a), true)
	exitOnErr(cmd, csp.Encode(w, b), true)
	return nil
}

func firstNetwork(cmd *Command, name string, cal *calculus.Calculus) *network.Network {
	ns := readNetworks(cmd, name, cal)
	if len(ns) == 0 {
		exitOnErr(cmd, fmt.Errorf("%s: no network", name), true)
	}
	return ns[0]
}
