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
)

const classHelp = `
A relation class file holds one label per line. Empty lines and lines
starting with # are ignored. Use - to read from standard input.
`

func newMissingCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "missing <calculus> <classfile>",
		Short: "list compositions missing from a relation class",
		Long: `missing prints the compositions of members of a relation class that are
not themselves members, in the order they are found. A class is closed
under composition if the output is empty.
` + classHelp,
		Args: cobra.ExactArgs(2),
		RunE: mkRunE(c, runMissing),
	}
	return cmd
}

func runMissing(cmd *Command, args []string) error {
	cal, class := readClass(cmd, args)
	missing := calculus.MissingRels(cal, class)
	return calculus.WriteClass(cmd.OutOrStdout(), cal, missing)
}

func newCloseCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "close <calculus> <classfile>",
		Short: "close a relation class under composition",
		Long: `close prints the smallest superset of a relation class that is closed
under composition. The input relations come first, followed by the added
ones in the order they are found.
` + classHelp,
		Args: cobra.ExactArgs(2),
		RunE: mkRunE(c, runClose),
	}
	addStatsFlag(cmd.Flags())
	return cmd
}

func runClose(cmd *Command, args []string) error {
	cal, class := readClass(cmd, args)
	closed, rounds := calculus.CloseClass(cal, class)
	if flagStats.Bool(cmd) {
		printer().Fprintf(cmd.ErrOrStderr(), "%d relations added in %d rounds\n",
			len(closed)-len(class), rounds)
	}
	return calculus.WriteClass(cmd.OutOrStdout(), cal, closed)
}

func readClass(cmd *Command, args []string) (*calculus.Calculus, []calculus.Relation) {
	cal := loadCalculus(cmd, args[0])
	r := openInput(cmd, args[1])
	defer r.Close()
	class, err := calculus.ReadClass(cal, r)
	if err != nil {
		exitOnErr(cmd, fmt.Errorf("%s: %w", args[1], err), true)
	}
	return cal, class
}
