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
)

func newComposeCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compose <calculus> <label> <label>",
		Short: "compose two relations",
		Long: `compose prints the composition of two relations of a calculus.

For instance, in the point algebra

	qcalc compose point '( < )' '( < = )'

prints ( < ).
`,
		Args: cobra.ExactArgs(3),
		RunE: mkRunE(c, runCompose),
	}
	return cmd
}

func runCompose(cmd *Command, args []string) error {
	cal := loadCalculus(cmd, args[0])
	r, err := cal.ComposeLabels(args[1], args[2])
	exitOnErr(cmd, err, true)
	fmt.Fprintln(cmd.OutOrStdout(), r)
	return nil
}

func newConverseCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "converse <calculus> <label>",
		Short: "print the converse of a relation",
		Args:  cobra.ExactArgs(2),
		RunE:  mkRunE(c, runConverse),
	}
	return cmd
}

func runConverse(cmd *Command, args []string) error {
	cal := loadCalculus(cmd, args[0])
	r, err := cal.ConverseLabel(args[1])
	exitOnErr(cmd, err, true)
	fmt.Fprintln(cmd.OutOrStdout(), r)
	return nil
}
