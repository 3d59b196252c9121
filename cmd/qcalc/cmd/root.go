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
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"qualcalc.org/go/internal/qcdebug"
)

type runFunction func(cmd *Command, args []string) error

func mkRunE(c *Command, f runFunction) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		c.Command = cmd
		return f(c, args)
	}
}

// newRootCmd creates the base command when called without any subcommands
func newRootCmd() *Command {
	cmd := &cobra.Command{
		Use:   "qcalc",
		Short: "qcalc reasons about qualitative constraint networks.",
		Long: `qcalc reasons about qualitative constraint networks such as those of
the point algebra and Allen's interval algebra.

It composes and converts relations, closes relation classes under
composition, enforces algebraic closure on networks, and refines pairs of
networks into mutually consistent scenarios.

Relations are written as labels, lists of base relations in parentheses:

	( < = )

Run 'qcalc help environment' for the settings read from the environment.`,

		SilenceUsage: true,
	}

	c := &Command{Command: cmd, root: cmd}

	subCommands := []*cobra.Command{
		newComposeCmd(c),
		newConverseCmd(c),
		newMissingCmd(c),
		newCloseCmd(c),
		newPCCmd(c),
		newSplitCmd(c),
		newVersionCmd(c),
	}

	for _, sub := range subCommands {
		cmd.AddCommand(sub)
	}
	for _, topic := range helpTopics {
		cmd.AddCommand(topic)
	}

	return c
}

// MainTest is like Main, runs the qcalc tool and returns the code for
// passing to os.Exit.
func MainTest() int {
	inTest = true
	return Main()
}

// Main runs the qcalc tool and returns the code for passing to os.Exit.
func Main() int {
	err := mainErr(context.Background(), os.Args[1:])
	if err != nil {
		if err != ErrPrintedError {
			fmt.Fprintln(os.Stderr, err)
		}
		return 1
	}
	return 0
}

func mainErr(ctx context.Context, args []string) error {
	cmd, err := New(args)
	if err != nil {
		return err
	}
	return cmd.Run(ctx)
}

var inTest = false

type Command struct {
	// The currently active command.
	*cobra.Command

	root *cobra.Command

	hasErr bool
}

type errWriter Command

func (w *errWriter) Write(b []byte) (int, error) {
	c := (*Command)(w)
	c.hasErr = true
	return c.Command.OutOrStderr().Write(b)
}

// Stderr returns a writer that should be used for error messages.
// Writing to it makes the command fail.
func (c *Command) Stderr() io.Writer {
	return (*errWriter)(c)
}

func (c *Command) SetOutput(w io.Writer) {
	c.root.SetOutput(w)
}

func (c *Command) SetInput(r io.Reader) {
	c.root.SetIn(r)
}

// ErrPrintedError indicates error messages have been printed to stderr.
var ErrPrintedError = errors.New("terminating because of errors")

func (c *Command) Run(ctx context.Context) (err error) {
	defer recoverError(&err)

	if err := c.root.ExecuteContext(ctx); err != nil {
		return err
	}
	if c.hasErr {
		return ErrPrintedError
	}
	return nil
}

func recoverError(err *error) {
	switch e := recover().(type) {
	case nil:
	case panicError:
		*err = e.Err
	default:
		panic(e)
	}
	// We use panic to escape, instead of os.Exit
}

// New creates the qcalc command for the given arguments. It fails if
// QCALC_DEBUG is malformed.
func New(args []string) (cmd *Command, err error) {
	defer recoverError(&err)

	if err := qcdebug.Init(); err != nil {
		return nil, err
	}
	cmd = newRootCmd()
	cmd.root.SetArgs(args)
	return cmd, nil
}

type panicError struct {
	Err error
}

func exit() {
	panic(panicError{ErrPrintedError})
}
