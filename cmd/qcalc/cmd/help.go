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

import "github.com/spf13/cobra"

var helpTopics = []*cobra.Command{
	environmentHelp,
	calculiHelp,
}

var environmentHelp = &cobra.Command{
	Use:   "environment",
	Short: "environment variables",
	Long: `
The qcalc command consults environment variables for configuration.
If an environment variable is unset or empty, sensible default setting is used.

	QCALC_DEBUG
		Comma-separated list of debug flags, such as:

		logsearch=1
			Trace every state of the refinement search.
		logclosure=N
			Trace algebraic closure: 1 logs inconsistencies,
			2 also logs every narrowed constraint.
		strict
			Verify the scenarios found by the refinement search.
		strategy=firstedge|alledges
			Default for the --strategy flag of qcalc split.
		merge=intersect|union|replace
			Default for the --merge flag of qcalc split.

QCALC_DEBUG is a comma-separated list of key-value strings, where the
value is a boolean "true" or "1" if omitted. For example:

	QCALC_DEBUG=logsearch=1,strict
`[1:],
}

var calculiHelp = &cobra.Command{
	Use:   "calculi",
	Short: "builtin calculi",
	Long: `
qcalc knows the following calculi:

	point
		The point algebra with base relations <, = and >.

	allen
		Allen's interval algebra with base relations
		< > = d di f fi m mi o oi s si.

Within a label, base relations may appear in any order and may repeat.
Labels are printed with their base relations sorted by name.
`[1:],
}
