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
	"runtime"

	"github.com/spf13/pflag"

	"qualcalc.org/go/internal/qcdebug"
)

// Common flags
const (
	flagJobs       flagName = "jobs"
	flagMaxNodes   flagName = "max-nodes"
	flagMerge      flagName = "merge"
	flagStats      flagName = "stats"
	flagStrategy   flagName = "strategy"
	flagValueOrder flagName = "value-order"
	flagYAML       flagName = "yaml"
)

func addStatsFlag(f *pflag.FlagSet) {
	f.Bool(string(flagStats), false, "print closure and search statistics")
}

func addYAMLOutFlag(f *pflag.FlagSet) {
	f.Bool(string(flagYAML), false, "write YAML instead of the text format")
}

func addPCFlags(f *pflag.FlagSet) {
	f.IntP(string(flagJobs), "j", runtime.GOMAXPROCS(0),
		"number of networks closed concurrently")
	addYAMLOutFlag(f)
}

func addSplitFlags(f *pflag.FlagSet) {
	// The defaults follow QCALC_DEBUG.
	f.String(string(flagStrategy), qcdebug.Flags.Strategy,
		"branching strategy (firstedge|alledges)")
	f.String(string(flagMerge), qcdebug.Flags.Merge,
		"how constraints are generalized into the other network (intersect|union|replace)")
	f.String(string(flagValueOrder), "canonical",
		"order in which base relations are tried (canonical|identity)")
	f.Int64(string(flagMaxNodes), 1_000_000,
		"maximum number of search states; 0 means no limit")
}

type flagName string

// ensureAdded detects if a flag is being used without it first being
// added to the flagSet. Because flagNames are global, it is quite
// easy to accidentally use a flag in a command without adding it to
// the flagSet.
func (f flagName) ensureAdded(cmd *Command) {
	if cmd.Flags().Lookup(string(f)) == nil {
		panic(fmt.Sprintf("Cmd %q uses flag %q without adding it", cmd.Name(), f))
	}
}

func (f flagName) Bool(cmd *Command) bool {
	f.ensureAdded(cmd)
	v, _ := cmd.Flags().GetBool(string(f))
	return v
}

func (f flagName) Int(cmd *Command) int {
	f.ensureAdded(cmd)
	v, _ := cmd.Flags().GetInt(string(f))
	return v
}

func (f flagName) Int64(cmd *Command) int64 {
	f.ensureAdded(cmd)
	v, _ := cmd.Flags().GetInt64(string(f))
	return v
}

func (f flagName) String(cmd *Command) string {
	f.ensureAdded(cmd)
	v, _ := cmd.Flags().GetString(string(f))
	return v
}
