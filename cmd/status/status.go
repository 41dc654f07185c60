// Package status carries the exit status of a command out of its Run function,
// so deferred cleanup and the persistent post run hooks (profiling) still run
// when the command fails.
package status

import (
	"github.com/spf13/cobra"
)

var code int

// Returns the status recorded by the last command run with [Run]
func Code() int {
	return code
}

// Adapts a command body returning an exit status to a cobra Run function. The
// process is not terminated, Execute exits with [Code] once cobra returns.
func Run(body func(cmd *cobra.Command, args []string) int) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		code = body(cmd, args)
	}
}
