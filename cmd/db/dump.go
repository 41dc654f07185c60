package db

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Manu343726/copro/cmd/status"
)

var dumpOutput string

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Dump the instruction database as YAML",
	Long: `Writes every instruction pair of the database as YAML: hardware and software arguments with their
bits (least significant first), descriptions and timings.`,
	Args: cobra.NoArgs,
	Run: status.Run(func(cmd *cobra.Command, args []string) int {
		d, _, done, err := load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error %v\n", err)
			return 1
		}
		defer done()

		if err := WriteOutput(dumpOutput, d.DumpYAML); err != nil {
			fmt.Fprintf(os.Stderr, "Error dumping database: %v\n", err)
			return 2
		}

		return 0
	}),
}

func init() {
	dumpCmd.Flags().StringVarP(&dumpOutput, "output", "o", "", "Output file. If omitted, the database is written to stdout")
}
