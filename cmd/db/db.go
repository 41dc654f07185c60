package db

import (
	"github.com/spf13/cobra"
)

// DbCmd groups the commands working on the instruction database
var DbCmd = &cobra.Command{
	Use:   "db",
	Short: "Coprocessor instruction database commands",
	Long: `Loads the coprocessor instruction database from the encodings table (--encodings) and,
optionally, the descriptions (--descriptions) and timings (--timings) tables.`,
}

func init() {
	DbCmd.AddCommand(generateCmd, decodeCmd, encodeCmd, dumpCmd, browseCmd)
}
