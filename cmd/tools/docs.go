package tools

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Manu343726/copro/cmd/db"
	"github.com/Manu343726/copro/cmd/status"
	"github.com/Manu343726/copro/pkg/hw/copro/database"
	"github.com/Manu343726/copro/pkg/hw/copro/instructions"
)

// Finds an instruction by hardware or software name
func findPair(d *database.Database, name string) (*instructions.Pair, error) {
	if pair, err := d.Pair(name); err == nil {
		return pair, nil
	}

	return d.PairBySoftwareName(strings.ToLower(name))
}

// Returns the documentation of an instruction: its description followed by the
// layout of its fields
func documentation(d *database.Database, pair *instructions.Pair) (string, error) {
	var doc strings.Builder

	if description, ok := d.Description(pair.Hardware.Name); ok {
		for _, line := range description {
			doc.WriteString(line + "\n")
		}
		doc.WriteString("\n")
	}

	fields, err := pair.Documentation(0)
	if err != nil {
		return "", err
	}

	doc.WriteString(fields)
	return doc.String(), nil
}

var docsCmd = &cobra.Command{
	Use:   "docs instruction...",
	Short: "Show the documentation of coprocessor instructions",
	Long: `Dumps the documentation of the given instructions (hardware or software names): description and
layout of every hardware field.
By default the tool dumps the documentation to stdout, but it can be redirected to a file using the --output flag.`,
	Args: cobra.MinimumNArgs(1),
	Run: status.Run(func(cmd *cobra.Command, args []string) int {
		logger, closer, err := db.NewLogger()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error setting up logging: %v\n", err)
			return 1
		}
		defer closer.Close()

		d, err := db.LoadDatabase(logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading instruction database: %v\n", err)
			return 1
		}

		var docs []string
		for _, name := range args {
			pair, err := findPair(d, name)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return 2
			}

			doc, err := documentation(d, pair)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error documenting %v: %v\n", name, err)
				return 2
			}

			docs = append(docs, doc)
		}

		outputFile, _ := cmd.Flags().GetString("output")
		err = db.WriteOutput(outputFile, func(w io.Writer) error {
			_, err := fmt.Fprintln(w, strings.Join(docs, "\n"))
			return err
		})
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error writing documentation:", err)
			return 1
		}

		return 0
	}),
}

func init() {
	ToolsCmd.AddCommand(docsCmd)
	docsCmd.Flags().StringP("output", "o", "", "Output file. If not specified, the documentation is dumped to stdout.")
}
