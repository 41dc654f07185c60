package db

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Manu343726/copro/cmd/status"
	"github.com/Manu343726/copro/pkg/browser"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the instruction database interactively",
	Long: `Opens a terminal browser listing all instructions. The selected instruction shows its description,
the layout of its hardware fields, its timings and its generated C++ function.

Keys: Tab switches between the list, the details and the filter; Esc or q quits.`,
	Args: cobra.NoArgs,
	Run: status.Run(func(cmd *cobra.Command, args []string) int {
		d, _, done, err := load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error %v\n", err)
			return 1
		}
		defer done()

		// the terminal belongs to the browser from now on
		g, err := NewGenerator(d, slog.New(slog.DiscardHandler))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error initializing codegen.Generator: %v\n", err)
			return 1
		}

		if err := browser.New(d, g).Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error running browser: %v\n", err)
			return 2
		}

		return 0
	}),
}
