package db

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Manu343726/copro/cmd/status"
	"github.com/Manu343726/copro/pkg/utils"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the C++ header with the coprocessor instruction functions",
	Long: `Generates a C++ header with one inline function per software instruction. Each function
checks its template arguments at compile time, packs them into the hardware fields, issues the
coprocessor instruction and stalls the pipeline until its write back (see post_cc).

The header is written to --output, or to stdout with syntax highlighting when stdout is a terminal.`,
	Args: cobra.NoArgs,
	Run: status.Run(func(cmd *cobra.Command, args []string) int {
		d, logger, done, err := load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error %v\n", err)
			return 1
		}
		defer done()

		g, err := NewGenerator(d, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error initializing codegen.Generator: %v\n", err)
			return 1
		}

		outputFile := viper.GetString("output")

		if outputFile != "" {
			err = g.Generate(outputFile)
		} else if color.NoColor {
			err = g.GenerateTo(os.Stdout)
		} else {
			var code []byte
			if code, err = g.Render(); err == nil {
				fmt.Print(utils.HighlightCppCode(string(code)))
			}
		}

		if err != nil {
			fmt.Fprintf(os.Stderr, "Error generating header: %v\n", err)
			return 2
		}

		return 0
	}),
}

func init() {
	generateCmd.Flags().StringP("output", "o", "", "Output file. If omitted, the header is written to stdout")
	generateCmd.Flags().String("include", "", "Header included by the generated file (default \"ethosn_ple/utils.h\")")
	cobra.CheckErr(viper.BindPFlag("output", generateCmd.Flags().Lookup("output")))
	cobra.CheckErr(viper.BindPFlag("codegen.include", generateCmd.Flags().Lookup("include")))
}
