package db

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Manu343726/copro/cmd/status"
	"github.com/Manu343726/copro/pkg/hw/copro/instructions"
	"github.com/Manu343726/copro/pkg/utils"
)

var (
	class   string
	verbose bool

	errMalformedAssignment = errors.New("expected NAME=VALUE")

	colorName     = color.New(color.FgYellow, color.Bold)
	colorArgument = color.New(color.FgGreen)
	colorValue    = color.New(color.FgCyan)
)

// Parses NAME=VALUE arguments. Values may be given in any base Go accepts (0x, 0b, 0o).
func parseAssignments(args []string) (map[string]uint32, error) {
	values := make(map[string]uint32, len(args))

	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return nil, utils.MakeError(errMalformedAssignment, "'%v'", arg)
		}

		parsed, err := strconv.ParseUint(value, 0, 32)
		if err != nil {
			return nil, utils.MakeError(errMalformedAssignment, "'%v': %v", arg, err)
		}

		values[name] = uint32(parsed)
	}

	return values, nil
}

func printAssignments(values map[string]uint32, widths map[string]int) {
	for _, name := range utils.SortedKeys(values) {
		fmt.Printf("  %v = %v", colorArgument.Sprint(utils.PadRight(name, 6)), colorValue.Sprint(values[name]))

		if width, ok := widths[name]; ok && width > 0 {
			fmt.Printf(" (0b%v)", utils.FormatUintBinary(uint64(values[name]), width))
		}

		fmt.Println()
	}
}

func argumentWidths(instruction *instructions.Instruction) map[string]int {
	widths := make(map[string]int)
	for _, argument := range instruction.Arguments() {
		widths[argument.Name] = argument.Width()
	}
	return widths
}

var decodeCmd = &cobra.Command{
	Use:   "decode FIELD=VALUE...",
	Short: "Decode a hardware instruction into its software instruction",
	Long: `Finds the software instruction encoded by the given coprocessor instruction class and hardware
field values, e.g.

  copro db decode -i encodings.csv --class MCR CPNUM=6 op1=7 CRn=1 Rt=3

Fields not given are zero.`,
	Run: status.Run(func(cmd *cobra.Command, args []string) int {
		fields, err := parseAssignments(args)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing hardware fields: %v\n", err)
			return 1
		}

		d, _, done, err := load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error %v\n", err)
			return 1
		}
		defer done()

		decoded, err := d.Decode(instructions.Class(strings.ToUpper(class)), fields)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error decoding instruction: %v\n", err)
			return 2
		}

		if decoded == nil {
			fmt.Fprintf(os.Stderr, "No %v instruction matches %v\n", class, strings.Join(args, " "))
			return 3
		}

		fmt.Printf("%v (%v)\n", colorName.Sprint(decoded.Name), decoded.Pair.Hardware.Name)
		printAssignments(decoded.Arguments, argumentWidths(decoded.Pair.Software))

		if verbose {
			spew.Dump(decoded.Pair)
		}

		return 0
	}),
}

var encodeCmd = &cobra.Command{
	Use:   "encode INSTRUCTION ARGUMENT=VALUE...",
	Short: "Encode a software instruction into its hardware fields",
	Long: `Computes the coprocessor instruction class and hardware field values of a software instruction, e.g.

  copro db encode -i encodings.csv ve_add_8 Dest=2 Src0=4 Src1=6`,
	Args: cobra.MinimumNArgs(1),
	Run: status.Run(func(cmd *cobra.Command, args []string) int {
		arguments, err := parseAssignments(args[1:])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing arguments: %v\n", err)
			return 1
		}

		d, _, done, err := load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error %v\n", err)
			return 1
		}
		defer done()

		encoded, err := d.Encode(args[0], arguments)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding instruction: %v\n", err)
			return 2
		}

		fmt.Printf("%v (%v)\n", colorName.Sprint(encoded.Pair.Hardware.Name), encoded.Class)
		printAssignments(encoded.Fields, argumentWidths(encoded.Pair.Hardware.Instruction))

		if verbose {
			spew.Dump(encoded.Pair)
		}

		return 0
	}),
}

func init() {
	decodeCmd.Flags().StringVarP(&class, "class", "c", "", "Coprocessor instruction class (CDP, CDP2, MCR, MCR2, MCRR, MCRR2)")
	cobra.CheckErr(decodeCmd.MarkFlagRequired("class"))

	for _, command := range []*cobra.Command{decodeCmd, encodeCmd} {
		command.Flags().BoolVarP(&verbose, "verbose", "v", false, "Dump the whole matching instruction pair")
	}
}
