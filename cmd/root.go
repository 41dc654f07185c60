package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Manu343726/copro/cmd/db"
	"github.com/Manu343726/copro/cmd/status"
	"github.com/Manu343726/copro/cmd/tools"
)

var cfgFile string
var profiler interface{ Stop() }

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "copro",
	Short: "Coprocessor instruction database tools",
	Long: `Copro builds a bit exact model of the coprocessor instruction set from its
encodings, descriptions and timings tables (CSV exports of the instruction set spreadsheet).

The model is used to generate the C++ header wrapping every instruction into an inline
function, to decode raw hardware instructions back into software instructions, and to
browse and document the instruction set.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		switch mode := viper.GetString("profile"); mode {
		case "":
		case "cpu":
			profiler = profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook)
		case "mem":
			profiler = profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.NoShutdownHook)
		default:
			return fmt.Errorf("unknown profile mode '%v', expected cpu or mem", mode)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if profiler != nil {
			profiler.Stop()
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := RootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}

	os.Exit(status.Code())
}

func init() {
	RootCmd.AddCommand(tools.ToolsCmd, db.DbCmd)
	cobra.OnInitialize(initConfig)

	flags := RootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.copro.yaml)")
	flags.StringP("encodings", "i", "", "Instruction encodings table (CSV)")
	flags.StringP("descriptions", "d", "", "Instruction descriptions table (CSV)")
	flags.StringP("timings", "t", "", "Instruction pipeline timings table (CSV)")
	flags.String("log-level", "info", "Log level: debug, info, warn or error")
	flags.String("log-file", "", "Also write JSON logs to this file")
	flags.String("profile", "", "Profile the command: cpu or mem. Profiles are written to the working directory")

	for key, flag := range map[string]string{
		"encodings":    "encodings",
		"descriptions": "descriptions",
		"timings":      "timings",
		"log.level":    "log-level",
		"log.file":     "log-file",
		"profile":      "profile",
	} {
		cobra.CheckErr(viper.BindPFlag(key, flags.Lookup(flag)))
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".copro" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".copro")
	}

	viper.SetEnvPrefix("copro")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
