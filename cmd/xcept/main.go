// Command xcept demonstrates the exception bridge end to end: capturing
// native panics for a foreign caller, passing foreign handles through nested
// trampolines, and verifying that every captured box is destroyed.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/deepnoodle-ai/xcept"
)

var version = "dev"

func main() {
	root := &cobra.Command{
		Use:           "xcept",
		Short:         "Cross-boundary exception bridge",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configureLogging()
		},
	}
	root.PersistentFlags().String("log-level", "warn", "Log level (trace, debug, info, warn, error)")
	root.PersistentFlags().Bool("log-json", false, "Emit logs as JSON")
	viper.BindPFlag("log-level", root.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log-json", root.PersistentFlags().Lookup("log-json"))
	viper.SetEnvPrefix("xcept")
	viper.AutomaticEnv()

	root.AddCommand(newDemoCommand())
	root.AddCommand(newVersionCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func configureLogging() {
	level, err := zerolog.ParseLevel(viper.GetString("log-level"))
	if err != nil {
		level = zerolog.WarnLevel
	}
	var logger zerolog.Logger
	if viper.GetBool("log-json") {
		logger = zerolog.New(os.Stderr)
	} else {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	xcept.SetLogger(logger.Level(level).With().Timestamp().Logger())
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version)
		},
	}
}
