package cmd

import (
	"os"

	"github.com/LogicCuteGuy/WASMRS2USharp-sub001/core/logger"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "wasmrs2usharp",
	Short: "Compiles Rust behaviour units into UdonSharp.",
	Long: `wasmrs2usharp translates analyzed Rust behaviour units into UdonSharp,
the restricted C# dialect executed by the VRChat Udon VM. It validates types
and attributes against the target dialect, orders behaviours by dependency,
and organizes the generated classes into cross-referencing files.`,
}

var logfile string
var verbose bool

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func setupLogging() error {
	logger.SetVerbose(verbose)
	if logfile != "" {
		f, err := os.OpenFile(logfile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return err
		}
		logger.AddWriterForAll(f)
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logfile, "logfile", "", "File to write logs to")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Verbose output")
}
