package cmd

import (
	"fmt"

	"github.com/LogicCuteGuy/WASMRS2USharp-sub001/core/version"
	"github.com/spf13/cobra"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display the compiler version",
	Long:  `Displays the version of wasmrs2usharp.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("wasmrs2usharp %s\n", version.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
