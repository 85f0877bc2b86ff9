package cmd

import (
	"fmt"
	"os"

	"github.com/LogicCuteGuy/WASMRS2USharp-sub001/core/logger"
	"github.com/LogicCuteGuy/WASMRS2USharp-sub001/core/scaffold"
	"github.com/spf13/cobra"
)

var (
	force bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new behaviour compilation project",
	Long:  `Creates a project config and an example behaviour descriptor in a new directory.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := setupLogging(); err != nil {
			return err
		}
		logger.Debug("init called")

		dir := args[0]
		if _, err := os.Stat(dir); err == nil {
			if !force {
				fmt.Printf("Directory %s already exists. Use --force to overwrite.\n", dir)
				return nil
			}
			logger.Debug("Directory %s already exists. Overwriting.", dir)
			os.RemoveAll(dir)
		}

		if err := scaffold.Init(dir); err != nil {
			return fmt.Errorf("failed to generate project: %w", err)
		}

		fmt.Printf("Successfully generated project: %s\n", dir)
		fmt.Printf("Next Steps:\n")
		fmt.Printf("  - cd %s\n", dir)
		fmt.Printf("  - wasmrs2usharp compile\n")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVar(&force, "force", false, "Force overwrite existing files")
}
