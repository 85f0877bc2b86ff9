package cmd

import (
	"fmt"
	"os"

	"github.com/LogicCuteGuy/WASMRS2USharp-sub001/core/config"
	"github.com/LogicCuteGuy/WASMRS2USharp-sub001/core/logger"
	"github.com/LogicCuteGuy/WASMRS2USharp-sub001/core/watcher"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Recompile whenever behaviour descriptors change",
	Long:  `Watches the project directory and reruns the compile pipeline when a descriptor or config file is saved.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := setupLogging(); err != nil {
			return err
		}
		logger.Debug("watch called")

		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		dw, err := watcher.New(wd, []string{cfg.Codegen.Output, ".git"}, func() error {
			written, err := runCompile()
			if err != nil {
				// Keep watching: a broken descriptor is fixed by the next save.
				logger.Error("Compile failed: %v", err)
				return nil
			}
			logger.Info("Recompiled, %d file(s) written", len(written))
			return nil
		})
		if err != nil {
			return err
		}
		defer dw.Close()

		logger.Info("Watching %s for descriptor changes...", wd)
		return dw.Watch()
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
