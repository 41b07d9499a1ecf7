// Command fpscontroller runs, validates and inspects character controllers.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/milk9111/fpscontroller/config"
	"github.com/milk9111/fpscontroller/logger"
	"github.com/milk9111/fpscontroller/prefabs"
)

var cfg config.Config

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "fpscontroller",
		Short:         "First-person character controller toolkit",
		Long:          `Simulate scripted input against character templates, validate templates and inspect saved snapshots.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.String("log-level", "", "log level: debug, info, warn, error")
	flags.String("log-format", "", "log format: console, text, json")
	flags.String("prefabs", "", "directory overriding the embedded prefabs")
	flags.String("redis", "", "redis address for snapshots")

	root.AddCommand(newSimulateCmd(), newValidateCmd(), newSnapshotCmd(), newSandboxCmd())
	return root
}

// setup loads the environment config, applies flag overrides and installs
// the logger.
func setup(cmd *cobra.Command) error {
	loaded, err := config.Load()
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	override := func(name string, dst *string) {
		if flags.Changed(name) {
			*dst, _ = flags.GetString(name)
		}
	}
	override("log-level", &loaded.LogLevel)
	override("log-format", &loaded.LogFormat)
	override("prefabs", &loaded.PrefabsDir)
	override("redis", &loaded.RedisAddr)
	if err := loaded.Validate(); err != nil {
		return err
	}

	cfg = loaded
	logger.Init(cfg.Logger())
	prefabs.SetDir(cfg.PrefabsDir)
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
