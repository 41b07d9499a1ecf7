package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/milk9111/fpscontroller/logger"
	"github.com/milk9111/fpscontroller/prefabs"
	"github.com/milk9111/fpscontroller/sim"
	"github.com/milk9111/fpscontroller/store"
)

func newSimulateCmd() *cobra.Command {
	var (
		output   string
		saveAs   string
		trace    bool
		tickRate float64
	)
	cmd := &cobra.Command{
		Use:   "simulate <scenario.yaml>",
		Short: "Run a scenario headlessly and print the final state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := prefabs.LoadScenarioSpec(args[0])
			if err != nil {
				return err
			}
			if tickRate > 0 {
				spec.TickRate = tickRate
			}

			opts := sim.Options{Workers: cfg.Workers, Log: logger.L()}
			if trace {
				opts.Observe = func(f sim.Frame) {
					logger.L().Debug("tick", "tick", f.Tick, "step", f.Step,
						"position", f.State.Position, "yaw", f.State.Yaw, "locomotion", f.State.Locomotion)
				}
			}
			res, err := sim.Run(cmd.Context(), spec, opts)
			if err != nil {
				return err
			}

			if saveAs != "" {
				if err := saveSnapshot(cmd, saveAs, res); err != nil {
					return err
				}
			}
			return writeResult(cmd.OutOrStdout(), output, res)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "yaml", "output format: yaml or json")
	cmd.Flags().StringVar(&saveAs, "save", "", "save the final state to redis under this id")
	cmd.Flags().BoolVar(&trace, "trace", false, "log every tick at debug level")
	cmd.Flags().Float64Var(&tickRate, "tick-rate", 0, "override the scenario tick rate")
	return cmd
}

func saveSnapshot(cmd *cobra.Command, id string, res sim.Result) error {
	repo, closeRepo, err := openStore()
	if err != nil {
		return err
	}
	defer closeRepo()
	if _, err := repo.Save(cmd.Context(), store.SaveInput{ID: id, State: res.Final}); err != nil {
		return err
	}
	logger.L().Info("snapshot saved", "id", id)
	return nil
}

func writeResult(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml", "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
