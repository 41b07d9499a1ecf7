package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/milk9111/fpscontroller/ability"
	"github.com/milk9111/fpscontroller/character"
	"github.com/milk9111/fpscontroller/logger"
	"github.com/milk9111/fpscontroller/prefabs"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [template.yaml...]",
		Short: "Check character templates against the schema",
		Long:  `Validate the named character templates, or every character template in the prefab directory and the embedded set when none are named.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := args
			if len(names) == 0 {
				all, err := prefabs.List()
				if err != nil {
					return err
				}
				names = characterPrefabs(all)
			}

			failed := 0
			for _, name := range names {
				if err := validateCharacter(name); err != nil {
					failed++
					fmt.Fprintf(cmd.OutOrStdout(), "FAIL %s: %v\n", name, err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "ok   %s\n", name)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d templates invalid", failed, len(names))
			}
			return nil
		},
	}
}

// characterPrefabs keeps the prefabs that look like character templates.
// Levels and scenarios are skipped.
func characterPrefabs(names []string) []string {
	var out []string
	for _, n := range names {
		data, err := prefabs.Load(n)
		if err != nil {
			continue
		}
		var keys map[string]any
		if err := yaml.Unmarshal(data, &keys); err != nil {
			continue
		}
		if _, ok := keys["stats"]; ok {
			out = append(out, n)
		}
	}
	return out
}

func validateCharacter(name string) error {
	spec, err := prefabs.LoadCharacterSpec(name)
	if err != nil {
		return err
	}
	if _, err := spec.Template(); err != nil {
		return err
	}
	if _, err := spec.ControllerConfig(); err != nil {
		return err
	}
	if spec.Script != "" {
		def, err := spec.ScriptDefinition()
		if err != nil {
			return err
		}
		_, err = ability.Compile(def, logger.Discard())
		return err
	}
	_, err = character.DefaultRegistry().New(spec.Variant)
	return err
}
