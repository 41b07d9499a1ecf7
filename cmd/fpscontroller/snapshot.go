package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/milk9111/fpscontroller/store"
)

func openStore() (store.Repository, func(), error) {
	client, err := store.NewClient(cfg.RedisAddr)
	if err != nil {
		return nil, nil, err
	}
	repo, err := store.NewRedis(&store.RedisConfig{Client: client})
	if err != nil {
		_ = client.Close()
		return nil, nil, err
	}
	return repo, func() { _ = client.Close() }, nil
}

func newSnapshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Inspect controller snapshots saved in redis",
	}

	var output string
	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Print a saved snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, closeRepo, err := openStore()
			if err != nil {
				return err
			}
			defer closeRepo()
			out, err := repo.Get(cmd.Context(), store.GetInput{ID: args[0]})
			if err != nil {
				return err
			}
			return writeResult(cmd.OutOrStdout(), output, out.Snapshot)
		},
	}
	get.Flags().StringVarP(&output, "output", "o", "yaml", "output format: yaml or json")

	list := &cobra.Command{
		Use:   "list",
		Short: "List saved snapshot ids",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, closeRepo, err := openStore()
			if err != nil {
				return err
			}
			defer closeRepo()
			out, err := repo.List(cmd.Context(), store.ListInput{})
			if err != nil {
				return err
			}
			for _, id := range out.IDs {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a saved snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, closeRepo, err := openStore()
			if err != nil {
				return err
			}
			defer closeRepo()
			_, err = repo.Delete(cmd.Context(), store.DeleteInput{ID: args[0]})
			return err
		},
	}

	cmd.AddCommand(get, list, del)
	return cmd
}
