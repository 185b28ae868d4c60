package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sarkarghya/bocker/pkg/image"
	"github.com/sarkarghya/bocker/pkg/snapshot"
)

var pullCmd = &cobra.Command{
	Use:   "pull <name> <tag>",
	Short: "Fetch and materialize a remote image",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := snapshot.New(cfg.SnapshotRoot)
		pipeline := image.New(store)

		id, err := pipeline.Pull(context.Background(), args[0], args[1])
		if err != nil {
			return err
		}

		fmt.Println(id)
		return nil
	},
}
