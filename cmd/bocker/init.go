package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sarkarghya/bocker/pkg/image"
	"github.com/sarkarghya/bocker/pkg/snapshot"
)

var initCmd = &cobra.Command{
	Use:   "init <directory>",
	Short: "Create an image from a local directory tree",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := snapshot.New(cfg.SnapshotRoot)
		pipeline := image.New(store)

		id, err := pipeline.Init(context.Background(), args[0])
		if err != nil {
			return err
		}

		fmt.Println(id)
		return nil
	},
}
