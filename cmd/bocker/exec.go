package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/sarkarghya/bocker/pkg/attach"
	"github.com/sarkarghya/bocker/pkg/snapshot"
)

var execCmd = &cobra.Command{
	Use:   "exec <container_id> <cmd...>",
	Short: "Run a command inside a running container",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := snapshot.New(cfg.SnapshotRoot)
		attacher := attach.New(store)

		return attacher.Exec(context.Background(), args[0], args[1:])
	},
}
