package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/sarkarghya/bocker/pkg/runtime"
)

var commitCmd = &cobra.Command{
	Use:   "commit <container_id> <image_id>",
	Short: "Replace an image with a container's current state",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		sup := runtime.New(cfg)
		return sup.Commit(context.Background(), args[0], args[1])
	},
}
