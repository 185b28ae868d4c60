package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/sarkarghya/bocker/pkg/runtime"
)

var rmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete an image or container",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sup := runtime.New(cfg)
		return sup.Remove(context.Background(), args[0])
	},
}
