package main

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sarkarghya/bocker/pkg/runtime"
)

var runCmd = &cobra.Command{
	Use:   "run <image_id> <cmd...>",
	Short: "Create and run a container in the foreground",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		imageID := args[0]
		payload := strings.Join(args[1:], " ")

		sup := runtime.New(cfg)
		id, payloadErr, err := sup.Run(context.Background(), imageID, payload, os.Stdin, os.Stdout, os.Stderr)
		if err != nil {
			return err
		}

		cmd.PrintErrf("container %s exited\n", id)
		if payloadErr != nil {
			cmd.PrintErrf("payload error: %v\n", payloadErr)
		}
		return nil
	},
}
