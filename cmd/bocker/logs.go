package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sarkarghya/bocker/pkg/runtime"
)

var logsCmd = &cobra.Command{
	Use:   "logs <container_id>",
	Short: "Print a container's captured output",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sup := runtime.New(cfg)

		content, err := sup.Logs(context.Background(), args[0])
		if err != nil {
			return err
		}

		fmt.Print(content)
		return nil
	},
}
