package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sarkarghya/bocker/pkg/snapshot"
)

var imagesCmd = &cobra.Command{
	Use:   "images",
	Short: "List images with their origin",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := snapshot.New(cfg.SnapshotRoot)
		ids, err := store.List(context.Background(), "img_")
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "IMAGE ID\tSOURCE")
		for _, id := range ids {
			source, _ := os.ReadFile(filepath.Join(store.Root, id, "img.source"))
			fmt.Fprintf(w, "%s\t%s\n", id, strings.TrimSpace(string(source)))
		}
		return w.Flush()
	},
}

var psCmd = &cobra.Command{
	Use:   "ps",
	Short: "List containers with their command",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := snapshot.New(cfg.SnapshotRoot)
		ids, err := store.List(context.Background(), "ps_")
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "CONTAINER ID\tCOMMAND")
		for _, id := range ids {
			cmdContent, _ := os.ReadFile(filepath.Join(store.Root, id, id+".cmd"))
			fmt.Fprintf(w, "%s\t%s\n", id, strings.TrimSpace(string(cmdContent)))
		}
		return w.Flush()
	},
}
