package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sarkarghya/bocker/pkg/bockerr"
	"github.com/sarkarghya/bocker/pkg/config"
	"github.com/sarkarghya/bocker/pkg/log"
	"github.com/sarkarghya/bocker/pkg/runtime"
)

// Version information (set via ldflags during build).
var (
	Version = "dev"
	Commit  = "unknown"
)

var cfg config.Config

func main() {
	// A re-exec'd invocation is the in-namespace init stage for a
	// running container's payload command, not a normal CLI call.
	if os.Getenv(runtime.ReexecEnv) == "1" {
		if len(os.Args) != 3 {
			fmt.Fprintln(os.Stderr, "bocker: invalid re-exec arguments")
			os.Exit(1)
		}
		if err := runtime.NSInit(os.Args[1], os.Args[2]); err != nil {
			fmt.Fprintf(os.Stderr, "bocker: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(bockerr.CategoryOf(err).ExitCode())
	}
}

var rootCmd = &cobra.Command{
	Use:     "bocker",
	Short:   "bocker - a minimal Linux container engine",
	Version: Version,
	Long: `bocker manages images and containers on a copy-on-write
filesystem, isolates processes with kernel namespaces, connects them to
a host bridge, and constrains their resource usage via cgroups.`,
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("bocker version %s (%s)\n", Version, Commit))

	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Output logs in JSON format")
	rootCmd.PersistentFlags().String("snapshot-root", "", "Snapshot store root (default /var/lib/bocker)")
	rootCmd.PersistentFlags().String("bridge", "", "Host bridge interface name (default bridge0)")
	rootCmd.PersistentFlags().String("nameserver", "", "Container resolv.conf nameserver (default 8.8.8.8)")
	rootCmd.PersistentFlags().Int("cpu-share", 0, "Legacy CPU share (default 512)")
	rootCmd.PersistentFlags().Int("mem-limit", 0, "Memory ceiling in megabytes (default 512)")

	cobra.OnInitialize(initEngine)

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(pullCmd)
	rootCmd.AddCommand(imagesCmd)
	rootCmd.AddCommand(psCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(execCmd)
	rootCmd.AddCommand(logsCmd)
	rootCmd.AddCommand(commitCmd)
	rootCmd.AddCommand(rmCmd)
}

func initEngine() {
	logLevel, _ := rootCmd.PersistentFlags().GetString("log-level")
	logJSON, _ := rootCmd.PersistentFlags().GetBool("log-json")
	log.Init(log.Config{Level: log.Level(logLevel), JSONOutput: logJSON, Output: os.Stderr})

	snapshotRoot, _ := rootCmd.PersistentFlags().GetString("snapshot-root")
	bridge, _ := rootCmd.PersistentFlags().GetString("bridge")
	nameserver, _ := rootCmd.PersistentFlags().GetString("nameserver")
	cpuShare, _ := rootCmd.PersistentFlags().GetInt("cpu-share")
	memLimit, _ := rootCmd.PersistentFlags().GetInt("mem-limit")

	cfg = config.Config{
		SnapshotRoot:      snapshotRoot,
		BridgeName:        bridge,
		Nameserver:        nameserver,
		DefaultCPUShare:   cpuShare,
		DefaultMemLimitMB: memLimit,
	}.WithDefaults()
}
