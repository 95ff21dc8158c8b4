package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configDir string

func main() {
	rootCmd := &cobra.Command{
		Use:   "rackd",
		Short: "rackd - rack network control-plane daemon",
		Long:  "rackd owns the event-sourced configuration of one rack's trunks and WANs, and tracks their link/gateway state.",
	}

	rootCmd.PersistentFlags().StringVar(&configDir, "config", "conf", "Directory holding default.yaml and the RUN_MODE overlay")

	rootCmd.AddCommand(daemonCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
