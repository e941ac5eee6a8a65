package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for the avalanche CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "avalanche",
		Short: "Avalanche hazard classification for terrain photos",
		Long: `avalanche sends a mountain terrain photo to a vision model and classifies
the avalanche hazard (powder, loose-snow, slab, or none). The model's answer
is only accepted when its own structured observations corroborate it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(NewClassifyCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
