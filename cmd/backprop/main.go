// Package main provides the backprop CLI.
//
// Commands:
//
//	backprop version     Show version
//	backprop train       Train a two-layer classifier on synthetic blobs
//	backprop eval        Evaluate a saved classifier
//	backprop gradcheck   Verify layer gradients with finite differences
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
)

const version = "v0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Printf("backprop: %v", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "backprop",
		Short:         "Minimal feed-forward network toolkit",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newVersionCmd(),
		newTrainCmd(),
		newGradcheckCmd(),
		newEvalCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "backprop %s\n", version)
		},
	}
}
