package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alevsk/resultset/internal/snapshot"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the temp dir and the diff-command log",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := snapshot.New(cfg)
		if err := a.Clean(); err != nil {
			return fmt.Errorf("cleaning diagnostic artifacts: %w", err)
		}
		fmt.Println("diagnostic artifacts removed")
		return nil
	},
}
