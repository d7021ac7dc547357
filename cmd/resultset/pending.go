package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alevsk/resultset/internal/report"
	"github.com/alevsk/resultset/internal/snapshot"
)

var pendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "List the actual-value dumps awaiting review",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := snapshot.New(cfg)
		pending, err := a.Pending()
		if err != nil {
			return fmt.Errorf("listing pending dumps: %w", err)
		}
		if len(pending) == 0 {
			fmt.Println("no pending dumps")
			return nil
		}
		report.WritePending(os.Stdout, pending)
		return nil
	},
}
