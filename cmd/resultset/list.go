package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alevsk/resultset/internal/report"
	"github.com/alevsk/resultset/internal/snapshot"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the resultset snapshots stored under the project root",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := snapshot.New(cfg)
		infos, err := a.Snapshots()
		if err != nil {
			return fmt.Errorf("listing snapshots: %w", err)
		}
		if len(infos) == 0 {
			fmt.Println("no resultsets found")
			return nil
		}
		report.WriteSnapshots(os.Stdout, infos)
		return nil
	},
}
