package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alevsk/resultset/internal/logger"
	"github.com/alevsk/resultset/internal/snapshot"
)

var approveCmd = &cobra.Command{
	Use:   "approve [name...]",
	Short: "Copy pending actual-value dumps over their stored resultsets",
	Long: `Approve accepts the output captured by failing assertions: each
named dump under the temp dir replaces its matching resultset and is then
removed. With no names, every matched pending dump is approved.`,
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

		wanted := make(map[string]bool, len(args))
		for _, name := range args {
			wanted[name] = true
		}

		approved := 0
		for _, p := range pending {
			if len(wanted) > 0 && !wanted[p.Name] {
				continue
			}
			if p.ExpectedPath == "" {
				if len(wanted) > 0 {
					return fmt.Errorf("no resultset matched for %s", p.Name)
				}
				logger.Warn().Str("dump", p.Name).Msg("skipping dump with no matching resultset")
				continue
			}
			if err := a.Approve(p); err != nil {
				return fmt.Errorf("approving %s: %w", p.Name, err)
			}
			fmt.Printf("approved %s -> %s\n", p.Name, p.ExpectedPath)
			approved++
		}
		if approved == 0 && len(wanted) > 0 {
			return fmt.Errorf("no pending dump matched the given names")
		}
		return nil
	},
}
