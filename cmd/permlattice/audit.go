package main

import (
	"context"
	"fmt"

	auditpkg "github.com/permlattice/permlattice/internal/audit"
	"github.com/spf13/cobra"
)

func newAuditCommand() *cobra.Command {
	var holderName, kind string
	var page, pageSize int

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Query the permission lifecycle audit trail",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, cleanup, err := newEnvironment(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			if env.audit == nil {
				return fmt.Errorf("audit is disabled in configuration")
			}

			logs, total, err := env.audit.GetLogs(context.Background(), auditpkg.LogFilters{
				ObjectName: holderName,
				Kind:       kind,
				Page:       page,
				PageSize:   pageSize,
			})
			if err != nil {
				return err
			}

			fmt.Printf("%d event(s) total\n", total)
			for _, e := range logs {
				if e.GroupName != "" {
					fmt.Printf("[%d] %s %s group=%s\n", e.Timestamp, e.ObjectName, e.Kind, e.GroupName)
					continue
				}
				fmt.Printf("[%d] %s %s %s=%t\n", e.Timestamp, e.ObjectName, e.Kind, e.Permission, e.Value)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&holderName, "holder", "", "filter by holder name")
	cmd.Flags().StringVar(&kind, "kind", "", "filter by event kind (node_set, node_unset, node_expire, group_remove)")
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 50, "results per page")
	return cmd
}
