package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHasCommand() *cobra.Command {
	var group bool
	var server, world string

	cmd := &cobra.Command{
		Use:   "has <holder> <permission>",
		Short: "Report whether a holder's resolved permissions grant, deny, or say nothing about a permission",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, cleanup, err := newEnvironment(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			holder, err := getOrCreateHolder(env, group, args[0])
			if err != nil {
				return err
			}

			ctx := resolutionContext(cmd, env.cfg, server, world)
			result := holder.HasPermission(ctx, args[1])
			fmt.Println(result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&group, "group", false, "treat the holder as a group rather than a user")
	cmd.Flags().StringVar(&server, "server", "", "evaluate as if on this server")
	cmd.Flags().StringVar(&world, "world", "", "evaluate as if on this world")
	return cmd
}
