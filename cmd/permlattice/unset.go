package main

import (
	"errors"
	"fmt"

	"github.com/permlattice/permlattice/internal/permission"
	"github.com/spf13/cobra"
)

func newUnsetCommand() *cobra.Command {
	var (
		group  bool
		server string
		world  string
	)

	cmd := &cobra.Command{
		Use:   "unset <holder> <permission>",
		Short: "Remove a permanent permission node from a holder",
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

			b := permission.Builder(args[1])
			if server != "" {
				b = b.Server(server)
			}
			if world != "" {
				b = b.World(world)
			}

			if err := holder.UnsetPermission(b.Build()); err != nil {
				if errors.Is(err, permission.ErrLacks) {
					return fmt.Errorf("%s has no matching node for %q", args[0], args[1])
				}
				return err
			}

			return env.dir.Save(holder)
		},
	}

	cmd.Flags().BoolVar(&group, "group", false, "treat the holder as a group rather than a user")
	cmd.Flags().StringVar(&server, "server", "", "scope to a server")
	cmd.Flags().StringVar(&world, "world", "", "scope to a world")
	return cmd
}
