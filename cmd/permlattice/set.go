package main

import (
	"errors"
	"fmt"

	"github.com/permlattice/permlattice/internal/permission"
	"github.com/spf13/cobra"
)

func newSetCommand() *cobra.Command {
	var (
		group   bool
		value   bool
		server  string
		world   string
		expires int64
	)

	cmd := &cobra.Command{
		Use:   "set <holder> <permission>",
		Short: "Add a permanent permission node to a holder",
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

			b := permission.Builder(args[1]).Value(value)
			if server != "" {
				b = b.Server(server)
			}
			if world != "" {
				b = b.World(world)
			}
			if expires > 0 {
				b = b.Expiry(expires)
			}

			if err := holder.SetPermission(b.Build()); err != nil {
				if errors.Is(err, permission.ErrAlreadyHas) {
					return fmt.Errorf("%s already has an equivalent node for %q", args[0], args[1])
				}
				return err
			}

			return env.dir.Save(holder)
		},
	}

	cmd.Flags().BoolVar(&group, "group", false, "treat the holder as a group rather than a user")
	cmd.Flags().BoolVar(&value, "value", true, "grant (true) or deny (false)")
	cmd.Flags().StringVar(&server, "server", "", "scope to a server")
	cmd.Flags().StringVar(&world, "world", "", "scope to a world")
	cmd.Flags().Int64Var(&expires, "expires", 0, "unix timestamp the node expires at")
	return cmd
}

func getOrCreateHolder(env *environment, group bool, name string) (*permission.Holder, error) {
	if group {
		return env.dir.GetOrCreateGroup(name)
	}
	return env.dir.GetOrCreateUser(name)
}
