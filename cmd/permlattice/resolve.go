package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

func newResolveCommand() *cobra.Command {
	var group bool
	var server, world string
	var possible []string
	var lower bool

	cmd := &cobra.Command{
		Use:   "resolve <holder>",
		Short: "Print a holder's fully resolved, inherited, exported permission set",
		Args:  cobra.ExactArgs(1),
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
			exported := holder.ExportNodes(ctx, possible, lower, env.cfg.Resolution.Expander())

			keys := make([]string, 0, len(exported))
			for k := range exported {
				keys = append(keys, k)
			}
			sort.Strings(keys)

			for _, k := range keys {
				fmt.Printf("%s=%t\n", k, exported[k])
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&group, "group", false, "treat the holder as a group rather than a user")
	cmd.Flags().StringVar(&server, "server", "", "evaluate as if on this server")
	cmd.Flags().StringVar(&world, "world", "", "evaluate as if on this world")
	cmd.Flags().StringSliceVar(&possible, "possible", nil, "the full set of known permissions, for wildcard expansion")
	cmd.Flags().BoolVar(&lower, "lower", true, "lowercase exported permission keys")
	return cmd
}
