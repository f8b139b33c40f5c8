package commands

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/MrEthical07/authcore/credstore"
)

var errNotSet = errors.New("key is not set")

func keysCmd(appFn func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "List the logical keys and whether each is set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := appFn().store
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, k := range credstore.Keys() {
				state := "-"
				if v, ok := store.Get(cmd.Context(), k); ok {
					state = fmt.Sprintf("set (%d bytes)", len(v))
				}
				fmt.Fprintf(w, "%s\t%s\n", k, state)
			}
			return w.Flush()
		},
	}
}

func getCmd(appFn func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get KEY",
		Short: "Print one stored value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := credstore.ParseKey(args[0])
			if err != nil {
				return fmt.Errorf("%w: %s", err, args[0])
			}
			v, ok := appFn().store.Get(cmd.Context(), key)
			if !ok {
				return fmt.Errorf("%s: %w", key, errNotSet)
			}
			fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		},
	}
}

func setCmd(appFn func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Write one value through the routing store",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := credstore.ParseKey(args[0])
			if err != nil {
				return fmt.Errorf("%w: %s", err, args[0])
			}
			return appFn().store.Set(cmd.Context(), key, args[1])
		},
	}
}

func deleteCmd(appFn func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete KEY",
		Short: "Remove a key from every backend",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := credstore.ParseKey(args[0])
			if err != nil {
				return fmt.Errorf("%w: %s", err, args[0])
			}
			appFn().store.Delete(cmd.Context(), key)
			return nil
		},
	}
}
