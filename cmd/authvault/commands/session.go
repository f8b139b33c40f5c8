package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func showSessionCmd(appFn func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show-session",
		Short: "Summarize the restored session without printing the token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store := appFn().store
			out := cmd.OutOrStdout()

			sess := store.LoadSession(ctx)
			_, hasToken := store.Token(ctx)
			remembered, _ := store.RememberedUsername(ctx)

			fmt.Fprintf(out, "signed in:       %t\n", sess.SignedIn())
			if sess.SignedIn() {
				fmt.Fprintf(out, "user:            %s (%s)\n", sess.User.Username, sess.User.ID)
			}
			fmt.Fprintf(out, "token present:   %t\n", hasToken)
			fmt.Fprintf(out, "biometric:       %t\n", sess.BiometricEnabled)
			fmt.Fprintf(out, "remembered user: %s\n", remembered)
			fmt.Fprintf(out, "onboarding done: %t\n", store.OnboardingCompleted(ctx))
			fmt.Fprintf(out, "secure backend:  %t\n", store.HasSecureBackend())
			return nil
		},
	}
}

func clearSessionCmd(appFn func() *app) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "clear-session",
		Short: "End the session, keeping the remembered username unless --all",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := appFn().store
			if all {
				store.ClearSession(cmd.Context())
			} else {
				store.EndSession(cmd.Context())
			}
			fmt.Fprintln(cmd.OutOrStdout(), "session cleared")
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "also forget the remembered username")
	return cmd
}
