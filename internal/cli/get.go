package cli

import (
	"github.com/spf13/cobra"

	"accounts-server/internal/account"
)

func newGetCmd(a *app) *cobra.Command {
	var email, id string

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Show an account by email or ID",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(store account.Store) error {
				svc := account.NewService(store, nil, nil)

				var found *account.Account
				var err error
				if id != "" {
					found, err = svc.GetAccount(cmd.Context(), id)
				} else {
					found, err = svc.FindAccountByEmail(cmd.Context(), email)
				}
				if err != nil {
					return err
				}
				return printAccount(cmd.OutOrStdout(), a.output, found)
			})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&id, "id", "", "Account ID")
	cmd.MarkFlagsOneRequired("email", "id")
	cmd.MarkFlagsMutuallyExclusive("email", "id")

	return cmd
}
