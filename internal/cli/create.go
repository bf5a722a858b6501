package cli

import (
	"github.com/spf13/cobra"

	"accounts-server/internal/account"
	"accounts-server/internal/auth"
)

func newCreateCmd(a *app) *cobra.Command {
	var name, email, password, role, balance string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an account with a hashed password",
		RunE: func(cmd *cobra.Command, args []string) error {
			parsedRole, err := account.ParseRole(role)
			if err != nil {
				return err
			}

			hasher, err := auth.NewHasher(a.cfg.Auth.BcryptCost)
			if err != nil {
				return err
			}

			return a.withStore(func(store account.Store) error {
				created, err := account.NewService(store, hasher, nil).CreateAccount(cmd.Context(), account.NewAccount{
					Name:     name,
					Email:    email,
					Password: password,
					Role:     parsedRole,
					Balance:  balance,
				})
				if err != nil {
					return err
				}
				return printAccount(cmd.OutOrStdout(), a.output, created)
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name (required)")
	cmd.Flags().StringVar(&email, "email", "", "Email address (required)")
	cmd.Flags().StringVar(&password, "password", "", "Plaintext password, 6 to 72 bytes (required)")
	cmd.Flags().StringVar(&role, "role", "Player", "Role: Admin or Player")
	cmd.Flags().StringVar(&balance, "balance", "0", "Starting balance as an exact decimal")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}
