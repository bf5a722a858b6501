package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"accounts-server/internal/account"
	"accounts-server/internal/auth"
)

type hashOutput struct {
	Hash string `json:"hash"`
	Cost int    `json:"cost"`
}

func newHashPasswordCmd(a *app) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "hash-password",
		Short: "Print the bcrypt hash of a password",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(password) < account.MinPasswordLength {
				return fmt.Errorf("password must be at least %d characters", account.MinPasswordLength)
			}

			hasher, err := auth.NewHasher(a.cfg.Auth.BcryptCost)
			if err != nil {
				return err
			}

			hash, err := hasher.Hash(password)
			if err != nil {
				return err
			}
			cost, err := hasher.Cost(hash)
			if err != nil {
				return err
			}

			if a.output == "json" {
				return printJSON(cmd.OutOrStdout(), hashOutput{Hash: hash, Cost: cost})
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), hash)
			return err
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "Plaintext password (required)")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}
