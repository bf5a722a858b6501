package cli

import (
	"fmt"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"accounts-server/internal/account"
	"accounts-server/internal/server"
	"accounts-server/internal/shared/config"
	"accounts-server/internal/shared/logger"
)

// Deps are the pieces of the environment a command touches.
type Deps struct {
	LoadConfig func() (*config.Config, error)
	OpenStore  func(cfg *config.Config) (account.Store, func() error, error)
}

// DefaultDeps reads .env and the process environment and opens the configured store.
func DefaultDeps() Deps {
	return Deps{
		LoadConfig: func() (*config.Config, error) {
			_ = godotenv.Load()
			return config.Load()
		},
		OpenStore: server.OpenStore,
	}
}

type app struct {
	deps   Deps
	cfg    *config.Config
	output string
}

func NewRootCmd(deps Deps) *cobra.Command {
	a := &app{deps: deps}

	rootCmd := &cobra.Command{
		Use:   "accounts",
		Short: "Operator tool for the accounts store",
		Long: `accounts seeds and inspects accounts in the configured store.

The store backend and bcrypt cost come from the same environment variables as the server.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.output != "text" && a.output != "json" {
				return fmt.Errorf("--output must be text or json")
			}

			cfg, err := a.deps.LoadConfig()
			if err != nil {
				return err
			}
			a.cfg = cfg

			// Logs go to stderr so stdout stays parseable
			slog.SetDefault(logger.New(cmd.ErrOrStderr(), cfg.Logging))
			return nil
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&a.output, "output", "o", "text", "Output format: text, json")

	rootCmd.AddCommand(newCreateCmd(a))
	rootCmd.AddCommand(newGetCmd(a))
	rootCmd.AddCommand(newHashPasswordCmd(a))

	return rootCmd
}

// withStore opens the configured store for the duration of fn.
func (a *app) withStore(fn func(store account.Store) error) error {
	store, closeStore, err := a.deps.OpenStore(a.cfg)
	if err != nil {
		return fmt.Errorf("failed to open account store: %w", err)
	}
	defer func() {
		if err := closeStore(); err != nil {
			slog.Error("Failed to close account store", "error", err)
		}
	}()
	return fn(store)
}
