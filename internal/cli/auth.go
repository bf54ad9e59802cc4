package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/mailmerge/pkg/config"
	"github.com/dmitrymomot/mailmerge/pkg/oauth"
)

func (a *App) authCommand(g *globalFlags) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authorize Gmail sending and store the token",
		Long: `auth runs the Google OAuth consent flow for the configured client secrets
file and writes the resulting token to the token file. When a token is already
stored it is refreshed instead, unless --force is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(g.sources(a, nil))
			if err != nil {
				return err
			}

			opts := append([]oauth.Option{oauth.WithOutput(a.stderr)}, a.oauth...)
			if force {
				opts = append(opts, oauth.WithForceConsent())
			}

			provider, err := oauth.New(cfg.Gmail, opts...)
			if err != nil {
				return err
			}
			ts, err := provider.TokenSource(cmd.Context())
			if err != nil {
				return err
			}
			tok, err := ts.Token()
			if err != nil {
				return err
			}

			fmt.Fprintf(a.stdout, "Authorized. Token stored in %s (expires %s)\n",
				cfg.Gmail.TokenFile, tok.Expiry.Local().Format("2006-01-02 15:04"))
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "ignore the stored token and ask for consent again")

	return cmd
}
