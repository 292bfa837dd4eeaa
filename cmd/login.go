package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/oauth2"

	"github.com/Tiliavir/mfe/internal/micropub"
	"github.com/Tiliavir/mfe/internal/storage"
)

var loginToken string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store a Micropub bearer token for mfe fetch",
	Args:  cobra.NoArgs,
	RunE:  runLogin,
}

func init() {
	loginCmd.Flags().StringVar(&loginToken, "token", "", "Bearer token issued by your IndieAuth token endpoint")
	_ = loginCmd.MarkFlagRequired("token")
}

func runLogin(cmd *cobra.Command, args []string) error {
	base, err := storage.BaseDir()
	if err != nil {
		return err
	}
	if err := micropub.SaveToken(base, &oauth2.Token{AccessToken: loginToken, TokenType: "Bearer"}); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Token saved.")
	return nil
}
