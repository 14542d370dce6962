package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/starfield/internal/session"
	"github.com/papapumpkin/starfield/internal/sqlstore"
	"github.com/papapumpkin/starfield/internal/ui"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage API users",
}

var userAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a user in the server database and print a bearer token",
	Long: `Create a user in the local database served by "starfield serve" and print
a token signed with server.secret. Give the token to the user; they set it as
STARFIELD_TOKEN together with STARFIELD_API_URL.`,
	Args: cobra.ExactArgs(1),
	RunE: runUserAdd,
}

func init() {
	userAddCmd.Flags().Duration("ttl", 365*24*time.Hour, "token lifetime")
	userCmd.AddCommand(userAddCmd)
	rootCmd.AddCommand(userCmd)
}

func runUserAdd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	verifier, err := session.NewVerifier(cfg.Server.Secret)
	if err != nil {
		return err
	}
	ttl, _ := cmd.Flags().GetDuration("ttl")

	db, err := sqlstore.Open(cmd.Context(), cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	u, err := db.CreateUser(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	token, err := verifier.Issue(u.ID, ttl)
	if err != nil {
		return err
	}
	ui.New().Token(u.ID, u.Name, token)
	return nil
}
