package command

import (
	"fmt"
	"time"

	"mangafandb/cmd/cli/authentication"
	"mangafandb/cmd/cli/command/client"
	"mangafandb/internal/microservices/http-api/dto"

	"github.com/spf13/cobra"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authentication commands",
	Long:  `Register, log in and out. Tokens are kept in the system keyring.`,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account",
	RunE: func(cmd *cobra.Command, args []string) error {
		var req dto.RegisterRequest
		req.Username, _ = cmd.Flags().GetString("username")
		req.Password, _ = cmd.Flags().GetString("password")
		req.Email, _ = cmd.Flags().GetString("email")

		resp, err := client.NewHTTPClient(apiURL).Register(cmd.Context(), req)
		if err != nil {
			return fmt.Errorf("registration failed: %w", err)
		}
		okColor.Fprintln(cmd.OutOrStdout(), "✓ Account created. Log in to continue.")
		fmt.Fprintf(cmd.OutOrStdout(), "User ID: %s\n", resp.User.ID)
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in with a username or email",
	RunE: func(cmd *cobra.Command, args []string) error {
		var req dto.LoginRequest
		req.Username, _ = cmd.Flags().GetString("username")
		req.Password, _ = cmd.Flags().GetString("password")

		resp, err := client.NewHTTPClient(apiURL).Login(cmd.Context(), req)
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}

		creds := &authentication.StoredCredentials{
			AccessToken:  resp.AccessToken,
			RefreshToken: resp.RefreshToken,
			ExpiresAt:    time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second).Unix(),
		}
		if resp.User != nil {
			creds.Username = resp.User.Username
			creds.Role = string(resp.User.Role)
		}
		if err := authentication.StoreTokens(creds); err != nil {
			return fmt.Errorf("save tokens: %w", err)
		}
		okColor.Fprintf(cmd.OutOrStdout(), "✓ Logged in as %s\n", creds.Username)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Revoke the session and forget the stored tokens",
	RunE: func(cmd *cobra.Command, args []string) error {
		creds, err := authentication.GetTokens()
		if err == nil && creds.RefreshToken != "" {
			if err := client.NewHTTPClient(apiURL).Revoke(cmd.Context(), creds.RefreshToken); err != nil {
				warnColor.Fprintf(cmd.ErrOrStderr(), "! could not revoke the session on the server: %v\n", err)
			}
		}
		if err := authentication.DeleteTokens(); err != nil {
			return err
		}
		okColor.Fprintln(cmd.OutOrStdout(), "✓ Logged out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged in account",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := authenticatedClient(cmd.Context())
		if err != nil {
			return err
		}
		me, err := c.Me(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		titleColor.Fprintln(out, me.Username)
		fmt.Fprintf(out, "Role:     %s\n", me.Role)
		fmt.Fprintf(out, "Progress: chapter %d\n", me.UserProgress)
		if me.SpoilerChapterOverride != nil {
			fmt.Fprintf(out, "Override: chapter %d\n", *me.SpoilerChapterOverride)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(registerCmd, loginCmd, logoutCmd, whoamiCmd)

	registerCmd.Flags().StringP("username", "u", "", "Username for the new account")
	registerCmd.Flags().StringP("password", "p", "", "Password for the new account")
	registerCmd.Flags().StringP("email", "e", "", "Email address for the new account")
	_ = registerCmd.MarkFlagRequired("username")
	_ = registerCmd.MarkFlagRequired("password")
	_ = registerCmd.MarkFlagRequired("email")

	loginCmd.Flags().StringP("username", "u", "", "Username or email")
	loginCmd.Flags().StringP("password", "p", "", "Password")
	_ = loginCmd.MarkFlagRequired("username")
	_ = loginCmd.MarkFlagRequired("password")
}
