package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yahsan2/linear-pm/pkg/config"
	"github.com/yahsan2/linear-pm/pkg/credential"
	"github.com/yahsan2/linear-pm/pkg/setup"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the Linear API key",
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store a Linear API key in the system keyring",
	Long: `Verify a Linear personal API key and store it in the system keyring.

The LINEAR_API_KEY environment variable takes precedence over the stored key.`,
	Example: `  # Paste the key at the prompt
  linear-pm auth login

  # Read the key from standard input
  linear-pm auth login --with-token < key.txt`,
	RunE: runAuthLogin,
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored API key",
	RunE:  runAuthLogout,
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which API key is used and who it belongs to",
	RunE:  runAuthStatus,
}

var authWithToken bool

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authLoginCmd, authLogoutCmd, authStatusCmd)

	authLoginCmd.Flags().BoolVar(&authWithToken, "with-token", false, "Read the API key from standard input")
}

func readAPIKey(cmd *cobra.Command) (string, error) {
	if authWithToken {
		data, err := io.ReadAll(bufio.NewReader(cmd.InOrStdin()))
		if err != nil {
			return "", fmt.Errorf("failed to read API key: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}

	prompt := setup.NewInteractivePromptWithIO(cmd.InOrStdin(), cmd.OutOrStdout())
	return strings.TrimSpace(prompt.GetStringInput("Paste your Linear API key", "")), nil
}

func runAuthLogin(cmd *cobra.Command, args []string) error {
	key, err := readAPIKey(cmd)
	if err != nil {
		return err
	}
	if key == "" {
		return errors.New("API key must not be empty")
	}

	c, err := newClientsWithKey(cmd, key)
	if err != nil {
		return err
	}
	viewer, err := c.users.GetCurrentUser(cmd.Context())
	if err != nil {
		return fmt.Errorf("API key verification failed: %w", err)
	}

	store, err := openCredentials()
	if err != nil {
		return err
	}
	if err := store.SetAPIKey(key); err != nil {
		return err
	}

	app.logger.Debug("api key stored")
	fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s <%s>\n", viewer.Name, viewer.Email)
	return nil
}

func runAuthLogout(cmd *cobra.Command, args []string) error {
	store, err := openCredentials()
	if err != nil {
		return err
	}
	if err := store.DeleteAPIKey(); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
	return nil
}

func runAuthStatus(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	source := "keyring"
	if app.cfg.API.APIKey != "" {
		source = fmt.Sprintf("%s or configuration", config.APIKeyEnv)
	}

	key, err := resolveAPIKey(app.cfg)
	if err != nil {
		if errors.Is(err, credential.ErrNotFound) {
			fmt.Fprintln(out, "Not logged in")
			return nil
		}
		return err
	}

	c, err := newClientsWithKey(cmd, key)
	if err != nil {
		return err
	}
	viewer, err := c.users.GetCurrentUser(cmd.Context())
	if err != nil {
		return fmt.Errorf("API key from %s is not valid: %w", source, err)
	}

	fmt.Fprintf(out, "Logged in to %s as %s <%s>\n", app.cfg.API.Endpoint, viewer.Name, viewer.Email)
	fmt.Fprintf(out, "  API key: %s (%s)\n", maskKey(key), source)
	return nil
}

// maskKey keeps the last four characters of key
func maskKey(key string) string {
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", 8) + key[len(key)-4:]
}
