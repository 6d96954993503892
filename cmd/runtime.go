package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yahsan2/linear-pm/pkg/config"
	"github.com/yahsan2/linear-pm/pkg/credential"
	"github.com/yahsan2/linear-pm/pkg/graphql"
	"github.com/yahsan2/linear-pm/pkg/issue"
	"github.com/yahsan2/linear-pm/pkg/logging"
	"github.com/yahsan2/linear-pm/pkg/output"
	"github.com/yahsan2/linear-pm/pkg/project"
	"github.com/yahsan2/linear-pm/pkg/team"
	"github.com/yahsan2/linear-pm/pkg/user"
)

// app holds what loadRuntime prepared for the running command
var app struct {
	cfg    *config.Config
	logger *zap.Logger
}

// newTransport builds the transport used by every client. Tests replace it.
var newTransport = func(cfg *config.Config, apiKey string, log io.Writer) (graphql.Transport, error) {
	opts := graphql.TransportOptions{
		Endpoint: cfg.API.Endpoint,
		APIKey:   apiKey,
		Timeout:  cfg.API.Timeout,
	}
	if cfg.Log.Level == string(logging.LevelDebug) {
		opts.Log = log
	}

	t, err := graphql.NewTransport(opts)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// openCredentials opens the keyring holding the API key. Tests replace it.
var openCredentials = credential.Open

// clients bundles the API clients a command needs
type clients struct {
	gateway  *graphql.Gateway
	issues   *issue.Client
	projects *project.Client
	teams    *team.Client
	users    *user.Client
}

func loadRuntime(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if endpoint != "" {
		cfg.API.Endpoint = endpoint
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if logFormat != "" {
		cfg.Log.Format = logFormat
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := logging.NewFactoryWithWriter(cmd.ErrOrStderr()).FromStrings(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}

	app.cfg = cfg
	app.logger = logger.With(zap.String("command", cmd.CommandPath()))
	return nil
}

// resolveAPIKey prefers the configured or environment key over the keyring
func resolveAPIKey(cfg *config.Config) (string, error) {
	if cfg.API.APIKey != "" {
		return cfg.API.APIKey, nil
	}

	store, err := openCredentials()
	if err != nil {
		return "", fmt.Errorf("no API key in %s and the keyring is unavailable: %w", config.APIKeyEnv, err)
	}
	key, err := store.APIKey()
	if errors.Is(err, credential.ErrNotFound) {
		return "", fmt.Errorf("set %s or store a key: %w", config.APIKeyEnv, credential.ErrNotFound)
	}
	return key, err
}

func newClientsWithKey(cmd *cobra.Command, apiKey string) (*clients, error) {
	cfg := app.cfg

	transport, err := newTransport(cfg, apiKey, cmd.ErrOrStderr())
	if err != nil {
		return nil, fmt.Errorf("failed to create transport: %w", err)
	}

	store, err := graphql.DefaultTemplateStore()
	if err != nil {
		return nil, err
	}

	gateway := graphql.NewGateway(transport, app.logger)

	issues, err := issue.NewClient(gateway, store)
	if err != nil {
		return nil, err
	}
	projects, err := project.NewClient(gateway, store, issues)
	if err != nil {
		return nil, err
	}
	teams, err := team.NewClient(gateway, store)
	if err != nil {
		return nil, err
	}
	users, err := user.NewClient(gateway, store)
	if err != nil {
		return nil, err
	}

	return &clients{
		gateway:  gateway,
		issues:   issues,
		projects: projects,
		teams:    teams,
		users:    users,
	}, nil
}

func newClients(cmd *cobra.Command) (*clients, error) {
	apiKey, err := resolveAPIKey(app.cfg)
	if err != nil {
		return nil, err
	}
	return newClientsWithKey(cmd, apiKey)
}

// newFormatter builds the formatter for --output, falling back to the
// configured format. quiet forces FormatQuiet.
func newFormatter(cmd *cobra.Command, quiet bool) (*output.Formatter, error) {
	name := outputFormat
	if name == "" && app.cfg != nil {
		name = app.cfg.Output.Format
	}
	format, err := output.ParseFormat(name)
	if err != nil {
		return nil, err
	}
	if quiet {
		format = output.FormatQuiet
	}
	if jqExpr != "" {
		format = output.FormatJSON
	}

	var f *output.Formatter
	if out := cmd.OutOrStdout(); out == os.Stdout {
		f = output.NewFormatter(format)
	} else {
		f = output.NewFormatterWithWriter(format, out)
	}
	return f.WithJQ(jqExpr), nil
}

// reportError prints err through the formatter so JSON callers get JSON
func reportError(cmd *cobra.Command, err error) {
	format := output.FormatTable
	if parsed, parseErr := output.ParseFormat(outputFormat); parseErr == nil && parsed == output.FormatJSON {
		format = output.FormatJSON
	}
	if err := output.NewFormatterWithWriter(format, cmd.ErrOrStderr()).FormatError(err); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
}
