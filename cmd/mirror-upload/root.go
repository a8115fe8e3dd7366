package main

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"fbnoi.com/mirror-upload/config"
	"fbnoi.com/mirror-upload/logging"
	"fbnoi.com/mirror-upload/template"
	"fbnoi.com/mirror-upload/upload"
)

type rootOptions struct {
	configPath  string
	secretsPath string
	envSecrets  bool
	dryRun      bool
	logLevel    string
	logFormat   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "mirror-upload <tag>",
		Short: "Mirror a GitHub release to Modrinth and CurseForge",
		Long: `mirror-upload reads the GitHub release with the given tag and uploads its
assets to the Modrinth and CurseForge projects named in the config file.`,
		Args:          cobra.ExactArgs(1),
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPublish(cmd, opts, args[0])
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", config.DefaultConfigPath, "config file")
	flags.StringVarP(&opts.secretsPath, "secrets", "s", config.DefaultSecretsPath, "secrets file")
	flags.BoolVar(&opts.envSecrets, "env-secrets", false,
		"read tokens from GITHUB_TOKEN, CURSEFORGE_TOKEN and MODRINTH_TOKEN; also used when the secrets file does not exist")
	flags.BoolVar(&opts.dryRun, "dry-run", false, "resolve and print the uploads without sending them")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "text", "log format (text, json)")

	cmd.AddCommand(newTemplateCmd())

	return cmd
}

func (o *rootOptions) logger(cmd *cobra.Command) *slog.Logger {
	return logging.New(logging.FromFlags(o.logLevel, o.logFormat, cmd.ErrOrStderr()))
}

func (o *rootOptions) secrets() (config.Secrets, error) {
	if o.envSecrets {
		return config.SecretsFromEnv(), nil
	}
	if _, err := os.Stat(o.secretsPath); errors.Is(err, fs.ErrNotExist) {
		return config.SecretsFromEnv(), nil
	}

	return config.LoadSecrets(o.secretsPath)
}

func runPublish(cmd *cobra.Command, opts *rootOptions, tag string) error {
	logger := opts.logger(cmd)
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	secrets, err := opts.secrets()
	if err != nil {
		return err
	}

	p := &upload.Publisher{
		Client: upload.NewClient(secrets, logger),
		Config: cfg,
		DryRun: opts.dryRun,
	}

	return p.Publish(cmd.Context(), tag)
}

// report renders template syntax errors with their source excerpt.
// report formats err for the terminal. A parse error is printed once,
// through its Report; context wrapped around it goes on the line above.
func report(err error) string {
	var pErr *template.ParseError
	if !errors.As(err, &pErr) {
		return err.Error()
	}
	if ctx, ok := strings.CutSuffix(err.Error(), pErr.Error()); ok && ctx != "" {
		return strings.TrimSuffix(ctx, ": ") + "\n" + pErr.Report()
	}

	return pErr.Report()
}
