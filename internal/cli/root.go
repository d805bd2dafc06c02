package cli

import (
	"context"
	"io"
	"os"

	"emperror.dev/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"ghgrip/internal/config"
	"ghgrip/internal/github"
	"ghgrip/internal/logging"
)

// rootOptions holds the persistent flags shared by every command
type rootOptions struct {
	configPath string
	envFile    string
	token      string
	endpoint   string
	pageSize   int
	debug      bool
	logFile    string
}

// app is what PersistentPreRunE prepares for the commands
type app struct {
	opts      *rootOptions
	configSvc config.ConfigService
	cfg       *config.Config
	token     string
	logCloser io.Closer
	log       logrus.FieldLogger
}

func (a *app) client(ctx context.Context) *github.Client {
	return github.NewClient(ctx, a.token, a.cfg.Endpoint)
}

func (a *app) close() {
	if a.logCloser != nil {
		_ = a.logCloser.Close()
	}
}

// NewRootCmd builds the ghgrip command tree
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}
	a := &app{opts: opts}

	rootCmd := &cobra.Command{
		Use:           "ghgrip",
		Short:         "Browse and rename your GitHub repositories from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.prepare(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, a)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	flags.StringVar(&opts.envFile, "env-file", "", "file to load "+config.TokenEnvVar+" from (default ./.env)")
	flags.StringVar(&opts.token, "token", "", "GitHub token (or env "+config.TokenEnvVar+")")
	flags.StringVar(&opts.endpoint, "endpoint", "", "GraphQL endpoint for GitHub Enterprise")
	flags.IntVar(&opts.pageSize, "page-size", 0, "repositories per page (1-100)")
	flags.BoolVar(&opts.debug, "debug", false, "enable debug logging")
	flags.StringVar(&opts.logFile, "log-file", logging.DefaultFile, "log file path")

	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(newListCmd(a))
	rootCmd.AddCommand(newRenameCmd(a))

	return rootCmd
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		rootCmd.PrintErrln("Error:", err)
		os.Exit(1)
	}
}

func (a *app) prepare(cmd *cobra.Command) error {
	closer, err := logging.Setup(a.opts.logFile, a.opts.debug)
	a.logCloser = closer
	if err != nil {
		cmd.PrintErrln("Warning:", err)
	}
	a.log = logrus.StandardLogger()

	a.configSvc = config.NewConfigService(a.opts.configPath)
	cfg, err := a.configSvc.Load()
	if err != nil {
		return errors.Wrap(err, "load config")
	}

	if a.opts.endpoint != "" {
		cfg.Endpoint = a.opts.endpoint
	}
	if cmd.Flags().Changed("page-size") {
		cfg.PageSize = a.opts.pageSize
	}
	if cfg.PageSize < 1 || cfg.PageSize > config.MaxPageSize {
		return errors.WithDetails(errors.Errorf("page size must be between 1 and %d", config.MaxPageSize), "page_size", cfg.PageSize)
	}
	a.cfg = cfg

	token, err := config.ResolveToken(a.opts.token, a.opts.envFile)
	if err != nil {
		return err
	}
	a.token = token

	a.log.WithFields(logrus.Fields{
		"config":    a.configSvc.Path(),
		"endpoint":  cfg.Endpoint,
		"page_size": cfg.PageSize,
	}).Debug("configuration loaded")

	return nil
}
