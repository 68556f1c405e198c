// Package cmd implements the redo command-line interface.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/amhellmund/redo/internal/bootstrap"
)

// Version is set at build time via -ldflags "-X github.com/amhellmund/redo/cmd.Version=...".
var Version = "dev"

type rootOptions struct {
	configPath string
	debug      bool
}

// NewRootCommand builds the redo command tree. Running it without a
// subcommand starts the server.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "redo",
		Short:         "redo - manage your recurring tasks",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "",
		"config file (default is $CONFIG_PATH or ./config.yml)")
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug mode")

	root.AddCommand(newServeCommand(opts))
	root.AddCommand(newHealthcheckCommand(opts))
	root.AddCommand(newVersionCommand())

	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}
}

func runServe(cmd *cobra.Command, opts *rootOptions) error {
	return bootstrap.Start(cmd.Context(), bootstrap.Options{
		ConfigPath: opts.configPath,
		Debug:      opts.debug,
	})
}
