package cli

import (
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	EnvFile string
}

// NewRootCommand creates the root command for the usuarios CLI. Running it
// without a subcommand starts the HTTP server.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}
	serveCmd := NewServeCommand(opts)

	cmd := &cobra.Command{
		Use:           "usuarios",
		Short:         "usuario CRUD service",
		Long:          "HTTP service that creates, lists, updates and deactivates usuario records.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serveCmd.RunE,
	}

	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", ".env", "env file loaded before reading the environment")

	cmd.AddCommand(serveCmd)
	cmd.AddCommand(NewMigrateCommand(opts))

	return cmd
}
