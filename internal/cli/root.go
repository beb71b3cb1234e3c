// Package cli implements the bitvec command line.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/ezrec/bitvec/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	Verbose    bool

	Config *config.Config // Loaded before any command runs.
}

// NewRootCommand creates the root command for the bitvec CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "bitvec",
		Short: "bitvec - variable width binary numbers",
		Long: `Work with binary numbers of any width: evaluate expressions, explore
small float formats, and run programs on a 16 bit toy CPU.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) (err error) {
			opts.Config, err = config.Load(opts.ConfigPath)
			if err != nil {
				return
			}
			if opts.Verbose {
				opts.Config.Verbose = true
			}
			return
		},
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", config.DEFAULT_PATH, "configuration file")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	// Add subcommands
	cmd.AddCommand(NewEvalCommand(opts))
	cmd.AddCommand(NewReplCommand(opts))
	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewFloatCommand(opts))
	cmd.AddCommand(NewConfigCommand(opts))

	return cmd
}

// NewConfigCommand creates the config command, which prints the
// effective configuration.
func NewConfigCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.Config.Encode(cmd.OutOrStdout())
		},
	}
}
