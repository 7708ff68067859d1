// Package cli defines the cadence command line.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/llehouerou/cadence/internal/config"
)

type rootOptions struct {
	configPath string
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "cadence [folder]",
		Short: "Play audio files from the terminal",
		Long: `cadence is a terminal audio player for the files of a folder.

It plays FLAC, Ogg Vorbis, Opus, MP3, WAV and M4A (AAC/ALAC) files and shows
elapsed time against the total duration. When a file does not declare its
length, the duration is estimated by decoding a bounded number of packets.

Without a folder argument, the last folder is reopened, then default_folder
from the config file, then the current directory.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			folder := ""
			if len(args) == 1 {
				folder = args[0]
			}
			return runTUI(cmd, opts, folder)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "",
		"config file (default: $XDG_CONFIG_HOME/cadence/config.toml)")
	cmd.AddCommand(newProbeCmd(opts))
	return cmd
}

func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
