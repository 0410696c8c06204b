package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idelchi/gorc/internal/config"
	"github.com/idelchi/gorc/internal/logic"
)

// NewCheckCommand creates the check subcommand, which reports how many
// files each include/exclude pattern matches without transforming
// anything.
func NewCheckCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "check [flags] [paths...]",
		Short: "Validate that include/exclude patterns match files",
		Args:  cobra.ArbitraryArgs,
		PreRunE: func(_ *cobra.Command, args []string) error {
			if err := viper.Unmarshal(cfg); err != nil {
				return fmt.Errorf("parsing config: %w", err)
			}

			if len(args) == 0 {
				cfg.Files = []string{"."}
			} else {
				cfg.Files = args
			}

			return nil
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return logic.RunCheck(cfg)
		},
	}
}
