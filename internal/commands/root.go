// Package commands provides the command-line interface for the gorc
// tool.
//
// The root command applies the RC4 keystream to files; because the
// transformation is its own inverse there is no separate decrypt
// command. Subcommands cover key generation and pattern checking.
// Configuration flows through cobra flags and environment variables
// bound via viper.
package commands

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idelchi/gorc/internal/config"
	"github.com/idelchi/gorc/internal/encryption"
	"github.com/idelchi/gorc/internal/logic"
)

// NewRootCommand creates the root command with all flags and
// subcommands attached. Environment variables prefixed GORC_ mirror
// the flags (GORC_KEY_FILE for --key-file, and so on).
func NewRootCommand(cfg *config.Config, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "gorc [flags] [paths...]",
		Short: "RC4 file transformation utility",
		Long: `Applies the RC4 keystream to files in place. Running the tool twice with
the same key restores the original content, so encryption and decryption
are the same operation.

RC4 is cryptographically broken; use this only for compatibility with
legacy formats, never to protect sensitive data.`,
		Version:       version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			viper.SetEnvPrefix("gorc")
			viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
			viper.AutomaticEnv()

			if err := viper.BindPFlags(cmd.Flags()); err != nil {
				return fmt.Errorf("binding flags: %w", err)
			}

			if err := viper.BindPFlags(cmd.InheritedFlags()); err != nil {
				return fmt.Errorf("binding inherited flags: %w", err)
			}

			return nil
		},
		RunE: func(_ *cobra.Command, args []string) error {
			if err := viper.Unmarshal(cfg); err != nil {
				return fmt.Errorf("parsing config: %w", err)
			}

			if len(args) == 0 {
				return errors.New("no input files")
			}

			cfg.Files = args

			if err := cfg.Validate(); err != nil {
				return err
			}

			return logic.Run(cfg)
		},
	}

	root.Flags().StringSliceP("key", "k", nil, "Key as hex byte literals (0x4b,0x8e,...) or a hex string")
	root.Flags().StringP("key-file", "f", "", "Path to a file holding the hex key")
	root.Flags().BoolP("recursive", "r", false, "Process every file under directory arguments")
	root.Flags().IntP("parallel", "j", runtime.NumCPU(), "Number of parallel workers, defaults to number of CPUs")
	root.Flags().Int("chunk-size", encryption.DefaultChunkSize, "Read/write chunk size in bytes")
	root.Flags().Bool("stats", false, "Print a processing summary")
	root.Flags().BoolP("dry-run", "n", false, "List the files that would be processed without touching them")
	root.Flags().Bool("preserve-timestamps", false, "Restore each file's modification time after rewriting")

	// Shared with the check subcommand.
	root.PersistentFlags().BoolP("quiet", "q", false, "Suppress non-error output")
	root.PersistentFlags().StringSlice("include", nil, "Only process walked files matching these patterns")
	root.PersistentFlags().StringSlice("exclude", nil, "Skip walked files matching these patterns")
	root.PersistentFlags().String("include-from", "", "JSONC file with additional include patterns")
	root.PersistentFlags().String("exclude-from", "", "JSONC file with additional exclude patterns")

	root.AddCommand(NewGenerateCommand(), NewCheckCommand(cfg))

	return root
}
