package commands

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idelchi/gorc/pkg/rc4"
)

// NewGenerateCommand creates the generate subcommand, which emits a
// random key as a hex string suitable for --key or a key file.
func NewGenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"gen"},
		Short:   "Generate a random key",
		Args:    cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return viper.BindPFlags(cmd.Flags())
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			size := viper.GetInt("size")
			if size < rc4.MinKeySize || size > rc4.MaxKeySize {
				return rc4.KeySizeError(size)
			}

			key := make([]byte, size)
			if _, err := rand.Read(key); err != nil {
				return fmt.Errorf("generating key: %w", err)
			}

			fmt.Println(hex.EncodeToString(key)) //nolint:forbidigo

			return nil
		},
	}

	cmd.Flags().IntP("size", "s", 16, "Key size in bytes (5 to 256)")

	return cmd
}
