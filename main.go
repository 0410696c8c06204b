// Command gorc applies the RC4 keystream to files. Since RC4 is a
// symmetric stream cipher, the same invocation encrypts and decrypts.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/idelchi/gorc/internal/commands"
	"github.com/idelchi/gorc/internal/config"
	"github.com/idelchi/gorc/internal/encryption"
	"github.com/idelchi/gorc/pkg/rc4"
)

// version is injected at build time.
var version = "dev" //nolint:gochecknoglobals

// Exit statuses distinguish the failure classes callers care about.
const (
	exitFailure     = 1
	exitKeyMaterial = 2
	exitUnreadable  = 3
	exitUnwritable  = 4
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg := &config.Config{}

	err := commands.NewRootCommand(cfg, version).Execute()
	if err == nil {
		return 0
	}

	fmt.Fprintf(os.Stderr, "gorc: %v\n", err)

	var keyErr rc4.KeySizeError

	switch {
	case errors.Is(err, encryption.ErrKeyMaterial), errors.As(err, &keyErr):
		return exitKeyMaterial
	case errors.Is(err, encryption.ErrUnreadable):
		return exitUnreadable
	case errors.Is(err, encryption.ErrUnwritable):
		return exitUnwritable
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrPermission):
		// Resolve-time stat failures never reach the processor's
		// classification.
		return exitUnreadable
	default:
		return exitFailure
	}
}
