// Package keyhex decodes key material supplied as hexadecimal byte
// literals. Keys arrive at the command line either as individual byte
// tokens ("0x4b 0x8e 0x29") or as contiguous hex strings ("4b8e29");
// both forms decode to the same raw bytes.
package keyhex

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrNoKeyMaterial is returned when the token list decodes to zero bytes.
var ErrNoKeyMaterial = errors.New("no key material")

// Decode parses a list of hex tokens into raw key bytes. Each token may
// carry an optional 0x/0X prefix and must contain an even number of hex
// digits; tokens are decoded in order and concatenated.
func Decode(tokens []string) ([]byte, error) {
	var key []byte

	for _, token := range tokens {
		trimmed := strings.TrimSpace(token)
		trimmed = strings.TrimPrefix(strings.TrimPrefix(trimmed, "0x"), "0X")

		if trimmed == "" {
			return nil, fmt.Errorf("empty key token %q", token)
		}

		if len(trimmed)%2 != 0 {
			return nil, fmt.Errorf("odd-length key token %q", token)
		}

		decoded, err := hex.DecodeString(trimmed)
		if err != nil {
			return nil, fmt.Errorf("key token %q: %w", token, err)
		}

		key = append(key, decoded...)
	}

	if len(key) == 0 {
		return nil, ErrNoKeyMaterial
	}

	return key, nil
}

// DecodeFile reads hex key material from a file. The file may hold a
// single hex string or whitespace-separated byte tokens.
func DecodeFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is user-supplied config
	if err != nil {
		return nil, fmt.Errorf("reading key file: %w", err)
	}

	tokens := strings.Fields(string(data))
	if len(tokens) == 0 {
		return nil, fmt.Errorf("key file %q: %w", path, ErrNoKeyMaterial)
	}

	key, err := Decode(tokens)
	if err != nil {
		return nil, fmt.Errorf("key file %q: %w", path, err)
	}

	return key, nil
}
