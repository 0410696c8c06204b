// Package rc4 implements the RC4 stream cipher with the key-length
// restrictions of 40 to 2048 bits.
//
// RC4 is cryptographically broken (biased keystream, related-key
// weaknesses) and must not be used where confidentiality matters.
// This package exists for compatibility with legacy formats only.
package rc4

import "strconv"

const (
	// MinKeySize is the smallest accepted key length in bytes (40 bits).
	MinKeySize = 5

	// MaxKeySize is the largest accepted key length in bytes (2048 bits).
	MaxKeySize = 256
)

// KeySizeError reports a key whose byte length lies outside
// [MinKeySize, MaxKeySize].
type KeySizeError int

func (k KeySizeError) Error() string {
	return "rc4: invalid key size " + strconv.Itoa(int(k))
}

// A Cipher is an instance of RC4 scheduled with a particular key.
// It holds the 256-byte permutation and the two generation cursors.
//
// A Cipher is owned by a single stream and is not safe for concurrent
// use; the keystream is strictly sequential, so parallel callers must
// each schedule their own Cipher.
type Cipher struct {
	s    [256]byte
	i, j byte
}

// New schedules key into a fresh Cipher. The key must be between
// MinKeySize and MaxKeySize bytes; any other length returns a
// KeySizeError. Scheduling is deterministic: the same key always yields
// the same initial state, with both cursors at zero.
func New(key []byte) (*Cipher, error) {
	if l := len(key); l < MinKeySize || l > MaxKeySize {
		return nil, KeySizeError(l)
	}

	var c Cipher
	for n := range c.s {
		c.s[n] = byte(n)
	}

	// Key scheduling: 256 rolling-j swap rounds over the identity
	// permutation. Byte arithmetic wraps, giving the mod 256 for free.
	var j byte
	for n := 0; n < len(c.s); n++ {
		j += c.s[n] + key[n%len(key)]
		c.s[n], c.s[j] = c.s[j], c.s[n]
	}

	return &c, nil
}

// NextByte advances the generator one step and returns the next
// keystream byte. The sequence is infinite and cannot be rewound short
// of rescheduling the key. The permutation remains a bijection on
// {0..255}: generation only ever swaps entries.
func (c *Cipher) NextByte() byte {
	c.i++
	c.j += c.s[c.i]
	c.s[c.i], c.s[c.j] = c.s[c.j], c.s[c.i]

	return c.s[c.s[c.i]+c.s[c.j]]
}

// XORKeyStream XORs data in place with one fresh keystream byte per
// input byte, in order. The cursors advance by len(data) steps; an
// empty slice leaves the generator untouched. Applying the same keyed
// stream twice over the same bytes restores the original data.
func (c *Cipher) XORKeyStream(data []byte) {
	for n := range data {
		data[n] ^= c.NextByte()
	}
}

// Apply is the one-shot form: schedule key into a fresh Cipher, XOR
// data in place and discard the state. It fails only when the key
// length is invalid, under the same bounds as New.
func Apply(key, data []byte) error {
	c, err := New(key)
	if err != nil {
		return err
	}

	c.XORKeyStream(data)

	return nil
}
