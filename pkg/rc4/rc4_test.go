package rc4

import (
	"bytes"
	stdrc4 "crypto/rc4"
	"math/rand"
	"testing"
)

// rfc6229Key40 is the 40-bit key from RFC 6229 section 2.
var rfc6229Key40 = []byte{0x01, 0x02, 0x03, 0x04, 0x05}

// rfc6229Vectors40 holds keystream slices at the offsets published in
// RFC 6229 for the 40-bit key.
var rfc6229Vectors40 = []struct {
	offset int
	want   []byte
}{
	{0, []byte{0xb2, 0x39, 0x63, 0x05, 0xf0, 0x3d, 0xc0, 0x27, 0xcc, 0xc3, 0x52, 0x4a, 0x0a, 0x11, 0x18, 0xa8}},
	{16, []byte{0x69, 0x82, 0x94, 0x4f, 0x18, 0xfc, 0x82, 0xd5, 0x89, 0xc4, 0x03, 0xa4, 0x7a, 0x0d, 0x09, 0x19}},
	{240, []byte{0x28, 0xcb, 0x11, 0x32, 0xc9, 0x6c, 0xe2, 0x86, 0x42, 0x1d, 0xca, 0xad, 0xb8, 0xb6, 0x9e, 0xae}},
	{256, []byte{0x1c, 0xfc, 0xf6, 0x2b, 0x03, 0xed, 0xdb, 0x64, 0x1d, 0x77, 0xdf, 0xcf, 0x7f, 0x8d, 0x8c, 0x93}},
	{496, []byte{0x42, 0xb7, 0xd0, 0xcd, 0xd9, 0x18, 0xa8, 0xa3, 0x3d, 0xd5, 0x17, 0x81, 0xc8, 0x1f, 0x40, 0x41}},
	{512, []byte{0x64, 0x59, 0x84, 0x44, 0x32, 0xa7, 0xda, 0x92, 0x3c, 0xfb, 0x3e, 0xb4, 0x98, 0x06, 0x61, 0xf6}},
	{752, []byte{0xec, 0x10, 0x32, 0x7b, 0xde, 0x2b, 0xee, 0xfd, 0x18, 0xf9, 0x27, 0x76, 0x80, 0x45, 0x7e, 0x22}},
	{768, []byte{0xeb, 0x62, 0x63, 0x8d, 0x4f, 0x0b, 0xa1, 0xfe, 0x9f, 0xca, 0x20, 0xe0, 0x5b, 0xf8, 0xff, 0x2b}},
	{1008, []byte{0x45, 0x12, 0x90, 0x48, 0xe6, 0xa0, 0xed, 0x0b, 0x56, 0xb4, 0x90, 0x33, 0x8f, 0x07, 0x8d, 0xa5}},
	{1024, []byte{0x30, 0xab, 0xbc, 0xc7, 0xc2, 0x0b, 0x01, 0x60, 0x9f, 0x23, 0xee, 0x2d, 0x5f, 0x6b, 0xb7, 0xdf}},
	{1520, []byte{0x32, 0x94, 0xf7, 0x44, 0xd8, 0xf9, 0x79, 0x05, 0x07, 0xe7, 0x0f, 0x62, 0xe5, 0xbb, 0xce, 0xea}},
	{1536, []byte{0xd8, 0x72, 0x9d, 0xb4, 0x18, 0x82, 0x25, 0x9b, 0xee, 0x4f, 0x82, 0x53, 0x25, 0xf5, 0xa1, 0x30}},
	{2032, []byte{0x1e, 0xb1, 0x4a, 0x0c, 0x13, 0xb3, 0xbf, 0x47, 0xfa, 0x2a, 0x0b, 0xa9, 0x3a, 0xd4, 0x5b, 0x8b}},
	{2048, []byte{0xcc, 0x58, 0x2f, 0x8b, 0xa9, 0xf2, 0x65, 0xe2, 0xb1, 0xbe, 0x91, 0x12, 0xe9, 0x75, 0xd2, 0xd7}},
	{3056, []byte{0xf2, 0xe3, 0x0f, 0x9b, 0xd1, 0x02, 0xec, 0xbf, 0x75, 0xaa, 0xad, 0xe9, 0xbc, 0x35, 0xc4, 0x3c}},
	{3072, []byte{0xec, 0x0e, 0x11, 0xc4, 0x79, 0xdc, 0x32, 0x9d, 0xc8, 0xda, 0x79, 0x68, 0xfe, 0x96, 0x56, 0x81}},
	{4080, []byte{0x06, 0x83, 0x26, 0xa2, 0x11, 0x84, 0x16, 0xd2, 0x1f, 0x9d, 0x04, 0xb2, 0xcd, 0x1c, 0xa0, 0x50}},
	{4096, []byte{0xff, 0x25, 0xb5, 0x89, 0x95, 0x99, 0x67, 0x07, 0xe5, 0x1f, 0xbd, 0xf0, 0x8b, 0x34, 0xd8, 0x75}},
}

func TestRFC6229Keystream(t *testing.T) {
	out := make([]byte, 4112)
	if err := Apply(rfc6229Key40, out); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	for _, v := range rfc6229Vectors40 {
		if got := out[v.offset : v.offset+16]; !bytes.Equal(got, v.want) {
			t.Errorf("keystream at %d = %x, want %x", v.offset, got, v.want)
		}
	}
}

func TestKnownCiphertexts(t *testing.T) {
	cases := []struct {
		name  string
		key   []byte
		plain string
		want  []byte
	}{
		{
			name:  "attack at dawn 40-bit",
			key:   rfc6229Key40,
			plain: "Attack at dawn",
			want: []byte{
				0xf3, 0x4d, 0x17, 0x64, 0x93, 0x56, 0xe0, 0x46,
				0xb8, 0xe3, 0x36, 0x2b, 0x7d, 0x7f,
			},
		},
		{
			// Classic published vector with a 6-byte ASCII key.
			name:  "attack at dawn Secret",
			key:   []byte("Secret"),
			plain: "Attack at dawn",
			want: []byte{
				0x45, 0xa0, 0x1f, 0x64, 0x5f, 0xc3, 0x5b, 0x38,
				0x35, 0x52, 0x54, 0x4b, 0x9b, 0xf5,
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data := []byte(tc.plain)
			if err := Apply(tc.key, data); err != nil {
				t.Fatalf("Apply: %v", err)
			}

			if !bytes.Equal(data, tc.want) {
				t.Errorf("ciphertext = %x, want %x", data, tc.want)
			}

			// Symmetric: a second one-shot pass restores the plaintext.
			if err := Apply(tc.key, data); err != nil {
				t.Fatalf("Apply: %v", err)
			}

			if string(data) != tc.plain {
				t.Errorf("round trip = %q, want %q", data, tc.plain)
			}
		})
	}
}

func TestKeySizeBounds(t *testing.T) {
	for _, size := range []int{0, 1, 4, 257, 300} {
		if _, err := New(make([]byte, size)); err != KeySizeError(size) {
			t.Errorf("New with %d-byte key: got %v, want KeySizeError(%d)", size, err, size)
		}
	}

	for _, size := range []int{5, 16, 256} {
		if _, err := New(make([]byte, size)); err != nil {
			t.Errorf("New with %d-byte key: unexpected error %v", size, err)
		}
	}
}

func TestDeterminism(t *testing.T) {
	a, err := New(rfc6229Key40)
	if err != nil {
		t.Fatal(err)
	}

	b, err := New(rfc6229Key40)
	if err != nil {
		t.Fatal(err)
	}

	for n := 0; n < 1000; n++ {
		if x, y := a.NextByte(), b.NextByte(); x != y {
			t.Fatalf("byte %d: states diverged (%#x vs %#x)", n, x, y)
		}
	}
}

func TestPermutationStaysBijective(t *testing.T) {
	c, err := New([]byte("permutation check"))
	if err != nil {
		t.Fatal(err)
	}

	check := func(when string) {
		var seen [256]bool
		for _, v := range c.s {
			if seen[v] {
				t.Fatalf("%s: value %d appears twice in permutation", when, v)
			}

			seen[v] = true
		}
	}

	check("after scheduling")

	for n := 0; n < 10_000; n++ {
		c.NextByte()
	}

	check("after 10000 generated bytes")
}

func TestEmptyBufferDoesNotAdvance(t *testing.T) {
	c, err := New(rfc6229Key40)
	if err != nil {
		t.Fatal(err)
	}

	c.XORKeyStream(nil)
	c.XORKeyStream([]byte{})

	if got := c.NextByte(); got != 0xb2 {
		t.Errorf("first keystream byte after empty applies = %#x, want 0xb2", got)
	}
}

func TestStreamingEquivalence(t *testing.T) {
	data := make([]byte, 257)
	rand.New(rand.NewSource(1)).Read(data)

	whole := append([]byte(nil), data...)
	if err := Apply(rfc6229Key40, whole); err != nil {
		t.Fatal(err)
	}

	// Same data fed through one persistent state in two sub-calls.
	split := append([]byte(nil), data...)

	c, err := New(rfc6229Key40)
	if err != nil {
		t.Fatal(err)
	}

	c.XORKeyStream(split[:5])
	c.XORKeyStream(split[5:])

	if !bytes.Equal(whole, split) {
		t.Error("split application differs from whole-buffer application")
	}
}

func TestRoundTripRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for n := 0; n < 50; n++ {
		key := make([]byte, MinKeySize+rng.Intn(MaxKeySize-MinKeySize+1))
		rng.Read(key)

		data := make([]byte, rng.Intn(4096))
		rng.Read(data)

		orig := append([]byte(nil), data...)

		if err := Apply(key, data); err != nil {
			t.Fatal(err)
		}

		if err := Apply(key, data); err != nil {
			t.Fatal(err)
		}

		if !bytes.Equal(data, orig) {
			t.Fatalf("round trip failed for key len %d, data len %d", len(key), len(orig))
		}
	}
}

// TestAgainstStdlib cross-checks the keystream against crypto/rc4 for
// key lengths both implementations accept.
func TestAgainstStdlib(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for _, keyLen := range []int{5, 16, 32, 128, 256} {
		key := make([]byte, keyLen)
		rng.Read(key)

		ours, err := New(key)
		if err != nil {
			t.Fatal(err)
		}

		theirs, err := stdrc4.NewCipher(key)
		if err != nil {
			t.Fatal(err)
		}

		got := make([]byte, 2048)
		ours.XORKeyStream(got)

		want := make([]byte, 2048)
		theirs.XORKeyStream(want, want)

		if !bytes.Equal(got, want) {
			t.Errorf("key len %d: keystream disagrees with crypto/rc4", keyLen)
		}
	}
}

func BenchmarkXORKeyStream(b *testing.B) {
	c, err := New(rfc6229Key40)
	if err != nil {
		b.Fatal(err)
	}

	buf := make([]byte, 32*1024)

	b.SetBytes(int64(len(buf)))
	b.ResetTimer()

	for n := 0; n < b.N; n++ {
		c.XORKeyStream(buf)
	}
}
