// Package encryption applies the RC4 keystream to files in place.
// Files are processed concurrently, each one streamed in bounded-size
// chunks through a single cipher state so that arbitrarily large files
// never need to fit in memory. Running the same key over a file twice
// restores its original content.
package encryption
