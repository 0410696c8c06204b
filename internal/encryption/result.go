package encryption

// Result represents the outcome of processing a single file.
type Result struct {
	// Input file path
	Input string

	// Verb describes the transformation direction as reported to the
	// user ("Encrypted" or "Decrypted")
	Verb string

	// Size of the file in bytes
	Size int64

	// Any error that occurred during processing
	Error error
}
