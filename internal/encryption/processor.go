package encryption

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/idelchi/gorc/internal/config"
	"github.com/idelchi/gorc/internal/fileutil"
	"github.com/idelchi/gorc/pkg/keyhex"
	"github.com/idelchi/gorc/pkg/rc4"
)

// Processor rewrites files in place with the RC4 keystream.
type Processor struct {
	// cfg contains runtime configuration options
	cfg *config.Config

	// key stores the decoded raw key bytes
	key []byte

	// results channels processing outcomes to the printer goroutine
	results chan Result
}

// NewProcessor decodes and validates the configured key material and
// returns a ready Processor. Key errors surface here, before any file
// is touched.
func NewProcessor(cfg *config.Config) (*Processor, error) {
	var (
		key []byte
		err error
	)

	switch {
	case len(cfg.Key) > 0:
		key, err = keyhex.Decode(cfg.Key)
	case cfg.KeyFile != "":
		key, err = keyhex.DecodeFile(cfg.KeyFile)
	default:
		err = keyhex.ErrNoKeyMaterial
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrKeyMaterial, err)
	}

	// Schedule once up front so an out-of-range length fails fast.
	if _, err := rc4.New(key); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrKeyMaterial, err)
	}

	return &Processor{
		cfg:     cfg,
		key:     key,
		results: make(chan Result, len(cfg.Files)),
	}, nil
}

// ProcessFiles transforms all configured files concurrently. Returns
// the number of successfully processed files, the number of errors and
// the total size transformed; the first per-file error is propagated.
func (p *Processor) ProcessFiles() (processed, errored int, totalSize int64, err error) {
	group := errgroup.Group{}
	group.SetLimit(p.cfg.Parallel)

	done := make(chan struct{})

	go func() {
		defer close(done)

		for result := range p.results {
			if result.Error != nil {
				errored++

				fmt.Fprintf(os.Stderr, "Error processing %q: %v\n", result.Input, result.Error)

				continue
			}

			processed++

			totalSize += result.Size

			if !p.cfg.Quiet {
				fmt.Printf("%s %q\n", result.Verb, result.Input) //nolint:forbidigo
			}
		}
	}()

	for _, file := range p.cfg.Files {
		group.Go(func() error {
			size, verb, err := p.transformFile(file)
			if err != nil {
				p.results <- Result{Input: file, Error: err}

				return err
			}

			p.results <- Result{Input: file, Verb: verb, Size: size}

			return nil
		})
	}

	err = group.Wait()

	close(p.results)

	<-done // Wait for printer to finish

	if err != nil {
		return processed, errored, totalSize, fmt.Errorf("processing files: %w", err)
	}

	return processed, errored, totalSize, nil
}

// transformFile streams one file through a single cipher state in
// chunks, writing each transformed chunk back at the offset it was read
// from. The state persists across chunks, so the keystream advances
// over the whole file exactly as it would over one contiguous buffer.
func (p *Processor) transformFile(filename string) (size int64, verb string, err error) {
	file, err := os.OpenFile(filepath.Clean(filename), os.O_RDWR, 0)
	if err != nil {
		return 0, "", classifyOpenError(filename, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return 0, "", fmt.Errorf("%w: stat %q: %w", ErrUnreadable, filename, err)
	}

	if info.IsDir() {
		return 0, "", fmt.Errorf("%w: %q is a directory", ErrUnreadable, filename)
	}

	cipher, err := rc4.New(p.key)
	if err != nil {
		// Key length was checked at construction.
		return 0, "", fmt.Errorf("%w: %w", ErrKeyMaterial, err)
	}

	buf, release := chunkBuffer(p.cfg.ChunkSize)
	defer release()

	var (
		offset    int64
		printable int64
		total     int64
	)

	for {
		n, readErr := file.ReadAt(buf, offset)
		if n > 0 {
			for _, b := range buf[:n] {
				if printableASCII(b) {
					printable++
				}
			}

			total += int64(n)

			cipher.XORKeyStream(buf[:n])

			if _, writeErr := file.WriteAt(buf[:n], offset); writeErr != nil {
				return 0, "", fmt.Errorf("%w: writing %q: %w", ErrUnwritable, filename, writeErr)
			}

			offset += int64(n)
		}

		if errors.Is(readErr, io.EOF) {
			break
		}

		if readErr != nil {
			return 0, "", fmt.Errorf("%w: reading %q: %w", ErrUnreadable, filename, readErr)
		}
	}

	if err := file.Close(); err != nil {
		return 0, "", fmt.Errorf("%w: closing %q: %w", ErrUnwritable, filename, err)
	}

	size, err = fileutil.Finalize(filename, p.cfg.PreserveTimestamps, info.ModTime())
	if err != nil {
		return 0, "", fmt.Errorf("finalizing %q: %w", filename, err)
	}

	return size, direction(printable, total), nil
}

// classifyOpenError decides whether a failed read-write open is a read
// or a write problem: a file that still opens read-only is writable
// territory gone wrong, anything else is unreadable.
func classifyOpenError(filename string, openErr error) error {
	file, err := os.Open(filepath.Clean(filename))
	if err != nil {
		return fmt.Errorf("%w: opening %q: %w", ErrUnreadable, filename, openErr)
	}

	file.Close()

	return fmt.Errorf("%w: opening %q for writing: %w", ErrUnwritable, filename, openErr)
}

// direction guesses the transformation direction from the ratio of
// printable ASCII in the input: mostly printable input was plaintext,
// so the pass encrypted it. Reporting only; the transformation is the
// same either way.
func direction(printable, total int64) string {
	const threshold = 0.7

	if total > 0 && float64(printable)/float64(total) > threshold {
		return "Encrypted"
	}

	return "Decrypted"
}

// printableASCII reports whether b is a graphic ASCII character, space
// or line terminator.
func printableASCII(b byte) bool {
	return (b >= '!' && b <= '~') || b == ' ' || b == '\n' || b == '\r'
}
