package encryption

import "sync"

// DefaultChunkSize is the default read/write granularity for file
// transformation.
const DefaultChunkSize = 32 * 1024

// bufferPool recycles chunk buffers of the default size across files.
//
//nolint:gochecknoglobals
var bufferPool = sync.Pool{
	New: func() any {
		return make([]byte, DefaultChunkSize)
	},
}

// chunkBuffer returns a buffer of the requested size and a release
// function. Default-sized buffers come from the pool; other sizes are
// allocated fresh and released to the garbage collector.
func chunkBuffer(size int) ([]byte, func()) {
	if size == DefaultChunkSize {
		buf, ok := bufferPool.Get().([]byte)
		if ok {
			return buf, func() { bufferPool.Put(buf) } //nolint:staticcheck
		}
	}

	return make([]byte, size), func() {}
}
