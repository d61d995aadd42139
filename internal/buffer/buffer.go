// Package buffer accumulates an HTTP response body into one contiguous,
// growable allocation.
package buffer

import (
	"errors"
	"fmt"

	"github.com/couchcryptid/venue-watch/internal/domain"
)

// ErrReleased is returned when appending to a buffer after Release.
var ErrReleased = errors.New("buffer already released")

// Buffer is an exclusively owned byte sequence. It is not safe for
// concurrent use.
type Buffer struct {
	data     []byte
	limit    int
	released bool
}

// New returns an empty buffer holding at most limit bytes. A limit of zero or
// less means the buffer may grow without bound.
func New(limit int) *Buffer {
	return &Buffer{
		data:  make([]byte, 0, initialCap(limit)),
		limit: limit,
	}
}

func initialCap(limit int) int {
	const defaultCap = 4 * 1024
	if limit > 0 && limit < defaultCap {
		return limit
	}
	return defaultCap
}

// Append copies chunk onto the end of the buffer. When the result would exceed
// the limit the contents are left untouched and an error wrapping
// domain.ErrAllocation is returned.
func (b *Buffer) Append(chunk []byte) error {
	if b.released {
		return ErrReleased
	}
	if b.limit > 0 && len(b.data)+len(chunk) > b.limit {
		return fmt.Errorf("append %d bytes to %d of %d: %w", len(chunk), len(b.data), b.limit, domain.ErrAllocation)
	}
	b.data = append(b.data, chunk...)
	return nil
}

// Write implements io.Writer so a body can be streamed in with io.Copy.
func (b *Buffer) Write(p []byte) (int, error) {
	if err := b.Append(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Len returns the number of bytes held.
func (b *Buffer) Len() int { return len(b.data) }

// Cap returns the capacity of the backing storage.
func (b *Buffer) Cap() int { return cap(b.data) }

// Bytes returns the contents. The slice is only valid until Release.
func (b *Buffer) Bytes() []byte { return b.data }

// Release drops the backing storage. Calling it again is a no-op.
func (b *Buffer) Release() {
	b.data = nil
	b.released = true
}
