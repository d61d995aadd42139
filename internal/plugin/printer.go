package plugin

import (
	"fmt"
	"io"
	"sync"

	"github.com/couchcryptid/venue-watch/internal/domain"
)

// Printer writes venue lines and diagnostics. Lines from concurrent queries
// never interleave mid-line.
type Printer struct {
	mu     sync.Mutex
	out    io.Writer
	errOut io.Writer
}

// NewPrinter writes venues to out and errors to errOut.
func NewPrinter(out, errOut io.Writer) *Printer {
	return &Printer{out: out, errOut: errOut}
}

// Venue prints one result line, e.g. " * 0 Found Cafe A at 120:)".
func (p *Printer) Venue(v domain.Venue) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, " * %d Found %s at %d:)\n", v.Index, v.Name, v.Distance)
}

// Error prints a diagnostic line, e.g. "error: venues not an array".
func (p *Printer) Error(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.errOut, "error: %v\n", err)
}
