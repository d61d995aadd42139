// Command venuecheck runs the venue-search extractor over saved API response
// bodies and reports whether each one would print cleanly. It is meant for
// checking captured responses before changing the extractor.
//
// Usage:
//
//	go run ./cmd/venuecheck testdata/berkeley_cafes.json [more.json ...]
//	go run ./cmd/venuecheck -print testdata/berkeley_cafes.json
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/couchcryptid/venue-watch/internal/domain"
	"github.com/couchcryptid/venue-watch/internal/plugin"
)

// phase tracks pass/fail for one check over one file.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	printVenues := flag.Bool("print", false, "print venues the way the plugin does")
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(flag.Args(), *printVenues, os.Stdout); code != 0 {
		os.Exit(code)
	}
}

func run(paths []string, printVenues bool, w io.Writer) int {
	allPassed := true
	for _, path := range paths {
		if !checkFile(path, printVenues, w) {
			allPassed = false
		}
	}

	if allPassed {
		fmt.Fprintln(w, "\nAll checks passed.")
		return 0
	}
	fmt.Fprintln(w, "\nCheck FAILED.")
	return 1
}

func checkFile(path string, printVenues bool, w io.Writer) bool {
	fmt.Fprintf(w, "=== %s ===\n", path)

	body, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(w, "FATAL: %v\n", err)
		return false
	}

	extract := &phase{name: "Extract venues"}
	names := &phase{name: "Venue names non-empty"}
	distances := &phase{name: "Venue distances present"}

	var printer *plugin.Printer
	if printVenues {
		printer = plugin.NewPrinter(w, w)
	}

	var count int
	err = domain.Extract(body, func(v domain.Venue) {
		count++
		if printer != nil {
			printer.Venue(v)
		}
		if v.Name == "" {
			names.errorf("venue %d: empty name", v.Index+1)
		}
		if v.Distance == 0 {
			distances.errorf("venue %d (%s): distance missing or zero", v.Index+1, v.Name)
		}
	})
	switch {
	case len(body) == 0:
		extract.errorf("%v", domain.ErrEmptyResponse)
	case err != nil:
		extract.errorf("%s: %v", domain.Outcome(err), err)
	}

	phases := []*phase{extract, names, distances}
	ok := true
	for _, p := range phases {
		status := "PASS"
		if !p.passed() {
			status = fmt.Sprintf("FAIL (%d errors)", len(p.errors))
			ok = false
		}
		fmt.Fprintf(w, "  %-30s %s\n", p.name, status)
	}
	fmt.Fprintf(w, "Venues: %d\n", count)

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(w, "--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(w, "  [%d] %s\n", i+1, e)
		}
	}
	return ok
}
