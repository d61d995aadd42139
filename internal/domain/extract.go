package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
)

// Extract parses a venue-search response body and calls emit for each venue
// in array order as soon as that venue has been validated. Validation stops at
// the first violation, so venues after a malformed element are never emitted.
func Extract(body []byte, emit func(Venue)) error {
	doc, err := parseDocument(body)
	if err != nil {
		return err
	}

	root, _ := doc.(map[string]any)
	response, ok := root["response"].(map[string]any)
	if !ok {
		return structuralf("response not an object")
	}
	venues, ok := response["venues"].([]any)
	if !ok {
		return structuralf("venues not an array")
	}

	for i, elem := range venues {
		// Messages number venues from 1; Venue.Index stays 0-based.
		venue, ok := elem.(map[string]any)
		if !ok {
			return structuralf("venue %d not an object", i+1)
		}
		name, ok := venue["name"].(string)
		if !ok {
			return structuralf("venue.name %d not a string", i+1)
		}
		location, ok := venue["location"].(map[string]any)
		if !ok {
			return structuralf("venue.location %d not an object", i+1)
		}
		emit(Venue{
			Index:    i,
			Name:     name,
			Distance: integerField(location, "distance"),
		})
	}
	return nil
}

// ExtractAll collects the venues Extract emits. On error the venues emitted
// before the failure are returned alongside it.
func ExtractAll(body []byte) ([]Venue, error) {
	var venues []Venue
	err := Extract(body, func(v Venue) {
		venues = append(venues, v)
	})
	return venues, err
}

func parseDocument(body []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, newParseError(body, dec.InputOffset(), err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, newParseError(body, dec.InputOffset(), errors.New("end of file expected"))
	}
	return doc, nil
}

func newParseError(body []byte, offset int64, err error) *ParseError {
	var syntaxErr *json.SyntaxError
	switch {
	case errors.As(err, &syntaxErr):
		offset = syntaxErr.Offset
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		offset = int64(len(body))
		err = errors.New("unexpected end of input")
	}
	line, col := position(body, offset)
	return &ParseError{Line: line, Column: col, Message: err.Error()}
}

// position converts a byte offset into a 1-based line and column.
func position(body []byte, offset int64) (line, col int) {
	if offset > int64(len(body)) {
		offset = int64(len(body))
	}
	prefix := body[:offset]
	line = bytes.Count(prefix, []byte{'\n'}) + 1
	col = len(prefix) - bytes.LastIndexByte(prefix, '\n')
	return line, col
}

// integerField reads an integer member of obj, yielding 0 when the member is
// absent or not an integer.
func integerField(obj map[string]any, key string) int64 {
	n, ok := obj[key].(json.Number)
	if !ok {
		return 0
	}
	v, err := n.Int64()
	if err != nil {
		return 0
	}
	return v
}
