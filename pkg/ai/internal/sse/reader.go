// ABOUTME: Server-Sent Events parser that reads from an io.Reader
// ABOUTME: Supports event, data, id fields; multi-line data; comments

package sse

import (
	"bufio"
	"io"
	"strings"
)

// Event represents a single Server-Sent Event.
type Event struct {
	Type string
	Data string
	ID   string
}

const maxLineSize = 1024 * 1024 // 1MB max line size

// Reader parses Server-Sent Events from an io.Reader.
type Reader struct {
	scanner *bufio.Scanner
}

// NewReader creates a new SSE reader from the given io.Reader.
func NewReader(r io.Reader) *Reader {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &Reader{scanner: s}
}

// Next reads and returns the next SSE event.
// Returns nil, io.EOF when the stream ends.
func (r *Reader) Next() (*Event, error) {
	var ev Event
	var dataLines []string
	var hasContent bool

	flush := func() *Event {
		if len(dataLines) > 0 {
			ev.Data = strings.Join(dataLines, "\n")
		}
		return &ev
	}

	for r.scanner.Scan() {
		line := r.scanner.Text()

		// Blank line terminates the current event, if any.
		if line == "" {
			if hasContent {
				return flush(), nil
			}
			continue
		}

		// Comment line.
		if strings.HasPrefix(line, ":") {
			continue
		}

		field, value, _ := strings.Cut(line, ":")
		value = strings.TrimPrefix(value, " ")

		switch field {
		case "event":
			ev.Type = value
			hasContent = true
		case "data":
			dataLines = append(dataLines, value)
			hasContent = true
		case "id":
			ev.ID = value
			hasContent = true
		default:
			// Unknown fields (including retry) are ignored per the SSE spec.
		}
	}

	if err := r.scanner.Err(); err != nil {
		return nil, err
	}

	// Stream ended without a trailing blank line; emit the pending event.
	if hasContent {
		return flush(), nil
	}

	return nil, io.EOF
}
