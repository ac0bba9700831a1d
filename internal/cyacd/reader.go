// Package cyacd implements parsing of the line-oriented cyacd firmware
// update format: a hex-encoded header line followed by flash row records.
package cyacd

import (
	"bufio"
	"fmt"
	"io"
)

// Reader decodes a cyacd stream line by line. The header is read exactly
// once before any row; rows are returned lazily in file order and are
// validated against the checksum algorithm declared in the header.
// A Reader is single-pass and not restartable.
type Reader struct {
	scanner    *bufio.Scanner
	header     Header
	headerErr  error
	headerRead bool
	line       int
}

// NewReader returns a Reader decoding the given cyacd stream.
func NewReader(r io.Reader) *Reader {
	return &Reader{
		scanner: bufio.NewScanner(r),
	}
}

// Header parses and returns the header line. The result, including a parse
// failure, is cached, repeated calls return the same outcome.
func (r *Reader) Header() (Header, error) {
	if r.headerRead {
		return r.header, r.headerErr
	}
	r.headerRead = true
	r.header, r.headerErr = r.parseHeaderLine()
	return r.header, r.headerErr
}

// Next returns the next validated row record, or io.EOF after the last one.
// The header is read first if it has not been read yet.
func (r *Reader) Next() (*Row, error) {
	if _, err := r.Header(); err != nil {
		return nil, err
	}

	line, err := r.nextLine()
	if err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("reading row: %w", err)
	}

	row, err := ParseRow(line, r.header.ChecksumType)
	if err != nil {
		return nil, fmt.Errorf("line %d: %w", r.line, err)
	}
	return row, nil
}

func (r *Reader) parseHeaderLine() (Header, error) {
	line, err := r.nextLine()
	if err == io.EOF {
		return Header{}, fmt.Errorf("reading header: unexpected end of file")
	}
	if err != nil {
		return Header{}, fmt.Errorf("reading header: %w", err)
	}

	// A ':' marker identifies a row record, the header carries none.
	if line[0] == ':' {
		return Header{}, fmt.Errorf("line %d: %w", r.line, ErrHeaderMissing)
	}

	hdr, err := ParseHeader(line)
	if err != nil {
		return Header{}, fmt.Errorf("line %d: %w", r.line, err)
	}
	return hdr, nil
}

// nextLine returns the next non-empty line, or io.EOF.
func (r *Reader) nextLine() (string, error) {
	for r.scanner.Scan() {
		r.line++
		line := r.scanner.Text()
		if line != "" {
			return line, nil
		}
	}
	if err := r.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
