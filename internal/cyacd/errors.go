package cyacd

import (
	"errors"
	"fmt"
)

// ErrHeaderMissing indicates that row data was encountered before a header line.
var ErrHeaderMissing = errors.New("row data found before header line")

// MalformedHeaderError indicates that the header line has an invalid length
// or field encoding.
type MalformedHeaderError struct {
	Length   int
	Expected int
	Err      error
}

func (e *MalformedHeaderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed header: %s", e.Err)
	}
	return fmt.Sprintf("malformed header: got %d characters, expected %d",
		e.Length, e.Expected)
}

func (e *MalformedHeaderError) Unwrap() error {
	return e.Err
}

// UnknownChecksumTypeError indicates that the header declares an unsupported
// checksum algorithm selector.
type UnknownChecksumTypeError struct {
	Type byte
}

func (e *UnknownChecksumTypeError) Error() string {
	return fmt.Sprintf("unknown checksum type 0x%02X (must be 0x00 or 0x01)", e.Type)
}

// MalformedRowError indicates that a row line has an invalid length or field
// encoding.
type MalformedRowError struct {
	Length   int
	Expected int
	Err      error
}

func (e *MalformedRowError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed row: %s", e.Err)
	}
	return fmt.Sprintf("malformed row: got %d bytes, expected %d",
		e.Length, e.Expected)
}

func (e *MalformedRowError) Unwrap() error {
	return e.Err
}

// ChecksumMismatchError indicates that a row failed checksum verification.
type ChecksumMismatchError struct {
	ArrayID  byte
	RowNum   uint16
	Declared byte
	Computed byte
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("checksum mismatch for array %d row %d: declared 0x%02X, computed 0x%02X",
		e.ArrayID, e.RowNum, e.Declared, e.Computed)
}
